// Package suggest turns user keywords into raw name-suggestion text via a
// completion provider.
package suggest

import (
	"context"
	"strings"
	"time"

	"github.com/nameforge/nameforge/internal/metrics"
	"github.com/nameforge/nameforge/internal/suggest/driver"
	"github.com/nameforge/nameforge/internal/suggest/driver/openai"
)

const (
	defaultTimeout = 60 * time.Second
	maxTimeout     = 5 * time.Minute
)

// Config holds the completion provider settings.
type Config struct {
	BaseURL    string        `mapstructure:"base_url"`
	APIKey     string        `mapstructure:"api_key"`
	Model      string        `mapstructure:"model"`
	Timeout    time.Duration `mapstructure:"timeout"`
	PromptFile string        `mapstructure:"prompt_file"`
}

// Service runs one completion per suggestion request.
type Service struct {
	Driver  driver.Driver
	Model   string
	Timeout time.Duration
	Prompts *PromptSet
}

// NewService builds a Service from configuration, loading prompt overrides
// when a prompt file is configured.
func NewService(cfg Config) (*Service, error) {
	prompts := DefaultPrompts()
	if strings.TrimSpace(cfg.PromptFile) != "" {
		loaded, err := LoadPrompts(cfg.PromptFile)
		if err != nil {
			return nil, err
		}
		prompts = loaded
	}

	client := openai.NewClient(cfg.BaseURL, cfg.APIKey)
	client.Timeout = cfg.Timeout

	return &Service{
		Driver:  client,
		Model:   cfg.Model,
		Timeout: cfg.Timeout,
		Prompts: prompts,
	}, nil
}

// Request carries the user's input.
type Request struct {
	Keywords    string `json:"keywords"`
	Description string `json:"description"`
}

// Suggest asks the provider for name ideas and returns the raw completion
// text. Callers feed the text to core.ExtractCandidates; an error here is
// expected to degrade to zero candidates, never to a hard failure of the
// enclosing request.
func (s *Service) Suggest(ctx context.Context, req Request) (string, error) {
	prompts := s.Prompts
	if prompts == nil {
		prompts = DefaultPrompts()
	}

	system, user, err := prompts.Render(req.Keywords, req.Description)
	if err != nil {
		return "", err
	}

	duration := s.Timeout
	if duration <= 0 {
		duration = defaultTimeout
	}
	if duration > maxTimeout {
		duration = maxTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, duration)
	defer cancel()

	resp, err := s.Driver.Complete(ctx, &driver.Request{
		Model: s.Model,
		Messages: []driver.Message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	})

	metrics.RecordCompletion(s.Driver.Name(), err == nil)

	if err != nil {
		return "", err
	}

	return strings.TrimSpace(resp.Content), nil
}
