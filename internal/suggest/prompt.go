package suggest

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// defaultSystemTemplate carries the fixed generation instructions. The model
// is told to emit one bare domain per line so the extractor can read them
// back without structure.
const defaultSystemTemplate = `You are a naming consultant who invents short, brandable .com domain names.
Rules for every name you suggest:
- at most two words joined together
- 6 to 15 characters before the .com suffix
- no dashes and no digits
- plausibly unregistered; avoid famous brands and dictionary one-word domains
- always end with .com
Reply with one domain per line and nothing else: no numbering, no commentary.`

// defaultUserTemplate is the per-request portion of the prompt.
const defaultUserTemplate = `Suggest brandable .com domain names for this project.
Keywords: {{keywords}}
Description: {{description}}`

// PromptSet holds the system and user templates for a suggestion request.
type PromptSet struct {
	System string `yaml:"system"`
	User   string `yaml:"user"`
}

// DefaultPrompts returns the built-in templates.
func DefaultPrompts() *PromptSet {
	return &PromptSet{
		System: defaultSystemTemplate,
		User:   defaultUserTemplate,
	}
}

// LoadPrompts reads a YAML prompt override file. Empty fields fall back to
// the built-in templates.
func LoadPrompts(path string) (*PromptSet, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- prompt path is operator-provided
	if err != nil {
		return nil, fmt.Errorf("read prompt file %s: %w", path, err)
	}

	var loaded PromptSet
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("parse prompt file %s: %w", path, err)
	}

	prompts := DefaultPrompts()
	if strings.TrimSpace(loaded.System) != "" {
		prompts.System = loaded.System
	}
	if strings.TrimSpace(loaded.User) != "" {
		prompts.User = loaded.User
	}
	return prompts, nil
}

// Render substitutes request variables into the templates.
func (p *PromptSet) Render(keywords, description string) (string, string, error) {
	if p == nil {
		return "", "", errors.New("prompts are required")
	}
	if strings.TrimSpace(p.System) == "" {
		return "", "", errors.New("system prompt is required")
	}

	vars := map[string]string{
		"keywords":    strings.TrimSpace(keywords),
		"description": strings.TrimSpace(description),
	}

	user := p.User
	if strings.TrimSpace(user) == "" {
		user = defaultUserTemplate
	}

	return applyVars(p.System, vars), applyVars(user, vars), nil
}

func applyVars(template string, vars map[string]string) string {
	result := template
	for key, value := range vars {
		result = strings.ReplaceAll(result, "{{"+key+"}}", value)
	}
	return result
}
