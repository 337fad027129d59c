package suggest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nameforge/nameforge/internal/suggest/driver"
)

type stubDriver struct {
	lastReq *driver.Request
	content string
	err     error
}

func (s *stubDriver) Complete(ctx context.Context, req *driver.Request) (*driver.Response, error) {
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	return &driver.Response{Content: s.content}, nil
}

func (s *stubDriver) Name() string {
	return "stub"
}

func TestSuggestBuildsMessages(t *testing.T) {
	stub := &stubDriver{content: "alfa.com\nbravo.com\n"}
	svc := &Service{Driver: stub, Model: "test-model"}

	raw, err := svc.Suggest(context.Background(), Request{Keywords: "fintech", Description: "payments app"})
	require.NoError(t, err)
	require.Equal(t, "alfa.com\nbravo.com", raw)

	require.Equal(t, "test-model", stub.lastReq.Model)
	require.Len(t, stub.lastReq.Messages, 2)
	require.Equal(t, "system", stub.lastReq.Messages[0].Role)
	require.Equal(t, "user", stub.lastReq.Messages[1].Role)
	require.Contains(t, stub.lastReq.Messages[1].Content, "fintech")
	require.Contains(t, stub.lastReq.Messages[1].Content, "payments app")
}

func TestSuggestPropagatesDriverError(t *testing.T) {
	stub := &stubDriver{err: errors.New("provider down")}
	svc := &Service{Driver: stub, Model: "test-model"}

	_, err := svc.Suggest(context.Background(), Request{Keywords: "anything"})
	require.Error(t, err)
}

func TestSuggestAppliesTimeout(t *testing.T) {
	stub := &stubDriver{content: "x.com"}
	svc := &Service{Driver: stub, Model: "m", Timeout: 50 * time.Millisecond}

	_, err := svc.Suggest(context.Background(), Request{Keywords: "k"})
	require.NoError(t, err)
}

func TestNewServiceDefaults(t *testing.T) {
	svc, err := NewService(Config{APIKey: "sk-test", Model: "m"})
	require.NoError(t, err)
	require.Equal(t, "openai", svc.Driver.Name())
	require.Equal(t, DefaultPrompts(), svc.Prompts)
}

func TestNewServiceBadPromptFile(t *testing.T) {
	_, err := NewService(Config{PromptFile: "/does/not/exist.yaml"})
	require.Error(t, err)
}
