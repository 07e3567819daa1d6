package reply

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/issa-compass/assistant/internal/prompt"
)

type fakeStore struct {
	template string
}

func (f *fakeStore) GetOrCreatePrompt(_ context.Context, _ string, def string) string {
	if f.template == "" {
		return def
	}
	return f.template
}

type fakeLLM struct {
	gotPrompt    string
	gotMaxTokens int
	text         string
	err          error
}

func (f *fakeLLM) Complete(_ context.Context, p string, maxTokens int) (string, error) {
	f.gotPrompt = p
	f.gotMaxTokens = maxTokens
	return f.text, f.err
}

func TestGenerateReply_RendersContextVerbatim(t *testing.T) {
	llm := &fakeLLM{text: "Sawasdee! You need 500,000 THB. Would you like me to explain more?"}
	r := NewRenderer(&fakeStore{}, llm, 220, slog.Default())

	got, err := r.GenerateReply(context.Background(), "What's the financial requirement?", prompt.NoHistory)
	if err != nil {
		t.Fatalf("GenerateReply failed: %v", err)
	}

	if !strings.Contains(llm.gotPrompt, "What's the financial requirement?") {
		t.Error("rendered prompt missing client message")
	}
	if !strings.Contains(llm.gotPrompt, prompt.NoHistory) {
		t.Error("rendered prompt missing history sentinel")
	}
	if llm.gotMaxTokens != 220 {
		t.Errorf("token ceiling = %d, want 220", llm.gotMaxTokens)
	}

	if !strings.HasPrefix(got, "Sawasdee") {
		t.Errorf("opener should keep greeting, got %q", got)
	}
	if strings.Contains(strings.ToLower(got), "would you like") {
		t.Errorf("invitation should be dropped, got %q", got)
	}
}

func TestGenerateReply_TemplateError(t *testing.T) {
	store := &fakeStore{template: "broken template without placeholders"}
	r := NewRenderer(store, &fakeLLM{}, 220, slog.Default())

	_, err := r.GenerateReply(context.Background(), "msg", prompt.NoHistory)
	var te *prompt.TemplateError
	if !errors.As(err, &te) {
		t.Fatalf("expected TemplateError, got %v", err)
	}
}

func TestGenerateReply_BackendError(t *testing.T) {
	provider := errors.New("rate limited")
	r := NewRenderer(&fakeStore{}, &fakeLLM{err: provider}, 220, slog.Default())

	got, err := r.GenerateReply(context.Background(), "msg", prompt.NoHistory)
	var be *BackendError
	if !errors.As(err, &be) {
		t.Fatalf("expected BackendError, got %v", err)
	}
	if !errors.Is(err, provider) {
		t.Error("BackendError should wrap the provider error")
	}
	if got != "" {
		t.Errorf("no partial reply on backend failure, got %q", got)
	}
}
