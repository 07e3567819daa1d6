package prompt

import (
	"errors"
	"strings"
	"testing"
)

func TestRender_SubstitutesBothPlaceholders(t *testing.T) {
	tmpl := "HISTORY:\n{chat_history}\n\nMESSAGE:\n{client_message}\n"

	out, err := Render(tmpl, "What's the financial requirement?", NoHistory)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	if !strings.Contains(out, "What's the financial requirement?") {
		t.Errorf("client message not substituted:\n%s", out)
	}
	if !strings.Contains(out, NoHistory) {
		t.Errorf("history not substituted:\n%s", out)
	}
	if strings.Contains(out, "{chat_history}") || strings.Contains(out, "{client_message}") {
		t.Errorf("placeholder left in output:\n%s", out)
	}
}

func TestRender_MissingPlaceholder(t *testing.T) {
	tests := []struct {
		name    string
		tmpl    string
		missing string
	}{
		{"no history", "MESSAGE: {client_message}", PlaceholderHistory},
		{"no message", "HISTORY: {chat_history}", PlaceholderMessage},
		{"neither", "just some text", PlaceholderHistory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Render(tt.tmpl, "msg", "history")
			if err == nil {
				t.Fatal("expected error for template without placeholders")
			}
			var te *TemplateError
			if !errors.As(err, &te) {
				t.Fatalf("expected TemplateError, got %T", err)
			}
			if te.Missing != tt.missing {
				t.Errorf("Missing = %q, want %q", te.Missing, tt.missing)
			}
		})
	}
}

func TestRender_StrayBracesPassThrough(t *testing.T) {
	tmpl := "Return {\"answer\": ...}\n{chat_history}\n{client_message}"

	out, err := Render(tmpl, "hello", NoHistory)
	if err != nil {
		t.Fatalf("render failed on stray braces: %v", err)
	}
	if !strings.Contains(out, "{\"answer\": ...}") {
		t.Errorf("stray braces should be preserved verbatim:\n%s", out)
	}
}

func TestDefaultChatbotPrompt_HasPlaceholders(t *testing.T) {
	if _, err := Render(DefaultChatbotPrompt, "msg", NoHistory); err != nil {
		t.Fatalf("default prompt must render: %v", err)
	}
}
