package reply

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/issa-compass/assistant/internal/llm"
	"github.com/issa-compass/assistant/internal/prompt"
)

// PromptStore is the slice of the template store the renderer needs.
type PromptStore interface {
	GetOrCreatePrompt(ctx context.Context, name, def string) string
}

// BackendError wraps a failed provider call. The render is fatal at that
// point: no partial or half-sanitized reply is ever returned alongside it.
type BackendError struct {
	Err error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend call failed: %v", e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

// Renderer fills the live template with conversation context, calls the
// generative backend, and sanitizes the raw output.
type Renderer struct {
	store     PromptStore
	llm       llm.Client
	logger    *slog.Logger
	maxTokens int
}

func NewRenderer(store PromptStore, client llm.Client, maxTokens int, logger *slog.Logger) *Renderer {
	return &Renderer{
		store:     store,
		llm:       client,
		logger:    logger,
		maxTokens: maxTokens,
	}
}

// GenerateReply renders the live template against the conversation context,
// invokes the backend with the reply token ceiling, and returns the sanitized
// text. Template failures surface as *prompt.TemplateError, provider failures
// as *BackendError; retry policy belongs to the caller.
func (r *Renderer) GenerateReply(ctx context.Context, clientMessage, historyText string) (string, error) {
	tmpl := r.store.GetOrCreatePrompt(ctx, prompt.PromptName, prompt.DefaultChatbotPrompt)

	rendered, err := prompt.Render(tmpl, clientMessage, historyText)
	if err != nil {
		return "", err
	}

	raw, err := r.llm.Complete(ctx, rendered, r.maxTokens)
	if err != nil {
		return "", &BackendError{Err: err}
	}

	sanitized := Sanitize(raw, historyText)
	r.logger.Debug("reply generated",
		"raw_len", len(raw),
		"sanitized_len", len(sanitized),
		"follow_up", historyText != prompt.NoHistory,
	)
	return sanitized, nil
}
