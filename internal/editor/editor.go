package editor

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/issa-compass/assistant/internal/llm"
	"github.com/issa-compass/assistant/internal/prompt"
	"github.com/issa-compass/assistant/internal/store"
)

// Store is the slice of the template store the editor needs.
type Store interface {
	GetOrCreatePrompt(ctx context.Context, name, def string) string
	UpdatePrompt(ctx context.Context, name, content string) bool
	RecordRevision(ctx context.Context, rev store.Revision) bool
}

// EventPublisher announces accepted revisions to interested consumers.
// The editor runs fine without one.
type EventPublisher interface {
	Publish(subject string, data any) error
}

// SubjectPromptUpdated is the event subject for accepted template revisions.
const SubjectPromptUpdated = "assistant.prompt.updated"

// rawPreviewLimit bounds how much raw backend output a failure Result carries.
const rawPreviewLimit = 500

// displayLimit bounds the template text echoed back after a salvage; the full
// text is what gets persisted.
const displayLimit = 200

// Result is the outcome of a revision attempt. On failure, RawResponse holds
// a bounded preview of the backend output for diagnosis.
type Result struct {
	Success       bool
	UpdatedPrompt string
	ChangesMade   string
	Err           string
	RawResponse   string
}

// Editor asks the backend to rewrite the live template and commits validated
// proposals to the store. It never trusts the backend's structured-output
// discipline: every parse has a salvage path, and fragments under the length
// floor are rejected rather than written over the live template.
type Editor struct {
	store     Store
	llm       llm.Client
	bus       EventPublisher
	logger    *slog.Logger
	maxTokens int
}

func New(s Store, client llm.Client, bus EventPublisher, maxTokens int, logger *slog.Logger) *Editor {
	return &Editor{
		store:     s,
		llm:       client,
		bus:       bus,
		logger:    logger,
		maxTokens: maxTokens,
	}
}

// CurrentPrompt returns the live template, seeding the store with the
// compiled-in default on first access.
func (e *Editor) CurrentPrompt(ctx context.Context) string {
	return e.store.GetOrCreatePrompt(ctx, prompt.PromptName, prompt.DefaultChatbotPrompt)
}

// ReviseFromExample rewrites the template by diffing the AI's predicted reply
// against what the real consultant said.
func (e *Editor) ReviseFromExample(ctx context.Context, clientMessage, historyText, consultantReply, predictedReply string) Result {
	current := e.CurrentPrompt(ctx)
	input := fmt.Sprintf(prompt.EditorPrompt,
		current, historyText, clientMessage, consultantReply, predictedReply)

	raw, err := e.llm.Complete(ctx, input, e.maxTokens)
	if err != nil {
		e.logger.Error("editor backend call failed", "error", err)
		return Result{Success: false, Err: err.Error()}
	}

	if p, err := decodeProposal(raw); err == nil && p.Prompt != "" {
		rationale := p.ChangesMade
		if rationale == "" {
			rationale = "No description provided"
		}
		return e.commit(ctx, p.Prompt, store.SourceExample, rationale, p.Prompt)
	}

	if extracted, ok := salvagePrompt(raw); ok {
		e.logger.Warn("editor output salvaged", "extracted_len", len(extracted))
		return e.commit(ctx, extracted, store.SourceExample, "Recovered template from malformed editor output", extracted)
	}

	return Result{
		Success:     false,
		Err:         "failed to parse improved prompt from backend output",
		RawResponse: preview(raw),
	}
}

// ReviseManually rewrites the template from free-text operator instructions.
// On a salvage the echoed template is capped for display; the persisted text
// is always the full extraction.
func (e *Editor) ReviseManually(ctx context.Context, instructions string) Result {
	current := e.CurrentPrompt(ctx)
	input := fmt.Sprintf(prompt.ManualEditorPrompt, current, instructions)

	raw, err := e.llm.Complete(ctx, input, e.maxTokens)
	if err != nil {
		e.logger.Error("editor backend call failed", "error", err)
		return Result{Success: false, Err: err.Error()}
	}

	if p, err := decodeProposal(raw); err == nil && p.Prompt != "" {
		return e.commit(ctx, p.Prompt, store.SourceManual, instructions, p.Prompt)
	}

	if extracted, ok := salvagePrompt(raw); ok {
		e.logger.Warn("editor output salvaged", "extracted_len", len(extracted))
		display := extracted
		if len(display) > displayLimit {
			display = display[:displayLimit] + "..."
		}
		return e.commit(ctx, extracted, store.SourceManual, instructions, display)
	}

	return Result{
		Success:     false,
		Err:         "failed to parse improved prompt from backend output",
		RawResponse: preview(raw),
	}
}

// commit persists content as the live template and reports the revision.
// The audit row and the bus event are best-effort.
func (e *Editor) commit(ctx context.Context, content, source, rationale, display string) Result {
	if !e.store.UpdatePrompt(ctx, prompt.PromptName, content) {
		return Result{Success: false, Err: "failed to persist updated prompt"}
	}

	e.store.RecordRevision(ctx, store.Revision{
		PromptName: prompt.PromptName,
		Source:     source,
		Rationale:  rationale,
	})

	if e.bus != nil {
		if err := e.bus.Publish(SubjectPromptUpdated, map[string]any{
			"prompt_name": prompt.PromptName,
			"source":      source,
			"rationale":   rationale,
		}); err != nil {
			e.logger.Warn("failed to publish revision event", "error", err)
		}
	}

	e.logger.Info("template revised", "source", source, "content_len", len(content))
	return Result{Success: true, UpdatedPrompt: display, ChangesMade: rationale}
}

func preview(raw string) string {
	if len(raw) > rawPreviewLimit {
		return raw[:rawPreviewLimit]
	}
	return raw
}
