package editor

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/issa-compass/assistant/internal/prompt"
	"github.com/issa-compass/assistant/internal/store"
)

type fakeStore struct {
	current    string
	updates    []string
	revisions  []store.Revision
	updateFail bool
}

func (f *fakeStore) GetOrCreatePrompt(_ context.Context, _ string, def string) string {
	if f.current == "" {
		return def
	}
	return f.current
}

func (f *fakeStore) UpdatePrompt(_ context.Context, _ string, content string) bool {
	if f.updateFail {
		return false
	}
	f.updates = append(f.updates, content)
	return true
}

func (f *fakeStore) RecordRevision(_ context.Context, rev store.Revision) bool {
	f.revisions = append(f.revisions, rev)
	return true
}

type fakeLLM struct {
	gotPrompt string
	text      string
	err       error
}

func (f *fakeLLM) Complete(_ context.Context, p string, _ int) (string, error) {
	f.gotPrompt = p
	return f.text, f.err
}

type fakeBus struct {
	subjects []string
}

func (f *fakeBus) Publish(subject string, _ any) error {
	f.subjects = append(f.subjects, subject)
	return nil
}

func TestReviseFromExample_CleanJSON(t *testing.T) {
	s := &fakeStore{current: "old template {chat_history} {client_message}"}
	llm := &fakeLLM{text: `{"prompt": "new template {chat_history} {client_message}", "changes_made": "warmer tone"}`}
	bus := &fakeBus{}
	e := New(s, llm, bus, 4096, slog.Default())

	res := e.ReviseFromExample(context.Background(),
		"Can I apply from Bali?", "[CLIENT]: Hello", "Yes, at the Jakarta embassy.", "You can apply from Indonesia.")

	if !res.Success {
		t.Fatalf("expected success, got %+v", res)
	}
	if res.ChangesMade != "warmer tone" {
		t.Errorf("ChangesMade = %q", res.ChangesMade)
	}
	if len(s.updates) != 1 || s.updates[0] != "new template {chat_history} {client_message}" {
		t.Errorf("store updates = %v", s.updates)
	}
	if len(s.revisions) != 1 || s.revisions[0].Source != store.SourceExample {
		t.Errorf("revisions = %+v", s.revisions)
	}
	if len(bus.subjects) != 1 || bus.subjects[0] != SubjectPromptUpdated {
		t.Errorf("published subjects = %v", bus.subjects)
	}

	// The comparison prompt embeds all five inputs.
	for _, want := range []string{
		"old template", "Can I apply from Bali?", "[CLIENT]: Hello",
		"Yes, at the Jakarta embassy.", "You can apply from Indonesia.",
	} {
		if !strings.Contains(llm.gotPrompt, want) {
			t.Errorf("editor prompt missing %q", want)
		}
	}
}

func TestReviseFromExample_SalvagesMalformedOutput(t *testing.T) {
	body := strings.Repeat("You are a visa consultant. ", 3) + "\n" + strings.Repeat("Answer directly. ", 5)
	// A literal newline inside the string value makes strict decoding fail;
	// the salvage path should still recover the template.
	llm := &fakeLLM{text: "Sure! Here you go:\n{\"prompt\": \"" + body + "\"}\nHope that helps"}
	s := &fakeStore{}
	e := New(s, llm, nil, 4096, slog.Default())

	res := e.ReviseFromExample(context.Background(), "msg", prompt.NoHistory, "real", "predicted")

	if !res.Success {
		t.Fatalf("expected salvage success, got %+v", res)
	}
	if len(s.updates) != 1 || s.updates[0] != body {
		t.Errorf("store should hold the full salvaged template, got %v", s.updates)
	}
}

func TestReviseFromExample_RejectsShortFragment(t *testing.T) {
	llm := &fakeLLM{text: `oops {"prompt": "too short to be a real template"`}
	s := &fakeStore{}
	e := New(s, llm, nil, 4096, slog.Default())

	res := e.ReviseFromExample(context.Background(), "msg", prompt.NoHistory, "real", "predicted")

	if res.Success {
		t.Fatal("short fragment must not be accepted")
	}
	if len(s.updates) != 0 {
		t.Errorf("store must stay untouched, got %v", s.updates)
	}
	if res.RawResponse == "" {
		t.Error("failure should carry the raw output for diagnosis")
	}
}

func TestReviseFromExample_RawPreviewBounded(t *testing.T) {
	llm := &fakeLLM{text: strings.Repeat("x", 2000)}
	e := New(&fakeStore{}, llm, nil, 4096, slog.Default())

	res := e.ReviseFromExample(context.Background(), "msg", prompt.NoHistory, "real", "predicted")

	if res.Success {
		t.Fatal("expected failure")
	}
	if len(res.RawResponse) > rawPreviewLimit {
		t.Errorf("raw preview = %d bytes, want <= %d", len(res.RawResponse), rawPreviewLimit)
	}
}

func TestReviseFromExample_BackendError(t *testing.T) {
	llm := &fakeLLM{err: errors.New("auth missing")}
	s := &fakeStore{}
	e := New(s, llm, nil, 4096, slog.Default())

	res := e.ReviseFromExample(context.Background(), "msg", prompt.NoHistory, "real", "predicted")

	if res.Success {
		t.Fatal("expected failure on backend error")
	}
	if len(s.updates) != 0 {
		t.Error("store must stay untouched on backend error")
	}
}

func TestReviseManually_PersistsFullTextCapsDisplay(t *testing.T) {
	body := strings.Repeat("Always mention the refund policy when asked about fees. ", 12) // > 500 chars
	llm := &fakeLLM{text: "Of course, here is the JSON you asked for:\n\"prompt\": \"" + body + "\" and that is all"}
	s := &fakeStore{}
	e := New(s, llm, nil, 4096, slog.Default())

	res := e.ReviseManually(context.Background(), "add a line about refunds")

	if !res.Success {
		t.Fatalf("expected success, got %+v", res)
	}
	if len(s.updates) != 1 {
		t.Fatalf("expected one store write, got %d", len(s.updates))
	}
	if !strings.HasPrefix(s.updates[0], "Always mention the refund policy") || len(s.updates[0]) <= displayLimit {
		t.Errorf("persisted text should be the full extraction, got %d bytes", len(s.updates[0]))
	}
	if len(res.UpdatedPrompt) != displayLimit+3 || !strings.HasSuffix(res.UpdatedPrompt, "...") {
		t.Errorf("display text should be capped at %d+ellipsis, got %d bytes", displayLimit, len(res.UpdatedPrompt))
	}
}

func TestReviseManually_CleanJSON(t *testing.T) {
	llm := &fakeLLM{text: `{"prompt": "short but valid full template"}`}
	s := &fakeStore{}
	e := New(s, llm, nil, 4096, slog.Default())

	res := e.ReviseManually(context.Background(), "be terser")

	if !res.Success {
		t.Fatalf("expected success, got %+v", res)
	}
	if len(s.updates) != 1 || s.updates[0] != "short but valid full template" {
		t.Errorf("store updates = %v", s.updates)
	}
	if len(s.revisions) != 1 || s.revisions[0].Source != store.SourceManual {
		t.Errorf("revisions = %+v", s.revisions)
	}
}

func TestRevise_PersistFailure(t *testing.T) {
	llm := &fakeLLM{text: `{"prompt": "valid template"}`}
	s := &fakeStore{updateFail: true}
	e := New(s, llm, nil, 4096, slog.Default())

	res := e.ReviseManually(context.Background(), "instructions")

	if res.Success {
		t.Fatal("expected failure when the store write fails")
	}
}
