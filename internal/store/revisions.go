package store

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RevisionSource records what triggered a template revision.
const (
	SourceExample = "example"
	SourceManual  = "manual"
	SourceReset   = "reset"
)

// Revision is one accepted template edit, kept for audit. The prompts table
// only holds the latest content; this log is how operators reconstruct what
// the editor changed and why.
type Revision struct {
	ID         uuid.UUID
	PromptName string
	Source     string
	Rationale  string
	CreatedAt  time.Time
}

// RecordRevision appends an audit row. Failures are logged and swallowed:
// losing an audit entry must never fail the revision itself.
func (s *Store) RecordRevision(ctx context.Context, rev Revision) bool {
	if rev.ID == uuid.Nil {
		rev.ID = uuid.New()
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO prompt_revisions (id, prompt_name, source, rationale, created_at)
		 VALUES ($1, $2, $3, $4, now())`,
		rev.ID, rev.PromptName, rev.Source, rev.Rationale,
	)
	if err != nil {
		s.logger.Error("record revision failed", "prompt", rev.PromptName, "source", rev.Source, "error", err)
		return false
	}
	return true
}
