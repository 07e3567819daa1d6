package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

// GetPrompt returns the stored template content for name, or ok=false when the
// row is absent or the read failed.
func (s *Store) GetPrompt(ctx context.Context, name string) (string, bool) {
	var content string
	err := s.pool.QueryRow(ctx,
		`SELECT content FROM prompts WHERE name = $1`, name,
	).Scan(&content)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			s.logger.Error("get prompt failed", "name", name, "error", err)
		}
		return "", false
	}
	return content, true
}

// CreatePrompt inserts a new template row. Returns false on conflict or failure.
func (s *Store) CreatePrompt(ctx context.Context, name, content string) bool {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO prompts (name, content, updated_at) VALUES ($1, $2, now())`,
		name, content,
	)
	if err != nil {
		s.logger.Error("create prompt failed", "name", name, "error", err)
		return false
	}
	return true
}

// UpdatePrompt overwrites the template content for name. Last writer wins.
func (s *Store) UpdatePrompt(ctx context.Context, name, content string) bool {
	tag, err := s.pool.Exec(ctx,
		`UPDATE prompts SET content = $1, updated_at = now() WHERE name = $2`,
		content, name,
	)
	if err != nil {
		s.logger.Error("update prompt failed", "name", name, "error", err)
		return false
	}
	if tag.RowsAffected() == 0 {
		s.logger.Warn("update prompt matched no row", "name", name)
		return false
	}
	return true
}

// GetOrCreatePrompt returns the stored template, seeding the row with def when
// absent. The default is returned even if the seed write fails, so a broken
// store degrades to the compiled-in template instead of an empty reply.
func (s *Store) GetOrCreatePrompt(ctx context.Context, name, def string) string {
	if content, ok := s.GetPrompt(ctx, name); ok {
		return content
	}
	s.CreatePrompt(ctx, name, def)
	return def
}
