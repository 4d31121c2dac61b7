package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/roomcraft/internal/service"
)

// GetResponse returns the cached response stored under key.
func (s *SQLiteStorage) GetResponse(ctx context.Context, key string) (*service.CachedResponse, bool, error) {
	if err := validateContext(ctx); err != nil {
		return nil, false, err
	}
	if err := validateString(key, "key"); err != nil {
		return nil, false, err
	}

	var resp service.CachedResponse
	err := s.db.QueryRowContext(ctx, `
		SELECT key, provider, model, content, created_at
		FROM ai_responses
		WHERE key = ?
	`, key).Scan(&resp.Key, &resp.Provider, &resp.Model, &resp.Content, &resp.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get cached response: %w", err)
	}
	return &resp, true, nil
}

// SaveResponse stores resp, replacing any entry with the same key. A zero
// CreatedAt is set to now.
func (s *SQLiteStorage) SaveResponse(ctx context.Context, resp *service.CachedResponse) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateResponse(resp); err != nil {
		return err
	}

	createdAt := resp.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO ai_responses (key, provider, model, content, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			provider = excluded.provider,
			model = excluded.model,
			content = excluded.content,
			created_at = excluded.created_at
	`, resp.Key, resp.Provider, resp.Model, resp.Content, createdAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to save cached response: %w", err)
	}
	return nil
}

// PruneResponses deletes responses created before cutoff.
func (s *SQLiteStorage) PruneResponses(ctx context.Context, cutoff time.Time) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM ai_responses WHERE created_at < ?`, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to prune cached responses: %w", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count pruned responses: %w", err)
	}
	return deleted, nil
}

// CountResponses returns the number of stored responses.
func (s *SQLiteStorage) CountResponses(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM ai_responses`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count cached responses: %w", err)
	}
	return count, nil
}
