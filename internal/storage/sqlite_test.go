package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/roomcraft/internal/service"
)

func createTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	store, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func TestNewSQLiteStorage(t *testing.T) {
	t.Run("creates parent directory", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "nested", "dir", "roomcraft.db")
		store, err := NewSQLiteStorage(dbPath)
		require.NoError(t, err)
		defer func() { _ = store.Close() }()

		assert.Equal(t, dbPath, store.Path())
		assert.FileExists(t, dbPath)
	})

	t.Run("rejects empty path", func(t *testing.T) {
		_, err := NewSQLiteStorage("  ")
		assert.ErrorIs(t, err, ErrEmptyString)
	})
}

func TestMigrate(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	version, err := store.schemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)

	// Running again is a no-op.
	require.NoError(t, store.Migrate(ctx))

	var indexCount int
	err = store.db.QueryRow(`
		SELECT COUNT(*) FROM sqlite_master
		WHERE type='index' AND name='idx_ai_responses_created_at'
	`).Scan(&indexCount)
	require.NoError(t, err)
	assert.Equal(t, 1, indexCount)

	//nolint:staticcheck // nil context is the case under test
	assert.ErrorIs(t, store.Migrate(nil), ErrNilContext)
}

func TestResponses(t *testing.T) {
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		store := createTestStorage(t)
		got, ok, err := store.GetResponse(ctx, "nope")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, got)
	})

	t.Run("round trip", func(t *testing.T) {
		store := createTestStorage(t)
		created := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)
		require.NoError(t, store.SaveResponse(ctx, &service.CachedResponse{
			Key:       "abc",
			Provider:  "qwen",
			Model:     "qwen-turbo",
			Content:   `{"recommendedProductIds":["product-1"]}`,
			CreatedAt: created,
		}))

		got, ok, err := store.GetResponse(ctx, "abc")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "qwen", got.Provider)
		assert.Equal(t, "qwen-turbo", got.Model)
		assert.Equal(t, `{"recommendedProductIds":["product-1"]}`, got.Content)
		assert.True(t, created.Equal(got.CreatedAt), "created_at %v", got.CreatedAt)
	})

	t.Run("save replaces existing key", func(t *testing.T) {
		store := createTestStorage(t)
		require.NoError(t, store.SaveResponse(ctx, &service.CachedResponse{Key: "k", Provider: "qwen", Content: "first"}))
		require.NoError(t, store.SaveResponse(ctx, &service.CachedResponse{Key: "k", Provider: "openai", Content: "second"}))

		got, ok, err := store.GetResponse(ctx, "k")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "openai", got.Provider)
		assert.Equal(t, "second", got.Content)
		assert.False(t, got.CreatedAt.IsZero())

		count, err := store.CountResponses(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("validation", func(t *testing.T) {
		store := createTestStorage(t)
		tests := []struct {
			resp *service.CachedResponse
			want error
			name string
		}{
			{name: "nil", resp: nil, want: ErrNilParameter},
			{name: "no key", resp: &service.CachedResponse{Provider: "qwen"}, want: ErrInvalidResponse},
			{name: "no provider", resp: &service.CachedResponse{Key: "k"}, want: ErrInvalidResponse},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				assert.ErrorIs(t, store.SaveResponse(ctx, tt.resp), tt.want)
			})
		}

		_, _, err := store.GetResponse(ctx, "")
		assert.ErrorIs(t, err, ErrEmptyString)
	})
}

func TestPruneResponses(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

	ages := map[string]time.Duration{
		"fresh":   time.Hour,
		"day-old": 25 * time.Hour,
		"ancient": 30 * 24 * time.Hour,
	}
	for key, age := range ages {
		require.NoError(t, store.SaveResponse(ctx, &service.CachedResponse{
			Key:       key,
			Provider:  "qwen",
			Content:   key,
			CreatedAt: now.Add(-age),
		}))
	}

	deleted, err := store.PruneResponses(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	_, ok, err := store.GetResponse(ctx, "fresh")
	require.NoError(t, err)
	assert.True(t, ok)

	for _, key := range []string{"day-old", "ancient"} {
		_, ok, err := store.GetResponse(ctx, key)
		require.NoError(t, err)
		assert.False(t, ok, key)
	}

	deleted, err = store.PruneResponses(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Zero(t, deleted)
}
