package llm

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/roomcraft/internal/service"
)

type memoryStore struct {
	entries map[string]*service.CachedResponse
	getErr  error
	saveErr error
	saves   int
	mu      sync.Mutex
}

func newMemoryStore() *memoryStore {
	return &memoryStore{entries: make(map[string]*service.CachedResponse)}
}

func (m *memoryStore) GetResponse(_ context.Context, key string) (*service.CachedResponse, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	resp, ok := m.entries[key]
	return resp, ok, nil
}

func (m *memoryStore) SaveResponse(_ context.Context, resp *service.CachedResponse) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.entries[resp.Key] = resp
	return nil
}

func (m *memoryStore) PruneResponses(_ context.Context, _ time.Time) (int64, error) { return 0, nil }
func (m *memoryStore) Migrate(_ context.Context) error                             { return nil }
func (m *memoryStore) Close() error                                                { return nil }

func TestResponseCache(t *testing.T) {
	cache := newResponseCache(time.Minute)
	defer cache.Close()

	_, found := cache.get("missing")
	assert.False(t, found)

	cache.set("k", ChatResponse{Content: "hello"})
	got, found := cache.get("k")
	require.True(t, found)
	assert.Equal(t, "hello", got.Content)
	assert.Equal(t, 1, cache.size())

	expired := newResponseCache(time.Nanosecond)
	defer expired.Close()
	expired.set("k", ChatResponse{Content: "stale"})
	time.Sleep(time.Millisecond)
	_, found = expired.get("k")
	assert.False(t, found)

	// Close is idempotent.
	cache.Close()
}

func TestCacheKey(t *testing.T) {
	a := ChatRequest{Model: "m", Messages: []Message{{Role: RoleUser, Content: "ab"}}}
	b := ChatRequest{Model: "m", Messages: []Message{{Role: RoleUser, Content: "ab"}}}
	c := ChatRequest{Model: "m", Messages: []Message{{Role: RoleUser, Content: "a"}, {Role: RoleUser, Content: "b"}}}

	assert.Equal(t, CacheKey(a), CacheKey(b))
	assert.NotEqual(t, CacheKey(a), CacheKey(c))
	assert.Len(t, CacheKey(a), 64)
}

func TestCachedClient(t *testing.T) {
	t.Run("second call served from memory", func(t *testing.T) {
		inner := &fakeClient{name: "qwen", results: []error{nil}, content: "answer"}
		store := newMemoryStore()
		client := NewCachedClient(inner, time.Minute, store)
		defer client.Close()

		first, err := client.Chat(context.Background(), userMessage)
		require.NoError(t, err)
		assert.False(t, first.Cached)

		second, err := client.Chat(context.Background(), userMessage)
		require.NoError(t, err)
		assert.True(t, second.Cached)
		assert.Equal(t, "answer", second.Content)

		assert.Equal(t, 1, inner.calls)
		assert.Equal(t, 1, store.saves)
		assert.Equal(t, "qwen", client.Name())
	})

	t.Run("durable store survives a new client", func(t *testing.T) {
		store := newMemoryStore()
		store.entries[CacheKey(userMessage)] = &service.CachedResponse{
			Key:       CacheKey(userMessage),
			Provider:  "openai",
			Model:     "gpt",
			Content:   "from disk",
			CreatedAt: time.Now().Add(-time.Second),
		}
		inner := &fakeClient{name: "openai", results: []error{nil}, content: "fresh"}
		client := NewCachedClient(inner, time.Minute, store)
		defer client.Close()

		resp, err := client.Chat(context.Background(), userMessage)
		require.NoError(t, err)
		assert.Equal(t, "from disk", resp.Content)
		assert.True(t, resp.Cached)
		assert.Zero(t, inner.calls)
	})

	t.Run("expired store entry is refreshed", func(t *testing.T) {
		store := newMemoryStore()
		store.entries[CacheKey(userMessage)] = &service.CachedResponse{
			Key:       CacheKey(userMessage),
			Provider:  "openai",
			Content:   "stale",
			CreatedAt: time.Now().Add(-time.Hour),
		}
		inner := &fakeClient{name: "openai", results: []error{nil}, content: "fresh"}
		client := NewCachedClient(inner, time.Minute, store)
		defer client.Close()

		resp, err := client.Chat(context.Background(), userMessage)
		require.NoError(t, err)
		assert.Equal(t, "fresh", resp.Content)
		assert.Equal(t, 1, inner.calls)
		assert.Equal(t, "fresh", store.entries[CacheKey(userMessage)].Content)
	})

	t.Run("store errors do not fail the request", func(t *testing.T) {
		store := newMemoryStore()
		store.getErr = errors.New("disk on fire")
		store.saveErr = errors.New("disk on fire")
		inner := &fakeClient{name: "openai", results: []error{nil}, content: "fresh"}
		client := NewCachedClient(inner, time.Minute, store)
		defer client.Close()

		resp, err := client.Chat(context.Background(), userMessage)
		require.NoError(t, err)
		assert.Equal(t, "fresh", resp.Content)
	})

	t.Run("errors are not cached", func(t *testing.T) {
		inner := &fakeClient{name: "openai", results: []error{errors.New("boom"), nil}, content: "ok"}
		client := NewCachedClient(inner, time.Minute, nil)
		defer client.Close()

		_, err := client.Chat(context.Background(), userMessage)
		require.Error(t, err)

		resp, err := client.Chat(context.Background(), userMessage)
		require.NoError(t, err)
		assert.Equal(t, "ok", resp.Content)
		assert.Equal(t, 2, inner.calls)
	})
}
