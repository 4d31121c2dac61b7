package llm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync"
	"time"

	"github.com/Veraticus/roomcraft/internal/service"
)

// cacheEntry represents a cached chat response.
type cacheEntry struct {
	expiry   time.Time
	response ChatResponse
}

// responseCache provides thread-safe in-memory caching for chat responses.
type responseCache struct {
	entries map[string]cacheEntry
	stopCh  chan struct{}
	ttl     time.Duration
	mu      sync.RWMutex
	once    sync.Once
}

// newResponseCache creates a new cache with the specified TTL.
func newResponseCache(ttl time.Duration) *responseCache {
	if ttl == 0 {
		ttl = 15 * time.Minute
	}

	cache := &responseCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		stopCh:  make(chan struct{}),
	}

	go cache.cleanup()

	return cache
}

func (c *responseCache) get(key string) (ChatResponse, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.entries[key]
	if !exists || time.Now().After(entry.expiry) {
		return ChatResponse{}, false
	}
	return entry.response, true
}

func (c *responseCache) set(key string, response ChatResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{
		response: response,
		expiry:   time.Now().Add(c.ttl),
	}
}

// cleanup periodically removes expired entries.
func (c *responseCache) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.mu.Lock()
			now := time.Now()
			for key, entry := range c.entries {
				if now.After(entry.expiry) {
					delete(c.entries, key)
				}
			}
			c.mu.Unlock()
		}
	}
}

func (c *responseCache) size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Close stops the cleanup goroutine.
func (c *responseCache) Close() {
	c.once.Do(func() { close(c.stopCh) })
}

// CacheKey hashes a request's model and messages.
func CacheKey(req ChatRequest) string {
	h := sha256.New()
	h.Write([]byte(req.Model))
	for _, m := range req.Messages {
		h.Write([]byte{0})
		h.Write([]byte(m.Role))
		h.Write([]byte{0})
		h.Write([]byte(m.Content))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// CachedClient answers repeated requests from memory, then from the durable
// store, before calling the wrapped client.
type CachedClient struct {
	inner ChatClient
	store service.ResponseStore
	cache *responseCache
	ttl   time.Duration
}

// NewCachedClient wraps inner. store may be nil.
func NewCachedClient(inner ChatClient, ttl time.Duration, store service.ResponseStore) *CachedClient {
	return &CachedClient{
		inner: inner,
		store: store,
		cache: newResponseCache(ttl),
		ttl:   ttl,
	}
}

// Name returns the wrapped client's name.
func (c *CachedClient) Name() string {
	return c.inner.Name()
}

// Chat returns a cached response when one exists. Store failures are logged
// and never fail the request.
func (c *CachedClient) Chat(ctx context.Context, req ChatRequest) (ChatResponse, error) {
	key := CacheKey(req)

	if resp, ok := c.cache.get(key); ok {
		slog.Debug("LLM cache hit", "source", "memory", "key", key[:12])
		resp.Cached = true
		return resp, nil
	}

	if c.store != nil {
		stored, ok, err := c.store.GetResponse(ctx, key)
		switch {
		case err != nil:
			slog.Warn("Failed to read cached LLM response", "error", err)
		case ok && c.ttl > 0 && time.Since(stored.CreatedAt) > c.ttl:
			slog.Debug("Stored LLM response expired", "key", key[:12], "created_at", stored.CreatedAt)
		case ok:
			slog.Debug("LLM cache hit", "source", "store", "key", key[:12])
			resp := ChatResponse{Provider: stored.Provider, Model: stored.Model, Content: stored.Content}
			c.cache.set(key, resp)
			resp.Cached = true
			return resp, nil
		}
	}

	resp, err := c.inner.Chat(ctx, req)
	if err != nil {
		return ChatResponse{}, err
	}

	c.cache.set(key, resp)
	if c.store != nil {
		err := c.store.SaveResponse(ctx, &service.CachedResponse{
			Key:       key,
			Provider:  resp.Provider,
			Model:     resp.Model,
			Content:   resp.Content,
			CreatedAt: time.Now(),
		})
		if err != nil {
			slog.Warn("Failed to store LLM response", "error", err)
		}
	}
	return resp, nil
}

// Close stops the in-memory cache's cleanup goroutine.
func (c *CachedClient) Close() {
	c.cache.Close()
}
