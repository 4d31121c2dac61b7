package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Veraticus/roomcraft/internal/common"
)

// DefaultProviders is the provider priority used when none is configured.
var DefaultProviders = []string{ProviderQwen, ProviderOpenAI}

// Strategy tries chat clients in priority order. Each attempt waits on a
// shared rate limiter and retries transient failures before moving on to
// the next provider. A Strategy is built once and passed to whatever needs
// it.
type Strategy struct {
	limiter   *rateLimiter
	clients   []ChatClient
	retryOpts common.RetryOptions
}

// StrategyOptions configures NewStrategy.
type StrategyOptions struct {
	Retry     common.RetryOptions
	RateLimit int
}

// NewStrategy creates a strategy over clients, highest priority first.
func NewStrategy(clients []ChatClient, opts StrategyOptions) *Strategy {
	retryOpts := opts.Retry
	if retryOpts.MaxAttempts == 0 {
		retryOpts.MaxAttempts = 3
	}
	if retryOpts.InitialDelay == 0 {
		retryOpts.InitialDelay = time.Second
	}
	if retryOpts.MaxDelay == 0 {
		retryOpts.MaxDelay = 30 * time.Second
	}
	if retryOpts.Multiplier == 0 {
		retryOpts.Multiplier = 2.0
	}

	return &Strategy{
		clients:   clients,
		limiter:   newRateLimiter(opts.RateLimit),
		retryOpts: retryOpts,
	}
}

// BuildStrategy creates clients for the providers in order. A provider whose
// configuration is missing or invalid is skipped with a log line; the
// resulting strategy may be empty.
func BuildStrategy(providers []string, configs map[string]Config, opts StrategyOptions) *Strategy {
	if len(providers) == 0 {
		providers = DefaultProviders
	}

	var clients []ChatClient
	seen := make(map[string]bool, len(providers))
	for _, name := range providers {
		provider := normalizeProvider(name)
		if seen[provider] {
			continue
		}
		seen[provider] = true

		cfg := configs[provider]
		cfg.Provider = provider
		client, err := NewClient(cfg)
		if err != nil {
			slog.Debug("Skipping LLM provider", "provider", provider, "reason", err)
			continue
		}
		clients = append(clients, client)
	}

	s := NewStrategy(clients, opts)
	slog.Debug("LLM provider strategy ready", "providers", s.Providers())
	return s
}

// Available reports whether any provider is configured.
func (s *Strategy) Available() bool {
	return len(s.clients) > 0
}

// Providers returns the provider names in priority order.
func (s *Strategy) Providers() []string {
	names := make([]string, len(s.clients))
	for i, c := range s.clients {
		names[i] = c.Name()
	}
	return names
}

// Name describes the strategy for logs.
func (s *Strategy) Name() string {
	return "strategy(" + strings.Join(s.Providers(), ",") + ")"
}

// Chat returns the first successful provider response. It fails with
// common.ErrNoProvider when there are no providers or all of them failed.
func (s *Strategy) Chat(ctx context.Context, req ChatRequest) (ChatResponse, error) {
	if len(s.clients) == 0 {
		return ChatResponse{}, common.ErrNoProvider
	}

	var errs []error
	for _, client := range s.clients {
		if err := ctx.Err(); err != nil {
			return ChatResponse{}, err
		}

		var resp ChatResponse
		err := common.WithRetry(ctx, func(ctx context.Context) error {
			if err := s.limiter.wait(ctx); err != nil {
				return err
			}
			var chatErr error
			resp, chatErr = client.Chat(ctx, req)
			return chatErr
		}, s.retryOpts)
		if err == nil {
			return resp, nil
		}

		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return ChatResponse{}, err
		}
		slog.Warn("LLM provider failed, trying next", "provider", client.Name(), "error", err)
		errs = append(errs, fmt.Errorf("%s: %w", client.Name(), err))
	}

	return ChatResponse{}, fmt.Errorf("%w: %w", common.ErrNoProvider, errors.Join(errs...))
}
