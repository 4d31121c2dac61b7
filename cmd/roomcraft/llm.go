package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/roomcraft/internal/advisor"
	"github.com/Veraticus/roomcraft/internal/common"
	"github.com/Veraticus/roomcraft/internal/config"
	"github.com/Veraticus/roomcraft/internal/llm"
	"github.com/Veraticus/roomcraft/internal/recommend"
)

// createAdvisor builds the AI advisor from configuration: a provider
// strategy wrapped in the response cache, backed by SQLite when the
// database can be opened. With no provider configured the advisor is nil
// and the engine selects by rules. The returned cleanup must always be
// called.
func createAdvisor(ctx context.Context, settings config.Settings) (recommend.Advisor, func(), error) {
	base := llm.Config{
		Timeout:     settings.Timeout,
		Temperature: settings.Temperature,
		MaxTokens:   settings.MaxTokens,
	}
	openai := base
	openai.APIKey = settings.OpenAIKey
	qwen := base
	qwen.APIKey = settings.DashScopeKey

	strategy := llm.BuildStrategy(settings.Providers, map[string]llm.Config{
		llm.ProviderOpenAI: openai,
		llm.ProviderQwen:   qwen,
	}, llm.StrategyOptions{
		Retry: common.RetryOptions{
			MaxAttempts:  settings.MaxRetries,
			InitialDelay: settings.RetryDelay,
		},
		RateLimit: settings.RateLimit,
	})
	if !strategy.Available() {
		slog.Warn("No AI provider configured, using rule-based selection",
			"hint", "set DASHSCOPE_API_KEY or OPENAI_API_KEY")
		return nil, func() {}, nil
	}

	var cached *llm.CachedClient
	closeStore := func() {}

	store, err := initStorage(ctx, settings)
	if err != nil {
		slog.Warn("Response store unavailable, caching in memory only", "path", settings.DatabasePath, "error", err)
		cached = llm.NewCachedClient(strategy, settings.CacheTTL, nil)
	} else {
		cached = llm.NewCachedClient(strategy, settings.CacheTTL, store)
		closeStore = func() {
			if closeErr := store.Close(); closeErr != nil {
				slog.Warn("Failed to close response store", "error", closeErr)
			}
		}
	}
	cleanup := func() {
		cached.Close()
		closeStore()
	}

	adv, err := advisor.New(cached, advisor.Config{
		Model:       settings.Model,
		Temperature: settings.Temperature,
		MaxTokens:   settings.MaxTokens,
	})
	if err != nil {
		cleanup()
		return nil, func() {}, fmt.Errorf("failed to create advisor: %w", err)
	}

	slog.Debug("AI advisor ready", "providers", strategy.Providers())
	return adv, cleanup, nil
}
