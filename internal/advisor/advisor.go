// Package advisor asks a chat model to choose products from a candidate set
// and validates its answer.
package advisor

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/roomcraft/internal/common"
	"github.com/Veraticus/roomcraft/internal/llm"
	"github.com/Veraticus/roomcraft/internal/recommend"
)

var _ recommend.Advisor = (*LLMAdvisor)(nil)

// Config holds the completion settings used for advice.
type Config struct {
	Model       string
	Temperature float64
	MaxTokens   int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Temperature: 0.3,
		MaxTokens:   2000,
	}
}

// LLMAdvisor implements recommend.Advisor on top of a chat client.
type LLMAdvisor struct {
	client  llm.ChatClient
	prompts *PromptBuilder
	config  Config
}

// New creates an advisor. client is usually an llm.Strategy, optionally
// wrapped in an llm.CachedClient.
func New(client llm.ChatClient, config Config) (*LLMAdvisor, error) {
	prompts, err := NewPromptBuilder()
	if err != nil {
		return nil, err
	}
	return &LLMAdvisor{client: client, prompts: prompts, config: config}, nil
}

// Advise renders the prompts, calls the model and parses its answer.
// Provider failures are returned as errors; an unusable answer is returned
// as a parse-error result.
func (a *LLMAdvisor) Advise(ctx context.Context, req recommend.AdviceRequest) (recommend.AdviceResult, error) {
	if a.client == nil {
		return recommend.AdviceResult{}, common.ErrNoProvider
	}

	system, err := a.prompts.System(req.Request.Language)
	if err != nil {
		return recommend.AdviceResult{}, err
	}
	user, err := a.prompts.User(req.Request, req.Candidates)
	if err != nil {
		return recommend.AdviceResult{}, err
	}

	resp, err := a.client.Chat(ctx, llm.ChatRequest{
		Model:       a.config.Model,
		Temperature: a.config.Temperature,
		MaxTokens:   a.config.MaxTokens,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: system},
			{Role: llm.RoleUser, Content: user},
		},
	})
	if err != nil {
		return recommend.AdviceResult{}, fmt.Errorf("requesting advice from %s: %w", a.client.Name(), err)
	}

	result := ParseAdvice(resp.Content, req.Candidates)
	slog.Debug("Parsed AI advice",
		"provider", resp.Provider,
		"cached", resp.Cached,
		"kind", result.Kind,
		"products", len(result.ProductIDs),
		"candidates", len(req.Candidates))
	return result, nil
}
