package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Veraticus/roomcraft/internal/common"
)

// openAIClient talks to any endpoint implementing the OpenAI chat
// completions protocol.
type openAIClient struct {
	httpClient  *http.Client
	name        string
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	maxTokens   int
}

// NewOpenAICompatibleClient creates a client posting to
// <BaseURL>/chat/completions.
func NewOpenAICompatibleClient(cfg Config) (ChatClient, error) {
	name := normalizeProvider(cfg.Provider)
	if name == "" {
		name = ProviderOpenAI
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: %s API key is required", common.ErrMissingConfig, name)
	}
	if name == ProviderQwen && !strings.HasPrefix(cfg.APIKey, "sk-") {
		return nil, fmt.Errorf("%w: DashScope API key must start with \"sk-\"", common.ErrInvalidConfig)
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: %s base URL is required", common.ErrMissingConfig, name)
	}

	model := cfg.Model
	if model == "" {
		model = defaults[ProviderOpenAI].model
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.3
	}

	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 2000
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	return &openAIClient{
		name:        name,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:      cfg.APIKey,
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}, nil
}

func (c *openAIClient) Name() string {
	return c.name
}

type chatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

// chatCompletionResponse represents the chat completions response structure.
type chatCompletionResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
		Index        int    `json:"index"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// Chat sends a chat completion request. Rate limiting and server errors are
// returned as transient errors; other failures are permanent.
func (c *openAIClient) Chat(ctx context.Context, req ChatRequest) (ChatResponse, error) {
	if len(req.Messages) == 0 {
		return ChatResponse{}, common.Permanent(errors.New("chat request has no messages"))
	}

	body := chatCompletionRequest{
		Model:       c.model,
		Messages:    req.Messages,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	}
	if req.Model != "" {
		body.Model = req.Model
	}
	if req.Temperature != 0 {
		body.Temperature = req.Temperature
	}
	if req.MaxTokens != 0 {
		body.MaxTokens = req.MaxTokens
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return ChatResponse{}, common.Permanent(fmt.Errorf("failed to marshal request: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(jsonBody))
	if err != nil {
		return ChatResponse{}, common.Permanent(fmt.Errorf("failed to create request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return ChatResponse{}, ctx.Err()
		}
		return ChatResponse{}, common.Transient(fmt.Errorf("%s request failed: %w", c.name, err))
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return ChatResponse{}, common.Transient(fmt.Errorf("failed to read response: %w", err))
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return ChatResponse{}, common.Transient(fmt.Errorf("%w: %s (status %d)", common.ErrRateLimit, c.name, resp.StatusCode))
	case resp.StatusCode >= http.StatusInternalServerError:
		return ChatResponse{}, common.Transient(fmt.Errorf("%s API error (status %d): %s", c.name, resp.StatusCode, string(respBody)))
	case resp.StatusCode != http.StatusOK:
		return ChatResponse{}, common.Permanent(fmt.Errorf("%s API error (status %d): %s", c.name, resp.StatusCode, string(respBody)))
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(respBody, &completion); err != nil {
		return ChatResponse{}, common.Permanent(fmt.Errorf("%w: %w", common.ErrProviderResponse, err))
	}
	if len(completion.Choices) == 0 {
		return ChatResponse{}, common.Permanent(fmt.Errorf("%w: no completion choices returned", common.ErrProviderResponse))
	}

	model := completion.Model
	if model == "" {
		model = body.Model
	}

	return ChatResponse{
		Provider: c.name,
		Model:    model,
		Content:  completion.Choices[0].Message.Content,
		Usage: Usage{
			PromptTokens:     completion.Usage.PromptTokens,
			CompletionTokens: completion.Usage.CompletionTokens,
			TotalTokens:      completion.Usage.TotalTokens,
		},
	}, nil
}
