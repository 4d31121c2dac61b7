package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/roomcraft/internal/common"
)

func TestNewOpenAICompatibleClient(t *testing.T) {
	tests := []struct {
		wantErr error
		name    string
		config  Config
	}{
		{
			name:   "valid openai config",
			config: Config{Provider: "openai", APIKey: "test-key", BaseURL: "http://localhost"},
		},
		{
			name:    "missing API key",
			config:  Config{Provider: "openai", BaseURL: "http://localhost"},
			wantErr: common.ErrMissingConfig,
		},
		{
			name:    "missing base URL",
			config:  Config{Provider: "openai", APIKey: "test-key"},
			wantErr: common.ErrMissingConfig,
		},
		{
			name:   "dashscope key with sk- prefix",
			config: Config{Provider: "dashscope", APIKey: "sk-abc", BaseURL: "http://localhost"},
		},
		{
			name:    "dashscope key without prefix",
			config:  Config{Provider: "qwen", APIKey: "abc", BaseURL: "http://localhost"},
			wantErr: common.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewOpenAICompatibleClient(tt.config)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, client)
		})
	}
}

func TestNewClient(t *testing.T) {
	client, err := NewClient(Config{Provider: "DashScope", APIKey: "sk-test"})
	require.NoError(t, err)
	assert.Equal(t, ProviderQwen, client.Name())

	oc, ok := client.(*openAIClient)
	require.True(t, ok)
	assert.Equal(t, "https://dashscope.aliyuncs.com/compatible-mode/v1", oc.baseURL)
	assert.Equal(t, "qwen-turbo", oc.model)

	_, err = NewClient(Config{Provider: "anthropic", APIKey: "key"})
	require.Error(t, err)
}

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, ChatClient) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewOpenAICompatibleClient(Config{
		Provider: "openai",
		APIKey:   "test-key",
		BaseURL:  server.URL + "/v1/",
		Model:    "gpt-test",
	})
	require.NoError(t, err)
	return server, client
}

func TestOpenAIClient_Chat(t *testing.T) {
	var got chatCompletionRequest
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprint(w, `{
			"id": "chatcmpl-1",
			"model": "gpt-test-2025",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "{\"recommendedProductIds\":[\"product-1\"]}"}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15}
		}`)
	})

	resp, err := client.Chat(context.Background(), ChatRequest{
		Messages:  []Message{{Role: RoleSystem, Content: "be brief"}, {Role: RoleUser, Content: "pick"}},
		MaxTokens: 500,
	})
	require.NoError(t, err)

	assert.Equal(t, "gpt-test", got.Model)
	assert.Equal(t, 500, got.MaxTokens)
	assert.InDelta(t, 0.3, got.Temperature, 1e-9)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, RoleUser, got.Messages[1].Role)

	assert.Equal(t, "openai", resp.Provider)
	assert.Equal(t, "gpt-test-2025", resp.Model)
	assert.Equal(t, `{"recommendedProductIds":["product-1"]}`, resp.Content)
	assert.Equal(t, Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15}, resp.Usage)
	assert.False(t, resp.Cached)
}

func TestOpenAIClient_ChatErrors(t *testing.T) {
	tests := []struct {
		wantIs        error
		name          string
		body          string
		status        int
		wantRetryable bool
	}{
		{name: "rate limited", status: http.StatusTooManyRequests, body: `{}`, wantRetryable: true, wantIs: common.ErrRateLimit},
		{name: "server error", status: http.StatusBadGateway, body: `bad gateway`, wantRetryable: true},
		{name: "bad request", status: http.StatusBadRequest, body: `{"error":"bad"}`, wantRetryable: false},
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"error":"key"}`, wantRetryable: false},
		{name: "no choices", status: http.StatusOK, body: `{"choices":[]}`, wantRetryable: false, wantIs: common.ErrProviderResponse},
		{name: "not json", status: http.StatusOK, body: `<html>`, wantRetryable: false, wantIs: common.ErrProviderResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, client := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = fmt.Fprint(w, tt.body)
			})

			_, err := client.Chat(context.Background(), ChatRequest{Messages: []Message{{Role: RoleUser, Content: "hi"}}})
			require.Error(t, err)
			assert.Equal(t, tt.wantRetryable, common.IsRetryable(err))
			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			}
		})
	}
}

func TestOpenAIClient_ChatRequiresMessages(t *testing.T) {
	_, client := newTestServer(t, func(_ http.ResponseWriter, _ *http.Request) {
		t.Fatal("no request expected")
	})

	_, err := client.Chat(context.Background(), ChatRequest{})
	require.Error(t, err)
	var retryable *common.RetryableError
	require.True(t, errors.As(err, &retryable))
	assert.False(t, retryable.Retryable)
}
