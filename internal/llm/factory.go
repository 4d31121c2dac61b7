package llm

import (
	"fmt"
	"strings"
)

// Supported providers.
const (
	ProviderOpenAI = "openai"
	ProviderQwen   = "qwen"
)

type providerDefaults struct {
	baseURL string
	model   string
}

var defaults = map[string]providerDefaults{
	ProviderOpenAI: {baseURL: "https://api.openai.com/v1", model: "gpt-4o-mini"},
	ProviderQwen:   {baseURL: "https://dashscope.aliyuncs.com/compatible-mode/v1", model: "qwen-turbo"},
}

// normalizeProvider maps provider aliases onto a supported name.
func normalizeProvider(name string) string {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "openai":
		return ProviderOpenAI
	case "qwen", "dashscope":
		return ProviderQwen
	default:
		return strings.ToLower(strings.TrimSpace(name))
	}
}

// NewClient creates a chat client for the configured provider.
func NewClient(cfg Config) (ChatClient, error) {
	provider := normalizeProvider(cfg.Provider)
	def, ok := defaults[provider]
	if !ok {
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}

	cfg.Provider = provider
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.baseURL
	}
	if cfg.Model == "" {
		cfg.Model = def.model
	}
	return NewOpenAICompatibleClient(cfg)
}
