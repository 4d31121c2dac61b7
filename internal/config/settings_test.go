package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(t *testing.T) *viper.Viper {
	t.Helper()
	v := viper.New()
	SetDefaults(v)
	return v
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	t.Setenv("PRODUCTS_CONFIG_PATH", "")

	s, err := Load(newViper(t))
	require.NoError(t, err)

	assert.Equal(t, "./products.yaml", s.CatalogPath)
	assert.Equal(t, "/home/tester/.local/share/roomcraft/roomcraft.db", s.DatabasePath)
	assert.Equal(t, []string{"qwen", "openai"}, s.Providers)
	assert.InDelta(t, 0.3, s.Temperature, 1e-9)
	assert.Equal(t, 2000, s.MaxTokens)
	assert.Equal(t, 3, s.MaxRetries)
	assert.Equal(t, time.Second, s.RetryDelay)
	assert.Equal(t, 24*time.Hour, s.CacheTTL)
	assert.Equal(t, 50, s.CandidateLimit)
	assert.Equal(t, 4, s.BatchWorkers)
	assert.Equal(t, "info", s.LogLevel)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("PRODUCTS_CONFIG_PATH", "/etc/roomcraft/products.yaml")
	t.Setenv("OPENAI_API_KEY", "openai-key")
	t.Setenv("DASHSCOPE_API_KEY", "sk-dashscope")

	s, err := Load(newViper(t))
	require.NoError(t, err)

	assert.Equal(t, "/etc/roomcraft/products.yaml", s.CatalogPath)
	assert.Equal(t, "openai-key", s.OpenAIKey)
	assert.Equal(t, "sk-dashscope", s.DashScopeKey)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		value any
		name  string
		key   string
	}{
		{name: "zero candidate limit", key: KeyCandidateLimit, value: 0},
		{name: "negative workers", key: KeyBatchWorkers, value: -1},
		{name: "temperature too high", key: KeyTemperature, value: 3.5},
		{name: "empty catalog path", key: KeyCatalogPath, value: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("PRODUCTS_CONFIG_PATH", "")
			v := newViper(t)
			v.Set(tt.key, tt.value)

			_, err := Load(v)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}
