package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Configuration keys.
const (
	KeyCatalogPath      = "catalog.path"
	KeyDatabasePath     = "database.path"
	KeyProviders        = "llm.providers"
	KeyModel            = "llm.model"
	KeyTemperature      = "llm.temperature"
	KeyMaxTokens        = "llm.max_tokens"
	KeyMaxRetries       = "llm.max_retries"
	KeyRetryDelay       = "llm.retry_delay"
	KeyCacheTTL         = "llm.cache_ttl"
	KeyRateLimit        = "llm.rate_limit"
	KeyTimeout          = "llm.timeout"
	KeyOpenAIAPIKey     = "llm.openai_api_key"
	KeyDashScopeAPIKey  = "llm.dashscope_api_key"
	KeyCandidateLimit   = "recommend.candidate_limit"
	KeyBatchWorkers     = "batch.workers"
	KeyLogLevel         = "logging.level"
	KeyLogFormat        = "logging.format"
	DefaultDatabasePath = "$HOME/.local/share/roomcraft/roomcraft.db"
)

// Settings is the resolved application configuration.
type Settings struct {
	CatalogPath    string
	DatabasePath   string
	Model          string
	OpenAIKey      string
	DashScopeKey   string
	LogLevel       string
	LogFormat      string
	Providers      []string
	Temperature    float64
	MaxTokens      int
	MaxRetries     int
	RateLimit      int
	CandidateLimit int
	BatchWorkers   int
	RetryDelay     time.Duration
	CacheTTL       time.Duration
	Timeout        time.Duration
}

// SetDefaults registers defaults and the unprefixed environment variables
// the product catalog and provider keys are traditionally read from.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyCatalogPath, "./products.yaml")
	v.SetDefault(KeyDatabasePath, DefaultDatabasePath)
	v.SetDefault(KeyProviders, []string{"qwen", "openai"})
	v.SetDefault(KeyTemperature, 0.3)
	v.SetDefault(KeyMaxTokens, 2000)
	v.SetDefault(KeyMaxRetries, 3)
	v.SetDefault(KeyRetryDelay, time.Second)
	v.SetDefault(KeyCacheTTL, 24*time.Hour)
	v.SetDefault(KeyRateLimit, 60)
	v.SetDefault(KeyTimeout, 60*time.Second)
	v.SetDefault(KeyCandidateLimit, 50)
	v.SetDefault(KeyBatchWorkers, 4)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")

	_ = v.BindEnv(KeyCatalogPath, "ROOMCRAFT_CATALOG_PATH", "PRODUCTS_CONFIG_PATH")
	_ = v.BindEnv(KeyOpenAIAPIKey, "ROOMCRAFT_LLM_OPENAI_API_KEY", "OPENAI_API_KEY")
	_ = v.BindEnv(KeyDashScopeAPIKey, "ROOMCRAFT_LLM_DASHSCOPE_API_KEY", "DASHSCOPE_API_KEY")
}

// Load resolves settings from v, expanding paths.
func Load(v *viper.Viper) (Settings, error) {
	s := Settings{
		CatalogPath:    ExpandPath(v.GetString(KeyCatalogPath)),
		DatabasePath:   ExpandPath(v.GetString(KeyDatabasePath)),
		Providers:      v.GetStringSlice(KeyProviders),
		Model:          v.GetString(KeyModel),
		Temperature:    v.GetFloat64(KeyTemperature),
		MaxTokens:      v.GetInt(KeyMaxTokens),
		MaxRetries:     v.GetInt(KeyMaxRetries),
		RetryDelay:     v.GetDuration(KeyRetryDelay),
		CacheTTL:       v.GetDuration(KeyCacheTTL),
		RateLimit:      v.GetInt(KeyRateLimit),
		Timeout:        v.GetDuration(KeyTimeout),
		OpenAIKey:      v.GetString(KeyOpenAIAPIKey),
		DashScopeKey:   v.GetString(KeyDashScopeAPIKey),
		CandidateLimit: v.GetInt(KeyCandidateLimit),
		BatchWorkers:   v.GetInt(KeyBatchWorkers),
		LogLevel:       v.GetString(KeyLogLevel),
		LogFormat:      v.GetString(KeyLogFormat),
	}

	if s.CatalogPath == "" {
		return Settings{}, fmt.Errorf("%s must be set", KeyCatalogPath)
	}
	if s.CandidateLimit <= 0 {
		return Settings{}, fmt.Errorf("%s must be positive, got %d", KeyCandidateLimit, s.CandidateLimit)
	}
	if s.BatchWorkers <= 0 {
		return Settings{}, fmt.Errorf("%s must be positive, got %d", KeyBatchWorkers, s.BatchWorkers)
	}
	if s.Temperature < 0 || s.Temperature > 2 {
		return Settings{}, fmt.Errorf("%s must be between 0 and 2, got %v", KeyTemperature, s.Temperature)
	}
	return s, nil
}
