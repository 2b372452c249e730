package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"

	defaultPort        = 8000
	defaultEnv         = "development"
	defaultCacheTTL    = 3600
	defaultMaxAttempts = 3
	defaultBaseDelayMS = 2000
	defaultMaxResults  = 5

	// CacheBackendMemory is the in-process TTL store (the default).
	CacheBackendMemory = "memory"
	// CacheBackendRedis stores verdicts in Redis with native TTL.
	CacheBackendRedis = "redis"
)

// AppConfig holds runtime startup configuration loaded from YAML with
// environment variable overrides.
type AppConfig struct {
	Port           int             `yaml:"port"`
	Env            string          `yaml:"env"` // "development" | "production"
	AllowedOrigins []string        `yaml:"allowed_origins"`
	Cache          CacheConfig     `yaml:"cache"`
	Redis          RedisConfig     `yaml:"redis"`
	Retry          RetryConfig     `yaml:"retry"`
	News           NewsConfig      `yaml:"news"`
	FactCheck      FactCheckConfig `yaml:"fact_check"`
	AI             AIConfig        `yaml:"ai"`
}

// CacheConfig selects the verdict cache backend and entry lifetime.
type CacheConfig struct {
	Backend    string `yaml:"backend"` // "memory" | "redis"
	TTLSeconds int    `yaml:"ttl_seconds"`
}

type RedisConfig struct {
	URL string `yaml:"url"`
}

// RetryConfig bounds the per-source retry budget.
type RetryConfig struct {
	MaxAttempts int `yaml:"max_attempts"`
	BaseDelayMS int `yaml:"base_delay_ms"`
}

type NewsConfig struct {
	APIKey     string `yaml:"api_key"`
	MaxResults int    `yaml:"max_results"`
}

type FactCheckConfig struct {
	APIKey string `yaml:"api_key"`
}

type AIConfig struct {
	Providers []AIProvider `yaml:"providers"`
}

// AIProvider describes one reasoning provider credential.
type AIProvider struct {
	ID           string `yaml:"id"`
	Name         string `yaml:"name"`
	Type         string `yaml:"type"` // OpenAI | OpenAI-Compatible | Anthropic
	APIKey       string `yaml:"api_key"`
	Endpoint     string `yaml:"endpoint"`
	DefaultModel string `yaml:"default_model"`
	Enabled      bool   `yaml:"enabled"`
}

// Load reads the YAML config (a missing file at the default path is
// fine: defaults plus environment variables apply), applies environment
// overrides, and validates the result. Validation fails fast only for
// the unconditionally required credential: at least one enabled AI
// provider must carry an API key. News and fact-check keys are optional
// and degrade at request time.
func Load(configPath string) (*AppConfig, error) {
	path := strings.TrimSpace(configPath)
	if path == "" {
		path = DefaultConfigPath
	}

	cfg := defaultAppConfig()

	content, err := os.ReadFile(path)
	switch {
	case err == nil:
		decoder := yaml.NewDecoder(bytes.NewReader(content))
		decoder.KnownFields(true)
		if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse config file %q: %w", path, err)
		}
	case os.IsNotExist(err) && path == DefaultConfigPath:
		// No config file: run on defaults and environment.
	default:
		return nil, fmt.Errorf("read config file %q: %w", path, err)
	}

	applyEnvOverrides(&cfg)
	normalize(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func defaultAppConfig() AppConfig {
	return AppConfig{
		Port: defaultPort,
		Env:  defaultEnv,
		Cache: CacheConfig{
			Backend:    CacheBackendMemory,
			TTLSeconds: defaultCacheTTL,
		},
		Retry: RetryConfig{
			MaxAttempts: defaultMaxAttempts,
			BaseDelayMS: defaultBaseDelayMS,
		},
		News: NewsConfig{
			MaxResults: defaultMaxResults,
		},
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Port = port
		}
	}
	if v := strings.TrimSpace(os.Getenv("CLARION_ENV")); v != "" {
		cfg.Env = v
	}
	if v := strings.TrimSpace(os.Getenv("REDIS_URL")); v != "" {
		cfg.Redis.URL = v
		if cfg.Cache.Backend == "" || cfg.Cache.Backend == CacheBackendMemory {
			cfg.Cache.Backend = CacheBackendRedis
		}
	}
	if v := strings.TrimSpace(os.Getenv("NEWSDATA_API_KEY")); v != "" {
		cfg.News.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv("GOOGLE_FACT_CHECK_KEY")); v != "" {
		cfg.FactCheck.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv("AI_API_KEY")); v != "" {
		provider := AIProvider{
			ID:           "env",
			Name:         "env",
			Type:         strings.TrimSpace(os.Getenv("AI_PROVIDER_TYPE")),
			APIKey:       v,
			Endpoint:     strings.TrimSpace(os.Getenv("AI_ENDPOINT")),
			DefaultModel: strings.TrimSpace(os.Getenv("AI_MODEL")),
			Enabled:      true,
		}
		if provider.Type == "" {
			provider.Type = "openai"
		}
		cfg.AI.Providers = append([]AIProvider{provider}, cfg.AI.Providers...)
	}
}

func normalize(cfg *AppConfig) {
	cfg.Env = strings.TrimSpace(strings.ToLower(cfg.Env))
	cfg.Cache.Backend = strings.TrimSpace(strings.ToLower(cfg.Cache.Backend))
	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = CacheBackendMemory
	}
	if cfg.Cache.TTLSeconds <= 0 {
		cfg.Cache.TTLSeconds = defaultCacheTTL
	}
	if cfg.Retry.MaxAttempts <= 0 {
		cfg.Retry.MaxAttempts = defaultMaxAttempts
	}
	if cfg.Retry.BaseDelayMS <= 0 {
		cfg.Retry.BaseDelayMS = defaultBaseDelayMS
	}
	if cfg.News.MaxResults <= 0 {
		cfg.News.MaxResults = defaultMaxResults
	}

	origins := make([]string, 0, len(cfg.AllowedOrigins))
	for _, origin := range cfg.AllowedOrigins {
		if o := strings.TrimSpace(origin); o != "" {
			origins = append(origins, o)
		}
	}
	cfg.AllowedOrigins = origins
}

// Validate checks startup invariants.
func (c *AppConfig) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d, expected 1-65535", c.Port)
	}
	if c.Cache.Backend != CacheBackendMemory && c.Cache.Backend != CacheBackendRedis {
		return fmt.Errorf("invalid cache.backend %q, expected %q or %q", c.Cache.Backend, CacheBackendMemory, CacheBackendRedis)
	}
	if c.Cache.Backend == CacheBackendRedis && strings.TrimSpace(c.Redis.URL) == "" {
		return fmt.Errorf("cache.backend is %q but redis.url is empty", CacheBackendRedis)
	}
	if c.SelectAIProvider() == nil {
		return fmt.Errorf("no enabled AI provider with an api key: set ai.providers in %s or the AI_API_KEY environment variable", DefaultConfigPath)
	}
	return nil
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool { return c.Env != "production" }

// CacheTTL returns the cache entry lifetime.
func (c *AppConfig) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}

// RetryBaseDelay returns the first backoff delay.
func (c *AppConfig) RetryBaseDelay() time.Duration {
	return time.Duration(c.Retry.BaseDelayMS) * time.Millisecond
}

// SelectAIProvider returns the first enabled provider carrying an API
// key, or nil when none is usable.
func (c *AppConfig) SelectAIProvider() *AIProvider {
	for i := range c.AI.Providers {
		provider := &c.AI.Providers[i]
		if !provider.Enabled || strings.TrimSpace(provider.APIKey) == "" {
			continue
		}
		selected := *provider
		return &selected
	}
	return nil
}
