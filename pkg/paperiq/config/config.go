package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cognicore/paperiq/pkg/paperiq/internalerr"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Sentiment providers
const (
	ProviderLexicon   = "lexicon"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// ArchiveMemory selects the in-memory archive.
const ArchiveMemory = "memory"

// Config is the runtime configuration of the service and CLI
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Analysis  AnalysisConfig  `yaml:"analysis"`
	Sentiment SentimentConfig `yaml:"sentiment"`
	Archive   ArchiveConfig   `yaml:"archive"`
	Log       LogConfig       `yaml:"log"`
}

type ServerConfig struct {
	Addr                string `yaml:"addr"`
	MaxUploadBytes      int64  `yaml:"max_upload_bytes"`
	ReadTimeoutSeconds  int    `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `yaml:"write_timeout_seconds"`
}

type AnalysisConfig struct {
	TopFlagged int  `yaml:"top_flagged"`
	Sequential bool `yaml:"sequential"`
}

// SentimentConfig selects and tunes the sentiment oracle. BaseURL, APIKey and
// Model only apply to the remote providers.
type SentimentConfig struct {
	Provider          string  `yaml:"provider"`
	LexiconPath       string  `yaml:"lexicon_path"`
	CacheSize         int     `yaml:"cache_size"`
	BaseURL           string  `yaml:"base_url"`
	APIKey            string  `yaml:"api_key"`
	Model             string  `yaml:"model"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	TimeoutSeconds    int     `yaml:"timeout_seconds"`
}

// ArchiveConfig enables the report archive. An empty path disables it,
// "memory" keeps reports in process, anything else is a SQLite file.
type ArchiveConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:                ":8080",
			MaxUploadBytes:      10 << 20,
			ReadTimeoutSeconds:  30,
			WriteTimeoutSeconds: 120,
		},
		Analysis: AnalysisConfig{TopFlagged: 5},
		Sentiment: SentimentConfig{
			Provider:       ProviderLexicon,
			CacheSize:      4096,
			TimeoutSeconds: 30,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load builds a configuration from defaults, the YAML file at path (when
// non-empty) and PAPERIQ_* environment variables, in that order.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadEnvFile loads KEY=VALUE pairs from path into the process environment
// without overriding variables that are already set.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	return godotenv.Load(path)
}

func (c *Config) applyEnv() {
	c.Server.Addr = getEnv("PAPERIQ_ADDR", c.Server.Addr)
	c.Server.MaxUploadBytes = int64(getEnvInt("PAPERIQ_MAX_UPLOAD_BYTES", int(c.Server.MaxUploadBytes)))
	c.Analysis.TopFlagged = getEnvInt("PAPERIQ_TOP_FLAGGED", c.Analysis.TopFlagged)
	c.Analysis.Sequential = getEnvBool("PAPERIQ_SEQUENTIAL", c.Analysis.Sequential)

	c.Sentiment.Provider = getEnv("PAPERIQ_SENTIMENT_PROVIDER", c.Sentiment.Provider)
	c.Sentiment.LexiconPath = getEnv("PAPERIQ_LEXICON_PATH", c.Sentiment.LexiconPath)
	c.Sentiment.CacheSize = getEnvInt("PAPERIQ_SENTIMENT_CACHE_SIZE", c.Sentiment.CacheSize)
	c.Sentiment.BaseURL = getEnv("PAPERIQ_LLM_BASE_URL", c.Sentiment.BaseURL)
	c.Sentiment.APIKey = getEnv("PAPERIQ_LLM_API_KEY", c.Sentiment.APIKey)
	c.Sentiment.Model = getEnv("PAPERIQ_LLM_MODEL", c.Sentiment.Model)
	c.Sentiment.RequestsPerSecond = getEnvFloat("PAPERIQ_LLM_RPS", c.Sentiment.RequestsPerSecond)
	c.Sentiment.TimeoutSeconds = getEnvInt("PAPERIQ_LLM_TIMEOUT_SECONDS", c.Sentiment.TimeoutSeconds)
	if c.Sentiment.Provider == ProviderAnthropic && c.Sentiment.APIKey == "" {
		c.Sentiment.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	}

	c.Archive.Path = getEnv("PAPERIQ_ARCHIVE_PATH", c.Archive.Path)
	c.Log.Level = getEnv("PAPERIQ_LOG_LEVEL", c.Log.Level)
	c.Log.Development = getEnvBool("PAPERIQ_LOG_DEVELOPMENT", c.Log.Development)
}

// Validate reports the first inconsistent setting, wrapping
// internalerr.ErrInvalidConfig.
func (c *Config) Validate() error {
	switch c.Sentiment.Provider {
	case ProviderLexicon:
	case ProviderOpenAI:
		if c.Sentiment.BaseURL == "" || c.Sentiment.Model == "" {
			return fmt.Errorf("%w: openai provider needs base_url and model", internalerr.ErrInvalidConfig)
		}
	case ProviderAnthropic:
		if c.Sentiment.APIKey == "" {
			return fmt.Errorf("%w: anthropic provider needs an API key", internalerr.ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown sentiment provider %q", internalerr.ErrInvalidConfig, c.Sentiment.Provider)
	}
	if c.Analysis.TopFlagged < 0 {
		return fmt.Errorf("%w: top_flagged must not be negative", internalerr.ErrInvalidConfig)
	}
	if c.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("%w: max_upload_bytes must be positive", internalerr.ErrInvalidConfig)
	}
	if c.Sentiment.RequestsPerSecond < 0 {
		return fmt.Errorf("%w: requests_per_second must not be negative", internalerr.ErrInvalidConfig)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", internalerr.ErrInvalidConfig, c.Log.Level)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
