package config

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	pkgRetry "github.com/tnega/gosearch/internal/pkg/retry"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR" envDefault:":8080"`

	// Gemini credential and connector configuration
	GeminiAPIKey string             `env:"GEMINI_API_KEY"`
	GenAICfg     GenAIConnectorConfig `envPrefix:"GENAI_"`

	// UniDoc metered license key, required by the xlsx metadata loader
	UnidocLicenseKey string `env:"UNIDOC_LICENSE_API_KEY"`

	// Ingestion configuration
	IngestCfg IngestConfig `envPrefix:"INGEST_"`

	// Chat session configuration
	SessionCfg SessionConfig `envPrefix:"SESSION_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Mock configuration (local runs without the hosted service)
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Telegram bot configuration (only required by cmd/telegram-bot)
	TelegramCfg TelegramConfig `envPrefix:"TELEGRAM_"`

	// Environment (set from flag, not from env var)
	Environment string
}

// GenAIConnectorConfig configures the hosted file-search/LLM connector
type GenAIConnectorConfig struct {
	HTTPClientConfig
	Model string `env:"MODEL" envDefault:"gemini-2.5-pro"`
}

// IngestConfig holds the ingestion tool configuration
type IngestConfig struct {
	DocumentsDir     string        `env:"DOCUMENTS_DIR" envDefault:"tnega"`
	MetadataFile     string        `env:"METADATA_FILE" envDefault:"GO_metadata.xlsx"`
	StoreConfigFile  string        `env:"STORE_CONFIG_FILE" envDefault:"store_config.json"`
	StoreDisplayName string        `env:"STORE_DISPLAY_NAME" envDefault:"TNega-GOs"`
	PollInterval     time.Duration `env:"POLL_INTERVAL" envDefault:"5s"`
	MaxFileSize      int64         `env:"MAX_FILE_SIZE" envDefault:"52428800"` // 50 MiB

	Poll pkgRetry.RetryConfig `envPrefix:"POLL_RETRY_"`
}

// SessionConfig holds the in-memory chat session store configuration
type SessionConfig struct {
	StoreConfigFile string        `env:"STORE_CONFIG_FILE" envDefault:"store_config.json"`
	TTL             time.Duration `env:"TTL" envDefault:"1h"`
	CleanupInterval time.Duration `env:"CLEANUP_INTERVAL" envDefault:"10m"`
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken           string `env:"BOT_TOKEN"`
	UpdateTimeout      int    `env:"UPDATE_TIMEOUT" envDefault:"30"`
	RateLimitPerMinute int    `env:"RATE_LIMIT_PER_MINUTE" envDefault:"20"`
	RateLimitBurst     int    `env:"RATE_LIMIT_BURST" envDefault:"5"`
	ShutdownTimeout    int    `env:"SHUTDOWN_TIMEOUT" envDefault:"30"` // seconds
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"120s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"30s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"120s"`
	Url                   string        `env:"SERVICE_URL" envDefault:"https://generativelanguage.googleapis.com"`
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = *envFlag

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	var errors []string

	if cfg.IngestCfg.PollInterval <= 0 {
		errors = append(errors, fmt.Sprintf("INGEST_POLL_INTERVAL must be positive, got %s", cfg.IngestCfg.PollInterval))
	}

	if cfg.IngestCfg.Poll.Attempts < 1 {
		errors = append(errors, fmt.Sprintf("INGEST_POLL_RETRY_ATTEMPTS must be at least 1, got %d", cfg.IngestCfg.Poll.Attempts))
	}

	if cfg.TelegramCfg.RateLimitPerMinute < 1 || cfg.TelegramCfg.RateLimitPerMinute > 60 {
		errors = append(errors, fmt.Sprintf("TELEGRAM_RATE_LIMIT_PER_MINUTE must be between 1 and 60, got %d", cfg.TelegramCfg.RateLimitPerMinute))
	}

	if cfg.TelegramCfg.ShutdownTimeout < 1 || cfg.TelegramCfg.ShutdownTimeout > 300 {
		errors = append(errors, fmt.Sprintf("TELEGRAM_SHUTDOWN_TIMEOUT must be between 1 and 300 seconds, got %d", cfg.TelegramCfg.ShutdownTimeout))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
