package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	pkgRetry "github.com/samsontands/RAG/internal/pkg/retry"
)

const (
	// DefaultPathwayHost is the public Pathway document-indexing sandbox
	DefaultPathwayHost = "https://demo-document-indexing.pathway.stream"

	DefaultUploadURL = "https://drive.google.com/drive/u/0/folders/1cULDv2OaViJBmOfG5WB0oWcgayNrGtVs"

	DefaultFallbackAnswer = "Sorry, I could not get an answer from the document service right now. Please try asking again in a moment."
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr           string        `env:"SERVER_ADDR" envDefault:":8080"`
	ServerHandlerTimeout time.Duration `env:"SERVER_HANDLER_TIMEOUT" envDefault:"3m"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Where users drop files for indexing, and which backend indexes them
	UploadURL   string `env:"GDRIVE_FOLDER_URL"`
	PathwayHost string `env:"PATHWAY_HOST"`

	// External service configuration
	RAGConnectorCfg RAGConnectorConfig `envPrefix:"RAG_"`

	// Chat configuration
	SessionCfg       SessionConfig `envPrefix:"SESSION_"`
	FallbackAnswer   string        `env:"CHAT_FALLBACK_ANSWER"`
	MaxMessageLength int           `env:"CHAT_MAX_MESSAGE_LENGTH" envDefault:"4000"`

	// Telegram bot configuration (optional)
	TelegramCfg TelegramConfig `envPrefix:"TELEGRAM_"`

	// Environment (set by the caller, not from env var)
	Environment string
}

type RAGConnectorConfig struct {
	HTTPClientConfig
	ChatEndpoint string               `env:"CHAT_ENDPOINT" envDefault:"/v1/pw_ai_answer"`
	ListEndpoint string               `env:"LIST_ENDPOINT" envDefault:"/v1/pw_list_documents"`
	Retry        pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"60s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"60s"`
	Token                 string        `env:"TOKEN"`
	Url                   string        `env:"SERVICE_URL"`
}

// SessionConfig bounds how long an idle chat session is kept in memory
type SessionConfig struct {
	TTL             time.Duration `env:"TTL" envDefault:"24h"`
	CleanupInterval time.Duration `env:"CLEANUP_INTERVAL" envDefault:"10m"`
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken           string        `env:"BOT_TOKEN"`
	UpdateTimeout      int           `env:"UPDATE_TIMEOUT" envDefault:"60"`
	RateLimitPerMinute int           `env:"RATE_LIMIT_PER_MINUTE" envDefault:"20"`
	RateLimitBurst     int           `env:"RATE_LIMIT_BURST" envDefault:"5"`
	ShutdownTimeout    time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

// LoadConfig reads .env.<environment> if present and parses the process environment.
func LoadConfig(environment string) (*Config, error) {
	envFile := getEnvFile(environment)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	return Parse(environment)
}

// Parse builds the configuration from the process environment only.
func Parse(environment string) (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = environment
	applyDefaults(cfg)

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// applyDefaults fills the settings whose defaults are exported constants
func applyDefaults(cfg *Config) {
	if cfg.RAGConnectorCfg.Url == "" {
		cfg.RAGConnectorCfg.Url = DefaultPathwayHost
	}
	if cfg.UploadURL == "" {
		cfg.UploadURL = DefaultUploadURL
	}
	if cfg.PathwayHost == "" {
		cfg.PathwayHost = DefaultPathwayHost
	}
	if cfg.FallbackAnswer == "" {
		cfg.FallbackAnswer = DefaultFallbackAnswer
	}
}

func validateConfig(cfg *Config) error {
	var errs []string

	if cfg.RAGConnectorCfg.Retry.Attempts < 1 || cfg.RAGConnectorCfg.Retry.Attempts > 10 {
		errs = append(errs, fmt.Sprintf("RAG_RETRY_ATTEMPTS must be between 1 and 10, got %d", cfg.RAGConnectorCfg.Retry.Attempts))
	}

	if cfg.SessionCfg.TTL <= 0 {
		errs = append(errs, fmt.Sprintf("SESSION_TTL must be positive, got %s", cfg.SessionCfg.TTL))
	}

	if cfg.SessionCfg.CleanupInterval <= 0 {
		errs = append(errs, fmt.Sprintf("SESSION_CLEANUP_INTERVAL must be positive, got %s", cfg.SessionCfg.CleanupInterval))
	}

	if strings.TrimSpace(cfg.FallbackAnswer) == "" {
		errs = append(errs, "CHAT_FALLBACK_ANSWER must not be blank")
	}

	if cfg.MaxMessageLength < 1 {
		errs = append(errs, fmt.Sprintf("CHAT_MAX_MESSAGE_LENGTH must be positive, got %d", cfg.MaxMessageLength))
	}

	if cfg.TelegramCfg.RateLimitPerMinute < 1 || cfg.TelegramCfg.RateLimitPerMinute > 60 {
		errs = append(errs, fmt.Sprintf("TELEGRAM_RATE_LIMIT_PER_MINUTE must be between 1 and 60, got %d", cfg.TelegramCfg.RateLimitPerMinute))
	}

	if cfg.TelegramCfg.RateLimitBurst < 1 || cfg.TelegramCfg.RateLimitBurst > 20 {
		errs = append(errs, fmt.Sprintf("TELEGRAM_RATE_LIMIT_BURST must be between 1 and 20, got %d", cfg.TelegramCfg.RateLimitBurst))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// ValidateTelegram checks the settings only the Telegram bot needs
func (c *Config) ValidateTelegram() error {
	if c.TelegramCfg.BotToken == "" {
		return errors.New("TELEGRAM_BOT_TOKEN must be set to run the telegram bot")
	}
	if c.TelegramCfg.ShutdownTimeout <= 0 {
		return fmt.Errorf("TELEGRAM_SHUTDOWN_TIMEOUT must be positive, got %s", c.TelegramCfg.ShutdownTimeout)
	}
	return nil
}

// BackendCaption tells users whether uploads land in the public sandbox
func (c *Config) BackendCaption() string {
	if c.PathwayHost == DefaultPathwayHost {
		return "These go to the public Pathway sandbox. Don't upload confidential files."
	}
	return "Connected to: " + c.PathwayHost
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development", "":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
