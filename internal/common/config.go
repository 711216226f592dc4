package common

import (
	"context"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	PDF     PDFConfig
	Extract ExtractConfig
	History HistoryConfig
	Watch   WatchConfig

	LogLevel string `env:"UPSX_LOG_LEVEL, default=info"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Addr            string        `env:"UPSX_ADDR, default=:8080"`
	MaxUploadBytes  int64         `env:"UPSX_MAX_UPLOAD_BYTES, default=33554432"`
	ShutdownTimeout time.Duration `env:"UPSX_SHUTDOWN_TIMEOUT, default=10s"`
}

// PDFConfig holds document-to-text collaborator configuration.
type PDFConfig struct {
	Pdftotext string        `env:"UPSX_PDFTOTEXT, default=pdftotext"`
	Timeout   time.Duration `env:"UPSX_PDFTOTEXT_TIMEOUT, default=30s"`
}

// ExtractConfig holds the report-specific extraction constants.
type ExtractConfig struct {
	// CarrierPrefix overrides the fixed 8-character tracking prefix when
	// retargeting the tool to a different shipper account.
	CarrierPrefix string `env:"UPSX_CARRIER_PREFIX"`
}

// HistoryConfig holds the optional run-history store configuration.
type HistoryConfig struct {
	// DSN is either a postgres URL or a sqlite file path. Empty disables
	// history recording.
	DSN string `env:"UPSX_HISTORY_DSN"`
}

// WatchConfig holds drop-directory watch mode configuration.
type WatchConfig struct {
	Debounce time.Duration `env:"UPSX_WATCH_DEBOUNCE, default=2s"`
}

// LoadConfig loads configuration from environment variables.
func LoadConfig(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, WrapError(err, "load config")
	}
	return &cfg, nil
}
