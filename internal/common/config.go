package common

import (
	"os"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Text   TextConfig
	Server ServerConfig
	Log    LogConfig
	Watch  WatchConfig
}

// TextConfig holds text-extraction configuration
type TextConfig struct {
	Backend   string // "pdf" | "tabula" | "pdftotext"
	Pdftotext string
	Timeout   time.Duration // per file
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	GRPCAddr string
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level  string
	Format string // "text" | "json"
}

// WatchConfig holds folder-watch configuration
type WatchConfig struct {
	Debounce time.Duration
}

// Text backends understood by extract.New.
const (
	BackendPDF       = "pdf"
	BackendTabula    = "tabula"
	BackendPdftotext = "pdftotext"
)

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Text: TextConfig{
			Backend:   strings.ToLower(getEnv("TEXT_BACKEND", BackendPDF)),
			Pdftotext: getEnv("PDFTOTEXT_BIN", "pdftotext"),
			Timeout:   getEnvAsDuration("TEXT_TIMEOUT", 30*time.Second),
		},
		Server: ServerConfig{
			GRPCAddr: getEnv("GRPC_ADDR", ":8080"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
		Watch: WatchConfig{
			Debounce: getEnvAsDuration("WATCH_DEBOUNCE", 500*time.Millisecond),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	switch c.Text.Backend {
	case BackendPDF, BackendTabula, BackendPdftotext:
	default:
		return NewAppError("CONFIG_ERROR", "TEXT_BACKEND must be one of pdf|tabula|pdftotext", ErrInvalidInput)
	}
	if c.Text.Backend == BackendPdftotext && c.Text.Pdftotext == "" {
		return NewAppError("CONFIG_ERROR", "PDFTOTEXT_BIN is required", ErrInvalidInput)
	}
	if c.Text.Timeout < 0 {
		return NewAppError("CONFIG_ERROR", "TEXT_TIMEOUT must not be negative", ErrInvalidInput)
	}
	if c.Server.GRPCAddr == "" {
		return NewAppError("CONFIG_ERROR", "GRPC_ADDR is required", ErrInvalidInput)
	}
	return nil
}
