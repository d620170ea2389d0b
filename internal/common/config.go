package common

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Ledger  LedgerConfig
	Layout  LayoutConfig
	Ingest  IngestConfig
	Printer PrinterConfig
}

// LedgerConfig holds ledger persistence configuration.
type LedgerConfig struct {
	Path string
}

// LayoutConfig holds page layout configuration.
type LayoutConfig struct {
	GridShape  string
	Copies     int
	OutputDir  string
	Rasterizer string // external first-page rasterizer command
	DPI        int
}

// IngestConfig holds ingestion configuration.
type IngestConfig struct {
	Debounce   time.Duration
	SkipHidden bool
}

// PrinterConfig holds print submission configuration.
type PrinterConfig struct {
	Name    string // empty = system default
	Timeout time.Duration
}

// LoadConfig loads configuration from the environment. A .env file in the
// working directory is honored when present.
func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		Ledger: LedgerConfig{
			Path: getEnv("LEDGER_PATH", "invoice_ledger.json"),
		},
		Layout: LayoutConfig{
			GridShape:  getEnv("PAGE_LAYOUT", "1x2"),
			Copies:     clampCopies(getEnvAsInt("COPIES_PER_INVOICE", 2)),
			OutputDir:  getEnv("OUTPUT_DIR", "."),
			Rasterizer: getEnv("RASTERIZER", "pdftoppm"),
			DPI:        getEnvAsInt("RASTERIZER_DPI", 288),
		},
		Ingest: IngestConfig{
			Debounce:   getEnvAsDuration("WATCH_DEBOUNCE", 500*time.Millisecond),
			SkipHidden: true,
		},
		Printer: PrinterConfig{
			Name:    getEnv("PRINTER_NAME", ""),
			Timeout: getEnvAsDuration("PRINT_TIMEOUT", 30*time.Second),
		},
	}
}

// The original tool offered 1-4 copies per invoice.
func clampCopies(n int) int {
	if n < 1 {
		return 1
	}
	if n > 4 {
		return 4
	}
	return n
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
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
