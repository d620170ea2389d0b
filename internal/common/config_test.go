package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()

	assert.Equal(t, "invoice_ledger.json", cfg.Ledger.Path)
	assert.Equal(t, "1x2", cfg.Layout.GridShape)
	assert.Equal(t, 2, cfg.Layout.Copies)
	assert.Equal(t, "pdftoppm", cfg.Layout.Rasterizer)
	assert.Equal(t, 500*time.Millisecond, cfg.Ingest.Debounce)
	assert.True(t, cfg.Ingest.SkipHidden)
	assert.Equal(t, 30*time.Second, cfg.Printer.Timeout)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("LEDGER_PATH", "/var/lib/invoicedesk/ledger.json")
	t.Setenv("PAGE_LAYOUT", "2x2")
	t.Setenv("COPIES_PER_INVOICE", "9")
	t.Setenv("WATCH_DEBOUNCE", "2s")

	cfg := LoadConfig()

	assert.Equal(t, "/var/lib/invoicedesk/ledger.json", cfg.Ledger.Path)
	assert.Equal(t, "2x2", cfg.Layout.GridShape)
	assert.Equal(t, 4, cfg.Layout.Copies, "copies clamp to the supported range")
	assert.Equal(t, 2*time.Second, cfg.Ingest.Debounce)
}

func TestClampCopies(t *testing.T) {
	assert.Equal(t, 1, clampCopies(0))
	assert.Equal(t, 1, clampCopies(-3))
	assert.Equal(t, 3, clampCopies(3))
	assert.Equal(t, 4, clampCopies(7))
}
