package extract

import (
	"context"
	"time"
)

// TextExtractor is Stage 1: source document -> raw first-page text.
type TextExtractor interface {
	FirstPageText(ctx context.Context, path string) (TextExtractionResult, error)
}

type TextExtractionResult struct {
	Text       string
	Pages      int
	SourceType string // "PDF" | "IMAGE" | "OFD"
	Duration   time.Duration
	Warnings   []string
}
