package extract

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/zzstudio/invoicedesk/internal/ledger"
)

// Builder coordinates text extraction, header fields and line items into one
// structured InvoiceRecord. It never fails: a collaborator error degrades to
// an all-sentinel record so the file can still be inspected and queued.
type Builder struct {
	Text   TextExtractor
	Fields *FieldExtractor
	Logger *slog.Logger
}

func NewBuilder(text TextExtractor, fields *FieldExtractor, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	if fields == nil {
		fields = NewFieldExtractor(BuyerFirst)
	}
	return &Builder{Text: text, Fields: fields, Logger: logger}
}

// BuildFromFile extracts a record from a source document on disk.
func (b *Builder) BuildFromFile(ctx context.Context, path string) ledger.InvoiceRecord {
	var text string
	res, err := b.Text.FirstPageText(ctx, path)
	if err != nil {
		b.Logger.Warn("extract.text.failed", "path", path, "error", err)
	} else {
		text = res.Text
	}
	return b.BuildFromText(text, filepath.Base(path))
}

// BuildFromText extracts a record from already-obtained page text.
func (b *Builder) BuildFromText(text, sourceFileName string) ledger.InvoiceRecord {
	rec := b.Fields.ExtractHeader(text)
	rec.LineItems = ExtractLineItems(text)
	rec.SourceFileName = sourceFileName

	b.Logger.Info("extract.record.ok",
		"source", sourceFileName,
		"invoice_number", rec.InvoiceNumber,
		"line_items", len(rec.LineItems),
		"classified", rec.Classified(),
	)
	return rec
}
