package extract

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"

	"github.com/zzstudio/invoicedesk/constants"
	"github.com/zzstudio/invoicedesk/internal/common"
)

// PDFTextExtractor pulls the embedded text layer of a PDF's first page.
// Image and OFD sources have no text layer here; they fail with
// ErrUnsupported and the caller degrades to an all-sentinel record.
type PDFTextExtractor struct {
	logger *slog.Logger
}

func NewPDFTextExtractor(logger *slog.Logger) *PDFTextExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &PDFTextExtractor{logger: logger}
}

func (e *PDFTextExtractor) FirstPageText(ctx context.Context, path string) (TextExtractionResult, error) {
	start := time.Now()

	ext := constants.NormalizeExt(filepath.Ext(path))
	if ext != "pdf" {
		return TextExtractionResult{SourceType: strings.ToUpper(ext)}, common.ErrUnsupported
	}
	if err := ctx.Err(); err != nil {
		return TextExtractionResult{}, err
	}

	f, reader, err := pdf.Open(path)
	if err != nil {
		return TextExtractionResult{}, common.WrapError(err, "open pdf")
	}
	defer func() { _ = f.Close() }()

	res := TextExtractionResult{
		Pages:      reader.NumPage(),
		SourceType: "PDF",
	}
	if res.Pages == 0 {
		res.Duration = time.Since(start)
		return res, nil
	}

	page := reader.Page(1)
	if page.V.IsNull() {
		res.Duration = time.Since(start)
		return res, nil
	}

	rows, err := page.GetTextByRow()
	if err != nil {
		return res, common.WrapError(err, "read pdf text")
	}

	// Rows come back in layout order; each row becomes one text line so the
	// line-item extractor can tokenize per row.
	var b strings.Builder
	for _, row := range rows {
		for i, word := range row.Content {
			if i > 0 {
				b.WriteString(" ")
			}
			b.WriteString(word.S)
		}
		b.WriteString("\n")
	}
	res.Text = b.String()
	res.Duration = time.Since(start)

	e.logger.Debug("extract.text.ok", "path", path, "pages", res.Pages, "chars", len(res.Text))
	return res, nil
}
