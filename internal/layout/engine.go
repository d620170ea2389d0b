package layout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/page"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/zzstudio/invoicedesk/internal/common"
)

// A4 geometry in millimeters. The slack keeps rows*rowHeight strictly below
// the useful area so float rounding can never trip the writer's overflow
// break inside a page.
const (
	pageHeightMM = 297.0
	marginMM     = 5.0
	slackMM      = 0.5
)

// Options select how the queue is arranged on paper.
type Options struct {
	Grid       GridShape
	Copies     int
	OutputPath string
}

// Engine arranges a sequence of source documents into gridded pages and
// writes a single multi-page PDF. Rendering one cell never depends on the
// others: a document that fails to rasterize is logged and leaves its cell
// blank, and the page still completes.
type Engine struct {
	Raster Rasterizer
	Logger *slog.Logger
}

func NewEngine(raster Rasterizer, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{Raster: raster, Logger: logger}
}

// ExpandCopies repeats each document path copies times consecutively, so the
// copies of one document stay adjacent and documents are never interleaved.
func ExpandCopies(documents []string, copies int) []string {
	out := make([]string, 0, len(documents)*copies)
	for _, d := range documents {
		for i := 0; i < copies; i++ {
			out = append(out, d)
		}
	}
	return out
}

// Paginate chunks the expanded sequence into page-sized groups, preserving
// order. The last page may be underfull.
func Paginate(expanded []string, capacity int) [][]string {
	var pages [][]string
	for start := 0; start < len(expanded); start += capacity {
		end := start + capacity
		if end > len(expanded) {
			end = len(expanded)
		}
		pages = append(pages, expanded[start:end])
	}
	return pages
}

// Layout renders documents×copies onto gridded pages at OutputPath,
// replacing any prior file there. Identical inputs produce identical output.
func (e *Engine) Layout(ctx context.Context, documents []string, opts Options) error {
	if opts.Copies < 1 {
		return fmt.Errorf("%w: copies must be >= 1", common.ErrInvalidInput)
	}
	if opts.Grid.Capacity() == 0 {
		return fmt.Errorf("%w: grid shape not set", common.ErrInvalidInput)
	}
	if opts.OutputPath == "" {
		return fmt.Errorf("%w: output path not set", common.ErrInvalidInput)
	}

	expanded := ExpandCopies(documents, opts.Copies)
	pages := Paginate(expanded, opts.Grid.Capacity())

	cfg := config.NewBuilder().
		WithLeftMargin(marginMM).
		WithTopMargin(marginMM).
		WithRightMargin(marginMM).
		WithBottomMargin(marginMM).
		Build()
	m := maroto.New(cfg)

	rowHeight := (pageHeightMM - 2*marginMM - slackMM) / float64(opts.Grid.Rows)
	colSize := 12 / opts.Grid.Cols

	// Each chunk becomes one explicit page, so a chunk can never bleed into
	// the next page regardless of the writer's own break threshold.
	for _, chunk := range pages {
		if err := ctx.Err(); err != nil {
			return err
		}
		p := page.New()
		for r := 0; r < opts.Grid.Rows; r++ {
			cols := make([]core.Col, 0, opts.Grid.Cols)
			for c := 0; c < opts.Grid.Cols; c++ {
				idx := r*opts.Grid.Cols + c
				if idx >= len(chunk) {
					// Underfull last page: blank cell, no placeholder.
					cols = append(cols, col.New(colSize))
					continue
				}
				cols = append(cols, e.cell(ctx, chunk[idx], colSize, rowHeight))
			}
			p.Add(row.New(rowHeight).Add(cols...))
		}
		m.AddPages(p)
	}

	doc, err := m.Generate()
	if err != nil {
		return common.NewAppError("LAYOUT_FAILURE", "cannot compose output document", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := doc.Save(opts.OutputPath); err != nil {
		return common.NewAppError("LAYOUT_FAILURE", fmt.Sprintf("cannot write %s", opts.OutputPath), err)
	}

	e.Logger.Info("layout.render.ok",
		"documents", len(documents),
		"copies", opts.Copies,
		"grid", opts.Grid.Label,
		"pages", len(pages),
		"output", opts.OutputPath,
	)
	return nil
}

func (e *Engine) cell(ctx context.Context, path string, colSize int, rowHeight float64) core.Col {
	img, err := e.Raster.FirstPageImage(ctx, path)
	if err != nil {
		if errors.Is(err, common.ErrUnsupported) {
			// Lower-fidelity placeholder naming the file (OFD without a
			// converter lands here).
			return text.NewCol(colSize, filepath.Base(path), props.Text{
				Top:   rowHeight / 2,
				Size:  8,
				Align: align.Center,
			})
		}
		e.Logger.Warn("layout.render.skip", "path", path, "error", err)
		return col.New(colSize)
	}

	ext := extension.Png
	if img.Ext == "jpg" {
		ext = extension.Jpg
	}
	// Centered at the largest scale that keeps an inset margin in the cell.
	return image.NewFromBytesCol(colSize, img.Data, ext, props.Rect{
		Center:  true,
		Percent: 94,
	})
}
