package layout

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/zzstudio/invoicedesk/constants"
	"github.com/zzstudio/invoicedesk/internal/common"
)

// PageImage is a rasterized first page ready to be placed into a cell.
type PageImage struct {
	Data []byte
	Ext  string // "png" | "jpg"
}

// Rasterizer renders the first page of a source document to a bitmap.
type Rasterizer interface {
	FirstPageImage(ctx context.Context, path string) (PageImage, error)
}

// CommandRasterizer shells out to an external pdftoppm-compatible tool for
// PDFs and reads raster sources directly. OFD (and anything else without a
// renderer) fails with ErrUnsupported so the engine can fall back to a
// placeholder cell.
type CommandRasterizer struct {
	Tool   string // e.g. "pdftoppm"
	DPI    int
	Logger *slog.Logger
}

func NewCommandRasterizer(tool string, dpi int, logger *slog.Logger) *CommandRasterizer {
	if logger == nil {
		logger = slog.Default()
	}
	if tool == "" {
		tool = "pdftoppm"
	}
	if dpi <= 0 {
		dpi = 288
	}
	return &CommandRasterizer{Tool: tool, DPI: dpi, Logger: logger}
}

func (r *CommandRasterizer) FirstPageImage(ctx context.Context, path string) (PageImage, error) {
	switch constants.NormalizeExt(filepath.Ext(path)) {
	case "pdf":
		return r.rasterizePDF(ctx, path)
	case "png":
		data, err := os.ReadFile(path)
		if err != nil {
			return PageImage{}, err
		}
		return PageImage{Data: data, Ext: "png"}, nil
	case "jpg", "jpeg":
		data, err := os.ReadFile(path)
		if err != nil {
			return PageImage{}, err
		}
		return PageImage{Data: data, Ext: "jpg"}, nil
	default:
		return PageImage{}, common.ErrUnsupported
	}
}

func (r *CommandRasterizer) rasterizePDF(ctx context.Context, path string) (PageImage, error) {
	tmpDir, err := os.MkdirTemp("", "invoicedesk-raster-")
	if err != nil {
		return PageImage{}, err
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	prefix := filepath.Join(tmpDir, "page")
	cmd := exec.CommandContext(ctx, r.Tool,
		"-png", "-singlefile",
		"-f", "1", "-l", "1",
		"-r", strconv.Itoa(r.DPI),
		path, prefix,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		r.Logger.Warn("layout.raster.failed", "path", path, "tool", r.Tool, "output", string(out), "error", err)
		return PageImage{}, fmt.Errorf("%s: %w", r.Tool, err)
	}

	data, err := os.ReadFile(prefix + ".png")
	if err != nil {
		return PageImage{}, fmt.Errorf("read rasterized page: %w", err)
	}
	return PageImage{Data: data, Ext: "png"}, nil
}
