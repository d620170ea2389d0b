package ingest

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/zzstudio/invoicedesk/internal/extract"
	"github.com/zzstudio/invoicedesk/internal/ledger"
)

// Service turns candidate files into queued invoice records, checking each
// extracted invoice number against the ledger for duplicates.
type Service struct {
	Builder *extract.Builder
	Store   *ledger.Store
	Logger  *slog.Logger
}

func NewService(builder *extract.Builder, store *ledger.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{Builder: builder, Store: store, Logger: logger}
}

// ScanPath extracts one file and checks it against the ledger. Extraction
// never fails; the returned entry may carry an all-sentinel record.
func (s *Service) ScanPath(ctx context.Context, path string) QueuedInvoice {
	rec := s.Builder.BuildFromFile(ctx, path)
	entry := QueuedInvoice{
		ID:      uuid.New(),
		Path:    path,
		Record:  rec,
		AddedAt: time.Now(),
	}
	if rec.Classified() && s.Store.IsAlreadyProcessed(rec.InvoiceNumber) {
		entry.Duplicate = true
	}
	return entry
}

// ScanDirectory walks root and queues every file with an allowed extension.
// Files are visited in name order so repeated scans queue identically.
func (s *Service) ScanDirectory(ctx context.Context, root string, skipHidden bool) ([]QueuedInvoice, DirStats, error) {
	var stats DirStats
	var paths []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if skipHidden && path != root && IsHidden(path) {
				return filepath.SkipDir
			}
			return nil
		}
		stats.Scanned++
		if skipHidden && IsHidden(path) {
			return nil
		}
		if !AllowedExt(filepath.Ext(path)) {
			return nil
		}
		stats.Matched++
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, stats, err
	}
	sort.Strings(paths)

	var queue []QueuedInvoice
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return queue, stats, err
		}
		entry := s.ScanPath(ctx, path)
		queue = append(queue, entry)
		stats.Queued++
		if entry.Duplicate {
			stats.Duplicates++
		}
		if !entry.Record.Classified() {
			stats.Unclassified++
		}
	}

	s.Logger.Info("ingest.scan.ok",
		"root", root,
		"scanned", stats.Scanned,
		"matched", stats.Matched,
		"queued", stats.Queued,
		"duplicates", stats.Duplicates,
		"unclassified", stats.Unclassified,
	)
	return queue, stats, nil
}
