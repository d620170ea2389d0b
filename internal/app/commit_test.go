package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zzstudio/invoicedesk/internal/common"
	"github.com/zzstudio/invoicedesk/internal/ingest"
	"github.com/zzstudio/invoicedesk/internal/layout"
	"github.com/zzstudio/invoicedesk/internal/ledger"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// textOnlyRasterizer forces the placeholder cell path so no external
// rasterizer binary is needed.
type textOnlyRasterizer struct{}

func (textOnlyRasterizer) FirstPageImage(ctx context.Context, path string) (layout.PageImage, error) {
	return layout.PageImage{}, common.ErrUnsupported
}

type fakePrinter struct {
	err   error
	calls int
}

func (p *fakePrinter) Submit(ctx context.Context, documentPath, printerName string) error {
	p.calls++
	return p.err
}

func testCommitter(t *testing.T, printer *fakePrinter) (*Committer, *ledger.Store) {
	t.Helper()
	store := ledger.NewStore(filepath.Join(t.TempDir(), "ledger.json"), quietLogger())
	engine := layout.NewEngine(textOnlyRasterizer{}, quietLogger())
	worker := layout.NewWorker(engine, quietLogger())
	return NewCommitter(worker, store, printer, quietLogger()), store
}

func classifiedEntry(number, path string) ingest.QueuedInvoice {
	rec := ledger.NewInvoiceRecord()
	rec.InvoiceNumber = number
	return ingest.QueuedInvoice{ID: uuid.New(), Path: path, Record: rec}
}

func TestCommitWritesDocumentAndLedger(t *testing.T) {
	printer := &fakePrinter{}
	c, store := testCommitter(t, printer)
	grid, _ := layout.ParseGridShape("1x2")

	st := NewState(grid, 2).WithQueued(
		classifiedEntry("1001", "a.pdf"),
		ingest.QueuedInvoice{ID: uuid.New(), Path: "b.pdf", Record: ledger.NewInvoiceRecord()},
	)
	out := filepath.Join(t.TempDir(), "batch.pdf")

	res, err := c.Commit(context.Background(), st, out, "", false)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Committed)
	assert.Equal(t, 1, res.Skipped)
	assert.False(t, res.Printed)
	assert.Equal(t, 0, printer.calls)

	assert.True(t, store.IsAlreadyProcessed("1001"))
	_, statErr := os.Stat(out)
	assert.NoError(t, statErr)
}

func TestCommitSubmitsBeforePersisting(t *testing.T) {
	printer := &fakePrinter{}
	c, store := testCommitter(t, printer)
	grid, _ := layout.ParseGridShape("1x1")

	st := NewState(grid, 1).WithQueued(classifiedEntry("1001", "a.pdf"))
	out := filepath.Join(t.TempDir(), "batch.pdf")

	res, err := c.Commit(context.Background(), st, out, "Office_HP", true)
	require.NoError(t, err)
	assert.True(t, res.Printed)
	assert.Equal(t, 1, printer.calls)
	assert.True(t, store.IsAlreadyProcessed("1001"))
}

func TestCommitPrintFailureLeavesLedgerUntouched(t *testing.T) {
	printer := &fakePrinter{err: errors.New("printer offline")}
	c, store := testCommitter(t, printer)
	grid, _ := layout.ParseGridShape("1x1")

	st := NewState(grid, 1).WithQueued(classifiedEntry("1001", "a.pdf"))
	out := filepath.Join(t.TempDir(), "batch.pdf")

	_, err := c.Commit(context.Background(), st, out, "", true)
	require.Error(t, err)

	// Failed submission means the queue can be retried: nothing committed.
	assert.False(t, store.IsAlreadyProcessed("1001"))
	assert.Equal(t, 0, store.Len())
}

func TestRecordsOf(t *testing.T) {
	grid, _ := layout.ParseGridShape("1x1")
	st := NewState(grid, 1).WithQueued(classifiedEntry("1001", "a.pdf"), classifiedEntry("2002", "b.pdf"))

	recs := RecordsOf(st)
	require.Len(t, recs, 2)
	assert.Equal(t, "1001", recs[0].InvoiceNumber)
	assert.Equal(t, "2002", recs[1].InvoiceNumber)
}
