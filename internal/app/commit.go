package app

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/zzstudio/invoicedesk/internal/layout"
	"github.com/zzstudio/invoicedesk/internal/ledger"
	"github.com/zzstudio/invoicedesk/internal/printing"
)

// CommitResult is the terminal outcome of a print/export commit.
type CommitResult struct {
	JobID      uuid.UUID
	OutputPath string
	Printed    bool
	Committed  int // records written to the ledger
	Skipped    int // unclassified records, never persisted
}

// Committer drives the commit flow: layout the queue into a page document,
// optionally submit it to a printer, then mark every queued record processed
// in the ledger. The ledger is only touched after the layout job's terminal
// result, never while it is in flight.
type Committer struct {
	Worker  *layout.Worker
	Store   *ledger.Store
	Printer printing.Submitter
	Logger  *slog.Logger
}

func NewCommitter(worker *layout.Worker, store *ledger.Store, printer printing.Submitter, logger *slog.Logger) *Committer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Committer{Worker: worker, Store: store, Printer: printer, Logger: logger}
}

// Commit runs the flow synchronously and returns once the queue is either
// fully committed or the operation failed. When printerName submission is
// requested and fails, nothing is committed: an unprinted queue must stay
// uncommitted so it can be retried.
func (c *Committer) Commit(ctx context.Context, st State, outputPath, printerName string, submit bool) (CommitResult, error) {
	res := CommitResult{OutputPath: outputPath}

	jobID, err := c.Worker.Submit(ctx, st.QueuePaths(), layout.Options{
		Grid:       st.Grid,
		Copies:     st.Copies,
		OutputPath: outputPath,
	})
	if err != nil {
		return res, err
	}
	res.JobID = jobID

	job := <-c.Worker.Results()
	if job.Err != nil {
		return res, job.Err
	}

	if submit {
		if err := c.Printer.Submit(ctx, outputPath, printerName); err != nil {
			return res, err
		}
		res.Printed = true
	}

	for _, entry := range st.Queue {
		if !entry.Record.Classified() {
			res.Skipped++
			continue
		}
		if err := c.Store.Upsert(entry.Record); err != nil {
			return res, err
		}
		res.Committed++
	}

	c.Logger.Info("commit.ok",
		"job_id", jobID,
		"output", outputPath,
		"printed", res.Printed,
		"committed", res.Committed,
		"skipped", res.Skipped,
	)
	return res, nil
}

// RecordsOf returns the queued records in queue order.
func RecordsOf(st State) []ledger.InvoiceRecord {
	out := make([]ledger.InvoiceRecord, 0, len(st.Queue))
	for _, e := range st.Queue {
		out = append(out, e.Record)
	}
	return out
}
