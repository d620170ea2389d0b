package layout

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zzstudio/invoicedesk/internal/common"
)

// Result is the single terminal outcome of a layout job.
type Result struct {
	JobID      uuid.UUID
	OutputPath string
	Err        error
	Duration   time.Duration
}

// Worker runs layout jobs off the caller's goroutine with a bounded
// single-slot queue: at most one job is in flight, and a second Submit while
// busy fails with ErrBusy. A canceled job removes its output file, so the
// output path is always either fully written or absent.
type Worker struct {
	engine  *Engine
	logger  *slog.Logger
	results chan Result

	mu   sync.Mutex
	busy bool
}

func NewWorker(engine *Engine, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{
		engine:  engine,
		logger:  logger,
		results: make(chan Result, 1),
	}
}

// Results delivers one Result per accepted job.
func (w *Worker) Results() <-chan Result {
	return w.results
}

// Busy reports whether a job is in flight.
func (w *Worker) Busy() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.busy
}

// Submit starts a layout job. The ledger must not be mutated by the caller
// until the job's Result arrives.
func (w *Worker) Submit(ctx context.Context, documents []string, opts Options) (uuid.UUID, error) {
	w.mu.Lock()
	if w.busy {
		w.mu.Unlock()
		return uuid.Nil, common.ErrBusy
	}
	w.busy = true
	w.mu.Unlock()

	jobID := uuid.New()
	docs := make([]string, len(documents))
	copy(docs, documents)

	w.logger.Info("layout.job.start", "job_id", jobID, "documents", len(docs), "output", opts.OutputPath)

	go func() {
		start := time.Now()
		err := w.engine.Layout(ctx, docs, opts)
		if ctx.Err() != nil {
			// Canceled: never leave a partially written output behind.
			_ = os.Remove(opts.OutputPath)
			if err == nil {
				err = ctx.Err()
			}
		}

		w.mu.Lock()
		w.busy = false
		w.mu.Unlock()

		if err != nil {
			w.logger.Error("layout.job.failed", "job_id", jobID, "error", err)
		} else {
			w.logger.Info("layout.job.ok", "job_id", jobID, "elapsed_ms", time.Since(start).Milliseconds())
		}
		w.results <- Result{
			JobID:      jobID,
			OutputPath: opts.OutputPath,
			Err:        err,
			Duration:   time.Since(start),
		}
	}()

	return jobID, nil
}
