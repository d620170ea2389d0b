package printing

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"time"
)

// Submitter sends a finished document to a physical or virtual printer.
// The core only needs the success/failure outcome to decide whether records
// get marked processed.
type Submitter interface {
	Submit(ctx context.Context, documentPath, printerName string) error
}

// LPSubmitter hands the document to the system spooler via lp, falling back
// to lpr. An empty printer name uses the system default destination.
type LPSubmitter struct {
	Timeout time.Duration
	Logger  *slog.Logger
}

func NewLPSubmitter(timeout time.Duration, logger *slog.Logger) *LPSubmitter {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &LPSubmitter{Timeout: timeout, Logger: logger}
}

func (s *LPSubmitter) Submit(ctx context.Context, documentPath, printerName string) error {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	if err := s.run(ctx, "lp", "-d", printerName, documentPath); err != nil {
		s.Logger.Warn("print.lp.failed", "path", documentPath, "error", err)
		if err := s.run(ctx, "lpr", "-P", printerName, documentPath); err != nil {
			return fmt.Errorf("submit to printer: %w", err)
		}
	}
	s.Logger.Info("print.submit.ok", "path", documentPath, "printer", printerName)
	return nil
}

func (s *LPSubmitter) run(ctx context.Context, tool, printerFlag, printerName, documentPath string) error {
	args := []string{}
	if printerName != "" {
		args = append(args, printerFlag, printerName)
	}
	args = append(args, documentPath)
	out, err := exec.CommandContext(ctx, tool, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %v (%s)", tool, err, string(out))
	}
	return nil
}
