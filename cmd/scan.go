package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zzstudio/invoicedesk/internal/ingest"
)

var scanCmd = &cobra.Command{
	Use:   "scan [dir|file...]",
	Short: "Extract invoice records from files and check them against the ledger",
	Long: `Scan one or more invoice files (or directories of them), extract their
header fields and line items, and report which ones the ledger has already
seen. Nothing is committed; this is a dry run of the print queue.`,
	Example: `  invoicedesk scan ~/Downloads/invoices
  invoicedesk scan a.pdf b.pdf`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	svc := buildServices()
	queue, err := collectQueue(cmd.Context(), svc, args)
	if err != nil {
		return err
	}
	if len(queue) == 0 {
		return fmt.Errorf("no invoice files found")
	}

	for _, entry := range queue {
		status := "ok"
		switch {
		case !entry.Record.Classified():
			status = "unclassified"
		case entry.Duplicate:
			status = "duplicate"
		}
		fmt.Printf("%-12s %-22s %-12s %s  (%d line items)\n",
			status,
			entry.Record.InvoiceNumber,
			entry.Record.IssueDate,
			entry.Record.SellerName,
			len(entry.Record.LineItems),
		)
	}
	fmt.Printf("\n%d file(s) queued, ledger holds %d record(s)\n", len(queue), svc.store.Len())
	return nil
}

// collectQueue scans each argument: directories recursively, files directly.
func collectQueue(ctx context.Context, svc *services, args []string) ([]ingest.QueuedInvoice, error) {
	var queue []ingest.QueuedInvoice
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			entries, _, err := svc.ingest.ScanDirectory(ctx, arg, svc.cfg.Ingest.SkipHidden)
			if err != nil {
				return nil, err
			}
			queue = append(queue, entries...)
			continue
		}
		queue = append(queue, svc.ingest.ScanPath(ctx, arg))
	}
	return queue, nil
}
