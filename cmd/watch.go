package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zzstudio/invoicedesk/internal/ingest"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Watch a directory and extract invoices as they appear",
	Long: `Watch a directory (recursively) for new or modified invoice files and
extract each one as it lands, reporting duplicates against the ledger.
Nothing is committed; stop with Ctrl-C.`,
	Example: `  invoicedesk watch ~/Downloads/invoices`,
	Args:    cobra.ExactArgs(1),
	RunE:    runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	svc := buildServices()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	events, errs, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
		Root:       args[0],
		Debounce:   svc.cfg.Ingest.Debounce,
		SkipHidden: svc.cfg.Ingest.SkipHidden,
	}, nil)
	if err != nil {
		return err
	}

	fmt.Printf("watching %s (Ctrl-C to stop)\n", args[0])
	for {
		select {
		case <-ctx.Done():
			return nil
		case path, ok := <-events:
			if !ok {
				return nil
			}
			entry := svc.ingest.ScanPath(ctx, path)
			status := "new"
			switch {
			case !entry.Record.Classified():
				status = "unclassified"
			case entry.Duplicate:
				status = "duplicate"
			}
			fmt.Printf("%-12s %-22s %s\n", status, entry.Record.InvoiceNumber, path)
		case err, ok := <-errs:
			if ok && err != nil {
				fmt.Printf("watch error: %v\n", err)
			}
		}
	}
}
