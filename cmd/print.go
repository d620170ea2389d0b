package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/zzstudio/invoicedesk/internal/app"
	"github.com/zzstudio/invoicedesk/internal/layout"
)

var (
	printOutput  string
	printGrid    string
	printCopies  int
	printPrinter string
	printSubmit  bool
)

var printCmd = &cobra.Command{
	Use:   "print [dir|file...]",
	Short: "Arrange invoices onto gridded pages and commit them to the ledger",
	Long: `Extract the given invoice files, arrange every copy onto fixed-size pages
using the selected grid, write the resulting PDF, and record each classified
invoice in the ledger as processed.

With --submit the document is also handed to the system printer first;
records are committed only if submission succeeds.`,
	Example: `  invoicedesk print ~/Downloads/invoices -o batch.pdf
  invoicedesk print a.pdf b.pdf --grid 2x2 --copies 1
  invoicedesk print a.pdf --submit --printer Office_HP`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPrint,
}

func init() {
	printCmd.Flags().StringVarP(&printOutput, "output", "o", "", "output PDF path (default invoices_<timestamp>.pdf)")
	printCmd.Flags().StringVar(&printGrid, "grid", "", "grid shape: 1x1, 1x2, 1x3, 2x2, 2x3, 2x4")
	printCmd.Flags().IntVar(&printCopies, "copies", 0, "copies per invoice (1-4)")
	printCmd.Flags().StringVar(&printPrinter, "printer", "", "printer name (default: system default)")
	printCmd.Flags().BoolVar(&printSubmit, "submit", false, "submit the document to the printer")
	rootCmd.AddCommand(printCmd)
}

func runPrint(cmd *cobra.Command, args []string) error {
	svc := buildServices()

	gridLabel := printGrid
	if gridLabel == "" {
		gridLabel = svc.cfg.Layout.GridShape
	}
	grid, err := layout.ParseGridShape(gridLabel)
	if err != nil {
		return err
	}
	copies := printCopies
	if copies == 0 {
		copies = svc.cfg.Layout.Copies
	}
	if copies < 1 || copies > 4 {
		return fmt.Errorf("copies must be between 1 and 4, got %d", copies)
	}

	queue, err := collectQueue(cmd.Context(), svc, args)
	if err != nil {
		return err
	}
	if len(queue) == 0 {
		return fmt.Errorf("no invoice files found")
	}

	for _, entry := range queue {
		if entry.Duplicate {
			fmt.Printf("warning: %s was already processed (invoice %s), printing again\n",
				filepath.Base(entry.Path), entry.Record.InvoiceNumber)
		}
	}

	output := printOutput
	if output == "" {
		output = filepath.Join(svc.cfg.Layout.OutputDir,
			fmt.Sprintf("invoices_%s.pdf", time.Now().Format("20060102_150405")))
	}

	st := app.NewState(grid, copies).WithQueued(queue...)
	printerName := printPrinter
	if printerName == "" {
		printerName = svc.cfg.Printer.Name
	}

	res, err := svc.committer.Commit(cmd.Context(), st, output, printerName, printSubmit)
	if err != nil {
		return err
	}

	fmt.Printf("wrote %s (%d invoice(s) x %d copies, grid %s)\n", res.OutputPath, len(queue), copies, grid)
	if res.Printed {
		fmt.Println("submitted to printer")
	}
	fmt.Printf("committed %d record(s) to the ledger", res.Committed)
	if res.Skipped > 0 {
		fmt.Printf(", skipped %d unclassified", res.Skipped)
	}
	fmt.Println()
	return nil
}
