package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zzstudio/invoicedesk/internal/query"
)

var (
	exportOutput string
	exportSeller string
	exportDate   string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the filtered ledger to a fixed-column XLSX file",
	Long: `Write the filtered, flattened ledger (one row per line item, fixed column
order, no subtotal rows) to an XLSX workbook. The export is always ungrouped
regardless of any report grouping.`,
	Example: `  invoicedesk export -o report.xlsx
  invoicedesk export -o january.xlsx --date 202401`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "invoice_report.xlsx", "output XLSX path")
	exportCmd.Flags().StringVar(&exportSeller, "seller", "", "filter by seller name substring")
	exportCmd.Flags().StringVar(&exportDate, "date", "", "filter by issue date digits")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	svc := buildServices()
	rows, err := svc.export.ExportXLSX(query.Filter{Seller: exportSeller, Date: exportDate}, exportOutput)
	if err != nil {
		return err
	}
	fmt.Printf("wrote %d row(s) to %s\n", rows, exportOutput)
	return nil
}
