package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/zzstudio/invoicedesk/internal/query"
)

var (
	reportSeller string
	reportDate   string
	reportGroup  string
	reportSortBy string
	reportDesc   bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show the ledger as a filtered, optionally grouped line-item table",
	Long: `Flatten the ledger into one row per line item, filtered by seller name
(case-insensitive substring) and issue date (digits, separators ignored).

Grouping by seller, or by seller and processing day, intersperses subtotal
rows; sorting applies to the ungrouped view only.`,
	Example: `  invoicedesk report
  invoicedesk report --seller 粮油 --date 202401
  invoicedesk report --group seller-day
  invoicedesk report --sort amount --desc`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportSeller, "seller", "", "filter by seller name substring")
	reportCmd.Flags().StringVar(&reportDate, "date", "", "filter by issue date digits, e.g. 20240115 or 202401")
	reportCmd.Flags().StringVar(&reportGroup, "group", "none", "grouping: none, seller, seller-day")
	reportCmd.Flags().StringVar(&reportSortBy, "sort", "", "sort column: invoice, date, seller, amount, tax, total, ...")
	reportCmd.Flags().BoolVar(&reportDesc, "desc", false, "sort descending")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	svc := buildServices()

	mode, err := query.ParseGroupingMode(reportGroup)
	if err != nil {
		return err
	}
	var sortSpec *query.SortSpec
	if reportSortBy != "" {
		col, err := query.ParseColumn(reportSortBy)
		if err != nil {
			return err
		}
		sortSpec = &query.SortSpec{Column: col, Descending: reportDesc}
	}

	rows := svc.query.Query(query.Filter{Seller: reportSeller, Date: reportDate}, mode, sortSpec)
	if len(rows) == 0 {
		fmt.Println("no matching records")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "发票号码\t开票日期\t销售方\t货物名称\t数量\t金额\t税额\t价税合计")
	for _, row := range rows {
		if row.IsSummary() {
			fmt.Fprintf(w, "— %s\t\t\t\t\t%s\t%s\t%s\n",
				row.Label,
				row.Amount.StringFixed(2),
				row.TaxAmount.StringFixed(2),
				row.LineTotal.StringFixed(2),
			)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			row.InvoiceNumber,
			row.IssueDate,
			row.SellerName,
			row.Description,
			row.Quantity,
			row.Amount.StringFixed(2),
			row.TaxAmount.StringFixed(2),
			row.LineTotal.StringFixed(2),
		)
	}
	return w.Flush()
}
