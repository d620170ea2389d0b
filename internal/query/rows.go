package query

import (
	"github.com/shopspring/decimal"

	"github.com/zzstudio/invoicedesk/internal/ledger"
)

// RowKind distinguishes data rows from interspersed summary rows.
type RowKind int

const (
	RowData RowKind = iota
	RowSubtotal
	RowGrandTotal
)

// Row is one display row: either one line item with its header fields
// repeated, or a summary row carrying aggregated sums. Summary rows must
// never reach export output.
type Row struct {
	Kind  RowKind
	Label string // summary rows only

	InvoiceNumber            string
	ProcessedTimestamp       string
	IssueDate                string
	SellerName               string
	SellerTaxID              string
	BuyerName                string
	SelfProducedAgricultural bool
	Description              string
	Spec                     string
	Unit                     string
	Quantity                 string
	UnitPrice                string
	Amount                   decimal.Decimal
	TaxRate                  string
	TaxAmount                decimal.Decimal
	LineTotal                decimal.Decimal
	Remarks                  string
	SourceFileName           string
}

// IsSummary reports whether the row is a subtotal/grand-total row.
func (r Row) IsSummary() bool {
	return r.Kind != RowData
}

func flattenRecord(rec ledger.InvoiceRecord) []Row {
	rows := make([]Row, 0, len(rec.LineItems))
	for _, item := range rec.LineItems {
		rows = append(rows, Row{
			Kind:                     RowData,
			InvoiceNumber:            rec.InvoiceNumber,
			ProcessedTimestamp:       rec.ProcessedTimestamp,
			IssueDate:                rec.IssueDate,
			SellerName:               rec.SellerName,
			SellerTaxID:              rec.SellerTaxID,
			BuyerName:                rec.BuyerName,
			SelfProducedAgricultural: rec.SelfProducedAgricultural,
			Description:              item.Description,
			Spec:                     item.Spec,
			Unit:                     item.Unit,
			Quantity:                 item.Quantity,
			UnitPrice:                item.UnitPrice,
			Amount:                   item.Amount,
			TaxRate:                  item.TaxRate,
			TaxAmount:                item.TaxAmount,
			LineTotal:                item.LineTotal,
			Remarks:                  rec.Remarks,
			SourceFileName:           rec.SourceFileName,
		})
	}
	return rows
}
