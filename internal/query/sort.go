package query

import (
	"fmt"
	"sort"
	"strings"
)

// Column identifies a displayed column for sorting.
type Column int

const (
	ColInvoiceNumber Column = iota
	ColProcessedTimestamp
	ColIssueDate
	ColSellerName
	ColSellerTaxID
	ColBuyerName
	ColDescription
	ColSpec
	ColUnit
	ColQuantity
	ColUnitPrice
	ColAmount
	ColTaxRate
	ColTaxAmount
	ColLineTotal
	ColRemarks
	ColSourceFileName
)

var columnNames = map[string]Column{
	"invoice":   ColInvoiceNumber,
	"processed": ColProcessedTimestamp,
	"date":      ColIssueDate,
	"seller":    ColSellerName,
	"buyer":     ColBuyerName,
	"item":      ColDescription,
	"quantity":  ColQuantity,
	"price":     ColUnitPrice,
	"amount":    ColAmount,
	"tax":       ColTaxAmount,
	"total":     ColLineTotal,
	"source":    ColSourceFileName,
}

// ParseColumn resolves a CLI sort-column name.
func ParseColumn(s string) (Column, error) {
	if c, ok := columnNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return c, nil
	}
	return 0, fmt.Errorf("unknown sort column %q", s)
}

// SortSpec orders rows by one column, ascending or descending.
type SortSpec struct {
	Column     Column
	Descending bool
}

// sortRows sorts in place. The sort is stable: ties keep the original
// ledger iteration order.
func sortRows(rows []Row, spec SortSpec) {
	sort.SliceStable(rows, func(i, j int) bool {
		less := rowLess(rows[i], rows[j], spec.Column)
		if spec.Descending {
			return rowLess(rows[j], rows[i], spec.Column)
		}
		return less
	})
}

func rowLess(a, b Row, col Column) bool {
	switch col {
	case ColAmount:
		return a.Amount.LessThan(b.Amount)
	case ColTaxAmount:
		return a.TaxAmount.LessThan(b.TaxAmount)
	case ColLineTotal:
		return a.LineTotal.LessThan(b.LineTotal)
	default:
		return textValue(a, col) < textValue(b, col)
	}
}

func textValue(r Row, col Column) string {
	switch col {
	case ColInvoiceNumber:
		return r.InvoiceNumber
	case ColProcessedTimestamp:
		return r.ProcessedTimestamp
	case ColIssueDate:
		return r.IssueDate
	case ColSellerName:
		return r.SellerName
	case ColSellerTaxID:
		return r.SellerTaxID
	case ColBuyerName:
		return r.BuyerName
	case ColDescription:
		return r.Description
	case ColSpec:
		return r.Spec
	case ColUnit:
		return r.Unit
	case ColQuantity:
		return r.Quantity
	case ColUnitPrice:
		return r.UnitPrice
	case ColTaxRate:
		return r.TaxRate
	case ColRemarks:
		return r.Remarks
	case ColSourceFileName:
		return r.SourceFileName
	}
	return ""
}
