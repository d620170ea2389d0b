package query

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/zzstudio/invoicedesk/constants"
	"github.com/zzstudio/invoicedesk/internal/ledger"
)

// GroupingMode selects how the report view buckets rows.
type GroupingMode int

const (
	GroupNone GroupingMode = iota
	GroupBySeller
	GroupBySellerAndDay
)

// ParseGroupingMode resolves the CLI grouping names.
func ParseGroupingMode(s string) (GroupingMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return GroupNone, nil
	case "seller":
		return GroupBySeller, nil
	case "seller-day":
		return GroupBySellerAndDay, nil
	}
	return GroupNone, fmt.Errorf("unknown grouping mode %q", s)
}

// Filter holds the report filters. Empty fields match everything.
type Filter struct {
	Seller string // case-insensitive substring of the seller name
	Date   string // substring of the issue date with separators stripped
}

// Engine answers filtered/grouped/summarized queries over the ledger. It
// only ever reads the store.
type Engine struct {
	Store  *ledger.Store
	Logger *slog.Logger
}

func NewEngine(store *ledger.Store, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{Store: store, Logger: logger}
}

// Query returns display rows for the report view: data rows and, when
// grouped, interspersed summary rows. Sorting applies in ungrouped mode
// only and is stable, so ties keep ledger iteration order.
func (e *Engine) Query(f Filter, mode GroupingMode, sortSpec *SortSpec) []Row {
	rows := e.flatten(f)

	switch mode {
	case GroupBySeller:
		return groupBySeller(rows, false)
	case GroupBySellerAndDay:
		return groupBySeller(rows, true)
	}

	if sortSpec != nil {
		sortRows(rows, *sortSpec)
	}
	return rows
}

// ExportRows returns the rows destined for the tabular export: always the
// ungrouped, filtered, flattened view, independent of the report's grouping
// toggle, with no summary rows.
func (e *Engine) ExportRows(f Filter) []Row {
	return e.flatten(f)
}

func (e *Engine) flatten(f Filter) []Row {
	sellerNeedle := strings.ToLower(strings.TrimSpace(f.Seller))
	dateNeedle := strings.TrimSpace(f.Date)

	var rows []Row
	for _, rec := range e.Store.Records() {
		if !matchSeller(rec, sellerNeedle) || !matchDate(rec, dateNeedle) {
			continue
		}
		rows = append(rows, flattenRecord(rec)...)
	}
	return rows
}

func matchSeller(rec ledger.InvoiceRecord, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(rec.SellerName), needle)
}

func matchDate(rec ledger.InvoiceRecord, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(stripSeparators(rec.IssueDate), stripSeparators(needle))
}

// stripSeparators keeps digits only, so 2024/01/15 matches 20240115, 202401
// or 0115 regardless of the separators either side used.
func stripSeparators(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// groupBySeller buckets rows by seller name in first-encountered order and
// appends subtotal rows. With byDay set, each seller bucket is further
// split by the day portion of the processed timestamp, with a day subtotal
// per split and a seller grand total after all day buckets.
func groupBySeller(rows []Row, byDay bool) []Row {
	var sellers []string
	buckets := map[string][]Row{}
	for _, row := range rows {
		if _, ok := buckets[row.SellerName]; !ok {
			sellers = append(sellers, row.SellerName)
		}
		buckets[row.SellerName] = append(buckets[row.SellerName], row)
	}

	var out []Row
	for _, seller := range sellers {
		bucket := buckets[seller]
		if !byDay {
			out = append(out, bucket...)
			out = append(out, summaryRow(RowSubtotal, seller+" 小计", seller, bucket))
			continue
		}

		var days []string
		dayBuckets := map[string][]Row{}
		for _, row := range bucket {
			day := processedDay(row.ProcessedTimestamp)
			if _, ok := dayBuckets[day]; !ok {
				days = append(days, day)
			}
			dayBuckets[day] = append(dayBuckets[day], row)
		}
		for _, day := range days {
			out = append(out, dayBuckets[day]...)
			out = append(out, summaryRow(RowSubtotal, fmt.Sprintf("%s %s 小计", seller, day), seller, dayBuckets[day]))
		}
		out = append(out, summaryRow(RowGrandTotal, seller+" 合计", seller, bucket))
	}
	return out
}

// processedDay truncates a processed timestamp to day granularity. The
// not-processed sentinel stays whole so migrated records group under it.
func processedDay(ts string) string {
	if ts == constants.NotProcessed || len(ts) < 10 {
		return ts
	}
	return ts[:10]
}

func summaryRow(kind RowKind, label, seller string, rows []Row) Row {
	amount, tax, total := decimal.Zero, decimal.Zero, decimal.Zero
	for _, r := range rows {
		amount = amount.Add(r.Amount)
		tax = tax.Add(r.TaxAmount)
		total = total.Add(r.LineTotal)
	}
	return Row{
		Kind:       kind,
		Label:      label,
		SellerName: seller,
		Amount:     amount,
		TaxAmount:  tax,
		LineTotal:  total,
	}
}
