package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/zzstudio/invoicedesk/constants"
	"github.com/zzstudio/invoicedesk/internal/ledger"
)

// Aggregate total label, tolerant of full-width or ASCII parentheses around
// 小写 and an optional currency glyph before the value.
var reAggregateTotal = regexp.MustCompile(`价税合计\s*[（(]\s*小写\s*[）)][:：]?\s*[¥￥]?\s*([0-9][0-9,，]*(?:\.[0-9]+)?)`)

var amountCleaner = strings.NewReplacer(",", "", "，", "", "¥", "", "￥", "", " ", "")

// ExtractLineItems parses raw page text into an ordered list of line items.
//
// A line is a candidate iff it contains a digit and at least one of: the
// goods marker '*', a decimal point, or the tax-exemption word. The test is
// deliberately loose; malformed candidates are discarded by their own parse
// failure rather than by a stricter filter, and one bad row never aborts the
// rest of the document.
func ExtractLineItems(text string) []ledger.LineItem {
	var items []ledger.LineItem
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if !isCandidateLine(line) {
			continue
		}
		item, err := parseCandidate(line)
		if err != nil {
			continue
		}
		items = append(items, item)
	}

	if len(items) == 0 {
		if item, ok := aggregateFallback(text); ok {
			items = append(items, item)
		}
	}
	return items
}

func isCandidateLine(line string) bool {
	if !strings.ContainsAny(line, "0123456789") {
		return false
	}
	return strings.ContainsRune(line, '*') ||
		strings.Contains(line, ".") ||
		strings.Contains(line, constants.TaxExemptMarker)
}

// parseCandidate maps whitespace tokens positionally, reading values from
// the right-hand end: tax amount, tax rate, amount. With six or more tokens
// the two tokens before the amount are tried as quantity and unit price, and
// whatever remains on the left is description plus optional spec/unit.
func parseCandidate(line string) (ledger.LineItem, error) {
	toks := strings.Fields(line)
	n := len(toks)
	if n < 3 {
		return ledger.LineItem{}, fmt.Errorf("too few tokens: %d", n)
	}

	rate := toks[n-2]
	amount, err := parseAmount(toks[n-3])
	if err != nil {
		return ledger.LineItem{}, err
	}

	var tax decimal.Decimal
	if toks[n-1] == constants.TaxNotApplicable || strings.Contains(rate, constants.TaxExemptMarker) {
		tax = decimal.Zero.Round(2)
	} else {
		tax, err = parseAmount(toks[n-1])
		if err != nil {
			return ledger.LineItem{}, err
		}
	}

	item := ledger.NewLineItem()
	item.Amount = amount
	item.TaxRate = rate
	item.TaxAmount = tax
	item.LineTotal = amount.Add(tax)

	if n >= 6 && isNumericToken(toks[n-4]) && isNumericToken(toks[n-5]) {
		item.UnitPrice = toks[n-4]
		item.Quantity = toks[n-5]
		left := toks[:n-5]
		switch {
		case len(left) >= 3:
			item.Description = strings.Join(left[:len(left)-2], " ")
			item.Spec = left[len(left)-2]
			item.Unit = left[len(left)-1]
		case len(left) == 2:
			item.Description = left[0]
			item.Unit = left[1]
		case len(left) == 1:
			item.Description = left[0]
		}
	} else {
		item.Quantity = "1"
		item.UnitPrice = amount.StringFixed(2)
		if !isNumericToken(toks[0]) {
			item.Description = toks[0]
		}
	}

	return item, nil
}

// aggregateFallback synthesizes a single line item from the total-in-figures
// label when no row-level data was found.
func aggregateFallback(text string) (ledger.LineItem, bool) {
	m := reAggregateTotal.FindStringSubmatch(text)
	if m == nil {
		return ledger.LineItem{}, false
	}
	amount, err := parseAmount(m[1])
	if err != nil {
		return ledger.LineItem{}, false
	}
	item := ledger.NewLineItem()
	item.Description = "价税合计"
	item.Quantity = "1"
	item.UnitPrice = amount.StringFixed(2)
	item.Amount = amount
	item.TaxAmount = decimal.Zero.Round(2)
	item.LineTotal = amount
	return item, true
}

// parseAmount strips thousands separators and currency glyphs, then parses
// a two-decimal fixed-point value.
func parseAmount(tok string) (decimal.Decimal, error) {
	cleaned := amountCleaner.Replace(tok)
	if cleaned == "" {
		return decimal.Decimal{}, fmt.Errorf("empty amount token %q", tok)
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("amount token %q: %w", tok, err)
	}
	return d.Round(2), nil
}

func isNumericToken(tok string) bool {
	_, err := decimal.NewFromString(amountCleaner.Replace(tok))
	return err == nil
}
