package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/zzstudio/invoicedesk/internal/ledger"
)

// PartyOrder controls how the positional name/tax-id matches are assigned.
// The invoice templates we handle print the buyer block before the seller
// block; documents that deviate would silently swap the parties, so the
// assumption is an explicit option rather than a hard-coded rule.
type PartyOrder int

const (
	BuyerFirst PartyOrder = iota
	SellerFirst
)

// Fixed marker phrase for self-produced agricultural goods invoices.
const selfProducedMarker = "自产农产品"

// Compile the label battery once. Each pattern is label, optional colon,
// then a constrained value.
var (
	reInvoiceNumber = regexp.MustCompile(`发票号码[:：]?\s*(\d+)`)
	reIssueDate     = regexp.MustCompile(`开票日期[:：]?\s*(\d{4}\s*年\s*\d{1,2}\s*月\s*\d{1,2}\s*日?)`)
	rePartyName     = regexp.MustCompile(`名\s*称[:：]?\s*(\S+)`)
	rePartyTaxID    = regexp.MustCompile(`纳税人识别号[:：]?\s*([0-9A-Z]{15,20})`)

	reDateParts = regexp.MustCompile(`^(\d{4})\s*[年\-/.]\s*(\d{1,2})\s*[月\-/.]\s*(\d{1,2})\s*日?$`)
)

// FieldExtractor parses raw first-page text into the header portion of an
// InvoiceRecord. Every search is independent and best-effort: an unmatched
// field keeps its sentinel default and no input ever produces an error.
type FieldExtractor struct {
	order PartyOrder
}

func NewFieldExtractor(order PartyOrder) *FieldExtractor {
	return &FieldExtractor{order: order}
}

// ExtractHeader fills the header fields of a fresh record from text.
func (e *FieldExtractor) ExtractHeader(text string) ledger.InvoiceRecord {
	rec := ledger.NewInvoiceRecord()
	if text == "" {
		return rec
	}

	if m := reInvoiceNumber.FindStringSubmatch(text); m != nil {
		rec.InvoiceNumber = m[1]
	}
	if m := reIssueDate.FindStringSubmatch(text); m != nil {
		rec.IssueDate = NormalizeDate(m[1])
	}
	rec.SelfProducedAgricultural = strings.Contains(text, selfProducedMarker)

	names := collect(rePartyName, text)
	taxIDs := collect(rePartyTaxID, text)

	// Positional assignment: the first match of each label belongs to one
	// party, the second to the other. Fewer than two matches means the
	// document did not expose both parties and the sentinels stay.
	if len(names) >= 2 {
		first, second := names[0], names[1]
		if e.order == SellerFirst {
			first, second = second, first
		}
		rec.BuyerName, rec.SellerName = first, second
	}
	if len(taxIDs) >= 2 {
		first, second := taxIDs[0], taxIDs[1]
		if e.order == SellerFirst {
			first, second = second, first
		}
		rec.BuyerTaxID, rec.SellerTaxID = first, second
	}

	return rec
}

// NormalizeDate rewrites a matched issue date into the canonical YYYY/MM/DD
// form, stripping locale separators. When the value does not normalize, the
// raw matched string is kept unmodified.
func NormalizeDate(raw string) string {
	m := reDateParts.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return raw
	}
	year, err1 := strconv.Atoi(m[1])
	month, err2 := strconv.Atoi(m[2])
	day, err3 := strconv.Atoi(m[3])
	if err1 != nil || err2 != nil || err3 != nil || month < 1 || month > 12 || day < 1 || day > 31 {
		return raw
	}
	return fmt.Sprintf("%04d/%02d/%02d", year, month, day)
}

func collect(re *regexp.Regexp, text string) []string {
	var out []string
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		out = append(out, strings.TrimSpace(m[1]))
	}
	return out
}
