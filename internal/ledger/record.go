package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/zzstudio/invoicedesk/constants"
)

// InvoiceRecord is one committed (or extraction-pending) invoice. Field names
// in the persisted ledger file are the JSON tags below and must stay stable.
type InvoiceRecord struct {
	InvoiceNumber            string     `json:"invoiceNumber"`
	IssueDate                string     `json:"issueDate"`
	BuyerName                string     `json:"buyerName"`
	BuyerTaxID               string     `json:"buyerTaxId"`
	SellerName               string     `json:"sellerName"`
	SellerTaxID              string     `json:"sellerTaxId"`
	SelfProducedAgricultural bool       `json:"isSelfProducedAgricultural"`
	Remarks                  string     `json:"remarks"`
	SourceFileName           string     `json:"sourceFileName"`
	ProcessedTimestamp       string     `json:"processedTimestamp"`
	LineItems                []LineItem `json:"lineItems"`
}

// LineItem is one detail row within an invoice. Quantity and UnitPrice are
// kept as extracted text; Amount, TaxAmount and LineTotal are normalized to
// two-decimal fixed point.
type LineItem struct {
	Description string          `json:"description"`
	Spec        string          `json:"spec"`
	Unit        string          `json:"unit"`
	Quantity    string          `json:"quantity"`
	UnitPrice   string          `json:"unitPrice"`
	Amount      decimal.Decimal `json:"amount"`
	TaxRate     string          `json:"taxRate"`
	TaxAmount   decimal.Decimal `json:"taxAmount"`
	LineTotal   decimal.Decimal `json:"lineTotal"`
}

// NewInvoiceRecord returns a record with every field sentinel-defaulted.
func NewInvoiceRecord() InvoiceRecord {
	return InvoiceRecord{
		InvoiceNumber:      constants.Unknown,
		IssueDate:          constants.Unknown,
		BuyerName:          constants.Unknown,
		BuyerTaxID:         constants.Unknown,
		SellerName:         constants.Unknown,
		SellerTaxID:        constants.Unknown,
		ProcessedTimestamp: constants.NotProcessed,
		LineItems:          []LineItem{},
	}
}

// NewLineItem returns a line item with sentinel text fields and zero amounts.
func NewLineItem() LineItem {
	return LineItem{
		Description: constants.Unknown,
		Spec:        constants.Unknown,
		Unit:        constants.Unknown,
		Quantity:    "1",
		TaxRate:     constants.Unknown,
	}
}

// Classified reports whether extraction found a usable invoice number.
// Unclassified records may be queued and printed but are never persisted.
func (r InvoiceRecord) Classified() bool {
	return r.InvoiceNumber != constants.Unknown && r.InvoiceNumber != ""
}
