package ledger

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/zzstudio/invoicedesk/constants"
)

// Earlier iterations of the ledger stored one flat object per invoice with
// the line fields inlined at the top level and no processedTimestamp. The
// migration below runs once at load time and produces the current in-memory
// representation; it is deliberately isolated from the store so it can be
// tested on raw JSON alone.

type legacyRecord struct {
	InvoiceNumber            string          `json:"invoiceNumber"`
	IssueDate                string          `json:"issueDate"`
	BuyerName                string          `json:"buyerName"`
	BuyerTaxID               string          `json:"buyerTaxId"`
	SellerName               string          `json:"sellerName"`
	SellerTaxID              string          `json:"sellerTaxId"`
	SelfProducedAgricultural bool            `json:"isSelfProducedAgricultural"`
	Remarks                  string          `json:"remarks"`
	SourceFileName           string          `json:"sourceFileName"`
	Description              string          `json:"description"`
	Spec                     string          `json:"spec"`
	Unit                     string          `json:"unit"`
	Quantity                 string          `json:"quantity"`
	UnitPrice                string          `json:"unitPrice"`
	Amount                   decimal.Decimal `json:"amount"`
	TaxRate                  string          `json:"taxRate"`
	TaxAmount                decimal.Decimal `json:"taxAmount"`
}

// MigrateRecord upgrades one raw ledger entry to the current schema. Records
// that already carry a lineItems field pass through with sentinel defaulting
// only; records without one are legacy and get their flat line fields
// repackaged into a single synthetic LineItem.
func MigrateRecord(raw json.RawMessage) (InvoiceRecord, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return InvoiceRecord{}, fmt.Errorf("decode record: %w", err)
	}

	if _, ok := probe["lineItems"]; ok {
		var rec InvoiceRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return InvoiceRecord{}, fmt.Errorf("decode record: %w", err)
		}
		if rec.ProcessedTimestamp == "" {
			rec.ProcessedTimestamp = constants.NotProcessed
		}
		if rec.LineItems == nil {
			rec.LineItems = []LineItem{}
		}
		return rec, nil
	}

	var old legacyRecord
	if err := json.Unmarshal(raw, &old); err != nil {
		return InvoiceRecord{}, fmt.Errorf("decode legacy record: %w", err)
	}

	rec := NewInvoiceRecord()
	rec.InvoiceNumber = defaulted(old.InvoiceNumber)
	rec.IssueDate = defaulted(old.IssueDate)
	rec.BuyerName = defaulted(old.BuyerName)
	rec.BuyerTaxID = defaulted(old.BuyerTaxID)
	rec.SellerName = defaulted(old.SellerName)
	rec.SellerTaxID = defaulted(old.SellerTaxID)
	rec.SelfProducedAgricultural = old.SelfProducedAgricultural
	rec.Remarks = old.Remarks
	rec.SourceFileName = old.SourceFileName

	item := NewLineItem()
	item.Description = defaulted(old.Description)
	item.Spec = defaulted(old.Spec)
	item.Unit = defaulted(old.Unit)
	if old.Quantity != "" {
		item.Quantity = old.Quantity
	}
	item.UnitPrice = old.UnitPrice
	item.Amount = old.Amount.Round(2)
	item.TaxRate = defaulted(old.TaxRate)
	item.TaxAmount = old.TaxAmount.Round(2)
	item.LineTotal = item.Amount.Add(item.TaxAmount)
	rec.LineItems = []LineItem{item}

	return rec, nil
}

func defaulted(s string) string {
	if s == "" {
		return constants.Unknown
	}
	return s
}
