package ledger

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zzstudio/invoicedesk/constants"
)

func TestMigrateLegacyFlatRecord(t *testing.T) {
	raw := json.RawMessage(`{
		"invoiceNumber": "1001",
		"issueDate": "2023/11/02",
		"sellerName": "老格式销售方",
		"description": "*农产品*大米",
		"quantity": "2",
		"unitPrice": "50.00",
		"amount": 100.00,
		"taxRate": "9%",
		"taxAmount": 9.00
	}`)

	rec, err := MigrateRecord(raw)
	require.NoError(t, err)

	assert.Equal(t, "1001", rec.InvoiceNumber)
	assert.Equal(t, "老格式销售方", rec.SellerName)
	// Absent fields get sentinels, never empty strings.
	assert.Equal(t, constants.Unknown, rec.BuyerName)
	assert.Equal(t, constants.NotProcessed, rec.ProcessedTimestamp)

	require.Len(t, rec.LineItems, 1)
	item := rec.LineItems[0]
	assert.Equal(t, "*农产品*大米", item.Description)
	assert.Equal(t, "2", item.Quantity)
	assert.Equal(t, "100.00", item.Amount.StringFixed(2))
	assert.Equal(t, "9.00", item.TaxAmount.StringFixed(2))
	assert.Equal(t, "109.00", item.LineTotal.StringFixed(2))
}

func TestMigrateModernRecordPassesThrough(t *testing.T) {
	raw := json.RawMessage(`{
		"invoiceNumber": "2002",
		"processedTimestamp": "2024-01-15 10:30:00",
		"lineItems": [
			{"description": "*服务*咨询费", "amount": 1000, "taxAmount": 60, "lineTotal": 1060}
		]
	}`)

	rec, err := MigrateRecord(raw)
	require.NoError(t, err)

	assert.Equal(t, "2002", rec.InvoiceNumber)
	assert.Equal(t, "2024-01-15 10:30:00", rec.ProcessedTimestamp)
	require.Len(t, rec.LineItems, 1)
	assert.Equal(t, "1060.00", rec.LineItems[0].LineTotal.StringFixed(2))
}

func TestMigrateModernRecordDefaultsMissingFields(t *testing.T) {
	raw := json.RawMessage(`{"invoiceNumber": "3003", "lineItems": null}`)

	rec, err := MigrateRecord(raw)
	require.NoError(t, err)

	assert.Equal(t, constants.NotProcessed, rec.ProcessedTimestamp)
	assert.NotNil(t, rec.LineItems)
	assert.Empty(t, rec.LineItems)
}

func TestMigrateRejectsNonObject(t *testing.T) {
	_, err := MigrateRecord(json.RawMessage(`42`))
	assert.Error(t, err)
}
