package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractLineItemsFullRow(t *testing.T) {
	text := "*谷物*东北大米 10kg装 袋 2 50.00 100.00 13% 13.00"

	items := ExtractLineItems(text)
	require.Len(t, items, 1)

	item := items[0]
	assert.Equal(t, "*谷物*东北大米", item.Description)
	assert.Equal(t, "10kg装", item.Spec)
	assert.Equal(t, "袋", item.Unit)
	assert.Equal(t, "2", item.Quantity)
	assert.Equal(t, "50.00", item.UnitPrice)
	assert.Equal(t, "100.00", item.Amount.StringFixed(2))
	assert.Equal(t, "13%", item.TaxRate)
	assert.Equal(t, "13.00", item.TaxAmount.StringFixed(2))
	assert.Equal(t, "113.00", item.LineTotal.StringFixed(2))
}

func TestExtractLineItemsTaxExempt(t *testing.T) {
	text := "*农产品*花生 500.00 免税 ***"

	items := ExtractLineItems(text)
	require.Len(t, items, 1)

	item := items[0]
	assert.Equal(t, "*农产品*花生", item.Description)
	assert.Equal(t, "500.00", item.Amount.StringFixed(2))
	assert.Equal(t, "免税", item.TaxRate)
	assert.Equal(t, "0.00", item.TaxAmount.StringFixed(2))
	// Short rows default quantity 1 and price = amount.
	assert.Equal(t, "1", item.Quantity)
	assert.Equal(t, "500.00", item.UnitPrice)
	assert.Equal(t, "500.00", item.LineTotal.StringFixed(2))
}

func TestExtractLineItemsSkipsNonCandidates(t *testing.T) {
	text := `发票号码 12345678
合计
价款与税款分离显示`

	assert.Empty(t, ExtractLineItems(text))
}

func TestExtractLineItemsBadRowDoesNotAbort(t *testing.T) {
	text := `*服务*咨询费 1000.00 6% 60.00
*乱码* 12AB.cd 垃圾 XX`

	items := ExtractLineItems(text)
	require.Len(t, items, 1)
	assert.Equal(t, "*服务*咨询费", items[0].Description)
	assert.Equal(t, "1060.00", items[0].LineTotal.StringFixed(2))
}

func TestExtractLineItemsThousandsSeparators(t *testing.T) {
	text := "*设备*打印机 HP-203 台 1 12,500.00 12,500.00 13% 1,625.00"

	items := ExtractLineItems(text)
	require.Len(t, items, 1)
	assert.Equal(t, "12500.00", items[0].Amount.StringFixed(2))
	assert.Equal(t, "1625.00", items[0].TaxAmount.StringFixed(2))
	assert.Equal(t, "14125.00", items[0].LineTotal.StringFixed(2))
}

func TestExtractLineItemsAggregateFallback(t *testing.T) {
	text := `本张发票没有逐行明细
价税合计（小写） ￥1234.56`

	items := ExtractLineItems(text)
	require.Len(t, items, 1)

	item := items[0]
	assert.Equal(t, "价税合计", item.Description)
	assert.Equal(t, "1234.56", item.Amount.StringFixed(2))
	assert.Equal(t, "0.00", item.TaxAmount.StringFixed(2))
	assert.Equal(t, "1234.56", item.LineTotal.StringFixed(2))
}

func TestExtractLineItemsRowsSuppressFallback(t *testing.T) {
	text := `*服务*咨询费 1000.00 6% 60.00
价税合计（小写） ￥1060.00`

	items := ExtractLineItems(text)
	require.Len(t, items, 1)
	assert.Equal(t, "*服务*咨询费", items[0].Description)
}
