package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zzstudio/invoicedesk/constants"
)

const sampleHeaderText = `电子发票（普通发票）
发票号码：24312000000012345678
开票日期：2024年01月15日
购买方信息 名称：杭州云启科技有限公司
纳税人识别号：91330100MA27XQ2T3B
销售方信息 名称：北京绿野农业合作社
纳税人识别号：911101087956321470
备注 自产农产品`

func TestExtractHeader(t *testing.T) {
	rec := NewFieldExtractor(BuyerFirst).ExtractHeader(sampleHeaderText)

	assert.Equal(t, "24312000000012345678", rec.InvoiceNumber)
	assert.Equal(t, "2024/01/15", rec.IssueDate)
	assert.Equal(t, "杭州云启科技有限公司", rec.BuyerName)
	assert.Equal(t, "91330100MA27XQ2T3B", rec.BuyerTaxID)
	assert.Equal(t, "北京绿野农业合作社", rec.SellerName)
	assert.Equal(t, "911101087956321470", rec.SellerTaxID)
	assert.True(t, rec.SelfProducedAgricultural)
	assert.True(t, rec.Classified())
}

func TestExtractHeaderSellerFirst(t *testing.T) {
	rec := NewFieldExtractor(SellerFirst).ExtractHeader(sampleHeaderText)

	assert.Equal(t, "北京绿野农业合作社", rec.BuyerName)
	assert.Equal(t, "杭州云启科技有限公司", rec.SellerName)
	assert.Equal(t, "911101087956321470", rec.BuyerTaxID)
	assert.Equal(t, "91330100MA27XQ2T3B", rec.SellerTaxID)
}

func TestExtractHeaderEmptyText(t *testing.T) {
	rec := NewFieldExtractor(BuyerFirst).ExtractHeader("")

	assert.Equal(t, constants.Unknown, rec.InvoiceNumber)
	assert.Equal(t, constants.Unknown, rec.IssueDate)
	assert.Equal(t, constants.Unknown, rec.BuyerName)
	assert.Equal(t, constants.Unknown, rec.SellerName)
	assert.False(t, rec.SelfProducedAgricultural)
	assert.False(t, rec.Classified())
}

func TestExtractHeaderSinglePartyKeepsSentinels(t *testing.T) {
	text := "发票号码：123456\n名称：只有一方有限公司\n"
	rec := NewFieldExtractor(BuyerFirst).ExtractHeader(text)

	// One name match is ambiguous; neither party field may be guessed.
	assert.Equal(t, "123456", rec.InvoiceNumber)
	assert.Equal(t, constants.Unknown, rec.BuyerName)
	assert.Equal(t, constants.Unknown, rec.SellerName)
}

func TestExtractHeaderSpacedLabel(t *testing.T) {
	text := "名 称：甲方公司\n名 称：乙方公司\n"
	rec := NewFieldExtractor(BuyerFirst).ExtractHeader(text)

	assert.Equal(t, "甲方公司", rec.BuyerName)
	assert.Equal(t, "乙方公司", rec.SellerName)
}

func TestExtractHeaderColonlessLabel(t *testing.T) {
	// Some templates print the label without a colon at all.
	text := "名称 甲方公司\n名称 乙方公司\n"
	rec := NewFieldExtractor(BuyerFirst).ExtractHeader(text)

	assert.Equal(t, "甲方公司", rec.BuyerName)
	assert.Equal(t, "乙方公司", rec.SellerName)
}

func TestNormalizeDate(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"2024年01月15日", "2024/01/15"},
		{"2024年1月5日", "2024/01/05"},
		{"2024 年 1 月 5 日", "2024/01/05"},
		{"2023-12-31", "2023/12/31"},
		{"2023.7.1", "2023/07/01"},
		{"2024年13月01日", "2024年13月01日"}, // invalid month, raw kept
		{"someday", "someday"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeDate(tc.raw), "raw=%q", tc.raw)
	}
}
