package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"curlysbooks/src/pkg/parser"
	"curlysbooks/src/pkg/receipt"
)

func TestCostcoParser_DetectFormat(t *testing.T) {
	p := parser.NewCostcoParser()
	assert.True(t, p.DetectFormat("COSTCO WHOLESALE #123"))
	assert.False(t, p.DetectFormat("some other store"))
}

func TestCostcoParser_ParsesItemsAndDepositAsFee(t *testing.T) {
	text := "COSTCO WHOLESALE #123\n" +
		"01/15/2026\n" +
		"123456 HOT ROD 40CT        14.99 H\n" +
		"bottle deposit              2.00\n" +
		"SUBTOTAL                   16.99\n" +
		"TOTAL                      16.99\n"

	p := parser.NewCostcoParser()
	nr := p.Parse(text, receipt.EntityCorp)

	require.Len(t, nr.Lines, 2)
	assert.Equal(t, receipt.LineTypeItem, nr.Lines[0].LineType)
	require.NotNil(t, nr.Lines[0].SKU)
	assert.Equal(t, "123456", *nr.Lines[0].SKU)
	assert.Equal(t, receipt.LineTypeFee, nr.Lines[1].LineType)
	assert.Equal(t, "2.00", nr.Lines[1].LineTotal.StringFixed(2))
}
