package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"curlysbooks/src/pkg/parser"
	"curlysbooks/src/pkg/receipt"
)

func TestWalmartParser_DetectFormat(t *testing.T) {
	p := parser.NewWalmartParser()
	assert.True(t, p.DetectFormat("WALMART SUPERCENTRE"))
	assert.True(t, p.DetectFormat("TC# 1234"))
	assert.False(t, p.DetectFormat("some other store"))
}

func TestWalmartParser_ParsesItemLinesAndTaxCode(t *testing.T) {
	text := "WALMART SUPERCENTRE\n" +
		"01/15/26\n" +
		"GREAT VALUE MILK 2L  012345678901  4.97 H\n" +
		"BANANAS              098765432109  1.50 N\n" +
		"SUBTOTAL             6.47\n" +
		"HST                  0.65\n" +
		"TOTAL                7.12\n" +
		"TC# 9988776655443322\n"

	p := parser.NewWalmartParser()
	nr := p.Parse(text, receipt.EntityCorp)

	require.Len(t, nr.Lines, 2)
	assert.Equal(t, receipt.TaxFlagTaxable, nr.Lines[0].TaxFlag)
	assert.Equal(t, receipt.TaxFlagExempt, nr.Lines[1].TaxFlag)
	require.NotNil(t, nr.Lines[0].UPC)
	assert.Equal(t, "012345678901", *nr.Lines[0].UPC)
	assert.Equal(t, "6.47", nr.Subtotal.StringFixed(2))
	assert.False(t, nr.PurchaseDate.IsZero())
}

func TestWalmartParser_UnparseableDateWarns(t *testing.T) {
	text := "WALMART SUPERCENTRE\n13/45/99\nTC# 1\n"
	p := parser.NewWalmartParser()
	nr := p.Parse(text, receipt.EntityCorp)

	found := false
	for _, w := range nr.ValidationWarnings {
		if w.Type == receipt.WarningDateParseFailed {
			found = true
		}
	}
	assert.True(t, found)
}
