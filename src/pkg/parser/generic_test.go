package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"curlysbooks/src/pkg/parser"
	"curlysbooks/src/pkg/receipt"
)

func TestGenericParser_DetectFormatAlwaysTrue(t *testing.T) {
	p := parser.NewGenericParser()
	assert.True(t, p.DetectFormat("anything at all"))
	assert.Equal(t, "generic", p.VendorKey())
}

func TestGenericParser_ParsesTotalsAndLines(t *testing.T) {
	text := "CORNER STORE\n" +
		"MILK 2L              4.99\n" +
		"BREAD WHITE          3.49\n" +
		"SUBTOTAL             8.48\n" +
		"HST                  1.10\n" +
		"TOTAL                9.58\n"

	p := parser.NewGenericParser()
	nr := p.Parse(text, receipt.EntityCorp)

	assert.Equal(t, "CORNER STORE", nr.VendorGuess)
	assert.Equal(t, "8.48", nr.Subtotal.StringFixed(2))
	assert.Equal(t, "1.10", nr.TaxTotal.StringFixed(2))
	assert.Equal(t, "9.58", nr.Total.StringFixed(2))
	require.Len(t, nr.Lines, 2)
	assert.Equal(t, "MILK 2L", nr.Lines[0].RawText)
	assert.Equal(t, "4.99", nr.Lines[0].LineTotal.StringFixed(2))
}

func TestGenericParser_UnreconciledSubtotalWarns(t *testing.T) {
	text := "SHOP\n" +
		"ITEM A               5.00\n" +
		"SUBTOTAL            50.00\n" +
		"TOTAL               50.00\n"

	p := parser.NewGenericParser()
	nr := p.Parse(text, receipt.EntityCorp)

	require.NotEmpty(t, nr.ValidationWarnings)
	assert.Equal(t, receipt.WarningSubtotalMismatch, nr.ValidationWarnings[0].Type)
}
