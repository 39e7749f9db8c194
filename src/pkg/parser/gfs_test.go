package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"curlysbooks/src/pkg/parser"
	"curlysbooks/src/pkg/receipt"
)

func TestGFSParser_DetectFormat(t *testing.T) {
	p := parser.NewGFSParser()
	assert.True(t, p.DetectFormat("GORDON FOOD SERVICE INVOICE"))
	assert.True(t, p.DetectFormat("GFS Canada Ltd"))
	assert.False(t, p.DetectFormat("walmart supercentre"))
}

func TestGFSParser_ParsesQuantityAndUnitPrice(t *testing.T) {
	text := "GORDON FOOD SERVICE\n" +
		"Invoice Number: 98765\n" +
		"2026-01-15\n" +
		"1234567 2 CS  WHOLE WHEAT BUN        18.50  37.00 T\n" +
		"SUBTOTAL             37.00\n" +
		"TOTAL                37.00\n"

	p := parser.NewGFSParser()
	nr := p.Parse(text, receipt.EntityCorp)

	assert.Equal(t, "98765", nr.InvoiceNumber)
	require.Len(t, nr.Lines, 1)
	line := nr.Lines[0]
	require.NotNil(t, line.Quantity)
	require.NotNil(t, line.UnitPrice)
	assert.Equal(t, "2.00", line.Quantity.StringFixed(2))
	assert.Equal(t, "18.50", line.UnitPrice.StringFixed(2))
	assert.Equal(t, "37.00", line.LineTotal.StringFixed(2))
	assert.Equal(t, receipt.TaxFlagTaxable, line.TaxFlag)
}
