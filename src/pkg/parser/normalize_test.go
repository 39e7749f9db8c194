package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"curlysbooks/src/pkg/parser"
	"curlysbooks/src/pkg/receipt"
)

func TestNormalizePrice_PlainValue(t *testing.T) {
	value, ok := parser.NormalizePrice("12.99")
	assert.True(t, ok)
	assert.Equal(t, "12.99", value.StringFixed(2))
}

func TestNormalizePrice_CurrencySymbolAndThousands(t *testing.T) {
	value, ok := parser.NormalizePrice("$1,234.50")
	assert.True(t, ok)
	assert.Equal(t, "1234.50", value.StringFixed(2))
}

func TestNormalizePrice_ParenthesesAreNegative(t *testing.T) {
	value, ok := parser.NormalizePrice("(4.50)")
	assert.True(t, ok)
	assert.Equal(t, "-4.50", value.StringFixed(2))
}

func TestNormalizePrice_LeadingMinusIsNegative(t *testing.T) {
	value, ok := parser.NormalizePrice("-4.50")
	assert.True(t, ok)
	assert.Equal(t, "-4.50", value.StringFixed(2))
}

func TestNormalizePrice_OCRDigitConfusion(t *testing.T) {
	value, ok := parser.NormalizePrice("1O.OE")
	assert.True(t, ok)
	assert.Equal(t, "10.09", value.StringFixed(2))
}

func TestNormalizePrice_EmptyStringFails(t *testing.T) {
	_, ok := parser.NormalizePrice("   ")
	assert.False(t, ok)
}

func TestNormalizePrice_UnparseableFails(t *testing.T) {
	_, ok := parser.NormalizePrice("not a price")
	assert.False(t, ok)
}

func TestCleanDescription(t *testing.T) {
	assert.Equal(t, "MILK I LOVE", parser.CleanDescription("MILK | LOVE"))
	assert.Equal(t, "collapsed spaces", parser.CleanDescription("collapsed    spaces"))
	assert.Equal(t, "no underscores", parser.CleanDescription("no___underscores"))
}

func TestMapTaxCode_KnownCode(t *testing.T) {
	table := map[string]receipt.TaxFlag{"H": receipt.TaxFlagTaxable}
	assert.Equal(t, receipt.TaxFlagTaxable, parser.MapTaxCode("h", table))
}

func TestMapTaxCode_UnknownFallsBackToExempt(t *testing.T) {
	table := map[string]receipt.TaxFlag{"H": receipt.TaxFlagTaxable}
	assert.Equal(t, receipt.TaxFlagExempt, parser.MapTaxCode("Z", table))
}
