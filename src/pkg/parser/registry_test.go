package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"curlysbooks/src/pkg/parser"
	"curlysbooks/src/pkg/receipt"
)

func TestRegistry_ResolveKnownVendor(t *testing.T) {
	registry := parser.NewRegistry()
	p, usedGeneric := registry.Resolve("walmart")
	require.NotNil(t, p)
	assert.False(t, usedGeneric)
	assert.Equal(t, "walmart", p.VendorKey())
}

func TestRegistry_ResolveUnknownVendorFallsBackToGeneric(t *testing.T) {
	registry := parser.NewRegistry()
	p, usedGeneric := registry.Resolve("some_unlisted_vendor")
	require.NotNil(t, p)
	assert.True(t, usedGeneric)
	assert.Equal(t, "generic", p.VendorKey())
}

func TestRegistry_ParseAppendsVendorUnknownWarningOnFallback(t *testing.T) {
	registry := parser.NewRegistry()
	result := registry.Parse("", "SOME UNKNOWN SHOP\nTOTAL 5.00\n", receipt.EntityCorp)

	found := false
	for _, w := range result.ValidationWarnings {
		if w.Type == receipt.WarningVendorUnknown {
			found = true
		}
	}
	assert.True(t, found)
}

func TestRegistry_ParseKnownVendorDoesNotAppendVendorUnknown(t *testing.T) {
	registry := parser.NewRegistry()
	result := registry.Parse("walmart", "WALMART SUPERCENTRE\nTC# 1\nTOTAL 5.00\n", receipt.EntityCorp)

	for _, w := range result.ValidationWarnings {
		assert.NotEqual(t, receipt.WarningVendorUnknown, w.Type)
	}
}
