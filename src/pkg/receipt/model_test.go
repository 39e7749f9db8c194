package receipt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"curlysbooks/src/pkg/receipt"
)

func TestEntity_Valid(t *testing.T) {
	assert.True(t, receipt.EntityCorp.Valid())
	assert.True(t, receipt.EntitySoleprop.Valid())
	assert.False(t, receipt.Entity("nonprofit").Valid())
	assert.False(t, receipt.Entity("").Valid())
}

func TestNewWarning(t *testing.T) {
	warning := receipt.NewWarning(receipt.WarningPriceParseFailed, "could not parse", map[string]any{"raw": "abc"})
	assert.Equal(t, receipt.WarningPriceParseFailed, warning.Type)
	assert.Equal(t, "could not parse", warning.Message)
	assert.Equal(t, "abc", warning.Data["raw"])
}

func TestCategories_EveryConstantHasADescription(t *testing.T) {
	for _, key := range []string{
		receipt.CategoryFoodHotdog,
		receipt.CategoryBeverageSoda,
		receipt.CategoryEquipment,
		receipt.CategoryUnknown,
	} {
		description, ok := receipt.Categories[key]
		assert.True(t, ok, "category %q should be described", key)
		assert.NotEmpty(t, description)
	}
}
