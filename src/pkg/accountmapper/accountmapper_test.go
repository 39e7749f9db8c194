package accountmapper_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"curlysbooks/src/pkg/accountmapper"
	"curlysbooks/src/pkg/money"
	"curlysbooks/src/pkg/receipt"
)

var threshold = money.FromFloat(2500.00)

func TestMap_KnownCategory(t *testing.T) {
	mapping := accountmapper.Map(receipt.CategoryFoodHotdog, money.FromFloat(4.99), threshold)
	assert.Equal(t, "5000", mapping.AccountCode)
	assert.False(t, mapping.RequiresReview)
}

func TestMap_EquipmentBelowCapitalizationThreshold(t *testing.T) {
	mapping := accountmapper.Map(receipt.CategoryEquipment, money.FromFloat(199.00), threshold)
	assert.Equal(t, "6300", mapping.AccountCode)
	assert.False(t, mapping.RequiresReview)
}

func TestMap_EquipmentAtCapitalizationThreshold(t *testing.T) {
	mapping := accountmapper.Map(receipt.CategoryEquipment, money.FromFloat(2500.00), threshold)
	assert.Equal(t, "1500", mapping.AccountCode)
	assert.True(t, mapping.RequiresReview)
}

func TestMap_EquipmentNegativeLineTotalUsesAbsoluteValue(t *testing.T) {
	mapping := accountmapper.Map(receipt.CategoryEquipment, money.FromFloat(-3000.00), threshold)
	assert.Equal(t, "1500", mapping.AccountCode)
	assert.True(t, mapping.RequiresReview)
}

func TestMap_UnknownCategoryForcesReview(t *testing.T) {
	mapping := accountmapper.Map(receipt.CategoryUnknown, money.FromFloat(10.00), threshold)
	assert.Equal(t, "9100", mapping.AccountCode)
	assert.True(t, mapping.RequiresReview)
}

func TestMap_CategoryOutsideVocabularyFallsBackToUnknown(t *testing.T) {
	mapping := accountmapper.Map("not_a_real_category", money.FromFloat(10.00), threshold)
	assert.Equal(t, "9100", mapping.AccountCode)
	assert.True(t, mapping.RequiresReview)
}

func TestMap_EquipmentAtExactThresholdIsCapitalized(t *testing.T) {
	mapping := accountmapper.Map(receipt.CategoryEquipment, threshold, threshold)
	assert.Equal(t, "1500", mapping.AccountCode)
	assert.True(t, mapping.RequiresReview)
}
