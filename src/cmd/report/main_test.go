package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"curlysbooks/src/pkg/money"
)

func TestFormatCAD(t *testing.T) {
	assert.Equal(t, "$1,234.56 CAD", formatCAD(money.FromFloat(1234.56)))
	assert.Equal(t, "$0.00 CAD", formatCAD(money.Zero))
	assert.Equal(t, "-$12.00 CAD", formatCAD(money.FromFloat(-12.00)))
}

func TestGroupThousands(t *testing.T) {
	assert.Equal(t, "123", groupThousands("123", ","))
	assert.Equal(t, "1,234", groupThousands("1234", ","))
	assert.Equal(t, "12,345,678", groupThousands("12345678", ","))
}

func TestFormatIntHuman(t *testing.T) {
	assert.Equal(t, "1,000", formatIntHuman(1000))
	assert.Equal(t, "42", formatIntHuman(42))
}

func TestPercentOf(t *testing.T) {
	assert.InDelta(t, 50.0, percentOf(money.FromFloat(5), money.FromFloat(10)), 0.0001)
	assert.Equal(t, 0.0, percentOf(money.FromFloat(5), money.Zero))
}

func TestBarPercentOf(t *testing.T) {
	assert.Equal(t, 50, barPercentOf(money.FromFloat(5), money.FromFloat(10)))
	assert.Equal(t, 0, barPercentOf(money.Zero, money.FromFloat(10)))
	assert.Equal(t, 1, barPercentOf(money.FromFloat(0.01), money.FromFloat(1000)), "nonzero amount should round up to a visible sliver")
}

func TestDisplayCategoryName_KnownAndUnknown(t *testing.T) {
	assert.NotEqual(t, "unmapped_category_key", displayCategoryName("food_hotdog"))
	assert.Equal(t, "Unmapped Category Key", displayCategoryName("unmapped_category_key"))
}

func TestBuildCategoryRows_CollapsesTailIntoOther(t *testing.T) {
	aggByKey := map[string]*categoryAgg{
		"a": {Key: "a", DisplayName: "A", Amount: money.FromFloat(50)},
		"b": {Key: "b", DisplayName: "B", Amount: money.FromFloat(30)},
		"c": {Key: "c", DisplayName: "C", Amount: money.FromFloat(15)},
		"d": {Key: "d", DisplayName: "D", Amount: money.FromFloat(5)},
	}
	rows := buildCategoryRows(aggByKey, money.FromFloat(100), 3)

	assert.Len(t, rows, 3)
	assert.Equal(t, "a", rows[0].Key)
	assert.Equal(t, "other", rows[len(rows)-1].Key)
	assert.Equal(t, "20.00", rows[len(rows)-1].Amount.StringFixed(2))
}
