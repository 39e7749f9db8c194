package money_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"curlysbooks/src/pkg/money"
)

func TestFromString(t *testing.T) {
	amount, err := money.FromString("12.99")
	require.NoError(t, err)
	assert.True(t, amount.Equal(money.FromFloat(12.99)))

	_, err = money.FromString("not-a-number")
	require.Error(t, err)
}

func TestFromFloat_RoundsToCents(t *testing.T) {
	amount := money.FromFloat(12.555)
	expected, _ := money.FromString("12.56")
	assert.True(t, amount.Equal(expected), "got %s want %s", amount, expected)
}

func TestSum(t *testing.T) {
	values := []money.Amount{money.FromFloat(1.10), money.FromFloat(2.20), money.FromFloat(3.30)}
	expected, _ := money.FromString("6.60")
	assert.True(t, money.Sum(values).Equal(expected))
}

func TestSum_Empty(t *testing.T) {
	assert.True(t, money.Sum(nil).Equal(money.Zero))
}

func TestWithinTolerance(t *testing.T) {
	a := money.FromFloat(10.00)
	b := money.FromFloat(10.02)
	tolerance := money.FromFloat(0.02)

	assert.True(t, money.WithinTolerance(a, b, tolerance))
	assert.True(t, money.WithinTolerance(b, a, tolerance))

	c := money.FromFloat(10.03)
	assert.False(t, money.WithinTolerance(a, c, tolerance))
}

func TestRound2(t *testing.T) {
	amount, _ := money.FromString("1.005")
	assert.Equal(t, "1.01", money.Round2(amount).StringFixed(2))
}
