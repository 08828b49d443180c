package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombineOdds_SingleLeg(t *testing.T) {
	odds := decimal.RequireFromString("2.35")

	total, err := CombineOdds([]decimal.Decimal{odds})

	require.NoError(t, err)
	assert.True(t, total.Equal(odds), "single leg total should equal the leg odds, got %s", total)
}

func TestCombineOdds_Product(t *testing.T) {
	legs := []decimal.Decimal{
		decimal.RequireFromString("1.50"),
		decimal.RequireFromString("2.00"),
		decimal.RequireFromString("1.80"),
	}

	total, err := CombineOdds(legs)

	require.NoError(t, err)
	// 1.50 * 2.00 * 1.80 = 5.40
	assert.True(t, total.Equal(decimal.RequireFromString("5.40")), "got %s", total)
}

func TestCombineOdds_RoundsToMoneyPrecision(t *testing.T) {
	legs := []decimal.Decimal{
		decimal.RequireFromString("1.33"),
		decimal.RequireFromString("1.33"),
	}

	total, err := CombineOdds(legs)

	require.NoError(t, err)
	// 1.33 * 1.33 = 1.7689, rounds to 1.77
	assert.True(t, total.Equal(decimal.RequireFromString("1.77")), "got %s", total)
}

func TestCombineOdds_EmptyLegs(t *testing.T) {
	_, err := CombineOdds(nil)

	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestCombineOdds_NonPositiveLeg(t *testing.T) {
	legs := []decimal.Decimal{
		decimal.RequireFromString("1.50"),
		decimal.Zero,
	}

	_, err := CombineOdds(legs)

	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Contains(t, err.Error(), "leg 2")
}
