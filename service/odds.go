package service

import (
	"github.com/shopspring/decimal"
)

// oddsPlaces is the precision odds and money values are stored at
const oddsPlaces = 2

// CombineOdds multiplies the leg odds of a pick into its total odds, rounded
// to money precision. A single-leg pick's total odds equals that leg's odds.
func CombineOdds(legOdds []decimal.Decimal) (decimal.Decimal, error) {
	if len(legOdds) == 0 {
		return decimal.Zero, NewValidationError("at least one leg is required")
	}

	total := decimal.NewFromInt(1)
	for i, odds := range legOdds {
		if odds.LessThanOrEqual(decimal.Zero) {
			return decimal.Zero, NewValidationError("leg %d has non-positive odds %s", i+1, odds)
		}
		total = total.Mul(odds)
	}

	return total.Round(oddsPlaces), nil
}
