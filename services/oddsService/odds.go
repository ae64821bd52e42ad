package oddsService

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidOdds is returned for American odds with magnitude below
	// 100 (including zero). Odds are never quoted in that band.
	ErrInvalidOdds = errors.New("invalid american odds: magnitude must be at least 100")

	// ErrInvalidPrice is returned for decimal prices at or below 1.0,
	// which no combination of valid legs can produce.
	ErrInvalidPrice = errors.New("invalid decimal price: must be greater than 1.0")

	// ErrEmptyLegSet is returned when combining zero leg prices.
	ErrEmptyLegSet = errors.New("cannot combine an empty set of legs")
)

// ToDecimal converts American odds to a decimal multiplier.
// +150 -> 2.5, -150 -> 1.6667.
func ToDecimal(american int) (float64, error) {
	if american > -100 && american < 100 {
		return 0, ErrInvalidOdds
	}
	if american > 0 {
		return 1.0 + float64(american)/100.0, nil
	}
	return 1.0 + 100.0/float64(-american), nil
}

// ToAmerican converts a decimal multiplier back to American odds,
// rounding to the nearest integer.
func ToAmerican(price float64) (int, error) {
	if price <= 1.0 {
		return 0, ErrInvalidPrice
	}
	if price >= 2.0 {
		return int(math.Round((price - 1.0) * 100.0)), nil
	}
	return int(math.Round(-100.0 / (price - 1.0))), nil
}

// CombineLegs multiplies per-leg decimal prices into a parlay price.
func CombineLegs(prices []float64) (float64, error) {
	if len(prices) == 0 {
		return 0, ErrEmptyLegSet
	}
	combined := 1.0
	for _, p := range prices {
		combined *= p
	}
	return combined, nil
}

// CombineAmerican converts each leg's American odds and combines them.
// Conversion always happens before combination so rounding error does
// not compound.
func CombineAmerican(odds []int) (float64, error) {
	if len(odds) == 0 {
		return 0, ErrEmptyLegSet
	}
	prices := make([]float64, 0, len(odds))
	for _, o := range odds {
		p, err := ToDecimal(o)
		if err != nil {
			return 0, err
		}
		prices = append(prices, p)
	}
	return CombineLegs(prices)
}

// FormatAmerican renders odds with an explicit sign, e.g. "+150", "-110".
func FormatAmerican(american int) string {
	if american > 0 {
		return fmt.Sprintf("+%d", american)
	}
	return fmt.Sprintf("%d", american)
}
