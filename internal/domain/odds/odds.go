// Package odds converts betting quotas to implied probabilities.
package odds

import (
	"errors"
	"fmt"
	"math"
)

// probabilityDecimals is the precision used when deriving a probability
// from a decimal quota, matching what players see in the form preview.
const probabilityDecimals = 6

// Sentinel kinds for odds errors.
var (
	ErrInvalidOdds        = errors.New("invalid decimal odds")
	ErrInvalidProbability = errors.New("invalid probability")
)

// ImpliedProbability derives the implied probability from decimal odds,
// e.g. a quota of 2.10 implies 0.47619. Odds below 1 would imply a
// probability above certainty and are rejected.
func ImpliedProbability(decimalOdds float64) (float64, error) {
	if math.IsNaN(decimalOdds) || math.IsInf(decimalOdds, 0) || decimalOdds < 1 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidOdds, decimalOdds)
	}
	p := 1 / decimalOdds
	shift := math.Pow10(probabilityDecimals)
	return math.Round(p*shift) / shift, nil
}

// ValidateProbability checks that p is a real number in [0, 1].
func ValidateProbability(p float64) error {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return fmt.Errorf("%w: %v must be between 0 and 1", ErrInvalidProbability, p)
	}
	return nil
}
