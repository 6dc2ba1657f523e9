package risk

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	apperrors "riskreport/internal/errors"
)

const (
	// VolatilityWindowDays is the length of the trailing window, in calendar
	// days including the evaluation date, used for the 3M volatility.
	VolatilityWindowDays = 90
	// DaysPerYear annualizes daily volatility. Returns are taken on every
	// calendar day, so the factor is 365 rather than a trading-day count.
	DaysPerYear = 365
)

// OneDayReturn is current/previous - 1.
func OneDayReturn(previous, current float64) (float64, error) {
	if previous == 0 {
		return 0, apperrors.ErrZeroMarketValue
	}
	return current/previous - 1, nil
}

// LogReturns maps every simple return r to ln(1+r).
func LogReturns(returns []float64) ([]float64, error) {
	out := make([]float64, len(returns))
	for i, r := range returns {
		if 1+r <= 0 {
			return nil, apperrors.WithMessage(apperrors.ErrDataIntegrity,
				fmt.Sprintf("return %v at position %d has no logarithm", r, i))
		}
		out[i] = math.Log(1 + r)
	}
	return out, nil
}

// AnnualizedVolatility is the sample standard deviation (N-1 denominator) of
// logReturns multiplied by sqrt(DaysPerYear).
func AnnualizedVolatility(logReturns []float64) (float64, error) {
	if len(logReturns) < 2 {
		return 0, apperrors.WithMessage(apperrors.ErrInsufficientObservations,
			fmt.Sprintf("volatility needs at least 2 returns, got %d", len(logReturns)))
	}
	return stat.StdDev(logReturns, nil) * math.Sqrt(DaysPerYear), nil
}

// Compound folds daily returns into cumulative returns:
// c[0] = r[0], c[i] = (1+c[i-1])(1+r[i]) - 1.
func Compound(returns []float64) []float64 {
	out := make([]float64, len(returns))
	cum := 0.0
	for i, r := range returns {
		cum = (1+cum)*(1+r) - 1
		out[i] = cum
	}
	return out
}
