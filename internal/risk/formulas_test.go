package risk

import (
	"math"
	"testing"

	"riskreport/internal/testutil"
)

func TestOneDayReturn(t *testing.T) {
	t.Run("gain", func(t *testing.T) {
		r, err := OneDayReturn(100, 101)
		testutil.AssertNoError(t, err)
		testutil.AssertFloatEqual(t, 0.01, r, 1e-15)
	})

	t.Run("loss", func(t *testing.T) {
		r, err := OneDayReturn(19096, 18141.2)
		testutil.AssertNoError(t, err)
		testutil.AssertFloatEqual(t, -0.05, r, 1e-12)
	})

	t.Run("zero_previous", func(t *testing.T) {
		_, err := OneDayReturn(0, 100)
		testutil.AssertAppError(t, err, "ZERO_MARKET_VALUE")
	})
}

func TestLogReturns(t *testing.T) {
	t.Run("values", func(t *testing.T) {
		got, err := LogReturns([]float64{0, 0.01, -0.5})
		testutil.AssertNoError(t, err)
		testutil.AssertFloatEqual(t, 0, got[0], 0)
		testutil.AssertFloatEqual(t, math.Log(1.01), got[1], 1e-15)
		testutil.AssertFloatEqual(t, math.Log(0.5), got[2], 0)
	})

	t.Run("total_loss", func(t *testing.T) {
		_, err := LogReturns([]float64{0.01, -1})
		testutil.AssertAppError(t, err, "DATA_INTEGRITY")
	})
}

// sampleStdDev is a direct two-pass evaluation of the Bessel-corrected
// standard deviation.
func sampleStdDev(xs []float64) float64 {
	mean := 0.0
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))
	ss := 0.0
	for _, x := range xs {
		ss += (x - mean) * (x - mean)
	}
	return math.Sqrt(ss / float64(len(xs)-1))
}

func TestAnnualizedVolatility(t *testing.T) {
	t.Run("sample_standard_deviation", func(t *testing.T) {
		logs, err := LogReturns([]float64{0.01, -0.02, 0.005, 0.012, -0.003})
		testutil.AssertNoError(t, err)

		got, err := AnnualizedVolatility(logs)
		testutil.AssertNoError(t, err)
		testutil.AssertFloatEqual(t, sampleStdDev(logs)*math.Sqrt(365), got, 1e-14)
	})

	t.Run("two_observations", func(t *testing.T) {
		got, err := AnnualizedVolatility([]float64{0.01, -0.01})
		testutil.AssertNoError(t, err)
		// mean 0, sum of squares 2e-4, N-1 = 1
		testutil.AssertFloatEqual(t, math.Sqrt(2e-4)*math.Sqrt(365), got, 1e-14)
	})

	t.Run("constant_returns", func(t *testing.T) {
		got, err := AnnualizedVolatility([]float64{0.002, 0.002, 0.002})
		testutil.AssertNoError(t, err)
		testutil.AssertFloatEqual(t, 0, got, 1e-15)
	})

	t.Run("one_observation", func(t *testing.T) {
		_, err := AnnualizedVolatility([]float64{0.01})
		testutil.AssertAppError(t, err, "INSUFFICIENT_OBSERVATIONS")
	})

	t.Run("no_observations", func(t *testing.T) {
		_, err := AnnualizedVolatility(nil)
		testutil.AssertAppError(t, err, "INSUFFICIENT_OBSERVATIONS")
	})
}

func TestCompound(t *testing.T) {
	t.Run("compounds_not_sums", func(t *testing.T) {
		got := Compound([]float64{0.01, -0.02, 0.005})
		if len(got) != 3 {
			t.Fatalf("expected 3 values, got %d", len(got))
		}
		testutil.AssertFloatEqual(t, 0.01, got[0], 1e-15)
		testutil.AssertFloatEqual(t, 1.01*0.98-1, got[1], 1e-15)
		testutil.AssertFloatEqual(t, -0.0102, got[1], 1e-12)
		testutil.AssertFloatEqual(t, (1-0.0102)*1.005-1, got[2], 1e-15)
		testutil.AssertFloatEqual(t, -0.005251, got[2], 1e-12)

		if math.Abs(got[2]-(0.01-0.02+0.005)) < 1e-6 {
			t.Error("cumulative return should not equal the arithmetic sum")
		}
	})

	t.Run("empty", func(t *testing.T) {
		if got := Compound(nil); len(got) != 0 {
			t.Errorf("expected empty series, got %v", got)
		}
	})
}
