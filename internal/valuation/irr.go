package valuation

import (
	"math"

	"dcf-analyzer/internal/errors"
)

// Bisection bounds and budget for the IRR search.
const (
	irrSearchLow   = -0.99
	irrSearchHigh  = 10.0
	irrIterations  = 200
	irrNPVEpsilon  = 1e-9
	irrRateEpsilon = 1e-10
)

// ComputeIRR finds the discount rate at which the net present value of an
// initial outflow followed by the yearly inflows equals zero. The final
// inflow is expected to already include terminal value. Bisection over
// [-99%, +1000%] within a fixed iteration budget; when the rate cannot be
// bracketed or the budget is exhausted, returns NonConvergenceError and the
// caller omits the metric rather than failing the valuation.
func ComputeIRR(initialInvestment float64, inflows []float64) (float64, error) {
	if initialInvestment <= 0 || len(inflows) == 0 {
		return 0, errors.NewInsufficientDataError(
			"irr_inputs", "IRR requires a positive initial investment and at least one inflow")
	}

	npv := func(rate float64) float64 {
		total := -initialInvestment
		for i, cf := range inflows {
			total += cf / math.Pow(1+rate, float64(i+1))
		}
		return total
	}

	low, high := irrSearchLow, irrSearchHigh
	fLow, fHigh := npv(low), npv(high)
	if fLow*fHigh > 0 {
		return 0, errors.NewNonConvergenceError("IRR search", 0, low, high)
	}

	for i := 0; i < irrIterations; i++ {
		mid := (low + high) / 2
		fMid := npv(mid)

		if math.Abs(fMid) < irrNPVEpsilon || (high-low)/2 < irrRateEpsilon {
			return mid, nil
		}

		if fLow*fMid < 0 {
			high = mid
		} else {
			low = mid
			fLow = fMid
		}
	}

	return 0, errors.NewNonConvergenceError("IRR search", irrIterations, low, high)
}
