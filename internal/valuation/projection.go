package valuation

import (
	"math"

	"dcf-analyzer/internal/errors"
)

// ProjectFreeCashFlows compounds ttmFCF forward, one year per growth rate:
// FCF_i = FCF_{i-1} * (1 + g_i). Growth rates may be negative or zero; the
// engine trusts the assumption set and applies no clamping.
func ProjectFreeCashFlows(ttmFCF float64, growthRates []float64) []float64 {
	projected := make([]float64, len(growthRates))
	prev := ttmFCF
	for i, g := range growthRates {
		prev *= 1 + g
		projected[i] = prev
	}
	return projected
}

// DiscountSeries discounts each value at its 1-indexed year:
// PV_i = v_i / (1 + wacc)^i. Returns the parallel PV series and its sum.
// A discount rate at or below -100% makes the factor undefined and is
// rejected as a DomainError.
func DiscountSeries(values []float64, wacc float64) ([]float64, float64, error) {
	if wacc <= -1 {
		return nil, 0, errors.NewDomainError("discounting", "discount rate must exceed -100%")
	}

	pvs := make([]float64, len(values))
	var sum float64
	for i, v := range values {
		pv := v / math.Pow(1+wacc, float64(i+1))
		pvs[i] = pv
		sum += pv
	}
	return pvs, sum, nil
}
