package valuation

import (
	"dcf-analyzer/internal/models"
)

// SensitivityCell is one intrinsic-value estimate in the WACC x terminal
// growth grid. Valid is false where the discount rate does not exceed the
// growth rate and the perpetuity is undefined.
type SensitivityCell struct {
	WACC           float64 `json:"wacc"`
	Growth         float64 `json:"growth"`
	IntrinsicValue float64 `json:"intrinsic_value"`
	Valid          bool    `json:"valid"`
}

// SensitivityMatrix holds the grid of per-share intrinsic values across
// discount-rate and terminal-growth ranges. Rows follow WACCRange, columns
// follow GrowthRange.
type SensitivityMatrix struct {
	WACCRange   []float64           `json:"wacc_range"`
	GrowthRange []float64           `json:"growth_range"`
	Cells       [][]SensitivityCell `json:"matrix"`
}

// SensitivityRanges builds symmetric ranges around a base rate: steps on
// either side, spaced by step.
func SensitivityRanges(base, step float64, steps int) []float64 {
	out := make([]float64, 0, 2*steps+1)
	for i := -steps; i <= steps; i++ {
		out = append(out, base+float64(i)*step)
	}
	return out
}

// ComputeSensitivity revalues the company across a WACC x terminal-growth
// grid, holding the TTM FCF and projection growth path fixed. Infeasible
// cells (wacc <= growth) are marked invalid rather than computed or skipped.
func ComputeSensitivity(snapshot models.CompanySnapshot, ttmFCF float64, assumptions models.AssumptionSet, waccRange, growthRange []float64) SensitivityMatrix {
	matrix := SensitivityMatrix{
		WACCRange:   waccRange,
		GrowthRange: growthRange,
		Cells:       make([][]SensitivityCell, len(waccRange)),
	}

	projected := ProjectFreeCashFlows(ttmFCF, assumptions.GrowthRates)

	for i, wacc := range waccRange {
		row := make([]SensitivityCell, len(growthRange))
		for j, growth := range growthRange {
			cell := SensitivityCell{WACC: wacc, Growth: growth}

			pvs, pvSum, err := DiscountSeries(projected, wacc)
			if err == nil && len(pvs) > 0 {
				if _, pvTV, tvErr := ComputeTerminalValue(projected[len(projected)-1], growth, wacc, len(projected)); tvErr == nil {
					equity := ReconcileEquityValue(pvSum+pvTV, snapshot.TotalDebt, snapshot.Cash)
					if perShare, psErr := PerShareIntrinsicValue(equity, snapshot.SharesOutstanding); psErr == nil {
						cell.IntrinsicValue = perShare
						cell.Valid = true
					}
				}
			}

			row[j] = cell
		}
		matrix.Cells[i] = row
	}

	return matrix
}
