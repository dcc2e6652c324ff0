// Package valuation implements the DCF valuation engine: a pure, stateless
// pipeline from company fundamentals and quarterly cash-flow history to a
// per-share intrinsic value and recommendation. No stage performs I/O or
// keeps state between calls.
package valuation

import (
	"dcf-analyzer/internal/models"
)

// ttmQuarters is the trailing window for twelve-month aggregation.
const ttmQuarters = 4

// ComputeTTMFreeCashFlow derives trailing-twelve-month free cash flow from
// quarterly history, summing operating cash flow and capital expenditure over
// the trailing four quarters (or all quarters when fewer are available).
// CapEx carries a non-positive sign, so the sum is additive. The returned
// slice holds the per-quarter FCF for the full history, oldest first.
// An empty history yields (0, nil).
func ComputeTTMFreeCashFlow(history []models.HistoricalQuarter) (float64, []float64) {
	if len(history) == 0 {
		return 0, nil
	}

	quarterly := make([]float64, len(history))
	for i, q := range history {
		quarterly[i] = q.OperatingCashFlow + q.CapEx
	}

	window := ttmQuarters
	if len(quarterly) < window {
		window = len(quarterly)
	}

	var ttm float64
	for _, fcf := range quarterly[len(quarterly)-window:] {
		ttm += fcf
	}

	return ttm, quarterly
}
