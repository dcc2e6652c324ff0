package valuation

import (
	"math"

	"dcf-analyzer/internal/errors"
)

// ComputeTerminalValue applies the Gordon growth perpetuity to the final
// projected year:
//
//	TV = FCF_N * (1 + g) / (wacc - g)
//
// and discounts it back over the projection horizon. The discount rate must
// strictly exceed the perpetual growth rate; otherwise the perpetuity is
// undefined or negative and the computation fails with a DomainError instead
// of returning a nonsensical value.
func ComputeTerminalValue(finalYearFCF, perpetualGrowth, wacc float64, horizon int) (tv, pvTV float64, err error) {
	if wacc <= perpetualGrowth {
		return 0, 0, errors.NewDomainError("terminal_value", "terminal growth exceeds discount rate")
	}

	tv = finalYearFCF * (1 + perpetualGrowth) / (wacc - perpetualGrowth)
	pvTV = tv / math.Pow(1+wacc, float64(horizon))
	return tv, pvTV, nil
}

// ReconcileEquityValue walks enterprise value down to equity value:
// EV - total debt + cash. The result may be negative when debt dwarfs cash,
// which is surfaced as-is.
func ReconcileEquityValue(enterpriseValue, totalDebt, cash float64) float64 {
	return enterpriseValue - totalDebt + cash
}

// PerShareIntrinsicValue divides equity value by shares outstanding.
// Returns InsufficientDataError when shares outstanding is not positive.
func PerShareIntrinsicValue(equityValue, sharesOutstanding float64) (float64, error) {
	if sharesOutstanding <= 0 {
		return 0, errors.NewInsufficientDataError(
			"shares_outstanding", "shares outstanding must be positive for a per-share value")
	}
	return equityValue / sharesOutstanding, nil
}
