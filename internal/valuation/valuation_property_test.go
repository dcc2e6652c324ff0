package valuation

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	apperrors "dcf-analyzer/internal/errors"
	"dcf-analyzer/internal/models"
)

// Property: WACC is a convex combination of the cost of equity and the
// after-tax cost of debt, so it can never fall outside the interval
// spanned by those two rates, and the capital weights always sum to 1.
func TestProperty_WACCBetweenComponentCosts(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("WACC lies between component costs", prop.ForAll(
		func(rf, beta, mrp, cod, tax, debt, price, shares float64) bool {
			snapshot := models.CompanySnapshot{
				SharesOutstanding: shares,
				CurrentPrice:      price,
				TotalDebt:         debt,
				Beta:              beta,
			}
			assumptions := models.AssumptionSet{
				TaxRate:           tax,
				RiskFreeRate:      rf,
				MarketRiskPremium: mrp,
				CostOfDebt:        cod,
			}

			result, err := ComputeWACC(snapshot, assumptions)
			if err != nil {
				return false
			}

			lo := math.Min(result.CostOfEquity, result.AfterTaxCostOfDebt)
			hi := math.Max(result.CostOfEquity, result.AfterTaxCostOfDebt)
			const eps = 1e-9
			return result.WACC >= lo-eps &&
				result.WACC <= hi+eps &&
				math.Abs(result.EquityWeight+result.DebtWeight-1) < eps
		},
		gen.Float64Range(0.0, 0.10),
		gen.Float64Range(0.1, 3.0),
		gen.Float64Range(0.0, 0.20),
		gen.Float64Range(0.0, 0.20),
		gen.Float64Range(0.0, 0.50),
		gen.Float64Range(0.0, 100000.0),
		gen.Float64Range(0.5, 1000.0),
		gen.Float64Range(0.5, 10000.0),
	))

	properties.TestingRun(t)
}

// Property: each projected year compounds the previous one by exactly
// (1 + growth), so the final year equals the base FCF times the product
// of all the growth factors, and the output always has one entry per
// growth rate.
func TestProperty_ProjectionCompounds(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("projection compounds growth factors", prop.ForAll(
		func(base float64, rates []float64) bool {
			projected := ProjectFreeCashFlows(base, rates)
			if len(projected) != len(rates) {
				return false
			}

			expected := base
			for i, g := range rates {
				expected *= 1 + g
				if math.Abs(projected[i]-expected) > 1e-6*math.Max(1, math.Abs(expected)) {
					return false
				}
			}
			return true
		},
		gen.Float64Range(1.0, 100000.0),
		gen.SliceOfN(5, gen.Float64Range(-0.5, 0.5)),
	))

	properties.TestingRun(t)
}

// Property: for any positive discount rate, each present value is no
// larger than its undiscounted cash flow, and later years are discounted
// at least as hard as earlier ones.
func TestProperty_DiscountingShrinksPositiveFlows(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("present values bounded by cash flows", prop.ForAll(
		func(values []float64, wacc float64) bool {
			pvs, sum, err := DiscountSeries(values, wacc)
			if err != nil {
				return false
			}

			var total float64
			for i, pv := range pvs {
				if pv > values[i]+1e-9 {
					return false
				}
				total += pv
			}
			return math.Abs(total-sum) < 1e-6
		},
		gen.SliceOfN(5, gen.Float64Range(0.0, 100000.0)),
		gen.Float64Range(0.001, 0.5),
	))

	properties.TestingRun(t)
}

// Property: every possible upside maps to exactly one of the four
// recommendation tiers, and a larger upside never maps to a weaker tier.
func TestProperty_RecommendationTotalAndMonotonic(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	rank := map[models.Recommendation]int{
		models.Sell:      0,
		models.Hold:      1,
		models.Buy:       2,
		models.StrongBuy: 3,
	}

	properties.Property("every upside maps to a tier", prop.ForAll(
		func(upside float64) bool {
			_, ok := rank[ClassifyRecommendation(upside)]
			return ok
		},
		gen.Float64Range(-500.0, 500.0),
	))

	properties.Property("higher upside never weakens the tier", prop.ForAll(
		func(a, b float64) bool {
			lo, hi := math.Min(a, b), math.Max(a, b)
			return rank[ClassifyRecommendation(lo)] <= rank[ClassifyRecommendation(hi)]
		},
		gen.Float64Range(-500.0, 500.0),
		gen.Float64Range(-500.0, 500.0),
	))

	properties.TestingRun(t)
}

// Property: the Gordon growth model is undefined when the perpetual
// growth rate meets or exceeds the discount rate; the terminal value
// computation must always refuse those inputs instead of returning a
// number.
func TestProperty_TerminalValueGuard(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("growth at or above WACC always rejected", prop.ForAll(
		func(fcf, wacc, delta float64) bool {
			growth := wacc + delta
			_, _, err := ComputeTerminalValue(fcf, growth, wacc, 5)
			var domain *apperrors.DomainError
			return apperrors.As(err, &domain)
		},
		gen.Float64Range(1.0, 100000.0),
		gen.Float64Range(0.01, 0.30),
		gen.Float64Range(0.0, 0.10),
	))

	properties.Property("growth below WACC always yields a value", prop.ForAll(
		func(fcf, growth, spread float64) bool {
			wacc := growth + spread
			tv, pvTV, err := ComputeTerminalValue(fcf, growth, wacc, 5)
			return err == nil && tv > 0 && pvTV > 0 && pvTV <= tv+1e-9
		},
		gen.Float64Range(1.0, 100000.0),
		gen.Float64Range(0.0, 0.05),
		gen.Float64Range(0.01, 0.20),
	))

	properties.TestingRun(t)
}

// Property: equity value is an exact linear reconciliation of enterprise
// value, debt, and cash; adding the debt back and removing the cash
// recovers the enterprise value bit for bit.
func TestProperty_EquityReconciliationInvertible(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("reconciliation is invertible", prop.ForAll(
		func(ev, debt, cash float64) bool {
			equity := ReconcileEquityValue(ev, debt, cash)
			return equity+debt-cash == ev
		},
		gen.Float64Range(-100000.0, 100000.0),
		gen.Float64Range(0.0, 100000.0),
		gen.Float64Range(0.0, 100000.0),
	))

	properties.TestingRun(t)
}

// Property: when the IRR search converges, the returned rate actually
// zeroes the net present value of the cash flow series to within the
// solver tolerance.
func TestProperty_IRRZeroesNPV(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("converged IRR zeroes NPV", prop.ForAll(
		func(initial float64, inflows []float64) bool {
			irr, err := ComputeIRR(initial, inflows)
			if err != nil {
				// Non-convergence is a legitimate outcome for some series.
				var nonConv *apperrors.NonConvergenceError
				return apperrors.As(err, &nonConv)
			}

			npv := -initial
			for i, inflow := range inflows {
				npv += inflow / math.Pow(1+irr, float64(i+1))
			}
			return math.Abs(npv) < 1e-3*math.Max(1, initial)
		},
		gen.Float64Range(10.0, 10000.0),
		gen.SliceOfN(5, gen.Float64Range(0.0, 10000.0)),
	))

	properties.TestingRun(t)
}
