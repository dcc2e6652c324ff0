package valuation

import (
	"dcf-analyzer/internal/errors"
	"dcf-analyzer/internal/models"
)

// ComputeWACC blends the CAPM cost of equity and the after-tax cost of debt
// by market-value capital weights.
//
//	Re   = rf + beta * MRP
//	Rd'  = Rd * (1 - tax)
//	V    = total debt + market cap
//	WACC = (E/V) * Re + (D/V) * Rd'
//
// Returns InsufficientDataError when total capital is zero, since the weights
// are undefined.
func ComputeWACC(snapshot models.CompanySnapshot, assumptions models.AssumptionSet) (models.WACCResult, error) {
	beta := assumptions.ResolveBeta(snapshot)
	costOfEquity := assumptions.RiskFreeRate + beta*assumptions.MarketRiskPremium
	afterTaxCostOfDebt := assumptions.CostOfDebt * (1 - assumptions.TaxRate)

	marketCap := snapshot.MarketCap()
	totalCapital := snapshot.TotalDebt + marketCap
	if totalCapital == 0 {
		return models.WACCResult{}, errors.NewInsufficientDataError(
			"total_capital", "total debt and market cap are both zero; capital weights are undefined")
	}

	equityWeight := marketCap / totalCapital
	debtWeight := snapshot.TotalDebt / totalCapital

	return models.WACCResult{
		CostOfEquity:       costOfEquity,
		AfterTaxCostOfDebt: afterTaxCostOfDebt,
		EquityWeight:       equityWeight,
		DebtWeight:         debtWeight,
		WACC:               equityWeight*costOfEquity + debtWeight*afterTaxCostOfDebt,
	}, nil
}
