package valuation

import (
	"dcf-analyzer/internal/errors"
	"dcf-analyzer/internal/models"
)

// Recommendation thresholds in upside percent. Boundaries belong to the
// higher tier.
const (
	strongBuyThreshold = 20.0
	buyThreshold       = 10.0
	holdThreshold      = -10.0
)

// ClassifyRecommendation maps upside percentage to a recommendation tier.
// Total over the real line: every upside maps to exactly one tier.
func ClassifyRecommendation(upsidePct float64) models.Recommendation {
	switch {
	case upsidePct >= strongBuyThreshold:
		return models.StrongBuy
	case upsidePct >= buyThreshold:
		return models.Buy
	case upsidePct >= holdThreshold:
		return models.Hold
	default:
		return models.Sell
	}
}

// Run executes the full valuation pipeline in fixed stage order, threading
// each stage's output into the next. It fails fast on the first precondition
// violation, wrapping the error with the failing stage, and returns no
// partial report. IRR non-convergence is the one graceful degradation: the
// report is returned with the IRR field nil.
func Run(snapshot models.CompanySnapshot, history []models.HistoricalQuarter, assumptions models.AssumptionSet) (*models.ValuationReport, error) {
	if err := validateAssumptions(assumptions); err != nil {
		return nil, errors.NewStageError("assumptions", err)
	}

	if len(history) == 0 {
		return nil, errors.NewStageError("ttm_fcf",
			errors.NewInsufficientDataError("history", "no quarterly cash-flow history"))
	}
	ttmFCF, quarterlyFCF := ComputeTTMFreeCashFlow(history)

	wacc, err := ComputeWACC(snapshot, assumptions)
	if err != nil {
		return nil, errors.NewStageError("wacc", err)
	}

	projected := ProjectFreeCashFlows(ttmFCF, assumptions.GrowthRates)

	presentValues, pvSum, err := DiscountSeries(projected, wacc.WACC)
	if err != nil {
		return nil, errors.NewStageError("discounting", err)
	}

	finalYearFCF := projected[len(projected)-1]
	tv, pvTV, err := ComputeTerminalValue(finalYearFCF, assumptions.PerpetualGrowthRate, wacc.WACC, len(projected))
	if err != nil {
		return nil, errors.NewStageError("terminal_value", err)
	}

	enterpriseValue := pvSum + pvTV
	equityValue := ReconcileEquityValue(enterpriseValue, snapshot.TotalDebt, snapshot.Cash)

	intrinsicValue, err := PerShareIntrinsicValue(equityValue, snapshot.SharesOutstanding)
	if err != nil {
		return nil, errors.NewStageError("per_share", err)
	}

	var upsidePct float64
	if snapshot.CurrentPrice > 0 {
		upsidePct = (intrinsicValue - snapshot.CurrentPrice) / snapshot.CurrentPrice * 100
	}

	report := &models.ValuationReport{
		Snapshot:        snapshot,
		Assumptions:     assumptions,
		QuarterlyFCF:    quarterlyFCF,
		TTMFCF:          ttmFCF,
		ProjectedFCF:    projected,
		PresentValues:   presentValues,
		TerminalValue:   tv,
		PVTerminalValue: pvTV,
		EnterpriseValue: enterpriseValue,
		EquityValue:     equityValue,
		IntrinsicValue:  intrinsicValue,
		CurrentPrice:    snapshot.CurrentPrice,
		UpsidePercent:   upsidePct,
		WACC:            wacc,
		Recommend:       ClassifyRecommendation(upsidePct),
	}

	// Supplementary metrics against the market's enterprise value.
	marketEV := snapshot.MarketCap() + snapshot.NetDebt()
	if ttmFCF > 0 {
		report.EVToFCF = marketEV / ttmFCF
	}

	inflows := append([]float64(nil), projected...)
	inflows[len(inflows)-1] += tv
	if irr, err := ComputeIRR(marketEV, inflows); err == nil {
		report.IRR = &irr
	}

	return report, nil
}

func validateAssumptions(a models.AssumptionSet) error {
	if a.ForecastYears <= 0 {
		return errors.NewValidationError("forecast_years", a.ForecastYears, "must be positive")
	}
	if len(a.GrowthRates) != a.ForecastYears {
		return errors.NewValidationError("growth_rates", len(a.GrowthRates),
			"length must equal forecast_years; the engine does not pad or truncate")
	}
	return nil
}
