// Package models defines the value objects shared across the application.
package models

import "time"

// CompanySnapshot holds point-in-time fundamentals for a company.
// All monetary amounts are in millions of USD. Immutable once fetched;
// passed by value into the valuation engine.
type CompanySnapshot struct {
	CompanyName       string  `json:"company_name"`
	Ticker            string  `json:"ticker"`
	CurrentPrice      float64 `json:"current_price"`      // per share
	SharesOutstanding float64 `json:"shares_outstanding"` // millions
	TotalDebt         float64 `json:"total_debt"`
	Cash              float64 `json:"cash"`
	Beta              float64 `json:"beta"`
}

// MarketCap returns the market value of equity.
func (s CompanySnapshot) MarketCap() float64 {
	return s.SharesOutstanding * s.CurrentPrice
}

// NetDebt returns total debt less cash and equivalents.
func (s CompanySnapshot) NetDebt() float64 {
	return s.TotalDebt - s.Cash
}

// HistoricalQuarter holds one quarter of cash-flow history. Sequences are
// ordered chronologically, oldest first. CapEx is recorded as a non-positive
// outflow, so quarterly FCF = OperatingCashFlow + CapEx.
type HistoricalQuarter struct {
	Label             string  `json:"label"` // fiscal quarter end, e.g. "2025-06-30"
	OperatingCashFlow float64 `json:"operating_cash_flow"`
	CapEx             float64 `json:"capex"`
	NetIncome         float64 `json:"net_income"`
}

// AssumptionSet holds the tunable valuation parameters. Rates are decimal
// fractions (0.21 = 21%). GrowthRates carries one entry per projection year
// and must match ForecastYears; the engine fails on a mismatch rather than
// padding or truncating.
type AssumptionSet struct {
	TaxRate             float64   `json:"tax_rate"`
	RiskFreeRate        float64   `json:"risk_free_rate"`
	MarketRiskPremium   float64   `json:"market_risk_premium"`
	Beta                float64   `json:"beta"` // overrides snapshot beta when non-zero
	CostOfDebt          float64   `json:"cost_of_debt"`
	PerpetualGrowthRate float64   `json:"perpetual_growth_rate"`
	GrowthRates         []float64 `json:"growth_rates"`
	ForecastYears       int       `json:"forecast_years"`
}

// ResolveBeta returns the assumption beta when set, else the snapshot beta.
func (a AssumptionSet) ResolveBeta(snapshot CompanySnapshot) float64 {
	if a.Beta != 0 {
		return a.Beta
	}
	return snapshot.Beta
}

// WACCResult holds the derived cost-of-capital components. Computed once per
// valuation run; has no independent lifecycle.
type WACCResult struct {
	CostOfEquity       float64 `json:"cost_of_equity"`
	AfterTaxCostOfDebt float64 `json:"after_tax_cost_of_debt"`
	EquityWeight       float64 `json:"equity_weight"`
	DebtWeight         float64 `json:"debt_weight"`
	WACC               float64 `json:"wacc"`
}

// Recommendation is the buy/hold/sell tier derived from upside percentage.
type Recommendation string

// Recommendation tiers, highest conviction first.
const (
	StrongBuy Recommendation = "STRONG BUY"
	Buy       Recommendation = "BUY"
	Hold      Recommendation = "HOLD"
	Sell      Recommendation = "SELL"
)

// ValuationReport is the output aggregate of a valuation run. Created fresh
// per request and never mutated after construction. IRR is nil when the
// root-finding search did not converge; the rest of the report remains valid.
type ValuationReport struct {
	Snapshot    CompanySnapshot `json:"snapshot"`
	Assumptions AssumptionSet   `json:"assumptions"`

	QuarterlyFCF []float64 `json:"quarterly_fcf"`
	TTMFCF       float64   `json:"ttm_fcf"`

	ProjectedFCF  []float64 `json:"projected_fcf"`
	PresentValues []float64 `json:"present_values"`

	TerminalValue   float64 `json:"terminal_value"`
	PVTerminalValue float64 `json:"pv_terminal_value"`

	EnterpriseValue float64 `json:"enterprise_value"`
	EquityValue     float64 `json:"equity_value"`
	IntrinsicValue  float64 `json:"intrinsic_value_per_share"`

	CurrentPrice  float64        `json:"current_market_value"`
	UpsidePercent float64        `json:"upside_pct"`
	WACC          WACCResult     `json:"wacc_result"`
	IRR           *float64       `json:"irr,omitempty"`
	EVToFCF       float64        `json:"ev_fcf_multiple"`
	Recommend     Recommendation `json:"recommendation"`
}

// ValuationRun is a persisted record of a completed valuation.
type ValuationRun struct {
	ID              int64     `json:"id"`
	CreatedAt       time.Time `json:"created_at"`
	Ticker          string    `json:"ticker"`
	AssumptionsJSON string    `json:"assumptions_json"`
	ResultsJSON     string    `json:"results_json"`
	IntrinsicValue  float64   `json:"intrinsic_value_per_share"`
	CurrentPrice    float64   `json:"current_price"`
	UpsidePercent   float64   `json:"upside_pct"`
	Recommendation  string    `json:"recommendation"`
	DataQuality     string    `json:"data_quality"`
}
