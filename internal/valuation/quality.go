package valuation

import (
	"fmt"

	"dcf-analyzer/internal/models"
)

// QualityLevel grades the input data for a valuation run.
type QualityLevel string

// Quality tiers from unusable to clean.
const (
	QualityPoor      QualityLevel = "POOR"
	QualityFair      QualityLevel = "FAIR"
	QualityGood      QualityLevel = "GOOD"
	QualityExcellent QualityLevel = "EXCELLENT"
)

// QualityReport lists blocking issues and non-blocking warnings found in the
// fetched data. Usable is false when any issue would break the valuation.
type QualityReport struct {
	Level    QualityLevel `json:"quality"`
	Issues   []string     `json:"issues"`
	Warnings []string     `json:"warnings"`
	Usable   bool         `json:"usable"`
}

// CheckDataQuality inspects a snapshot and quarterly history before they are
// handed to the engine. Issues are conditions that make the DCF meaningless
// (no shares, no price, too little history); warnings flag data that is
// suspicious but computable.
func CheckDataQuality(snapshot models.CompanySnapshot, history []models.HistoricalQuarter) QualityReport {
	var issues, warnings []string

	if snapshot.SharesOutstanding <= 0 {
		issues = append(issues, "missing shares outstanding: cannot calculate per-share value")
	}
	if snapshot.CurrentPrice <= 0 {
		issues = append(issues, "missing current stock price: cannot determine market value")
	}
	if snapshot.TotalDebt == 0 && snapshot.Cash == 0 {
		warnings = append(warnings, "both debt and cash are zero: check if balance sheet data loaded")
	}
	if snapshot.Cash < 0 {
		warnings = append(warnings, "negative cash balance: data may be incorrect")
	}
	if snapshot.TotalDebt < 0 {
		warnings = append(warnings, "negative debt: data may be incorrect")
	}

	if len(history) < ttmQuarters {
		issues = append(issues, fmt.Sprintf("only %d quarters of data (need at least %d for TTM)", len(history), ttmQuarters))
	}

	allZeroOCF := len(history) > 0
	allZeroCapEx := len(history) > 0
	for _, q := range history {
		if q.OperatingCashFlow != 0 {
			allZeroOCF = false
		}
		if q.CapEx != 0 {
			allZeroCapEx = false
		}
	}
	if allZeroOCF {
		issues = append(issues, "all operating cash flow values are zero")
	}
	if allZeroCapEx {
		warnings = append(warnings, "all capex values are zero: unusual for most companies")
	}

	report := QualityReport{
		Issues:   issues,
		Warnings: warnings,
		Usable:   len(issues) == 0,
	}

	switch {
	case len(issues) > 0:
		report.Level = QualityPoor
	case len(warnings) > 2:
		report.Level = QualityFair
	case len(warnings) > 0:
		report.Level = QualityGood
	default:
		report.Level = QualityExcellent
	}

	return report
}
