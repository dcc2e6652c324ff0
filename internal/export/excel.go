// Package export writes completed valuation reports to spreadsheet files.
// It sits outside the engine boundary: the engine produces the report, this
// package only serializes it.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"dcf-analyzer/internal/models"
)

const (
	sheetInputs   = "Inputs"
	sheetForecast = "Forecast"
	sheetSummary  = "Summary"
)

// WriteWorkbook writes the report as an xlsx workbook with three sheets:
// Inputs (the assumption set), Forecast (the projected and discounted cash
// flows) and Summary (cost of capital and the verdict).
func WriteWorkbook(path string, report *models.ValuationReport, quality string) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sheetInputs)
	if err := writeRows(f, sheetInputs, inputRows(report)); err != nil {
		return err
	}

	if _, err := f.NewSheet(sheetForecast); err != nil {
		return err
	}
	if err := writeRows(f, sheetForecast, forecastRows(report)); err != nil {
		return err
	}

	if _, err := f.NewSheet(sheetSummary); err != nil {
		return err
	}
	if err := writeRows(f, sheetSummary, summaryRows(report, quality)); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func inputRows(report *models.ValuationReport) [][]interface{} {
	a := report.Assumptions
	return [][]interface{}{
		{"Ticker", report.Snapshot.Ticker},
		{"Company Name", report.Snapshot.CompanyName},
		{"Generated At", time.Now().Format("2006-01-02 15:04")},
		{"Tax Rate", a.TaxRate},
		{"Risk-Free Rate", a.RiskFreeRate},
		{"Market Risk Premium", a.MarketRiskPremium},
		{"Beta", a.ResolveBeta(report.Snapshot)},
		{"Cost of Debt", a.CostOfDebt},
		{"Perpetual Growth Rate", a.PerpetualGrowthRate},
		{"FCF Growth Rates", joinRates(a.GrowthRates)},
		{"Forecast Years", a.ForecastYears},
		{"Shares Outstanding (M)", report.Snapshot.SharesOutstanding},
		{"Total Debt (M)", report.Snapshot.TotalDebt},
		{"Cash (M)", report.Snapshot.Cash},
	}
}

func forecastRows(report *models.ValuationReport) [][]interface{} {
	rows := [][]interface{}{
		{"Year", "Projected FCF", "Discount Factor", "PV of FCF"},
	}
	for i, fcf := range report.ProjectedFCF {
		var factor interface{}
		if i < len(report.PresentValues) && fcf != 0 {
			factor = report.PresentValues[i] / fcf
		}
		var pv interface{}
		if i < len(report.PresentValues) {
			pv = report.PresentValues[i]
		}
		rows = append(rows, []interface{}{i + 1, fcf, factor, pv})
	}
	rows = append(rows,
		[]interface{}{},
		[]interface{}{"Terminal Value", report.TerminalValue},
		[]interface{}{"PV Terminal Value", report.PVTerminalValue},
	)
	return rows
}

func summaryRows(report *models.ValuationReport, quality string) [][]interface{} {
	rows := [][]interface{}{
		{"WACC", report.WACC.WACC},
		{"Cost of Equity", report.WACC.CostOfEquity},
		{"After-Tax Cost of Debt", report.WACC.AfterTaxCostOfDebt},
		{"Equity Weight", report.WACC.EquityWeight},
		{"Debt Weight", report.WACC.DebtWeight},
		{"TTM Free Cash Flow", report.TTMFCF},
		{"Enterprise Value", report.EnterpriseValue},
		{"Equity Value", report.EquityValue},
		{"Intrinsic Value per Share", report.IntrinsicValue},
		{"Current Price", report.CurrentPrice},
		{"Upside %", report.UpsidePercent},
		{"Recommendation", string(report.Recommend)},
		{"Data Quality", quality},
	}
	if report.IRR != nil {
		rows = append(rows, []interface{}{"Implied IRR", *report.IRR})
	}
	if report.EVToFCF > 0 {
		rows = append(rows, []interface{}{"EV / FCF", report.EVToFCF})
	}
	return rows
}

func joinRates(rates []float64) string {
	parts := make([]string, len(rates))
	for i, r := range rates {
		parts[i] = fmt.Sprintf("%g", r)
	}
	return strings.Join(parts, ", ")
}
