package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"dcf-analyzer/internal/models"
)

func sampleReport() *models.ValuationReport {
	irr := 0.14
	return &models.ValuationReport{
		Snapshot: models.CompanySnapshot{
			CompanyName:       "Test Corp",
			Ticker:            "TEST",
			CurrentPrice:      50,
			SharesOutstanding: 10,
			TotalDebt:         100,
			Cash:              20,
			Beta:              1.2,
		},
		Assumptions: models.AssumptionSet{
			TaxRate:             0.21,
			RiskFreeRate:        0.04,
			MarketRiskPremium:   0.08,
			CostOfDebt:          0.05,
			PerpetualGrowthRate: 0.025,
			GrowthRates:         []float64{0.08, 0.07, 0.06, 0.05, 0.04},
			ForecastYears:       5,
		},
		TTMFCF:          50,
		ProjectedFCF:    []float64{54, 57.78, 61.25, 64.31, 66.88},
		PresentValues:   []float64{48.2, 46.1, 43.6, 40.9, 37.9},
		TerminalValue:   722.2,
		PVTerminalValue: 409.5,
		EnterpriseValue: 626.2,
		EquityValue:     546.2,
		IntrinsicValue:  54.62,
		CurrentPrice:    50,
		UpsidePercent:   9.24,
		WACC: models.WACCResult{
			CostOfEquity:       0.136,
			AfterTaxCostOfDebt: 0.0395,
			EquityWeight:       5.0 / 6.0,
			DebtWeight:         1.0 / 6.0,
			WACC:               0.1199,
		},
		IRR:       &irr,
		EVToFCF:   11.6,
		Recommend: models.Hold,
	}
}

// findRow returns the row whose first cell equals label, or nil.
func findRow(rows [][]string, label string) []string {
	for _, row := range rows {
		if len(row) > 0 && row[0] == label {
			return row
		}
	}
	return nil
}

func TestWriteWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "TEST.xlsx")

	if err := WriteWorkbook(path, sampleReport(), "EXCELLENT"); err != nil {
		t.Fatalf("WriteWorkbook returned error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopening workbook: %v", err)
	}
	defer f.Close()

	for _, sheet := range []string{sheetInputs, sheetForecast, sheetSummary} {
		if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
			t.Fatalf("sheet %q missing", sheet)
		}
	}

	inputs, err := f.GetRows(sheetInputs)
	if err != nil {
		t.Fatal(err)
	}
	if row := findRow(inputs, "Ticker"); row == nil || len(row) < 2 || row[1] != "TEST" {
		t.Errorf("Inputs ticker row = %v", row)
	}
	if row := findRow(inputs, "Perpetual Growth Rate"); row == nil {
		t.Error("Inputs missing perpetual growth rate")
	}

	forecast, err := f.GetRows(sheetForecast)
	if err != nil {
		t.Fatal(err)
	}
	// Header plus five projection years, a spacer, and two terminal rows.
	if len(forecast) < 9 {
		t.Fatalf("Forecast has %d rows, want at least 9", len(forecast))
	}
	if row := findRow(forecast, "Terminal Value"); row == nil {
		t.Error("Forecast missing terminal value row")
	}

	summary, err := f.GetRows(sheetSummary)
	if err != nil {
		t.Fatal(err)
	}
	if row := findRow(summary, "Intrinsic Value per Share"); row == nil || len(row) < 2 {
		t.Error("Summary missing intrinsic value row")
	}
	if row := findRow(summary, "Recommendation"); row == nil || len(row) < 2 || row[1] != "HOLD" {
		t.Errorf("Summary recommendation row = %v", row)
	}
	if row := findRow(summary, "Data Quality"); row == nil || len(row) < 2 || row[1] != "EXCELLENT" {
		t.Errorf("Summary data quality row = %v", row)
	}
	if row := findRow(summary, "Implied IRR"); row == nil {
		t.Error("Summary missing IRR row despite converged IRR")
	}
}

func TestWriteWorkbookOmitsIRRWhenAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "noirr.xlsx")

	report := sampleReport()
	report.IRR = nil
	if err := WriteWorkbook(path, report, "GOOD"); err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	summary, err := f.GetRows(sheetSummary)
	if err != nil {
		t.Fatal(err)
	}
	if row := findRow(summary, "Implied IRR"); row != nil {
		t.Errorf("Summary carries IRR row %v for a non-converged search", row)
	}
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "TEST.csv")

	if err := Write(path, sampleReport(), "EXCELLENT"); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(raw)

	for _, want := range []string{
		"Ticker,TEST",
		"Year,Projected FCF,Discount Factor,PV of FCF",
		"Terminal Value,722.2",
		"Recommendation,HOLD",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("csv missing %q", want)
		}
	}
}

func TestWriteRejectsUnknownExtension(t *testing.T) {
	err := Write(filepath.Join(t.TempDir(), "report.pdf"), sampleReport(), "GOOD")
	if err == nil {
		t.Fatal("expected error for unsupported extension")
	}
	if !strings.Contains(err.Error(), ".pdf") {
		t.Errorf("error %q does not name the offending extension", err)
	}
}
