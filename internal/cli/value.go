package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"dcf-analyzer/internal/export"
	"dcf-analyzer/internal/logging"
	"dcf-analyzer/internal/models"
	"dcf-analyzer/internal/valuation"
	"dcf-analyzer/pkg/utils"
)

func newValueCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "value <ticker>",
		Short: "Compute DCF intrinsic value for a ticker",
		Long: `Run the full DCF valuation pipeline for a company:
- Trailing-twelve-month free cash flow from quarterly history
- WACC from CAPM cost of equity and after-tax cost of debt
- Multi-year FCF projection and present-value discounting
- Gordon-growth terminal value
- Enterprise value, equity value, per-share intrinsic value
- Upside vs. market price and recommendation tier`,
		Example: `  dcf-analyzer value AAPL
  dcf-analyzer value MSFT --beta 1.1 --growth 0.08,0.07,0.06,0.05,0.04
  dcf-analyzer value NVDA --sensitivity
  dcf-analyzer value AAPL --export ~/Downloads/AAPL.xlsx`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			ticker := strings.ToUpper(args[0])
			logger := logging.WithTicker(app.Logger, ticker)

			snapshot, history, err := app.Provider.Fetch(ctx, ticker)
			logging.LogFetch(logger, ticker, "file", len(history), err)
			if err != nil {
				return err
			}

			quality := valuation.CheckDataQuality(snapshot, history)
			for _, w := range quality.Warnings {
				output.Warning("warning: %s", w)
			}
			if !quality.Usable {
				for _, issue := range quality.Issues {
					output.Error("issue: %s", issue)
				}
				return fmt.Errorf("data quality %s: cannot value %s", quality.Level, ticker)
			}

			assumptions, err := assumptionsFromFlags(cmd, app, snapshot)
			if err != nil {
				return fmt.Errorf("invalid assumptions: %w", err)
			}

			report, err := valuation.Run(snapshot, history, assumptions)
			if err != nil {
				return err
			}

			logging.LogValuation(logger, ticker, report.IntrinsicValue,
				report.CurrentPrice, report.UpsidePercent, string(report.Recommend))

			var sensitivity *valuation.SensitivityMatrix
			if withSensitivity, _ := cmd.Flags().GetBool("sensitivity"); withSensitivity {
				matrix := valuation.ComputeSensitivity(snapshot, report.TTMFCF, assumptions,
					valuation.SensitivityRanges(report.WACC.WACC, 0.01, 2),
					valuation.SensitivityRanges(assumptions.PerpetualGrowthRate, 0.005, 2))
				sensitivity = &matrix
			}

			if noSave, _ := cmd.Flags().GetBool("no-save"); !noSave && app.Store != nil {
				if err := saveRun(ctx, app, report, quality); err != nil {
					output.Warning("Could not save valuation run: %v", err)
				}
			}

			exportPath, _ := cmd.Flags().GetString("export")
			if exportPath != "" {
				if err := export.Write(exportPath, report, string(quality.Level)); err != nil {
					return fmt.Errorf("exporting report: %w", err)
				}
				logger.Info().Str("path", exportPath).Msg("Report exported")
			}

			if output.IsJSON() {
				payload := map[string]interface{}{
					"report":       report,
					"data_quality": quality,
				}
				if sensitivity != nil {
					payload["sensitivity"] = sensitivity
				}
				return output.JSON(payload)
			}

			renderReport(output, report, quality)
			if sensitivity != nil {
				renderSensitivity(output, sensitivity)
			}
			if exportPath != "" {
				output.Success("Report exported: %s", exportPath)
			}
			return nil
		},
	}

	cmd.Flags().Float64("beta", 0, "override beta (0 uses the company's own)")
	cmd.Flags().Float64("tax-rate", -1, "override tax rate (decimal fraction)")
	cmd.Flags().Float64("perpetual-growth", -1, "override perpetual growth rate")
	cmd.Flags().String("growth", "", "comma-separated annual growth rates, one per projection year")
	cmd.Flags().Bool("sensitivity", false, "include a WACC x growth sensitivity matrix")
	cmd.Flags().Bool("no-save", false, "do not persist this run to the history log")
	cmd.Flags().String("export", "", "write the report to a .xlsx or .csv file")

	return cmd
}

// assumptionsFromFlags starts from the configured defaults and applies any
// flag overrides, falling back to the snapshot beta via the engine.
func assumptionsFromFlags(cmd *cobra.Command, app *App, snapshot models.CompanySnapshot) (models.AssumptionSet, error) {
	assumptions := app.Config.Assumptions()

	if beta, _ := cmd.Flags().GetFloat64("beta"); beta != 0 {
		assumptions.Beta = beta
	} else if snapshot.Beta == 0 {
		assumptions.Beta = app.Config.Valuation.DefaultBeta
	}

	if tax, _ := cmd.Flags().GetFloat64("tax-rate"); tax >= 0 {
		assumptions.TaxRate = tax
	}
	if g, _ := cmd.Flags().GetFloat64("perpetual-growth"); g >= 0 {
		assumptions.PerpetualGrowthRate = g
	}

	if raw, _ := cmd.Flags().GetString("growth"); raw != "" {
		rates, err := parseGrowthRates(raw)
		if err != nil {
			return assumptions, err
		}
		assumptions.GrowthRates = rates
		assumptions.ForecastYears = len(rates)
	}

	return assumptions, nil
}

func parseGrowthRates(raw string) ([]float64, error) {
	parts := strings.Split(raw, ",")
	rates := make([]float64, 0, len(parts))
	for _, p := range parts {
		rate, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid growth rate %q: %w", p, err)
		}
		rates = append(rates, rate)
	}
	return rates, nil
}

func saveRun(ctx context.Context, app *App, report *models.ValuationReport, quality valuation.QualityReport) error {
	assumptionsJSON, err := json.Marshal(report.Assumptions)
	if err != nil {
		return err
	}
	resultsJSON, err := json.Marshal(report)
	if err != nil {
		return err
	}

	return app.Store.SaveRun(ctx, &models.ValuationRun{
		Ticker:          report.Snapshot.Ticker,
		AssumptionsJSON: string(assumptionsJSON),
		ResultsJSON:     string(resultsJSON),
		IntrinsicValue:  report.IntrinsicValue,
		CurrentPrice:    report.CurrentPrice,
		UpsidePercent:   report.UpsidePercent,
		Recommendation:  string(report.Recommend),
		DataQuality:     string(quality.Level),
	})
}

func renderReport(output *Output, report *models.ValuationReport, quality valuation.QualityReport) {
	snap := report.Snapshot

	output.Println()
	output.Bold("%s (%s)", snap.CompanyName, snap.Ticker)
	output.Dim("Data quality: %s", quality.Level)
	output.Println()

	output.Bold("Cost of Capital")
	output.Printf("  Cost of Equity:       %s\n", utils.FormatRate(report.WACC.CostOfEquity))
	output.Printf("  After-Tax Cost Debt:  %s\n", utils.FormatRate(report.WACC.AfterTaxCostOfDebt))
	output.Printf("  Equity Weight:        %s\n", utils.FormatRate(report.WACC.EquityWeight))
	output.Printf("  Debt Weight:          %s\n", utils.FormatRate(report.WACC.DebtWeight))
	output.Printf("  WACC:                 %s\n", utils.FormatRate(report.WACC.WACC))
	output.Println()

	output.Bold("Cash Flows")
	output.Printf("  TTM Free Cash Flow:   %s\n", utils.FormatMillions(report.TTMFCF))

	table := NewTable(output, "Year", "Projected FCF", "Present Value")
	for i := range report.ProjectedFCF {
		table.AddRow(
			fmt.Sprintf("%d", i+1),
			utils.FormatMillions(report.ProjectedFCF[i]),
			utils.FormatMillions(report.PresentValues[i]),
		)
	}
	table.Render()
	output.Println()

	output.Bold("Valuation")
	output.Printf("  Terminal Value:       %s\n", utils.FormatMillions(report.TerminalValue))
	output.Printf("  PV of Terminal Value: %s\n", utils.FormatMillions(report.PVTerminalValue))
	output.Printf("  Enterprise Value:     %s\n", utils.FormatMillions(report.EnterpriseValue))
	output.Printf("  Equity Value:         %s\n", utils.FormatMillions(report.EquityValue))
	if report.EVToFCF > 0 {
		output.Printf("  EV / FCF:             %.1fx\n", report.EVToFCF)
	}
	if report.IRR != nil {
		output.Printf("  Implied IRR:          %s\n", utils.FormatRate(*report.IRR))
	} else {
		output.Dim("  Implied IRR:          n/a (did not converge)")
	}
	output.Println()

	output.Bold("Verdict")
	output.Printf("  Intrinsic Value:      %s per share\n", utils.FormatUSD(report.IntrinsicValue))
	output.Printf("  Market Price:         %s\n", utils.FormatUSD(report.CurrentPrice))
	output.Printf("  Upside:               %s\n", output.FormatUpside(report.UpsidePercent))
	output.Printf("  Recommendation:       %s\n", output.Recommendation(report.Recommend))
	output.Println()
}

func renderSensitivity(output *Output, matrix *valuation.SensitivityMatrix) {
	output.Bold("Sensitivity (intrinsic value per share)")

	headers := []string{"WACC \\ g"}
	for _, g := range matrix.GrowthRange {
		headers = append(headers, utils.FormatRate(g))
	}

	table := NewTable(output, headers...)
	for i, wacc := range matrix.WACCRange {
		row := []string{utils.FormatRate(wacc)}
		for _, cell := range matrix.Cells[i] {
			if cell.Valid {
				row = append(row, utils.FormatUSD(cell.IntrinsicValue))
			} else {
				row = append(row, "n/a")
			}
		}
		table.AddRow(row...)
	}
	table.Render()
	output.Println()
}
