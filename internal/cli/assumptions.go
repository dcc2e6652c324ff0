package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"dcf-analyzer/pkg/utils"
)

func newAssumptionsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "assumptions",
		Short: "Show the default valuation assumptions",
		Long: `Show the assumption set applied when 'value' runs without overrides.
Edit config.toml or pass flags to 'value' to change them.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			assumptions := app.Config.Assumptions()

			if output.IsJSON() {
				return output.JSON(assumptions)
			}

			output.Bold("Default Assumptions")
			output.Printf("  Tax Rate:           %s\n", utils.FormatRate(assumptions.TaxRate))
			output.Printf("  Risk-Free Rate:     %s\n", utils.FormatRate(assumptions.RiskFreeRate))
			output.Printf("  Market Premium:     %s\n", utils.FormatRate(assumptions.MarketRiskPremium))
			output.Printf("  Default Beta:       %.2f (company beta wins when present)\n", app.Config.Valuation.DefaultBeta)
			output.Printf("  Cost of Debt:       %s\n", utils.FormatRate(assumptions.CostOfDebt))
			output.Printf("  Perpetual Growth:   %s\n", utils.FormatRate(assumptions.PerpetualGrowthRate))
			output.Printf("  Forecast Years:     %d\n", assumptions.ForecastYears)

			table := NewTable(output, "Year", "Growth")
			for i, g := range assumptions.GrowthRates {
				table.AddRow(fmt.Sprintf("Y%d", i+1), utils.FormatRate(g))
			}
			table.Render()
			return nil
		},
	}
}
