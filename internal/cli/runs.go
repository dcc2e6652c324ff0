package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"dcf-analyzer/internal/models"
	"dcf-analyzer/internal/store"
	"dcf-analyzer/internal/valuation"
	"dcf-analyzer/pkg/utils"
)

func newRunsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Valuation run history",
		Long:  "List and inspect previously computed valuations.",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List stored valuation runs",
		Example: `  dcf-analyzer runs list
  dcf-analyzer runs list --ticker AAPL --limit 10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return fmt.Errorf("run store unavailable")
			}

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			ticker, _ := cmd.Flags().GetString("ticker")
			limit, _ := cmd.Flags().GetInt("limit")
			days, _ := cmd.Flags().GetInt("days")

			filter := store.RunFilter{
				Ticker: strings.ToUpper(ticker),
				Limit:  limit,
			}
			if days > 0 {
				filter.Since = time.Now().AddDate(0, 0, -days)
			}

			runs, err := app.Store.GetRuns(ctx, filter)
			if err != nil {
				return fmt.Errorf("querying runs: %w", err)
			}

			if output.IsJSON() {
				return output.JSON(runs)
			}

			if len(runs) == 0 {
				output.Dim("No valuation runs found.")
				return nil
			}

			table := NewTable(output, "ID", "Date", "Ticker", "Intrinsic", "Price", "Upside", "Signal", "Quality")
			for _, run := range runs {
				table.AddRow(
					strconv.FormatInt(run.ID, 10),
					run.CreatedAt.Format("02-Jan-2006 15:04"),
					run.Ticker,
					utils.FormatUSD(run.IntrinsicValue),
					utils.FormatUSD(run.CurrentPrice),
					output.FormatUpside(run.UpsidePercent),
					output.Recommendation(models.Recommendation(run.Recommendation)),
					run.DataQuality,
				)
			}
			table.Render()
			return nil
		},
	}
	listCmd.Flags().String("ticker", "", "filter by ticker")
	listCmd.Flags().Int("limit", 20, "maximum rows")
	listCmd.Flags().Int("days", 0, "only runs from the last N days")
	cmd.AddCommand(listCmd)

	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a stored valuation run in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return fmt.Errorf("run store unavailable")
			}

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid run id %q: %w", args[0], err)
			}

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			run, err := app.Store.GetRunByID(ctx, id)
			if err != nil {
				return fmt.Errorf("loading run %d: %w", id, err)
			}

			if output.IsJSON() {
				return output.JSON(run)
			}

			var report models.ValuationReport
			if err := json.Unmarshal([]byte(run.ResultsJSON), &report); err != nil {
				return fmt.Errorf("stored report is unreadable: %w", err)
			}

			output.Dim("Run %d, %s", run.ID, run.CreatedAt.Format("02-Jan-2006 15:04"))
			quality := valuation.QualityReport{
				Level:  valuation.QualityLevel(run.DataQuality),
				Usable: true,
			}
			renderReport(output, &report, quality)
			return nil
		},
	}
	cmd.AddCommand(showCmd)

	return cmd
}
