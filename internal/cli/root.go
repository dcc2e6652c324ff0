package cli

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"dcf-analyzer/internal/config"
	"dcf-analyzer/internal/logging"
	"dcf-analyzer/internal/provider"
	"dcf-analyzer/internal/store"
)

// Version information
const (
	Version   = "0.1.0"
	BuildDate = "2026-08-24"
)

// App holds the application dependencies.
type App struct {
	Config   *config.Config
	Logger   zerolog.Logger
	Provider provider.Provider
	Store    store.RunStore
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}
	SetColorEnabled(cfg.UI.ColorEnabled)

	// File provider wrapped in the TTL cache. Caching lives here at the
	// data boundary, never inside the valuation engine.
	fileProvider := provider.NewFileProvider(cfg.Data.Dir)
	app.Provider = provider.NewCachingProvider(
		fileProvider,
		time.Duration(cfg.Data.CacheTTLMinutes)*time.Minute,
		logger,
	)
	logger.Debug().Str("dir", cfg.Data.Dir).Msg("File provider initialized")

	runStore, err := store.NewSQLiteStore(cfg.Store.Path)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to initialize store, run history will be unavailable")
	} else {
		app.Store = runStore
		logger.Debug().Str("path", cfg.Store.Path).Msg("SQLite store initialized")
	}

	rootCmd := &cobra.Command{
		Use:   "dcf-analyzer",
		Short: "DCF Analyzer - intrinsic value estimation CLI",
		Long: `DCF Analyzer computes a discounted-cash-flow intrinsic value for a
publicly traded company from its fundamentals and quarterly cash-flow history.

It derives trailing-twelve-month free cash flow, blends a CAPM-based cost of
capital, projects and discounts future cash flows, and reconciles enterprise
value down to a per-share intrinsic value with a buy/hold/sell signal.

Use 'dcf-analyzer help <command>' for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/dcf-analyzer)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
	rootCmd.AddCommand(newValueCmd(app))
	rootCmd.AddCommand(newRunsCmd(app))
	rootCmd.AddCommand(newAssumptionsCmd(app))

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{
					"version":    Version,
					"build_date": BuildDate,
				})
			} else {
				output.Printf("DCF Analyzer v%s\n", Version)
				output.Dim("Build date: %s", BuildDate)
			}
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and manage application configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			return showConfig(output, app.Config)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"path": config.DefaultConfigDir()})
			} else {
				output.Println(config.DefaultConfigDir())
			}
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration files",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Config.Validate(); err != nil {
				return err
			}
			if output.IsJSON() {
				output.JSON(map[string]bool{"valid": true})
			} else {
				output.Success("Configuration is valid")
			}
			return nil
		},
	})

	return cmd
}

func showConfig(output *Output, cfg *config.Config) error {
	output.Bold("Valuation Assumptions")
	output.Printf("  Tax Rate:          %.2f%%\n", cfg.Valuation.TaxRate*100)
	output.Printf("  Risk-Free Rate:    %.2f%%\n", cfg.Valuation.RiskFreeRate*100)
	output.Printf("  Market Premium:    %.2f%%\n", cfg.Valuation.MarketRiskPremium*100)
	output.Printf("  Default Beta:      %.2f\n", cfg.Valuation.DefaultBeta)
	output.Printf("  Cost of Debt:      %.2f%%\n", cfg.Valuation.CostOfDebt*100)
	output.Printf("  Perpetual Growth:  %.2f%%\n", cfg.Valuation.PerpetualGrowthRate*100)
	output.Printf("  Forecast Years:    %d\n", cfg.Valuation.ForecastYears)
	output.Println()

	output.Bold("Data")
	output.Printf("  Directory:         %s\n", cfg.Data.Dir)
	output.Printf("  Cache TTL:         %d min\n", cfg.Data.CacheTTLMinutes)
	output.Println()

	output.Bold("Store")
	output.Printf("  Database:          %s\n", cfg.Store.Path)

	return nil
}
