package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# DCF Analyzer Configuration

[valuation]
# Effective corporate tax rate (decimal fraction)
tax_rate = 0.21
# Risk-free rate, typically the 10-year treasury yield
risk_free_rate = 0.045
# Equity market risk premium
market_risk_premium = 0.08
# Beta used when the company data file carries none
default_beta = 1.15
# Pre-tax cost of debt
cost_of_debt = 0.05
# Perpetual growth rate for terminal value (must stay below WACC)
perpetual_growth_rate = 0.025
# Annual FCF growth rates, one per projection year
growth_rates = [0.06, 0.055, 0.05, 0.045, 0.04]
# Projection horizon in years; must match the growth_rates length
forecast_years = 5

[data]
# Directory holding <TICKER>.json company data files
# (default: <config dir>/data; also settable via DCF_DATA_DIR)
# dir = "/path/to/data"
# Provider cache expiry in minutes (default: 24 hours)
cache_ttl_minutes = 1440

[store]
# SQLite database file for the valuation run log
# (default: <config dir>/valuations.db; also settable via DCF_STORE_PATH)
# path = "/path/to/valuations.db"

[ui]
# Enable colored output
color_enabled = true
`

// writeTemplateConfig writes a commented config.toml template so the user
// has something to edit. Existing files are never overwritten.
func writeTemplateConfig(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	return os.WriteFile(path, []byte(configTemplate), 0644)
}
