package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Valuation.TaxRate != 0.21 {
		t.Errorf("default tax_rate = %v, want 0.21", cfg.Valuation.TaxRate)
	}
	if cfg.Valuation.PerpetualGrowthRate != 0.025 {
		t.Errorf("default perpetual_growth_rate = %v, want 0.025", cfg.Valuation.PerpetualGrowthRate)
	}
	if cfg.Valuation.ForecastYears != 5 || len(cfg.Valuation.GrowthRates) != 5 {
		t.Errorf("default growth path = %d years / %d rates, want 5/5",
			cfg.Valuation.ForecastYears, len(cfg.Valuation.GrowthRates))
	}
	if cfg.Data.CacheTTLMinutes != 1440 {
		t.Errorf("default cache_ttl_minutes = %d, want 1440", cfg.Data.CacheTTLMinutes)
	}

	// A missing config file gets a template written for later editing.
	if _, err := os.Stat(filepath.Join(dir, "config.toml")); err != nil {
		t.Errorf("config template not written: %v", err)
	}
}

func TestLoadReadsTOML(t *testing.T) {
	dir := t.TempDir()
	content := `
[valuation]
tax_rate = 0.25
forecast_years = 3
growth_rates = [0.10, 0.08, 0.06]

[data]
cache_ttl_minutes = 60
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Valuation.TaxRate != 0.25 {
		t.Errorf("tax_rate = %v, want 0.25", cfg.Valuation.TaxRate)
	}
	if cfg.Valuation.ForecastYears != 3 || len(cfg.Valuation.GrowthRates) != 3 {
		t.Errorf("growth path = %d years / %d rates, want 3/3",
			cfg.Valuation.ForecastYears, len(cfg.Valuation.GrowthRates))
	}
	// Untouched keys keep their defaults.
	if cfg.Valuation.RiskFreeRate != 0.045 {
		t.Errorf("risk_free_rate = %v, want default 0.045", cfg.Valuation.RiskFreeRate)
	}
	if cfg.Data.CacheTTLMinutes != 60 {
		t.Errorf("cache_ttl_minutes = %d, want 60", cfg.Data.CacheTTLMinutes)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DCF_DATA_DIR", "/srv/dcf-data")
	t.Setenv("DCF_STORE_PATH", "/srv/dcf.db")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Data.Dir != "/srv/dcf-data" {
		t.Errorf("data dir = %q, want env override", cfg.Data.Dir)
	}
	if cfg.Store.Path != "/srv/dcf.db" {
		t.Errorf("store path = %q, want env override", cfg.Store.Path)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Valuation: ValuationConfig{
				TaxRate:             0.21,
				RiskFreeRate:        0.045,
				MarketRiskPremium:   0.08,
				CostOfDebt:          0.05,
				PerpetualGrowthRate: 0.025,
				GrowthRates:         []float64{0.06, 0.05, 0.04},
				ForecastYears:       3,
			},
		}
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"tax rate above 1", func(c *Config) { c.Valuation.TaxRate = 1.5 }},
		{"negative tax rate", func(c *Config) { c.Valuation.TaxRate = -0.1 }},
		{"negative market premium", func(c *Config) { c.Valuation.MarketRiskPremium = -0.01 }},
		{"zero forecast years", func(c *Config) { c.Valuation.ForecastYears = 0 }},
		{"growth rate count mismatch", func(c *Config) { c.Valuation.GrowthRates = []float64{0.06} }},
		{"negative cache ttl", func(c *Config) { c.Data.CacheTTLMinutes = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestAssumptionsCopiesGrowthRates(t *testing.T) {
	cfg := &Config{
		Valuation: ValuationConfig{
			GrowthRates:   []float64{0.06, 0.05},
			ForecastYears: 2,
		},
	}

	assumptions := cfg.Assumptions()
	assumptions.GrowthRates[0] = 0.99

	if cfg.Valuation.GrowthRates[0] != 0.06 {
		t.Error("mutating the assumption set leaked into the config")
	}
	if assumptions.Beta != 0 {
		t.Errorf("beta = %v, want 0 so the company beta applies", assumptions.Beta)
	}
}
