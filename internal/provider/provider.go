// Package provider defines the data-provider boundary of the valuation
// engine. Providers deliver a finished CompanySnapshot plus chronologically
// ordered quarterly history; source fallback, retries, and rate limiting are
// their concern, never the engine's.
package provider

import (
	"context"

	"dcf-analyzer/internal/models"
)

// Provider supplies company fundamentals and quarterly cash-flow history.
// The returned history is ordered oldest first.
type Provider interface {
	Fetch(ctx context.Context, ticker string) (models.CompanySnapshot, []models.HistoricalQuarter, error)
}
