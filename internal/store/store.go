// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"
	"time"

	"dcf-analyzer/internal/models"
)

// RunStore defines the interface for persisting valuation runs.
type RunStore interface {
	SaveRun(ctx context.Context, run *models.ValuationRun) error
	GetRuns(ctx context.Context, filter RunFilter) ([]models.ValuationRun, error)
	GetRunByID(ctx context.Context, id int64) (*models.ValuationRun, error)
	Close() error
}

// RunFilter represents filters for querying valuation runs.
type RunFilter struct {
	Ticker string
	Since  time.Time
	Limit  int
}
