package valuation

import (
	"testing"

	"dcf-analyzer/internal/models"
)

func TestCheckDataQuality(t *testing.T) {
	goodSnapshot := models.CompanySnapshot{
		SharesOutstanding: 100,
		CurrentPrice:      25,
		TotalDebt:         500,
		Cash:              200,
	}
	goodHistory := quarters(100, -20, 4)

	tests := []struct {
		name         string
		snapshot     models.CompanySnapshot
		history      []models.HistoricalQuarter
		wantLevel    QualityLevel
		wantUsable   bool
		wantIssues   int
		wantWarnings int
	}{
		{
			name:       "clean data is excellent",
			snapshot:   goodSnapshot,
			history:    goodHistory,
			wantLevel:  QualityExcellent,
			wantUsable: true,
		},
		{
			name: "missing shares blocks the valuation",
			snapshot: models.CompanySnapshot{
				CurrentPrice: 25,
				TotalDebt:    500,
				Cash:         200,
			},
			history:    goodHistory,
			wantLevel:  QualityPoor,
			wantUsable: false,
			wantIssues: 1,
		},
		{
			name:       "short history blocks the valuation",
			snapshot:   goodSnapshot,
			history:    quarters(100, -20, 2),
			wantLevel:  QualityPoor,
			wantUsable: false,
			wantIssues: 1,
		},
		{
			name:         "zero capex only warns",
			snapshot:     goodSnapshot,
			history:      quarters(100, 0, 4),
			wantLevel:    QualityGood,
			wantUsable:   true,
			wantWarnings: 1,
		},
		{
			name: "all-zero operating cash flow blocks",
			snapshot: models.CompanySnapshot{
				SharesOutstanding: 100,
				CurrentPrice:      25,
				TotalDebt:         500,
				Cash:              200,
			},
			history:      quarters(0, 0, 4),
			wantLevel:    QualityPoor,
			wantUsable:   false,
			wantIssues:   1,
			wantWarnings: 1,
		},
		{
			name: "several warnings degrade to fair",
			snapshot: models.CompanySnapshot{
				SharesOutstanding: 100,
				CurrentPrice:      25,
				TotalDebt:         -5,
				Cash:              -10,
			},
			history:      quarters(100, 0, 4),
			wantLevel:    QualityFair,
			wantUsable:   true,
			wantWarnings: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := CheckDataQuality(tt.snapshot, tt.history)

			if report.Level != tt.wantLevel {
				t.Errorf("level = %q, want %q (issues=%v warnings=%v)",
					report.Level, tt.wantLevel, report.Issues, report.Warnings)
			}
			if report.Usable != tt.wantUsable {
				t.Errorf("usable = %v, want %v", report.Usable, tt.wantUsable)
			}
			if len(report.Issues) != tt.wantIssues {
				t.Errorf("issues = %v, want %d of them", report.Issues, tt.wantIssues)
			}
			if len(report.Warnings) != tt.wantWarnings {
				t.Errorf("warnings = %v, want %d of them", report.Warnings, tt.wantWarnings)
			}
		})
	}
}
