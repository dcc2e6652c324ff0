package provider

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	apperrors "dcf-analyzer/internal/errors"
	"dcf-analyzer/internal/models"
)

// companyFile is the on-disk shape of <TICKER>.json: a snapshot plus the
// quarterly history, oldest quarter first.
type companyFile struct {
	Snapshot models.CompanySnapshot     `json:"snapshot"`
	Quarters []models.HistoricalQuarter `json:"quarters"`
}

// FileProvider reads company data from a directory of <TICKER>.json files,
// with an optional <TICKER>_quarters.csv overriding the quarterly history.
type FileProvider struct {
	dir string
}

// NewFileProvider creates a provider over the given data directory.
func NewFileProvider(dir string) *FileProvider {
	return &FileProvider{dir: dir}
}

// Fetch loads the snapshot and history for ticker. Returns ErrDataNotFound
// (wrapped in a DataError) when no data file exists.
func (p *FileProvider) Fetch(ctx context.Context, ticker string) (models.CompanySnapshot, []models.HistoricalQuarter, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))

	path := filepath.Join(p.dir, ticker+".json")
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.CompanySnapshot{}, nil,
				apperrors.NewDataError("company_file", ticker, "no data file at "+path, apperrors.ErrDataNotFound)
		}
		return models.CompanySnapshot{}, nil,
			apperrors.NewDataError("company_file", ticker, "reading data file", err)
	}

	var file companyFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return models.CompanySnapshot{}, nil,
			apperrors.NewDataError("company_file", ticker, "parsing data file", err)
	}

	if file.Snapshot.Ticker == "" {
		file.Snapshot.Ticker = ticker
	}

	// CSV history, when present, replaces the JSON quarters.
	csvPath := filepath.Join(p.dir, ticker+"_quarters.csv")
	if _, err := os.Stat(csvPath); err == nil {
		quarters, err := LoadQuartersCSV(csvPath)
		if err != nil {
			return models.CompanySnapshot{}, nil,
				apperrors.NewDataError("quarters_csv", ticker, "parsing quarterly history", err)
		}
		file.Quarters = quarters
	}

	return file.Snapshot, file.Quarters, nil
}

// LoadQuartersCSV parses quarterly history from a CSV with the header
// label,operating_cash_flow,capex,net_income. Rows must already be in
// chronological order, oldest first.
func LoadQuartersCSV(path string) ([]models.HistoricalQuarter, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("csv has no data rows")
	}

	quarters := make([]models.HistoricalQuarter, 0, len(records)-1)
	for i, row := range records[1:] {
		if len(row) < 4 {
			return nil, fmt.Errorf("row %d: expected 4 columns, got %d", i+2, len(row))
		}

		ocf, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: operating_cash_flow: %w", i+2, err)
		}
		capex, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: capex: %w", i+2, err)
		}
		ni, err := strconv.ParseFloat(strings.TrimSpace(row[3]), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: net_income: %w", i+2, err)
		}

		quarters = append(quarters, models.HistoricalQuarter{
			Label:             strings.TrimSpace(row[0]),
			OperatingCashFlow: ocf,
			CapEx:             capex,
			NetIncome:         ni,
		})
	}

	return quarters, nil
}
