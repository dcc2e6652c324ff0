package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dcf-analyzer/internal/models"
)

// Write serializes the report to path, picking the format from the file
// extension: .csv writes a flat CSV, .xlsx a workbook.
func Write(path string, report *models.ValuationReport, quality string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return WriteCSV(path, report, quality)
	case ".xlsx":
		return WriteWorkbook(path, report, quality)
	default:
		return fmt.Errorf("unsupported export format %q (use .xlsx or .csv)", filepath.Ext(path))
	}
}

// WriteCSV writes the report as one flat CSV: the input and summary rows as
// key/value pairs, then the forecast table.
func WriteCSV(path string, report *models.ValuationReport, quality string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)

	sections := [][][]interface{}{
		inputRows(report),
		{{}},
		forecastRows(report),
		{{}},
		summaryRows(report, quality),
	}
	for _, rows := range sections {
		for _, row := range rows {
			record := make([]string, len(row))
			for i, cell := range row {
				record[i] = stringify(cell)
			}
			if err := w.Write(record); err != nil {
				return fmt.Errorf("writing csv row: %w", err)
			}
		}
	}

	w.Flush()
	return w.Error()
}

func stringify(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return fmt.Sprintf("%g", x)
	case int:
		return fmt.Sprintf("%d", x)
	default:
		return fmt.Sprintf("%v", x)
	}
}
