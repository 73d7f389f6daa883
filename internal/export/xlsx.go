// =============================================================================
// QBXML to CSV Export - XLSX Sink
// =============================================================================

package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/QBXML-to-CSV-export/internal/types"
)

// XLSXSink writes single-sheet XLSX workbooks, same shape as the CSV sink:
// header row, then one row per record.
type XLSXSink struct{}

func (XLSXSink) Ext() string { return "xlsx" }

func (XLSXSink) Write(path string, columns []string, records []types.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"

	header := make([]interface{}, len(columns))
	for i, col := range columns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for r, rec := range records {
		row := make([]interface{}, len(columns))
		for i, col := range columns {
			row[i] = rec[col]
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return fmt.Errorf("failed to compute cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
