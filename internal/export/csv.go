// =============================================================================
// QBXML to CSV Export - CSV Sink
// =============================================================================

package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/ginjaninja78/QBXML-to-CSV-export/internal/types"
)

// CSVSink writes UTF-8 CSV files.
type CSVSink struct{}

func (CSVSink) Ext() string { return "csv" }

func (CSVSink) Write(path string, columns []string, records []types.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(columns); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	row := make([]string, len(columns))
	for _, rec := range records {
		for i, col := range columns {
			row[i] = rec[col]
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return f.Close()
}
