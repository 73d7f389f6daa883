// =============================================================================
// QBXML to CSV Export - Export Sinks
// =============================================================================
//
// A sink receives an ordered record sequence plus the fixed column schema
// for the entity kind and writes one file: a header row of column names
// followed by one row per record. A record missing a declared column writes
// "" for it. An empty record sequence still produces a file with the header
// row, which is a valid (empty) export.
//
// =============================================================================

package export

import (
	"fmt"

	"github.com/ginjaninja78/QBXML-to-CSV-export/internal/types"
)

// Format identifiers accepted by ForFormat.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// Sink writes a record sequence with a fixed column schema to a file.
type Sink interface {
	// Write persists the records under the given path. Columns fixes both
	// the header row and the field order of every data row.
	Write(path string, columns []string, records []types.Record) error

	// Ext is the file extension this sink produces, without the dot.
	Ext() string
}

// ForFormat returns the sink for a format identifier.
func ForFormat(format string) (Sink, error) {
	switch format {
	case FormatCSV:
		return CSVSink{}, nil
	case FormatXLSX:
		return XLSXSink{}, nil
	default:
		return nil, fmt.Errorf("unknown export format %q (expected %q or %q)", format, FormatCSV, FormatXLSX)
	}
}

// PruneEmptyColumns returns the subset of columns that hold at least one
// non-empty value across the records, preserving column order. With no
// records the schema is returned unchanged so an empty export still carries
// the full header row.
func PruneEmptyColumns(columns []string, records []types.Record) []string {
	if len(records) == 0 {
		return columns
	}

	kept := make([]string, 0, len(columns))
	for _, col := range columns {
		for _, rec := range records {
			if rec[col] != "" {
				kept = append(kept, col)
				break
			}
		}
	}
	return kept
}
