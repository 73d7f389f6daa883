// =============================================================================
// QBXML to CSV Export - Output File Naming
// =============================================================================
//
// Output names are rendered from format strings with placeholders:
//
//   {type}      - singular entity stem (e.g. "invoice")
//   {types}     - plural entity stem (e.g. "invoices")
//   {ref}       - reference number of a by-identifier export
//   {year}      - year of a date-range export
//   {timestamp} - render time as YYYYMMDD_HHMMSS
//   {uuid}      - a random UUID
//   {ext}       - sink file extension ("csv" or "xlsx")
//
// The default formats reproduce the historical names (invoice_1001.csv,
// invoices_from_2023.csv, shipto_addresses_20240101_120000.csv).
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RenderFileName substitutes the placeholders in format. values carries the
// caller-supplied placeholders (type, types, ref, year, ext); timestamp and
// uuid are generated here from now and a fresh UUID.
func RenderFileName(format string, values map[string]string, now time.Time) string {
	out := format
	for key, value := range values {
		out = strings.ReplaceAll(out, "{"+key+"}", value)
	}
	out = strings.ReplaceAll(out, "{timestamp}", now.Format("20060102_150405"))
	if strings.Contains(out, "{uuid}") {
		out = strings.ReplaceAll(out, "{uuid}", uuid.NewString())
	}
	return out
}

// EnsureDir creates the directory (and parents) if it does not exist.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}
