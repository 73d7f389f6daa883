// =============================================================================
// QBXML to CSV Export - Main Entry Point
// =============================================================================
//
// This is the main entry point for the QBXML to CSV Export CLI application.
// It initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   qbexport export invoices       - Export invoices to a flat file
//   qbexport export salesorders    - Export sales orders
//   qbexport export purchaseorders - Export purchase orders
//   qbexport export shipto         - Export customer ship-to addresses
//   qbexport version               - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Core business logic (not for external import)
//   - pkg/           : Shared utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/QBXML-to-CSV-export/cmd"
)

// main is the entry point of the application.
// It simply calls the Execute function from the cmd package, which
// initializes and runs the Cobra CLI.
func main() {
	cmd.Execute()
}
