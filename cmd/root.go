// =============================================================================
// QBXML to CSV Export - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands are attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (qbexport)
//   ├── exportCmd (qbexport export)
//   │   ├── invoicesCmd (qbexport export invoices)
//   │   ├── salesOrdersCmd (qbexport export salesorders)
//   │   ├── purchaseOrdersCmd (qbexport export purchaseorders)
//   │   └── shipToCmd (qbexport export shipto)
//   └── versionCmd (qbexport version)
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ginjaninja78/QBXML-to-CSV-export/internal/config"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose forces debug-level logging when set to true.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "qbexport",
	Short: "QBXML to CSV Export - Pull QuickBooks records into flat CSV/XLSX files",
	Long: `QBXML to CSV Export queries a QuickBooks Desktop company file over the
qbXML request/response protocol and flattens the nested transaction and
line-item structure into tabular output files.

Supported exports:
  - Invoices, sales orders, and purchase orders, either by explicit
    reference numbers or by year (January 1 through today)
  - Customer ship-to addresses via the paginated customer list query

Example Usage:
  qbexport export invoices --refs 1001,1002   # One file per invoice
  qbexport export salesorders --year 2023     # One combined file
  qbexport export shipto                      # All customer ship-to entries
  qbexport export invoices --year 2023 --dry-run
                                              # Print the request, send nothing`,

	// If no subcommand is provided, print the help message.
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file (default is config.yaml)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// =============================================================================
// SHARED HELPERS
// =============================================================================

// loadConfig reads the configuration file named by --config. A missing file
// at the default location is not an error; the built-in defaults apply.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !rootCmd.PersistentFlags().Changed("config") {
			return config.Default(), nil
		}
		return nil, err
	}
	return cfg, nil
}

// initLogger builds the shared zap logger. --verbose wins over the
// configured log level.
func initLogger(cfg *config.Config) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if err := level.Set(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("invalid log_level %q: %w", cfg.LogLevel, err)
	}
	if verbose {
		level = zapcore.DebugLevel
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.Encoding = "console"
	zcfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()

	log, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return log, nil
}
