// =============================================================================
// QBXML to CSV Export - Export Command
// =============================================================================
//
// This file defines the 'export' command family, the main commands of the
// tool. Each subcommand targets one entity kind.
//
// COMMAND USAGE:
//   qbexport export invoices --refs 1001,1002 [flags]
//   qbexport export invoices --year 2023 [flags]
//   qbexport export salesorders ...
//   qbexport export purchaseorders ...
//   qbexport export shipto [flags]
//
// FLAGS:
//   --refs     : Comma-separated reference numbers (one output file each)
//   --year     : Export everything dated Jan 1 of the year through today
//   --format   : Output format, "csv" or "xlsx"
//   --dry-run  : Print the generated request document(s) without connecting
//
// EXPORT PIPELINE:
//   1. Load configuration and build the request builder
//   2. Open connection + begin session (released unconditionally)
//   3. For each query: build document -> send -> flatten response
//   4. (shipto) loop iterator batches until the remaining count reaches zero
//   5. Write the accumulated records through the selected sink
//
// Everything is strictly sequential: one outstanding request at a time.
// Ctrl+C cancels between exchanges; partial output is discarded and the
// session is still torn down.
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ginjaninja78/QBXML-to-CSV-export/internal/config"
	"github.com/ginjaninja78/QBXML-to-CSV-export/internal/entity"
	"github.com/ginjaninja78/QBXML-to-CSV-export/internal/export"
	"github.com/ginjaninja78/QBXML-to-CSV-export/internal/paginate"
	"github.com/ginjaninja78/QBXML-to-CSV-export/internal/qbxml"
	"github.com/ginjaninja78/QBXML-to-CSV-export/internal/session"
	"github.com/ginjaninja78/QBXML-to-CSV-export/internal/types"
	"github.com/ginjaninja78/QBXML-to-CSV-export/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// refs holds the reference numbers of a by-identifier export.
var refs []string

// year selects a date-range export from Jan 1 of that year through today.
var year int

// exportFormat selects the output sink: "csv" or "xlsx".
var exportFormat string

// dryRun prints the generated request documents instead of sending them.
var dryRun bool

// =============================================================================
// COMMAND DEFINITIONS
// =============================================================================

// exportCmd groups the per-entity export subcommands.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export QuickBooks records to flat files",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var invoicesCmd = &cobra.Command{
	Use:   "invoices",
	Short: "Export invoices (by reference numbers or by year)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTxnExport(types.KindInvoice)
	},
}

var salesOrdersCmd = &cobra.Command{
	Use:   "salesorders",
	Short: "Export sales orders (by reference numbers or by year)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTxnExport(types.KindSalesOrder)
	},
}

var purchaseOrdersCmd = &cobra.Command{
	Use:   "purchaseorders",
	Short: "Export purchase orders (by reference numbers or by year)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTxnExport(types.KindPurchaseOrder)
	},
}

var shipToCmd = &cobra.Command{
	Use:   "shipto",
	Short: "Export customer ship-to addresses via the paginated list query",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShipToExport()
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.AddCommand(invoicesCmd, salesOrdersCmd, purchaseOrdersCmd, shipToCmd)

	exportCmd.PersistentFlags().StringSliceVar(
		&refs,
		"refs",
		nil,
		"Comma-separated reference numbers to export (one output file each)",
	)

	exportCmd.PersistentFlags().IntVar(
		&year,
		"year",
		0,
		"Export everything dated January 1 of this year through today",
	)

	exportCmd.PersistentFlags().StringVar(
		&exportFormat,
		"format",
		export.FormatCSV,
		"Output format: csv or xlsx",
	)

	exportCmd.PersistentFlags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Print the generated request document(s) without connecting to QuickBooks",
	)
}

// =============================================================================
// TRANSACTION EXPORTS (invoices, sales orders, purchase orders)
// =============================================================================

// runTxnExport drives a by-reference or by-year export for one transaction
// kind.
func runTxnExport(kind types.Kind) error {
	adapter, err := entity.TxnForKind(kind)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := initLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	cleanRefs := cleanRefList(refs)
	if len(cleanRefs) == 0 && year == 0 {
		return fmt.Errorf("specify --refs or --year")
	}
	if len(cleanRefs) > 0 && year != 0 {
		return fmt.Errorf("--refs and --year are mutually exclusive")
	}

	builder := qbxml.Builder{Version: cfg.QBXMLVersion}
	singular, plural := adapter.FileStem()

	// Build every request up front; a bad parameter should fail before a
	// connection is opened.
	type job struct {
		request  string
		fileName string
	}
	var jobs []job

	sink, err := export.ForFormat(exportFormat)
	if err != nil {
		return err
	}

	now := time.Now()
	if year != 0 {
		request, err := adapter.BuildByYear(builder, year, now)
		if err != nil {
			return err
		}
		jobs = append(jobs, job{
			request: request,
			fileName: utils.RenderFileName(cfg.FileNames.ByYear, map[string]string{
				"type":  singular,
				"types": plural,
				"year":  strconv.Itoa(year),
				"ext":   sink.Ext(),
			}, now),
		})
	} else {
		for _, ref := range cleanRefs {
			request, err := adapter.BuildByRef(builder, ref)
			if err != nil {
				return err
			}
			jobs = append(jobs, job{
				request: request,
				fileName: utils.RenderFileName(cfg.FileNames.SingleRef, map[string]string{
					"type":  singular,
					"types": plural,
					"ref":   ref,
					"ext":   sink.Ext(),
				}, now),
			})
		}
	}

	if dryRun {
		for _, j := range jobs {
			fmt.Println(j.request)
		}
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sess, cleanup, err := openSession(cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := utils.EnsureDir(cfg.OutputDir); err != nil {
		return err
	}

	for _, j := range jobs {
		response, err := sess.Query(ctx, j.request)
		if err != nil {
			return err
		}

		records, status, err := adapter.Flatten(response)
		if err != nil {
			return err
		}
		logStatus(log, status)

		path := filepath.Join(cfg.OutputDir, j.fileName)
		if err := sink.Write(path, adapter.Columns(), records); err != nil {
			return err
		}
		fmt.Printf("Export complete! %d record(s) saved to %s\n", len(records), path)
	}

	return nil
}

// =============================================================================
// SHIP-TO EXPORT (paginated customer list)
// =============================================================================

// runShipToExport drives the iterator batch loop over the customer list and
// writes one combined output file.
func runShipToExport() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := initLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	adapter, err := entity.ShipToForStrategy(cfg.ShipToStrategy)
	if err != nil {
		return err
	}

	sink, err := export.ForFormat(exportFormat)
	if err != nil {
		return err
	}

	builder := qbxml.Builder{Version: cfg.QBXMLVersion}

	if dryRun {
		request, err := adapter.BuildBatch(builder, qbxml.IteratorStart, "", cfg.PageSize)
		if err != nil {
			return err
		}
		fmt.Println(request)
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sess, cleanup, err := openSession(cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	batchCount := 0
	fetch := func(ctx context.Context, st paginate.State) (paginate.Batch, error) {
		request, err := adapter.BuildBatch(builder, st.Iterator, st.IteratorID, cfg.PageSize)
		if err != nil {
			return paginate.Batch{}, err
		}

		response, err := sess.Query(ctx, request)
		if err != nil {
			return paginate.Batch{}, err
		}

		records, iter, status, err := adapter.FlattenBatch(response)
		if err != nil {
			return paginate.Batch{}, err
		}
		logStatus(log, status)

		batchCount++
		log.Info("batch processed",
			zap.Int("batch", batchCount),
			zap.Int("records", len(records)),
			zap.Int("remaining", iter.IteratorRemainingCount),
		)

		return paginate.Batch{Records: records, Iter: iter}, nil
	}

	records, err := paginate.Collect(ctx, fetch)
	if err != nil {
		return err
	}

	columns := adapter.Columns()
	if cfg.ShipToStrategy == config.ShipToDirect && !cfg.KeepEmptyColumns {
		columns = export.PruneEmptyColumns(columns, records)
	}

	if err := utils.EnsureDir(cfg.OutputDir); err != nil {
		return err
	}

	name := utils.RenderFileName(cfg.FileNames.ShipTo, map[string]string{
		"type":  "shipto",
		"types": "shipto_addresses",
		"ext":   sink.Ext(),
	}, time.Now())
	path := filepath.Join(cfg.OutputDir, name)

	if err := sink.Write(path, columns, records); err != nil {
		return err
	}
	fmt.Printf("Export complete! %d record(s) saved to %s\n", len(records), path)

	return nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// openSession acquires the COM processor and a QuickBooks session. The
// returned cleanup releases both in order and is safe on every exit path.
func openSession(cfg *config.Config, log *zap.Logger) (*session.Session, func(), error) {
	rp, release, err := session.NewProcessor()
	if err != nil {
		return nil, nil, err
	}

	sess, err := session.Open(rp, cfg.AppName, cfg.CompanyFile, cfg.OpenMode, log)
	if err != nil {
		release()
		return nil, nil, err
	}

	cleanup := func() {
		sess.Close()
		release()
	}
	return sess, cleanup, nil
}

// cleanRefList trims whitespace and drops empty entries from the --refs
// flag values.
func cleanRefList(raw []string) []string {
	var out []string
	for _, r := range raw {
		if s := strings.TrimSpace(r); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// logStatus surfaces a non-Info per-request status. With continueOnError
// semantics these do not abort the run, but they should not pass silently.
func logStatus(log *zap.Logger, status qbxml.ResponseStatus) {
	if status.StatusSeverity == "" || status.StatusSeverity == "Info" {
		return
	}
	log.Warn("quickbooks reported a request status",
		zap.String("code", status.StatusCode),
		zap.String("severity", status.StatusSeverity),
		zap.String("message", status.StatusMessage),
	)
}
