// =============================================================================
// QBXML to CSV Export - Entity Adapters
// =============================================================================
//
// The builder/flattener/schema logic is near-identical across the four
// entity kinds, so it is expressed once as an adapter capability set with
// one implementation per kind rather than duplicated free functions. The
// adapters enforce the ordering and cardinality rules in one place:
//
//   - records appear in document order, all of one transaction's records
//     before the next transaction's;
//   - a transaction yields one record per simple line, then one per grouped
//     line, or exactly one header-only record when it has no lines at all;
//   - every record repeats its transaction's header fields verbatim;
//   - grouped lines never carry a rate.
//
// Transaction kinds (invoice, sales order, purchase order) implement
// TxnAdapter. The customer ship-to export is list-shaped and paginated, so
// its two strategy variants implement ListAdapter instead.
//
// =============================================================================

package entity

import (
	"fmt"
	"time"

	"github.com/ginjaninja78/QBXML-to-CSV-export/internal/config"
	"github.com/ginjaninja78/QBXML-to-CSV-export/internal/qbxml"
	"github.com/ginjaninja78/QBXML-to-CSV-export/internal/types"
)

// =============================================================================
// ADAPTER INTERFACES
// =============================================================================

// TxnAdapter binds one transaction kind's query construction, response
// flattening, and output schema.
type TxnAdapter interface {
	// Kind identifies the entity kind this adapter serves.
	Kind() types.Kind

	// FileStem returns the singular and plural output file name stems
	// (for example "invoice", "invoices").
	FileStem() (singular, plural string)

	// Columns is the fixed, ordered output column schema.
	Columns() []string

	// BuildByRef constructs a single-identifier query document.
	BuildByRef(b qbxml.Builder, ref string) (string, error)

	// BuildByYear constructs a date-range query document covering January 1
	// of year through today.
	BuildByYear(b qbxml.Builder, year int, today time.Time) (string, error)

	// Flatten converts a response document into flat records in document
	// order. The response status is returned for logging.
	Flatten(doc string) ([]types.Record, qbxml.ResponseStatus, error)
}

// ListAdapter binds one variant of the paginated customer list export.
type ListAdapter interface {
	// Columns is the fixed, ordered output column schema.
	Columns() []string

	// BuildBatch constructs one iterator batch request.
	BuildBatch(b qbxml.Builder, iterator, iteratorID string, pageSize int) (string, error)

	// FlattenBatch converts one batch response into flat records plus the
	// iterator trailer that drives the next request.
	FlattenBatch(doc string) ([]types.Record, qbxml.IteratorStatus, qbxml.ResponseStatus, error)
}

// =============================================================================
// REGISTRIES
// =============================================================================

// TxnForKind returns the adapter for a transaction kind.
func TxnForKind(kind types.Kind) (TxnAdapter, error) {
	switch kind {
	case types.KindInvoice:
		return InvoiceAdapter{}, nil
	case types.KindSalesOrder:
		return SalesOrderAdapter{}, nil
	case types.KindPurchaseOrder:
		return PurchaseOrderAdapter{}, nil
	default:
		return nil, fmt.Errorf("no transaction adapter for entity kind %q", kind)
	}
}

// ShipToForStrategy returns the customer ship-to adapter for a configured
// extraction strategy.
func ShipToForStrategy(strategy string) (ListAdapter, error) {
	switch strategy {
	case config.ShipToDirect:
		return DirectShipToAdapter{}, nil
	case config.ShipToList:
		return ListShipToAdapter{}, nil
	default:
		return nil, fmt.Errorf("no ship-to adapter for strategy %q", strategy)
	}
}

// =============================================================================
// SHARED LINE FLATTENING
// =============================================================================

// Line item column names shared by all transaction kinds.
const (
	colLineDesc = "Line Description"
	colQuantity = "Quantity"
	colRate     = "Rate"
	colAmount   = "Amount"
	colItemName = "Item Ref Full Name"
)

// flattenLines yields one record per simple line, then one per grouped line,
// each seeded with a copy of the transaction's header fields. A transaction
// with no lines of either kind yields exactly one header-only record whose
// line columns are all "".
func flattenLines(header types.Record, lines []qbxml.TxnLine, groups []qbxml.TxnLineGroup) []types.Record {
	if len(lines) == 0 && len(groups) == 0 {
		return []types.Record{withLine(header, "", "", "", "", "")}
	}

	out := make([]types.Record, 0, len(lines)+len(groups))
	for _, li := range lines {
		out = append(out, withLine(header, li.Desc, li.Quantity, li.Rate, li.Amount, li.ItemRef.Name()))
	}
	for _, g := range groups {
		// Groups report an aggregate total and no per-unit rate.
		out = append(out, withLine(header, g.Desc, g.Quantity, "", g.TotalAmount, g.ItemGroupRef.Name()))
	}
	return out
}

// withLine copies the header fields and fills in the line item columns.
func withLine(header types.Record, desc, qty, rate, amount, item string) types.Record {
	rec := make(types.Record, len(header)+5)
	for k, v := range header {
		rec[k] = v
	}
	rec[colLineDesc] = desc
	rec[colQuantity] = qty
	rec[colRate] = rate
	rec[colAmount] = amount
	rec[colItemName] = item
	return rec
}
