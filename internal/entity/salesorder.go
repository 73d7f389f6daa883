// =============================================================================
// QBXML to CSV Export - Sales Order Adapter
// =============================================================================

package entity

import (
	"time"

	"github.com/ginjaninja78/QBXML-to-CSV-export/internal/qbxml"
	"github.com/ginjaninja78/QBXML-to-CSV-export/internal/types"
)

// SalesOrderAdapter exports sales orders. The header carries both addresses
// and the order totals in addition to the common reference/date fields.
type SalesOrderAdapter struct{}

func (SalesOrderAdapter) Kind() types.Kind { return types.KindSalesOrder }

func (SalesOrderAdapter) FileStem() (string, string) { return "sales_order", "sales_orders" }

func (SalesOrderAdapter) Columns() []string {
	return []string{
		"SO Number",
		"Customer Name",
		"Transaction Date",
		"Due Date",
		"Bill To",
		"Ship To",
		"Subtotal",
		"Sales Tax Total",
		"Total Amount",
		colLineDesc,
		colQuantity,
		colRate,
		colAmount,
		colItemName,
	}
}

func (SalesOrderAdapter) BuildByRef(b qbxml.Builder, ref string) (string, error) {
	return b.TxnByRefNumber(types.KindSalesOrder, ref)
}

func (SalesOrderAdapter) BuildByYear(b qbxml.Builder, year int, today time.Time) (string, error) {
	return b.TxnByYear(types.KindSalesOrder, year, today)
}

func (SalesOrderAdapter) Flatten(doc string) ([]types.Record, qbxml.ResponseStatus, error) {
	orders, status, err := qbxml.ParseSalesOrders(doc)
	if err != nil {
		return nil, status, err
	}

	var records []types.Record
	for _, so := range orders {
		header := types.Record{
			"SO Number":        so.RefNumber,
			"Customer Name":    so.CustomerRef.Name(),
			"Transaction Date": so.TxnDate,
			"Due Date":         so.DueDate,
			"Bill To":          so.BillAddress.Format(),
			"Ship To":          so.ShipAddress.Format(),
			"Subtotal":         so.Subtotal,
			"Sales Tax Total":  so.SalesTaxTotal,
			"Total Amount":     so.TotalAmount,
		}
		records = append(records, flattenLines(header, so.Lines, so.GroupLines)...)
	}
	return records, status, nil
}
