// =============================================================================
// QBXML to CSV Export - Purchase Order Adapter
// =============================================================================

package entity

import (
	"time"

	"github.com/ginjaninja78/QBXML-to-CSV-export/internal/qbxml"
	"github.com/ginjaninja78/QBXML-to-CSV-export/internal/types"
)

// PurchaseOrderAdapter exports purchase orders. The referenced party is the
// vendor rather than a customer, and the vendor's own address is exported
// alongside the ship-to address.
type PurchaseOrderAdapter struct{}

func (PurchaseOrderAdapter) Kind() types.Kind { return types.KindPurchaseOrder }

func (PurchaseOrderAdapter) FileStem() (string, string) { return "purchase_order", "purchase_orders" }

func (PurchaseOrderAdapter) Columns() []string {
	return []string{
		"PO Number",
		"Vendor Name",
		"Transaction Date",
		"Due Date",
		"Vendor Address",
		"Ship To",
		"Total Amount",
		colLineDesc,
		colQuantity,
		colRate,
		colAmount,
		colItemName,
	}
}

func (PurchaseOrderAdapter) BuildByRef(b qbxml.Builder, ref string) (string, error) {
	return b.TxnByRefNumber(types.KindPurchaseOrder, ref)
}

func (PurchaseOrderAdapter) BuildByYear(b qbxml.Builder, year int, today time.Time) (string, error) {
	return b.TxnByYear(types.KindPurchaseOrder, year, today)
}

func (PurchaseOrderAdapter) Flatten(doc string) ([]types.Record, qbxml.ResponseStatus, error) {
	orders, status, err := qbxml.ParsePurchaseOrders(doc)
	if err != nil {
		return nil, status, err
	}

	var records []types.Record
	for _, po := range orders {
		header := types.Record{
			"PO Number":        po.RefNumber,
			"Vendor Name":      po.VendorRef.Name(),
			"Transaction Date": po.TxnDate,
			"Due Date":         po.DueDate,
			"Vendor Address":   po.VendorAddress.Format(),
			"Ship To":          po.ShipAddress.Format(),
			"Total Amount":     po.TotalAmount,
		}
		records = append(records, flattenLines(header, po.Lines, po.GroupLines)...)
	}
	return records, status, nil
}
