// =============================================================================
// QBXML to CSV Export - Invoice Adapter
// =============================================================================

package entity

import (
	"time"

	"github.com/ginjaninja78/QBXML-to-CSV-export/internal/qbxml"
	"github.com/ginjaninja78/QBXML-to-CSV-export/internal/types"
)

// InvoiceAdapter exports invoices: header fields plus one record per invoice
// line.
type InvoiceAdapter struct{}

func (InvoiceAdapter) Kind() types.Kind { return types.KindInvoice }

func (InvoiceAdapter) FileStem() (string, string) { return "invoice", "invoices" }

func (InvoiceAdapter) Columns() []string {
	return []string{
		"Invoice Number",
		"Customer Name",
		"Invoice Date",
		"PO Number",
		"Ship To",
		colLineDesc,
		colQuantity,
		colRate,
		colAmount,
		colItemName,
	}
}

func (InvoiceAdapter) BuildByRef(b qbxml.Builder, ref string) (string, error) {
	return b.TxnByRefNumber(types.KindInvoice, ref)
}

func (InvoiceAdapter) BuildByYear(b qbxml.Builder, year int, today time.Time) (string, error) {
	return b.TxnByYear(types.KindInvoice, year, today)
}

func (InvoiceAdapter) Flatten(doc string) ([]types.Record, qbxml.ResponseStatus, error) {
	invoices, status, err := qbxml.ParseInvoices(doc)
	if err != nil {
		return nil, status, err
	}

	var records []types.Record
	for _, inv := range invoices {
		header := types.Record{
			"Invoice Number": inv.RefNumber,
			"Customer Name":  inv.CustomerRef.Name(),
			"Invoice Date":   inv.TxnDate,
			"PO Number":      inv.PONumber,
			"Ship To":        inv.ShipAddress.Format(),
		}
		records = append(records, flattenLines(header, inv.Lines, inv.GroupLines)...)
	}
	return records, status, nil
}
