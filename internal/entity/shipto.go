// =============================================================================
// QBXML to CSV Export - Customer Ship-To Adapters
// =============================================================================
//
// Two extraction strategies exist for customer ship-to addresses and they are
// NOT behaviorally equivalent, so each is its own adapter:
//
//   direct — query the full CustomerRet (no IncludeRetElement) and read the
//            repeating ShipToAddress elements directly beneath it. Wide
//            column set, one column per field. Degenerate blocks where the
//            label, Addr1, and City are all blank are dropped even when
//            other fields (Note, for example) are populated.
//
//   list   — ask only for FullName and ShipToAddressList and read the nested
//            list. Two-column output with the address joined into a single
//            "Label: addr" string. No empty-record filter.
//
// The differing filters are intentional and must not be merged.
//
// =============================================================================

package entity

import (
	"strings"

	"github.com/ginjaninja78/QBXML-to-CSV-export/internal/qbxml"
	"github.com/ginjaninja78/QBXML-to-CSV-export/internal/types"
)

// =============================================================================
// DIRECT STRATEGY
// =============================================================================

// DirectShipToAdapter implements the "direct" extraction strategy.
type DirectShipToAdapter struct{}

func (DirectShipToAdapter) Columns() []string {
	return []string{
		"Customer",
		"ShipToName",
		"Addr1",
		"Addr2",
		"Addr3",
		"Addr4",
		"Addr5",
		"City",
		"State",
		"PostalCode",
		"Country",
		"Note",
		"DefaultShipTo",
	}
}

func (DirectShipToAdapter) BuildBatch(b qbxml.Builder, iterator, iteratorID string, pageSize int) (string, error) {
	// No IncludeRetElement: QuickBooks only returns ShipToAddress children
	// on the full CustomerRet.
	return b.CustomerList(iterator, iteratorID, pageSize)
}

func (DirectShipToAdapter) FlattenBatch(doc string) ([]types.Record, qbxml.IteratorStatus, qbxml.ResponseStatus, error) {
	customers, iter, status, err := qbxml.ParseCustomers(doc)
	if err != nil {
		return nil, iter, status, err
	}

	var records []types.Record
	for _, cust := range customers {
		name := strings.TrimSpace(cust.FullName)
		for _, st := range cust.ShipTo {
			rec := types.Record{
				"Customer":      name,
				"ShipToName":    strings.TrimSpace(st.Name),
				"Addr1":         strings.TrimSpace(st.Addr1),
				"Addr2":         strings.TrimSpace(st.Addr2),
				"Addr3":         strings.TrimSpace(st.Addr3),
				"Addr4":         strings.TrimSpace(st.Addr4),
				"Addr5":         strings.TrimSpace(st.Addr5),
				"City":          strings.TrimSpace(st.City),
				"State":         strings.TrimSpace(st.State),
				"PostalCode":    strings.TrimSpace(st.PostalCode),
				"Country":       strings.TrimSpace(st.Country),
				"Note":          strings.TrimSpace(st.Note),
				"DefaultShipTo": strings.TrimSpace(st.DefaultShipTo),
			}

			// QuickBooks sometimes returns empty placeholder blocks; keep an
			// entry only if it has some address identity.
			if rec["ShipToName"] != "" || rec["Addr1"] != "" || rec["City"] != "" {
				records = append(records, rec)
			}
		}
	}
	return records, iter, status, nil
}

// =============================================================================
// LIST STRATEGY
// =============================================================================

// ListShipToAdapter implements the "list" extraction strategy.
type ListShipToAdapter struct{}

func (ListShipToAdapter) Columns() []string {
	return []string{"Customer", "ShipToAddress"}
}

func (ListShipToAdapter) BuildBatch(b qbxml.Builder, iterator, iteratorID string, pageSize int) (string, error) {
	return b.CustomerList(iterator, iteratorID, pageSize, "FullName", "ShipToAddressList")
}

func (ListShipToAdapter) FlattenBatch(doc string) ([]types.Record, qbxml.IteratorStatus, qbxml.ResponseStatus, error) {
	customers, iter, status, err := qbxml.ParseCustomers(doc)
	if err != nil {
		return nil, iter, status, err
	}

	var records []types.Record
	for _, cust := range customers {
		name := strings.TrimSpace(cust.FullName)
		for _, st := range cust.ShipToList {
			entry := st.FormatShort()
			if label := strings.TrimSpace(st.Name); label != "" {
				entry = label + ": " + entry
			}
			records = append(records, types.Record{
				"Customer":      name,
				"ShipToAddress": entry,
			})
		}
	}
	return records, iter, status, nil
}
