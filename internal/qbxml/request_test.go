package qbxml

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/QBXML-to-CSV-export/internal/types"
)

func TestTxnByRefNumber(t *testing.T) {
	b := Builder{}

	doc, err := b.TxnByRefNumber(types.KindInvoice, "1001")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(doc, `<?xml version="1.0" encoding="utf-8"?>`))
	assert.Contains(t, doc, `<?qbxml version="16.0"?>`)
	assert.Contains(t, doc, `<QBXMLMsgsRq onError="continueOnError">`)
	assert.Contains(t, doc, `<InvoiceQueryRq requestID="1">`)
	assert.Contains(t, doc, `<RefNumber>1001</RefNumber>`)
	assert.Contains(t, doc, `<IncludeLineItems>1</IncludeLineItems>`)
	assert.NotContains(t, doc, "TxnDateRangeFilter")
}

func TestTxnByRefNumber_ElementPerKind(t *testing.T) {
	b := Builder{}

	tests := []struct {
		kind types.Kind
		elem string
	}{
		{types.KindInvoice, "InvoiceQueryRq"},
		{types.KindSalesOrder, "SalesOrderQueryRq"},
		{types.KindPurchaseOrder, "PurchaseOrderQueryRq"},
	}

	for _, tt := range tests {
		doc, err := b.TxnByRefNumber(tt.kind, "42")
		require.NoError(t, err)
		assert.Contains(t, doc, "<"+tt.elem+" ")
		assert.Contains(t, doc, "</"+tt.elem+">")
	}
}

func TestTxnByRefNumber_UnknownKind(t *testing.T) {
	b := Builder{}

	_, err := b.TxnByRefNumber(types.KindCustomer, "42")
	assert.Error(t, err)
}

func TestTxnByYear_DateRange(t *testing.T) {
	b := Builder{}
	today := time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)

	doc, err := b.TxnByYear(types.KindSalesOrder, 2023, today)
	require.NoError(t, err)

	assert.Contains(t, doc, "<FromTxnDate>2023-01-01</FromTxnDate>")
	assert.Contains(t, doc, "<ToTxnDate>2024-06-15</ToTxnDate>")
}

// The date-range filter must textually precede the line-item inclusion
// directive; QuickBooks rejects the reverse order.
func TestTxnByYear_FilterPrecedesIncludeLineItems(t *testing.T) {
	b := Builder{}
	today := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	for _, kind := range []types.Kind{types.KindInvoice, types.KindSalesOrder, types.KindPurchaseOrder} {
		doc, err := b.TxnByYear(kind, 2023, today)
		require.NoError(t, err)

		filterAt := strings.Index(doc, "<TxnDateRangeFilter>")
		includeAt := strings.Index(doc, "<IncludeLineItems>")
		require.NotEqual(t, -1, filterAt, "kind %s: missing date range filter", kind)
		require.NotEqual(t, -1, includeAt, "kind %s: missing include directive", kind)
		assert.Less(t, filterAt, includeAt, "kind %s: filter must precede IncludeLineItems", kind)
	}
}

func TestCustomerList_Start(t *testing.T) {
	b := Builder{}

	doc, err := b.CustomerList(IteratorStart, "", 100)
	require.NoError(t, err)

	assert.Contains(t, doc, `iterator="Start"`)
	assert.NotContains(t, doc, "iteratorID")
	assert.Contains(t, doc, "<MaxReturned>100</MaxReturned>")
	assert.NotContains(t, doc, "IncludeRetElement")
}

func TestCustomerList_Continue(t *testing.T) {
	b := Builder{}

	doc, err := b.CustomerList(IteratorContinue, "ITER-123", 25)
	require.NoError(t, err)

	assert.Contains(t, doc, `iterator="Continue"`)
	assert.Contains(t, doc, `iteratorID="ITER-123"`)
	assert.Contains(t, doc, "<MaxReturned>25</MaxReturned>")
}

func TestCustomerList_IncludeRetElements(t *testing.T) {
	b := Builder{}

	doc, err := b.CustomerList(IteratorStart, "", 100, "FullName", "ShipToAddressList")
	require.NoError(t, err)

	assert.Contains(t, doc, "<IncludeRetElement>FullName</IncludeRetElement>")
	assert.Contains(t, doc, "<IncludeRetElement>ShipToAddressList</IncludeRetElement>")

	// Field restriction must come before the page cap.
	fullNameAt := strings.Index(doc, "<IncludeRetElement>")
	maxAt := strings.Index(doc, "<MaxReturned>")
	assert.Less(t, fullNameAt, maxAt)
}

func TestCustomerList_InvalidStates(t *testing.T) {
	b := Builder{}

	_, err := b.CustomerList("Restart", "", 100)
	assert.Error(t, err)

	_, err = b.CustomerList(IteratorContinue, "", 100)
	assert.Error(t, err, "Continue without an iteratorID must fail")
}

func TestBuilder_VersionOverride(t *testing.T) {
	b := Builder{Version: "13.0"}

	doc, err := b.TxnByRefNumber(types.KindInvoice, "1")
	require.NoError(t, err)
	assert.Contains(t, doc, `<?qbxml version="13.0"?>`)
}
