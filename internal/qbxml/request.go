// =============================================================================
// QBXML to CSV Export - Request Builder
// =============================================================================
//
// This module constructs outbound qbXML query documents. Every document has
// the same envelope:
//
//   <?xml version="1.0" encoding="utf-8"?>
//   <?qbxml version="16.0"?>
//   <QBXML>
//     <QBXMLMsgsRq onError="continueOnError">
//       <InvoiceQueryRq requestID="1">
//         ...
//       </InvoiceQueryRq>
//     </QBXMLMsgsRq>
//   </QBXML>
//
// ELEMENT ORDERING:
//   qbXML validates child element order against its schema. In particular a
//   TxnDateRangeFilter must appear before IncludeLineItems or QuickBooks
//   rejects the request. The ordering is fixed here by struct field order,
//   so a builder change that reorders fields is the only way to break it.
//
// The builder is pure string/document construction: it never talks to the
// channel and never fails for reasons other than an unknown entity kind.
//
// =============================================================================

package qbxml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"time"

	"github.com/ginjaninja78/QBXML-to-CSV-export/internal/types"
)

// =============================================================================
// PROTOCOL CONSTANTS
// =============================================================================

// DefaultVersion is the qbXML protocol version declared when the caller does
// not configure one.
const DefaultVersion = "16.0"

// onErrorContinue keeps a message set running past per-record errors instead
// of aborting the whole batch.
const onErrorContinue = "continueOnError"

// requestID is echoed back by QuickBooks on the matching response element.
// Each document carries a single request, so a constant suffices.
const requestID = "1"

// Iterator modes for list-style queries.
const (
	// IteratorStart opens a new iterator session on the first request.
	IteratorStart = "Start"

	// IteratorContinue resumes an iterator session using the iteratorID
	// returned by the previous response.
	IteratorContinue = "Continue"
)

// =============================================================================
// BUILDER
// =============================================================================

// Builder assembles qbXML query documents for one protocol version.
type Builder struct {
	// Version is the qbxml processing-instruction version. Empty means
	// DefaultVersion.
	Version string
}

// queryElement maps each transaction kind to its query request element name.
var queryElement = map[types.Kind]string{
	types.KindInvoice:       "InvoiceQueryRq",
	types.KindSalesOrder:    "SalesOrderQueryRq",
	types.KindPurchaseOrder: "PurchaseOrderQueryRq",
}

// =============================================================================
// REQUEST BODY STRUCTURES
// =============================================================================
// Field order below is load-bearing: encoding/xml emits elements in struct
// field order, and qbXML requires filters before inclusion directives.

// txnQueryRq is the body of a transaction query (invoice, SO, PO). Exactly
// one of RefNumber or DateRange is set per document.
type txnQueryRq struct {
	XMLName          xml.Name
	RequestID        string           `xml:"requestID,attr"`
	RefNumber        string           `xml:"RefNumber,omitempty"`
	DateRange        *dateRangeFilter `xml:"TxnDateRangeFilter,omitempty"`
	IncludeLineItems int              `xml:"IncludeLineItems"`
}

// dateRangeFilter is a TxnDateRangeFilter with ISO calendar dates.
type dateRangeFilter struct {
	FromTxnDate string `xml:"FromTxnDate"`
	ToTxnDate   string `xml:"ToTxnDate"`
}

// customerQueryRq is the body of the paginated customer list query.
type customerQueryRq struct {
	XMLName     xml.Name `xml:"CustomerQueryRq"`
	RequestID   string   `xml:"requestID,attr"`
	Iterator    string   `xml:"iterator,attr,omitempty"`
	IteratorID  string   `xml:"iteratorID,attr,omitempty"`
	IncludeRet  []string `xml:"IncludeRetElement,omitempty"`
	MaxReturned int      `xml:"MaxReturned,omitempty"`
}

// envelope wraps a single request body in the QBXML message-set element.
type envelope struct {
	XMLName xml.Name `xml:"QBXML"`
	Msgs    msgsRq   `xml:"QBXMLMsgsRq"`
}

type msgsRq struct {
	OnError string `xml:"onError,attr"`
	Query   any
}

// =============================================================================
// QUERY CONSTRUCTION
// =============================================================================

// TxnByRefNumber builds a query for the transactions of the given kind whose
// reference number equals ref, with line items included.
func (b Builder) TxnByRefNumber(kind types.Kind, ref string) (string, error) {
	elem, ok := queryElement[kind]
	if !ok {
		return "", fmt.Errorf("no transaction query for entity kind %q", kind)
	}

	return b.render(txnQueryRq{
		XMLName:          xml.Name{Local: elem},
		RequestID:        requestID,
		RefNumber:        ref,
		IncludeLineItems: 1,
	})
}

// TxnByYear builds a query for every transaction of the given kind dated from
// January 1 of year through today, with line items included. The processing
// date is injected rather than read from the system clock so that callers and
// tests control it.
func (b Builder) TxnByYear(kind types.Kind, year int, today time.Time) (string, error) {
	elem, ok := queryElement[kind]
	if !ok {
		return "", fmt.Errorf("no transaction query for entity kind %q", kind)
	}

	return b.render(txnQueryRq{
		XMLName:   xml.Name{Local: elem},
		RequestID: requestID,
		DateRange: &dateRangeFilter{
			FromTxnDate: fmt.Sprintf("%04d-01-01", year),
			ToTxnDate:   today.Format("2006-01-02"),
		},
		IncludeLineItems: 1,
	})
}

// CustomerList builds one batch of the paginated customer list query.
// iterator is IteratorStart on the first call and IteratorContinue with the
// prior response's iteratorID afterwards. includeRet optionally restricts the
// returned fields (the "list" ship-to strategy asks for FullName and
// ShipToAddressList; the "direct" strategy passes none and receives the full
// CustomerRet).
func (b Builder) CustomerList(iterator, iteratorID string, pageSize int, includeRet ...string) (string, error) {
	if iterator != IteratorStart && iterator != IteratorContinue {
		return "", fmt.Errorf("unknown iterator mode %q", iterator)
	}
	if iterator == IteratorContinue && iteratorID == "" {
		return "", fmt.Errorf("iterator mode %q requires an iteratorID", IteratorContinue)
	}

	return b.render(customerQueryRq{
		RequestID:   requestID,
		Iterator:    iterator,
		IteratorID:  iteratorID,
		IncludeRet:  includeRet,
		MaxReturned: pageSize,
	})
}

// =============================================================================
// RENDERING
// =============================================================================

// render serializes a request body inside the standard envelope, prefixed
// with the XML declaration and the qbxml version processing instruction.
func (b Builder) render(body any) (string, error) {
	version := b.Version
	if version == "" {
		version = DefaultVersion
	}

	var buf bytes.Buffer
	buf.WriteString("<?xml version=\"1.0\" encoding=\"utf-8\"?>\n")
	buf.WriteString(fmt.Sprintf("<?qbxml version=%q?>\n", version))

	doc, err := xml.MarshalIndent(envelope{
		Msgs: msgsRq{
			OnError: onErrorContinue,
			Query:   body,
		},
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}
	buf.Write(doc)

	return buf.String(), nil
}
