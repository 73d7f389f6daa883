// =============================================================================
// QBXML to CSV Export - Response Document Types
// =============================================================================
//
// This module declares the inbound half of the wire codec: the subset of the
// qbXML response schema this tool reads, plus the parse entry points. A
// response wraps zero or more repeating *Ret elements per entity kind:
//
//   <QBXML>
//     <QBXMLMsgsRs>
//       <InvoiceQueryRs statusCode="0" statusSeverity="Info" ...>
//         <InvoiceRet>...</InvoiceRet>
//         <InvoiceRet>...</InvoiceRet>
//       </InvoiceQueryRs>
//     </QBXMLMsgsRs>
//   </QBXML>
//
// Paginated list responses additionally carry iteratorID and
// iteratorRemainingCount attributes on the query response element.
//
// Absent optional elements are not errors: every scalar decodes to "" and
// every reference or address block decodes to nil, which downstream code
// treats as empty. A document that does not parse at all is a fatal error
// for the call; there is no partial recovery of a corrupt document.
//
// =============================================================================

package qbxml

import (
	"encoding/xml"
	"fmt"
)

// =============================================================================
// STATUS AND ITERATOR ATTRIBUTES
// =============================================================================

// ResponseStatus is the per-request status QuickBooks reports on the query
// response element. With onError="continueOnError" a non-zero status does
// not abort the message set, so it is surfaced for logging rather than
// turned into an error here.
type ResponseStatus struct {
	StatusCode     string `xml:"statusCode,attr"`
	StatusSeverity string `xml:"statusSeverity,attr"`
	StatusMessage  string `xml:"statusMessage,attr"`
}

// IteratorStatus is the pagination trailer on a list query response. A
// missing iteratorRemainingCount attribute decodes to zero, which reads the
// same as an exhausted iterator.
type IteratorStatus struct {
	IteratorID             string `xml:"iteratorID,attr"`
	IteratorRemainingCount int    `xml:"iteratorRemainingCount,attr"`
}

// =============================================================================
// SHARED SUB-ELEMENTS
// =============================================================================

// Ref is a reference to another QuickBooks list object (customer, vendor,
// item). Only the display name is read.
type Ref struct {
	FullName string `xml:"FullName"`
}

// Name returns the referenced object's display name, or "" when the
// reference block was absent.
func (r *Ref) Name() string {
	if r == nil {
		return ""
	}
	return r.FullName
}

// TxnLine is a simple line item (InvoiceLineRet, SalesOrderLineRet,
// PurchaseOrderLineRet). All values stay unparsed text.
type TxnLine struct {
	Desc     string `xml:"Desc"`
	Quantity string `xml:"Quantity"`
	Rate     string `xml:"Rate"`
	Amount   string `xml:"Amount"`
	ItemRef  *Ref   `xml:"ItemRef"`
}

// TxnLineGroup is a grouped line item (InvoiceLineGroupRet,
// SalesOrderLineGroupRet, PurchaseOrderLineGroupRet): a bundle reported as
// one aggregate entry. Groups carry a total but no per-unit rate, and the
// item reference lives under ItemGroupRef instead of ItemRef.
type TxnLineGroup struct {
	Desc         string `xml:"Desc"`
	Quantity     string `xml:"Quantity"`
	TotalAmount  string `xml:"TotalAmount"`
	ItemGroupRef *Ref   `xml:"ItemGroupRef"`
}

// =============================================================================
// TRANSACTION ELEMENTS
// =============================================================================

// InvoiceRet is one invoice with its line items.
type InvoiceRet struct {
	RefNumber   string         `xml:"RefNumber"`
	TxnDate     string         `xml:"TxnDate"`
	PONumber    string         `xml:"PONumber"`
	CustomerRef *Ref           `xml:"CustomerRef"`
	ShipAddress *Address       `xml:"ShipAddress"`
	Lines       []TxnLine      `xml:"InvoiceLineRet"`
	GroupLines  []TxnLineGroup `xml:"InvoiceLineGroupRet"`
}

// SalesOrderRet is one sales order with its line items.
type SalesOrderRet struct {
	RefNumber     string         `xml:"RefNumber"`
	TxnDate       string         `xml:"TxnDate"`
	DueDate       string         `xml:"DueDate"`
	CustomerRef   *Ref           `xml:"CustomerRef"`
	BillAddress   *Address       `xml:"BillAddress"`
	ShipAddress   *Address       `xml:"ShipAddress"`
	Subtotal      string         `xml:"Subtotal"`
	SalesTaxTotal string         `xml:"SalesTaxTotal"`
	TotalAmount   string         `xml:"TotalAmount"`
	Lines         []TxnLine      `xml:"SalesOrderLineRet"`
	GroupLines    []TxnLineGroup `xml:"SalesOrderLineGroupRet"`
}

// PurchaseOrderRet is one purchase order with its line items.
type PurchaseOrderRet struct {
	RefNumber     string         `xml:"RefNumber"`
	TxnDate       string         `xml:"TxnDate"`
	DueDate       string         `xml:"DueDate"`
	VendorRef     *Ref           `xml:"VendorRef"`
	VendorAddress *Address       `xml:"VendorAddress"`
	ShipAddress   *Address       `xml:"ShipAddress"`
	TotalAmount   string         `xml:"TotalAmount"`
	Lines         []TxnLine      `xml:"PurchaseOrderLineRet"`
	GroupLines    []TxnLineGroup `xml:"PurchaseOrderLineGroupRet"`
}

// =============================================================================
// CUSTOMER ELEMENTS
// =============================================================================

// ShipToAddress is one named, flagged ship-to entry on a customer.
type ShipToAddress struct {
	Name string `xml:"Name"`
	Address
	Note          string `xml:"Note"`
	DefaultShipTo string `xml:"DefaultShipTo"`
}

// CustomerRet is one customer. Which ship-to collection is populated depends
// on the query: the "direct" strategy sees ShipToAddress elements directly
// under CustomerRet, the "list" strategy sees a nested ShipToAddressList.
// A customer with neither yields zero records.
type CustomerRet struct {
	FullName   string          `xml:"FullName"`
	ShipTo     []ShipToAddress `xml:"ShipToAddress"`
	ShipToList []ShipToAddress `xml:"ShipToAddressList>ShipToAddress"`
}

// =============================================================================
// RESPONSE WRAPPERS
// =============================================================================

type invoiceResponse struct {
	XMLName xml.Name `xml:"QBXML"`
	Msgs    struct {
		Rs struct {
			ResponseStatus
			Invoices []InvoiceRet `xml:"InvoiceRet"`
		} `xml:"InvoiceQueryRs"`
	} `xml:"QBXMLMsgsRs"`
}

type salesOrderResponse struct {
	XMLName xml.Name `xml:"QBXML"`
	Msgs    struct {
		Rs struct {
			ResponseStatus
			SalesOrders []SalesOrderRet `xml:"SalesOrderRet"`
		} `xml:"SalesOrderQueryRs"`
	} `xml:"QBXMLMsgsRs"`
}

type purchaseOrderResponse struct {
	XMLName xml.Name `xml:"QBXML"`
	Msgs    struct {
		Rs struct {
			ResponseStatus
			PurchaseOrders []PurchaseOrderRet `xml:"PurchaseOrderRet"`
		} `xml:"PurchaseOrderQueryRs"`
	} `xml:"QBXMLMsgsRs"`
}

type customerResponse struct {
	XMLName xml.Name `xml:"QBXML"`
	Msgs    struct {
		Rs struct {
			ResponseStatus
			IteratorStatus
			Customers []CustomerRet `xml:"CustomerRet"`
		} `xml:"CustomerQueryRs"`
	} `xml:"QBXMLMsgsRs"`
}

// =============================================================================
// PARSE ENTRY POINTS
// =============================================================================

// ParseInvoices decodes an InvoiceQuery response document.
func ParseInvoices(doc string) ([]InvoiceRet, ResponseStatus, error) {
	var resp invoiceResponse
	if err := xml.Unmarshal([]byte(doc), &resp); err != nil {
		return nil, ResponseStatus{}, fmt.Errorf("failed to parse invoice response: %w", err)
	}
	return resp.Msgs.Rs.Invoices, resp.Msgs.Rs.ResponseStatus, nil
}

// ParseSalesOrders decodes a SalesOrderQuery response document.
func ParseSalesOrders(doc string) ([]SalesOrderRet, ResponseStatus, error) {
	var resp salesOrderResponse
	if err := xml.Unmarshal([]byte(doc), &resp); err != nil {
		return nil, ResponseStatus{}, fmt.Errorf("failed to parse sales order response: %w", err)
	}
	return resp.Msgs.Rs.SalesOrders, resp.Msgs.Rs.ResponseStatus, nil
}

// ParsePurchaseOrders decodes a PurchaseOrderQuery response document.
func ParsePurchaseOrders(doc string) ([]PurchaseOrderRet, ResponseStatus, error) {
	var resp purchaseOrderResponse
	if err := xml.Unmarshal([]byte(doc), &resp); err != nil {
		return nil, ResponseStatus{}, fmt.Errorf("failed to parse purchase order response: %w", err)
	}
	return resp.Msgs.Rs.PurchaseOrders, resp.Msgs.Rs.ResponseStatus, nil
}

// ParseCustomers decodes a CustomerQuery response document, including the
// pagination trailer.
func ParseCustomers(doc string) ([]CustomerRet, IteratorStatus, ResponseStatus, error) {
	var resp customerResponse
	if err := xml.Unmarshal([]byte(doc), &resp); err != nil {
		return nil, IteratorStatus{}, ResponseStatus{}, fmt.Errorf("failed to parse customer response: %w", err)
	}
	return resp.Msgs.Rs.Customers, resp.Msgs.Rs.IteratorStatus, resp.Msgs.Rs.ResponseStatus, nil
}
