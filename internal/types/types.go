// =============================================================================
// QBXML to CSV Export - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - qbxml
//   - entity
//   - paginate
//   - export
//
// =============================================================================

package types

// =============================================================================
// RECORD TYPE
// =============================================================================

// Record is one flat, denormalized output row: a mapping from column name to
// string value. All values are pass-through text exactly as they appear in the
// QuickBooks response; dates and amounts are never parsed into typed values.
//
// A column missing from the map reads as "" via the normal map zero value,
// which is exactly what the export sinks write for it.
type Record map[string]string

// =============================================================================
// ENTITY KINDS
// =============================================================================

// Kind identifies which QuickBooks entity an export run targets. The kind
// determines the query shape, the response elements scanned, and the output
// column schema.
type Kind string

const (
	// KindInvoice exports InvoiceRet transactions.
	KindInvoice Kind = "invoice"

	// KindSalesOrder exports SalesOrderRet transactions.
	KindSalesOrder Kind = "salesorder"

	// KindPurchaseOrder exports PurchaseOrderRet transactions.
	KindPurchaseOrder Kind = "purchaseorder"

	// KindCustomer exports CustomerRet ship-to address entries via the
	// iterator-driven customer list query.
	KindCustomer Kind = "customer"
)
