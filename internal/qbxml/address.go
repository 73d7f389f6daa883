// =============================================================================
// QBXML to CSV Export - Address Formatter
// =============================================================================

package qbxml

import "strings"

// Address is a positional postal address block as QuickBooks returns it
// (BillAddress, ShipAddress, VendorAddress, and the positional part of a
// ShipToAddress). Up to nine fields, any of which may be blank.
type Address struct {
	Addr1      string `xml:"Addr1"`
	Addr2      string `xml:"Addr2"`
	Addr3      string `xml:"Addr3"`
	Addr4      string `xml:"Addr4"`
	Addr5      string `xml:"Addr5"`
	City       string `xml:"City"`
	State      string `xml:"State"`
	PostalCode string `xml:"PostalCode"`
	Country    string `xml:"Country"`
}

// fields returns the canonical nine fields in declaration order.
func (a *Address) fields() []string {
	return []string{
		a.Addr1, a.Addr2, a.Addr3, a.Addr4, a.Addr5,
		a.City, a.State, a.PostalCode, a.Country,
	}
}

// Format joins the non-blank fields with ", " in canonical order. Blank
// fields are skipped entirely, never emitted as empty segments, so the
// result carries no doubled or dangling separators. An absent block formats
// as "".
func (a *Address) Format() string {
	if a == nil {
		return ""
	}
	return joinNonBlank(a.fields())
}

// FormatShort joins the shorter canonical list used by the "list" ship-to
// strategy: Addr1, Addr2, City, State, PostalCode, Country.
func (a *Address) FormatShort() string {
	if a == nil {
		return ""
	}
	return joinNonBlank([]string{
		a.Addr1, a.Addr2, a.City, a.State, a.PostalCode, a.Country,
	})
}

func joinNonBlank(fields []string) string {
	var parts []string
	for _, f := range fields {
		if s := strings.TrimSpace(f); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}
