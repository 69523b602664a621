package catalog

import "strings"

// Product is a read-only view of a catalog item. The import subsystem owns
// and mutates products; the search engine only reads them.
//
// Attribute fields are pointers because source records may omit them, and
// absence must stay distinguishable from an empty string.
type Product struct {
	ID          string
	Title       string
	Description string
	Category    *string
	Type        *string
	Material    *string
	Fabric      *string
	Color       *string
	Style       *string
	Room        *string
	Price       float64
	StockQty    int
}

// InStock reports whether the product has sellable units. Out-of-stock
// products are excluded from every search result.
func (p *Product) InStock() bool { return p.StockQty > 0 }

// AttrContains reports whether the attribute value is set and contains
// needle, case-insensitively.
func AttrContains(attr *string, needle string) bool {
	if attr == nil || needle == "" {
		return false
	}
	return strings.Contains(strings.ToLower(*attr), strings.ToLower(needle))
}

// TextContains reports whether the (always-present) text field contains
// needle, case-insensitively.
func TextContains(text, needle string) bool {
	if needle == "" {
		return false
	}
	return strings.Contains(strings.ToLower(text), strings.ToLower(needle))
}

// StringPtr returns a pointer to s. Convenience for building products from
// literal attribute values.
func StringPtr(s string) *string { return &s }
