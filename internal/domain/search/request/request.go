package request

import "fmt"

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed search query length.
	MaxQueryLength = 1024
	DefaultLimit   = 10
	MaxLimit       = 50
	// DefaultRetailer scopes requests that do not name a retailer.
	DefaultRetailer = "demo-retailer-id"
	// OverfetchFactor multiplies the limit when asking the catalog store for
	// candidates, so the scorer has material to rank before truncation.
	OverfetchFactor = 2
)

// Filters are explicit caller-supplied constraints. They are ANDed with
// whatever the extractor derives from the query text; a product must satisfy
// both sets even when they bound the same attribute.
type Filters struct {
	Category string
	Material string
	Color    string
	Style    string
	Room     string
	PriceMin *float64
	PriceMax *float64
}

// IsEmpty reports whether no explicit constraint is set.
func (f Filters) IsEmpty() bool {
	return f.Category == "" && f.Material == "" && f.Color == "" &&
		f.Style == "" && f.Room == "" && f.PriceMin == nil && f.PriceMax == nil
}

// Request is a validated search request.
type Request struct {
	query      string
	retailerID string
	limit      int
	filters    Filters
}

// New validates and normalizes search parameters.
// Defaults: retailer=DefaultRetailer, limit=10. Limit is clamped to MaxLimit.
func New(query, retailerID string, limit int, filters Filters) (Request, error) {
	if query == "" {
		return Request{}, fmt.Errorf("query is required")
	}
	if len(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("query too long (max %d chars)", MaxQueryLength)
	}
	if retailerID == "" {
		retailerID = DefaultRetailer
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if filters.PriceMin != nil && *filters.PriceMin < 0 {
		return Request{}, fmt.Errorf("price_min must not be negative")
	}
	if filters.PriceMax != nil && *filters.PriceMax < 0 {
		return Request{}, fmt.Errorf("price_max must not be negative")
	}

	return Request{
		query:      query,
		retailerID: retailerID,
		limit:      limit,
		filters:    filters,
	}, nil
}

// Query returns the raw query text.
func (r *Request) Query() string { return r.query }

// RetailerID returns the catalog scope.
func (r *Request) RetailerID() string { return r.retailerID }

// Limit returns the maximum results to return.
func (r *Request) Limit() int { return r.limit }

// Filters returns the explicit caller-supplied constraints.
func (r *Request) Filters() Filters { return r.filters }
