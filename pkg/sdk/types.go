package furndex

// Filters are explicit constraints ANDed with the extracted intent.
type Filters struct {
	Category string   `json:"category,omitempty"`
	Material string   `json:"material,omitempty"`
	Color    string   `json:"color,omitempty"`
	Style    string   `json:"style,omitempty"`
	Room     string   `json:"room,omitempty"`
	PriceMin *float64 `json:"price_min,omitempty"`
	PriceMax *float64 `json:"price_max,omitempty"`
}

// SearchRequest is the POST /api/search body.
type SearchRequest struct {
	Query      string   `json:"query"`
	RetailerID string   `json:"retailer_id,omitempty"`
	Limit      int      `json:"limit,omitempty"`
	Filters    *Filters `json:"filters,omitempty"`
}

// Intent is the structured reading of the query returned by the server.
type Intent struct {
	Category   string   `json:"category,omitempty"`
	Color      string   `json:"color,omitempty"`
	Material   string   `json:"material,omitempty"`
	Style      string   `json:"style,omitempty"`
	Room       string   `json:"room,omitempty"`
	Shape      string   `json:"shape,omitempty"`
	PriceMin   *float64 `json:"price_min,omitempty"`
	PriceMax   *float64 `json:"price_max,omitempty"`
	Keywords   []string `json:"keywords"`
	Confidence int      `json:"confidence"`
}

// Product is a catalog entry as returned in search results.
type Product struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	Type        *string `json:"type,omitempty"`
	Material    *string `json:"material,omitempty"`
	Fabric      *string `json:"fabric,omitempty"`
	Color       *string `json:"color,omitempty"`
	Style       *string `json:"style,omitempty"`
	Room        *string `json:"room,omitempty"`
	Price       float64 `json:"price"`
	StockQty    int     `json:"stock_qty"`
}

// Result is a single scored search hit.
type Result struct {
	Product           Product  `json:"product"`
	RelevanceScore    int      `json:"relevance_score"`
	MatchedAttributes []string `json:"matched_attributes"`
	IntentMatch       bool     `json:"intent_match"`
}

// SearchResponse is the success envelope.
type SearchResponse struct {
	Success    bool     `json:"success"`
	Query      string   `json:"query"`
	Intent     Intent   `json:"intent"`
	Results    []Result `json:"results"`
	TotalFound int      `json:"total_found"`
	SearchTime string   `json:"search_time"`
}

// HealthResponse reports component availability.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
