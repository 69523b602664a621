package chi

import (
	"time"

	domintent "github.com/meublia-cloud/furndex/internal/domain/search/intent"
	"github.com/meublia-cloud/furndex/internal/domain/search/request"
	"github.com/meublia-cloud/furndex/internal/domain/search/result"
	searchuc "github.com/meublia-cloud/furndex/internal/usecase/search"
)

// searchRequestPayload is the POST /api/search body.
type searchRequestPayload struct {
	Query      string          `json:"query"`
	RetailerID string          `json:"retailer_id"`
	Limit      int             `json:"limit"`
	Filters    *filtersPayload `json:"filters"`
}

type filtersPayload struct {
	Category string   `json:"category"`
	Material string   `json:"material"`
	Color    string   `json:"color"`
	Style    string   `json:"style"`
	Room     string   `json:"room"`
	PriceMin *float64 `json:"price_min"`
	PriceMax *float64 `json:"price_max"`
}

type intentPayload struct {
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

type productPayload struct {
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

type resultPayload struct {
	Product           productPayload `json:"product"`
	RelevanceScore    int            `json:"relevance_score"`
	MatchedAttributes []string       `json:"matched_attributes"`
	IntentMatch       bool           `json:"intent_match"`
}

// searchResponsePayload is the success envelope.
type searchResponsePayload struct {
	Success    bool            `json:"success"`
	Query      string          `json:"query"`
	Intent     intentPayload   `json:"intent"`
	Results    []resultPayload `json:"results"`
	TotalFound int             `json:"total_found"`
	SearchTime string          `json:"search_time"`
}

// errorResponsePayload is the failure envelope.
type errorResponsePayload struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details"`
}

type healthResponsePayload struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func filtersFromPayload(p *filtersPayload) request.Filters {
	if p == nil {
		return request.Filters{}
	}
	return request.Filters{
		Category: p.Category,
		Material: p.Material,
		Color:    p.Color,
		Style:    p.Style,
		Room:     p.Room,
		PriceMin: p.PriceMin,
		PriceMax: p.PriceMax,
	}
}

func intentToPayload(it *domintent.Intent) intentPayload {
	keywords := it.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	return intentPayload{
		Category:   it.Category,
		Color:      it.Color,
		Material:   it.Material,
		Style:      it.Style,
		Room:       it.Room,
		Shape:      it.Shape,
		PriceMin:   it.PriceMin,
		PriceMax:   it.PriceMax,
		Keywords:   keywords,
		Confidence: it.Confidence,
	}
}

func resultToPayload(r *result.Result) resultPayload {
	p := r.Product()
	matched := r.MatchedAttributes()
	if matched == nil {
		matched = []string{}
	}
	return resultPayload{
		Product: productPayload{
			ID:          p.ID,
			Title:       p.Title,
			Description: p.Description,
			Category:    p.Category,
			Type:        p.Type,
			Material:    p.Material,
			Fabric:      p.Fabric,
			Color:       p.Color,
			Style:       p.Style,
			Room:        p.Room,
			Price:       p.Price,
			StockQty:    p.StockQty,
		},
		RelevanceScore:    r.Score(),
		MatchedAttributes: matched,
		IntentMatch:       r.IntentMatch(),
	}
}

func searchResponseToPayload(query string, resp *searchuc.Response, at time.Time) searchResponsePayload {
	results := make([]resultPayload, len(resp.Results))
	for i := range resp.Results {
		results[i] = resultToPayload(&resp.Results[i])
	}
	return searchResponsePayload{
		Success:    true,
		Query:      query,
		Intent:     intentToPayload(&resp.Intent),
		Results:    results,
		TotalFound: resp.TotalFound,
		SearchTime: at.UTC().Format(time.RFC3339),
	}
}
