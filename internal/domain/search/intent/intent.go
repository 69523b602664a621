package intent

import (
	"strings"
	"unicode/utf8"
)

// Confidence contributions per detected field. The sum can exceed 100
// before clamping (category+color+material+style+price alone reach 120);
// clamping, not normalization, is the contract.
const (
	BaseConfidence   = 30
	categoryWeight   = 25
	colorWeight      = 20
	materialWeight   = 20
	styleWeight      = 15
	roomWeight       = 10
	shapeWeight      = 10
	priceMaxWeight   = 10
	minKeywordLength = 3
)

// Intent is a structured reading of a free-text shopper query. It is
// request-scoped: produced fresh per query and never persisted.
// An empty categorical field or nil price bound means "no constraint".
type Intent struct {
	Category string
	Color    string
	Material string
	Style    string
	Room     string
	Shape    string
	PriceMin *float64
	PriceMax *float64
	// Keywords are lowercase tokens in query appearance order.
	Keywords   []string
	Confidence int
}

// ClampConfidence bounds v to [0, 100].
func ClampConfidence(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// DerivedConfidence computes the confidence implied by the detected fields:
// base plus the per-field weights, clamped to 100. Used by the rule-based
// extractor and as a substitute when the model omits its own estimate.
func (i *Intent) DerivedConfidence() int {
	c := BaseConfidence
	if i.Category != "" {
		c += categoryWeight
	}
	if i.Color != "" {
		c += colorWeight
	}
	if i.Material != "" {
		c += materialWeight
	}
	if i.Style != "" {
		c += styleWeight
	}
	if i.Room != "" {
		c += roomWeight
	}
	if i.Shape != "" {
		c += shapeWeight
	}
	if i.PriceMax != nil {
		c += priceMaxWeight
	}
	return ClampConfidence(c)
}

// stopwords excluded from keyword extraction (articles, prepositions).
var stopwords = map[string]struct{}{
	"le": {}, "la": {}, "les": {}, "un": {}, "une": {}, "des": {},
	"du": {}, "de": {}, "pour": {}, "avec": {}, "sans": {}, "dans": {},
	"sur": {},
}

// KeywordsFromQuery splits the query on whitespace and keeps lowercase
// tokens longer than two runes that are not stopwords, preserving
// appearance order.
func KeywordsFromQuery(query string) []string {
	var out []string
	for _, tok := range strings.Fields(strings.ToLower(query)) {
		if utf8.RuneCountInString(tok) < minKeywordLength {
			continue
		}
		if _, stop := stopwords[tok]; stop {
			continue
		}
		out = append(out, tok)
	}
	return out
}
