package result

import "github.com/meublia-cloud/furndex/internal/domain/catalog"

// Result is a single scored search hit. Request-scoped; the product is a
// read-only reference, not owned.
type Result struct {
	product catalog.Product
	score   int
	matched []string
}

// New creates a scored result. The score is clamped to [0, 100].
func New(product catalog.Product, score int, matched []string) Result {
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return Result{product: product, score: score, matched: matched}
}

// Product returns the matched product.
func (r *Result) Product() catalog.Product { return r.product }

// Score returns the relevance score in [0, 100].
func (r *Result) Score() int { return r.score }

// MatchedAttributes returns the attribute labels that contributed to the
// score (category, color, material, style, room).
func (r *Result) MatchedAttributes() []string { return r.matched }

// IntentMatch reports whether at least one intent attribute matched.
func (r *Result) IntentMatch() bool { return len(r.matched) > 0 }
