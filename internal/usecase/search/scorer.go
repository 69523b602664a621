package search

import (
	"github.com/meublia-cloud/furndex/internal/domain/catalog"
	domintent "github.com/meublia-cloud/furndex/internal/domain/search/intent"
)

// Relevance points per matched rule. Terms are independent and
// order-insensitive; the total is clamped to [0, 100] at the end rather
// than normalized.
const (
	categoryPoints = 40
	colorPoints    = 25
	materialPoints = 25
	stylePoints    = 20
	roomPoints     = 15
	pricePoints    = 10
	keywordPoints  = 5
)

// scoreProduct computes the relevance score and the matched-attribute
// labels for one candidate. Price and keyword matches contribute points but
// no label.
func scoreProduct(p *catalog.Product, it *domintent.Intent) (int, []string) {
	score := 0
	var matched []string

	// Category matches on either type or category, same rule as retrieval.
	if it.Category != "" &&
		(catalog.AttrContains(p.Type, it.Category) || catalog.AttrContains(p.Category, it.Category)) {
		score += categoryPoints
		matched = append(matched, "category")
	}

	if it.Color != "" && catalog.AttrContains(p.Color, it.Color) {
		score += colorPoints
		matched = append(matched, "color")
	}

	// Material is checked against both material and fabric.
	if it.Material != "" &&
		(catalog.AttrContains(p.Material, it.Material) || catalog.AttrContains(p.Fabric, it.Material)) {
		score += materialPoints
		matched = append(matched, "material")
	}

	if it.Style != "" && catalog.AttrContains(p.Style, it.Style) {
		score += stylePoints
		matched = append(matched, "style")
	}

	if it.Room != "" && catalog.AttrContains(p.Room, it.Room) {
		score += roomPoints
		matched = append(matched, "room")
	}

	if it.PriceMax != nil && p.Price <= *it.PriceMax {
		score += pricePoints
	}

	// Uncapped per keyword; the final clamp bounds the total.
	for _, kw := range it.Keywords {
		if catalog.TextContains(p.Title, kw) || catalog.TextContains(p.Description, kw) {
			score += keywordPoints
		}
	}

	if score > 100 {
		score = 100
	}
	return score, matched
}
