package search

import (
	"reflect"
	"testing"

	"github.com/meublia-cloud/furndex/internal/domain/catalog"
	domintent "github.com/meublia-cloud/furndex/internal/domain/search/intent"
)

func f64(v float64) *float64 { return &v }

func TestScoreProduct_CategoryAndColor(t *testing.T) {
	p := catalog.Product{
		ID:       "p1",
		Title:    "Sofa trois places",
		Category: catalog.StringPtr("canapé"),
		Color:    catalog.StringPtr("bleu"),
		Price:    450,
		StockQty: 3,
	}
	it := domintent.Intent{Category: "canapé", Color: "bleu", Style: "moderne", PriceMax: f64(500)}

	score, matched := scoreProduct(&p, &it)

	// 40 category + 25 color + 10 price; style does not match.
	if score != 75 {
		t.Errorf("score = %d, want 75", score)
	}
	if !reflect.DeepEqual(matched, []string{"category", "color"}) {
		t.Errorf("matched = %v, want [category color]", matched)
	}
}

func TestScoreProduct_CategoryViaType(t *testing.T) {
	p := catalog.Product{
		ID:    "p2",
		Title: "Canapé d'angle",
		Type:  catalog.StringPtr("canapé d'angle"),
	}
	it := domintent.Intent{Category: "canapé"}

	score, matched := scoreProduct(&p, &it)
	if score != 40 {
		t.Errorf("score = %d, want 40 via type attribute", score)
	}
	if !reflect.DeepEqual(matched, []string{"category"}) {
		t.Errorf("matched = %v, want [category]", matched)
	}
}

func TestScoreProduct_MaterialViaFabric(t *testing.T) {
	p := catalog.Product{
		ID:     "p3",
		Title:  "Fauteuil club",
		Fabric: catalog.StringPtr("velours côtelé"),
	}
	it := domintent.Intent{Material: "velours"}

	score, matched := scoreProduct(&p, &it)
	if score != 25 {
		t.Errorf("score = %d, want 25 via fabric attribute", score)
	}
	if !reflect.DeepEqual(matched, []string{"material"}) {
		t.Errorf("matched = %v, want [material]", matched)
	}
}

func TestScoreProduct_KeywordsInTitleAndDescription(t *testing.T) {
	p := catalog.Product{
		ID:          "p4",
		Title:       "Table basse scandinave",
		Description: "Plateau en chêne massif pour le salon",
	}
	it := domintent.Intent{Keywords: []string{"basse", "chêne", "inexistant"}}

	score, matched := scoreProduct(&p, &it)
	// 5 per matched keyword; no attribute labels for keyword hits.
	if score != 10 {
		t.Errorf("score = %d, want 10", score)
	}
	if len(matched) != 0 {
		t.Errorf("matched = %v, want empty for keyword-only hits", matched)
	}
}

func TestScoreProduct_PriceOnlyWhenMaxSet(t *testing.T) {
	p := catalog.Product{ID: "p5", Title: "Tabouret", Price: 40}

	it := domintent.Intent{}
	if score, _ := scoreProduct(&p, &it); score != 0 {
		t.Errorf("score = %d, want 0 without a price bound", score)
	}

	it.PriceMax = f64(50)
	if score, _ := scoreProduct(&p, &it); score != 10 {
		t.Errorf("score = %d, want 10 when under price_max", score)
	}

	it.PriceMax = f64(30)
	if score, _ := scoreProduct(&p, &it); score != 0 {
		t.Errorf("score = %d, want 0 when over price_max", score)
	}
}

func TestScoreProduct_ClampedAt100(t *testing.T) {
	p := catalog.Product{
		ID:          "p6",
		Title:       "Canapé bleu moderne velours salon",
		Description: "canapé bleu moderne velours salon confort",
		Category:    catalog.StringPtr("canapé"),
		Color:       catalog.StringPtr("bleu"),
		Material:    catalog.StringPtr("velours"),
		Style:       catalog.StringPtr("moderne"),
		Room:        catalog.StringPtr("salon"),
		Price:       100,
	}
	it := domintent.Intent{
		Category: "canapé", Color: "bleu", Material: "velours",
		Style: "moderne", Room: "salon", PriceMax: f64(500),
		Keywords: []string{"canapé", "bleu", "moderne", "velours", "salon"},
	}

	score, matched := scoreProduct(&p, &it)
	if score != 100 {
		t.Errorf("score = %d, want clamp at 100", score)
	}
	want := []string{"category", "color", "material", "style", "room"}
	if !reflect.DeepEqual(matched, want) {
		t.Errorf("matched = %v, want %v", matched, want)
	}
}
