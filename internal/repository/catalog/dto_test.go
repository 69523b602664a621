package catalog

import (
	"testing"

	domcatalog "github.com/meublia-cloud/furndex/internal/domain/catalog"
)

func TestProductFromFields(t *testing.T) {
	fields := map[string]string{
		"id":          "p42",
		"title":       "Fauteuil scandinave",
		"description": "Fauteuil en tissu gris",
		"category":    "fauteuil",
		"fabric":      "tissu",
		"color":       "gris",
		"price":       "349.99",
		"stock_qty":   "7",
	}

	p := productFromFields("furndex:shop-1:product:p42", fields)

	if p.ID != "p42" || p.Title != "Fauteuil scandinave" {
		t.Errorf("identity fields = %q %q", p.ID, p.Title)
	}
	if p.Price != 349.99 || p.StockQty != 7 {
		t.Errorf("numeric fields = %v %v", p.Price, p.StockQty)
	}
	if p.Fabric == nil || *p.Fabric != "tissu" {
		t.Error("fabric not mapped")
	}
	if p.Material != nil || p.Style != nil || p.Room != nil || p.Type != nil {
		t.Error("absent attributes must stay nil")
	}
}

func TestProductFromFields_IDFromKeySuffix(t *testing.T) {
	p := productFromFields("furndex:shop-1:product:p7", map[string]string{
		"title": "Lit double",
	})
	if p.ID != "p7" {
		t.Errorf("id = %q, want key suffix", p.ID)
	}
}

func TestProductFromFields_EmptyStringIsNotAbsent(t *testing.T) {
	p := productFromFields("k", map[string]string{"color": ""})
	if p.Color == nil || *p.Color != "" {
		t.Error("present empty field must map to empty string, not nil")
	}
}

func TestFieldsRoundTrip(t *testing.T) {
	color := "bleu"
	in := domcatalog.Product{
		ID:          "p1",
		Title:       "Canapé d'angle",
		Description: "Canapé d'angle bleu",
		Color:       &color,
		Price:       899,
		StockQty:    2,
	}

	fields := fieldsFromProduct(&in)
	if _, ok := fields["material"]; ok {
		t.Fatal("unset attributes must be omitted from the hash")
	}

	out := productFromFields("furndex:shop-1:product:p1", fields)
	if out.ID != in.ID || out.Title != in.Title || out.Description != in.Description {
		t.Errorf("identity mismatch: %+v", out)
	}
	if out.Color == nil || *out.Color != "bleu" {
		t.Error("color dropped on round trip")
	}
	if out.Material != nil {
		t.Error("absence not preserved on round trip")
	}
	if out.Price != 899 || out.StockQty != 2 {
		t.Errorf("numerics = %v %v", out.Price, out.StockQty)
	}
}
