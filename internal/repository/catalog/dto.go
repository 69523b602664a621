package catalog

import (
	"strconv"
	"strings"

	domcatalog "github.com/meublia-cloud/furndex/internal/domain/catalog"
)

// productFromFields maps a product hash to the domain type. Attribute
// fields absent from the hash stay nil: absence is distinguishable from an
// empty string.
func productFromFields(key string, fields map[string]string) domcatalog.Product {
	p := domcatalog.Product{
		ID:          fields["id"],
		Title:       fields["title"],
		Description: fields["description"],
	}
	if p.ID == "" {
		// Fall back to the key suffix for hashes written without an id field.
		if idx := strings.LastIndex(key, ":"); idx >= 0 {
			p.ID = key[idx+1:]
		}
	}

	p.Category = optional(fields, "category")
	p.Type = optional(fields, "type")
	p.Material = optional(fields, "material")
	p.Fabric = optional(fields, "fabric")
	p.Color = optional(fields, "color")
	p.Style = optional(fields, "style")
	p.Room = optional(fields, "room")

	if v, err := strconv.ParseFloat(fields["price"], 64); err == nil {
		p.Price = v
	}
	if v, err := strconv.Atoi(fields["stock_qty"]); err == nil {
		p.StockQty = v
	}
	return p
}

func optional(fields map[string]string, name string) *string {
	if v, ok := fields[name]; ok {
		return &v
	}
	return nil
}

// fieldsFromProduct maps a domain product to hash fields, omitting unset
// attributes so that reads round-trip absence.
func fieldsFromProduct(p *domcatalog.Product) map[string]string {
	fields := map[string]string{
		"id":          p.ID,
		"title":       p.Title,
		"description": p.Description,
		"price":       strconv.FormatFloat(p.Price, 'f', -1, 64),
		"stock_qty":   strconv.Itoa(p.StockQty),
	}
	setOptional(fields, "category", p.Category)
	setOptional(fields, "type", p.Type)
	setOptional(fields, "material", p.Material)
	setOptional(fields, "fabric", p.Fabric)
	setOptional(fields, "color", p.Color)
	setOptional(fields, "style", p.Style)
	setOptional(fields, "room", p.Room)
	return fields
}

func setOptional(fields map[string]string, name string, v *string) {
	if v != nil {
		fields[name] = *v
	}
}
