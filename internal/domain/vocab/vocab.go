package vocab

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Field identifies a controlled-vocabulary product attribute.
type Field string

const (
	// Category is the product kind (canapé, table, ...).
	Category Field = "category"
	// Color is the dominant color.
	Color Field = "color"
	// Material is the primary material or fabric.
	Material Field = "material"
	// Style is the design style.
	Style Field = "style"
	// Room is the intended room.
	Room Field = "room"
	// Shape is the geometric shape.
	Shape Field = "shape"
)

// Value sets are declared in scan order. Extraction takes the first value
// found in the query, so the order here is behavior, not presentation:
// reordering a slice changes which value wins on ambiguous queries.
var (
	categories = []string{
		"canapé", "table", "chaise", "fauteuil", "lit", "armoire",
		"bureau", "étagère", "commode", "buffet", "console", "tabouret",
		"banc", "miroir", "lampe", "tapis",
	}
	colors = []string{
		"bleu", "rouge", "vert", "jaune", "noir", "blanc", "gris",
		"beige", "marron", "rose", "orange", "violet", "doré", "argenté",
	}
	materials = []string{
		"bois", "chêne", "noyer", "métal", "verre", "cuir", "tissu",
		"velours", "travertin", "marbre", "rotin", "osier", "céramique",
	}
	styles = []string{
		"moderne", "contemporain", "scandinave", "industriel", "vintage",
		"rustique", "classique", "minimaliste", "bohème", "art déco",
	}
	rooms = []string{
		"salon", "chambre", "cuisine", "bureau", "salle à manger",
		"entrée", "salle de bain", "terrasse", "jardin",
	}
	shapes = []string{"rond", "carré", "rectangulaire", "ovale"}
)

// Fields returns the categorical fields in the fixed extraction scan order.
func Fields() []Field {
	return []Field{Category, Color, Material, Style, Room, Shape}
}

// Values returns the scan-ordered value set for f. The returned slice is
// shared; callers must not mutate it.
func Values(f Field) []string {
	switch f {
	case Category:
		return categories
	case Color:
		return colors
	case Material:
		return materials
	case Style:
		return styles
	case Room:
		return rooms
	case Shape:
		return shapes
	default:
		return nil
	}
}

// FirstMatch returns the first value of f that occurs in the lowercased
// query starting at a word boundary, or "" when none does. First match wins
// even when a later value would be a longer or more specific match.
func FirstMatch(f Field, query string) string {
	q := strings.ToLower(query)
	for _, v := range Values(f) {
		if matchesAtWordStart(q, v) {
			return v
		}
	}
	return ""
}

// matchesAtWordStart reports whether v occurs in q beginning at a word
// boundary. A value may extend into a longer word ("rond" matches "ronde")
// but must not start inside one ("vert" must not match "travertin").
func matchesAtWordStart(q, v string) bool {
	for from := 0; ; {
		idx := strings.Index(q[from:], v)
		if idx < 0 {
			return false
		}
		idx += from
		if idx == 0 {
			return true
		}
		prev, _ := utf8.DecodeLastRuneInString(q[:idx])
		if !unicode.IsLetter(prev) && !unicode.IsDigit(prev) {
			return true
		}
		from = idx + 1
	}
}

// Contains reports whether v is a legal value for f.
func Contains(f Field, v string) bool {
	for _, known := range Values(f) {
		if known == v {
			return true
		}
	}
	return false
}
