package intent

import (
	"reflect"
	"testing"
)

func TestClampConfidence(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{-5, 0}, {0, 0}, {50, 50}, {100, 100}, {120, 100},
	}
	for _, tc := range tests {
		if got := ClampConfidence(tc.in); got != tc.want {
			t.Errorf("ClampConfidence(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestDerivedConfidence(t *testing.T) {
	price := 500.0

	tests := []struct {
		name string
		it   Intent
		want int
	}{
		{"nothing detected", Intent{}, 30},
		{"category only", Intent{Category: "table"}, 55},
		{"category color style price clamps at 100", Intent{
			Category: "canapé", Color: "bleu", Style: "moderne", PriceMax: &price,
		}, 100},
		{"category shape material", Intent{
			Category: "table", Shape: "rond", Material: "travertin",
		}, 85},
		{"everything exceeds 100 before clamp", Intent{
			Category: "canapé", Color: "bleu", Material: "cuir", Style: "moderne",
			Room: "salon", Shape: "rond", PriceMax: &price,
		}, 100},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.it.DerivedConfidence(); got != tc.want {
				t.Errorf("DerivedConfidence() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestKeywordsFromQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"stopwords dropped", "table pour le salon", []string{"table", "salon"}},
		{"short tokens dropped", "un lit en chêne", []string{"lit", "chêne"}},
		{"order preserved", "canapé bleu moderne sous 500",
			[]string{"canapé", "bleu", "moderne", "sous", "500"}},
		{"lowercased", "Canapé BLEU", []string{"canapé", "bleu"}},
		{"empty query", "", nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := KeywordsFromQuery(tc.query); !reflect.DeepEqual(got, tc.want) {
				t.Errorf("KeywordsFromQuery(%q) = %v, want %v", tc.query, got, tc.want)
			}
		})
	}
}
