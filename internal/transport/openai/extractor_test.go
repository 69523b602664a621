package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestParseIntent(t *testing.T) {
	it, err := parseIntent(`{
		"category": "canapé", "color": "bleu", "material": "",
		"style": "moderne", "room": "", "shape": "",
		"price_min": null, "price_max": 500,
		"keywords": ["canapé", "bleu", "moderne"],
		"confidence": 95
	}`, "canapé bleu moderne sous 500")
	if err != nil {
		t.Fatalf("parseIntent failed: %v", err)
	}
	if it.Category != "canapé" || it.Color != "bleu" || it.Style != "moderne" {
		t.Errorf("categorical fields = %+v", it)
	}
	if it.PriceMax == nil || *it.PriceMax != 500 {
		t.Error("price_max not parsed")
	}
	if it.Confidence != 95 {
		t.Errorf("confidence = %d, want model value", it.Confidence)
	}
}

func TestParseIntent_StripsCodeFence(t *testing.T) {
	it, err := parseIntent("```json\n{\"category\": \"table\", \"keywords\": [\"table\"], \"confidence\": 60}\n```", "table")
	if err != nil {
		t.Fatalf("parseIntent failed: %v", err)
	}
	if it.Category != "table" {
		t.Errorf("category = %q", it.Category)
	}
}

func TestParseIntent_OutOfVocabulary(t *testing.T) {
	_, err := parseIntent(`{"category": "spaceship", "confidence": 90}`, "spaceship")
	if err == nil {
		t.Fatal("out-of-vocabulary category must fail extraction")
	}
}

func TestParseIntent_MalformedJSON(t *testing.T) {
	_, err := parseIntent("the user wants a blue sofa", "canapé bleu")
	if err == nil {
		t.Fatal("prose output must fail extraction")
	}
}

func TestParseIntent_FillsKeywordsAndConfidence(t *testing.T) {
	it, err := parseIntent(`{"category": "lit", "keywords": [], "confidence": 0}`, "lit double chambre")
	if err != nil {
		t.Fatalf("parseIntent failed: %v", err)
	}
	if len(it.Keywords) == 0 {
		t.Error("empty keywords must be derived from the query")
	}
	// base 30 + category 25
	if it.Confidence != 55 {
		t.Errorf("confidence = %d, want derived 55", it.Confidence)
	}
}

func TestParseIntent_NormalizesCase(t *testing.T) {
	it, err := parseIntent(`{"color": "Bleu", "keywords": ["Bleu "], "confidence": 50}`, "bleu")
	if err != nil {
		t.Fatalf("parseIntent failed: %v", err)
	}
	if it.Color != "bleu" || it.Keywords[0] != "bleu" {
		t.Errorf("normalization: color=%q keywords=%v", it.Color, it.Keywords)
	}
}

func TestSystemPrompt_ListsVocabulary(t *testing.T) {
	p := systemPrompt()
	for _, want := range []string{"canapé", "travertin", "scandinave", "salle à manger", "rond"} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing vocabulary value %q", want)
		}
	}
}

func TestExtractor_Extract(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("unexpected auth header: %s", r.Header.Get("Authorization"))
		}

		var req struct {
			Temperature float32 `json:"temperature"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		if req.Temperature != 0 {
			t.Errorf("temperature = %v, want 0", req.Temperature)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{
				"message": map[string]any{
					"role":    "assistant",
					"content": `{"category": "fauteuil", "color": "gris", "keywords": ["fauteuil", "gris"], "confidence": 80}`,
				},
			}},
		})
	}))
	defer server.Close()

	ext := NewExtractor(&Config{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Model:   "test-model",
		Logger:  zap.NewNop(),
	})

	it, err := ext.Extract(context.Background(), "fauteuil gris")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if it.Category != "fauteuil" || it.Color != "gris" || it.Confidence != 80 {
		t.Errorf("intent = %+v", it)
	}
}

func TestExtractor_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error": {"message": "quota exceeded"}}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	ext := NewExtractor(&Config{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Model:   "test-model",
		Logger:  zap.NewNop(),
	})

	if _, err := ext.Extract(context.Background(), "canapé"); err == nil {
		t.Fatal("API failure must surface as an error for the fallback path")
	}
}
