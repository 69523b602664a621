package intent

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	domintent "github.com/meublia-cloud/furndex/internal/domain/search/intent"
	"github.com/meublia-cloud/furndex/internal/domain/vocab"
	"github.com/meublia-cloud/furndex/internal/metrics"
)

// priceMaxPattern captures "(sous|under|moins de|max|maximum) <integer>".
// The basic extractor has no pattern for a lower price bound.
var priceMaxPattern = regexp.MustCompile(`(?:moins de|sous|under|maximum|max)\s+(\d+)`)

// RuleExtractor is the deterministic dictionary/regex extractor. It is a
// pure function over the query: always available, used both standalone and
// as the fallback behind the AI strategy.
type RuleExtractor struct{}

// NewRuleExtractor creates a rule-based extractor.
func NewRuleExtractor() *RuleExtractor { return &RuleExtractor{} }

// Extract implements Extractor. It never returns an error.
func (e *RuleExtractor) Extract(_ context.Context, query string) (domintent.Intent, error) {
	q := strings.ToLower(query)

	it := domintent.Intent{
		Category: vocab.FirstMatch(vocab.Category, q),
		Color:    vocab.FirstMatch(vocab.Color, q),
		Material: vocab.FirstMatch(vocab.Material, q),
		Style:    vocab.FirstMatch(vocab.Style, q),
		Room:     vocab.FirstMatch(vocab.Room, q),
		Shape:    vocab.FirstMatch(vocab.Shape, q),
		Keywords: domintent.KeywordsFromQuery(q),
	}

	if m := priceMaxPattern.FindStringSubmatch(q); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			it.PriceMax = &v
		}
	}

	it.Confidence = it.DerivedConfidence()
	metrics.IntentExtractionsTotal.WithLabelValues(metrics.StrategyRules, metrics.OutcomeSuccess).Inc()
	return it, nil
}
