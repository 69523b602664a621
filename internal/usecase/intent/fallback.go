package intent

import (
	"context"

	"go.uber.org/zap"

	domintent "github.com/meublia-cloud/furndex/internal/domain/search/intent"
	"github.com/meublia-cloud/furndex/internal/metrics"
)

// FallbackExtractor runs the primary extractor and delegates entirely to
// the secondary on any error — a pure fallback, never a merge. Extraction
// degradation is not surfaced to the caller: the request proceeds with the
// secondary's intent. There is no retry of the primary.
type FallbackExtractor struct {
	primary   Extractor
	secondary Extractor
	logger    *zap.Logger
}

// NewFallbackExtractor composes two extractors. The secondary must be
// infallible (in practice the rule-based extractor).
func NewFallbackExtractor(primary, secondary Extractor, logger *zap.Logger) *FallbackExtractor {
	return &FallbackExtractor{primary: primary, secondary: secondary, logger: logger}
}

// Extract implements Extractor.
func (f *FallbackExtractor) Extract(ctx context.Context, query string) (domintent.Intent, error) {
	it, err := f.primary.Extract(ctx, query)
	if err != nil {
		metrics.IntentExtractionsTotal.WithLabelValues(metrics.StrategyAI, metrics.OutcomeFallback).Inc()
		f.logger.Warn("intent extraction degraded to rules",
			zap.Error(err),
			zap.Int("query_len", len(query)),
		)
		return f.secondary.Extract(ctx, query)
	}

	metrics.IntentExtractionsTotal.WithLabelValues(metrics.StrategyAI, metrics.OutcomeSuccess).Inc()
	return it, nil
}
