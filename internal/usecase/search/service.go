package search

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	domintent "github.com/meublia-cloud/furndex/internal/domain/search/intent"
	"github.com/meublia-cloud/furndex/internal/domain/search/request"
	"github.com/meublia-cloud/furndex/internal/domain/search/result"
	"github.com/meublia-cloud/furndex/internal/logger"
	"github.com/meublia-cloud/furndex/internal/metrics"
)

// Response is the outcome of one search pipeline run.
type Response struct {
	Intent domintent.Intent
	// Results is score-ordered and truncated to the request limit.
	Results []result.Result
	// TotalFound counts the candidates scored before truncation.
	TotalFound int
}

// Service orchestrates the pipeline: intent extraction, candidate
// retrieval, scoring, ranking. It is the only component that knows the
// whole flow; every stage below it is a pure function over its inputs.
type Service struct {
	extractor Extractor
	repo      Repository
	logger    *zap.Logger
}

// New creates a search service.
func New(extractor Extractor, repo Repository, log *zap.Logger) *Service {
	return &Service{extractor: extractor, repo: repo, logger: log}
}

// Search runs the full pipeline for one request. A catalog store failure
// degrades to an empty result set; it does not fail the request.
func (s *Service) Search(ctx context.Context, req *request.Request) (Response, error) {
	start := time.Now()

	it, err := s.extractor.Extract(ctx, req.Query())
	if err != nil {
		// Extractors are fallback-wrapped; an error here means even the
		// rule-based path broke, which is a programming error.
		metrics.SearchesTotal.WithLabelValues("error").Inc()
		return Response{}, fmt.Errorf("extract intent: %w", err)
	}

	candidates, err := s.repo.FindCandidates(
		ctx, req.RetailerID(), it, req.Filters(), req.Limit()*request.OverfetchFactor,
	)
	if err != nil {
		metrics.CatalogErrorsTotal.Inc()
		logger.FromContext(ctx).Warn("catalog retrieval failed, returning empty results",
			zap.Error(err),
			zap.String("retailer_id", req.RetailerID()),
		)
		candidates = nil
	}

	scored := make([]result.Result, 0, len(candidates))
	for i := range candidates {
		score, matched := scoreProduct(&candidates[i], &it)
		scored = append(scored, result.New(candidates[i], score, matched))
	}

	ranked := rank(scored, req.Limit())

	metrics.SearchesTotal.WithLabelValues("ok").Inc()
	metrics.SearchDuration.Observe(time.Since(start).Seconds())
	metrics.CandidatesScored.Observe(float64(len(scored)))

	return Response{Intent: it, Results: ranked, TotalFound: len(scored)}, nil
}
