package chi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/meublia-cloud/furndex/internal/domain/search/request"
	healthuc "github.com/meublia-cloud/furndex/internal/usecase/health"
	searchuc "github.com/meublia-cloud/furndex/internal/usecase/search"
)

// searchService is the consumer interface over the search pipeline.
type searchService interface {
	Search(ctx context.Context, req *request.Request) (searchuc.Response, error)
}

// healthService is the consumer interface over the health checks.
type healthService interface {
	Check(ctx context.Context) healthuc.Report
}

// Server carries the HTTP handlers for the search API.
type Server struct {
	search          searchService
	health          healthService
	defaultRetailer string
	logger          *zap.Logger
}

// NewServer creates an HTTP API server. defaultRetailer scopes requests
// without a retailer_id; empty falls back to request.DefaultRetailer.
func NewServer(search searchService, health healthService, defaultRetailer string, logger *zap.Logger) *Server {
	return &Server{
		search:          search,
		health:          health,
		defaultRetailer: defaultRetailer,
		logger:          logger,
	}
}

// Mount registers the API routes on the router.
func (s *Server) Mount(r chi.Router) {
	r.Post("/api/search", s.SearchProducts)
	r.Get("/healthz", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// SearchProducts handles POST /api/search. Any failure — malformed body,
// missing query, pipeline error — yields the 500 failure envelope; the
// success envelope always reports HTTP 200 even with zero results.
func (s *Server) SearchProducts(w http.ResponseWriter, r *http.Request) {
	var body searchRequestPayload
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeFailure(w, "invalid request body", err.Error())
		return
	}

	retailerID := body.RetailerID
	if retailerID == "" {
		retailerID = s.defaultRetailer
	}

	req, err := request.New(body.Query, retailerID, body.Limit, filtersFromPayload(body.Filters))
	if err != nil {
		writeFailure(w, "invalid search request", err.Error())
		return
	}

	resp, err := s.search.Search(r.Context(), &req)
	if err != nil {
		s.logger.Error("search pipeline failed",
			zap.Error(err),
			zap.String("retailer_id", req.RetailerID()),
		)
		writeFailure(w, "search failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, searchResponseToPayload(req.Query(), &resp, time.Now()))
}

// HealthCheck handles GET /healthz.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponsePayload{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeFailure(w http.ResponseWriter, message, details string) {
	writeJSON(w, http.StatusInternalServerError, errorResponsePayload{
		Success: false,
		Error:   message,
		Details: details,
	})
}
