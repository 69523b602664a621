package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	domcatalog "github.com/meublia-cloud/furndex/internal/domain/catalog"
	domintent "github.com/meublia-cloud/furndex/internal/domain/search/intent"
	"github.com/meublia-cloud/furndex/internal/domain/search/request"
	"github.com/meublia-cloud/furndex/internal/domain/search/result"
	healthuc "github.com/meublia-cloud/furndex/internal/usecase/health"
	searchuc "github.com/meublia-cloud/furndex/internal/usecase/search"
)

// --- Mocks ---

type mockSearch struct {
	resp    searchuc.Response
	err     error
	lastReq *request.Request
}

func (m *mockSearch) Search(_ context.Context, req *request.Request) (searchuc.Response, error) {
	m.lastReq = req
	return m.resp, m.err
}

type mockHealth struct {
	report healthuc.Report
}

func (m *mockHealth) Check(_ context.Context) healthuc.Report { return m.report }

func newTestRouter(search searchService, health healthService) http.Handler {
	return newTestRouterWithRetailer(search, health, "")
}

func newTestRouterWithRetailer(search searchService, health healthService, defaultRetailer string) http.Handler {
	srv := NewServer(search, health, defaultRetailer, zap.NewNop())
	r := chi.NewRouter()
	r.Use(CORSMiddleware())
	srv.Mount(r)
	return r
}

// --- Tests ---

func TestSearchProducts_Success(t *testing.T) {
	price := 500.0
	search := &mockSearch{resp: searchuc.Response{
		Intent: domintent.Intent{
			Category:   "canapé",
			Color:      "bleu",
			PriceMax:   &price,
			Keywords:   []string{"canapé", "bleu"},
			Confidence: 85,
		},
		Results: []result.Result{
			result.New(domcatalog.Product{ID: "p1", Title: "Canapé bleu", Price: 450, StockQty: 3},
				65, []string{"category", "color"}),
		},
		TotalFound: 1,
	}}

	router := newTestRouter(search, &mockHealth{})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/search",
		strings.NewReader(`{"query": "canapé bleu sous 500"}`))
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp searchResponsePayload
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success {
		t.Error("success = false")
	}
	if resp.Query != "canapé bleu sous 500" {
		t.Errorf("query = %q", resp.Query)
	}
	if resp.Intent.Category != "canapé" || resp.Intent.Confidence != 85 {
		t.Errorf("intent = %+v", resp.Intent)
	}
	if len(resp.Results) != 1 || resp.TotalFound != 1 {
		t.Fatalf("results = %d total = %d", len(resp.Results), resp.TotalFound)
	}
	r0 := resp.Results[0]
	if r0.RelevanceScore != 65 || !r0.IntentMatch {
		t.Errorf("result = %+v", r0)
	}
	if r0.Product.ID != "p1" || r0.Product.StockQty != 3 {
		t.Errorf("product = %+v", r0.Product)
	}
	if resp.SearchTime == "" {
		t.Error("search_time missing")
	}

	// Defaults applied before the pipeline runs.
	if search.lastReq.RetailerID() != request.DefaultRetailer {
		t.Errorf("retailer = %q", search.lastReq.RetailerID())
	}
	if search.lastReq.Limit() != request.DefaultLimit {
		t.Errorf("limit = %d", search.lastReq.Limit())
	}
}

func TestSearchProducts_ConfiguredDefaultRetailer(t *testing.T) {
	search := &mockSearch{}
	router := newTestRouterWithRetailer(search, &mockHealth{}, "meublia-shop")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/search", strings.NewReader(`{"query": "lampe"}`))
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if search.lastReq.RetailerID() != "meublia-shop" {
		t.Errorf("retailer = %q, want configured default", search.lastReq.RetailerID())
	}

	// An explicit retailer still wins over the configured default.
	req = httptest.NewRequest(http.MethodPost, "/api/search",
		strings.NewReader(`{"query": "lampe", "retailer_id": "shop-2"}`))
	router.ServeHTTP(httptest.NewRecorder(), req)
	if search.lastReq.RetailerID() != "shop-2" {
		t.Errorf("retailer = %q, want explicit shop-2", search.lastReq.RetailerID())
	}
}

func TestSearchProducts_ExplicitFiltersForwarded(t *testing.T) {
	search := &mockSearch{}
	router := newTestRouter(search, &mockHealth{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/search", strings.NewReader(
		`{"query": "table", "retailer_id": "shop-1", "limit": 5,
		  "filters": {"color": "noir", "price_max": 300}}`))
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	f := search.lastReq.Filters()
	if f.Color != "noir" || f.PriceMax == nil || *f.PriceMax != 300 {
		t.Errorf("filters = %+v", f)
	}
	if search.lastReq.Limit() != 5 || search.lastReq.RetailerID() != "shop-1" {
		t.Errorf("request = limit %d retailer %q", search.lastReq.Limit(), search.lastReq.RetailerID())
	}
}

func TestSearchProducts_MissingQuery(t *testing.T) {
	router := newTestRouter(&mockSearch{}, &mockHealth{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/search", strings.NewReader(`{}`))
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var resp errorResponsePayload
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Success {
		t.Error("success must be false")
	}
	if resp.Error == "" || resp.Details == "" {
		t.Errorf("envelope = %+v", resp)
	}
}

func TestSearchProducts_MalformedBody(t *testing.T) {
	router := newTestRouter(&mockSearch{}, &mockHealth{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/search", strings.NewReader(`{not json`))
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

func TestSearchProducts_PipelineError(t *testing.T) {
	search := &mockSearch{err: errors.New("extractor broken")}
	router := newTestRouter(search, &mockHealth{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/search", strings.NewReader(`{"query": "lit"}`))
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

func TestCORS_Preflight(t *testing.T) {
	router := newTestRouter(&mockSearch{}, &mockHealth{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/search", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("preflight status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("allow-origin = %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(got, "POST") {
		t.Errorf("allow-methods = %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Headers"); !strings.Contains(got, "Content-Type") {
		t.Errorf("allow-headers = %q", got)
	}
}

func TestCORS_HeadersOnActualRequest(t *testing.T) {
	router := newTestRouter(&mockSearch{}, &mockHealth{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/search", strings.NewReader(`{"query": "lampe"}`))
	router.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("allow-origin = %q", got)
	}
}

func TestHealthCheck(t *testing.T) {
	health := &mockHealth{report: healthuc.Report{
		Status: healthuc.Healthy,
		Checks: map[string]healthuc.CheckResult{"database": healthuc.CheckOK},
	}}
	router := newTestRouter(&mockSearch{}, health)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp healthResponsePayload
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "ok" || resp.Checks["database"] != "ok" {
		t.Errorf("health = %+v", resp)
	}
}

func TestHealthCheck_Degraded(t *testing.T) {
	health := &mockHealth{report: healthuc.Report{
		Status: healthuc.Degraded,
		Checks: map[string]healthuc.CheckResult{"database": healthuc.CheckError},
	}}
	router := newTestRouter(&mockSearch{}, health)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}
