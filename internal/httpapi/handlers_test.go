package httpapi

import (
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"retailpulse/backend/internal/domain"
	"retailpulse/backend/internal/generator"
	"retailpulse/backend/internal/metrics"
	"retailpulse/backend/internal/service"
	"retailpulse/backend/internal/store/memory"
)

var testNow = time.Date(2026, time.March, 14, 10, 30, 0, 0, time.UTC)

// newTestAPI builds a full API over an in-memory store and a seeded
// generator so handler tests exercise the complete request path.
func newTestAPI(t *testing.T, regeneratePerMinute int) *API {
	t.Helper()

	gen := generator.New(generator.Config{
		Seed:     7,
		Location: time.UTC,
		Now:      func() time.Time { return testNow },
	})
	m := metrics.New()
	svc := service.New(memory.New(), nil, gen, time.Hour, m)

	return New(svc, m, "*", regeneratePerMinute)
}

func serve(t *testing.T, handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(out); err != nil {
		t.Fatalf("decode body: %v (body: %s)", err, rec.Body.String())
	}
}

func TestHandleHealth(t *testing.T) {
	handler := newTestAPI(t, 6).Handler()

	rec := serve(t, handler, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body map[string]any
	decodeBody(t, rec, &body)
	if body["ok"] != true {
		t.Fatalf("expected ok:true, got %v", body["ok"])
	}
}

func TestHandleStoresListsAllStores(t *testing.T) {
	handler := newTestAPI(t, 6).Handler()

	rec := serve(t, handler, httptest.NewRequest(http.MethodGet, "/api/v1/stores", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (body: %s)", rec.Code, rec.Body.String())
	}

	var body struct {
		Stores []domain.StoreSummary `json:"stores"`
	}
	decodeBody(t, rec, &body)
	if len(body.Stores) != 3 {
		t.Fatalf("expected 3 stores, got %d", len(body.Stores))
	}
	if body.Stores[1].Store.Location != "Coimbatore, Tamil Nadu" {
		t.Fatalf("unexpected store location %q", body.Stores[1].Store.Location)
	}
}

func TestHandleStoreDataReturnsFullRecord(t *testing.T) {
	handler := newTestAPI(t, 6).Handler()

	rec := serve(t, handler, httptest.NewRequest(http.MethodGet, "/api/v1/stores/chennai", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (body: %s)", rec.Code, rec.Body.String())
	}

	var data domain.StoreData
	decodeBody(t, rec, &data)
	if data.StoreID != domain.StoreChennai {
		t.Fatalf("expected Chennai, got %q", data.StoreID)
	}
	if len(data.SalesHistory) != generator.SalesHistoryDays {
		t.Fatalf("expected %d sales points, got %d", generator.SalesHistoryDays, len(data.SalesHistory))
	}
	if len(data.RegionalSales) != len(generator.Districts()) {
		t.Fatalf("expected %d regions, got %d", len(generator.Districts()), len(data.RegionalSales))
	}
}

func TestHandleStoreDataUnknownStoreReturns404(t *testing.T) {
	handler := newTestAPI(t, 6).Handler()

	for _, path := range []string{"/api/v1/stores/madurai", "/api/v1/stores/madurai/kpi"} {
		rec := serve(t, handler, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusNotFound {
			t.Fatalf("%s: expected 404, got %d", path, rec.Code)
		}
	}
}

func TestHandleStoreDataUnknownSectionReturns404(t *testing.T) {
	handler := newTestAPI(t, 6).Handler()

	rec := serve(t, handler, httptest.NewRequest(http.MethodGet, "/api/v1/stores/Tirupur/forecast", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestHandleStoreDataDownloads(t *testing.T) {
	handler := newTestAPI(t, 6).Handler()

	rec := serve(t, handler, httptest.NewRequest(http.MethodGet, "/api/v1/stores/Tirupur?format=json", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "beelittle-tirupur-analytics.json") {
		t.Fatalf("unexpected Content-Disposition %q", got)
	}
	if !strings.Contains(rec.Body.String(), "\n  \"storeId\": \"Tirupur\"") {
		t.Fatalf("expected indented json export, got %.120s", rec.Body.String())
	}

	rec = serve(t, handler, httptest.NewRequest(http.MethodGet, "/api/v1/stores/Tirupur?format=yaml", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "beelittle-tirupur-analytics.yaml") {
		t.Fatalf("unexpected Content-Disposition %q", got)
	}
	var exported map[string]any
	if err := yaml.Unmarshal(rec.Body.Bytes(), &exported); err != nil {
		t.Fatalf("yaml export does not parse: %v", err)
	}
	if exported["storeId"] != "Tirupur" {
		t.Fatalf("expected storeId Tirupur in yaml export, got %v", exported["storeId"])
	}

	rec = serve(t, handler, httptest.NewRequest(http.MethodGet, "/api/v1/stores/Tirupur?format=xml", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unsupported format, got %d", rec.Code)
	}
}

func TestHandleSalesCSV(t *testing.T) {
	handler := newTestAPI(t, 6).Handler()

	rec := serve(t, handler, httptest.NewRequest(http.MethodGet, "/api/v1/stores/Coimbatore/sales?format=csv", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/csv") {
		t.Fatalf("expected csv content type, got %q", got)
	}

	rows, err := csv.NewReader(strings.NewReader(rec.Body.String())).ReadAll()
	if err != nil {
		t.Fatalf("csv does not parse: %v", err)
	}
	daily := 0
	for _, row := range rows {
		if row[0] == "daily" {
			daily++
		}
	}
	if daily != generator.SalesHistoryDays {
		t.Fatalf("expected %d daily rows, got %d", generator.SalesHistoryDays, daily)
	}
}

func TestHandleOrdersFilters(t *testing.T) {
	handler := newTestAPI(t, 6).Handler()

	rec := serve(t, handler, httptest.NewRequest(http.MethodGet, "/api/v1/stores/Chennai/orders?status=completed", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (body: %s)", rec.Code, rec.Body.String())
	}
	var body struct {
		Orders []domain.Order `json:"orders"`
	}
	decodeBody(t, rec, &body)
	for _, order := range body.Orders {
		if order.Status != domain.OrderCompleted {
			t.Fatalf("expected only Completed orders, got %q", order.Status)
		}
	}

	rec = serve(t, handler, httptest.NewRequest(http.MethodGet, "/api/v1/stores/Chennai/orders?status=lost", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status, got %d", rec.Code)
	}
}

func TestHandleRegionsSearch(t *testing.T) {
	handler := newTestAPI(t, 6).Handler()

	rec := serve(t, handler, httptest.NewRequest(http.MethodGet, "/api/v1/stores/Chennai/regions?q=coim", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		Regions []domain.RegionalSales `json:"regions"`
	}
	decodeBody(t, rec, &body)
	if len(body.Regions) != 1 || body.Regions[0].Region != "Coimbatore" {
		t.Fatalf("expected only Coimbatore, got %+v", body.Regions)
	}
}

func TestHandleSectionViews(t *testing.T) {
	handler := newTestAPI(t, 6).Handler()

	for _, section := range []string{"kpi", "sales", "inventory", "campaigns", "documents"} {
		rec := serve(t, handler, httptest.NewRequest(http.MethodGet, "/api/v1/stores/Tirupur/"+section, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d (body: %s)", section, rec.Code, rec.Body.String())
		}
		if got := rec.Header().Get("Content-Type"); got != "application/json" {
			t.Fatalf("%s: expected application/json, got %q", section, got)
		}
	}
}

func TestHandleMetricsExposesGenerationCounter(t *testing.T) {
	handler := newTestAPI(t, 6).Handler()

	_ = serve(t, handler, httptest.NewRequest(http.MethodGet, "/api/v1/stores/Tirupur/kpi", nil))
	rec := serve(t, handler, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "retailpulse_store_generations_total") {
		t.Fatalf("expected generation counter in metrics output")
	}
}
