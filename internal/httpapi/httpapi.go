package httpapi

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/netip"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"retailpulse/backend/internal/domain"
	"retailpulse/backend/internal/metrics"
	"retailpulse/backend/internal/service"
	"retailpulse/backend/internal/store"
	"retailpulse/backend/internal/xid"
)

type API struct {
	service           *service.Service
	metrics           *metrics.Metrics
	allowedOrigin     string
	regenerateLimiter *attemptLimiter
	csrfSecret        []byte
}

func New(svc *service.Service, m *metrics.Metrics, allowedOrigin string, regeneratePerMinute int) *API {
	csrfSecret := make([]byte, 32)
	if _, err := rand.Read(csrfSecret); err != nil {
		csrfSecret = []byte("csrf-fallback-secret-change-me!!")
	}
	return &API{
		service:           svc,
		metrics:           m,
		allowedOrigin:     allowedOrigin,
		regenerateLimiter: newAttemptLimiter(regeneratePerMinute, time.Minute),
		csrfSecret:        csrfSecret,
	}
}

// csrfTokenForHour computes an HMAC-SHA256 token for the given hour bucket
// (Unix time truncated to the hour), hex-encoded.
func (a *API) csrfTokenForHour(hourBucket int64) string {
	h := hmac.New(sha256.New, a.csrfSecret)
	fmt.Fprintf(h, "%d", hourBucket)
	return hex.EncodeToString(h.Sum(nil))
}

func (a *API) generateCSRFToken() string {
	bucket := time.Now().UTC().Truncate(time.Hour).Unix()
	return a.csrfTokenForHour(bucket)
}

// validateCSRFToken accepts the current or previous hour bucket.
func (a *API) validateCSRFToken(token string) bool {
	if token == "" {
		return false
	}
	currentBucket := time.Now().UTC().Truncate(time.Hour).Unix()
	prevBucket := currentBucket - 3600

	return hmac.Equal([]byte(token), []byte(a.csrfTokenForHour(currentBucket))) ||
		hmac.Equal([]byte(token), []byte(a.csrfTokenForHour(prevBucket)))
}

type attemptLimiter struct {
	mu      sync.Mutex
	max     int
	window  time.Duration
	entries map[string][]time.Time
}

func newAttemptLimiter(max int, window time.Duration) *attemptLimiter {
	if max < 1 {
		max = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &attemptLimiter{max: max, window: window, entries: make(map[string][]time.Time)}
}

func (l *attemptLimiter) Allow(key string) bool {
	if l == nil {
		return true
	}
	now := time.Now()
	cutoff := now.Add(-l.window)

	l.mu.Lock()
	defer l.mu.Unlock()

	history := l.entries[key]
	kept := make([]time.Time, 0, len(history)+1)
	for _, ts := range history {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	if len(kept) >= l.max {
		l.entries[key] = kept
		return false
	}
	kept = append(kept, now)
	l.entries[key] = kept
	return true
}

func clientKey(r *http.Request) string {
	host := strings.TrimSpace(r.RemoteAddr)
	if host == "" {
		return "unknown"
	}
	if addr, err := netip.ParseAddrPort(host); err == nil {
		return addr.Addr().String()
	}
	if idx := strings.LastIndex(host, ":"); idx > 0 {
		return host[:idx]
	}
	return host
}

func (a *API) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", a.handleHealth)
	mux.Handle("/metrics", a.metrics.Handler())
	mux.HandleFunc("/api/v1/csrf-token", a.handleCSRFToken)
	mux.HandleFunc("/api/v1/stores", a.handleStores)
	mux.HandleFunc("/api/v1/stores/", a.handleStoreActions)

	return a.withMiddleware(mux)
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ok": true,
		"at": time.Now().UTC().Format(time.RFC3339),
	})
}

// handleCSRFToken returns a stateless token for the current hour bucket.
// Clients send it back in X-CSRF-Token on every POST.
func (a *API) handleCSRFToken(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"csrf_token": a.generateCSRFToken(),
	})
}

func (a *API) checkCSRF(w http.ResponseWriter, r *http.Request) bool {
	method := r.Method
	if method != http.MethodPost && method != http.MethodPut && method != http.MethodPatch {
		return true
	}
	token := strings.TrimSpace(r.Header.Get("X-CSRF-Token"))
	if !a.validateCSRFToken(token) {
		writeError(w, http.StatusForbidden, errors.New("missing or invalid CSRF token"))
		return false
	}
	return true
}

func (a *API) handleStores(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}

	stores, err := a.service.ListStores(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"stores": stores})
}

func (a *API) handleStoreActions(w http.ResponseWriter, r *http.Request) {
	prefix := "/api/v1/stores/"
	tail := strings.TrimSpace(strings.Trim(strings.TrimPrefix(r.URL.Path, prefix), "/"))
	if tail == "" {
		writeError(w, http.StatusBadRequest, errors.New("store id required"))
		return
	}

	parts := strings.Split(tail, "/")
	if len(parts) > 2 {
		writeError(w, http.StatusNotFound, errors.New("unknown store resource"))
		return
	}
	storeID := parts[0]
	section := ""
	if len(parts) == 2 {
		section = parts[1]
	}

	if section == "regenerate" {
		a.handleRegenerate(w, r, storeID)
		return
	}
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}

	switch section {
	case "":
		a.handleStoreData(w, r, storeID)
	case "kpi":
		kpi, err := a.service.KPI(r.Context(), storeID)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"kpi": kpi})
	case "sales":
		a.handleSales(w, r, storeID)
	case "inventory":
		summary, err := a.service.InventorySummary(r.Context(), storeID)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, summary)
	case "orders":
		query := r.URL.Query()
		orders, err := a.service.FilterOrders(r.Context(), storeID, query.Get("status"), query.Get("q"))
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"orders": orders})
	case "regions":
		regions, err := a.service.SearchDistricts(r.Context(), storeID, r.URL.Query().Get("q"))
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"regions": regions})
	case "campaigns":
		campaigns, err := a.service.Campaigns(r.Context(), storeID)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"campaigns": campaigns})
	case "documents":
		documents, err := a.service.Documents(r.Context(), storeID)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"documents": documents})
	default:
		writeError(w, http.StatusNotFound, fmt.Errorf("unknown store resource %q", section))
	}
}

func (a *API) handleStoreData(w http.ResponseWriter, r *http.Request, storeID string) {
	data, err := a.service.StoreData(r.Context(), storeID)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	switch format {
	case "":
		writeJSON(w, http.StatusOK, data)
	case "json":
		payload, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeDownload(w, "application/json", exportFilename(data.StoreID, "json"), payload)
	case "yaml":
		payload, err := yaml.Marshal(data)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeDownload(w, "application/yaml", exportFilename(data.StoreID, "yaml"), payload)
	default:
		writeError(w, http.StatusBadRequest, fmt.Errorf("unsupported format %q", format))
	}
}

func (a *API) handleSales(w http.ResponseWriter, r *http.Request, storeID string) {
	overview, err := a.service.SalesOverview(r.Context(), storeID)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	if strings.EqualFold(strings.TrimSpace(r.URL.Query().Get("format")), "csv") {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"sales-%s.csv\"", strings.ToLower(string(overview.StoreID))))
		_, _ = w.Write([]byte(salesOverviewToCSV(overview)))
		return
	}
	writeJSON(w, http.StatusOK, overview)
}

func (a *API) handleRegenerate(w http.ResponseWriter, r *http.Request, storeID string) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w)
		return
	}
	if !a.regenerateLimiter.Allow(clientKey(r)) {
		writeError(w, http.StatusTooManyRequests, errors.New("too many regenerate requests"))
		return
	}

	data, err := a.service.Regenerate(r.Context(), storeID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, domain.StoreSummary{
		Store:       domain.StoreInfo(data.StoreID),
		Revision:    data.Revision,
		GeneratedAt: data.GeneratedAt,
		TotalSales:  data.KPI.TotalSales,
	})
}

func (a *API) withMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := strings.TrimSpace(r.Header.Get("X-Request-ID"))
		if requestID == "" || len(requestID) > 128 {
			requestID = xid.New("req")
		}
		w.Header().Set("X-Request-ID", requestID)
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Cross-Origin-Opener-Policy", "same-origin")
		w.Header().Set("Access-Control-Allow-Origin", a.allowedOrigin)
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-CSRF-Token, X-Request-ID")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition, X-Request-ID")
		w.Header().Set("Vary", "Origin")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		if !a.checkCSRF(w, r) {
			return
		}

		startedAt := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("[httpapi] %s %s %s id=%s", r.Method, r.URL.Path, time.Since(startedAt), requestID)
	})
}

func exportFilename(storeID domain.StoreID, ext string) string {
	return fmt.Sprintf("beelittle-%s-analytics.%s", strings.ToLower(string(storeID)), ext)
}

func salesOverviewToCSV(overview domain.SalesOverview) string {
	lines := []string{
		"section,key,revenue,orders,footfall",
		fmt.Sprintf("summary,total_sales,%d,,", overview.TotalSales),
	}
	for _, point := range overview.History {
		lines = append(lines, fmt.Sprintf("daily,%s,%d,%d,%d", point.Date, point.Revenue, point.Orders, point.Footfall))
	}
	for _, category := range overview.CategoryPerformance {
		lines = append(lines, fmt.Sprintf("category,%s,%d,,", csvField(category.Category), category.Revenue))
	}
	for _, payment := range overview.PaymentStats {
		lines = append(lines, fmt.Sprintf("payment,%s,%d,,", payment.Method, payment.Amount))
	}
	return strings.Join(lines, "\n") + "\n"
}

func csvField(val string) string {
	if strings.ContainsAny(val, ",\"\n") {
		return `"` + strings.ReplaceAll(val, `"`, `""`) + `"`
	}
	return val
}

func writeStoreError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, store.ErrUnknownStore), errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, store.ErrInvalidFilter):
		status = http.StatusBadRequest
	}
	writeError(w, status, err)
}

func writeMethodNotAllowed(w http.ResponseWriter) {
	writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
}

func writeError(w http.ResponseWriter, status int, err error) {
	// 5xx bodies stay generic; the detail goes to the log only.
	msg := err.Error()
	if status >= 500 {
		log.Printf("[httpapi] internal error (status %d): %v", status, err)
		msg = "internal server error"
	}
	writeJSON(w, status, map[string]any{
		"error": msg,
	})
}

func writeDownload(w http.ResponseWriter, contentType string, filename string, payload []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
