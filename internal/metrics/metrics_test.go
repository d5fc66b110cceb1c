package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveGenerationCountsPerTrigger(t *testing.T) {
	m := New()
	m.ObserveGeneration("Chennai", TriggerPreload, 2*time.Millisecond)
	m.ObserveGeneration("Chennai", TriggerRegenerate, time.Millisecond)
	m.ObserveGeneration("Chennai", TriggerRegenerate, time.Millisecond)

	if got := testutil.ToFloat64(m.generations.WithLabelValues("Chennai", TriggerRegenerate)); got != 2 {
		t.Fatalf("expected 2 regenerations, got %v", got)
	}
	if got := testutil.ToFloat64(m.generations.WithLabelValues("Chennai", TriggerPreload)); got != 1 {
		t.Fatalf("expected 1 preload, got %v", got)
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveGeneration("Tirupur", TriggerLookup, time.Millisecond)
	m.ObserveSnapshot(SnapshotHit)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 from nil metrics handler, got %d", rec.Code)
	}
}

func TestHandlerExposesCollectors(t *testing.T) {
	m := New()
	m.ObserveSnapshot(SnapshotMiss)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `retailpulse_snapshot_cache_lookups_total{result="miss"} 1`) {
		t.Fatalf("snapshot counter missing from exposition:\n%s", rec.Body.String())
	}
}
