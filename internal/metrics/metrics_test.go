package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(promTransitions.WithLabelValues("down"))
	IncTransition("down")
	if got := testutil.ToFloat64(promTransitions.WithLabelValues("down")); got != before+1 {
		t.Fatalf("want %v, got %v", before+1, got)
	}

	okBefore := testutil.ToFloat64(promNotifications.WithLabelValues("slack", "success"))
	IncNotification("slack", true)
	IncNotification("slack", false)
	if got := testutil.ToFloat64(promNotifications.WithLabelValues("slack", "success")); got != okBefore+1 {
		t.Fatalf("want %v, got %v", okBefore+1, got)
	}

	SetTargetUp(false)
	if got := testutil.ToFloat64(promTargetUp); got != 0 {
		t.Fatalf("want 0, got %v", got)
	}
	SetTargetUp(true)
	if got := testutil.ToFloat64(promTargetUp); got != 1 {
		t.Fatalf("want 1, got %v", got)
	}

	ObserveProbe(true, 20*time.Millisecond)
}

func TestPromHandler(t *testing.T) {
	IncTransition("up")
	rec := httptest.NewRecorder()
	PromHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "uptimealert_transitions_total") {
		t.Fatalf("metrics output missing transitions counter")
	}
}
