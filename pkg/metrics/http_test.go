package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func TestNewHTTPMetricsRegisters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.ObserveRequest("GET", "/api/v1/cart", "200", 30*time.Millisecond)
	m.IncCheckoutSuccess()
	m.IncCheckoutFailure()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	names := map[string]bool{}
	for _, fam := range families {
		names[fam.GetName()] = true
	}
	for _, want := range []string{"http_request_duration_seconds", "checkout_success_total", "checkout_failure_total"} {
		if !names[want] {
			t.Fatalf("expected metric %s to be registered, got %v", want, names)
		}
	}
}

func TestNilRegistererIsNoop(t *testing.T) {
	m := NewHTTPMetrics(nil)
	m.ObserveRequest("", "", "500", time.Second)
	m.IncCheckoutSuccess()
	m.IncCheckoutFailure()
}

func TestNormalizeLabel(t *testing.T) {
	if got := normalizeLabel("  "); got != "unknown" {
		t.Fatalf("expected unknown for blank label, got %q", got)
	}
	if got := normalizeLabel("GET"); got != "GET" {
		t.Fatalf("unexpected label %q", got)
	}
}
