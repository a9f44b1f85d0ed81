package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/riskibarqy/hockey-league/internal/platform/resilience"
)

var _ resilience.StateChangeFunc = (*DependencyMetrics)(nil).CircuitStateChanged

func TestDependencyMetrics_TracksBreakerState(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()
	metrics, err := NewDependencyMetrics(registry)
	if err != nil {
		t.Fatalf("new dependency metrics: %v", err)
	}
	metrics.Track("ea_sports", "anubis")

	breaker := resilience.NewCircuitBreakerFromConfig(resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 1,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
		Name:             "ea_sports",
		OnStateChange:    metrics.CircuitStateChanged,
	})
	breaker.RecordFailure()

	if got := testutil.ToFloat64(metrics.state.WithLabelValues("ea_sports")); got != 2 {
		t.Fatalf("expected open gauge for ea_sports, got %v", got)
	}
	if got := testutil.ToFloat64(metrics.state.WithLabelValues("anubis")); got != 0 {
		t.Fatalf("expected closed gauge for anubis, got %v", got)
	}
	if got := testutil.ToFloat64(metrics.transitions.WithLabelValues("ea_sports", "open")); got != 1 {
		t.Fatalf("expected one open transition, got %v", got)
	}
}

func TestDependencyMetrics_DuplicateRegistrationFails(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()
	if _, err := NewDependencyMetrics(registry); err != nil {
		t.Fatalf("first registration: %v", err)
	}
	if _, err := NewDependencyMetrics(registry); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
}
