package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/riskibarqy/hockey-league/internal/platform/resilience"
)

// circuitStateValue maps breaker states onto the circuit_state gauge.
var circuitStateValue = map[resilience.CircuitState]float64{
	resilience.CircuitStateClosed:   0,
	resilience.CircuitStateHalfOpen: 1,
	resilience.CircuitStateOpen:     2,
}

// DependencyMetrics exports circuit breaker state for upstream dependencies
// such as EA Sports and Anubis.
type DependencyMetrics struct {
	state       *prometheus.GaugeVec
	transitions *prometheus.CounterVec
}

func NewDependencyMetrics(registerer prometheus.Registerer) (*DependencyMetrics, error) {
	m := &DependencyMetrics{
		state: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "hockey",
			Subsystem: "dependency",
			Name:      "circuit_state",
			Help:      "Circuit breaker state per dependency: 0 closed, 1 half-open, 2 open.",
		}, []string{"dependency"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hockey",
			Subsystem: "dependency",
			Name:      "circuit_transitions_total",
			Help:      "Circuit breaker transitions per dependency and target state.",
		}, []string{"dependency", "to"}),
	}

	if registerer == nil {
		return m, nil
	}
	for _, collector := range []prometheus.Collector{m.state, m.transitions} {
		if err := registerer.Register(collector); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Track publishes a closed state for dependencies that have not changed yet.
func (m *DependencyMetrics) Track(dependencies ...string) {
	for _, dependency := range dependencies {
		m.state.WithLabelValues(dependency).Set(circuitStateValue[resilience.CircuitStateClosed])
	}
}

// CircuitStateChanged is a resilience.StateChangeFunc.
func (m *DependencyMetrics) CircuitStateChanged(dependency string, _, to resilience.CircuitState) {
	m.state.WithLabelValues(dependency).Set(circuitStateValue[to])
	m.transitions.WithLabelValues(dependency, string(to)).Inc()
}
