package wormhole

import "github.com/prometheus/client_golang/prometheus"

// Metrics exposes wormhole network activity to Prometheus. A nil *Metrics is valid and records nothing.
type Metrics struct {
	wormholes          prometheus.Gauge
	active             prometheus.Gauge
	instantiations     prometheus.Counter
	teleports          prometheus.Counter
	generationFailures prometheus.Counter
}

// NewMetrics creates the wormhole collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		wormholes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "warp_wormholes",
			Help: "Number of generated wormholes",
		}),
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "warp_distortions_active",
			Help: "Number of distortions currently in the live simulation",
		}),
		instantiations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "warp_distortions_created_total",
			Help: "Total number of distortion objects constructed",
		}),
		teleports: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "warp_teleports_total",
			Help: "Total number of ships carried through a wormhole",
		}),
		generationFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "warp_generation_failures_total",
			Help: "Total number of failed wormhole generation attempts",
		}),
	}
	reg.MustRegister(m.wormholes, m.active, m.instantiations, m.teleports, m.generationFailures)
	return m
}

func (m *Metrics) setWormholes(n int) {
	if m != nil {
		m.wormholes.Set(float64(n))
	}
}

func (m *Metrics) setActive(n int) {
	if m != nil {
		m.active.Set(float64(n))
	}
}

func (m *Metrics) instantiated() {
	if m != nil {
		m.instantiations.Inc()
	}
}

func (m *Metrics) teleported() {
	if m != nil {
		m.teleports.Inc()
	}
}

func (m *Metrics) generationFailed() {
	if m != nil {
		m.generationFailures.Inc()
	}
}
