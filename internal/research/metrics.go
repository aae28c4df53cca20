package research

import "github.com/prometheus/client_golang/prometheus"

// Metrics exposes research progress to Prometheus. A nil *Metrics is valid and records nothing.
type Metrics struct {
	points    prometheus.Gauge
	earned    *prometheus.CounterVec
	completed *prometheus.CounterVec
	sold      prometheus.Counter
	credited  prometheus.Counter
	sessions  prometheus.Counter
}

// NewMetrics creates the research collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		points: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "warp_research_points",
			Help: "Research points currently held by the hero",
		}),
		earned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "warp_research_points_earned_total",
			Help: "Research points earned, by research kind",
		}, []string{"kind"}),
		completed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "warp_research_completed_total",
			Help: "Research actions completed, by research kind",
		}, []string{"kind"}),
		sold: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "warp_research_points_sold_total",
			Help: "Research points exchanged for credits",
		}),
		credited: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "warp_research_credits_total",
			Help: "Credits paid out for sold research points",
		}),
		sessions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "warp_research_sessions_total",
			Help: "Research sessions started (new games detected)",
		}),
	}
	reg.MustRegister(m.points, m.earned, m.completed, m.sold, m.credited, m.sessions)
	return m
}

func (m *Metrics) setPoints(v float64) {
	if m != nil {
		m.points.Set(v)
	}
}

func (m *Metrics) earnedPoints(k Kind, v float64) {
	if m != nil {
		m.earned.WithLabelValues(k.String()).Add(v)
	}
}

func (m *Metrics) completedAction(k Kind) {
	if m != nil {
		m.completed.WithLabelValues(k.String()).Inc()
	}
}

func (m *Metrics) soldPoints(points, credits float64) {
	if m != nil {
		m.sold.Add(points)
		m.credited.Add(credits)
	}
}

func (m *Metrics) sessionStarted() {
	if m != nil {
		m.sessions.Inc()
	}
}
