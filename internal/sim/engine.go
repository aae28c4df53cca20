/*
Package sim
File: engine.go
Description:
    The Engine is the simulation heartbeat. It owns the World and the ordered
    list of update systems, and advances both at a fixed tick rate.

    Every tick runs under the write half of DataLock: registered systems
    update in registration order, then the world integrates its live objects
    and ship motion. HTTP handlers take the read half so they always observe
    the state between two ticks.
*/

package sim

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/everforgeworks/galaxies-warp/internal/game"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// ErrDuplicateSystem is returned when the same system is registered twice.
var ErrDuplicateSystem = errors.New("system already registered")

// System is a per-tick update hook.
type System interface {
	Update(w *game.World, timeStep float64)
}

// Engine drives the world.
type Engine struct {
	// DataLock guards World and every registered system.
	DataLock sync.RWMutex
	World    *game.World

	systems []System
	ticks   uint64
	elapsed float64
	metrics *Metrics
	log     *logrus.Entry
}

// Option customises an Engine.
type Option func(*Engine)

// WithMetrics reports ticks to m.
func WithMetrics(m *Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithLogger replaces the default component logger.
func WithLogger(l *logrus.Entry) Option {
	return func(e *Engine) { e.log = l }
}

func NewEngine(w *game.World, opts ...Option) *Engine {
	e := &Engine{
		World: w,
		log:   logrus.WithField("component", "sim"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Register appends s to the update order.
func (e *Engine) Register(s System) error {
	e.DataLock.Lock()
	defer e.DataLock.Unlock()

	for _, existing := range e.systems {
		if existing == s {
			return ErrDuplicateSystem
		}
	}
	e.systems = append(e.systems, s)
	return nil
}

// Step advances the simulation by one tick. Negative time steps are treated as zero.
func (e *Engine) Step(timeStep float64) {
	if timeStep < 0 {
		timeStep = 0
	}

	e.DataLock.Lock()
	defer e.DataLock.Unlock()

	start := time.Now()
	for _, s := range e.systems {
		s.Update(e.World, timeStep)
	}
	e.World.Step(timeStep)

	e.ticks++
	e.elapsed += timeStep
	e.metrics.observe(time.Since(start))
}

// Ticks returns how many steps have run.
func (e *Engine) Ticks() uint64 {
	e.DataLock.RLock()
	defer e.DataLock.RUnlock()
	return e.ticks
}

// Elapsed returns the total simulated time in seconds.
func (e *Engine) Elapsed() float64 {
	e.DataLock.RLock()
	defer e.DataLock.RUnlock()
	return e.elapsed
}

// Run steps the simulation every interval until ctx is cancelled.
// after, if set, is called outside the lock once each tick completes.
func (e *Engine) Run(ctx context.Context, interval time.Duration, after func()) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	e.log.WithField("interval", interval.String()).Info("Simulation running")
	for {
		select {
		case <-ctx.Done():
			e.log.WithField("ticks", e.Ticks()).Info("Simulation stopped")
			return
		case <-ticker.C:
			e.Step(interval.Seconds())
			if after != nil {
				after()
			}
		}
	}
}

// Metrics exposes tick counts and durations. A nil *Metrics is valid and records nothing.
type Metrics struct {
	ticks    prometheus.Counter
	duration prometheus.Histogram
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "warp_sim_ticks_total",
			Help: "Total number of simulation ticks",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "warp_sim_tick_duration_seconds",
			Help:    "Wall time spent inside a simulation tick",
			Buckets: prometheus.ExponentialBuckets(0.00005, 2, 12),
		}),
	}
	reg.MustRegister(m.ticks, m.duration)
	return m
}

func (m *Metrics) observe(d time.Duration) {
	if m != nil {
		m.ticks.Inc()
		m.duration.Observe(d.Seconds())
	}
}
