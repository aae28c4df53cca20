/*
Package research
File: ledger.go
Description:
    The Ledger is the research update system. Once per tick it polls every
    registered provider, in registration order, for the ship the hero flies
    and banks whatever points the resolved actions yield. Points can be sold
    to the hero for credits at a fixed exchange rate.

    The ledger also detects a fresh game: the first time the hero is seen in
    a research ship without the marker item, the marker is handed out and
    all research progress is wiped.
*/

package research

import (
	"math"

	"github.com/everforgeworks/galaxies-warp/internal/game"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Pulse reports the points earned from one action during one tick.
type Pulse struct {
	Session  uuid.UUID `json:"session"`
	Kind     string    `json:"kind"`
	Target   Target    `json:"target"`
	Points   float64   `json:"points"`
	Yield    float64   `json:"yield"`
	MaxYield float64   `json:"max_yield"`
	Total    float64   `json:"total"`
	Complete bool      `json:"complete"`
}

// ActionState is a read-only view of an action for reporting.
type ActionState struct {
	Kind        string  `json:"kind"`
	Target      Target  `json:"target"`
	Yield       float64 `json:"yield"`
	MaxYield    float64 `json:"max_yield"`
	Complete    bool    `json:"complete"`
	Objective   string  `json:"objective"`
	Description string  `json:"description"`
}

// Report summarises the research session.
type Report struct {
	Session      uuid.UUID     `json:"session"`
	Points       float64       `json:"points"`
	ExchangeRate float64       `json:"exchange_rate"`
	Ships        []string      `json:"ships"`
	Actions      []ActionState `json:"actions"`
}

// Ledger accumulates research points for the hero.
type Ledger struct {
	ships     []string
	providers []Provider
	points    float64
	rate      float64
	marker    string
	session   uuid.UUID
	metrics   *Metrics
	log       *logrus.Entry
	onPulse   func(Pulse)
}

// LedgerOption customises a Ledger.
type LedgerOption func(*Ledger)

// WithLedgerMetrics reports points, sales and sessions to m.
func WithLedgerMetrics(m *Metrics) LedgerOption {
	return func(l *Ledger) { l.metrics = m }
}

// WithLedgerLogger replaces the default component logger.
func WithLedgerLogger(e *logrus.Entry) LedgerOption {
	return func(l *Ledger) { l.log = e }
}

// WithPulseHandler registers a callback invoked for every action that yielded points.
func WithPulseHandler(fn func(Pulse)) LedgerOption {
	return func(l *Ledger) { l.onPulse = fn }
}

// NewLedger creates a ledger with the configured research ships and no providers.
func NewLedger(cfg game.ResearchConfig, opts ...LedgerOption) *Ledger {
	l := &Ledger{
		rate:    cfg.ExchangeRate,
		marker:  cfg.MarkerItem,
		session: uuid.New(),
		log:     logrus.WithField("component", "research"),
	}
	for _, opt := range opts {
		opt(l)
	}
	for _, s := range cfg.Ships {
		l.AddResearchShip(s)
	}
	return l
}

// AddResearchShip marks a hull as research capable. Adding a hull twice is a no-op.
func (l *Ledger) AddResearchShip(hull string) {
	for _, s := range l.ships {
		if s == hull {
			return
		}
	}
	l.ships = append(l.ships, hull)
}

// SetResearchShips replaces the research-capable hulls, dropping duplicates.
func (l *Ledger) SetResearchShips(hulls []string) {
	l.ships = nil
	for _, h := range hulls {
		l.AddResearchShip(h)
	}
}

// ResearchShips returns the research-capable hulls in registration order.
func (l *Ledger) ResearchShips() []string {
	out := make([]string, len(l.ships))
	copy(out, l.ships)
	return out
}

// AddResearchProvider appends p to the polling order. Registering the same provider,
// or a second provider of an already registered kind, is a no-op.
func (l *Ledger) AddResearchProvider(p Provider) {
	for _, existing := range l.providers {
		if existing == p || existing.Kind() == p.Kind() {
			return
		}
	}
	l.providers = append(l.providers, p)
}

// Providers returns the registered providers in polling order.
func (l *Ledger) Providers() []Provider {
	out := make([]Provider, len(l.providers))
	copy(out, l.providers)
	return out
}

// Provider returns the registered provider of kind k, or nil.
func (l *Ledger) Provider(k Kind) Provider {
	for _, p := range l.providers {
		if p.Kind() == k {
			return p
		}
	}
	return nil
}

func (l *Ledger) isResearchShip(hull string) bool {
	for _, s := range l.ships {
		if s == hull {
			return true
		}
	}
	return false
}

// Update polls the providers for the hero's ship.
func (l *Ledger) Update(w *game.World, timeStep float64) {
	hero := &w.Hero
	if hero.Dead || hero.Transcendent {
		return
	}
	ship := w.HeroShip()
	if ship == nil || !l.isResearchShip(ship.Hull) {
		return
	}

	if hero.Count(l.marker) == 0 {
		hero.AddItem(l.marker)
		l.startSession()
	}

	t := &Tick{World: w, TimeStep: timeStep}
	for _, p := range l.providers {
		if !p.CanProvideResearch(t, ship) {
			continue
		}
		a := p.Action(t, ship)
		if a == nil {
			continue
		}
		points := a.DoResearch(t, ship)
		if points == 0 {
			continue
		}
		l.points += points
		l.metrics.earnedPoints(a.Kind(), points)
		l.metrics.setPoints(l.points)

		complete := a.IsResearchComplete()
		if complete {
			l.metrics.completedAction(a.Kind())
			l.log.WithFields(logrus.Fields{
				"kind":   a.Kind().String(),
				"target": a.Target().Name,
				"yield":  a.Yield(),
			}).Info("Research complete")
		}
		if l.onPulse != nil {
			l.onPulse(Pulse{
				Session:  l.session,
				Kind:     a.Kind().String(),
				Target:   a.Target(),
				Points:   points,
				Yield:    a.Yield(),
				MaxYield: a.MaxYield(),
				Total:    l.points,
				Complete: complete,
			})
		}
	}
}

// startSession wipes all research progress for a new game.
func (l *Ledger) startSession() {
	l.points = 0
	for _, p := range l.providers {
		p.Reset()
	}
	l.session = uuid.New()
	l.metrics.sessionStarted()
	l.metrics.setPoints(0)
	l.log.WithField("session", l.session.String()).Info("New game detected, research reset")
}

// Points returns the unsold research points.
func (l *Ledger) Points() float64 { return l.points }

// Session identifies the current research session.
func (l *Ledger) Session() uuid.UUID { return l.session }

// ExchangeRate is the number of credits paid per research point.
func (l *Ledger) ExchangeRate() float64 { return l.rate }

// Sell exchanges up to requested points for credits. The request is clamped to
// [0, Points()], so selling never fails; it returns the points sold and the credits paid.
func (l *Ledger) Sell(hero *game.Hero, requested float64) (sold, credited float64) {
	sold = math.Max(0, math.Min(requested, l.points))
	if sold == 0 {
		return 0, 0
	}
	l.points -= sold
	credited = sold * l.rate
	hero.Credit(credited)

	l.metrics.soldPoints(sold, credited)
	l.metrics.setPoints(l.points)
	l.log.WithFields(logrus.Fields{"points": sold, "credits": credited}).Debug("Research sold")
	return sold, credited
}

// Report captures the session and every discovered action.
func (l *Ledger) Report() Report {
	r := Report{
		Session:      l.session,
		Points:       l.points,
		ExchangeRate: l.rate,
		Ships:        l.ResearchShips(),
		Actions:      []ActionState{},
	}
	for _, p := range l.providers {
		for _, a := range p.DiscoveredActions() {
			r.Actions = append(r.Actions, ActionState{
				Kind:        a.Kind().String(),
				Target:      a.Target(),
				Yield:       a.Yield(),
				MaxYield:    a.MaxYield(),
				Complete:    a.IsResearchComplete(),
				Objective:   a.Objective(),
				Description: a.Description(),
			})
		}
	}
	return r
}
