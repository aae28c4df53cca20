/*
Package wormhole
File: network.go
Description:
    Procedurally generates the galaxy-wide network of paired wormholes and
    keeps the heavier Distortion objects live only while the hero is close.

    Generation runs once, lazily, on the first tick. It draws from the world's
    shared seeded stream but restarts it from its saved seed before and after,
    so enabling wormholes never changes the random draws of other systems and
    the same seed always replays the same placement and pairing.
*/

package wormhole

import (
	"errors"
	"fmt"

	"github.com/everforgeworks/galaxies-warp/internal/game"
	"github.com/sirupsen/logrus"
)

// MinSeparation is the minimum distance between two wormhole placements.
const MinSeparation = 2.0

// debugPairOffset is the x offset of the debug pair from the spawn point.
const debugPairOffset = 10.0

// ErrUnplaceable is returned when no free position is found within the retry budget.
var ErrUnplaceable = errors.New("no free position for wormhole")

// Wormhole is one endpoint of a linked pair.
type Wormhole struct {
	ID       int
	Position game.Vec2

	partner  *Wormhole
	enabled  bool
	instance *Distortion
}

// ConnectedWormhole returns the paired endpoint.
func (wh *Wormhole) ConnectedWormhole() *Wormhole { return wh.partner }

// Enabled reports whether the wormhole's distortion is currently live.
func (wh *Wormhole) Enabled() bool { return wh.enabled }

// Instance returns the distortion built on first activation, or nil.
func (wh *Wormhole) Instance() *Distortion { return wh.instance }

// TeleportEvent describes a ship carried through a wormhole.
type TeleportEvent struct {
	ShipID  int       `json:"ship_id"`
	EntryID int       `json:"entry_id"`
	ExitID  int       `json:"exit_id"`
	From    game.Vec2 `json:"from"`
	To      game.Vec2 `json:"to"`
}

// Network owns every generated wormhole and the set of live distortions.
type Network struct {
	cfg        game.WormholeConfig
	wormholes  []*Wormhole
	active     []*Distortion
	generated  bool
	failing    bool
	created    int
	metrics    *Metrics
	log        *logrus.Entry
	onTeleport func(TeleportEvent)
}

// Option customises a Network.
type Option func(*Network)

// WithMetrics reports generation, activation and teleports to m.
func WithMetrics(m *Metrics) Option {
	return func(n *Network) { n.metrics = m }
}

// WithLogger replaces the default component logger.
func WithLogger(l *logrus.Entry) Option {
	return func(n *Network) { n.log = l }
}

// WithTeleportHandler registers a callback invoked after every teleport.
func WithTeleportHandler(fn func(TeleportEvent)) Option {
	return func(n *Network) { n.onTeleport = fn }
}

// NewNetwork creates an empty network; wormholes are generated on the first Update.
func NewNetwork(cfg game.WormholeConfig, opts ...Option) *Network {
	n := &Network{
		cfg: cfg,
		log: logrus.WithField("component", "wormhole"),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Update generates the network on first use, then toggles distortions in and out
// of the live simulation as the hero crosses the visibility radius.
func (n *Network) Update(w *game.World, timeStep float64) {
	if !n.generated {
		if err := n.Generate(w); err != nil {
			n.metrics.generationFailed()
			if !n.failing {
				n.log.WithError(err).Warn("Wormhole generation failed, retrying next tick")
			}
			n.failing = true
		}
		return
	}

	hero := w.HeroShip()
	if hero == nil {
		return
	}

	for _, wh := range n.wormholes {
		if wh.Position.Dst(hero.Position) < n.cfg.VisibleDistance {
			if !wh.enabled {
				n.activate(w, wh)
			}
		} else if wh.enabled {
			n.deactivate(w, wh)
		}
	}
}

// Generate places and pairs the wormholes. It is a no-op once it has succeeded.
func (n *Network) Generate(w *game.World) error {
	if n.generated {
		return nil
	}

	seed := w.Random.Seed()
	w.Random.SetSeed(seed)
	defer w.Random.SetSeed(seed)

	positions, err := n.place(w)
	if err != nil {
		return err
	}
	n.wormholes = pair(w.Random, positions)

	if n.cfg.DebugPair {
		spawn := w.SpawnPosition()
		entry := &Wormhole{ID: len(n.wormholes), Position: spawn.Add(game.Vec2{X: debugPairOffset})}
		exit := &Wormhole{ID: len(n.wormholes) + 1, Position: spawn.Add(game.Vec2{X: -debugPairOffset})}
		link(entry, exit)
		n.wormholes = append(n.wormholes, entry, exit)
	}

	n.generated = true
	n.failing = false
	n.metrics.setWormholes(len(n.wormholes))
	n.log.WithFields(logrus.Fields{
		"wormholes": len(n.wormholes),
		"systems":   len(w.Systems),
		"seed":      seed,
	}).Info("Wormhole network generated")
	return nil
}

// place draws the wormhole count and scatters that many positions evenly across systems.
// Remainders of the per-system division are dropped, as is a trailing odd position.
func (n *Network) place(w *game.World) ([]game.Vec2, error) {
	count := w.Random.Int(n.cfg.Min, n.cfg.Max)
	if count%2 != 0 {
		count++
	}
	if len(w.Systems) == 0 {
		return nil, nil
	}

	perSystem := count / len(w.Systems)
	positions := make([]game.Vec2, 0, perSystem*len(w.Systems))
	for i := range w.Systems {
		sys := &w.Systems[i]
		for j := 0; j < perSystem; j++ {
			pos, err := n.placeOne(w, sys, positions)
			if err != nil {
				return nil, fmt.Errorf("system %s: %w", sys.Name, err)
			}
			positions = append(positions, pos)
		}
	}

	if len(positions)%2 != 0 {
		positions = positions[:len(positions)-1]
	}
	return positions, nil
}

// placeOne picks a point in the ring between the sun's hot core and the system edge,
// choosing the side of each axis independently.
func (n *Network) placeOne(w *game.World, sys *game.StarSystem, placed []game.Vec2) (game.Vec2, error) {
	hot := w.Balance.SunHotRadius
	for attempt := 0; attempt < n.cfg.MaxPlacementAttempts; attempt++ {
		right := w.Random.Test(0.5)
		top := w.Random.Test(0.5)

		var pos game.Vec2
		if right {
			pos.X = w.Random.Float(sys.Position.X+hot, sys.Position.X+sys.Radius)
		} else {
			pos.X = w.Random.Float(sys.Position.X-sys.Radius, sys.Position.X-hot)
		}
		if top {
			pos.Y = w.Random.Float(sys.Position.Y+hot, sys.Position.Y+sys.Radius)
		} else {
			pos.Y = w.Random.Float(sys.Position.Y-sys.Radius, sys.Position.Y-hot)
		}

		if isPositionFree(w, placed, pos) {
			return pos, nil
		}
	}
	return game.Vec2{}, ErrUnplaceable
}

func isPositionFree(w *game.World, placed []game.Vec2, pos game.Vec2) bool {
	if !w.IsPlaceEmpty(pos, true) {
		return false
	}
	for _, other := range placed {
		if other.Dst(pos) < MinSeparation {
			return false
		}
	}
	return true
}

// pair repeatedly draws two distinct positions from the pool and links them,
// producing a perfect matching.
func pair(rng *game.SeededRandom, positions []game.Vec2) []*Wormhole {
	pool := make([]game.Vec2, len(positions))
	copy(pool, positions)

	out := make([]*Wormhole, 0, len(pool))
	for len(pool) >= 2 {
		i := rng.Int(0, len(pool))
		j := rng.Int(0, len(pool))
		for j == i {
			j = rng.Int(0, len(pool))
		}

		entry := &Wormhole{ID: len(out), Position: pool[i]}
		exit := &Wormhole{ID: len(out) + 1, Position: pool[j]}
		link(entry, exit)
		out = append(out, entry, exit)

		hi, lo := i, j
		if lo > hi {
			hi, lo = lo, hi
		}
		pool = append(pool[:hi], pool[hi+1:]...)
		pool = append(pool[:lo], pool[lo+1:]...)
	}
	return out
}

func link(a, b *Wormhole) {
	a.partner = b
	b.partner = a
}

func (n *Network) activate(w *game.World, wh *Wormhole) {
	if wh.instance == nil {
		wh.instance = newDistortion(n, wh, n.cfg.Stability)
		n.created++
		n.metrics.instantiated()
	}
	w.AddObject(wh.instance)
	n.active = append(n.active, wh.instance)
	wh.enabled = true
	n.metrics.setActive(len(n.active))
	n.log.WithField("wormhole", wh.ID).Debug("Distortion activated")
}

func (n *Network) deactivate(w *game.World, wh *Wormhole) {
	for i, d := range n.active {
		if d == wh.instance {
			n.active = append(n.active[:i], n.active[i+1:]...)
			break
		}
	}
	w.RemoveObject(wh.instance)
	wh.enabled = false
	n.metrics.setActive(len(n.active))
	n.log.WithField("wormhole", wh.ID).Debug("Distortion deactivated")
}

func (n *Network) teleported(ev TeleportEvent) {
	n.metrics.teleported()
	n.log.WithFields(logrus.Fields{
		"ship":  ev.ShipID,
		"entry": ev.EntryID,
		"exit":  ev.ExitID,
	}).Debug("Ship teleported")
	if n.onTeleport != nil {
		n.onTeleport(ev)
	}
}

// Generated reports whether the network has been generated.
func (n *Network) Generated() bool { return n.generated }

// Wormholes returns a snapshot of every generated wormhole.
func (n *Network) Wormholes() []*Wormhole {
	out := make([]*Wormhole, len(n.wormholes))
	copy(out, n.wormholes)
	return out
}

// ActiveDistortions returns a snapshot of the distortions currently in the live simulation.
func (n *Network) ActiveDistortions() []*Distortion {
	out := make([]*Distortion, len(n.active))
	copy(out, n.active)
	return out
}

// Instantiations counts distortions built over the session.
func (n *Network) Instantiations() int { return n.created }

// Config returns the tuning the network was built with.
func (n *Network) Config() game.WormholeConfig { return n.cfg }
