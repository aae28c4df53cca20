/*
Package research
File: provider.go
Description:
    Providers discover research targets of a single kind near a ship and own
    the actions created for them. Each provider caches one Action per target,
    keyed by the target's stable integer ID, so progress survives leaving and
    returning to the same planet, sun or anomaly.
*/

package research

import (
	"math"

	"github.com/everforgeworks/galaxies-warp/internal/game"
	"github.com/everforgeworks/galaxies-warp/internal/wormhole"
)

// AnomalyResearchDistance is how close the nearest anomaly must be for wormhole research to be offered.
const AnomalyResearchDistance = 3.0

// Provider discovers research targets of one Kind.
type Provider interface {
	Kind() Kind
	Name() string
	// CanProvideResearch reports whether an eligible target is near ship and its action is not complete.
	CanProvideResearch(t *Tick, ship *game.Ship) bool
	// Action returns the cached (or newly created) action for the nearest eligible target.
	// It returns nil when no target is eligible or the target's research is complete.
	Action(t *Tick, ship *game.Ship) *Action
	// DiscoveredActions returns every action this provider has created, in discovery order.
	DiscoveredActions() []*Action
	// Reset forgets all cached actions.
	Reset()
}

// actionCache maps target IDs to actions while remembering discovery order.
type actionCache struct {
	byID  map[int]*Action
	order []*Action
}

func (c *actionCache) get(id int) *Action {
	return c.byID[id]
}

func (c *actionCache) getOrCreate(id int, create func() *Action) *Action {
	if a, ok := c.byID[id]; ok {
		return a
	}
	if c.byID == nil {
		c.byID = make(map[int]*Action)
	}
	a := create()
	c.byID[id] = a
	c.order = append(c.order, a)
	return a
}

func (c *actionCache) DiscoveredActions() []*Action {
	out := make([]*Action, len(c.order))
	copy(out, c.order)
	return out
}

func (c *actionCache) Reset() {
	c.byID = nil
	c.order = nil
}

// open reports whether the target has no action yet or its action is still incomplete.
func (c *actionCache) open(id int) bool {
	a := c.get(id)
	return a == nil || !a.IsResearchComplete()
}

// PlanetProvider offers research on the nearest planet while the ship hovers near its ground.
type PlanetProvider struct {
	actionCache
}

func NewPlanetProvider() *PlanetProvider { return &PlanetProvider{} }

func (p *PlanetProvider) Kind() Kind { return KindPlanet }

func (p *PlanetProvider) Name() string { return "Planet" }

func (p *PlanetProvider) target(t *Tick, ship *game.Ship) (*game.Planet, bool) {
	planet := t.World.NearestPlanet(ship.Position)
	if planet == nil || !t.World.IsNearGround(planet, ship.Position) {
		return nil, false
	}
	return planet, true
}

func (p *PlanetProvider) CanProvideResearch(t *Tick, ship *game.Ship) bool {
	planet, ok := p.target(t, ship)
	if !ok {
		return false
	}
	return p.open(planet.ID)
}

func (p *PlanetProvider) Action(t *Tick, ship *game.Ship) *Action {
	planet, ok := p.target(t, ship)
	if !ok {
		return nil
	}
	a := p.getOrCreate(planet.ID, func() *Action {
		return NewPlanetAction(planet, t.World.System(planet.SystemID))
	})
	if a.IsResearchComplete() {
		return nil
	}
	return a
}

// SolarProvider offers research on the nearest sun once the ship is inside its radius.
type SolarProvider struct {
	actionCache
	sunRadius float64
}

func NewSolarProvider(sunRadius float64) *SolarProvider {
	return &SolarProvider{sunRadius: sunRadius}
}

func (p *SolarProvider) Kind() Kind { return KindSolar }

func (p *SolarProvider) Name() string { return "Solar" }

func (p *SolarProvider) target(t *Tick, ship *game.Ship) (*game.StarSystem, bool) {
	sys := t.World.NearestSystem(ship.Position)
	if sys == nil || sys.Position.Dst(ship.Position) > p.sunRadius {
		return nil, false
	}
	return sys, true
}

func (p *SolarProvider) CanProvideResearch(t *Tick, ship *game.Ship) bool {
	sys, ok := p.target(t, ship)
	if !ok {
		return false
	}
	return p.open(sys.ID)
}

func (p *SolarProvider) Action(t *Tick, ship *game.Ship) *Action {
	sys, ok := p.target(t, ship)
	if !ok {
		return nil
	}
	a := p.getOrCreate(sys.ID, func() *Action { return NewSolarAction(sys) })
	if a.IsResearchComplete() {
		return nil
	}
	return a
}

// AnomalySource lists the distortions currently live in the simulation.
type AnomalySource interface {
	ActiveDistortions() []*wormhole.Distortion
}

// WormholeProvider offers research on the nearest live anomaly.
type WormholeProvider struct {
	actionCache
	source AnomalySource
}

func NewWormholeProvider(source AnomalySource) *WormholeProvider {
	return &WormholeProvider{source: source}
}

func (p *WormholeProvider) Kind() Kind { return KindWormhole }

func (p *WormholeProvider) Name() string { return "Wormhole" }

// target picks the closest distortion strictly within AnomalyResearchDistance.
// Equal distances keep the first one in the source's order.
func (p *WormholeProvider) target(ship *game.Ship) (*wormhole.Distortion, bool) {
	var nearest *wormhole.Distortion
	best := math.Inf(1)
	for _, d := range p.source.ActiveDistortions() {
		dst := d.Position().Dst(ship.Position)
		if dst < AnomalyResearchDistance && dst < best {
			best = dst
			nearest = d
		}
	}
	return nearest, nearest != nil
}

func (p *WormholeProvider) CanProvideResearch(t *Tick, ship *game.Ship) bool {
	d, ok := p.target(ship)
	if !ok {
		return false
	}
	return p.open(d.WormholeID())
}

func (p *WormholeProvider) Action(t *Tick, ship *game.Ship) *Action {
	d, ok := p.target(ship)
	if !ok {
		return nil
	}
	a := p.getOrCreate(d.WormholeID(), func() *Action {
		return NewWormholeAction(d.WormholeID(), d.Position(), t.World.NearestSystem(d.Position()))
	})
	if a.IsResearchComplete() {
		return nil
	}
	return a
}

// DefaultProviders returns the built-in providers in their polling order.
func DefaultProviders(balance game.GameBalance, anomalies AnomalySource) []Provider {
	return []Provider{
		NewPlanetProvider(),
		NewSolarProvider(balance.SunRadius),
		NewWormholeProvider(anomalies),
	}
}
