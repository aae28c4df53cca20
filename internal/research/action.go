/*
Package research
File: action.go
Description:
    A research Action is one research activity against one world entity:
    a planet to study from low orbit, a sun to approach, or a wormhole to
    investigate. Actions are a closed set of kinds sharing one state machine:
    they accumulate yield until it reaches the maximum, after which they are
    complete and yield nothing more.
*/

package research

import (
	"fmt"
	"math"

	"github.com/everforgeworks/galaxies-warp/internal/game"
)

// Kind tags a research activity.
type Kind int

const (
	KindInstant Kind = iota
	KindPlanet
	KindSolar
	KindWormhole
)

func (k Kind) String() string {
	switch k {
	case KindInstant:
		return "instant"
	case KindPlanet:
		return "planet"
	case KindSolar:
		return "solar"
	case KindWormhole:
		return "wormhole"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Yield tuning per kind.
const (
	PlanetYield    = 0.5
	PlanetYieldMax = 120.0

	SolarYield        = 6.0
	SolarDistanceRate = 0.06
	SolarYieldMax     = 200.0
	// MinSolarDistance keeps the inverse-distance formula finite when sitting on the sun.
	MinSolarDistance = 0.01

	WormholeYield    = 1.0
	WormholeYieldMax = 10.0
	// WormholeResearchDistance is how close a ship must hover to an anomaly to study it.
	WormholeResearchDistance = 2.0
)

// World is the subset of host queries research needs.
type World interface {
	Planet(id int) *game.Planet
	System(id int) *game.StarSystem
	NearestPlanet(pos game.Vec2) *game.Planet
	NearestSystem(pos game.Vec2) *game.StarSystem
	IsNearGround(p *game.Planet, pos game.Vec2) bool
}

// Tick is the per-frame context handed to providers and actions.
type Tick struct {
	World    World
	TimeStep float64
}

// Target identifies the entity an action researches. Entity IDs are only unique per kind.
type Target struct {
	ID         int       `json:"id"`
	Name       string    `json:"name"`
	SystemName string    `json:"system_name"`
	Position   game.Vec2 `json:"position"`
	Hard       bool      `json:"hard"`
}

// Action tracks accumulated yield for one research activity.
type Action struct {
	kind        Kind
	target      Target
	maxYield    float64
	yield       float64
	objective   string
	description string
}

// NewInstantAction creates an action that awards amount exactly once.
func NewInstantAction(amount float64, objective, description string) *Action {
	return &Action{
		kind:        KindInstant,
		maxYield:    amount,
		objective:   objective,
		description: description,
	}
}

// NewPlanetAction creates an action studying planet p of system sys. Hard systems double the yield and cap.
func NewPlanetAction(p *game.Planet, sys *game.StarSystem) *Action {
	t := Target{ID: p.ID, Name: p.Name, Position: p.Position}
	if sys != nil {
		t.SystemName = sys.Name
		t.Hard = sys.Hard
	}
	return &Action{
		kind:     KindPlanet,
		target:   t,
		maxYield: PlanetYieldMax * hardFactor(t.Hard),
	}
}

// NewSolarAction creates an action studying the sun of sys.
func NewSolarAction(sys *game.StarSystem) *Action {
	return &Action{
		kind: KindSolar,
		target: Target{
			ID:         sys.ID,
			Name:       sys.Name,
			SystemName: sys.Name,
			Position:   sys.Position,
			Hard:       sys.Hard,
		},
		maxYield: SolarYieldMax,
	}
}

// NewWormholeAction creates an action investigating the anomaly at pos, near system sys.
func NewWormholeAction(id int, pos game.Vec2, sys *game.StarSystem) *Action {
	t := Target{ID: id, Name: fmt.Sprintf("anomaly %d", id), Position: pos}
	if sys != nil {
		t.SystemName = sys.Name
	}
	return &Action{
		kind:     KindWormhole,
		target:   t,
		maxYield: WormholeYieldMax,
	}
}

func hardFactor(hard bool) float64 {
	if hard {
		return 2
	}
	return 1
}

func (a *Action) Kind() Kind { return a.kind }

func (a *Action) Target() Target { return a.target }

// MaxYield is the yield at which the action completes.
func (a *Action) MaxYield() float64 { return a.maxYield }

// Yield is the total accumulated so far. It may overshoot MaxYield on the completing tick.
func (a *Action) Yield() float64 { return a.yield }

// IsResearchComplete reports whether accumulated yield has reached the maximum.
func (a *Action) IsResearchComplete() bool {
	return a.yield >= a.maxYield
}

// DoResearch advances the action by one tick for ship and returns the points earned.
// A complete action always returns 0. The last tick is not clamped to MaxYield.
func (a *Action) DoResearch(t *Tick, ship *game.Ship) float64 {
	if a.IsResearchComplete() || ship == nil {
		return 0
	}

	var points float64
	switch a.kind {
	case KindInstant:
		points = a.maxYield
	case KindPlanet:
		p := t.World.Planet(a.target.ID)
		if !t.World.IsNearGround(p, ship.Position) {
			return 0
		}
		points = PlanetYield * hardFactor(a.target.Hard) * t.TimeStep
	case KindSolar:
		d := math.Max(a.target.Position.Dst(ship.Position), MinSolarDistance)
		points = SolarYield / (d * SolarDistanceRate) * t.TimeStep
	case KindWormhole:
		if a.target.Position.Dst(ship.Position) > WormholeResearchDistance {
			return 0
		}
		points = WormholeYield * t.TimeStep
	}

	a.yield += points
	return points
}

// Objective is a short progress line for the research log.
func (a *Action) Objective() string {
	switch a.kind {
	case KindInstant:
		return a.objective
	case KindPlanet:
		return fmt.Sprintf("Study %s in %s %d/%d", a.target.Name, a.target.SystemName, int(a.yield), int(a.maxYield))
	case KindSolar:
		return fmt.Sprintf("Study the sun of %s %d/%d", a.target.Name, int(a.yield), int(a.maxYield))
	case KindWormhole:
		return fmt.Sprintf("Investigate gravitational anomaly near the %s system.", a.target.SystemName)
	}
	return ""
}

// Description explains how to complete the action.
func (a *Action) Description() string {
	switch a.kind {
	case KindInstant:
		return a.description
	case KindPlanet:
		return fmt.Sprintf("Land on %s in %s and explore. The research will automatically accumulate when near the planet's surface.",
			a.target.Name, a.target.SystemName)
	case KindSolar:
		return fmt.Sprintf("Get as close to the sun in the %s system. The closer you get, the quicker this can be researched.",
			a.target.Name)
	case KindWormhole:
		return fmt.Sprintf("A gravitational disturbance has been detected near the %s system.\nLocate the source of the anomaly and investigate.",
			a.target.SystemName)
	}
	return ""
}
