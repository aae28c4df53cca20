/*
Package game
File: mechanics.go
Description:
    Contains the "Physics" and query helpers of the host world.
    This includes vector math, nearest-entity lookups, the near-ground and
    place-empty checks, the force primitive that pulls ships toward a point,
    and velocity integration.
*/

package game

import "math"

// MaxPullDistance is the range of the pull primitive used by force beacons and distortions.
const MaxPullDistance = 0.7

// PullAcceleration is the acceleration applied to a pulled ship sitting right at the beacon edge.
const PullAcceleration = 4.0

// Vec2 is a 2D point or direction in world units.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Len returns the magnitude of the vector.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Dst computes the Euclidean distance between two points.
func (v Vec2) Dst(o Vec2) float64 { return math.Hypot(o.X-v.X, o.Y-v.Y) }

// vecFrom converts a YAML coordinate list into a Vec2. Missing axes default to 0.
func vecFrom(c []float64) Vec2 {
	var v Vec2
	if len(c) > 0 {
		v.X = c[0]
	}
	if len(c) > 1 {
		v.Y = c[1]
	}
	return v
}

// System returns the star system with the given ID, or nil.
func (w *World) System(id int) *StarSystem {
	if id < 0 || id >= len(w.Systems) {
		return nil
	}
	return &w.Systems[id]
}

// Planet returns the planet with the given ID, or nil.
func (w *World) Planet(id int) *Planet {
	if id < 0 || id >= len(w.Planets) {
		return nil
	}
	return &w.Planets[id]
}

// Ship returns the ship with the given ID, or nil.
func (w *World) Ship(id int) *Ship {
	if id < 0 || id >= len(w.Ships) {
		return nil
	}
	return w.Ships[id]
}

// HeroShip returns the ship flown by the hero.
func (w *World) HeroShip() *Ship {
	return w.Ship(w.Hero.ShipID)
}

// NearestPlanet returns the planet closest to pos, or nil if the world has none.
func (w *World) NearestPlanet(pos Vec2) *Planet {
	var nearest *Planet
	best := math.Inf(1)
	for i := range w.Planets {
		if d := w.Planets[i].Position.Dst(pos); d < best {
			best = d
			nearest = &w.Planets[i]
		}
	}
	return nearest
}

// NearestSystem returns the star system whose sun is closest to pos, or nil.
func (w *World) NearestSystem(pos Vec2) *StarSystem {
	var nearest *StarSystem
	best := math.Inf(1)
	for i := range w.Systems {
		if d := w.Systems[i].Position.Dst(pos); d < best {
			best = d
			nearest = &w.Systems[i]
		}
	}
	return nearest
}

// IsNearGround reports whether pos hovers low enough above the planet's surface.
func (w *World) IsNearGround(p *Planet, pos Vec2) bool {
	if p == nil {
		return false
	}
	return p.Position.Dst(pos)-p.GroundHeight < w.Balance.NearGroundMargin
}

// IsPlaceEmpty reports whether pos is free of obstruction: no sun core, no ship hull,
// and (when considerPlanets is set) no planet body or atmosphere.
func (w *World) IsPlaceEmpty(pos Vec2, considerPlanets bool) bool {
	if considerPlanets {
		if p := w.NearestPlanet(pos); p != nil && p.Position.Dst(pos) < p.GroundHeight+w.Balance.AtmosphereHeight {
			return false
		}
	}

	if s := w.NearestSystem(pos); s != nil && s.Position.Dst(pos) < w.Balance.SunHotRadius {
		return false
	}

	for _, ship := range w.Ships {
		if ship.Position.Dst(pos) < w.Balance.ShipRadius {
			return false
		}
	}
	return true
}

// PullShips finds the nearest non-station ship within maxDist of anchor and accelerates it
// toward anchor. The pull grows stronger as the ship gets closer.
// Returns the pulled ship, or nil if none is in range.
func (w *World) PullShips(anchor Vec2, maxDist, timeStep float64) *Ship {
	var pulled *Ship
	best := maxDist
	for _, ship := range w.Ships {
		if ship.Type == HullStation {
			continue
		}
		if d := ship.Position.Dst(anchor); d < best {
			best = d
			pulled = ship
		}
	}
	if pulled == nil || best == 0 {
		return pulled
	}

	dir := anchor.Sub(pulled.Position).Scale(1 / best)
	strength := PullAcceleration * (1 - best/maxDist)
	pulled.Velocity = pulled.Velocity.Add(dir.Scale(strength * timeStep))
	return pulled
}

// ReceiveForce applies a force to the ship for one tick.
// When acc is set the force is treated as an acceleration (mass independent).
func (s *Ship) ReceiveForce(force Vec2, timeStep float64, acc bool) {
	if !acc {
		force = force.Scale(1 / shipMass(s.Type))
	}
	s.Velocity = s.Velocity.Add(force.Scale(timeStep))
}

// SetTransform instantly relocates the ship.
func (s *Ship) SetTransform(pos Vec2, angle float64) {
	s.Position = pos
	s.Angle = angle
}

func shipMass(t HullType) float64 {
	switch t {
	case HullBig:
		return 4
	case HullStation:
		return 20
	default:
		return 1
	}
}
