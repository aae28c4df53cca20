/*
Package game
File: state.go
Description:
    Manages the runtime state of the host world.
    The World owns the entity arena (systems, planets, ships), the hero,
    the live object list and the shared seeded random stream.

    It also handles the initialization (LoadConfig / NewWorld) logic.
    The World is not safe for concurrent use; the simulation engine serialises
    access with its DataLock.
*/

package game

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrUnknownSystem is returned when a planet references a star system key that does not exist.
var ErrUnknownSystem = errors.New("unknown star system")

// World is the host simulation state shared by every update system.
type World struct {
	Balance GameBalance
	Systems []StarSystem
	Planets []Planet
	Ships   []*Ship
	Hero    Hero
	Random  *SeededRandom

	spawn   Vec2
	objects []Object
}

// LoadConfig reads a universe YAML file from disk.
func LoadConfig(path string) (Universe, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return Universe{}, err
	}
	return ParseConfig(f)
}

// ParseConfig unmarshals a universe document and fills in defaults for missing values.
func ParseConfig(data []byte) (Universe, error) {
	var u Universe
	if err := yaml.Unmarshal(data, &u); err != nil {
		return Universe{}, fmt.Errorf("parse universe: %w", err)
	}
	applyDefaults(&u)
	return u, nil
}

// applyDefaults fills zero-valued tuning fields.
func applyDefaults(u *Universe) {
	b := &u.BalanceConfig
	if b.AtmosphereHeight == 0 {
		b.AtmosphereHeight = 14
	}
	if b.NearGroundMargin == 0 {
		b.NearGroundMargin = 0.25 * b.AtmosphereHeight
	}
	if b.SunRadius == 0 {
		b.SunRadius = 78
	}
	if b.SunHotRadius == 0 {
		b.SunHotRadius = 0.75 * b.SunRadius
	}
	if b.ShipRadius == 0 {
		b.ShipRadius = 1
	}

	r := &u.Research
	if len(r.Ships) == 0 {
		r.Ships = []string{"warp:scout", "warp:explorer"}
	}
	if r.ExchangeRate == 0 {
		r.ExchangeRate = 4
	}
	if r.MarkerItem == "" {
		r.MarkerItem = "warp:researchCharge"
	}

	wh := &u.Wormholes
	if wh.Min == 0 && wh.Max == 0 {
		wh.Min = 100
		wh.Max = 600
	}
	if wh.VisibleDistance == 0 {
		wh.VisibleDistance = 5
	}
	if wh.Stability == 0 {
		wh.Stability = 10
	}
	if wh.MaxPlacementAttempts == 0 {
		wh.MaxPlacementAttempts = 64
	}
	if wh.Texture == "" {
		wh.Texture = "warp:distortionProjectile"
	}

	if u.HeroConfig.Hull == "" {
		u.HeroConfig.Hull = "warp:scout"
	}
	if u.HeroConfig.Type == "" {
		u.HeroConfig.Type = HullStandard
	}
}

// NewWorld builds the entity arena from a parsed universe.
// The hero's ship always gets ID 0; configured ships follow in file order.
func NewWorld(u Universe) (*World, error) {
	w := &World{
		Balance: u.BalanceConfig,
		Random:  NewSeededRandom(u.Seed),
		spawn:   vecFrom(u.HeroConfig.Coordinates),
	}

	systemIDs := make(map[string]int, len(u.Systems))
	for i, sc := range u.Systems {
		systemIDs[sc.Key] = i
		w.Systems = append(w.Systems, StarSystem{
			ID:       i,
			Key:      sc.Key,
			Name:     sc.Name,
			Position: vecFrom(sc.Coordinates),
			Radius:   sc.Radius,
			Hard:     sc.Hard,
		})
	}

	for i, pc := range u.Planets {
		sysID, ok := systemIDs[pc.System]
		if !ok {
			return nil, fmt.Errorf("planet %q: %w %q", pc.Key, ErrUnknownSystem, pc.System)
		}
		w.Planets = append(w.Planets, Planet{
			ID:           i,
			Key:          pc.Key,
			Name:         pc.Name,
			SystemID:     sysID,
			Position:     vecFrom(pc.Coordinates),
			GroundHeight: pc.GroundHeight,
		})
	}

	w.Ships = append(w.Ships, &Ship{
		ID:       0,
		Key:      "hero",
		Hull:     u.HeroConfig.Hull,
		Type:     u.HeroConfig.Type,
		Position: w.spawn,
	})
	for _, sc := range u.Ships {
		t := sc.Type
		if t == "" {
			t = HullStandard
		}
		w.Ships = append(w.Ships, &Ship{
			ID:       len(w.Ships),
			Key:      sc.Key,
			Hull:     sc.Hull,
			Type:     t,
			Position: vecFrom(sc.Coordinates),
		})
	}

	w.Hero = Hero{
		ShipID:  0,
		Credits: u.BalanceConfig.StartingCredits,
		Items:   make(map[string]int),
	}
	return w, nil
}

// SpawnPosition is where the hero started the session.
func (w *World) SpawnPosition() Vec2 {
	return w.spawn
}

// AddObject inserts an object into the live simulation. Adding an object twice is a no-op.
func (w *World) AddObject(o Object) {
	if w.HasObject(o) {
		return
	}
	w.objects = append(w.objects, o)
}

// RemoveObject takes an object out of the live simulation without destroying it.
func (w *World) RemoveObject(o Object) {
	for i, existing := range w.objects {
		if existing == o {
			w.objects = append(w.objects[:i], w.objects[i+1:]...)
			return
		}
	}
}

// HasObject reports whether o is currently live.
func (w *World) HasObject(o Object) bool {
	for _, existing := range w.objects {
		if existing == o {
			return true
		}
	}
	return false
}

// Objects returns a snapshot of the live objects.
func (w *World) Objects() []Object {
	out := make([]Object, len(w.objects))
	copy(out, w.objects)
	return out
}

// Step advances the world by one tick: live objects act first (they may
// redirect or relocate ships), then ship velocities are integrated.
func (w *World) Step(timeStep float64) {
	for _, o := range w.Objects() {
		o.Update(w, timeStep)
	}
	for _, ship := range w.Ships {
		ship.Position = ship.Position.Add(ship.Velocity.Scale(timeStep))
	}
}
