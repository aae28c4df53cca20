package research

import (
	"math"
	"testing"

	"github.com/everforgeworks/galaxies-warp/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Sol sits at the origin with Terra (ground height 5) at x=30.
func testWorld(t *testing.T, hero game.Vec2) *game.World {
	t.Helper()
	u := game.Universe{
		BalanceConfig: game.GameBalance{
			AtmosphereHeight: 14,
			NearGroundMargin: 3.5,
			SunRadius:        78,
			SunHotRadius:     58.5,
			ShipRadius:       1,
		},
		HeroConfig: game.HeroConfig{
			Hull:        "warp:scout",
			Type:        game.HullStandard,
			Coordinates: []float64{hero.X, hero.Y},
		},
		Systems: []game.StarSystemConfig{
			{Key: "sol", Name: "Sol", Coordinates: []float64{0, 0}, Radius: 300},
		},
		Planets: []game.PlanetConfig{
			{Key: "terra", Name: "Terra", System: "sol", Coordinates: []float64{30, 0}, GroundHeight: 5},
		},
	}
	w, err := game.NewWorld(u)
	require.NoError(t, err)
	return w
}

func TestPlanetAction_MaxYield(t *testing.T) {
	p := &game.Planet{ID: 0, Name: "Terra"}

	assert.Equal(t, 120.0, NewPlanetAction(p, &game.StarSystem{Name: "Sol"}).MaxYield())
	assert.Equal(t, 240.0, NewPlanetAction(p, &game.StarSystem{Name: "Sol", Hard: true}).MaxYield())
}

func TestPlanetAction_AccumulatesNearGroundOnly(t *testing.T) {
	w := testWorld(t, game.Vec2{X: 37})
	ship := w.HeroShip()
	tick := &Tick{World: w, TimeStep: 1}
	a := NewPlanetAction(w.Planet(0), w.System(0))

	assert.InDelta(t, 0.5, a.DoResearch(tick, ship), 1e-9)
	assert.InDelta(t, 0.5, a.Yield(), 1e-9)

	ship.Position = game.Vec2{X: 60}
	assert.Equal(t, 0.0, a.DoResearch(tick, ship))
	assert.InDelta(t, 0.5, a.Yield(), 1e-9)
}

func TestPlanetAction_HardDoublesRate(t *testing.T) {
	w := testWorld(t, game.Vec2{X: 37})
	sys := *w.System(0)
	sys.Hard = true
	a := NewPlanetAction(w.Planet(0), &sys)

	got := a.DoResearch(&Tick{World: w, TimeStep: 2}, w.HeroShip())
	assert.InDelta(t, 2.0, got, 1e-9)
}

func TestSolarAction_InverseDistance(t *testing.T) {
	w := testWorld(t, game.Vec2{X: 1})
	ship := w.HeroShip()
	tick := &Tick{World: w, TimeStep: 1}

	near := NewSolarAction(w.System(0))
	assert.InDelta(t, 100.0, near.DoResearch(tick, ship), 1e-9)

	ship.Position = game.Vec2{X: 2}
	far := NewSolarAction(w.System(0))
	assert.InDelta(t, 50.0, far.DoResearch(tick, ship), 1e-9)

	assert.Equal(t, 200.0, near.MaxYield())
}

func TestSolarAction_AtSunCoreStaysFinite(t *testing.T) {
	w := testWorld(t, game.Vec2{})
	a := NewSolarAction(w.System(0))

	got := a.DoResearch(&Tick{World: w, TimeStep: 1}, w.HeroShip())
	assert.False(t, math.IsInf(got, 0))
	assert.False(t, math.IsNaN(got))
	assert.True(t, a.IsResearchComplete())
}

func TestWormholeAction_Gate(t *testing.T) {
	w := testWorld(t, game.Vec2{X: 502.5})
	ship := w.HeroShip()
	tick := &Tick{World: w, TimeStep: 0.5}
	a := NewWormholeAction(3, game.Vec2{X: 500}, w.System(0))

	assert.Equal(t, 0.0, a.DoResearch(tick, ship))

	ship.Position = game.Vec2{X: 501}
	assert.Equal(t, 0.5, a.DoResearch(tick, ship))

	ship.Position = game.Vec2{X: 502}
	assert.Equal(t, 0.5, a.DoResearch(tick, ship))
}

func TestWormholeAction_CompletesAtTen(t *testing.T) {
	w := testWorld(t, game.Vec2{X: 500})
	ship := w.HeroShip()
	tick := &Tick{World: w, TimeStep: 1}
	a := NewWormholeAction(0, game.Vec2{X: 500}, nil)

	for i := 0; i < 9; i++ {
		a.DoResearch(tick, ship)
		require.False(t, a.IsResearchComplete())
	}
	assert.Equal(t, 1.0, a.DoResearch(tick, ship))
	assert.True(t, a.IsResearchComplete())
}

func TestAction_NoYieldAfterComplete(t *testing.T) {
	w := testWorld(t, game.Vec2{X: 1})
	ship := w.HeroShip()
	tick := &Tick{World: w, TimeStep: 1}

	actions := []*Action{
		NewInstantAction(5, "Survey", "Instant survey"),
		NewSolarAction(w.System(0)),
		NewWormholeAction(0, game.Vec2{X: 1}, nil),
	}
	for _, a := range actions {
		for i := 0; i < 20 && !a.IsResearchComplete(); i++ {
			a.DoResearch(tick, ship)
		}
		require.True(t, a.IsResearchComplete(), a.Kind().String())
		for i := 0; i < 3; i++ {
			assert.Equal(t, 0.0, a.DoResearch(tick, ship), a.Kind().String())
		}
	}
}

func TestAction_OvershootIsKept(t *testing.T) {
	w := testWorld(t, game.Vec2{X: 500})
	tick := &Tick{World: w, TimeStep: 3}
	a := NewWormholeAction(0, game.Vec2{X: 500}, nil)

	var total float64
	for !a.IsResearchComplete() {
		total += a.DoResearch(tick, w.HeroShip())
	}
	assert.Equal(t, 12.0, a.Yield())
	assert.Equal(t, 12.0, total)
}

func TestInstantAction_AwardsOnce(t *testing.T) {
	w := testWorld(t, game.Vec2{X: 500})
	a := NewInstantAction(25, "Catalogue", "Catalogue the starting system")

	assert.Equal(t, 25.0, a.DoResearch(&Tick{World: w, TimeStep: 0.01}, w.HeroShip()))
	assert.True(t, a.IsResearchComplete())
	assert.Equal(t, "Catalogue", a.Objective())
	assert.Equal(t, "Catalogue the starting system", a.Description())
}

func TestAction_TextIsNotEmpty(t *testing.T) {
	w := testWorld(t, game.Vec2{})
	for _, a := range []*Action{
		NewPlanetAction(w.Planet(0), w.System(0)),
		NewSolarAction(w.System(0)),
		NewWormholeAction(1, game.Vec2{X: 100}, w.System(0)),
	} {
		assert.NotEmpty(t, a.Objective(), a.Kind().String())
		assert.NotEmpty(t, a.Description(), a.Kind().String())
	}
}
