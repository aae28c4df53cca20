package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testWorld(t *testing.T) *World {
	t.Helper()
	u := Universe{
		Systems: []StarSystemConfig{
			{Key: "a", Name: "Alpha", Coordinates: []float64{0, 0}, Radius: 100},
			{Key: "b", Name: "Beta", Coordinates: []float64{1000, 0}, Radius: 100},
		},
		Planets: []PlanetConfig{
			{Key: "a1", Name: "Alpha I", System: "a", Coordinates: []float64{50, 0}, GroundHeight: 5},
			{Key: "b1", Name: "Beta I", System: "b", Coordinates: []float64{1050, 0}, GroundHeight: 5},
		},
		Ships: []ShipConfig{
			{Key: "station", Hull: "core:station", Type: HullStation, Coordinates: []float64{500, 500}},
		},
	}
	applyDefaults(&u)
	w, err := NewWorld(u)
	require.NoError(t, err)
	return w
}

func TestNearestQueries(t *testing.T) {
	w := testWorld(t)

	assert.Equal(t, "Alpha I", w.NearestPlanet(Vec2{60, 10}).Name)
	assert.Equal(t, "Beta I", w.NearestPlanet(Vec2{900, 0}).Name)
	assert.Equal(t, "Beta", w.NearestSystem(Vec2{700, 0}).Name)

	empty, err := NewWorld(Universe{})
	require.NoError(t, err)
	assert.Nil(t, empty.NearestPlanet(Vec2{}))
	assert.Nil(t, empty.NearestSystem(Vec2{}))
}

func TestIsNearGround(t *testing.T) {
	w := testWorld(t)
	p := w.Planet(0)

	assert.True(t, w.IsNearGround(p, Vec2{57, 0}))
	assert.False(t, w.IsNearGround(p, Vec2{70, 0}))
	assert.False(t, w.IsNearGround(nil, Vec2{57, 0}))
}

func TestIsPlaceEmpty(t *testing.T) {
	w := testWorld(t)

	assert.False(t, w.IsPlaceEmpty(Vec2{10, 0}, true), "inside the sun core")
	assert.False(t, w.IsPlaceEmpty(Vec2{60, 0}, true), "inside the planet atmosphere")
	assert.False(t, w.IsPlaceEmpty(Vec2{500.5, 500}, true), "on top of a ship")
	assert.True(t, w.IsPlaceEmpty(Vec2{80, 80}, true))
}

func TestPullShips(t *testing.T) {
	w := testWorld(t)
	hero := w.HeroShip()
	hero.Position = Vec2{200.5, 200}

	pulled := w.PullShips(Vec2{200, 200}, MaxPullDistance, 1)
	require.NotNil(t, pulled)
	assert.Equal(t, hero.ID, pulled.ID)
	assert.Less(t, hero.Velocity.X, 0.0, "pulled toward the anchor")

	assert.Nil(t, w.PullShips(Vec2{-300, -300}, MaxPullDistance, 1))
}

func TestPullShips_IgnoresStations(t *testing.T) {
	w := testWorld(t)
	assert.Nil(t, w.PullShips(Vec2{500.2, 500}, MaxPullDistance, 1))
}

func TestStep_IntegratesVelocity(t *testing.T) {
	w := testWorld(t)
	hero := w.HeroShip()
	hero.Velocity = Vec2{2, -1}

	w.Step(0.5)
	assert.InDelta(t, 1.0, hero.Position.X, 1e-9)
	assert.InDelta(t, -0.5, hero.Position.Y, 1e-9)
}

func TestReceiveForce(t *testing.T) {
	s := &Ship{Type: HullBig, Velocity: Vec2{1, 0}}
	s.ReceiveForce(Vec2{8, 0}, 1, false)
	assert.Equal(t, Vec2{3, 0}, s.Velocity)

	s.ReceiveForce(Vec2{1, 0}, 1, true)
	assert.Equal(t, Vec2{4, 0}, s.Velocity)
}
