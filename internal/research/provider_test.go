package research

import (
	"testing"

	"github.com/everforgeworks/galaxies-warp/internal/game"
	"github.com/everforgeworks/galaxies-warp/internal/wormhole"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanetProvider_CachesPerPlanet(t *testing.T) {
	w := testWorld(t, game.Vec2{X: 37})
	ship := w.HeroShip()
	tick := &Tick{World: w, TimeStep: 1}
	p := NewPlanetProvider()

	require.True(t, p.CanProvideResearch(tick, ship))
	a := p.Action(tick, ship)
	require.NotNil(t, a)
	assert.Equal(t, KindPlanet, a.Kind())
	assert.Equal(t, "Terra", a.Target().Name)
	assert.Equal(t, "Sol", a.Target().SystemName)

	assert.Same(t, a, p.Action(tick, ship))
	assert.Len(t, p.DiscoveredActions(), 1)
}

func TestPlanetProvider_NotNearGround(t *testing.T) {
	w := testWorld(t, game.Vec2{X: 60})
	tick := &Tick{World: w, TimeStep: 1}
	p := NewPlanetProvider()

	assert.False(t, p.CanProvideResearch(tick, w.HeroShip()))
	assert.Nil(t, p.Action(tick, w.HeroShip()))
	assert.Empty(t, p.DiscoveredActions())
}

func TestPlanetProvider_NoActionOnceComplete(t *testing.T) {
	w := testWorld(t, game.Vec2{X: 37})
	ship := w.HeroShip()
	p := NewPlanetProvider()

	a := p.Action(&Tick{World: w, TimeStep: 1}, ship)
	require.NotNil(t, a)
	a.DoResearch(&Tick{World: w, TimeStep: 240}, ship)
	require.True(t, a.IsResearchComplete())

	tick := &Tick{World: w, TimeStep: 1}
	assert.False(t, p.CanProvideResearch(tick, ship))
	assert.Nil(t, p.Action(tick, ship))
	assert.Len(t, p.DiscoveredActions(), 1)
}

func TestSolarProvider_SunRadiusGate(t *testing.T) {
	w := testWorld(t, game.Vec2{X: 100})
	ship := w.HeroShip()
	tick := &Tick{World: w, TimeStep: 1}
	p := NewSolarProvider(78)

	assert.False(t, p.CanProvideResearch(tick, ship))
	assert.Nil(t, p.Action(tick, ship))

	ship.Position = game.Vec2{X: 50}
	assert.True(t, p.CanProvideResearch(tick, ship))
	a := p.Action(tick, ship)
	require.NotNil(t, a)
	assert.Equal(t, KindSolar, a.Kind())
	assert.Equal(t, 0, a.Target().ID)
}

func TestSolarProvider_NoActionOnceComplete(t *testing.T) {
	w := testWorld(t, game.Vec2{X: 1})
	ship := w.HeroShip()
	tick := &Tick{World: w, TimeStep: 1}
	p := NewSolarProvider(78)

	a := p.Action(tick, ship)
	require.NotNil(t, a)
	a.DoResearch(tick, ship)
	a.DoResearch(tick, ship)
	require.True(t, a.IsResearchComplete())

	assert.False(t, p.CanProvideResearch(tick, ship))
	assert.Nil(t, p.Action(tick, ship))
}

func TestProvider_Reset(t *testing.T) {
	w := testWorld(t, game.Vec2{X: 37})
	tick := &Tick{World: w, TimeStep: 1}
	p := NewPlanetProvider()

	first := p.Action(tick, w.HeroShip())
	require.NotNil(t, first)
	p.Reset()
	assert.Empty(t, p.DiscoveredActions())

	second := p.Action(tick, w.HeroShip())
	require.NotNil(t, second)
	assert.NotSame(t, first, second)
}

// anomalyWorld has a single debug wormhole pair at (10,0) and (-10,0).
func anomalyWorld(t *testing.T) (*game.World, *wormhole.Network) {
	t.Helper()
	w, err := game.NewWorld(game.Universe{
		BalanceConfig: game.GameBalance{ShipRadius: 1},
		HeroConfig:    game.HeroConfig{Hull: "warp:scout", Type: game.HullStandard},
	})
	require.NoError(t, err)

	n := wormhole.NewNetwork(game.WormholeConfig{
		VisibleDistance:      5,
		Stability:            10,
		MaxPlacementAttempts: 8,
		DebugPair:            true,
	})
	n.Update(w, 0.1)
	require.True(t, n.Generated())
	return w, n
}

func TestWormholeProvider_NearestLiveAnomaly(t *testing.T) {
	w, n := anomalyWorld(t)
	ship := w.HeroShip()
	tick := &Tick{World: w, TimeStep: 1}
	p := NewWormholeProvider(n)

	ship.Position = game.Vec2{X: 10, Y: 2}
	assert.False(t, p.CanProvideResearch(tick, ship), "distortion not live yet")

	n.Update(w, 0.1)
	require.Len(t, n.ActiveDistortions(), 1)
	assert.True(t, p.CanProvideResearch(tick, ship))

	a := p.Action(tick, ship)
	require.NotNil(t, a)
	assert.Equal(t, KindWormhole, a.Kind())
	assert.Equal(t, game.Vec2{X: 10}, a.Target().Position)
	assert.Equal(t, n.ActiveDistortions()[0].WormholeID(), a.Target().ID)
}

func TestWormholeProvider_OutOfRange(t *testing.T) {
	w, n := anomalyWorld(t)
	ship := w.HeroShip()
	ship.Position = game.Vec2{X: 10, Y: 3}
	n.Update(w, 0.1)
	require.Len(t, n.ActiveDistortions(), 1)

	p := NewWormholeProvider(n)
	tick := &Tick{World: w, TimeStep: 1}
	assert.False(t, p.CanProvideResearch(tick, ship))
	assert.Nil(t, p.Action(tick, ship))
}

func TestDefaultProviders_Order(t *testing.T) {
	_, n := anomalyWorld(t)
	var kinds []Kind
	for _, p := range DefaultProviders(game.GameBalance{SunRadius: 78}, n) {
		kinds = append(kinds, p.Kind())
	}
	assert.Equal(t, []Kind{KindPlanet, KindSolar, KindWormhole}, kinds)
}
