package wormhole

import "github.com/everforgeworks/galaxies-warp/internal/game"

const (
	// WarnInterval is the game time between two proximity checks.
	WarnInterval = 0.5
	// WarnDistance is the hero distance under which a live distortion raises the warning.
	WarnDistance = 5.0
)

// Warner raises a "Distortion Near" warning while a live distortion is close to the hero.
type Warner struct {
	network  *Network
	timer    float64
	warning  bool
	onChange func(bool)
}

// NewWarner creates a warner watching n. onChange, if set, is called whenever the warning flips.
func NewWarner(n *Network, onChange func(bool)) *Warner {
	return &Warner{network: n, timer: WarnInterval, onChange: onChange}
}

func (wr *Warner) Update(w *game.World, timeStep float64) {
	wr.timer -= timeStep
	if wr.timer > 0 {
		return
	}
	wr.timer = WarnInterval

	near := false
	if hero := w.HeroShip(); hero != nil {
		for _, d := range wr.network.ActiveDistortions() {
			if d.Position().Dst(hero.Position) < WarnDistance {
				near = true
				break
			}
		}
	}

	if near != wr.warning {
		wr.warning = near
		if wr.onChange != nil {
			wr.onChange(near)
		}
	}
}

// Warning reports the result of the latest proximity check.
func (wr *Warner) Warning() bool { return wr.warning }
