/*
Package wormhole
File: distortion.go
Description:
    The live simulation body of an activated wormhole. Each tick it pulls the
    nearest eligible ship toward its anchor; a ship that reaches the core is
    relocated next to the paired wormhole with its velocity amplified.
*/

package wormhole

import "github.com/everforgeworks/galaxies-warp/internal/game"

// TeleportDistance is how close to the anchor a ship must get to be carried through.
const TeleportDistance = 0.1

// TeleportBoost scales the velocity kick a ship receives on exit.
const TeleportBoost = 10.0

// TargetOffset keeps the exit point off the partner's anchor so a ship is not bounced straight back.
var TargetOffset = game.Vec2{X: 0.2, Y: 0.2}

// Distortion is the live object of an enabled wormhole.
type Distortion struct {
	network   *Network
	entry     *Wormhole
	anchor    game.Vec2
	target    game.Vec2
	stability float64
}

// DistortionState is a plain snapshot of a distortion, safe to serialise.
type DistortionState struct {
	WormholeID int       `json:"wormhole_id"`
	Anchor     game.Vec2 `json:"anchor"`
	Target     game.Vec2 `json:"target"`
	Stability  float64   `json:"stability"`
}

func newDistortion(n *Network, wh *Wormhole, stability float64) *Distortion {
	return &Distortion{
		network:   n,
		entry:     wh,
		anchor:    wh.Position,
		target:    wh.partner.Position.Add(TargetOffset),
		stability: stability,
	}
}

// Update pulls the nearest ship and teleports it once it reaches the core.
func (d *Distortion) Update(w *game.World, timeStep float64) {
	ship := w.PullShips(d.anchor, game.MaxPullDistance, timeStep)
	if ship == nil || ship.Position.Dst(d.anchor) >= TeleportDistance {
		return
	}

	from := ship.Position
	// Reapplying the ship's own angle here diverges to NaN over repeated jumps.
	ship.SetTransform(d.target, 0)
	ship.ReceiveForce(ship.Velocity.Scale(TeleportBoost), timeStep, true)

	if d.network != nil {
		d.network.teleported(TeleportEvent{
			ShipID:  ship.ID,
			EntryID: d.entry.ID,
			ExitID:  d.entry.partner.ID,
			From:    from,
			To:      d.target,
		})
	}
}

// ReceiveDamage only lets energy damage through; it lowers stability.
// Stability reaching zero currently has no effect.
func (d *Distortion) ReceiveDamage(amount float64, kind game.DamageType) {
	if kind != game.DamageEnergy {
		return
	}
	d.stability -= amount
}

func (d *Distortion) Position() game.Vec2 { return d.anchor }

// Target is where teleported ships come out.
func (d *Distortion) Target() game.Vec2 { return d.target }

func (d *Distortion) Stability() float64 { return d.stability }

// WormholeID identifies the wormhole this distortion belongs to.
func (d *Distortion) WormholeID() int { return d.entry.ID }

// Snapshot captures the distortion as a plain record.
func (d *Distortion) Snapshot() DistortionState {
	return DistortionState{
		WormholeID: d.entry.ID,
		Anchor:     d.anchor,
		Target:     d.target,
		Stability:  d.stability,
	}
}
