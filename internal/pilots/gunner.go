package pilots

import (
	"github.com/vovakirdan/tank-combat/internal/core"
	"github.com/vovakirdan/tank-combat/internal/registry"
)

// DefaultTurnEvery is how many ticks an aiming pilot waits between
// compass steps.
const DefaultTurnEvery = 6

// Gunner holds its ground, turns towards the opponent and fires whenever it
// is lined up.
type Gunner struct {
	TurnEvery uint64

	lastTurn uint64
	turned   bool
}

// NewGunner creates a turret pilot.
func NewGunner() *Gunner {
	return &Gunner{TurnEvery: DefaultTurnEvery}
}

func (p *Gunner) ID() string    { return "gunner" }
func (p *Gunner) Title() string { return "Turret Gunner" }

// Reset forgets the turn pacing.
func (p *Gunner) Reset() {
	p.lastTurn = 0
	p.turned = false
}

// Decide implements registry.Pilot.
func (p *Gunner) Decide(view core.TankView) core.InputFrame {
	in := core.NewInputFrame()
	if view.Spinning {
		return in
	}

	turn := aim(view)
	if turn == core.ActionNone {
		if view.CanFire && !view.BulletLive {
			in.Set(core.ActionFire)
		}
		return in
	}

	if p.mayTurn(view.Tick) {
		in.Set(turn)
	}
	return in
}

// mayTurn paces compass steps so aiming takes visible time.
func (p *Gunner) mayTurn(tick uint64) bool {
	if p.turned && tick < p.lastTurn+p.TurnEvery {
		return false
	}
	p.lastTurn = tick
	p.turned = true
	return true
}

func init() {
	registry.Register("gunner", func() registry.Pilot {
		return NewGunner()
	})
}
