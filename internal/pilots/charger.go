package pilots

import (
	"github.com/vovakirdan/tank-combat/internal/core"
	"github.com/vovakirdan/tank-combat/internal/registry"
)

// detourTicks is how long a charger drives on after bumping into something
// before it aims again.
const detourTicks = 30

// Charger drives at the opponent, firing when lined up. After a bump it
// turns away like the classic CPU and keeps going for a while before
// aiming again.
type Charger struct {
	aimer       Gunner
	detourUntil uint64
}

// NewCharger creates a rushing pilot.
func NewCharger() *Charger {
	return &Charger{aimer: Gunner{TurnEvery: DefaultTurnEvery}}
}

func (p *Charger) ID() string    { return "charger" }
func (p *Charger) Title() string { return "Charger" }

func (p *Charger) Reset() {
	p.aimer.Reset()
	p.detourUntil = 0
}

// Decide implements registry.Pilot.
func (p *Charger) Decide(view core.TankView) core.InputFrame {
	if view.Spinning {
		return core.NewInputFrame()
	}

	if view.Blocked {
		p.detourUntil = view.Tick + detourTicks
		in := core.Frame(core.ActionForward, core.ActionTurnStepRight)
		if view.CanFire && !view.BulletLive && aim(view) == core.ActionNone {
			in.Set(core.ActionFire)
		}
		return in
	}

	if view.Tick < p.detourUntil {
		return core.Frame(core.ActionForward)
	}

	in := p.aimer.Decide(view)
	in.Set(core.ActionForward)
	return in
}

func init() {
	registry.Register("charger", func() registry.Pilot {
		return NewCharger()
	})
}
