package pilots

import (
	"github.com/vovakirdan/tank-combat/internal/core"
	"github.com/vovakirdan/tank-combat/internal/registry"
)

// CPU is the arcade computer tank: it always drives forward, turns one
// compass point clockwise whenever its last move was blocked and fires as
// soon as the rules allow and its last shot is spent.
type CPU struct{}

// NewCPU creates the classic computer pilot.
func NewCPU() *CPU {
	return &CPU{}
}

func (p *CPU) ID() string    { return "cpu" }
func (p *CPU) Title() string { return "Classic CPU" }
func (p *CPU) Reset()        {}

// Decide implements registry.Pilot.
func (p *CPU) Decide(view core.TankView) core.InputFrame {
	in := core.Frame(core.ActionForward)
	if view.Blocked {
		in.Set(core.ActionTurnStepRight)
	}
	if view.CanFire && !view.BulletLive {
		in.Set(core.ActionFire)
	}
	return in
}

func init() {
	registry.Register("cpu", func() registry.Pilot {
		return NewCPU()
	})
}
