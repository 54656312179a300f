package pilots

import (
	"github.com/vovakirdan/tank-combat/internal/core"
	"github.com/vovakirdan/tank-combat/internal/registry"
)

// Idle never acts. Useful as a target.
type Idle struct{}

func (Idle) ID() string                           { return "idle" }
func (Idle) Title() string                        { return "Sitting Duck" }
func (Idle) Reset()                               {}
func (Idle) Decide(core.TankView) core.InputFrame { return core.NewInputFrame() }

func init() {
	registry.Register("idle", func() registry.Pilot {
		return Idle{}
	})
}
