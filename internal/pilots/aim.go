// Package pilots contains the built-in tank controllers. Importing it
// registers every pilot with the registry.
package pilots

import (
	"github.com/chewxy/math32"

	"github.com/vovakirdan/tank-combat/internal/core"
)

const compassPoints = 16

// headingTo returns the compass point closest to the direction from the
// tank's centre to the opponent's centre.
func headingTo(view core.TankView) int {
	d := view.OpponentCenter().Sub(view.Center())
	if d.IsZero() {
		return view.Heading
	}
	theta := math32.Atan2(d.Y, d.X)
	h := int(math32.Floor(theta/(math32.Pi/8) + 0.5))
	return ((h % compassPoints) + compassPoints) % compassPoints
}

// aim returns the one-step turn that brings the tank closer to facing the
// opponent, or ActionNone when it already does.
func aim(view core.TankView) core.Action {
	diff := (headingTo(view) - view.Heading + compassPoints) % compassPoints
	switch {
	case diff == 0:
		return core.ActionNone
	case diff <= compassPoints/2:
		// Stepping right increases the compass point
		return core.ActionTurnStepRight
	default:
		return core.ActionTurnStepLeft
	}
}
