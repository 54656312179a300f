package collision

import "github.com/vovakirdan/tank-combat/internal/core"

// Contact is one resolved collision.
type Contact struct {
	Ref    ObstacleRef
	Time   float32
	Normal core.Vec2
}

// ResolveDynamicRectVsRect runs the swept test and, on a hit, records ref in the
// contact slot picked by the normal and cancels the penetrating part of this
// step's motion:
//
//	vel += normal * |vel| * (1 - t)
//
// Tangential motion is untouched. The velocity change is permanent, so momentum
// into an obstacle is absorbed. A zero normal (corner graze) is a valid hit
// that changes nothing.
func ResolveDynamicRectVsRect(mover *Rect, dt float32, target Rect, ref ObstacleRef) (Contact, bool) {
	hit, ok := DynamicRectVsRect(mover, dt, target)
	if !ok {
		return Contact{}, false
	}

	if hit.Normal.Y > 0 {
		mover.Contacts[ContactAbove] = ref
	}
	if hit.Normal.X < 0 {
		mover.Contacts[ContactRight] = ref
	}
	if hit.Normal.Y < 0 {
		mover.Contacts[ContactBelow] = ref
	}
	if hit.Normal.X > 0 {
		mover.Contacts[ContactLeft] = ref
	}

	mover.Vel = mover.Vel.Add(hit.Normal.Mul(mover.Vel.Abs()).Scale(1 - hit.Time))

	return Contact{Ref: ref, Time: hit.Time, Normal: hit.Normal}, true
}
