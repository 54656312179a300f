package collision

// DynamicRectVsRect tests whether mover, travelling mover.Vel*dt, touches target
// within this step. The hit time lies in [0, 1).
//
// A mover with exactly zero velocity never collides: rectangles are assumed
// not to overlap at the start of a step.
func DynamicRectVsRect(mover *Rect, dt float32, target Rect) (Hit, bool) {
	if mover.Vel.IsZero() {
		return Hit{}, false
	}

	half := mover.Size.Scale(0.5)
	expanded := Rect{
		Pos:  target.Pos.Sub(half),
		Size: target.Size.Add(mover.Size),
	}

	hit, ok := RayVsRect(mover.Pos.Add(half), mover.Vel.Scale(dt), expanded)
	if !ok {
		return Hit{}, false
	}
	if hit.Time >= 0 && hit.Time < 1 {
		return hit, true
	}
	return Hit{}, false
}
