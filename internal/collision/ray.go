package collision

import (
	"github.com/chewxy/math32"

	"github.com/vovakirdan/tank-combat/internal/core"
)

// Hit describes where and when a ray first touches a rectangle.
type Hit struct {
	Point  core.Vec2 // Contact point on the ray
	Normal core.Vec2 // Axis-aligned face normal, or zero for an exact corner
	Time   float32   // Fraction of dir at first contact
}

// RayVsRect casts a ray from origin along dir (the full displacement, not a
// unit vector) against target using the slab method.
//
// A zero Normal on a reported hit means both axes were entered at exactly the
// same time: the contact is a corner graze with no single resolving axis.
func RayVsRect(origin, dir core.Vec2, target Rect) (Hit, bool) {
	invdir := dir.Inv()

	tNear := target.Pos.Sub(origin).Mul(invdir)
	tFar := target.Pos.Add(target.Size).Sub(origin).Mul(invdir)

	// 0 * Inf: the ray runs exactly along a slab boundary.
	if tFar.HasNaN() || tNear.HasNaN() {
		return Hit{}, false
	}

	if tNear.X > tFar.X {
		tNear.X, tFar.X = tFar.X, tNear.X
	}
	if tNear.Y > tFar.Y {
		tNear.Y, tFar.Y = tFar.Y, tNear.Y
	}

	if tNear.X > tFar.Y || tNear.Y > tFar.X {
		return Hit{}, false
	}

	hitNear := math32.Max(tNear.X, tNear.Y)
	hitFar := math32.Min(tFar.X, tFar.Y)

	// Target is entirely behind the ray.
	if hitFar < 0 {
		return Hit{}, false
	}

	hit := Hit{
		Point: origin.Add(dir.Scale(hitNear)),
		Time:  hitNear,
	}

	switch {
	case tNear.X > tNear.Y:
		if invdir.X < 0 {
			hit.Normal = core.V(1, 0)
		} else {
			hit.Normal = core.V(-1, 0)
		}
	case tNear.X < tNear.Y:
		if invdir.Y < 0 {
			hit.Normal = core.V(0, 1)
		} else {
			hit.Normal = core.V(0, -1)
		}
	}

	return hit, true
}
