package collision

import (
	"sort"

	"github.com/vovakirdan/tank-combat/internal/core"
)

// Candidate is an obstacle considered by a pass, tagged with its identity.
type Candidate struct {
	Rect Rect
	Ref  ObstacleRef
}

// PassOptions tunes the response applied on top of the generic resolver.
type PassOptions struct {
	// Projectile stops the mover dead on any resolved collision.
	Projectile bool
}

// Strike is a resolved collision against the live opponent.
type Strike struct {
	Contact
	// Velocity is the mover's velocity right after the resolver deflected it,
	// before a projectile is stopped.
	Velocity core.Vec2
}

// Result is the outcome of one pass for one mover.
type Result struct {
	Position core.Vec2
	Velocity core.Vec2
	Collided bool
	Contacts []Contact // In resolution order
	Struck   *Strike   // Set at most once, for the first opponent contact
}

type timedHit struct {
	index int
	time  float32
}

// Pass moves one body against candidates for one step of dt seconds:
//
//  1. every candidate is swept against the current velocity;
//  2. hits are stably sorted by time of first contact;
//  3. each hit is resolved in order, re-tested against the possibly corrected
//     velocity, so an earlier resolution may cancel a later one;
//  4. position is integrated once with the final velocity.
//
// mover is updated in place and the same outcome is returned as a Result.
func Pass(mover *Rect, dt float32, candidates []Candidate, opts PassOptions) Result {
	var hits []timedHit
	for i := range candidates {
		if hit, ok := DynamicRectVsRect(mover, dt, candidates[i].Rect); ok {
			hits = append(hits, timedHit{index: i, time: hit.Time})
		}
	}

	sort.SliceStable(hits, func(a, b int) bool {
		return hits[a].time < hits[b].time
	})

	var res Result
	for _, h := range hits {
		c := candidates[h.index]
		contact, ok := ResolveDynamicRectVsRect(mover, dt, c.Rect, c.Ref)
		if !ok {
			continue
		}

		res.Collided = true
		res.Contacts = append(res.Contacts, contact)

		if c.Ref.IsOpponent() && res.Struck == nil {
			res.Struck = &Strike{Contact: contact, Velocity: mover.Vel}
		}
		if opts.Projectile {
			mover.Vel = core.Vec2{}
		}
	}

	mover.Pos = mover.Pos.Add(mover.Vel.Scale(dt))

	res.Position = mover.Pos
	res.Velocity = mover.Vel
	return res
}
