// Package collision implements continuous (swept) AABB collision detection and
// resolution for movers advancing over a fixed time step.
//
// All geometry is float32. Degenerate numeric states (zero displacement, NaN,
// division by zero) never produce errors; they resolve to "no collision".
package collision

import (
	"fmt"

	"github.com/vovakirdan/tank-combat/internal/core"
)

// RefKind tags what an obstacle reference points at.
type RefKind uint8

const (
	RefNone     RefKind = iota // Empty contact slot
	RefTile                    // Static level tile, Index into the static set
	RefOpponent                // The live opposing body injected for one pass
)

// ObstacleRef identifies an obstacle without pointing into a mutable collection.
// The zero value is "no obstacle".
type ObstacleRef struct {
	Kind  RefKind
	Index uint32
}

// TileRef returns a reference to the static tile at index i.
func TileRef(i int) ObstacleRef {
	return ObstacleRef{Kind: RefTile, Index: uint32(i)}
}

// OpponentRef is the reference carried by the injected opponent candidate.
var OpponentRef = ObstacleRef{Kind: RefOpponent}

// IsOpponent reports whether the reference is the live opposing body.
func (r ObstacleRef) IsOpponent() bool {
	return r.Kind == RefOpponent
}

// IsNone reports whether the reference is empty.
func (r ObstacleRef) IsNone() bool {
	return r.Kind == RefNone
}

func (r ObstacleRef) String() string {
	switch r.Kind {
	case RefTile:
		return fmt.Sprintf("tile#%d", r.Index)
	case RefOpponent:
		return "opponent"
	default:
		return "none"
	}
}

// Contact slot indices, selected by the sign of the contact normal.
const (
	ContactAbove = iota // normal.Y > 0: obstacle above the mover
	ContactRight        // normal.X < 0: obstacle to the right
	ContactBelow        // normal.Y < 0: obstacle below
	ContactLeft         // normal.X > 0: obstacle to the left
)

// Rect is an axis-aligned rectangle with a velocity and four contact slots.
// Size components must be strictly positive.
type Rect struct {
	Pos  core.Vec2
	Size core.Vec2
	Vel  core.Vec2

	// Contacts are written by the resolver and never cleared. They are only
	// meaningful for the step in which they were written.
	Contacts [4]ObstacleRef
}

// NewRect creates a resting rectangle.
func NewRect(x, y, w, h float32) Rect {
	return Rect{Pos: core.V(x, y), Size: core.V(w, h)}
}

// Center returns the centre point of the rectangle.
func (r Rect) Center() core.Vec2 {
	return r.Pos.Add(r.Size.Scale(0.5))
}

// Max returns the bottom-right corner (exclusive).
func (r Rect) Max() core.Vec2 {
	return r.Pos.Add(r.Size)
}
