package collision

import "github.com/vovakirdan/tank-combat/internal/core"

// PointInRect reports whether p lies in the half-open box [r.Pos, r.Pos+r.Size).
func PointInRect(p core.Vec2, r Rect) bool {
	return p.X >= r.Pos.X && p.Y >= r.Pos.Y &&
		p.X < r.Pos.X+r.Size.X && p.Y < r.Pos.Y+r.Size.Y
}

// RectsOverlap is a strict separating-axis test: rectangles that only share an
// edge do not overlap.
func RectsOverlap(a, b Rect) bool {
	return a.Pos.X < b.Pos.X+b.Size.X && a.Pos.X+a.Size.X > b.Pos.X &&
		a.Pos.Y < b.Pos.Y+b.Size.Y && a.Pos.Y+a.Size.Y > b.Pos.Y
}
