// Package core provides fundamental types and utilities for the combat arena.
// It contains no rendering or terminal dependencies to keep game logic pure
// and testable.
package core

import "github.com/chewxy/math32"

// Vec2 is a 2D vector in arena pixels. Y grows downward.
type Vec2 struct {
	X, Y float32
}

// V is shorthand for constructing a Vec2.
func V(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Mul multiplies component-wise.
func (v Vec2) Mul(o Vec2) Vec2 {
	return Vec2{X: v.X * o.X, Y: v.Y * o.Y}
}

// Scale multiplies both components by s.
func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Inv returns the component-wise reciprocal. Zero components become signed
// infinity following IEEE 754, which the slab test in package collision relies on.
func (v Vec2) Inv() Vec2 {
	return Vec2{X: 1 / v.X, Y: 1 / v.Y}
}

// Abs returns the component-wise absolute value.
func (v Vec2) Abs() Vec2 {
	return Vec2{X: math32.Abs(v.X), Y: math32.Abs(v.Y)}
}

// IsZero reports whether both components are exactly zero.
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// HasNaN reports whether either component is NaN.
func (v Vec2) HasNaN() bool {
	return math32.IsNaN(v.X) || math32.IsNaN(v.Y)
}

// Len returns the Euclidean length.
func (v Vec2) Len() float32 {
	return math32.Hypot(v.X, v.Y)
}
