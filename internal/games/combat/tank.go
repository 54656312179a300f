package combat

import (
	"github.com/chewxy/math32"

	"github.com/vovakirdan/tank-combat/internal/collision"
	"github.com/vovakirdan/tank-combat/internal/core"
)

// CompassPoints is the number of discrete headings a tank can face.
const CompassPoints = 16

const (
	compassStep = math32.Pi / 8
	fullTurn    = 2 * math32.Pi
)

// muzzleOffsets is the bullet spawn point relative to an 8x8 tank's
// top-left corner, per compass point.
var muzzleOffsets = [CompassPoints]core.Vec2{
	{X: 7, Y: 3}, {X: 7, Y: 5}, {X: 7, Y: 7}, {X: 5, Y: 7},
	{X: 3, Y: 7}, {X: 2, Y: 7}, {X: 0, Y: 7}, {X: 0, Y: 5},
	{X: 0, Y: 3}, {X: 0, Y: 2}, {X: 0, Y: 0}, {X: 2, Y: 0},
	{X: 3, Y: 0}, {X: 5, Y: 0}, {X: 7, Y: 0}, {X: 7, Y: 2},
}

// directions holds the unit vector of each compass point, y pointing down.
var directions [CompassPoints]core.Vec2

func init() {
	for i := range directions {
		s, c := math32.Sincos(float32(i) * compassStep)
		directions[i] = core.V(snap(c), snap(s))
	}
}

// snap removes the rounding residue of sin/cos at multiples of pi/2.
func snap(v float32) float32 {
	if math32.Abs(v) < 1e-6 {
		return 0
	}
	return v
}

// Heading quantises a facing angle to a compass point. Positive angles turn
// counter-clockwise on screen.
func Heading(angle float32) int {
	q := angle / math32.Pi * 8
	// Bias away from zero so angles reached by whole compass steps do not
	// truncate onto the neighbouring point.
	r := int(q + math32.Copysign(1e-3, q))
	if r < 0 {
		r = -r
	} else {
		r = CompassPoints - r
	}
	if r == CompassPoints {
		r = 0
	}
	return r
}

// Direction returns the unit vector for a compass point.
func Direction(heading int) core.Vec2 {
	return directions[((heading%CompassPoints)+CompassPoints)%CompassPoints]
}

// MuzzleOffset returns where a bullet leaves a tank facing heading. Offsets
// are scaled for tanks that are not 8 pixels wide.
func MuzzleOffset(heading int, tankSize float32) core.Vec2 {
	off := muzzleOffsets[((heading%CompassPoints)+CompassPoints)%CompassPoints]
	if tankSize == 8 {
		return off
	}
	return off.Scale(tankSize / 8)
}

// wrapAngle resets the angle once it completes a full turn either way.
func wrapAngle(a float32) float32 {
	if math32.Abs(a) >= fullTurn {
		return 0
	}
	return a
}

// Tank is one side of the match: a body, at most one live bullet and the
// timers that gate spinning and firing.
type Tank struct {
	Player     core.PlayerID
	Body       collision.Rect
	Bullet     collision.Rect
	BulletLive bool
	Angle      float32
	Spinning   bool
	Blocked    bool // Last tank pass resolved a collision
	Score      int

	spinLeft float32 // Seconds of spin remaining
	cooldown float32 // Seconds until the next shot is allowed
	spinSign float32
}

func newTank(p core.PlayerID, pos core.Vec2, angle, size float32) *Tank {
	sign := float32(-1)
	if p == core.Player2 {
		sign = 1
	}
	return &Tank{
		Player:   p,
		Body:     collision.NewRect(pos.X, pos.Y, size, size),
		Angle:    angle,
		spinSign: sign,
	}
}

// Heading returns the tank's current compass point.
func (t *Tank) Heading() int {
	return Heading(t.Angle)
}

// Direction returns the unit vector the tank is facing.
func (t *Tank) Direction() core.Vec2 {
	return Direction(t.Heading())
}

// Muzzle returns the world position a bullet would spawn at.
func (t *Tank) Muzzle() core.Vec2 {
	return t.Body.Pos.Add(MuzzleOffset(t.Heading(), t.Body.Size.X))
}

// Contacts returns the contact slots written by the most recent tank pass.
func (t *Tank) Contacts() [4]collision.ObstacleRef {
	return t.Body.Contacts
}

// SpinLeft returns the remaining spin time in seconds.
func (t *Tank) SpinLeft() float32 {
	return t.spinLeft
}

// Cooldown returns the seconds left before the tank may fire.
func (t *Tank) Cooldown() float32 {
	return t.cooldown
}

func (t *Tank) turn(delta float32) {
	t.Angle = wrapAngle(t.Angle + delta)
}

// spin advances the cosmetic spin by one step. Velocity is left alone so the
// knockback carries the tank until walls absorb it.
func (t *Tank) spin(step float32) {
	t.turn(t.spinSign * step)
}

// drive applies one step of pilot input to a tank that is not spinning.
func (t *Tank) drive(in core.InputFrame, speed, turnRate, dt float32) {
	switch {
	case in.Has(core.ActionTurnStepLeft):
		t.turn(compassStep)
	case in.Has(core.ActionTurnStepRight):
		t.turn(-compassStep)
	}
	if in.Has(core.ActionTurnLeft) {
		t.turn(compassStep * turnRate * dt)
	}
	if in.Has(core.ActionTurnRight) {
		t.turn(-compassStep * turnRate * dt)
	}

	switch {
	case in.Has(core.ActionForward):
		t.Body.Vel = t.Direction().Scale(speed)
	case in.Has(core.ActionReverse):
		t.Body.Vel = t.Direction().Scale(-speed)
	default:
		t.Body.Vel = core.Vec2{}
	}
}

// fire spawns a bullet at the muzzle, replacing any live one.
func (t *Tank) fire(speed, size float32) {
	pos := t.Muzzle()
	t.Bullet = collision.NewRect(pos.X, pos.Y, size, size)
	t.Bullet.Vel = t.Direction().Scale(speed)
	t.BulletLive = true
}

// tickTimers counts down the cooldown and spin. It reports whether the spin
// ran out during this step.
func (t *Tank) tickTimers(dt float32) (spinEnded bool) {
	if t.cooldown > 0 {
		t.cooldown = math32.Max(0, t.cooldown-dt)
	}
	if t.Spinning {
		t.spinLeft -= dt
		if t.spinLeft <= 0 {
			t.spinLeft = 0
			t.Spinning = false
			return true
		}
	}
	return false
}

// view builds the pilot's picture of this tank.
func (t *Tank) view(tick uint64, opp *Tank, canFire bool) core.TankView {
	return core.TankView{
		Player:      t.Player,
		Tick:        tick,
		Position:    t.Body.Pos,
		Size:        t.Body.Size,
		Angle:       t.Angle,
		Heading:     t.Heading(),
		Blocked:     t.Blocked,
		Spinning:    t.Spinning,
		CanFire:     canFire,
		BulletLive:  t.BulletLive,
		Opponent:    opp.Body.Pos,
		OpponentVel: opp.Body.Vel,
	}
}
