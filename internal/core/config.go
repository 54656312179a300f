package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	TickRate int // Simulation ticks per second (default 60)
}

// StepDuration returns the elapsed time of one tick in seconds.
func (c RuntimeConfig) StepDuration() float32 {
	if c.TickRate <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float32(c.TickRate)
}

// GameState represents the current state of a match.
type GameState struct {
	Score1   int  // Player 1 hits
	Score2   int  // Player 2 hits
	GameOver bool // Whether the match has ended
	Paused   bool // Whether the match is paused
}

// Event is implemented by everything a game reports from a tick.
type Event interface {
	IsGameEvent() // Marker method for type safety
}

// StepResult is returned by Step after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}

// TankView is the read-only picture of one tank handed to a pilot each tick.
type TankView struct {
	Player      PlayerID
	Tick        uint64
	Position    Vec2 // Top-left corner
	Size        Vec2
	Angle       float32 // Facing angle in radians
	Heading     int     // Compass point 0..15
	Blocked     bool    // Last tank pass resolved a collision
	Spinning    bool
	CanFire     bool
	BulletLive  bool
	Opponent    Vec2 // Opponent top-left corner
	OpponentVel Vec2
}

// Center returns the tank's centre point.
func (v TankView) Center() Vec2 {
	return v.Position.Add(v.Size.Scale(0.5))
}

// OpponentCenter returns the opponent's centre point, assuming equal tank sizes.
func (v TankView) OpponentCenter() Vec2 {
	return v.Opponent.Add(v.Size.Scale(0.5))
}
