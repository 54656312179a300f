package combat

import "github.com/vovakirdan/tank-combat/internal/core"

// EndReason describes why a match ended.
type EndReason string

const (
	EndReasonScore EndReason = "score" // A side reached the win score
	EndReasonTime  EndReason = "time"  // The match clock ran out
)

// FiredEvent is emitted when a tank launches a bullet.
type FiredEvent struct {
	Player   core.PlayerID
	Position core.Vec2
	Velocity core.Vec2
}

func (FiredEvent) IsGameEvent() {}

// StruckEvent is emitted when a bullet resolves a collision with the
// opposing tank.
type StruckEvent struct {
	Shooter core.PlayerID
	Target  core.PlayerID
	Time    float32   // Fraction of the step at impact
	Normal  core.Vec2 // Contact normal on the bullet
	Impact  core.Vec2 // Bullet velocity right after deflection
	Score   int       // Shooter's score after the hit
}

func (StruckEvent) IsGameEvent() {}

// SpinEndedEvent is emitted when a struck tank regains control.
type SpinEndedEvent struct {
	Player core.PlayerID
}

func (SpinEndedEvent) IsGameEvent() {}

// MatchOverEvent is emitted exactly once, on the step the match ends.
type MatchOverEvent struct {
	Winner core.PlayerID // 0 on a draw
	Reason EndReason
	Score1 int
	Score2 int
}

func (MatchOverEvent) IsGameEvent() {}

var (
	_ core.Event = FiredEvent{}
	_ core.Event = StruckEvent{}
	_ core.Event = SpinEndedEvent{}
	_ core.Event = MatchOverEvent{}
)
