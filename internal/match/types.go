// Package match runs tank combat matches between two pilots.
// A match owns one combat game, feeds it pilot decisions tick by tick,
// fans events out to spectators and hands the result to a saver.
package match

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/tank-combat/internal/config"
	"github.com/vovakirdan/tank-combat/internal/core"
	"github.com/vovakirdan/tank-combat/internal/games/combat"
	"github.com/vovakirdan/tank-combat/internal/games/combat/levels"
)

// ID uniquely identifies a match.
type ID string

// NewID returns a fresh random match ID.
func NewID() ID {
	return ID(uuid.NewString())
}

// EndReason describes why a match stopped.
type EndReason string

const (
	EndReasonScore               = EndReason(combat.EndReasonScore)
	EndReasonTime                = EndReason(combat.EndReasonTime)
	EndReasonTickLimit EndReason = "tick_limit" // MaxTicks reached before the game ended
	EndReasonCancelled EndReason = "cancelled"  // Context cancelled
)

// Spec describes a match to run.
type Spec struct {
	Level  levels.Level
	Config config.CombatConfig
	Pilot1 string // Registry ID
	Pilot2 string

	// MaxTicks stops the match early; 0 means no limit.
	MaxTicks uint64

	// FPS paces the loop in real time; 0 runs as fast as possible.
	FPS int
}

// Result is the outcome of a match.
type Result struct {
	MatchID   ID
	LevelID   string
	Pilot1    string
	Pilot2    string
	Score1    int
	Score2    int
	Winner    core.PlayerID // 0 on a draw
	Reason    EndReason
	Ticks     uint64
	Duration  time.Duration // Simulated play time
	Digest    uint64        // State digest after the last tick
	StartedAt time.Time
}

// WinnerPilot returns the registry ID of the winning pilot, or "" on a draw.
func (r Result) WinnerPilot() string {
	switch r.Winner {
	case core.Player1:
		return r.Pilot1
	case core.Player2:
		return r.Pilot2
	default:
		return ""
	}
}

// ResultSaver persists match results.
// This lets the runner save results without depending on the storage package.
type ResultSaver interface {
	SaveMatchResult(ctx context.Context, result Result) error
}

// leader returns the side with the higher score, or 0 when level.
func leader(score1, score2 int) core.PlayerID {
	switch {
	case score1 > score2:
		return core.Player1
	case score2 > score1:
		return core.Player2
	default:
		return 0
	}
}
