package match

import (
	"github.com/vovakirdan/tank-combat/internal/core"
	"github.com/vovakirdan/tank-combat/internal/games/combat"
)

// Event is sent from a running match to its spectators.
type Event interface {
	matchEvent()
}

// StartedEvent is sent once before the first tick.
type StartedEvent struct {
	MatchID ID
	LevelID string
	Pilot1  string
	Pilot2  string
}

func (StartedEvent) matchEvent() {}

// TickEvent is sent after every simulated tick.
type TickEvent struct {
	MatchID  ID
	Tick     uint64
	Snapshot combat.Snapshot
	Events   []core.Event // Game events from this tick
}

func (TickEvent) matchEvent() {}

// EndedEvent is sent once when the match stops.
type EndedEvent struct {
	Result Result
}

func (EndedEvent) matchEvent() {}
