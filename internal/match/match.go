package match

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tank-combat/internal/core"
	"github.com/vovakirdan/tank-combat/internal/games/combat"
	"github.com/vovakirdan/tank-combat/internal/registry"
)

// Option configures a Match.
type Option func(*Match)

// WithLogger sets the logger. Matches are silent by default.
func WithLogger(l *log.Logger) Option {
	return func(m *Match) {
		m.log = l
	}
}

// WithSaver persists the result when the match stops.
func WithSaver(s ResultSaver) Option {
	return func(m *Match) {
		m.saver = s
	}
}

// WithSpectator adds a spectator.
func WithSpectator(s Spectator) Option {
	return func(m *Match) {
		m.spectators = append(m.spectators, s)
	}
}

// WithID overrides the generated match ID.
func WithID(id ID) Option {
	return func(m *Match) {
		m.id = id
	}
}

// Match drives one combat game with two pilots.
// A Match is run once; it is not safe for concurrent use.
type Match struct {
	id     ID
	spec   Spec
	game   *combat.Game
	pilots [2]registry.Pilot

	log        *log.Logger
	saver      ResultSaver
	spectators []Spectator
}

// New prepares a match from a spec. Both pilots must be registered.
func New(spec Spec, opts ...Option) (*Match, error) {
	game, err := combat.New(spec.Config, spec.Level)
	if err != nil {
		return nil, fmt.Errorf("match: %w", err)
	}

	m := &Match{
		id:   NewID(),
		spec: spec,
		game: game,
	}
	for i, pilotID := range []string{spec.Pilot1, spec.Pilot2} {
		p, err := registry.Create(pilotID)
		if err != nil {
			return nil, fmt.Errorf("match: player %d: %w", i+1, err)
		}
		m.pilots[i] = p
	}

	for _, opt := range opts {
		opt(m)
	}
	if m.log == nil {
		m.log = log.New(io.Discard)
	}
	m.log = m.log.With("match", string(m.id))
	return m, nil
}

// ID returns the match identifier.
func (m *Match) ID() ID {
	return m.id
}

// Game returns the game being played.
func (m *Match) Game() *combat.Game {
	return m.game
}

// Run plays the match until the game ends, MaxTicks is reached or ctx is
// cancelled. The result is always returned; the error reports a failed save.
func (m *Match) Run(ctx context.Context) (Result, error) {
	for _, p := range m.pilots {
		p.Reset()
	}

	startedAt := time.Now()
	m.log.Info("match started",
		"level", m.spec.Level.ID,
		"p1", m.spec.Pilot1,
		"p2", m.spec.Pilot2,
	)
	m.broadcast(StartedEvent{
		MatchID: m.id,
		LevelID: m.spec.Level.ID,
		Pilot1:  m.spec.Pilot1,
		Pilot2:  m.spec.Pilot2,
	})

	var pace <-chan time.Time
	if m.spec.FPS > 0 {
		ticker := time.NewTicker(time.Second / time.Duration(m.spec.FPS))
		defer ticker.Stop()
		pace = ticker.C
	}

	reason := m.loop(ctx, pace)

	result := m.result(reason, startedAt)
	m.log.Info("match ended",
		"reason", result.Reason,
		"winner", result.WinnerPilot(),
		"score", fmt.Sprintf("%d:%d", result.Score1, result.Score2),
		"ticks", result.Ticks,
		"wall", time.Since(startedAt).Round(time.Millisecond),
	)

	var err error
	if m.saver != nil {
		// A cancelled match is still recorded
		if saveErr := m.saver.SaveMatchResult(context.WithoutCancel(ctx), result); saveErr != nil {
			m.log.Error("cannot save match", "err", saveErr)
			err = fmt.Errorf("match: save %s: %w", m.id, saveErr)
		}
	}

	m.broadcast(EndedEvent{Result: result})
	return result, err
}

func (m *Match) loop(ctx context.Context, pace <-chan time.Time) EndReason {
	for {
		if m.game.IsGameOver() {
			return EndReason(m.game.EndReason())
		}
		if m.spec.MaxTicks > 0 && m.game.Tick() >= m.spec.MaxTicks {
			return EndReasonTickLimit
		}

		if pace != nil {
			select {
			case <-ctx.Done():
				return EndReasonCancelled
			case <-pace:
			}
		} else {
			select {
			case <-ctx.Done():
				return EndReasonCancelled
			default:
			}
		}

		m.step()
	}
}

func (m *Match) step() {
	in := core.NewMultiInputFrame()
	for i, p := range m.pilots {
		id := core.PlayerID(i + 1)
		in.SetPlayer(id, p.Decide(m.game.View(id)))
	}

	res := m.game.StepMulti(in)
	for _, e := range res.Events {
		if s, ok := e.(combat.StruckEvent); ok {
			m.log.Debug("struck",
				"tick", m.game.Tick(),
				"shooter", s.Shooter,
				"target", s.Target,
				"score", s.Score,
			)
		}
	}

	if len(m.spectators) > 0 {
		m.broadcast(TickEvent{
			MatchID:  m.id,
			Tick:     m.game.Tick(),
			Snapshot: m.game.Snapshot(),
			Events:   res.Events,
		})
	}
}

func (m *Match) result(reason EndReason, startedAt time.Time) Result {
	winner := m.game.Winner()
	if !m.game.IsGameOver() {
		winner = leader(m.game.Score1(), m.game.Score2())
	}
	return Result{
		MatchID:   m.id,
		LevelID:   m.spec.Level.ID,
		Pilot1:    m.spec.Pilot1,
		Pilot2:    m.spec.Pilot2,
		Score1:    m.game.Score1(),
		Score2:    m.game.Score2(),
		Winner:    winner,
		Reason:    reason,
		Ticks:     m.game.Tick(),
		Duration:  time.Duration(m.game.Elapsed() * float64(time.Second)),
		Digest:    m.game.Snapshot().Digest(),
		StartedAt: startedAt,
	}
}

func (m *Match) broadcast(evt Event) {
	for _, s := range m.spectators {
		select {
		case <-s.Done():
			continue
		default:
		}
		s.Send(evt)
	}
}
