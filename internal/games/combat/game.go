// Package combat implements the two-tank arena: pilot input, firing rules,
// hit policy and the per-step collision order on top of the swept AABB engine.
//
// A Game is single-threaded and deterministic: the same config, level and
// input sequence always produce the same states.
package combat

import (
	"fmt"

	"github.com/vovakirdan/tank-combat/internal/collision"
	"github.com/vovakirdan/tank-combat/internal/config"
	"github.com/vovakirdan/tank-combat/internal/core"
	"github.com/vovakirdan/tank-combat/internal/games/combat/levels"
)

// Game implements the tank combat match logic.
type Game struct {
	cfg       config.CombatConfig
	level     levels.Level
	obstacles *collision.ObstacleSet
	diff      *config.DifficultyManager
	runtime   core.RuntimeConfig
	bounds    core.Vec2

	tanks [2]*Tank // Indexed by player - 1

	// Match state
	tick     uint64
	elapsed  float64 // Seconds of unpaused play
	paused   bool
	gameOver bool
	winner   core.PlayerID
	reason   EndReason
}

// New creates a match on level. The config and level are validated; the
// level's obstacle set is built once and owned by this game.
func New(cfg config.CombatConfig, level levels.Level) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := levels.Validate(level, float32(cfg.Tanks.Size)); err != nil {
		return nil, err
	}

	g := &Game{
		cfg:       cfg,
		level:     level,
		obstacles: level.Obstacles(),
		diff:      config.NewDifficultyManager(cfg.Difficulty),
		bounds:    level.Bounds(),
	}
	g.Reset(core.RuntimeConfig{TickRate: cfg.Match.TickRate})
	return g, nil
}

// Reset puts both tanks back on their spawns and clears scores and timers.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.obstacles.PopOpponent()

	size := float32(g.cfg.Tanks.Size)
	for i, p := range []core.PlayerID{core.Player1, core.Player2} {
		s := g.level.Spawn(p)
		g.tanks[i] = newTank(p, s.Pos, s.Angle, size)
	}

	g.tick = 0
	g.elapsed = 0
	g.paused = false
	g.gameOver = false
	g.winner = 0
	g.reason = ""
}

// StepMulti advances the match by one tick of the runtime's step duration.
func (g *Game) StepMulti(in core.MultiInputFrame) core.StepResult {
	return g.Advance(in, g.runtime.StepDuration())
}

// Advance advances the match by dt seconds. Per step, in order:
//
//  1. timers count down and finished spins are reported;
//  2. each tank, P1 first, applies its pilot's input (or keeps spinning);
//  3. for P1 then P2: the opponent is injected into the obstacle set, the
//     bullet pass runs in projectile mode, the tank pass runs, and the
//     opponent is removed again;
//  4. the end of the match is checked.
func (g *Game) Advance(in core.MultiInputFrame, dt float32) core.StepResult {
	if g.gameOver {
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Player(core.Player1).Has(core.ActionPause) || in.Player(core.Player2).Has(core.ActionPause) {
		g.paused = !g.paused
	}

	if g.paused || dt <= 0 {
		return core.StepResult{State: g.State()}
	}

	g.tick++
	g.elapsed += float64(dt)

	var events []core.Event
	for _, t := range g.tanks {
		if t.tickTimers(dt) {
			events = append(events, SpinEndedEvent{Player: t.Player})
		}
	}

	for _, t := range g.tanks {
		events = g.control(t, in.Player(t.Player), dt, events)
	}

	for i, t := range g.tanks {
		events = g.collide(t, g.tanks[1-i], dt, events)
	}

	if ev, over := g.checkOver(); over {
		events = append(events, ev)
	}

	return core.StepResult{State: g.State(), Events: events}
}

// control applies one tank's input for this step.
func (g *Game) control(t *Tank, in core.InputFrame, dt float32, events []core.Event) []core.Event {
	if t.Spinning {
		t.spin(float32(g.cfg.Tanks.SpinStep))
		return events
	}

	t.drive(in, g.speed(t.Player), float32(g.cfg.Tanks.TurnRate), dt)

	if in.Has(core.ActionFire) && g.canFire(t) {
		t.fire(float32(g.cfg.Bullets.Speed), float32(g.cfg.Bullets.Size))
		t.cooldown = g.fireCooldown(t.Player)
		events = append(events, FiredEvent{
			Player:   t.Player,
			Position: t.Bullet.Pos,
			Velocity: t.Bullet.Vel,
		})
	}
	return events
}

// collide runs cur's bullet pass and tank pass with opp injected.
func (g *Game) collide(cur, opp *Tank, dt float32, events []core.Event) []core.Event {
	err := g.obstacles.WithOpponent(opp.Body, func(cands []collision.Candidate) {
		if cur.BulletLive {
			res := collision.Pass(&cur.Bullet, dt, cands, collision.PassOptions{Projectile: true})
			if res.Struck != nil {
				events = append(events, g.strike(cur, opp, *res.Struck))
			}
			if res.Collided || !g.inArena(cur.Bullet) {
				cur.BulletLive = false
			}
		}

		res := collision.Pass(&cur.Body, dt, cands, collision.PassOptions{})
		cur.Blocked = res.Collided
	})
	if err != nil {
		// Only one opponent is ever injected at a time.
		panic(fmt.Sprintf("combat: %v", err))
	}
	return events
}

// strike applies the hit policy: the shooter scores, the target is knocked
// back along the bullet's impact velocity and starts spinning, and the
// shooter's fire cooldown restarts.
func (g *Game) strike(shooter, target *Tank, s collision.Strike) StruckEvent {
	shooter.Score++
	shooter.cooldown = g.fireCooldown(shooter.Player)

	target.Body.Vel = target.Body.Vel.Add(s.Velocity.Scale(float32(g.cfg.Tanks.Knockback)))
	target.Spinning = true
	target.spinLeft = float32(g.cfg.Tanks.SpinDuration)

	return StruckEvent{
		Shooter: shooter.Player,
		Target:  target.Player,
		Time:    s.Time,
		Normal:  s.Normal,
		Impact:  s.Velocity,
		Score:   shooter.Score,
	}
}

func (g *Game) checkOver() (MatchOverEvent, bool) {
	s1, s2 := g.tanks[0].Score, g.tanks[1].Score

	switch win := g.cfg.Match.WinScore; {
	case win > 0 && (s1 >= win || s2 >= win):
		g.reason = EndReasonScore
	case g.cfg.Match.TimeLimit > 0 && g.elapsed >= g.cfg.Match.TimeLimit:
		g.reason = EndReasonTime
	default:
		return MatchOverEvent{}, false
	}

	g.gameOver = true
	switch {
	case s1 > s2:
		g.winner = core.Player1
	case s2 > s1:
		g.winner = core.Player2
	}

	return MatchOverEvent{Winner: g.winner, Reason: g.reason, Score1: s1, Score2: s2}, true
}

// canFire reports whether t may shoot now. Nobody fires while a tank spins.
func (g *Game) canFire(t *Tank) bool {
	if g.tanks[0].Spinning || g.tanks[1].Spinning {
		return false
	}
	return t.cooldown <= 0
}

// speed returns a side's driving speed. Player 2 scales with difficulty,
// which progresses with Player 1's score.
func (g *Game) speed(p core.PlayerID) float32 {
	if p == core.Player2 {
		return float32(g.diff.Speed(g.cfg.P2.Speed, g.tanks[0].Score, int(g.tick)))
	}
	return float32(g.cfg.P1.Speed)
}

func (g *Game) fireCooldown(p core.PlayerID) float32 {
	if p == core.Player2 {
		return float32(g.diff.Cooldown(g.cfg.P2.FireCooldown, g.tanks[0].Score, int(g.tick)))
	}
	return float32(g.cfg.P1.FireCooldown)
}

// inArena reports whether r still touches the arena.
func (g *Game) inArena(r collision.Rect) bool {
	m := r.Max()
	return m.X > 0 && m.Y > 0 && r.Pos.X < g.bounds.X && r.Pos.Y < g.bounds.Y
}

func (g *Game) tank(p core.PlayerID) *Tank {
	if p == core.Player2 {
		return g.tanks[1]
	}
	return g.tanks[0]
}

// View returns the picture of the match a pilot for side p decides on.
func (g *Game) View(p core.PlayerID) core.TankView {
	t := g.tank(p)
	return t.view(g.tick, g.tank(p.Other()), g.canFire(t))
}

// Tank returns a copy of one side's tank.
func (g *Game) Tank(p core.PlayerID) Tank {
	return *g.tank(p)
}

// Level returns the level being played.
func (g *Game) Level() levels.Level {
	return g.level
}

// Config returns the match configuration.
func (g *Game) Config() config.CombatConfig {
	return g.cfg
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score1:   g.tanks[0].Score,
		Score2:   g.tanks[1].Score,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

// Tick returns the number of simulated steps.
func (g *Game) Tick() uint64 {
	return g.tick
}

// Elapsed returns the seconds of unpaused play.
func (g *Game) Elapsed() float64 {
	return g.elapsed
}

// IsGameOver returns true if the match has ended.
func (g *Game) IsGameOver() bool {
	return g.gameOver
}

// Winner returns the winning side, or 0 while playing or on a draw.
func (g *Game) Winner() core.PlayerID {
	return g.winner
}

// EndReason returns why the match ended, empty while playing.
func (g *Game) EndReason() EndReason {
	return g.reason
}

// Score1 returns Player 1's score.
func (g *Game) Score1() int {
	return g.tanks[0].Score
}

// Score2 returns Player 2's score.
func (g *Game) Score2() int {
	return g.tanks[1].Score
}
