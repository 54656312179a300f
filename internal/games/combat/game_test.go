package combat

import (
	"math/rand"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tank-combat/internal/collision"
	"github.com/vovakirdan/tank-combat/internal/config"
	"github.com/vovakirdan/tank-combat/internal/core"
	"github.com/vovakirdan/tank-combat/internal/games/combat/levels"
)

// testLevel is an 80x40 box of 8px tiles with an inner wall face at x=72.
func testLevel(p1, p2 core.Vec2) levels.Level {
	return levels.Level{
		ID:       "test",
		Name:     "Test",
		TileSize: 8,
		Width:    10,
		Height:   5,
		Board: []string{
			"##########",
			"#........#",
			"#........#",
			"#........#",
			"##########",
		},
		Spawns: [2]levels.Spawn{
			{Pos: p1},
			{Pos: p2, Angle: math32.Pi},
		},
	}
}

func testConfig() config.CombatConfig {
	cfg := config.DefaultCombatConfig()
	cfg.Match.TickRate = 10
	cfg.Match.TimeLimit = 0
	cfg.Match.WinScore = 5
	cfg.P1 = config.PlayerConfig{Speed: 20}
	cfg.P2 = config.PlayerConfig{Speed: 20}
	cfg.Tanks.SpinDuration = 0.5
	cfg.Difficulty.Enabled = false
	return cfg
}

func newTestGame(t *testing.T, cfg config.CombatConfig, lvl levels.Level) *Game {
	t.Helper()
	g, err := New(cfg, lvl)
	require.NoError(t, err)
	return g
}

func inputs(p1, p2 core.InputFrame) core.MultiInputFrame {
	in := core.NewMultiInputFrame()
	in.SetPlayer(core.Player1, p1)
	in.SetPlayer(core.Player2, p2)
	return in
}

func p1Does(actions ...core.Action) core.MultiInputFrame {
	return inputs(core.Frame(actions...), core.Frame())
}

func eventsOf[T core.Event](events []core.Event) []T {
	var out []T
	for _, e := range events {
		if ev, ok := e.(T); ok {
			out = append(out, ev)
		}
	}
	return out
}

func assertClearOfWalls(t *testing.T, g *Game) {
	t.Helper()
	lvl := g.Level()
	for _, tile := range lvl.Tiles() {
		for _, p := range []core.PlayerID{core.Player1, core.Player2} {
			body := g.Tank(p).Body
			assert.False(t, collision.RectsOverlap(body, tile), "%s at %v overlaps tile at %v", p, body.Pos, tile.Pos)
		}
	}
}

func TestNewValidates(t *testing.T) {
	_, err := New(testConfig(), testLevel(core.V(4, 8), core.V(64, 24)))
	assert.ErrorContains(t, err, "overlaps wall")

	cfg := testConfig()
	cfg.Match.TickRate = 0
	_, err = New(cfg, testLevel(core.V(8, 8), core.V(64, 24)))
	assert.Error(t, err)
}

func TestNewOnBuiltinLevel(t *testing.T) {
	lvl, err := levels.BuiltinByID(levels.DefaultID)
	require.NoError(t, err)

	g := newTestGame(t, config.DefaultCombatConfig(), lvl)
	p1, p2 := g.Tank(core.Player1), g.Tank(core.Player2)
	assert.Equal(t, core.V(70, 68), p1.Body.Pos)
	assert.Equal(t, core.V(168, 68), p2.Body.Pos)
	assert.Equal(t, 0, p1.Heading())
	assert.Equal(t, 8, p2.Heading())

	assert.Len(t, g.Level().Tiles(), lvl.Obstacles().Len())
}

func TestDriveIntoWall(t *testing.T) {
	g := newTestGame(t, testConfig(), testLevel(core.V(8, 8), core.V(64, 24)))

	for i := 0; i < 40; i++ {
		g.StepMulti(p1Does(core.ActionForward))
		assertClearOfWalls(t, g)
	}

	p1 := g.Tank(core.Player1)
	assert.InDelta(t, 64, p1.Body.Pos.X, 1e-4)
	assert.Equal(t, float32(8), p1.Body.Pos.Y)
	assert.True(t, p1.Blocked)
	assert.Equal(t, collision.TileRef(11), p1.Contacts()[collision.ContactRight])

	// Backing off clears the blocked flag
	g.StepMulti(p1Does(core.ActionReverse))
	assert.False(t, g.Tank(core.Player1).Blocked)
	assert.InDelta(t, 62, g.Tank(core.Player1).Body.Pos.X, 1e-4)
}

func TestTanksBlockEachOther(t *testing.T) {
	g := newTestGame(t, testConfig(), testLevel(core.V(8, 8), core.V(40, 8)))

	for i := 0; i < 30; i++ {
		g.StepMulti(inputs(core.Frame(core.ActionForward), core.Frame(core.ActionForward)))
		p1, p2 := g.Tank(core.Player1), g.Tank(core.Player2)
		require.False(t, collision.RectsOverlap(p1.Body, p2.Body), "tick %d", g.Tick())
	}

	p1, p2 := g.Tank(core.Player1), g.Tank(core.Player2)
	assert.True(t, p1.Blocked)
	assert.True(t, p2.Blocked)
	assert.InDelta(t, p2.Body.Pos.X, p1.Body.Pos.X+8, 1e-4)
}

func TestStruckPolicy(t *testing.T) {
	g := newTestGame(t, testConfig(), testLevel(core.V(8, 8), core.V(40, 8)))

	res := g.StepMulti(p1Does(core.ActionFire))
	fired := eventsOf[FiredEvent](res.Events)
	require.Len(t, fired, 1)
	assert.Equal(t, core.V(15, 11), fired[0].Position)
	assert.Equal(t, core.V(100, 0), fired[0].Velocity)

	res = g.StepMulti(p1Does())
	assert.Empty(t, eventsOf[StruckEvent](res.Events))

	res = g.StepMulti(p1Does())
	struck := eventsOf[StruckEvent](res.Events)
	require.Len(t, struck, 1)

	ev := struck[0]
	assert.Equal(t, core.Player1, ev.Shooter)
	assert.Equal(t, core.Player2, ev.Target)
	assert.Equal(t, 1, ev.Score)
	assert.InDelta(t, 0.4, ev.Time, 1e-5)
	assert.Equal(t, core.V(-1, 0), ev.Normal)
	assert.InDelta(t, 40, ev.Impact.X, 1e-3)

	assert.Equal(t, 1, res.State.Score1)
	assert.Equal(t, 0, res.State.Score2)

	p1, p2 := g.Tank(core.Player1), g.Tank(core.Player2)
	assert.False(t, p1.BulletLive, "the bullet stops dead on impact")
	assert.True(t, p2.Spinning)
	assert.InDelta(t, 80, p2.Body.Vel.X, 1e-2, "knockback doubles the impact velocity")
	assert.InDelta(t, 48, p2.Body.Pos.X, 1e-2)

	// Nobody fires while a tank spins
	assert.False(t, g.View(core.Player1).CanFire)
	assert.False(t, g.View(core.Player2).CanFire)
	res = g.StepMulti(p1Does(core.ActionFire))
	assert.Empty(t, eventsOf[FiredEvent](res.Events))

	// The spinning tank turns on its own and slides into the wall
	angle := g.Tank(core.Player2).Angle
	var ended []SpinEndedEvent
	for i := 0; i < 10; i++ {
		res = g.StepMulti(p1Does())
		ended = append(ended, eventsOf[SpinEndedEvent](res.Events)...)
		assertClearOfWalls(t, g)
	}
	require.Len(t, ended, 1)
	assert.Equal(t, core.Player2, ended[0].Player)

	p2 = g.Tank(core.Player2)
	assert.False(t, p2.Spinning)
	assert.NotEqual(t, angle, p2.Angle)
	assert.InDelta(t, 64, p2.Body.Pos.X, 1e-2)
	assert.True(t, g.View(core.Player1).CanFire)
}

func TestBulletSpentOnWall(t *testing.T) {
	g := newTestGame(t, testConfig(), testLevel(core.V(8, 8), core.V(64, 24)))

	g.StepMulti(p1Does(core.ActionFire))
	for i := 0; i < 4; i++ {
		g.StepMulti(p1Does())
	}
	require.True(t, g.Tank(core.Player1).BulletLive)

	res := g.StepMulti(p1Does())
	assert.False(t, g.Tank(core.Player1).BulletLive)
	assert.Empty(t, eventsOf[StruckEvent](res.Events))
	assert.Equal(t, 0, g.Score1())
}

func TestFireCooldown(t *testing.T) {
	cfg := testConfig()
	cfg.P1.FireCooldown = 1
	g := newTestGame(t, cfg, testLevel(core.V(8, 8), core.V(64, 24)))

	var firedAt []uint64
	for i := 0; i < 6; i++ {
		res := g.Advance(p1Does(core.ActionFire), 0.25)
		if len(eventsOf[FiredEvent](res.Events)) > 0 {
			firedAt = append(firedAt, g.Tick())
		}
	}
	assert.Equal(t, []uint64{1, 5}, firedAt)
}

func TestDifficultyScalesPlayer2(t *testing.T) {
	cfg := testConfig()
	cfg.P2.FireCooldown = 5
	cfg.Difficulty = config.DifficultyConfig{
		Enabled:      true,
		InitialLevel: 1,
		Progression:  config.ProgressionConfig{Type: "none"},
		Scaling:      config.ScalingConfig{SpeedMultiplier: 1, CooldownReduction: 0.6},
	}
	g := newTestGame(t, cfg, testLevel(core.V(8, 8), core.V(64, 24)))

	g.StepMulti(inputs(core.Frame(core.ActionForward), core.Frame(core.ActionForward, core.ActionFire)))
	p2 := g.Tank(core.Player2)
	assert.InDelta(t, 20, g.Tank(core.Player1).Body.Vel.X, 1e-4)
	assert.InDelta(t, -40, p2.Body.Vel.X, 1e-4)
	assert.InDelta(t, 2, p2.Cooldown(), 1e-4)
}

func TestMatchOverByScore(t *testing.T) {
	cfg := testConfig()
	cfg.Match.WinScore = 1
	g := newTestGame(t, cfg, testLevel(core.V(8, 8), core.V(40, 8)))

	var over []MatchOverEvent
	for i := 0; i < 3; i++ {
		input := p1Does()
		if i == 0 {
			input = p1Does(core.ActionFire)
		}
		res := g.StepMulti(input)
		over = append(over, eventsOf[MatchOverEvent](res.Events)...)
	}

	require.Len(t, over, 1)
	assert.Equal(t, MatchOverEvent{Winner: core.Player1, Reason: EndReasonScore, Score1: 1, Score2: 0}, over[0])
	assert.True(t, g.IsGameOver())
	assert.Equal(t, core.Player1, g.Winner())
	assert.Equal(t, EndReasonScore, g.EndReason())

	// Finished matches do not advance
	tick := g.Tick()
	res := g.StepMulti(p1Does(core.ActionForward))
	assert.Empty(t, res.Events)
	assert.True(t, res.State.GameOver)
	assert.Equal(t, tick, g.Tick())
}

func TestMatchOverByTime(t *testing.T) {
	cfg := testConfig()
	cfg.Match.WinScore = 0
	cfg.Match.TimeLimit = 1
	g := newTestGame(t, cfg, testLevel(core.V(8, 8), core.V(64, 24)))

	var over []MatchOverEvent
	for i := 0; i < 15; i++ {
		res := g.StepMulti(p1Does())
		over = append(over, eventsOf[MatchOverEvent](res.Events)...)
	}

	require.Len(t, over, 1)
	assert.Equal(t, core.PlayerID(0), over[0].Winner, "scoreless match is a draw")
	assert.Equal(t, EndReasonTime, over[0].Reason)
	assert.Equal(t, uint64(10), g.Tick())
}

func TestPause(t *testing.T) {
	g := newTestGame(t, testConfig(), testLevel(core.V(8, 8), core.V(64, 24)))

	res := g.StepMulti(inputs(core.Frame(), core.Frame(core.ActionPause)))
	assert.True(t, res.State.Paused)
	assert.Equal(t, uint64(0), g.Tick())

	g.StepMulti(p1Does(core.ActionForward))
	assert.Equal(t, core.V(8, 8), g.Tank(core.Player1).Body.Pos, "paused matches do not move")

	res = g.StepMulti(p1Does(core.ActionPause, core.ActionForward))
	assert.False(t, res.State.Paused)
	assert.Equal(t, uint64(1), g.Tick())
	assert.InDelta(t, 10, g.Tank(core.Player1).Body.Pos.X, 1e-4)
}

func TestViewAndReset(t *testing.T) {
	g := newTestGame(t, testConfig(), testLevel(core.V(8, 8), core.V(64, 24)))
	g.StepMulti(inputs(core.Frame(core.ActionForward), core.Frame(core.ActionForward)))

	v := g.View(core.Player1)
	assert.Equal(t, core.Player1, v.Player)
	assert.Equal(t, uint64(1), v.Tick)
	assert.Equal(t, g.Tank(core.Player2).Body.Pos, v.Opponent)
	assert.Equal(t, core.V(-20, 0), v.OpponentVel)
	assert.Equal(t, 0, v.Heading)
	assert.True(t, v.CanFire)
	assert.Equal(t, v.Opponent.Add(core.V(4, 4)), v.OpponentCenter())

	g.Reset(core.RuntimeConfig{TickRate: 10})
	assert.Equal(t, uint64(0), g.Tick())
	assert.Equal(t, core.V(8, 8), g.Tank(core.Player1).Body.Pos)
	assert.Equal(t, core.V(64, 24), g.Tank(core.Player2).Body.Pos)
	assert.True(t, g.Tank(core.Player1).Body.Vel.IsZero())
}

func randomInput(rng *rand.Rand) core.InputFrame {
	actions := []core.Action{
		core.ActionForward, core.ActionReverse,
		core.ActionTurnLeft, core.ActionTurnRight,
		core.ActionTurnStepLeft, core.ActionFire,
	}
	f := core.NewInputFrame()
	for _, a := range actions {
		if rng.Intn(3) == 0 {
			f.Set(a)
		}
	}
	return f
}

func TestDeterminism(t *testing.T) {
	lvl, err := levels.BuiltinByID(levels.DefaultID)
	require.NoError(t, err)

	a := newTestGame(t, config.DefaultCombatConfig(), lvl)
	b := newTestGame(t, config.DefaultCombatConfig(), lvl)
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 1200 && !a.IsGameOver(); i++ {
		in := inputs(randomInput(rng), randomInput(rng))
		resA := a.StepMulti(in)
		resB := b.StepMulti(in)

		require.Equal(t, resA, resB, "tick %d", i)
		require.Equal(t, a.Snapshot().Digest(), b.Snapshot().Digest(), "tick %d", i)
	}
	assert.Equal(t, a.Snapshot(), b.Snapshot())
}
