package pilots

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tank-combat/internal/config"
	"github.com/vovakirdan/tank-combat/internal/core"
	"github.com/vovakirdan/tank-combat/internal/games/combat"
	"github.com/vovakirdan/tank-combat/internal/games/combat/levels"
	"github.com/vovakirdan/tank-combat/internal/registry"
)

func viewAt(heading int, self, opp core.Vec2) core.TankView {
	return core.TankView{
		Player:   core.Player1,
		Tick:     1,
		Position: self,
		Size:     core.V(8, 8),
		Heading:  heading,
		Opponent: opp,
	}
}

func TestBuiltinPilotsRegistered(t *testing.T) {
	for _, id := range []string{"cpu", "idle", "gunner", "charger"} {
		p, err := registry.Create(id)
		require.NoError(t, err, id)
		assert.Equal(t, id, p.ID())
		assert.NotEmpty(t, p.Title())
	}
}

func TestHeadingTo(t *testing.T) {
	tests := []struct {
		name string
		opp  core.Vec2
		want int
	}{
		{"east", core.V(40, 0), 0},
		{"south", core.V(0, 40), 4},
		{"west", core.V(-40, 0), 8},
		{"north", core.V(0, -40), 12},
		{"south-east", core.V(40, 40), 2},
		{"same spot keeps heading", core.V(0, 0), 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, headingTo(viewAt(5, core.V(0, 0), tc.opp)))
		})
	}
}

func TestAim(t *testing.T) {
	assert.Equal(t, core.ActionNone, aim(viewAt(0, core.V(0, 0), core.V(40, 0))))
	assert.Equal(t, core.ActionTurnStepRight, aim(viewAt(0, core.V(0, 0), core.V(0, 40))))
	assert.Equal(t, core.ActionTurnStepLeft, aim(viewAt(0, core.V(0, 0), core.V(0, -40))))
	assert.Equal(t, core.ActionTurnStepLeft, aim(viewAt(6, core.V(0, 0), core.V(40, 40))))
}

func TestCPU(t *testing.T) {
	p := NewCPU()

	in := p.Decide(core.TankView{})
	assert.True(t, in.Has(core.ActionForward))
	assert.False(t, in.Has(core.ActionTurnStepRight))
	assert.False(t, in.Has(core.ActionFire))

	in = p.Decide(core.TankView{Blocked: true, CanFire: true})
	assert.True(t, in.Has(core.ActionForward))
	assert.True(t, in.Has(core.ActionTurnStepRight))
	assert.True(t, in.Has(core.ActionFire))

	// Holds fire while its shot is in flight
	in = p.Decide(core.TankView{CanFire: true, BulletLive: true})
	assert.False(t, in.Has(core.ActionFire))
}

func TestIdle(t *testing.T) {
	in := Idle{}.Decide(core.TankView{CanFire: true})
	assert.Empty(t, in.Actions)
}

func TestGunnerPacesTurns(t *testing.T) {
	p := NewGunner()
	v := viewAt(0, core.V(0, 0), core.V(0, 40))

	var turnedAt []uint64
	for tick := uint64(1); tick <= 13; tick++ {
		v.Tick = tick
		if p.Decide(v).Has(core.ActionTurnStepRight) {
			turnedAt = append(turnedAt, tick)
		}
	}
	assert.Equal(t, []uint64{1, 7, 13}, turnedAt)

	p.Reset()
	v.Tick = 2
	assert.True(t, p.Decide(v).Has(core.ActionTurnStepRight))
}

func TestGunnerFiresWhenAligned(t *testing.T) {
	p := NewGunner()
	v := viewAt(0, core.V(0, 0), core.V(40, 0))

	assert.False(t, p.Decide(v).Has(core.ActionFire), "cannot fire yet")
	v.CanFire = true
	in := p.Decide(v)
	assert.True(t, in.Has(core.ActionFire))
	assert.False(t, in.Has(core.ActionForward))

	v.BulletLive = true
	assert.False(t, p.Decide(v).Has(core.ActionFire))

	v.Spinning = true
	assert.Empty(t, p.Decide(v).Actions)
}

func TestChargerDetour(t *testing.T) {
	p := NewCharger()
	v := viewAt(0, core.V(0, 0), core.V(0, 40))
	v.Blocked = true

	in := p.Decide(v)
	assert.True(t, in.Has(core.ActionForward))
	assert.True(t, in.Has(core.ActionTurnStepRight))

	// Keeps driving straight during the detour
	v.Blocked = false
	v.Tick = 10
	in = p.Decide(v)
	assert.True(t, in.Has(core.ActionForward))
	assert.False(t, in.Has(core.ActionTurnStepRight))

	v.Tick = 1 + detourTicks
	in = p.Decide(v)
	assert.True(t, in.Has(core.ActionForward))
	assert.True(t, in.Has(core.ActionTurnStepRight), "aims again after the detour")
}

func openLevel() levels.Level {
	board := make([]string, 10)
	for i := range board {
		if i == 0 || i == len(board)-1 {
			board[i] = "####################"
		} else {
			board[i] = "#..................#"
		}
	}
	return levels.Level{
		ID:       "open",
		TileSize: 4,
		Width:    20,
		Height:   10,
		Board:    board,
		Spawns: [2]levels.Spawn{
			{Pos: core.V(8, 16), Angle: math32.Pi / 2},
			{Pos: core.V(60, 16), Angle: math32.Pi},
		},
	}
}

func playAgainstIdle(t *testing.T, pilot registry.Pilot, ticks int) *combat.Game {
	t.Helper()
	g, err := combat.New(config.DefaultCombatConfig(), openLevel())
	require.NoError(t, err)

	target := Idle{}
	for i := 0; i < ticks && !g.IsGameOver(); i++ {
		in := core.NewMultiInputFrame()
		in.SetPlayer(core.Player1, pilot.Decide(g.View(core.Player1)))
		in.SetPlayer(core.Player2, target.Decide(g.View(core.Player2)))
		g.StepMulti(in)
	}
	return g
}

func TestGunnerHitsSittingDuck(t *testing.T) {
	g := playAgainstIdle(t, NewGunner(), 200)
	assert.GreaterOrEqual(t, g.Score1(), 1)
	assert.Equal(t, 0, g.Score2())
}

func TestChargerHitsSittingDuck(t *testing.T) {
	g := playAgainstIdle(t, NewCharger(), 600)
	assert.GreaterOrEqual(t, g.Score1(), 1)
}
