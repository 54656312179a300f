package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/tank-combat/internal/core"
)

func TestSnapshotMirrorsGame(t *testing.T) {
	g := newTestGame(t, testConfig(), testLevel(core.V(8, 8), core.V(64, 24)))
	g.StepMulti(p1Does(core.ActionForward, core.ActionFire))

	s := g.Snapshot()
	assert.Equal(t, uint64(1), s.Tick)
	assert.False(t, s.GameOver)

	p1 := s.Tanks[0]
	assert.Equal(t, core.Player1, p1.Player)
	assert.Equal(t, core.V(10, 8), p1.Pos)
	assert.Equal(t, core.V(20, 0), p1.Vel)
	assert.True(t, p1.BulletLive)
	assert.Equal(t, core.V(25, 11), p1.BulletPos)
	assert.Equal(t, core.Player2, s.Tanks[1].Player)
	assert.Equal(t, 8, s.Tanks[1].Heading)
}

func TestDigestTracksState(t *testing.T) {
	a := newTestGame(t, testConfig(), testLevel(core.V(8, 8), core.V(64, 24)))
	b := newTestGame(t, testConfig(), testLevel(core.V(8, 8), core.V(64, 24)))

	assert.Equal(t, a.Snapshot().Digest(), b.Snapshot().Digest())

	a.StepMulti(p1Does(core.ActionForward))
	b.StepMulti(p1Does())
	assert.NotEqual(t, a.Snapshot().Digest(), b.Snapshot().Digest())

	// Identical histories hash identically
	c := newTestGame(t, testConfig(), testLevel(core.V(8, 8), core.V(64, 24)))
	c.StepMulti(p1Does())
	assert.Equal(t, b.Snapshot().Digest(), c.Snapshot().Digest())
}

func TestDigestIgnoresDeadBullets(t *testing.T) {
	s := Snapshot{Tick: 3}
	s.Tanks[0].BulletPos = core.V(1, 2)
	other := Snapshot{Tick: 3}
	other.Tanks[0].BulletPos = core.V(9, 9)
	assert.Equal(t, s.Digest(), other.Digest())

	s.Tanks[0].BulletLive = true
	other.Tanks[0].BulletLive = true
	assert.NotEqual(t, s.Digest(), other.Digest())
}
