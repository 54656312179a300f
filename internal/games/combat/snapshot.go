package combat

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/vovakirdan/tank-combat/internal/collision"
	"github.com/vovakirdan/tank-combat/internal/core"
)

// TankSnapshot is the flattened state of one tank.
type TankSnapshot struct {
	Player     core.PlayerID
	Pos        core.Vec2
	Vel        core.Vec2
	Angle      float32
	Heading    int
	Spinning   bool
	SpinLeft   float32
	Cooldown   float32
	Blocked    bool
	Score      int
	BulletLive bool
	BulletPos  core.Vec2
	BulletVel  core.Vec2
	Contacts   [4]collision.ObstacleRef // Debug only, not part of the digest
}

// Snapshot contains the complete state of a match at one tick.
type Snapshot struct {
	Tick     uint64
	Elapsed  float64
	Tanks    [2]TankSnapshot
	Paused   bool
	GameOver bool
	Winner   core.PlayerID
	Reason   EndReason
}

// Snapshot returns the current match state.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Tick:     g.tick,
		Elapsed:  g.elapsed,
		Paused:   g.paused,
		GameOver: g.gameOver,
		Winner:   g.winner,
		Reason:   g.reason,
	}
	for i, t := range g.tanks {
		s.Tanks[i] = TankSnapshot{
			Player:     t.Player,
			Pos:        t.Body.Pos,
			Vel:        t.Body.Vel,
			Angle:      t.Angle,
			Heading:    t.Heading(),
			Spinning:   t.Spinning,
			SpinLeft:   t.spinLeft,
			Cooldown:   t.cooldown,
			Blocked:    t.Blocked,
			Score:      t.Score,
			BulletLive: t.BulletLive,
			BulletPos:  t.Bullet.Pos,
			BulletVel:  t.Bullet.Vel,
			Contacts:   t.Contacts(),
		}
	}
	return s
}

// Digest hashes the gameplay-relevant state with xxhash64 over a fixed
// little-endian encoding. Equal digests mean bit-identical simulations.
func (s Snapshot) Digest() uint64 {
	var buf []byte
	buf = binary.LittleEndian.AppendUint64(buf, s.Tick)
	buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(s.Elapsed))
	buf = appendBool(buf, s.Paused)
	buf = appendBool(buf, s.GameOver)
	buf = append(buf, byte(s.Winner))

	for _, t := range s.Tanks {
		buf = append(buf, byte(t.Player))
		buf = appendVec(buf, t.Pos)
		buf = appendVec(buf, t.Vel)
		buf = appendFloat(buf, t.Angle)
		buf = append(buf, byte(t.Heading))
		buf = appendBool(buf, t.Spinning)
		buf = appendFloat(buf, t.SpinLeft)
		buf = appendFloat(buf, t.Cooldown)
		buf = appendBool(buf, t.Blocked)
		buf = binary.LittleEndian.AppendUint32(buf, uint32(t.Score))
		buf = appendBool(buf, t.BulletLive)
		if t.BulletLive {
			buf = appendVec(buf, t.BulletPos)
			buf = appendVec(buf, t.BulletVel)
		}
	}

	return xxhash.Sum64(buf)
}

func appendFloat(buf []byte, f float32) []byte {
	return binary.LittleEndian.AppendUint32(buf, math.Float32bits(f))
}

func appendVec(buf []byte, v core.Vec2) []byte {
	return appendFloat(appendFloat(buf, v.X), v.Y)
}

func appendBool(buf []byte, b bool) []byte {
	if b {
		return append(buf, 1)
	}
	return append(buf, 0)
}
