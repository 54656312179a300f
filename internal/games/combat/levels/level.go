// Package levels provides level loading and validation for tank combat.
// This package depends on collision but collision does not depend on levels.
package levels

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tank-combat/internal/collision"
	"github.com/vovakirdan/tank-combat/internal/core"
	"github.com/vovakirdan/tank-combat/internal/games/combat/levels/formats"
)

// ErrLevelNotFound is returned when no level carries the requested ID.
var ErrLevelNotFound = errors.New("levels: level not found")

// Spawn is a tank start position (top-left corner) and facing angle.
type Spawn struct {
	Pos   core.Vec2
	Angle float32
}

// Level represents a complete level definition.
type Level struct {
	ID       string
	Name     string
	TileSize float32
	Width    int // Columns
	Height   int // Rows
	Board    []string
	Spawns   [2]Spawn
	Metadata map[string]string
	FilePath string // Empty for built-in levels
}

func fromFormat(p formats.Level, path string) Level {
	lvl := Level{
		ID:       p.ID,
		Name:     p.Name,
		TileSize: float32(p.TileSize),
		Width:    p.Width,
		Height:   p.Height,
		Board:    p.Board,
		Metadata: p.Metadata,
		FilePath: path,
	}
	for i, s := range p.Spawns {
		lvl.Spawns[i] = Spawn{Pos: core.V(float32(s.X), float32(s.Y)), Angle: float32(s.Angle)}
	}
	return lvl
}

// Spawn returns the start position of a player.
func (l Level) Spawn(p core.PlayerID) Spawn {
	if p == core.Player2 {
		return l.Spawns[1]
	}
	return l.Spawns[0]
}

// Bounds returns the arena size in pixels.
func (l Level) Bounds() core.Vec2 {
	return core.V(float32(l.Width)*l.TileSize, float32(l.Height)*l.TileSize)
}

// Tiles converts every wall cell into one static obstacle, row-major.
func (l Level) Tiles() []collision.Rect {
	var tiles []collision.Rect
	for row, line := range l.Board {
		for col := 0; col < len(line); col++ {
			if line[col] != formats.Wall {
				continue
			}
			tiles = append(tiles, collision.NewRect(
				float32(col)*l.TileSize, float32(row)*l.TileSize,
				l.TileSize, l.TileSize,
			))
		}
	}
	return tiles
}

// Obstacles builds a fresh obstacle set for one match.
func (l Level) Obstacles() *collision.ObstacleSet {
	return collision.NewObstacleSet(l.Tiles())
}

// Validate checks that a level is playable with tanks of the given size:
// at least one wall, both spawns inside the arena, clear of walls and of
// each other.
func Validate(l Level, tankSize float32) error {
	tiles := l.Tiles()
	if len(tiles) == 0 {
		return fmt.Errorf("levels: %s: board has no walls", l.ID)
	}

	bounds := l.Bounds()
	var bodies [2]collision.Rect
	for i, s := range l.Spawns {
		who := core.PlayerID(i + 1)
		body := collision.NewRect(s.Pos.X, s.Pos.Y, tankSize, tankSize)
		if s.Pos.X < 0 || s.Pos.Y < 0 || body.Max().X > bounds.X || body.Max().Y > bounds.Y {
			return fmt.Errorf("levels: %s: %s spawn %v outside the arena", l.ID, who, s.Pos)
		}
		for ti, tile := range tiles {
			if collision.RectsOverlap(body, tile) {
				return fmt.Errorf("levels: %s: %s spawn overlaps wall %d at %v", l.ID, who, ti, tile.Pos)
			}
		}
		bodies[i] = body
	}

	if collision.RectsOverlap(bodies[0], bodies[1]) {
		return fmt.Errorf("levels: %s: spawns overlap", l.ID)
	}
	return nil
}
