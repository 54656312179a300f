// Package formats provides pluggable level file format parsers.
package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Board cells.
const (
	Wall  = '#'
	Floor = '.'
)

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	TileSize float64           `yaml:"tile_size"`
	Spawns   YAMLSpawns        `yaml:"spawns"`
	Board    []string          `yaml:"board"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// YAMLSpawns holds both start positions.
type YAMLSpawns struct {
	P1 YAMLSpawn `yaml:"p1"`
	P2 YAMLSpawn `yaml:"p2"`
}

// YAMLSpawn is a tank start position in pixels and a facing angle in radians.
type YAMLSpawn struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Angle float64 `yaml:"angle"`
}

// Level represents a parsed level ready for use.
type Level struct {
	ID       string
	Name     string
	TileSize float64
	Width    int // Columns
	Height   int // Rows
	Board    []string
	Spawns   [2]YAMLSpawn // P1, P2
	Metadata map[string]string
}

// ParseYAML parses a YAML level file. Structural problems of the board are
// reported here; gameplay checks live with the loader.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	if yl.ID == "" {
		return Level{}, fmt.Errorf("missing id")
	}
	if len(yl.Board) == 0 {
		return Level{}, fmt.Errorf("level %s: empty board", yl.ID)
	}

	tile := yl.TileSize
	if tile <= 0 {
		tile = 4 // Default tile size
	}

	width := len(yl.Board[0])
	for row, line := range yl.Board {
		if len(line) != width {
			return Level{}, fmt.Errorf("level %s: row %d has width %d, want %d", yl.ID, row, len(line), width)
		}
		for col := 0; col < len(line); col++ {
			if c := line[col]; c != Wall && c != Floor {
				return Level{}, fmt.Errorf("level %s: unexpected cell %q at row %d col %d", yl.ID, c, row, col)
			}
		}
	}

	name := yl.Name
	if name == "" {
		name = yl.ID
	}

	return Level{
		ID:       yl.ID,
		Name:     name,
		TileSize: tile,
		Width:    width,
		Height:   len(yl.Board),
		Board:    yl.Board,
		Spawns:   [2]YAMLSpawn{yl.Spawns.P1, yl.Spawns.P2},
		Metadata: yl.Metadata,
	}, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
