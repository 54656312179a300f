package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"github.com/vovakirdan/tank-combat/internal/games/combat/levels/formats"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// DefaultID is the level played when none is configured.
const DefaultID = "classic"

// Builtin returns the levels compiled into the binary, sorted by ID.
func Builtin() ([]Level, error) {
	entries, err := fs.ReadDir(builtinFS, "builtin")
	if err != nil {
		return nil, fmt.Errorf("levels: reading built-in levels: %w", err)
	}

	levels := make([]Level, 0, len(entries))
	for _, e := range entries {
		data, err := builtinFS.ReadFile("builtin/" + e.Name())
		if err != nil {
			return nil, fmt.Errorf("levels: reading built-in %s: %w", e.Name(), err)
		}
		parsed, err := formats.ParseYAML(data)
		if err != nil {
			return nil, fmt.Errorf("levels: parsing built-in %s: %w", e.Name(), err)
		}
		levels = append(levels, fromFormat(parsed, ""))
	}

	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
	return levels, nil
}

// BuiltinByID returns one built-in level.
func BuiltinByID(id string) (Level, error) {
	levels, err := Builtin()
	if err != nil {
		return Level{}, err
	}
	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}
	return Level{}, fmt.Errorf("%w: %s", ErrLevelNotFound, id)
}
