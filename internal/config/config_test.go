package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	require.NoError(t, err)
	assert.Equal(t, DefaultCombatConfig(), cfg)
}

func TestLoadCombatCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "combat.yaml")
	data := []byte("match:\n  win_score: 3\np2:\n  speed: 4.5\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := LoadCombat(path)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Match.WinScore)
	assert.Equal(t, 4.5, cfg.P2.Speed)
	// Untouched keys keep their defaults
	assert.Equal(t, 60, cfg.Match.TickRate)
	assert.Equal(t, 100.0, cfg.Bullets.Speed)
}

func TestLoadCombatErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadCombat(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("match: [oops"), 0o644))
	_, err = LoadCombat(bad)
	assert.Error(t, err)

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("tanks:\n  size: 0\n"), 0o644))
	_, err = LoadCombat(invalid)
	assert.ErrorContains(t, err, "tanks.size")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CombatConfig)
		wantErr bool
	}{
		{"defaults", func(*CombatConfig) {}, false},
		{"zero tick rate", func(c *CombatConfig) { c.Match.TickRate = 0 }, true},
		{"no end condition", func(c *CombatConfig) { c.Match.TimeLimit = 0; c.Match.WinScore = 0 }, true},
		{"score only", func(c *CombatConfig) { c.Match.TimeLimit = 0 }, false},
		{"bullet as big as a tank", func(c *CombatConfig) { c.Bullets.Size = 8 }, true},
		{"negative cooldown", func(c *CombatConfig) { c.P2.FireCooldown = -1 }, true},
		{"unknown progression", func(c *CombatConfig) { c.Difficulty.Progression.Type = "kills" }, true},
		{"reduction above one", func(c *CombatConfig) { c.Difficulty.Scaling.CooldownReduction = 1.5 }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultCombatConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestApplyCombatPreset(t *testing.T) {
	cfg := DefaultCombatConfig()
	ApplyCombatPreset(&cfg, DifficultyFixed)
	assert.False(t, cfg.Difficulty.Enabled)

	cfg = DefaultCombatConfig()
	ApplyCombatPreset(&cfg, DifficultyHard)
	assert.True(t, cfg.Difficulty.Enabled)
	assert.Equal(t, 0.7, cfg.Difficulty.InitialLevel)
	assert.Equal(t, 5.0, cfg.P2.Speed)
	assert.Equal(t, 3.0, cfg.P2.FireCooldown)
	assert.NoError(t, cfg.Validate())
}

func TestParsePreset(t *testing.T) {
	p, err := ParsePreset("")
	require.NoError(t, err)
	assert.Equal(t, DifficultyNormal, p)

	p, err = ParsePreset("hard")
	require.NoError(t, err)
	assert.Equal(t, DifficultyHard, p)

	_, err = ParsePreset("nightmare")
	assert.Error(t, err)
}
