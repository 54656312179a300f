// Package config provides YAML-based match configuration loading and
// difficulty management for tank combat.
package config

import (
	"errors"
	"fmt"
)

// CombatConfig contains all tunables of a match.
type CombatConfig struct {
	Match      MatchConfig      `yaml:"match"`
	Tanks      TankConfig       `yaml:"tanks"`
	Bullets    BulletConfig     `yaml:"bullets"`
	P1         PlayerConfig     `yaml:"p1"`
	P2         PlayerConfig     `yaml:"p2"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// MatchConfig defines match-wide rules.
type MatchConfig struct {
	TickRate  int     `yaml:"tick_rate"`  // Simulation steps per second
	TimeLimit float64 `yaml:"time_limit"` // Seconds, 0 disables the clock
	WinScore  int     `yaml:"win_score"`  // Hits needed to win, 0 disables
	Level     string  `yaml:"level"`      // Level ID played by default
}

// TankConfig defines tank bodies and their reaction to being hit.
type TankConfig struct {
	Size         float64 `yaml:"size"`
	TurnRate     float64 `yaml:"turn_rate"`     // Compass points per second while turning
	SpinStep     float64 `yaml:"spin_step"`     // Radians turned per step while spinning
	SpinDuration float64 `yaml:"spin_duration"` // Seconds a struck tank spins
	Knockback    float64 `yaml:"knockback"`     // Multiplier applied to the bullet's impact velocity
}

// BulletConfig defines bullets.
type BulletConfig struct {
	Speed float64 `yaml:"speed"`
	Size  float64 `yaml:"size"`
}

// PlayerConfig defines per-side handicaps.
type PlayerConfig struct {
	Speed        float64 `yaml:"speed"`
	FireCooldown float64 `yaml:"fire_cooldown"` // Seconds between shots, 0 means any time
}

// DifficultyConfig defines the difficulty progression system.
// Progression only ever affects Player 2.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over a match.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier   float64 `yaml:"speed_multiplier"`   // Multiplier added to speed at max difficulty
	CooldownReduction float64 `yaml:"cooldown_reduction"` // Fraction of the fire cooldown removed at max difficulty
}

// Validate reports the first setting that would make a match unplayable.
func (c CombatConfig) Validate() error {
	switch {
	case c.Match.TickRate <= 0:
		return fmt.Errorf("config: match.tick_rate must be positive, got %d", c.Match.TickRate)
	case c.Match.TimeLimit < 0:
		return errors.New("config: match.time_limit must not be negative")
	case c.Match.WinScore < 0:
		return errors.New("config: match.win_score must not be negative")
	case c.Match.TimeLimit == 0 && c.Match.WinScore == 0:
		return errors.New("config: match needs a time_limit or a win_score")
	case c.Tanks.Size <= 0:
		return errors.New("config: tanks.size must be positive")
	case c.Tanks.SpinDuration < 0:
		return errors.New("config: tanks.spin_duration must not be negative")
	case c.Bullets.Size <= 0:
		return errors.New("config: bullets.size must be positive")
	case c.Bullets.Size >= c.Tanks.Size:
		return errors.New("config: bullets.size must be smaller than tanks.size")
	case c.Bullets.Speed <= 0:
		return errors.New("config: bullets.speed must be positive")
	case c.P1.FireCooldown < 0 || c.P2.FireCooldown < 0:
		return errors.New("config: fire_cooldown must not be negative")
	case c.Difficulty.Scaling.CooldownReduction < 0 || c.Difficulty.Scaling.CooldownReduction > 1:
		return errors.New("config: difficulty.scaling.cooldown_reduction must be within [0, 1]")
	}
	switch c.Difficulty.Progression.Type {
	case "", "none", "score", "time":
	default:
		return fmt.Errorf("config: unknown difficulty progression %q", c.Difficulty.Progression.Type)
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value into a preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	case "":
		return DifficultyNormal, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (easy|normal|hard|fixed)", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
