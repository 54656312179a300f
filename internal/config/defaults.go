package config

import (
	_ "embed"
)

//go:embed defaults/combat.yaml
var defaultCombatYAML []byte

// DefaultCombatConfig returns the built-in configuration. It mirrors
// defaults/combat.yaml and is used when the embedded file cannot be parsed.
func DefaultCombatConfig() CombatConfig {
	return CombatConfig{
		Match: MatchConfig{
			TickRate:  60,
			TimeLimit: 136,
			WinScore:  10,
			Level:     "classic",
		},
		Tanks: TankConfig{
			Size:         8,
			TurnRate:     6,
			SpinStep:     0.39269908, // pi/8
			SpinDuration: 5,
			Knockback:    2,
		},
		Bullets: BulletConfig{
			Speed: 100,
			Size:  1,
		},
		P1: PlayerConfig{
			Speed:        6,
			FireCooldown: 0,
		},
		P2: PlayerConfig{
			Speed:        3,
			FireCooldown: 5,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 10,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:   1.0,
				CooldownReduction: 0.6,
			},
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultCombatYAML
}
