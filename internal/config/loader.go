package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in the search directories.
const FileName = "combat.yaml"

// LoadCombat loads match configuration.
// Search order: customPath -> ~/.arcade/configs/combat.yaml -> ./configs/combat.yaml -> embedded default.
// Every file is decoded on top of DefaultCombatConfig, so partial files only
// override the keys they name.
func LoadCombat(customPath string) (CombatConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return CombatConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return CombatConfig{}, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(FileName); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", FileName)); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultCombatYAML)
	if err != nil {
		return DefaultCombatConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML over the built-in defaults and validates the result.
func Parse(data []byte) (CombatConfig, error) {
	cfg := DefaultCombatConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return CombatConfig{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return CombatConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ApplyCombatPreset modifies the config based on a difficulty preset.
func ApplyCombatPreset(cfg *CombatConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust the CPU side's handicap
	switch preset {
	case DifficultyEasy:
		cfg.P2.Speed = 2
		cfg.P2.FireCooldown = 7
	case DifficultyHard:
		cfg.P2.Speed = 5
		cfg.P2.FireCooldown = 3
	}
}
