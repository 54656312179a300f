// combat runs tank combat matches between computer pilots.
//
// Usage:
//
//	combat sim [p1] [p2]        - Run one match and print the result
//	combat batch <p1> <p2>      - Run many matches in parallel
//	combat levels               - List available levels
//	combat pilots               - List available pilots
//	combat history              - Show stored matches and pilot stats
//
// Global flags:
//
//	--db <path>          - Match history database (default: ~/.arcade/combat.db)
//	--config <path>      - Custom combat.yaml
//	--difficulty <name>  - easy, normal, hard or fixed
//	--levels <dir>       - Directory searched for level files before the built-ins
//	--log-level <level>  - debug, info, warn or error
//	--fps <rate>         - Pace matches in real time (0 = as fast as possible)
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tank-combat/internal/config"
	"github.com/vovakirdan/tank-combat/internal/games/combat/levels"

	// Import pilots to register them
	_ "github.com/vovakirdan/tank-combat/internal/pilots"
)

var (
	// Global flags
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLevelsDir  string
	flagLogLevel   string
	flagFPS        int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "combat",
	Short: "Tank Combat - computer pilots fight it out in a walled arena",
	Long: `Tank Combat simulates two-tank arena matches.

Available commands:
  sim      - Run a single match
  batch    - Run many matches in parallel
  levels   - Show all available levels
  pilots   - Show all available pilots
  history  - View stored matches and pilot stats

Examples:
  combat sim
  combat sim gunner cpu --level pillar
  combat batch cpu charger --count 50 --workers 8
  combat history --pilot cpu`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/combat.db", "Path to match history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom combat config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels", "", "Directory with level files")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Real-time tick pacing (0 = as fast as possible)")

	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(pilotsCmd)
	rootCmd.AddCommand(historyCmd)
}

// newLogger builds the process logger from --log-level.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "combat",
	})

	level, err := log.ParseLevel(strings.ToLower(flagLogLevel))
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// loadConfig resolves the combat config and applies --difficulty.
func loadConfig() (config.CombatConfig, error) {
	cfg, err := config.LoadCombat(flagConfig)
	if err != nil {
		return config.CombatConfig{}, err
	}

	if flagDifficulty != "" {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			return config.CombatConfig{}, err
		}
		config.ApplyCombatPreset(&cfg, preset)
	}
	return cfg, nil
}

// loadLevel finds a level by ID, falling back to the config's level.
func loadLevel(cfg config.CombatConfig, id string) (levels.Level, error) {
	if id == "" {
		id = cfg.Match.Level
	}
	if id == "" {
		id = levels.DefaultID
	}
	return levels.Lookup(flagLevelsDir, id)
}

// fatal prints an error and exits with status 1.
func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", fmt.Sprintf(format, args...))
	os.Exit(1)
}
