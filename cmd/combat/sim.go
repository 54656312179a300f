package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tank-combat/internal/games/combat"
	"github.com/vovakirdan/tank-combat/internal/match"
	"github.com/vovakirdan/tank-combat/internal/registry"
	"github.com/vovakirdan/tank-combat/internal/storage"
)

var (
	flagLevel    string
	flagMaxTicks uint64
	flagNoSave   bool
	flagWatch    bool
)

var simCmd = &cobra.Command{
	Use:   "sim [p1] [p2]",
	Short: "Run a single match",
	Long: `Run one match between two pilots and print the result.
Pilots default to the classic CPU on both sides.

Difficulty options (applied to player 2):
  easy   - Slower tank, longer fire cooldown
  normal - Config values, progressing as player 1 scores
  hard   - Faster tank, shorter fire cooldown
  fixed  - No progression

Examples:
  combat sim
  combat sim gunner cpu
  combat sim charger idle --level pillar --watch
  combat sim cpu cpu --fps 60 --max-ticks 3600`,
	Args: cobra.RangeArgs(0, 2),
	Run:  runSim,
}

func init() {
	addMatchFlags(simCmd)
	simCmd.Flags().BoolVar(&flagWatch, "watch", false, "Print hits as they happen")
}

// addMatchFlags registers the flags shared by sim and batch.
func addMatchFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagLevel, "level", "", "Level ID (default: config match.level)")
	cmd.Flags().Uint64Var(&flagMaxTicks, "max-ticks", 0, "Stop after this many ticks (0 = no limit)")
	cmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not record results in the history database")
}

func runSim(cmd *cobra.Command, args []string) {
	pilots := [2]string{"cpu", "cpu"}
	copy(pilots[:], args)
	for _, id := range pilots {
		if !registry.Exists(id) {
			fatal("unknown pilot %q\nRun 'combat pilots' to see available pilots.", id)
		}
	}

	spec, err := buildSpec(pilots[0], pilots[1])
	if err != nil {
		fatal("%v", err)
	}

	logger := newLogger()
	opts := []match.Option{match.WithLogger(logger)}

	store := openStore()
	if store != nil {
		defer store.Close()
		opts = append(opts, match.WithSaver(store))
	}

	var watcher *match.ChannelSpectator
	watched := make(chan struct{})
	if flagWatch {
		watcher = match.NewChannelSpectator(256)
		opts = append(opts, match.WithSpectator(watcher))
		go func() {
			defer close(watched)
			printHits(watcher)
		}()
	} else {
		close(watched)
	}

	m, err := match.New(spec, opts...)
	if err != nil {
		fatal("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, runErr := m.Run(ctx)
	// The watcher stops on the match's EndedEvent
	<-watched
	if watcher != nil {
		watcher.Close()
	}

	fmt.Println(renderResult(result))
	if runErr != nil {
		logger.Warn("result not saved", "err", runErr)
	}
}

// buildSpec assembles a match spec from config, flags and pilots.
func buildSpec(p1, p2 string) (match.Spec, error) {
	cfg, err := loadConfig()
	if err != nil {
		return match.Spec{}, err
	}

	level, err := loadLevel(cfg, flagLevel)
	if err != nil {
		return match.Spec{}, err
	}

	return match.Spec{
		Level:    level,
		Config:   cfg,
		Pilot1:   p1,
		Pilot2:   p2,
		MaxTicks: flagMaxTicks,
		FPS:      flagFPS,
	}, nil
}

// openStore opens the history database unless --no-save is set.
// A broken database only costs the history; matches still run.
func openStore() *storage.Store {
	if flagNoSave {
		return nil
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open history database: %v\n", err)
		return nil
	}
	return store
}

// printHits reports struck events until the match ends or the watcher closes.
func printHits(w *match.ChannelSpectator) {
	for {
		select {
		case evt := <-w.Events():
			switch e := evt.(type) {
			case match.TickEvent:
				for _, ge := range e.Events {
					if s, ok := ge.(combat.StruckEvent); ok {
						fmt.Printf("  %6.2fs  %s hits %s  (%s)\n",
							e.Snapshot.Elapsed, s.Shooter, s.Target, scoreLine(e.Snapshot))
					}
				}
			case match.EndedEvent:
				return
			}
		case <-w.Done():
			return
		}
	}
}

func scoreLine(s combat.Snapshot) string {
	return fmt.Sprintf("%d:%d", s.Tanks[0].Score, s.Tanks[1].Score)
}
