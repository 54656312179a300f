package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tank-combat/internal/core"
	"github.com/vovakirdan/tank-combat/internal/match"
	"github.com/vovakirdan/tank-combat/internal/registry"
)

var (
	flagCount   int
	flagWorkers int
	flagSwap    bool
)

var batchCmd = &cobra.Command{
	Use:   "batch <p1> <p2>",
	Short: "Run many matches in parallel",
	Long: `Run a series of independent matches between two pilots and
summarise the outcome. With --swap every other match puts the pilots on
opposite sides so neither spawn is favoured.

Examples:
  combat batch cpu gunner
  combat batch cpu charger --count 200 --workers 8 --swap
  combat batch gunner idle --level pillar --no-save`,
	Args: cobra.ExactArgs(2),
	Run:  runBatch,
}

func init() {
	addMatchFlags(batchCmd)
	batchCmd.Flags().IntVar(&flagCount, "count", 20, "Number of matches")
	batchCmd.Flags().IntVar(&flagWorkers, "workers", 0, "Matches in flight (0 = one per CPU)")
	batchCmd.Flags().BoolVar(&flagSwap, "swap", false, "Alternate sides between matches")
}

func runBatch(cmd *cobra.Command, args []string) {
	for _, id := range args {
		if !registry.Exists(id) {
			fatal("unknown pilot %q\nRun 'combat pilots' to see available pilots.", id)
		}
	}
	if flagCount <= 0 {
		fatal("--count must be positive")
	}

	base, err := buildSpec(args[0], args[1])
	if err != nil {
		fatal("%v", err)
	}
	// Pacing a batch makes no sense
	base.FPS = 0

	specs := make([]match.Spec, flagCount)
	for i := range specs {
		specs[i] = base
		if flagSwap && i%2 == 1 {
			specs[i].Pilot1, specs[i].Pilot2 = base.Pilot2, base.Pilot1
		}
	}

	logger := newLogger()
	opts := []match.Option{match.WithLogger(logger)}
	store := openStore()
	if store != nil {
		defer store.Close()
		opts = append(opts, match.WithSaver(store))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	results, err := match.RunBatch(ctx, specs, flagWorkers, opts...)
	if err != nil {
		logger.Error("batch failed", "err", err)
	}

	fmt.Println(renderBatch(summarize(results, args[0], args[1]), len(results), time.Since(start)))
	if err != nil {
		os.Exit(1)
	}
}

// batchLine is one pilot's share of a batch.
type batchLine struct {
	Pilot string
	Wins  int
	Hits  int
}

// batchSummary aggregates a batch's results.
type batchSummary struct {
	Lines   [2]batchLine
	Draws   int
	Reasons map[match.EndReason]int
	Ticks   uint64
	Played  int
}

func summarize(results []match.Result, p1, p2 string) batchSummary {
	s := batchSummary{
		Lines:   [2]batchLine{{Pilot: p1}, {Pilot: p2}},
		Reasons: make(map[match.EndReason]int),
	}

	for _, r := range results {
		if r.MatchID == "" {
			// Never started
			continue
		}
		s.Played++
		s.Reasons[r.Reason]++
		s.Ticks += r.Ticks

		if r.Winner == 0 {
			s.Draws++
		}
		for i := range s.Lines {
			side := lineSide(r, s.Lines[i].Pilot, i, p1 == p2)
			if side == core.Player1 {
				s.Lines[i].Hits += r.Score1
			} else {
				s.Lines[i].Hits += r.Score2
			}
			if r.Winner == side {
				s.Lines[i].Wins++
			}
		}
	}
	return s
}

// lineSide returns the side a summary line's pilot played in r.
// In a mirror match the lines follow the sides instead of the names.
func lineSide(r match.Result, pilot string, line int, mirror bool) core.PlayerID {
	if mirror {
		return core.PlayerID(line + 1)
	}
	if r.Pilot1 == pilot {
		return core.Player1
	}
	return core.Player2
}
