package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tank-combat/internal/storage"
)

var (
	flagPilot string
	flagLimit int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently played matches",
	Long: `Display the most recent matches stored in the history database.

Examples:
  combat history
  combat history --pilot gunner --limit 50
  combat history stats
  combat history show 3f1c2a9e-...
  combat history clear`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-pilot win/loss statistics",
	Args:  cobra.NoArgs,
	Run:   runHistoryStats,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <match-id>",
	Short: "Show one stored match",
	Args:  cobra.ExactArgs(1),
	Run:   runHistoryShow,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all stored matches",
	Args:  cobra.NoArgs,
	Run:   runHistoryClear,
}

func init() {
	historyCmd.Flags().StringVar(&flagPilot, "pilot", "", "Only matches this pilot played")
	historyCmd.Flags().IntVar(&flagLimit, "limit", 20, "Maximum matches to show")

	historyCmd.AddCommand(historyStatsCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyClearCmd)
}

// mustOpenStore opens the history database or exits.
func mustOpenStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fatal("opening history database: %v", err)
	}
	return store
}

func runHistory(cmd *cobra.Command, args []string) {
	store := mustOpenStore()
	defer store.Close()

	records, err := store.RecentMatches(context.Background(), flagPilot, flagLimit)
	if err != nil {
		store.Close()
		fatal("retrieving matches: %v", err)
	}

	if len(records) == 0 {
		fmt.Println("No matches recorded yet.")
		fmt.Println()
		fmt.Println("Run 'combat sim' to play the first one!")
		return
	}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		winner := r.Winner
		if winner == "" {
			winner = "draw"
		}
		rows = append(rows, []string{
			r.CreatedAt.Format("2006-01-02 15:04"),
			shortID(r.MatchID),
			r.LevelID,
			r.Pilot1 + " vs " + r.Pilot2,
			fmt.Sprintf("%d:%d", r.Score1, r.Score2),
			winner,
			r.EndReason,
		})
	}

	fmt.Println(renderTable([]string{"Date", "Match", "Level", "Pilots", "Score", "Winner", "Reason"}, rows))
}

func runHistoryStats(cmd *cobra.Command, args []string) {
	store := mustOpenStore()
	defer store.Close()

	stats, err := store.PilotStats(context.Background())
	if err != nil {
		store.Close()
		fatal("retrieving stats: %v", err)
	}

	if len(stats) == 0 {
		fmt.Println("No matches recorded yet.")
		return
	}

	rows := make([][]string, 0, len(stats))
	for _, s := range stats {
		rate := 0.0
		if s.Matches > 0 {
			rate = float64(s.Wins) / float64(s.Matches) * 100
		}
		rows = append(rows, []string{
			s.PilotID,
			strconv.Itoa(s.Matches),
			strconv.Itoa(s.Wins),
			strconv.Itoa(s.Draws),
			strconv.Itoa(s.Losses()),
			fmt.Sprintf("%.0f%%", rate),
			strconv.Itoa(s.Hits),
			s.LastPlayed.Format("2006-01-02 15:04"),
		})
	}

	fmt.Println(renderTable([]string{"Pilot", "Played", "Won", "Drawn", "Lost", "Win rate", "Hits", "Last played"}, rows))
}

func runHistoryShow(cmd *cobra.Command, args []string) {
	store := mustOpenStore()
	defer store.Close()

	r, err := store.MatchByID(context.Background(), args[0])
	if err != nil {
		store.Close()
		fatal("retrieving match: %v", err)
	}
	if r == nil {
		store.Close()
		fatal("no match %q", args[0])
	}

	fmt.Println(renderRecord(*r))
}

func runHistoryClear(cmd *cobra.Command, args []string) {
	store := mustOpenStore()
	defer store.Close()

	if err := store.ClearMatches(context.Background()); err != nil {
		store.Close()
		fatal("clearing history: %v", err)
	}
	fmt.Fprintln(os.Stdout, "Match history cleared.")
}

// shortID trims a UUID to its first group for tables.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
