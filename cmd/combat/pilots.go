package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tank-combat/internal/registry"
)

var pilotsCmd = &cobra.Command{
	Use:   "pilots",
	Short: "List all available pilots",
	Long:  `Shows a list of all pilots registered with the match runner.`,
	Args:  cobra.NoArgs,
	Run:   runPilots,
}

func runPilots(cmd *cobra.Command, args []string) {
	pilots := registry.List()

	if len(pilots) == 0 {
		fmt.Println("No pilots available.")
		return
	}

	rows := make([][]string, 0, len(pilots))
	for _, p := range pilots {
		rows = append(rows, []string{p.ID, p.Title})
	}

	fmt.Println("Available pilots:")
	fmt.Println()
	fmt.Println(renderTable([]string{"ID", "Title"}, rows))
	fmt.Println()
	fmt.Println("Run 'combat sim <p1> <p2>' to pit two pilots against each other.")
}
