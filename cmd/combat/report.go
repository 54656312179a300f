package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/vovakirdan/tank-combat/internal/core"
	"github.com/vovakirdan/tank-combat/internal/games/combat/levels"
	"github.com/vovakirdan/tank-combat/internal/match"
	"github.com/vovakirdan/tank-combat/internal/storage"
)

// Output is styled only when stdout is a terminal.
var styled = term.IsTerminal(int(os.Stdout.Fd()))

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	winStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	wallStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	p1Style     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	p2Style     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

func paint(s lipgloss.Style, text string) string {
	if !styled {
		return text
	}
	return s.Render(text)
}

// renderTable lays rows out in left-aligned columns under a header.
func renderTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	line := func(cells []string, style *lipgloss.Style) string {
		var b strings.Builder
		b.WriteString("  ")
		for i, cell := range cells {
			if i >= len(widths) {
				break
			}
			pad := widths[i] - lipgloss.Width(cell)
			if style != nil {
				cell = paint(*style, cell)
			}
			b.WriteString(cell)
			if i < len(cells)-1 {
				b.WriteString(strings.Repeat(" ", pad+2))
			}
		}
		return b.String()
	}

	rules := make([]string, len(headers))
	for i := range headers {
		rules[i] = strings.Repeat("-", widths[i])
	}

	out := []string{line(headers, &headerStyle), line(rules, &dimStyle)}
	for _, row := range rows {
		out = append(out, line(row, nil))
	}
	return strings.Join(out, "\n")
}

// outcome is what the result and record views have in common.
type outcome struct {
	id       string
	level    string
	pilots   [2]string
	scores   [2]int
	winner   core.PlayerID
	reason   string
	ticks    uint64
	duration time.Duration
	digest   uint64
	when     time.Time
}

func renderOutcome(o outcome) string {
	lines := []string{
		paint(titleStyle, "Match "+o.id),
		fmt.Sprintf("Level   %s", o.level),
		"",
	}

	nameWidth := max(lipgloss.Width(o.pilots[0]), lipgloss.Width(o.pilots[1]))
	for i, name := range o.pilots {
		side := core.PlayerID(i + 1)
		row := fmt.Sprintf("%s  %-*s  %3d", side, nameWidth, name, o.scores[i])
		if o.winner == side {
			row = paint(winStyle, row+"  winner")
		}
		lines = append(lines, row)
	}
	if o.winner == 0 {
		lines = append(lines, paint(dimStyle, "Draw"))
	}

	lines = append(lines,
		"",
		fmt.Sprintf("Reason  %s", o.reason),
		fmt.Sprintf("Ticks   %d (%s played)", o.ticks, o.duration.Round(10*time.Millisecond)),
		paint(dimStyle, fmt.Sprintf("Digest  %016x", o.digest)),
	)
	if !o.when.IsZero() {
		lines = append(lines, paint(dimStyle, "Played  "+o.when.Format("2006-01-02 15:04:05")))
	}

	body := strings.Join(lines, "\n")
	if !styled {
		return body
	}
	return boxStyle.Render(body)
}

func renderResult(r match.Result) string {
	return renderOutcome(outcome{
		id:       string(r.MatchID),
		level:    r.LevelID,
		pilots:   [2]string{r.Pilot1, r.Pilot2},
		scores:   [2]int{r.Score1, r.Score2},
		winner:   r.Winner,
		reason:   string(r.Reason),
		ticks:    r.Ticks,
		duration: r.Duration,
		digest:   r.Digest,
	})
}

func renderRecord(r storage.MatchRecord) string {
	var winner core.PlayerID
	switch {
	case r.Score1 > r.Score2:
		winner = core.Player1
	case r.Score2 > r.Score1:
		winner = core.Player2
	}
	return renderOutcome(outcome{
		id:       r.MatchID,
		level:    r.LevelID,
		pilots:   [2]string{r.Pilot1, r.Pilot2},
		scores:   [2]int{r.Score1, r.Score2},
		winner:   winner,
		reason:   r.EndReason,
		ticks:    r.Ticks,
		duration: r.Duration,
		digest:   r.Digest,
		when:     r.CreatedAt,
	})
}

func renderBatch(s batchSummary, total int, wall time.Duration) string {
	var rows [][]string
	for _, line := range s.Lines {
		rate := 0.0
		if s.Played > 0 {
			rate = float64(line.Wins) / float64(s.Played) * 100
		}
		rows = append(rows, []string{
			line.Pilot,
			fmt.Sprint(line.Wins),
			fmt.Sprintf("%.1f%%", rate),
			fmt.Sprint(line.Hits),
		})
	}
	rows = append(rows, []string{"draws", fmt.Sprint(s.Draws), "", ""})

	var reasons []string
	for r, n := range s.Reasons {
		reasons = append(reasons, fmt.Sprintf("%s %d", r, n))
	}
	sort.Strings(reasons)

	avgTicks := uint64(0)
	if s.Played > 0 {
		avgTicks = s.Ticks / uint64(s.Played)
	}

	lines := []string{
		paint(titleStyle, fmt.Sprintf("Batch: %d of %d matches played in %s", s.Played, total, wall.Round(time.Millisecond))),
		"",
		renderTable([]string{"Pilot", "Wins", "Win rate", "Hits"}, rows),
		"",
		fmt.Sprintf("Ended by  %s", strings.Join(reasons, ", ")),
		fmt.Sprintf("Avg ticks %d", avgTicks),
	}
	return strings.Join(lines, "\n")
}

// renderBoard draws a level's walls with the spawn tiles marked.
func renderBoard(l levels.Level) string {
	grid := make([][]rune, len(l.Board))
	for y, row := range l.Board {
		grid[y] = []rune(row)
	}
	for i, s := range l.Spawns {
		col := int(s.Pos.X / l.TileSize)
		row := int(s.Pos.Y / l.TileSize)
		if row >= 0 && row < len(grid) && col >= 0 && col < len(grid[row]) {
			grid[row][col] = rune('1' + i)
		}
	}

	var b strings.Builder
	b.WriteString(paint(titleStyle, fmt.Sprintf("%s (%s) %dx%d tiles of %.0fpx", l.Name, l.ID, l.Width, l.Height, l.TileSize)))
	b.WriteByte('\n')
	for _, row := range grid {
		for _, r := range row {
			switch r {
			case '#':
				b.WriteString(paint(wallStyle, "#"))
			case '1':
				b.WriteString(paint(p1Style, "1"))
			case '2':
				b.WriteString(paint(p2Style, "2"))
			default:
				b.WriteString(paint(dimStyle, "."))
			}
		}
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}
