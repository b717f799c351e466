// Package cli implements the one-shot "play" mode: a terminal spinner that
// follows a dashboard run, then a table of the settled values.
//
// # Naming Conventions
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayBoard], [DisplayPlayConfig].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatProgressLine].
package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/agbru/ecodash/internal/format"
	"github.com/agbru/ecodash/internal/orchestration"
	"github.com/agbru/ecodash/internal/portfolio"
	"github.com/agbru/ecodash/internal/ui"
)

var groupTitles = []struct{ group, title string }{
	{portfolio.GroupScores, "Scores"},
	{portfolio.GroupValue, "Portfolio"},
	{portfolio.GroupSectors, "Sector Allocation"},
}

// DisplayPlayConfig prints the run parameters before the animation starts.
func DisplayPlayConfig(out io.Writer, board portfolio.Board, coord *orchestration.Coordinator, frame time.Duration) {
	fmt.Fprintf(out, "--- %s ---\n", board.Title)
	fmt.Fprintf(out, "Animating %s%d%s values after a %s%s%s delay %s.\n",
		ui.ColorCyan(), coord.Len(), ui.ColorReset(),
		ui.ColorYellow(), format.FormatExecutionDuration(coord.StartDelay()), ui.ColorReset(),
		ui.Paint(ui.ColorDim(), fmt.Sprintf("(frame %s, ETA %s)",
			format.FormatExecutionDuration(frame), format.FormatETA(coord.Remaining(time.Time{})))))
}

// DisplayBoard prints every metric of board with its value in snap, grouped
// the way the dashboard lays them out. Metrics absent from snap show their
// start value.
func DisplayBoard(out io.Writer, board portfolio.Board, snap orchestration.Snapshot, elapsed time.Duration) {
	labelWidth := len("Metric")
	for _, m := range board.Metrics {
		if len(m.Label) > labelWidth {
			labelWidth = len(m.Label)
		}
	}

	fmt.Fprintf(out, "\n%sMetric%s%s   %sValue%s\n",
		ui.ColorUnderline(), ui.ColorReset(), padRight("", labelWidth-len("Metric")),
		ui.ColorUnderline(), ui.ColorReset())

	for _, g := range groupTitles {
		metrics := board.Group(g.group)
		if len(metrics) == 0 {
			continue
		}
		fmt.Fprintf(out, "%s%s%s\n", ui.ColorBold(), g.title, ui.ColorReset())
		for _, m := range metrics {
			v, ok := snap.Value(m.ID)
			if !ok {
				v = m.Start
			}
			line := fmt.Sprintf("  %s%s%s%s %s%s%s",
				ui.ColorBlue(), m.Label, ui.ColorReset(), padRight("", labelWidth-len(m.Label)),
				ui.ColorCyan(), board.DisplayExact(m, v), ui.ColorReset())
			if m.Kind == portfolio.KindCurrency {
				line += "  " + formatChange(board)
			}
			fmt.Fprintln(out, line)
		}
	}

	fmt.Fprintf(out, "\n%s%s%s in %s%s%s\n",
		ui.ColorGreen(), snap.Phase, ui.ColorReset(),
		ui.ColorYellow(), format.FormatExecutionDuration(elapsed), ui.ColorReset())
}

func formatChange(board portfolio.Board) string {
	change := format.FormatChange(board.ValueChange)
	if board.Profit() {
		return ui.Paint(ui.ColorGreen(), "▲ "+change)
	}
	return ui.Paint(ui.ColorRed(), "▼ "+change)
}

// padRight returns s followed by length spaces.
func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + fmt.Sprintf("%*s", length, "")
}
