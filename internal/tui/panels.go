package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/ecodash/internal/format"
	"github.com/agbru/ecodash/internal/orchestration"
	"github.com/agbru/ecodash/internal/portfolio"
)

const (
	historyCapacity = 240
	minPanelWidth   = 20
	sectorBarWidth  = 24
	curveRows       = 3
)

// TilesModel renders the headline tiles: every score plus the portfolio value.
type TilesModel struct {
	board portfolio.Board
	snap  orchestration.Snapshot
	width int
}

// NewTilesModel creates the tiles row for board.
func NewTilesModel(board portfolio.Board) TilesModel {
	return TilesModel{board: board}
}

// SetSnapshot updates the displayed values.
func (t *TilesModel) SetSnapshot(s orchestration.Snapshot) { t.snap = s }

// SetWidth updates the available width.
func (t *TilesModel) SetWidth(w int) { t.width = w }

func (t TilesModel) value(m portfolio.Metric) float64 {
	if v, ok := t.snap.Values[m.ID]; ok {
		return v
	}
	return m.Start
}

// View renders one bordered tile per score and value metric.
func (t TilesModel) View() string {
	metrics := append(t.board.Group(portfolio.GroupScores), t.board.Group(portfolio.GroupValue)...)
	if len(metrics) == 0 {
		return ""
	}

	tileWidth := t.width/len(metrics) - 2
	if tileWidth < minPanelWidth-4 {
		tileWidth = minPanelWidth - 4
	}

	tiles := make([]string, 0, len(metrics))
	for _, m := range metrics {
		body := tileLabelStyle.Render(m.Label) + "\n" + tileValueStyle.Render(t.board.Display(m, t.value(m)))
		if m.Kind == portfolio.KindCurrency {
			change := format.FormatChange(t.board.ValueChange)
			if t.board.Profit() {
				body += "  " + gainStyle.Render("▲ "+change)
			} else {
				body += "  " + lossStyle.Render("▼ "+change)
			}
		}
		tiles = append(tiles, panelStyle.Width(tileWidth).Render(body))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tiles...)
}

// SectorsModel renders the allocation bars.
type SectorsModel struct {
	board  portfolio.Board
	snap   orchestration.Snapshot
	width  int
	height int
}

// NewSectorsModel creates the allocation panel for board.
func NewSectorsModel(board portfolio.Board) SectorsModel {
	return SectorsModel{board: board}
}

// SetSnapshot updates the displayed values.
func (s *SectorsModel) SetSnapshot(snap orchestration.Snapshot) { s.snap = snap }

// SetSize updates the panel dimensions.
func (s *SectorsModel) SetSize(w, h int) {
	s.width = w
	s.height = h
}

// View renders one labelled bar per sector.
func (s SectorsModel) View() string {
	sectors := s.board.Group(portfolio.GroupSectors)

	labelWidth := 0
	for _, m := range sectors {
		if w := lipgloss.Width(m.Label); w > labelWidth {
			labelWidth = w
		}
	}
	barWidth := s.width - labelWidth - 14
	if barWidth > sectorBarWidth {
		barWidth = sectorBarWidth
	}
	if barWidth < 5 {
		barWidth = 5
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Sector Allocation"))
	for i, m := range sectors {
		v, ok := s.snap.Values[m.ID]
		if !ok {
			v = m.Start
		}
		bar := format.ProgressBar(v/100, barWidth)
		filled := strings.Count(bar, "█")
		colored := lipgloss.NewStyle().Foreground(sectorColor(i)).Render(strings.Repeat("█", filled)) +
			barEmptyStyle.Render(strings.Repeat("░", barWidth-filled))
		fmt.Fprintf(&b, "\n%-*s %s %s", labelWidth, m.Label, colored, s.board.Display(m, v))
	}

	return panelStyle.Width(s.width - 2).Height(s.height - 2).Render(b.String())
}

// HistoryModel plots the aggregated progress over time.
type HistoryModel struct {
	history  *RingBuffer
	progress orchestration.AggregatedProgress
	elapsed  time.Duration
	done     bool
	width    int
	height   int
}

// NewHistoryModel creates an empty progress history.
func NewHistoryModel() HistoryModel {
	return HistoryModel{history: NewRingBuffer(historyCapacity)}
}

// Add records one aggregated progress update.
func (h *HistoryModel) Add(p orchestration.AggregatedProgress) {
	h.progress = p
	h.history.Push(p.Average)
}

// SetDone freezes the panel with the total run time.
func (h *HistoryModel) SetDone(elapsed time.Duration) {
	h.done = true
	h.elapsed = elapsed
}

// Reset clears the history for a replay.
func (h *HistoryModel) Reset() {
	h.history.Reset()
	h.progress = orchestration.AggregatedProgress{}
	h.done = false
	h.elapsed = 0
}

// SetSize updates the panel dimensions.
// The history keeps at least two samples per curve cell so a wide terminal
// still plots the whole run.
func (h *HistoryModel) SetSize(w, ht int) {
	h.width = w
	h.height = ht
	h.history.Resize(max(historyCapacity, 2*(w-4)))
}

// View renders the progress curve, a sparkline and the progress bar.
func (h HistoryModel) View() string {
	inner := h.width - 4
	if inner < minPanelWidth-4 {
		inner = minPanelWidth - 4
	}
	ratios := h.history.Slice()

	var b strings.Builder
	b.WriteString(titleStyle.Render("Progress"))
	fmt.Fprintf(&b, "  %s", dimStyle.Render(fmt.Sprintf("%d/%d settled", h.progress.Settled, h.progress.Total)))
	b.WriteString("\n")
	b.WriteString(curveStyle.Render(strings.Join(RenderBrailleCurve(ratios, inner, curveRows), "\n")))
	b.WriteString("\n")
	b.WriteString(curveStyle.Render(lastN(RenderSparkline(ratios), inner)))
	b.WriteString("\n")
	if h.done {
		b.WriteString(format.ProgressBar(1, inner-20))
		b.WriteString(statusDoneStyle.Render(" done in " + format.FormatExecutionDuration(h.elapsed)))
	} else {
		b.WriteString(format.FormatProgressBarWithETA(h.progress.Average, h.progress.ETA, inner-24))
	}

	return panelStyle.Width(h.width - 2).Height(h.height - 2).Render(b.String())
}

// lastN keeps the trailing n runes of s.
func lastN(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	return string(r[len(r)-n:])
}
