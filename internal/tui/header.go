package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/ecodash/internal/format"
	"github.com/agbru/ecodash/internal/orchestration"
)

// HeaderModel renders the top bar: title, version, phase and elapsed time.
type HeaderModel struct {
	title     string
	version   string
	phase     orchestration.Phase
	startTime time.Time
	endTime   time.Time
	width     int
}

// NewHeaderModel creates a new header.
func NewHeaderModel(title, version string) HeaderModel {
	return HeaderModel{
		title:     title,
		version:   version,
		startTime: time.Now(),
	}
}

// SetPhase records the coordinator phase shown in the header.
func (h *HeaderModel) SetPhase(p orchestration.Phase) {
	h.phase = p
	if p == orchestration.AllSettled && h.endTime.IsZero() {
		h.endTime = time.Now()
	}
}

// SetDone freezes the elapsed timer at the current time.
func (h *HeaderModel) SetDone() {
	if h.endTime.IsZero() {
		h.endTime = time.Now()
	}
}

// Reset restarts the elapsed timer for a new mount.
func (h *HeaderModel) Reset() {
	h.startTime = time.Now()
	h.endTime = time.Time{}
	h.phase = orchestration.Unmounted
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) {
	h.width = w
}

func (h HeaderModel) elapsed() time.Duration {
	if !h.endTime.IsZero() {
		return h.endTime.Sub(h.startTime)
	}
	return time.Since(h.startTime)
}

// View renders the header.
func (h HeaderModel) View() string {
	titleText := h.title
	if h.version != "" && h.version != "dev" {
		titleText += " " + h.version
	}
	pipe := dimStyle.Render(" | ")
	left := titleStyle.Render(titleText) + pipe +
		phaseStyle(h.phase).Render(h.phase.String()) + pipe +
		elapsedStyle.Render(fmt.Sprintf("Elapsed: %s", format.FormatExecutionDuration(h.elapsed())))

	gap := h.width - 2 - lipgloss.Width(left)
	return headerStyle.Width(h.width).Render(left + spaces(gap))
}

func phaseStyle(p orchestration.Phase) lipgloss.Style {
	switch p {
	case orchestration.Pending:
		return statusPendingStyle
	case orchestration.Animating:
		return statusRunningStyle
	case orchestration.AllSettled:
		return statusDoneStyle
	case orchestration.TornDown:
		return statusErrorStyle
	default:
		return dimStyle
	}
}

// spaces returns a string of n space characters.
func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
