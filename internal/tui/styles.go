package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/ecodash/internal/ui"
)

// Style variables for the terminal dashboard.
// Initialized from the ui theme system via initTUIStyles().
var (
	panelStyle         lipgloss.Style
	headerStyle        lipgloss.Style
	titleStyle         lipgloss.Style
	dimStyle           lipgloss.Style
	elapsedStyle       lipgloss.Style
	tileLabelStyle     lipgloss.Style
	tileValueStyle     lipgloss.Style
	gainStyle          lipgloss.Style
	lossStyle          lipgloss.Style
	barEmptyStyle      lipgloss.Style
	curveStyle         lipgloss.Style
	footerKeyStyle     lipgloss.Style
	footerDescStyle    lipgloss.Style
	statusPendingStyle lipgloss.Style
	statusRunningStyle lipgloss.Style
	statusPausedStyle  lipgloss.Style
	statusDoneStyle    lipgloss.Style
	statusErrorStyle   lipgloss.Style

	sectorColor func(i int) lipgloss.TerminalColor
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds all TUI styles from the current ui theme.
// Called at package init and again from Run() after InitTheme has been invoked.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Foreground(t.Text).
		Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent).
		Padding(0, 1)

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
	dimStyle = lipgloss.NewStyle().Foreground(t.Dim)
	elapsedStyle = lipgloss.NewStyle().Foreground(t.Info)

	tileLabelStyle = lipgloss.NewStyle().Foreground(t.Dim)
	tileValueStyle = lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	gainStyle = lipgloss.NewStyle().Foreground(t.Success).Bold(true)
	lossStyle = lipgloss.NewStyle().Foreground(t.Error).Bold(true)

	barEmptyStyle = lipgloss.NewStyle().Foreground(t.Dim)
	curveStyle = lipgloss.NewStyle().Foreground(t.Accent)

	footerKeyStyle = lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	footerDescStyle = lipgloss.NewStyle().Foreground(t.Dim)

	statusPendingStyle = lipgloss.NewStyle().Foreground(t.Info).Bold(true)
	statusRunningStyle = lipgloss.NewStyle().Foreground(t.Success).Bold(true)
	statusPausedStyle = lipgloss.NewStyle().Foreground(t.Warning).Bold(true)
	statusDoneStyle = lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	statusErrorStyle = lipgloss.NewStyle().Foreground(t.Error).Bold(true)

	sectorColor = t.SectorColor
}
