package ui

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines a color scheme for CLI output.
// Each field contains an ANSI escape code for the corresponding color category.
type Theme struct {
	// Name is the identifier of the theme.
	Name string
	// Primary is the main accent color for headings and values.
	Primary string
	// Secondary is used for labels and less prominent elements.
	Secondary string
	// Success marks gains and settled values.
	Success string
	// Warning is used for caution messages.
	Warning string
	// Error marks losses and failures.
	Error string
	// Info is used for informational messages.
	Info string
	// Bold is the escape code for bold text.
	Bold string
	// Underline is the escape code for underlined text.
	Underline string
	// Reset clears all formatting.
	Reset string
}

var (
	// GreenTheme is the default dark-background palette, built around the
	// dashboard's leaf and moss greens.
	GreenTheme = Theme{
		Name:      "green",
		Primary:   "\033[38;5;149m", // Moss green
		Secondary: "\033[38;5;245m", // Grey
		Success:   "\033[38;5;70m",  // Leaf green
		Warning:   "\033[38;5;229m", // Pale yellow
		Error:     "\033[38;5;160m", // Danger red
		Info:      "\033[38;5;153m", // Soft blue
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// LightTheme is optimized for light terminal backgrounds.
	LightTheme = Theme{
		Name:      "light",
		Primary:   "\033[38;5;64m",  // Dark green
		Secondary: "\033[38;5;240m", // Dark grey
		Success:   "\033[38;5;28m",  // Forest green
		Warning:   "\033[38;5;130m", // Orange
		Error:     "\033[38;5;124m", // Dark red
		Info:      "\033[38;5;25m",  // Dark blue
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// NoColorTheme disables all color output.
	// Used when NO_COLOR is set or --no-color flag is provided.
	NoColorTheme = Theme{Name: "none"}

	// currentTheme is the active theme used throughout the application.
	currentTheme = GreenTheme
	themeMutex   sync.RWMutex
)

// TUITheme defines lipgloss-compatible colors for the terminal dashboard.
type TUITheme struct {
	Bg      lipgloss.TerminalColor
	Text    lipgloss.TerminalColor
	Border  lipgloss.TerminalColor
	Accent  lipgloss.TerminalColor
	Success lipgloss.TerminalColor
	Warning lipgloss.TerminalColor
	Error   lipgloss.TerminalColor
	Dim     lipgloss.TerminalColor
	Info    lipgloss.TerminalColor
	// Sectors colors the allocation bars, cycling when there are more
	// sectors than entries.
	Sectors []lipgloss.TerminalColor
}

var (
	// GreenTUITheme mirrors the web dashboard palette.
	GreenTUITheme = TUITheme{
		Bg:      lipgloss.Color("#000000"),
		Text:    lipgloss.Color("#F9F7DC"),
		Border:  lipgloss.Color("#618943"),
		Accent:  lipgloss.Color("#9EBC63"),
		Success: lipgloss.Color("#2E7D32"),
		Warning: lipgloss.Color("#F2EFBB"),
		Error:   lipgloss.Color("#D32F2F"),
		Dim:     lipgloss.Color("#666666"),
		Info:    lipgloss.Color("#D1E3F5"),
		Sectors: []lipgloss.TerminalColor{
			lipgloss.Color("#2E7D32"),
			lipgloss.Color("#82AA57"),
			lipgloss.Color("#C5D86D"),
			lipgloss.Color("#9EBC63"),
			lipgloss.Color("#618943"),
		},
	}

	// LightTUITheme keeps the green accents readable on light backgrounds.
	LightTUITheme = TUITheme{
		Bg:      lipgloss.Color("#FFFFFF"),
		Text:    lipgloss.Color("#1B1B1B"),
		Border:  lipgloss.Color("#4E7A2E"),
		Accent:  lipgloss.Color("#3F6B1F"),
		Success: lipgloss.Color("#1B5E20"),
		Warning: lipgloss.Color("#8D6E00"),
		Error:   lipgloss.Color("#B71C1C"),
		Dim:     lipgloss.Color("#757575"),
		Info:    lipgloss.Color("#0D47A1"),
		Sectors: []lipgloss.TerminalColor{
			lipgloss.Color("#1B5E20"),
			lipgloss.Color("#4E7A2E"),
			lipgloss.Color("#7C8F1E"),
			lipgloss.Color("#3F6B1F"),
			lipgloss.Color("#2E4D16"),
		},
	}

	// NoColorTUITheme disables all TUI colors.
	// lipgloss.NoColor{} renders text with the terminal's default colors.
	NoColorTUITheme = TUITheme{
		Bg:      lipgloss.NoColor{},
		Text:    lipgloss.NoColor{},
		Border:  lipgloss.NoColor{},
		Accent:  lipgloss.NoColor{},
		Success: lipgloss.NoColor{},
		Warning: lipgloss.NoColor{},
		Error:   lipgloss.NoColor{},
		Dim:     lipgloss.NoColor{},
		Info:    lipgloss.NoColor{},
		Sectors: []lipgloss.TerminalColor{lipgloss.NoColor{}},
	}
)

// SectorColor returns the bar color for the i-th sector.
func (t TUITheme) SectorColor(i int) lipgloss.TerminalColor {
	if len(t.Sectors) == 0 {
		return t.Accent
	}
	return t.Sectors[i%len(t.Sectors)]
}

// GetCurrentTUITheme returns the TUI palette matching the current theme.
func GetCurrentTUITheme() TUITheme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()

	switch currentTheme.Name {
	case NoColorTheme.Name:
		return NoColorTUITheme
	case LightTheme.Name:
		return LightTUITheme
	default:
		return GreenTUITheme
	}
}

// GetCurrentTheme returns the currently active theme in a thread-safe manner.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetTheme changes the active theme by name.
// Valid names are: "green", "light", "none". Unknown names select green.
func SetTheme(name string) {
	themeMutex.Lock()
	defer themeMutex.Unlock()

	switch name {
	case "light":
		currentTheme = LightTheme
	case "none":
		currentTheme = NoColorTheme
	default:
		currentTheme = GreenTheme
	}
}

// InitTheme initializes the theme based on the noColor flag and environment.
// It respects the NO_COLOR environment variable (https://no-color.org/) for
// accessibility. If noColor is true or NO_COLOR is set, colors are disabled.
func InitTheme(noColor bool) {
	themeMutex.Lock()
	defer themeMutex.Unlock()

	if noColor {
		currentTheme = NoColorTheme
		return
	}

	// Any non-empty value disables colors (see no-color.org)
	if v, exists := os.LookupEnv("NO_COLOR"); exists && v != "" {
		currentTheme = NoColorTheme
		return
	}

	currentTheme = GreenTheme
}
