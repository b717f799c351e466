package ui

// Color accessors return the escape code of the active theme, or the empty
// string when colors are disabled.

// ColorReset clears all formatting.
func ColorReset() string { return GetCurrentTheme().Reset }

// ColorBold starts bold text.
func ColorBold() string { return GetCurrentTheme().Bold }

// ColorUnderline starts underlined text.
func ColorUnderline() string { return GetCurrentTheme().Underline }

// ColorGreen is the success color.
func ColorGreen() string { return GetCurrentTheme().Success }

// ColorRed is the error color.
func ColorRed() string { return GetCurrentTheme().Error }

// ColorYellow is the warning color.
func ColorYellow() string { return GetCurrentTheme().Warning }

// ColorCyan is the primary accent.
func ColorCyan() string { return GetCurrentTheme().Primary }

// ColorBlue is the info color.
func ColorBlue() string { return GetCurrentTheme().Info }

// ColorDim is the secondary color.
func ColorDim() string { return GetCurrentTheme().Secondary }

// Paint wraps s in color and a reset. With colors disabled it returns s.
func Paint(color, s string) string {
	if color == "" {
		return s
	}
	return color + s + ColorReset()
}
