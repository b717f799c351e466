package tui

import "strings"

// FooterModel renders key hints and the run status.
type FooterModel struct {
	keymap KeyMap
	paused bool
	done   bool
	err    error
	width  int
}

// NewFooterModel creates a footer for the given bindings.
func NewFooterModel(km KeyMap) FooterModel {
	return FooterModel{keymap: km}
}

// SetPaused toggles the frozen indicator.
func (f *FooterModel) SetPaused(p bool) { f.paused = p }

// SetDone marks the run as finished.
func (f *FooterModel) SetDone(d bool) { f.done = d }

// SetError records a run failure; nil clears it.
func (f *FooterModel) SetError(err error) { f.err = err }

// SetWidth updates the available width.
func (f *FooterModel) SetWidth(w int) { f.width = w }

// View renders the footer.
func (f FooterModel) View() string {
	var hints []string
	for _, b := range []struct{ key, desc string }{
		{f.keymap.Quit.Help().Key, f.keymap.Quit.Help().Desc},
		{f.keymap.Pause.Help().Key, f.keymap.Pause.Help().Desc},
		{f.keymap.Replay.Help().Key, f.keymap.Replay.Help().Desc},
	} {
		hints = append(hints, footerKeyStyle.Render(b.key)+" "+footerDescStyle.Render(b.desc))
	}

	var status string
	switch {
	case f.err != nil:
		status = statusErrorStyle.Render("ERROR: " + f.err.Error())
	case f.paused:
		status = statusPausedStyle.Render("FROZEN")
	case f.done:
		status = statusDoneStyle.Render("SETTLED")
	default:
		status = statusRunningStyle.Render("LIVE")
	}

	return " " + strings.Join(hints, "  ") + "  " + status
}
