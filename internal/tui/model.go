package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/ecodash/internal/config"
	apperrors "github.com/agbru/ecodash/internal/errors"
	"github.com/agbru/ecodash/internal/logging"
	"github.com/agbru/ecodash/internal/metrics"
	"github.com/agbru/ecodash/internal/orchestration"
	"github.com/agbru/ecodash/internal/portfolio"
)

// Layout constants for the TUI dashboard.
const (
	headerHeight             = 1
	footerHeight             = 1
	tilesHeight              = 4
	minBodyHeight            = 8
	SectorsPanelWidthPercent = 50
)

// ExecutionState holds the run-related fields of a TUI session.
type ExecutionState struct {
	ctx        context.Context
	cancel     context.CancelFunc
	generation uint64
	done       bool
	exitCode   int
}

// LayoutManager holds terminal dimensions and provides layout calculations.
type LayoutManager struct {
	width  int
	height int
}

// bodyHeight returns the height left for the sectors and history panels.
func (l LayoutManager) bodyHeight() int {
	h := l.height - headerHeight - footerHeight - tilesHeight
	if h < minBodyHeight {
		h = minBodyHeight
	}
	return h
}

func (l LayoutManager) sectorsWidth() int {
	return l.width * SectorsPanelWidthPercent / 100
}

func (l LayoutManager) historyWidth() int {
	return l.width - l.sectorsWidth()
}

// Model is the root bubbletea model for the TUI dashboard.
//
// Each mount (the initial one and every replay) builds a fresh coordinator
// that is driven by orchestration.Run on a command goroutine. The model never
// touches the coordinator itself; it only consumes the snapshots forwarded
// through the program reference, dropping those from older generations.
type Model struct {
	header  HeaderModel
	tiles   TilesModel
	sectors SectorsModel
	history HistoryModel
	footer  FooterModel

	keymap KeyMap

	ExecutionState
	LayoutManager

	parentCtx context.Context
	board     portfolio.Board
	config    config.AppConfig
	logger    logging.Logger
	recorder  *metrics.Recorder
	ref       *programRef
	coord     *orchestration.Coordinator
	paused    bool
	latest    SnapshotMsg
	runErr    error
}

// NewModel creates a new TUI model. The board is validated by building the
// first coordinator, so a malformed board is reported before the program
// starts.
func NewModel(parentCtx context.Context, board portfolio.Board, cfg config.AppConfig, logger logging.Logger, recorder *metrics.Recorder, version string) (Model, error) {
	if logger == nil {
		logger = logging.Nop()
	}
	km := DefaultKeyMap()
	m := Model{
		header:    NewHeaderModel(board.Title, version),
		tiles:     NewTilesModel(board),
		sectors:   NewSectorsModel(board),
		history:   NewHistoryModel(),
		footer:    NewFooterModel(km),
		keymap:    km,
		parentCtx: parentCtx,
		board:     board,
		config:    cfg,
		logger:    logger,
		recorder:  recorder,
		ref:       &programRef{},
		ExecutionState: ExecutionState{
			exitCode: apperrors.ExitSuccess,
		},
	}
	if err := m.mount(); err != nil {
		return Model{}, err
	}
	return m, nil
}

// mount prepares a new coordinator and run context for the current
// generation.
func (m *Model) mount() error {
	coord, err := orchestration.NewCoordinator(m.board.Targets(),
		orchestration.WithStartDelay(m.config.StartDelay),
		orchestration.WithLogger(m.logger),
		orchestration.WithRecorder(m.recorder),
	)
	if err != nil {
		return err
	}
	m.ctx, m.cancel = context.WithCancel(m.parentCtx)
	m.coord = coord
	return nil
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		startRunCmd(m.ref, m.ctx, m.coord, m.config.FrameInterval, m.generation),
		watchContextCmd(m.parentCtx),
	)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layoutPanels()
		return m, nil

	case SnapshotMsg:
		if msg.Generation != m.generation {
			return m, nil // stale snapshot from a replaced mount
		}
		m.latest = msg
		if !m.paused {
			m.show(msg)
		}
		return m, nil

	case RunCompleteMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.done = true
		m.header.SetDone()
		m.history.SetDone(time.Since(m.header.startTime))
		m.footer.SetDone(true)
		if msg.Err != nil && !errors.Is(msg.Err, context.Canceled) {
			m.runErr = msg.Err
			m.exitCode = apperrors.ExitCodeFor(msg.Err)
			m.footer.SetError(msg.Err)
			m.logger.Error("dashboard run failed", msg.Err)
		}
		return m, nil

	case ContextCancelledMsg:
		m.done = true
		m.exitCode = apperrors.ExitErrorCanceled
		return m, tea.Quit
	}

	return m, nil
}

// show pushes a snapshot into every panel.
func (m *Model) show(msg SnapshotMsg) {
	m.header.SetPhase(msg.Snapshot.Phase)
	m.tiles.SetSnapshot(msg.Snapshot)
	m.sectors.SetSnapshot(msg.Snapshot)
	m.history.Add(msg.Progress)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Pause):
		m.paused = !m.paused
		m.footer.SetPaused(m.paused)
		if !m.paused && m.latest.Generation == m.generation {
			m.show(m.latest)
		}
		return m, nil

	case key.Matches(msg, m.keymap.Replay):
		if m.cancel != nil {
			m.cancel()
		}
		m.generation++
		if err := m.mount(); err != nil {
			// The board was accepted once, so this only happens if the
			// configuration changed underneath us.
			m.runErr = err
			m.footer.SetError(err)
			return m, nil
		}

		m.header.Reset()
		m.history.Reset()
		m.tiles.SetSnapshot(orchestration.Snapshot{})
		m.sectors.SetSnapshot(orchestration.Snapshot{})
		m.footer.SetDone(false)
		m.footer.SetError(nil)
		m.footer.SetPaused(false)
		m.latest = SnapshotMsg{}
		m.done = false
		m.paused = false
		m.runErr = nil
		m.exitCode = apperrors.ExitSuccess

		return m, startRunCmd(m.ref, m.ctx, m.coord, m.config.FrameInterval, m.generation)
	}

	return m, nil
}

// View renders the entire dashboard.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.sectors.View(), m.history.View())
	return lipgloss.JoinVertical(lipgloss.Left,
		m.header.View(),
		m.tiles.View(),
		body,
		m.footer.View(),
	)
}

func (m *Model) layoutPanels() {
	m.header.SetWidth(m.width)
	m.footer.SetWidth(m.width)
	m.tiles.SetWidth(m.width)
	m.sectors.SetSize(m.sectorsWidth(), m.bodyHeight())
	m.history.SetSize(m.historyWidth(), m.bodyHeight())
}

// Run is the public entry point for the TUI mode.
// It creates the bubbletea program, runs it, and returns the exit code.
func Run(ctx context.Context, board portfolio.Board, cfg config.AppConfig, logger logging.Logger, recorder *metrics.Recorder, version string) int {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	model, err := NewModel(ctx, board, cfg, logger, recorder, version)
	if err != nil {
		return apperrors.ExitCodeFor(err)
	}
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	// Inject the program reference before running so the run goroutine can Send.
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) || ctx.Err() != nil {
			return apperrors.ExitErrorCanceled
		}
		return apperrors.ExitErrorGeneric
	}

	if m, ok := finalModel.(Model); ok {
		m.cancel()
		return m.exitCode
	}
	return apperrors.ExitSuccess
}

// watchContextCmd waits for the parent context to end (signal or timeout)
// and asks the program to quit.
func watchContextCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err()}
	}
}
