// Package tui provides the Bubble Tea minesweeper interface.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/verte-zerg/tuiboy/internal/generator"
	"github.com/verte-zerg/tuiboy/internal/minefield"
	"github.com/verte-zerg/tuiboy/internal/model"
	"github.com/verte-zerg/tuiboy/internal/schedule"
	"github.com/verte-zerg/tuiboy/internal/stats"
)

const defaultTickInterval = 100 * time.Millisecond

type tickMsg struct {
	id uuid.UUID
}

// Model implements the Bubble Tea minesweeper UI.
type Model struct {
	config model.Config
	log    logrus.FieldLogger
	tally  *stats.Tally
	onExit tea.Cmd

	game    *minefield.Game
	sched   *schedule.Scheduler
	symbols symbolSet
	keys    keyMap
	help    help.Model

	// id tags tick messages so a replaced model's ticks are dropped.
	id       uuid.UUID
	gameID   uuid.UUID
	recorded bool

	cursorRow int
	cursorCol int

	width  int
	height int
}

var (
	coveredStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	flagStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	emptyStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#4A4A4A"))
	mineStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	flagCorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	flagIncorrectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	highlightStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#CF1322"))
	scoreStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	instructionStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FADB14"))
	frameStyle         = lipgloss.NewStyle().
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))

	numberStyles = []lipgloss.Style{
		lipgloss.NewStyle().Foreground(lipgloss.Color("#4096FF")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#9254DE")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#A8071A")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#13C2C2")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C")),
	}
)

// NewModel constructs a minesweeper model and deals the first board.
// onExit runs when the player leaves the game; nil quits the program.
func NewModel(cfg model.Config, log logrus.FieldLogger, tally *stats.Tally, onExit tea.Cmd) (*Model, error) {
	gen := generator.New()
	if cfg.Seed != 0 {
		gen = generator.NewSeeded(cfg.Seed)
	}
	sched := schedule.New()
	game := minefield.New(gen, minefield.WithScheduler(sched))
	if err := game.Reset(cfg.Rows, cfg.Cols, cfg.Mines); err != nil {
		return nil, fmt.Errorf("failed to start minesweeper: %w", err)
	}
	if onExit == nil {
		onExit = tea.Quit
	}
	m := &Model{
		config:  cfg,
		log:     log,
		tally:   tally,
		onExit:  onExit,
		game:    game,
		sched:   sched,
		symbols: symbolsFor(cfg.ASCII),
		keys:    defaultKeys(),
		help:    help.New(),
		id:      uuid.New(),
		gameID:  uuid.New(),
	}
	m.gameLog().Info("game started")
	return m, nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.tick()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tickMsg:
		if msg.id != m.id {
			return m, nil
		}
		interval := m.tickInterval()
		m.game.Tick(interval)
		m.sched.Advance(interval)
		return m, m.tick()
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	snap := m.game.Snapshot()
	cells := buildStyledCells(snap, m.symbols, m.cursorRow, m.cursorCol)
	board := renderBoard(cells)
	score := renderScoreboard(snap, m.symbols, boardWidth(cells))
	left := frameStyle.Render(lipgloss.JoinVertical(lipgloss.Left, board, "", score))
	instructions := instructionStyle.Render(m.help.FullHelpView(m.keys.FullHelp()))
	content := lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", instructions)
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// MinSize returns the smallest terminal that fits a board of cfg.
func MinSize(cfg model.Config) (width, height int) {
	symbols := symbolsFor(cfg.ASCII)
	keys := defaultKeys()
	instructions := help.New().FullHelpView(keys.FullHelp())
	frameW, frameH := frameStyle.GetFrameSize()
	boardW := cfg.Cols * symbols.cellWidth()
	width = boardW + frameW + 2 + lipgloss.Width(instructions)
	// board rows, a spacer, two scoreboard lines
	height = cfg.Rows + 3 + frameH
	if h := lipgloss.Height(instructions); h > height {
		height = h
	}
	return width, height
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Leave):
		m.gameLog().Debug("left game")
		return m, m.onExit
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1, 0)
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(0, -1)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(0, 1)
	case key.Matches(msg, m.keys.Reveal):
		m.apply(minefield.EventReveal)
	case key.Matches(msg, m.keys.Flag):
		m.apply(minefield.EventFlag)
	case key.Matches(msg, m.keys.Forfeit):
		m.apply(minefield.EventForfeit)
	case key.Matches(msg, m.keys.Reset):
		m.restart()
	}
	return m, nil
}

// moveCursor steps the cursor, wrapping around the board edges.
func (m *Model) moveCursor(dr, dc int) {
	rows, cols := m.game.Rows(), m.game.Cols()
	if rows == 0 || cols == 0 {
		return
	}
	m.cursorRow = (m.cursorRow + dr + rows) % rows
	m.cursorCol = (m.cursorCol + dc + cols) % cols
	m.game.Handle(minefield.Event{Kind: minefield.EventNudge})
}

func (m *Model) apply(kind minefield.EventKind) {
	wasPeeked := m.game.Peeked()
	ev := minefield.Event{Kind: kind, Row: m.cursorRow, Col: m.cursorCol}
	if !m.game.Handle(ev) {
		m.gameLog().WithFields(logrus.Fields{"row": ev.Row, "col": ev.Col}).Warn("input rejected")
		return
	}
	switch {
	case m.game.Status() == minefield.StatusWon:
		m.finish(model.ResultWon)
	case m.game.Status() == minefield.StatusLost:
		m.finish(model.ResultLost)
	case !wasPeeked && m.game.Peeked():
		m.finish(model.ResultForfeited)
	}
}

func (m *Model) restart() {
	prev := m.game.Status()
	if !m.game.Handle(minefield.Event{Kind: minefield.EventReset}) {
		m.gameLog().Error("failed to reset game")
		return
	}
	m.gameLog().WithField("previous", prev.String()).Debug("game reset")
	m.gameID = uuid.New()
	m.recorded = false
	m.gameLog().Info("game started")
}

func (m *Model) finish(kind model.ResultKind) {
	if m.recorded {
		return
	}
	m.recorded = true
	result := model.GameResult{
		GameID:  m.gameID.String(),
		Rows:    m.game.Rows(),
		Cols:    m.game.Cols(),
		Mines:   m.game.Mines(),
		Kind:    kind,
		Elapsed: m.game.Elapsed(),
		EndedAt: time.Now(),
	}
	if m.tally != nil {
		m.tally.Record(result)
	}
	m.gameLog().WithFields(logrus.Fields{
		"result":  kind.String(),
		"elapsed": result.Elapsed.String(),
	}).Info("game finished")
}

func (m *Model) gameLog() *logrus.Entry {
	log := m.log
	if log == nil {
		log = logrus.StandardLogger()
	}
	return log.WithFields(logrus.Fields{
		"game":  m.gameID.String(),
		"rows":  m.game.Rows(),
		"cols":  m.game.Cols(),
		"mines": m.game.Mines(),
	})
}

func (m *Model) tickInterval() time.Duration {
	if m.config.TickInterval > 0 {
		return m.config.TickInterval
	}
	return defaultTickInterval
}

func (m *Model) tick() tea.Cmd {
	id := m.id
	return tea.Tick(m.tickInterval(), func(time.Time) tea.Msg {
		return tickMsg{id: id}
	})
}
