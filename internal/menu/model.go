// Package menu provides the Bubble Tea cartridge selector.
package menu

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/verte-zerg/tuiboy/internal/model"
	"github.com/verte-zerg/tuiboy/internal/stats"
	"github.com/verte-zerg/tuiboy/internal/tui"
)

const recentResults = 5

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
)

type cartridge struct {
	name     string
	playable bool
}

var cartridges = []cartridge{
	{name: "Snake"},
	{name: "Pong"},
	{name: "MineSweeper", playable: true},
}

// backMsg is sent by a running game when the player leaves it.
type backMsg struct{}

func goBack() tea.Msg {
	return backMsg{}
}

type keyMap struct {
	Prev   key.Binding
	Next   key.Binding
	Slot   key.Binding
	Launch key.Binding
	Quit   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Prev: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next"),
		),
		Slot: key.NewBinding(
			key.WithKeys("1", "2", "3"),
			key.WithHelp("1-3", "pick"),
		),
		Launch: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "play"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Slot, k.Launch, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// Model implements the Bubble Tea menu. While a game runs, the menu forwards
// every message to it.
type Model struct {
	cfg   model.Config
	log   logrus.FieldLogger
	tally *stats.Tally

	active int
	child  tea.Model
	notice string

	keys keyMap
	help help.Model

	width  int
	height int
}

// NewModel constructs the menu with the MineSweeper cartridge selected.
func NewModel(cfg model.Config, log logrus.FieldLogger, tally *stats.Tally) *Model {
	if tally == nil {
		tally = stats.NewTally()
	}
	return &Model{
		cfg:    cfg,
		log:    log,
		tally:  tally,
		active: len(cartridges) - 1,
		keys:   defaultKeys(),
		help:   help.New(),
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(backMsg); ok {
		m.child = nil
		return m, tea.ClearScreen
	}
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		m.height = size.Height
		m.help.Width = size.Width
	}
	if m.child != nil {
		var cmd tea.Cmd
		m.child, cmd = m.child.Update(msg)
		return m, cmd
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Prev):
		m.move(-1)
	case key.Matches(keyMsg, m.keys.Next):
		m.move(1)
	case key.Matches(keyMsg, m.keys.Slot):
		m.active = int(keyMsg.Runes[0] - '1')
		m.notice = ""
	case key.Matches(keyMsg, m.keys.Launch):
		return m.launch()
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.child != nil {
		return m.child.View()
	}
	parts := []string{
		titleStyle.Render("tuiboy"),
		m.renderCartridges(),
	}
	if m.notice != "" {
		parts = append(parts, noticeStyle.Render(m.notice))
	}
	parts = append(parts,
		"",
		renderSummaryCards(m.tally.Summary()),
		renderHistory(m.tally),
		"",
		headerStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp())),
	)
	content := lipgloss.JoinVertical(lipgloss.Center, parts...)
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) move(delta int) {
	count := len(cartridges)
	m.active = (m.active + delta + count) % count
	m.notice = ""
}

func (m *Model) launch() (tea.Model, tea.Cmd) {
	cart := cartridges[m.active]
	if !cart.playable {
		m.notice = fmt.Sprintf("%s cartridge is not installed", cart.name)
		return m, nil
	}
	game, err := tui.NewModel(m.cfg, m.log, m.tally, goBack)
	if err != nil {
		m.notice = err.Error()
		if m.log != nil {
			m.log.WithError(err).Error("failed to launch cartridge")
		}
		return m, nil
	}
	m.notice = ""
	m.child = game
	if m.width > 0 && m.height > 0 {
		m.child, _ = m.child.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
	}
	return m, tea.Batch(tea.ClearScreen, m.child.Init())
}

func (m *Model) renderCartridges() string {
	parts := make([]string, 0, len(cartridges))
	for i, cart := range cartridges {
		label := fmt.Sprintf("%d %s", i+1, cart.name)
		if !cart.playable {
			label += "\n" + headerStyle.Render("not installed")
		} else {
			label += "\n" + headerStyle.Render("ready")
		}
		if i == m.active {
			parts = append(parts, activeNavStyle.Render(label))
		} else {
			parts = append(parts, inactiveNavStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func renderSummaryCards(s stats.Summary) string {
	best := "--:--"
	if s.HasBest {
		best = stats.FormatClock(s.Best)
	}
	cards := []string{
		metricCard("Played", fmt.Sprintf("%d", s.Played)),
		metricCard("Won", fmt.Sprintf("%d", s.Won)),
		metricCard("Lost", fmt.Sprintf("%d", s.Lost)),
		metricCard("Gave up", fmt.Sprintf("%d", s.Forfeited)),
		metricCard("Win rate", fmt.Sprintf("%.0f%%", s.WinRate()*100)),
		metricCard("Best", best),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func renderHistory(tally *stats.Tally) string {
	var buf bytes.Buffer
	if err := stats.RenderResults(&buf, tally.Recent(recentResults)); err != nil {
		return fmt.Sprintf("Failed to render results: %v", err)
	}
	out := strings.TrimRight(buf.String(), "\n")
	if spark := stats.Sparkline(tally.WinTimes()); spark != "" {
		out = headerStyle.Render("win times "+spark) + "\n" + out
	}
	return out
}
