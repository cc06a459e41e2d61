// Package drillui provides the Bubble Tea word-drill interface.
package drillui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/taja/internal/board"
	"github.com/verte-zerg/taja/internal/drill"
	"github.com/verte-zerg/taja/internal/engine"
)

const tickInterval = 100 * time.Millisecond

// tickMsg polls the drill clock while words are live. countdownMsg
// steps the pre-drill countdown once per second. Both carry the
// generation that scheduled them; stale ones are dropped.
type (
	tickMsg      struct{ gen int }
	countdownMsg struct{ gen int }
)

var (
	correctStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	wordStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	noticeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	titleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	countdownStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	modalStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A")).
			Padding(1, 2)
)

// Model implements the Bubble Tea word-drill UI.
type Model struct {
	game   *drill.Game
	boards *board.DrillStore
	clock  engine.Clock

	width  int
	height int

	tickGen   int
	remaining int
	notice    string
}

// NewModel constructs a drill UI model.
func NewModel(game *drill.Game, boards *board.DrillStore, clock engine.Clock) *Model {
	if clock == nil {
		clock = engine.SystemClock{}
	}
	return &Model{
		game:      game,
		boards:    boards,
		clock:     clock,
		remaining: game.Remaining(clock.Now()),
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case countdownMsg:
		return m.handleCountdown(msg)
	case tickMsg:
		return m.handleTick(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.game.State() == drill.StateResult {
		return m.renderResult()
	}
	var content string
	switch m.game.State() {
	case drill.StateIdle:
		content = m.renderIdle()
	case drill.StateCountdown:
		content = countdownStyle.Render(strconv.Itoa(m.game.Countdown()))
	case drill.StateActive:
		content = m.renderActive()
	}
	footer := m.renderFooter()
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) handleCountdown(msg countdownMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.tickGen || m.game.State() != drill.StateCountdown {
		return m, nil
	}
	m.game.TickCountdown()
	if m.game.State() == drill.StateCountdown {
		return m, m.scheduleCountdown()
	}
	return m, m.scheduleTick()
}

func (m *Model) handleTick(msg tickMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.tickGen || m.game.State() != drill.StateActive {
		return m, nil
	}
	now := m.clock.Now()
	if m.game.Expire(now) {
		m.remaining = 0
		m.recordResult()
		return m, nil
	}
	m.remaining = m.game.Remaining(now)
	return m, m.scheduleTick()
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyEnter:
		return m.handleEnter()
	}
	switch m.game.State() {
	case drill.StateIdle, drill.StateResult:
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "r":
			return m.begin()
		}
		return m, nil
	case drill.StateActive:
		switch msg.Type {
		case tea.KeyBackspace, tea.KeyDelete:
			input := []rune(m.game.Input())
			if len(input) > 0 {
				m.game.SetInput(string(input[:len(input)-1]))
			}
			return m, nil
		case tea.KeySpace:
			m.game.Submit()
			return m, nil
		case tea.KeyRunes:
			input := []rune(m.game.Input())
			m.game.SetInput(string(append(input, msg.Runes...)))
			return m, nil
		}
	}
	return m, nil
}

func (m *Model) handleEnter() (tea.Model, tea.Cmd) {
	switch m.game.State() {
	case drill.StateIdle, drill.StateResult:
		return m.begin()
	case drill.StateActive:
		m.game.Submit()
	}
	return m, nil
}

func (m *Model) begin() (tea.Model, tea.Cmd) {
	if err := m.game.Begin(); err != nil {
		m.notice = err.Error()
		return m, nil
	}
	m.notice = ""
	m.remaining = m.game.Remaining(m.clock.Now())
	m.tickGen++
	return m, m.scheduleCountdown()
}

// recordResult saves the finished drill exactly once; replays of the
// result screen never write a second entry.
func (m *Model) recordResult() {
	if !m.game.MarkRecorded() {
		return
	}
	if err := m.boards.Record(context.Background(), m.game.Entry()); err != nil {
		m.notice = fmt.Sprintf("failed to save result: %v", err)
	}
}

func (m *Model) scheduleCountdown() tea.Cmd {
	gen := m.tickGen
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return countdownMsg{gen: gen}
	})
}

func (m *Model) scheduleTick() tea.Cmd {
	gen := m.tickGen
	return tea.Tick(tickInterval, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

func (m *Model) renderIdle() string {
	lines := []string{
		titleStyle.Render("Word drill"),
		"",
		pendingStyle.Render(fmt.Sprintf("Type as many %s words as you can in 30 seconds.", m.game.Language())),
		pendingStyle.Render("The clock starts at your first keystroke."),
	}
	if m.notice != "" {
		lines = append(lines, "", noticeStyle.Render(m.notice))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderActive() string {
	word := []rune(m.game.Word())
	input := []rune(m.game.Input())
	return wordStyle.Render(string(word)) + "\n\n" + m.renderInput(word, input)
}

func (m *Model) renderInput(word, input []rune) string {
	if len(input) == 0 {
		return pendingStyle.Render("_")
	}
	var b strings.Builder
	for i, r := range input {
		if i < len(word) && word[i] == r {
			b.WriteString(correctStyle.Render(string(r)))
		} else {
			b.WriteString(incorrectStyle.Render(string(r)))
		}
	}
	return b.String()
}

func (m *Model) renderResult() string {
	res := m.game.Result()
	lines := []string{
		titleStyle.Render("Time's up"),
		"",
		fmt.Sprintf("Speed        %6.1f WPM", res.WPM),
		fmt.Sprintf("Words        %6d", m.game.WordCount()),
		fmt.Sprintf("Characters   %6d", res.CorrectChars),
		fmt.Sprintf("Accuracy     %6.1f%%", res.Accuracy),
	}
	if m.notice != "" {
		lines = append(lines, "", noticeStyle.Render(m.notice))
	}
	lines = append(lines, "", footerStyle.Render("enter: play again  q: quit"))
	box := modalStyle.Render(strings.Join(lines, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m *Model) renderFooter() string {
	switch m.game.State() {
	case drill.StateActive:
		segments := []string{
			fmt.Sprintf("%ds left", m.remaining),
			fmt.Sprintf("Words %d", m.game.WordCount()),
			string(m.game.Language()),
			"space/enter: submit",
		}
		return footerStyle.Render(strings.Join(segments, "  "))
	case drill.StateCountdown:
		return footerStyle.Render("Get ready")
	default:
		return footerStyle.Render("enter: start  q: quit")
	}
}
