// Package boardui provides the Bubble Tea leaderboard interface.
package boardui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/taja/internal/board"
	"github.com/verte-zerg/taja/internal/model"
)

const (
	tabAll = iota
	tabKorean
	tabEnglish
	tabCustom
	tabDrill
)

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
	headerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

// Model implements the Bubble Tea leaderboard UI.
type Model struct {
	boards *board.Store
	drills *board.DrillStore

	tabs      []string
	activeTab int

	entries      []model.LeaderboardEntry
	drillEntries []model.DrillEntry
	errMsg       string

	table  table.Model
	layout tableLayout

	width  int
	height int
}

type tableLayout struct {
	width    int
	height   int
	rowCount int
	colCount int
}

// NewModel constructs a leaderboard UI model.
func NewModel(boards *board.Store, drills *board.DrillStore) *Model {
	m := &Model{
		boards: boards,
		drills: drills,
		tabs:   []string{"All", "Korean", "English", "Custom", "Drill"},
	}
	m.table = table.New(
		table.WithColumns(sentenceColumns()),
		table.WithHeight(1),
	)
	m.table.SetStyles(boardTableStyles())
	m.table.Focus()
	m.refresh()
	return m
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
		m.applyTable(true)
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return m, tea.Quit
		}
		switch msg.String() {
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "a":
			return m.jumpTab(tabAll)
		case "k":
			return m.jumpTab(tabKorean)
		case "e":
			return m.jumpTab(tabEnglish)
		case "c":
			return m.jumpTab(tabCustom)
		case "d":
			return m.jumpTab(tabDrill)
		case "g", "home":
			m.table.GotoTop()
			return m, nil
		case "G", "end":
			m.table.GotoBottom()
			return m, nil
		default:
			var cmd tea.Cmd
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeTab = next
	m.refresh()
}

func (m *Model) jumpTab(tab int) (tea.Model, tea.Cmd) {
	if tab == m.activeTab {
		return m, nil
	}
	m.activeTab = tab
	m.refresh()
	return m, tea.ClearScreen
}

// ShowBoard jumps to the named board tab: all, korean, english,
// custom, or drill. Unknown names keep the current tab.
func (m *Model) ShowBoard(name string) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "all":
		m.activeTab = tabAll
	case "korean":
		m.activeTab = tabKorean
	case "english":
		m.activeTab = tabEnglish
	case "custom":
		m.activeTab = tabCustom
	case "drill":
		m.activeTab = tabDrill
	default:
		return
	}
	m.refresh()
}

func (m *Model) filter() board.Filter {
	switch m.activeTab {
	case tabKorean:
		return board.FilterKorean
	case tabEnglish:
		return board.FilterEnglish
	case tabCustom:
		return board.FilterCustom
	}
	return board.FilterAll
}

func (m *Model) refresh() {
	ctx := context.Background()
	m.errMsg = ""
	if m.activeTab == tabDrill {
		entries, err := m.drills.Query(ctx, board.FilterAll)
		if err != nil {
			m.errMsg = err.Error()
			m.drillEntries = nil
		} else {
			m.drillEntries = entries
		}
	} else {
		entries, err := m.boards.Query(ctx, m.filter())
		if err != nil {
			m.errMsg = err.Error()
			m.entries = nil
		} else {
			m.entries = entries
		}
	}
	m.applyTable(true)
}

func (m *Model) rowCount() int {
	if m.activeTab == tabDrill {
		return len(m.drillEntries)
	}
	return len(m.entries)
}

func (m *Model) applyTable(force bool) {
	cols, rows := m.tableData()
	_, bodyHeight, _ := m.layoutHeights()
	viewportHeight := maxInt(1, bodyHeight-1)
	if !force &&
		m.layout.width == m.width &&
		m.layout.height == viewportHeight &&
		m.layout.rowCount == len(rows) &&
		m.layout.colCount == len(cols) {
		return
	}
	m.table.SetColumns(cols)
	m.table.SetRows(rows)
	m.layout.rowCount = len(rows)
	m.layout.colCount = len(cols)
	m.setTableSize(m.width, bodyHeight)
}

func (m *Model) tableData() ([]table.Column, []table.Row) {
	if m.activeTab == tabDrill {
		cols := drillColumns()
		rows := make([]table.Row, 0, len(m.drillEntries))
		for i, e := range m.drillEntries {
			rows = append(rows, table.Row(drillRow(i+1, e)))
		}
		return cols, rows
	}
	cols := sentenceColumns()
	rows := make([]table.Row, 0, len(m.entries))
	for i, e := range m.entries {
		rows = append(rows, table.Row(sentenceRow(i+1, e)))
	}
	return cols, rows
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) setTableSize(width, height int) {
	viewportHeight := maxInt(1, height-1)
	if m.layout.width == width && m.layout.height == viewportHeight {
		return
	}
	m.layout.width = width
	m.layout.height = viewportHeight
	m.table.SetWidth(width)
	m.table.SetHeight(viewportHeight)
	viewportHeight = m.adjustTableHeight(height)
	if m.layout.height != viewportHeight {
		m.layout.height = viewportHeight
		m.table.SetHeight(viewportHeight)
	}
}

// adjustTableHeight trims or grows the table until its rendered view
// matches the body height; the bubbles table pads differently when
// rows underflow the viewport.
func (m *Model) adjustTableHeight(bodyHeight int) int {
	target := maxInt(1, bodyHeight)
	height := m.table.Height()
	viewHeight := lipgloss.Height(m.table.View())
	if viewHeight == target {
		return height
	}
	height += target - viewHeight
	if height < 1 {
		height = 1
	}
	m.table.SetHeight(height)
	viewHeight = lipgloss.Height(m.table.View())
	if viewHeight == target {
		return height
	}
	height += target - viewHeight
	if height < 1 {
		height = 1
	}
	return height
}

func boardTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	tabs := padLines(m.renderTabs(), m.width)
	summary := headerStyle.Render(truncateLine(m.renderSummary(), m.width))
	return tabs + "\n" + padLines(summary, m.width)
}

func (m *Model) renderSummary() string {
	count := m.rowCount()
	if count == 0 {
		return "No entries"
	}
	if count == 1 {
		return "1 entry · sorted by WPM"
	}
	return fmt.Sprintf("%d entries · sorted by WPM", count)
}

func (m *Model) renderBody() string {
	if m.rowCount() == 0 {
		return "No entries yet. Finish a round to get on the board."
	}
	return tableMutedStyle.Render(m.table.View())
}

func (m *Model) renderFooter() string {
	help := headerStyle.Render("Boards: a/k/e/c/d or left/right  Scroll: up/down  Quit: q")
	if m.errMsg != "" {
		return help + "\n" + errorStyle.Render(m.errMsg)
	}
	return help
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
