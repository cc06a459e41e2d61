// Package tui provides the Bubble Tea practice interface.
package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/taja/internal/corpus"
	"github.com/verte-zerg/taja/internal/engine"
	"github.com/verte-zerg/taja/internal/folder"
	"github.com/verte-zerg/taja/internal/model"
	"github.com/verte-zerg/taja/internal/settings"
	"github.com/verte-zerg/taja/internal/stats"
	"github.com/verte-zerg/taja/internal/storage"
)

const tickInterval = 100 * time.Millisecond

// tickMsg refreshes live metrics while a sentence is on screen. Each
// tick carries the generation that scheduled it; ticks from an older
// generation are dropped instead of re-armed.
type tickMsg struct {
	gen int
}

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	cursorStyle      = pendingStyle.Copy().Underline(true)
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	noticeStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	titleStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	targetStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	modalStyle       = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#C89A3A")).
				Padding(1, 2)
)

// Model implements the Bubble Tea practice UI.
type Model struct {
	eng       *engine.Engine
	kv        storage.KV
	folders   *folder.Manager
	prefs     settings.Settings
	corpusDir string

	width  int
	height int

	tickGen int
	ticking bool

	live   model.GameStats
	notice string
}

// NewModel constructs a practice TUI model around a prepared engine.
func NewModel(eng *engine.Engine, kv storage.KV, folders *folder.Manager, prefs settings.Settings, corpusDir string) *Model {
	return &Model{
		eng:       eng,
		kv:        kv,
		folders:   folders,
		prefs:     prefs,
		corpusDir: corpusDir,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	if err := m.eng.Start(); err != nil {
		m.notice = startNotice(err)
		return nil
	}
	return m.ensureTick()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
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
	if m.eng.Phase() == engine.PhaseSummary {
		return m.renderSummary()
	}
	content := m.renderContent()
	footer := m.renderFooter()
	if footer == "" || m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	bodyHeight := m.height - 1
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) handleTick(msg tickMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.tickGen {
		return m, nil
	}
	if m.eng.Phase() != engine.PhaseActive {
		m.ticking = false
		return m, nil
	}
	m.live = m.eng.Live()
	return m, m.scheduleTick()
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	}
	if m.eng.Phase() == engine.PhaseSummary {
		return m.handleSummaryKey(msg)
	}
	switch msg.Type {
	case tea.KeyTab:
		m.switchLanguage()
		return m, m.ensureTick()
	case tea.KeyCtrlF:
		m.switchCustomMode()
		return m, m.ensureTick()
	case tea.KeyCtrlR:
		m.eng.RestartSentence()
		m.live = m.eng.Live()
		return m, nil
	case tea.KeyEnter:
		return m.handleEnter()
	case tea.KeyBackspace, tea.KeyDelete:
		m.handleBackspace()
		return m, nil
	case tea.KeySpace:
		m.handleRunes([]rune{' '})
		return m, m.ensureTick()
	case tea.KeyRunes:
		m.handleRunes(msg.Runes)
		return m, m.ensureTick()
	default:
		return m, nil
	}
}

func (m *Model) handleSummaryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		if err := m.eng.CloseSummary(); err != nil {
			m.notice = startNotice(err)
			return m, nil
		}
		m.live = m.eng.Live()
		return m, m.ensureTick()
	}
	// Any other key dismisses the target notification but keeps the
	// summary on screen.
	m.eng.AckTarget()
	return m, nil
}

func (m *Model) handleEnter() (tea.Model, tea.Cmd) {
	if m.eng.Phase() != engine.PhaseIdle {
		return m, nil
	}
	if err := m.eng.Start(); err != nil {
		m.notice = startNotice(err)
		return m, nil
	}
	m.notice = ""
	m.live = m.eng.Live()
	return m, m.ensureTick()
}

func (m *Model) handleBackspace() {
	if m.eng.Phase() != engine.PhaseActive {
		return
	}
	input := []rune(m.eng.Input())
	if len(input) == 0 {
		return
	}
	m.eng.SetInput(string(input[:len(input)-1]))
	m.live = m.eng.Live()
}

// handleRunes feeds typed runes to the engine one at a time, so a
// paste behaves like typing. Completed sentences flow straight into
// the next one; the summary stops consumption at a round boundary.
func (m *Model) handleRunes(runes []rune) {
	if m.eng.Phase() != engine.PhaseActive {
		return
	}
	m.notice = ""
	for _, r := range runes {
		if m.eng.Phase() != engine.PhaseActive {
			break
		}
		input := []rune(m.eng.Input())
		target := []rune(m.eng.TargetText())
		if len(input) >= len(target) {
			break
		}
		m.eng.SetInput(string(append(input, r)))
		if m.eng.Phase() == engine.PhaseFinished {
			if err := m.eng.Advance(); err != nil {
				m.notice = startNotice(err)
				break
			}
		}
	}
	m.live = m.eng.Live()
}

func (m *Model) switchLanguage() {
	next := model.LangKorean
	if m.prefs.Language == model.LangKorean {
		next = model.LangEnglish
	}
	m.applyContent(next, m.prefs.UseCustomMode)
}

func (m *Model) switchCustomMode() {
	m.applyContent(m.prefs.Language, !m.prefs.UseCustomMode)
}

// applyContent rebuilds the content source and restarts the session
// with it. The preference change persists once the source is built,
// even when starting stays blocked on empty content.
func (m *Model) applyContent(lang model.Language, custom bool) {
	source, mode, folderName, err := m.buildSource(lang, custom)
	if err != nil {
		m.notice = err.Error()
		return
	}
	m.prefs.Language = lang
	m.prefs.UseCustomMode = custom
	m.persistPrefs()
	if err := m.eng.SwitchContent(source, lang, mode, folderName); err != nil {
		m.notice = startNotice(err)
		m.live = model.GameStats{}
		return
	}
	m.notice = ""
	m.live = m.eng.Live()
}

func (m *Model) buildSource(lang model.Language, custom bool) (engine.ContentSource, model.Mode, string, error) {
	if custom {
		f, ok, err := m.folders.Selected(context.Background())
		if err != nil {
			return nil, "", "", fmt.Errorf("failed to load selected folder: %w", err)
		}
		if !ok {
			return nil, "", "", fmt.Errorf("no folder selected; pick one with 'taja folder select'")
		}
		return engine.NewFolderSource(f.Sentences), model.ModeCustom, f.Name, nil
	}
	sentences, err := corpus.Sentences(lang, m.prefs.PracticeType, m.corpusDir)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to load sentences: %w", err)
	}
	return engine.NewCorpusSource(sentences), model.ModeNormal, "", nil
}

func (m *Model) persistPrefs() {
	if err := settings.Save(context.Background(), m.kv, m.prefs); err != nil {
		logErrf("failed to save settings: %v\n", err)
	}
}

// ensureTick arms the live-stats ticker when a sentence is active and
// no ticker is already running.
func (m *Model) ensureTick() tea.Cmd {
	if m.ticking || m.eng.Phase() != engine.PhaseActive {
		return nil
	}
	m.ticking = true
	m.tickGen++
	return m.scheduleTick()
}

func (m *Model) scheduleTick() tea.Cmd {
	gen := m.tickGen
	return tea.Tick(tickInterval, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

func (m *Model) renderContent() string {
	if m.eng.Phase() == engine.PhaseIdle {
		lines := []string{pendingStyle.Render("Press enter to start typing.")}
		if m.notice != "" {
			lines = append([]string{noticeStyle.Render(m.notice), ""}, lines...)
		}
		return strings.Join(lines, "\n")
	}
	targetRunes := []rune(m.eng.TargetText())
	inputRunes := []rune(m.eng.Input())
	cursorIndex := -1
	if len(inputRunes) < len(targetRunes) {
		cursorIndex = len(inputRunes)
	}
	cells := styleTarget(targetRunes, inputRunes, cursorIndex)
	contentWidth := int(float64(m.width) * 0.70)
	if contentWidth < 1 {
		contentWidth = 1
	}
	wrapped := wrapCells(cells, contentWidth)
	out := lipgloss.NewStyle().Width(contentWidth).Render(wrapped)
	if m.notice != "" {
		out += "\n\n" + noticeStyle.Render(m.notice)
	}
	return out
}

func (m *Model) renderFooter() string {
	if m.eng.Phase() == engine.PhaseIdle {
		return footerStyle.Render("enter: start  tab: language  ctrl+f: custom mode  esc: quit")
	}
	position := m.eng.Completed()%m.eng.BatchSize() + 1
	segments := []string{
		fmt.Sprintf("%.1f WPM · %.1f%%", m.live.WPM, m.live.Accuracy),
		fmt.Sprintf("%ds", m.live.ElapsedSeconds),
		fmt.Sprintf("Sentence %d/%d", position, m.eng.BatchSize()),
		m.contentLabel(),
		fmt.Sprintf("Target %d WPM", m.eng.TargetWPM()),
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

func (m *Model) contentLabel() string {
	if m.eng.Mode() == model.ModeCustom {
		return fmt.Sprintf("custom · %s", m.eng.FolderName())
	}
	return fmt.Sprintf("%s · %s", m.eng.Language(), m.prefs.PracticeType)
}

func (m *Model) renderSummary() string {
	sum := m.eng.Summary()
	lines := []string{
		titleStyle.Render("Round complete"),
		"",
		fmt.Sprintf("Average speed   %6.1f WPM", sum.WPM),
		fmt.Sprintf("Accuracy        %6.1f%%", sum.Accuracy),
		fmt.Sprintf("Errors          %6d", sum.Errors),
		fmt.Sprintf("Typing time     %5ds", sum.ElapsedSeconds),
	}
	if spark := m.roundSparkline(); spark != "" {
		lines = append(lines, "", footerStyle.Render("Speed  ")+spark)
	}
	if m.eng.TargetAchieved() {
		lines = append(lines, "", targetStyle.Render(fmt.Sprintf("Target reached: %.1f WPM", sum.WPM)))
	}
	lines = append(lines, "", footerStyle.Render("enter: next round  esc: quit"))
	box := modalStyle.Render(strings.Join(lines, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// roundSparkline charts per-sentence speeds for the round that just
// ended.
func (m *Model) roundSparkline() string {
	history := m.eng.History()
	batch := m.eng.BatchSize()
	if len(history) == 0 || batch <= 0 {
		return ""
	}
	if len(history) > batch {
		history = history[len(history)-batch:]
	}
	values := make([]float64, len(history))
	for i, h := range history {
		values[i] = h.WPM
	}
	return stats.Sparkline(values)
}

func startNotice(err error) string {
	if errors.Is(err, engine.ErrNoContent) {
		return "Nothing to type: the selected content is empty. Add sentences with 'taja folder add' or press ctrl+f to leave custom mode."
	}
	return err.Error()
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
