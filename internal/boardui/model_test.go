package boardui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/taja/internal/board"
	"github.com/verte-zerg/taja/internal/model"
	"github.com/verte-zerg/taja/internal/storage"
)

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	st, err := storage.Open(filepath.Join(t.TempDir(), "taja.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func newSeededModel(t *testing.T) (*Model, *storage.Store) {
	t.Helper()
	st := openTestStore(t)
	boards := board.NewStore(st)
	drills := board.NewDrillStore(st)
	ctx := context.Background()
	seed := []model.LeaderboardEntry{
		{WPM: 212.4, ElapsedSeconds: 95, SentenceCount: 15, Date: boardDate(), Mode: model.ModeNormal, Language: model.LangKorean},
		{WPM: 180.0, ElapsedSeconds: 110, SentenceCount: 15, Date: boardDate(), Mode: model.ModeNormal, Language: model.LangEnglish},
		{WPM: 57.1, ElapsedSeconds: 260, SentenceCount: 8, Date: boardDate(), Mode: model.ModeCustom, Language: model.LangKorean, FolderName: "속담"},
	}
	for _, e := range seed {
		if err := boards.Record(ctx, e); err != nil {
			t.Fatalf("record entry: %v", err)
		}
	}
	drillEntry := model.DrillEntry{WPM: 84, Accuracy: 97.5, ElapsedSeconds: 30, WordCount: 21, Date: boardDate(), Language: model.LangKorean}
	if err := drills.Record(ctx, drillEntry); err != nil {
		t.Fatalf("record drill entry: %v", err)
	}
	m := NewModel(boards, drills)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m, st
}

func pressRune(m *Model, r rune) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	return cmd
}

func requireContains(t *testing.T, view string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestViewListsEntriesByWPM(t *testing.T) {
	m, _ := newSeededModel(t)
	view := m.View()
	requireContains(t, view,
		"All", "Korean", "English", "Custom", "Drill",
		"3 entries · sorted by WPM",
		"212.4", "180.0", "57.1",
		"custom · 속담",
	)
	if strings.Index(view, "212.4") > strings.Index(view, "180.0") {
		t.Fatalf("expected fastest entry first:\n%s", view)
	}
	if strings.Index(view, "180.0") > strings.Index(view, "57.1") {
		t.Fatalf("expected entries sorted by WPM:\n%s", view)
	}
}

func TestTabsFilterEntries(t *testing.T) {
	m, _ := newSeededModel(t)

	pressRune(m, 'e')
	if m.activeTab != tabEnglish {
		t.Fatalf("got tab %d, expected english", m.activeTab)
	}
	view := m.View()
	requireContains(t, view, "180.0", "1 entry · sorted by WPM")
	if strings.Contains(view, "212.4") {
		t.Fatalf("english tab shows korean entry:\n%s", view)
	}

	pressRune(m, 'k')
	view = m.View()
	requireContains(t, view, "212.4")
	if strings.Contains(view, "57.1") {
		t.Fatalf("korean tab shows custom entry:\n%s", view)
	}

	pressRune(m, 'c')
	view = m.View()
	requireContains(t, view, "57.1", "custom · 속담")
	if strings.Contains(view, "180.0") {
		t.Fatalf("custom tab shows normal entry:\n%s", view)
	}
}

func TestDrillTabShowsDrillBoard(t *testing.T) {
	m, _ := newSeededModel(t)
	pressRune(m, 'd')
	if m.activeTab != tabDrill {
		t.Fatalf("got tab %d, expected drill", m.activeTab)
	}
	view := m.View()
	requireContains(t, view, "Accuracy", "Words", "84.0", "97.5%", "1 entry · sorted by WPM")
	if strings.Contains(view, "Sentences") {
		t.Fatalf("drill tab shows sentence columns:\n%s", view)
	}
}

func TestArrowKeysCycleTabs(t *testing.T) {
	m, _ := newSeededModel(t)
	if m.activeTab != tabAll {
		t.Fatalf("got tab %d, expected all", m.activeTab)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if m.activeTab != tabDrill {
		t.Fatalf("got tab %d, expected wrap to drill", m.activeTab)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.activeTab != tabAll {
		t.Fatalf("got tab %d, expected all", m.activeTab)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.activeTab != tabKorean {
		t.Fatalf("got tab %d, expected korean", m.activeTab)
	}
}

func TestScrollKeysMoveCursor(t *testing.T) {
	m, _ := newSeededModel(t)
	pressRune(m, 'G')
	if got := m.table.Cursor(); got != 2 {
		t.Fatalf("got cursor %d, expected last row", got)
	}
	pressRune(m, 'g')
	if got := m.table.Cursor(); got != 0 {
		t.Fatalf("got cursor %d, expected first row", got)
	}
}

func TestEmptyBoardShowsHint(t *testing.T) {
	st := openTestStore(t)
	m := NewModel(board.NewStore(st), board.NewDrillStore(st))
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	view := m.View()
	requireContains(t, view, "No entries yet. Finish a round to get on the board.")
}

func TestQueryErrorShownInFooter(t *testing.T) {
	m, st := newSeededModel(t)
	if err := st.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}
	pressRune(m, 'k')
	if m.errMsg == "" {
		t.Fatalf("expected query error after closing store")
	}
	requireContains(t, m.View(), m.errMsg)
}

func TestQuitKeys(t *testing.T) {
	m, _ := newSeededModel(t)
	cmd := pressRune(m, 'q')
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected quit message")
	}
}
