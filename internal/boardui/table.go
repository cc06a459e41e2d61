package boardui

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/verte-zerg/taja/internal/model"
)

const dateFormat = "2006-01-02 15:04"

// StdoutIsTerminal reports whether stdout is attached to a terminal.
// Piped output should get the plain table instead of the full UI.
func StdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// RenderPlain writes the sentence leaderboard as an aligned text
// table, one entry per row in the given order.
func RenderPlain(w io.Writer, entries []model.LeaderboardEntry) error {
	headers := []string{"#", "WPM", "Time", "Sentences", "Mode", "Lang", "Date"}
	rows := make([][]string, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, sentenceRow(i+1, e))
	}
	rightAlign := map[int]bool{0: true, 1: true, 2: true, 3: true}
	return writeLines(w, formatPlainTable(headers, rows, rightAlign))
}

// RenderPlainDrill writes the drill leaderboard as an aligned text
// table.
func RenderPlainDrill(w io.Writer, entries []model.DrillEntry) error {
	headers := []string{"#", "WPM", "Accuracy", "Words", "Time", "Lang", "Date"}
	rows := make([][]string, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, drillRow(i+1, e))
	}
	rightAlign := map[int]bool{0: true, 1: true, 2: true, 3: true, 4: true}
	return writeLines(w, formatPlainTable(headers, rows, rightAlign))
}

func sentenceColumns() []table.Column {
	return []table.Column{
		{Title: "#", Width: 3},
		{Title: "WPM", Width: 7},
		{Title: "Time", Width: 6},
		{Title: "Sentences", Width: 9},
		{Title: "Mode", Width: 20},
		{Title: "Lang", Width: 8},
		{Title: "Date", Width: 16},
	}
}

func drillColumns() []table.Column {
	return []table.Column{
		{Title: "#", Width: 3},
		{Title: "WPM", Width: 7},
		{Title: "Accuracy", Width: 8},
		{Title: "Words", Width: 6},
		{Title: "Time", Width: 6},
		{Title: "Lang", Width: 8},
		{Title: "Date", Width: 16},
	}
}

func sentenceRow(rank int, e model.LeaderboardEntry) []string {
	return []string{
		strconv.Itoa(rank),
		fmt.Sprintf("%.1f", e.WPM),
		fmt.Sprintf("%ds", e.ElapsedSeconds),
		strconv.Itoa(e.SentenceCount),
		modeLabel(e),
		languageLabel(e.Language),
		e.Date.Format(dateFormat),
	}
}

func drillRow(rank int, e model.DrillEntry) []string {
	return []string{
		strconv.Itoa(rank),
		fmt.Sprintf("%.1f", e.WPM),
		fmt.Sprintf("%.1f%%", e.Accuracy),
		strconv.Itoa(e.WordCount),
		fmt.Sprintf("%ds", e.ElapsedSeconds),
		languageLabel(e.Language),
		e.Date.Format(dateFormat),
	}
}

func modeLabel(e model.LeaderboardEntry) string {
	if e.Mode == model.ModeCustom {
		if e.FolderName != "" {
			return "custom · " + e.FolderName
		}
		return "custom"
	}
	return "normal"
}

// languageLabel shows entries from before languages were tracked as
// Korean, matching how the filters treat them.
func languageLabel(lang model.Language) string {
	if lang == "" {
		return string(model.LangKorean)
	}
	return string(lang)
}

func formatPlainTable(headers []string, rows [][]string, rightAlignCols map[int]bool) []string {
	colCount := len(headers)
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}
	if colCount == 0 {
		return nil
	}

	widths := make([]int, colCount)
	for i, header := range headers {
		widths[i] = displayWidth(header)
	}
	for _, row := range rows {
		for i := 0; i < colCount; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			if w := displayWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, formatPlainRow(headers, widths, rightAlignCols))
	for _, row := range rows {
		lines = append(lines, formatPlainRow(row, widths, rightAlignCols))
	}
	return lines
}

func formatPlainRow(row []string, widths []int, rightAlignCols map[int]bool) string {
	var b strings.Builder
	for i := 0; i < len(widths); i++ {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(padCell(cell, widths[i], rightAlignCols[i]))
	}
	return b.String()
}

func padCell(value string, width int, rightAlign bool) string {
	valueWidth := displayWidth(value)
	if valueWidth >= width {
		return value
	}
	padding := width - valueWidth
	if rightAlign {
		return strings.Repeat(" ", padding) + value
	}
	return value + strings.Repeat(" ", padding)
}

// displayWidth measures terminal columns, not runes; Korean folder
// names take two columns per character.
func displayWidth(value string) int {
	return runewidth.StringWidth(value)
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write table: %w", err)
		}
	}
	return nil
}
