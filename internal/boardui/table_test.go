package boardui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/taja/internal/model"
)

func boardDate() time.Time {
	return time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
}

func TestRenderPlainListsEntries(t *testing.T) {
	entries := []model.LeaderboardEntry{
		{WPM: 212.4, ElapsedSeconds: 95, SentenceCount: 15, Date: boardDate(), Mode: model.ModeNormal, Language: model.LangKorean},
		{WPM: 57.1, ElapsedSeconds: 260, SentenceCount: 8, Date: boardDate(), Mode: model.ModeCustom, FolderName: "속담"},
	}
	var buf bytes.Buffer
	if err := RenderPlain(&buf, entries); err != nil {
		t.Fatalf("render plain: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, expected 3", len(lines))
	}
	for _, col := range []string{"WPM", "Time", "Sentences", "Mode", "Lang", "Date"} {
		if !strings.Contains(lines[0], col) {
			t.Fatalf("header missing %q: %s", col, lines[0])
		}
	}
	for _, cell := range []string{"212.4", "95s", "15", "normal", "korean", "2026-03-14 09:30"} {
		if !strings.Contains(lines[1], cell) {
			t.Fatalf("first row missing %q: %s", cell, lines[1])
		}
	}
	for _, cell := range []string{"57.1", "260s", "custom · 속담", "korean"} {
		if !strings.Contains(lines[2], cell) {
			t.Fatalf("second row missing %q: %s", cell, lines[2])
		}
	}
}

func TestRenderPlainAlignsKoreanCells(t *testing.T) {
	entries := []model.LeaderboardEntry{
		{WPM: 100, ElapsedSeconds: 80, SentenceCount: 15, Date: boardDate(), Mode: model.ModeCustom, FolderName: "속담 모음"},
		{WPM: 90.5, ElapsedSeconds: 120, SentenceCount: 15, Date: boardDate(), Mode: model.ModeNormal, Language: model.LangEnglish},
	}
	var buf bytes.Buffer
	if err := RenderPlain(&buf, entries); err != nil {
		t.Fatalf("render plain: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	want := runewidth.StringWidth(lines[0])
	for i, line := range lines {
		if got := runewidth.StringWidth(line); got != want {
			t.Fatalf("line %d width %d, expected %d: %q", i, got, want, line)
		}
	}
}

func TestRenderPlainDrillListsEntries(t *testing.T) {
	entries := []model.DrillEntry{
		{WPM: 84, Accuracy: 97.5, ElapsedSeconds: 30, WordCount: 21, Date: boardDate(), Language: model.LangKorean},
	}
	var buf bytes.Buffer
	if err := RenderPlainDrill(&buf, entries); err != nil {
		t.Fatalf("render plain drill: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, expected 2", len(lines))
	}
	for _, col := range []string{"WPM", "Accuracy", "Words", "Time", "Lang", "Date"} {
		if !strings.Contains(lines[0], col) {
			t.Fatalf("header missing %q: %s", col, lines[0])
		}
	}
	for _, cell := range []string{"84.0", "97.5%", "21", "30s", "korean", "2026-03-14 09:30"} {
		if !strings.Contains(lines[1], cell) {
			t.Fatalf("row missing %q: %s", cell, lines[1])
		}
	}
}

func TestRenderPlainEmptyWritesHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderPlain(&buf, nil); err != nil {
		t.Fatalf("render plain: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, expected header only", len(lines))
	}
}

func TestModeAndLanguageLabels(t *testing.T) {
	named := model.LeaderboardEntry{Mode: model.ModeCustom, FolderName: "속담"}
	if got := modeLabel(named); got != "custom · 속담" {
		t.Fatalf("got %q, expected folder label", got)
	}
	unnamed := model.LeaderboardEntry{Mode: model.ModeCustom}
	if got := modeLabel(unnamed); got != "custom" {
		t.Fatalf("got %q, expected custom", got)
	}
	normal := model.LeaderboardEntry{Mode: model.ModeNormal, FolderName: "ignored"}
	if got := modeLabel(normal); got != "normal" {
		t.Fatalf("got %q, expected normal", got)
	}
	if got := languageLabel(""); got != "korean" {
		t.Fatalf("got %q, expected korean for legacy entries", got)
	}
	if got := languageLabel(model.LangEnglish); got != "english" {
		t.Fatalf("got %q, expected english", got)
	}
}
