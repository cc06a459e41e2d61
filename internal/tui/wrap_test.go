package tui

import (
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestStyleTargetCursor(t *testing.T) {
	target := []rune("ab")
	input := []rune("a")
	cursor := len(input)

	cells := styleTarget(target, input, cursor)
	if len(cells) != 2 {
		t.Fatalf("expected 2 cells, got %d", len(cells))
	}
	if cells[0].text != correctStyle.Render("a") {
		t.Fatalf("expected correct style for first rune")
	}
	if cells[1].text != currentWordStyle.Underline(true).Render("b") {
		t.Fatalf("expected underlined current-word style for cursor rune")
	}
}

func TestStyleTargetNoCursorWhenComplete(t *testing.T) {
	target := []rune("a")
	input := []rune("a")

	cells := styleTarget(target, input, -1)
	if len(cells) != 1 {
		t.Fatalf("expected 1 cell, got %d", len(cells))
	}
	if cells[0].text != correctStyle.Render("a") {
		t.Fatalf("expected correct style for completed rune")
	}
}

func TestStyleTargetKeepsTargetOnMistype(t *testing.T) {
	target := []rune("ab")
	input := []rune("ax")

	cells := styleTarget(target, input, -1)
	if cells[1].text != incorrectStyle.Render("b") {
		t.Fatalf("expected incorrect style showing the target rune")
	}
}

func TestStyleTargetWordHighlighting(t *testing.T) {
	target := []rune("one two")
	input := []rune("o")
	cursor := len(input)

	cells := styleTarget(target, input, cursor)
	if cells[0].text != correctStyle.Render("o") {
		t.Fatalf("expected correct style for typed rune")
	}
	if cells[1].text != currentWordStyle.Underline(true).Render("n") {
		t.Fatalf("expected underlined current-word style at cursor")
	}
	if cells[2].text != currentWordStyle.Render("e") {
		t.Fatalf("expected current word style for untyped in current word")
	}
	if cells[4].text != pendingStyle.Render("t") {
		t.Fatalf("expected pending style for next word")
	}
	if cells[6].text != pendingStyle.Render("o") {
		t.Fatalf("expected pending style for next word")
	}
}

func TestStyleTargetCursorOnSpaceHighlightsNextWord(t *testing.T) {
	target := []rune("one two")
	input := []rune("one")
	cursor := len(input)

	cells := styleTarget(target, input, cursor)
	if cells[3].text != cursorStyle.Render(" ") {
		t.Fatalf("expected underlined pending style for cursor space")
	}
	if cells[4].text != currentWordStyle.Render("t") {
		t.Fatalf("expected next word highlighted from a space cursor")
	}
}

func TestStyleTargetWrongSpaceBullet(t *testing.T) {
	target := []rune("a b")
	input := []rune("ax")
	cursor := len(input)

	cells := styleTarget(target, input, cursor)
	if len(cells) != 3 {
		t.Fatalf("expected 3 cells, got %d", len(cells))
	}
	if cells[1].text != incorrectStyle.Render("•") {
		t.Fatalf("expected bullet for wrong rune over a space")
	}
	if !cells[1].space {
		t.Fatalf("expected space flag to follow the target rune")
	}
}

func TestStyleTargetKoreanWidth(t *testing.T) {
	cells := styleTarget([]rune("한글"), nil, 0)
	if cells[0].width != 2 || cells[1].width != 2 {
		t.Fatalf("expected double-width cells, got %d and %d", cells[0].width, cells[1].width)
	}
}

func plainCells(s string) []styledCell {
	cells := make([]styledCell, 0, len(s))
	for _, r := range s {
		cells = append(cells, styledCell{
			text:  string(r),
			width: runewidth.RuneWidth(r),
			space: r == ' ',
		})
	}
	return cells
}

func TestWrapCellsBreaksAfterSpace(t *testing.T) {
	got := wrapCells(plainCells("aa bb cc"), 5)
	if got != "aa\nbb cc" {
		t.Fatalf("expected break at the space, got %q", got)
	}
}

func TestWrapCellsBreaksLongWordMidWord(t *testing.T) {
	got := wrapCells(plainCells("abcdef"), 3)
	if got != "abc\ndef" {
		t.Fatalf("expected hard break, got %q", got)
	}
}

func TestWrapCellsCountsDisplayWidth(t *testing.T) {
	// Three double-width runes need six columns; four fit two lines.
	got := wrapCells(plainCells("가나다"), 4)
	if got != "가나\n다" {
		t.Fatalf("expected width-aware break, got %q", got)
	}
}
