// Package tui provides the Bubble Tea practice interface.
package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// styledCell is one rendered target rune with its display width.
type styledCell struct {
	text  string
	width int
	space bool
}

// styleTarget colors every target rune by its typed state: correct,
// incorrect, pending, or part of the current word. A wrong rune over a
// space shows a bullet so the miss stays visible. cursor is the index
// of the next rune to type, -1 when the input is full.
func styleTarget(target, input []rune, cursor int) []styledCell {
	wordStart, wordEnd := cursorWord(target, cursor)
	cells := make([]styledCell, 0, len(target))
	for i, want := range target {
		shown := want
		style := pendingStyle
		switch {
		case i < len(input) && want == ' ' && input[i] != ' ':
			shown = '•'
			style = incorrectStyle
		case i < len(input) && input[i] == want:
			style = correctStyle
		case i < len(input):
			style = incorrectStyle
		case want != ' ' && i >= wordStart && i < wordEnd:
			style = currentWordStyle
		}
		if i == cursor && i >= len(input) {
			style = style.Underline(true)
		}
		cells = append(cells, styledCell{
			text:  style.Render(string(shown)),
			width: runewidth.RuneWidth(shown),
			space: want == ' ',
		})
	}
	return cells
}

// cursorWord returns the [start, end) bounds of the word under the
// cursor. From a space the next word counts as current; past the last
// word the last word does.
func cursorWord(target []rune, cursor int) (int, int) {
	if len(target) == 0 {
		return -1, -1
	}
	if cursor < 0 {
		cursor = 0
	}
	if cursor >= len(target) {
		cursor = len(target) - 1
	}
	i := cursor
	for i < len(target) && target[i] == ' ' {
		i++
	}
	if i == len(target) {
		i = cursor
		for i > 0 && target[i] == ' ' {
			i--
		}
		if target[i] == ' ' {
			return -1, -1
		}
	}
	start := i
	for start > 0 && target[start-1] != ' ' {
		start--
	}
	end := i
	for end < len(target) && target[end] != ' ' {
		end++
	}
	return start, end
}

func joinCells(cells []styledCell) string {
	var b strings.Builder
	for _, c := range cells {
		b.WriteString(c.text)
	}
	return b.String()
}

// wrapCells breaks a styled sentence into lines at most width columns
// wide, preferring to break after a space. A single overlong word
// breaks mid-word.
func wrapCells(cells []styledCell, width int) string {
	if width <= 0 {
		return joinCells(cells)
	}
	var out strings.Builder
	line := make([]styledCell, 0, len(cells))
	lineWidth := 0
	spaceAt := -1

	for i := 0; i < len(cells); {
		c := cells[i]
		if lineWidth+c.width > width && len(line) > 0 {
			if spaceAt >= 0 {
				out.WriteString(joinCells(line[:spaceAt]))
				out.WriteRune('\n')
				line = append([]styledCell{}, line[spaceAt+1:]...)
				lineWidth = widthOfCells(line)
				spaceAt = trailingSpace(line)
			} else {
				out.WriteString(joinCells(line))
				out.WriteRune('\n')
				line = line[:0]
				lineWidth = 0
			}
			continue
		}
		line = append(line, c)
		lineWidth += c.width
		if c.space {
			spaceAt = len(line) - 1
		}
		i++
	}
	out.WriteString(joinCells(line))
	return out.String()
}

func widthOfCells(cells []styledCell) int {
	total := 0
	for _, c := range cells {
		total += c.width
	}
	return total
}

func trailingSpace(cells []styledCell) int {
	for i := len(cells) - 1; i >= 0; i-- {
		if cells[i].space {
			return i
		}
	}
	return -1
}
