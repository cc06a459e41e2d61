// Package model defines shared data structures.
package model

import (
	"fmt"
	"time"
)

// Language selects the character counting rules and the corpus.
type Language string

// Supported languages. Korean counts every matched character as a
// typed word; English counts five matched characters as one word.
const (
	LangKorean  Language = "korean"
	LangEnglish Language = "english"
)

// ParseLanguage normalizes user input to a Language.
func ParseLanguage(s string) (Language, error) {
	switch s {
	case "ko", "kr", "korean":
		return LangKorean, nil
	case "en", "english":
		return LangEnglish, nil
	}
	return "", fmt.Errorf("unknown language %q", s)
}

// PracticeType selects the sentence pool within a language.
type PracticeType string

// Supported practice types.
const (
	PracticeShort PracticeType = "short"
	PracticeLong  PracticeType = "long"
)

// ParsePracticeType normalizes user input to a PracticeType.
func ParsePracticeType(s string) (PracticeType, error) {
	switch s {
	case "short":
		return PracticeShort, nil
	case "long":
		return PracticeLong, nil
	}
	return "", fmt.Errorf("unknown practice type %q", s)
}

// Mode distinguishes built-in corpus practice from custom folders.
type Mode string

// Practice modes.
const (
	ModeNormal Mode = "normal"
	ModeCustom Mode = "custom"
)

// GameStats is a snapshot of typing performance for one sentence or
// one round, depending on how the elapsed time was accumulated.
// CorrectChars+Errors always equals TotalChars.
type GameStats struct {
	WPM            float64
	Accuracy       float64
	Errors         int
	CorrectChars   int
	TotalChars     int
	ElapsedSeconds int
}

// LeaderboardEntry records one completed practice round.
// Language is empty on entries written before languages were tracked;
// such entries are treated as Korean when filtering.
type LeaderboardEntry struct {
	ID             string    `json:"id"`
	WPM            float64   `json:"wpm"`
	ElapsedSeconds int       `json:"elapsedSeconds"`
	SentenceCount  int       `json:"sentenceCount"`
	Date           time.Time `json:"date"`
	Mode           Mode      `json:"mode"`
	Language       Language  `json:"language,omitempty"`
	FolderName     string    `json:"folderName,omitempty"`
}

// DrillEntry records one completed word drill.
type DrillEntry struct {
	ID             string    `json:"id"`
	WPM            float64   `json:"wpm"`
	Accuracy       float64   `json:"accuracy"`
	ElapsedSeconds int       `json:"elapsedSeconds"`
	WordCount      int       `json:"wordCount"`
	Date           time.Time `json:"date"`
	Language       Language  `json:"language,omitempty"`
}

// SentenceFolder is a user-curated list of practice sentences.
type SentenceFolder struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Sentences []string `json:"sentences"`
}
