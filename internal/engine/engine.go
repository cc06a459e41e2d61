// Package engine drives typing practice sessions.
//
// A session cycles through sentences supplied by a ContentSource.
// Every BatchSize completed sentences form a round: the round's active
// typing time and correct characters accumulate across its sentences,
// a summary with batch averages opens at the round boundary, and
// closing the summary records one leaderboard entry.
package engine

import (
	"errors"

	"github.com/verte-zerg/taja/internal/model"
	"github.com/verte-zerg/taja/internal/stats"
)

// Phase is the lifecycle state of a session.
type Phase int

// Session phases.
const (
	PhaseIdle Phase = iota
	PhaseActive
	PhaseFinished
	PhaseSummary
)

// ErrNoContent reports a source with nothing to type.
var ErrNoContent = errors.New("no content to type")

// Config configures a session engine.
type Config struct {
	Source     ContentSource
	Language   model.Language
	Mode       model.Mode
	FolderName string
	TargetWPM  int
	Clock      Clock
	// Record receives one entry per closed round summary.
	Record func(model.LeaderboardEntry)
}

// Engine runs the typing session state machine.
type Engine struct {
	source     ContentSource
	lang       model.Language
	mode       model.Mode
	folderName string
	targetWPM  int
	clock      Clock
	record     func(model.LeaderboardEntry)

	phase          Phase
	target         string
	input          string
	timer          Timer
	carriedCorrect int
	completed      int
	history        []model.GameStats
	lastStats      model.GameStats
	summary        model.GameStats
	targetHit      bool
}

// New returns an idle Engine.
func New(cfg Config) *Engine {
	clock := cfg.Clock
	if clock == nil {
		clock = SystemClock{}
	}
	return &Engine{
		source:     cfg.Source,
		lang:       cfg.Language,
		mode:       cfg.Mode,
		folderName: cfg.FolderName,
		targetWPM:  cfg.TargetWPM,
		clock:      clock,
		record:     cfg.Record,
	}
}

// Start moves an idle session to its first sentence.
func (e *Engine) Start() error {
	if e.phase != PhaseIdle {
		return nil
	}
	return e.nextSentence()
}

// SetInput replaces the current input with s. The whole string is the
// unit of comparison, so a paste event behaves exactly like typing the
// same characters one at a time.
func (e *Engine) SetInput(s string) {
	if e.phase != PhaseActive {
		return
	}
	now := e.clock.Now()
	if e.input == "" && s != "" {
		e.timer.StartTyping(now)
	}
	e.input = s
	if s == e.target {
		e.finishSentence()
	}
}

// Advance moves a finished session to the next sentence. The round
// accumulators keep running; the next sentence's clock arms on its
// first keystroke.
func (e *Engine) Advance() error {
	if e.phase != PhaseFinished {
		return nil
	}
	return e.nextSentence()
}

// RestartSentence clears the input and the sentence clock without
// touching the round accumulators.
func (e *Engine) RestartSentence() {
	if e.phase != PhaseActive {
		return
	}
	e.input = ""
	e.timer.ClearSentence()
}

// CloseSummary records the finished round and starts the next one.
// Ordered sources restart from their first sentence.
func (e *Engine) CloseSummary() error {
	if e.phase != PhaseSummary {
		return nil
	}
	if e.record != nil {
		e.record(model.LeaderboardEntry{
			WPM:            e.summary.WPM,
			ElapsedSeconds: e.timer.ActiveSeconds(),
			SentenceCount:  e.source.BatchSize(),
			Date:           e.clock.Now(),
			Mode:           e.mode,
			Language:       e.lang,
			FolderName:     e.folderName,
		})
	}
	e.timer.ResetRound()
	e.carriedCorrect = 0
	e.source.Rewind()
	return e.nextSentence()
}

// SwitchContent replaces the content source mid-session, resetting all
// round and session counters.
func (e *Engine) SwitchContent(source ContentSource, lang model.Language, mode model.Mode, folderName string) error {
	e.source = source
	e.lang = lang
	e.mode = mode
	e.folderName = folderName
	e.timer.ResetRound()
	e.carriedCorrect = 0
	e.completed = 0
	e.history = nil
	e.lastStats = model.GameStats{}
	e.summary = model.GameStats{}
	e.targetHit = false
	e.phase = PhaseIdle
	return e.Start()
}

// Live returns the stats to display right now. While typing, round
// timing applies as soon as the round clock is armed; otherwise the
// current sentence alone is measured.
func (e *Engine) Live() model.GameStats {
	switch e.phase {
	case PhaseSummary:
		return e.summary
	case PhaseFinished:
		return e.lastStats
	}
	now := e.clock.Now()
	if e.timer.RoundActive() {
		return stats.RoundMetrics(e.input, e.target, e.timer.LiveElapsedMs(now), e.lang, e.carriedCorrect)
	}
	return stats.Metrics(e.input, e.target, e.timer.SentenceElapsedMs(now), e.lang)
}

// Summary returns the batch averages of the round that just ended.
func (e *Engine) Summary() model.GameStats {
	return e.summary
}

// TargetAchieved reports whether the target-WPM notification is
// pending.
func (e *Engine) TargetAchieved() bool {
	return e.targetHit
}

// AckTarget dismisses the target-WPM notification.
func (e *Engine) AckTarget() {
	e.targetHit = false
}

// SetTargetWPM updates the WPM goal checked at round boundaries.
func (e *Engine) SetTargetWPM(wpm int) {
	if wpm >= 1 {
		e.targetWPM = wpm
	}
}

// Phase returns the current lifecycle state.
func (e *Engine) Phase() Phase {
	return e.phase
}

// TargetText returns the sentence being typed.
func (e *Engine) TargetText() string {
	return e.target
}

// Input returns the current input string.
func (e *Engine) Input() string {
	return e.input
}

// Language returns the session language.
func (e *Engine) Language() model.Language {
	return e.lang
}

// Mode returns the session mode.
func (e *Engine) Mode() model.Mode {
	return e.mode
}

// FolderName returns the active folder name, empty in normal mode.
func (e *Engine) FolderName() string {
	return e.folderName
}

// TargetWPM returns the WPM goal.
func (e *Engine) TargetWPM() int {
	return e.targetWPM
}

// Completed returns the number of sentences completed this session.
func (e *Engine) Completed() int {
	return e.completed
}

// BatchSize returns the number of sentences per round.
func (e *Engine) BatchSize() int {
	return e.source.BatchSize()
}

// History returns per-sentence snapshots of the session so far.
func (e *Engine) History() []model.GameStats {
	return e.history
}

func (e *Engine) nextSentence() error {
	text, ok := e.source.Next()
	if !ok {
		e.phase = PhaseIdle
		return ErrNoContent
	}
	e.target = text
	e.input = ""
	e.timer.ClearSentence()
	e.phase = PhaseActive
	return nil
}

// finishSentence runs when the input exactly matches the target. The
// snapshot's WPM spans the whole round: carried correct characters
// count toward it, and its elapsed time is the round's accumulated
// whole seconds including the sentence that just finished.
func (e *Engine) finishSentence() {
	now := e.clock.Now()
	e.timer.CompleteSentence(now)
	elapsedMs := int64(e.timer.ActiveSeconds()) * 1000
	snap := stats.RoundMetrics(e.input, e.target, elapsedMs, e.lang, e.carriedCorrect)
	snap.ElapsedSeconds = e.timer.ActiveSeconds()
	e.carriedCorrect += snap.CorrectChars
	e.completed++
	e.history = append(e.history, snap)
	e.lastStats = snap
	e.phase = PhaseFinished
	if e.completed%e.source.BatchSize() == 0 {
		e.openSummary()
	}
}

func (e *Engine) openSummary() {
	e.phase = PhaseSummary
	e.summary = stats.BatchAverage(e.history, e.source.BatchSize())
	if e.summary.WPM >= float64(e.targetWPM) {
		e.targetHit = true
	}
}
