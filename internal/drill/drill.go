// Package drill runs the thirty-second word drill.
//
// The drill counts down from three, then serves random words. The
// clock starts at the first keystroke and runs for exactly thirty
// seconds; only exact word matches score, and a mismatched submission
// is ignored without penalty.
package drill

import (
	"errors"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/verte-zerg/taja/internal/engine"
	"github.com/verte-zerg/taja/internal/model"
	"github.com/verte-zerg/taja/internal/stats"
)

const (
	countdownStart = 3
	drillDuration  = 30 * time.Second
)

// ErrNoWords reports an empty word pool.
var ErrNoWords = errors.New("no words to type")

// State is the drill lifecycle.
type State int

// Drill states.
const (
	StateIdle State = iota
	StateCountdown
	StateActive
	StateResult
)

// Game runs the word drill state machine.
type Game struct {
	words []string
	lang  model.Language
	clock engine.Clock
	rnd   *rand.Rand

	state        State
	countdown    int
	word         string
	input        string
	startTime    time.Time
	endTime      time.Time
	correctChars int
	totalChars   int
	wordCount    int
	recorded     bool
}

// New returns an idle Game over the word pool, seeded with the current
// time.
func New(words []string, lang model.Language, clock engine.Clock) *Game {
	return NewRand(words, lang, clock, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewRand is New with a caller-supplied randomness source.
func NewRand(words []string, lang model.Language, clock engine.Clock, rnd *rand.Rand) *Game {
	if clock == nil {
		clock = engine.SystemClock{}
	}
	return &Game{words: words, lang: lang, clock: clock, rnd: rnd}
}

// Begin arms the countdown, restarting a finished drill from scratch.
func (g *Game) Begin() error {
	if len(g.words) == 0 {
		return ErrNoWords
	}
	if g.state == StateCountdown || g.state == StateActive {
		return nil
	}
	g.reset()
	g.state = StateCountdown
	g.countdown = countdownStart
	return nil
}

// TickCountdown advances the countdown by one second, activating the
// drill and serving the first word at zero.
func (g *Game) TickCountdown() {
	if g.state != StateCountdown {
		return
	}
	g.countdown--
	if g.countdown <= 0 {
		g.state = StateActive
		g.word = g.pick()
	}
}

// SetInput replaces the typed input. The first keystroke starts the
// drill clock.
func (g *Game) SetInput(s string) {
	if g.state != StateActive {
		return
	}
	if g.startTime.IsZero() && s != "" {
		g.startTime = g.clock.Now()
	}
	g.input = s
}

// Submit commits the current input as a word attempt. Only an exact
// match after trimming scores and serves the next word; anything else
// is kept untouched, with no penalty.
func (g *Game) Submit() {
	if g.state != StateActive || g.word == "" {
		return
	}
	if strings.TrimSpace(g.input) != g.word {
		return
	}
	n := len([]rune(g.word))
	g.correctChars += n
	g.totalChars += n
	g.wordCount++
	g.input = ""
	g.word = g.pick()
}

// Remaining returns the seconds left on the drill clock, rounded up.
// The clock shows the full duration until the first keystroke.
func (g *Game) Remaining(now time.Time) int {
	if g.state != StateActive || g.startTime.IsZero() {
		return int(drillDuration / time.Second)
	}
	left := g.startTime.Add(drillDuration).Sub(now)
	secs := int(math.Ceil(left.Seconds()))
	if secs < 0 {
		return 0
	}
	return secs
}

// Expire ends the drill once its clock has run out, reporting whether
// it transitioned to the result.
func (g *Game) Expire(now time.Time) bool {
	if g.state != StateActive || g.startTime.IsZero() {
		return false
	}
	if now.Before(g.startTime.Add(drillDuration)) {
		return false
	}
	g.endTime = now
	g.state = StateResult
	return true
}

// Result computes the drill's final stats. With no typed characters
// the accuracy reads 100 and the speed zero.
func (g *Game) Result() model.GameStats {
	elapsed := drillDuration.Milliseconds()
	if !g.startTime.IsZero() && !g.endTime.IsZero() {
		elapsed = g.endTime.Sub(g.startTime).Milliseconds()
	}
	accuracy := 100.0
	if g.totalChars > 0 {
		accuracy = 100 * float64(g.correctChars) / float64(g.totalChars)
	}
	return model.GameStats{
		WPM:            stats.WPM(g.correctChars, elapsed, g.lang),
		Accuracy:       accuracy,
		Errors:         g.totalChars - g.correctChars,
		CorrectChars:   g.correctChars,
		TotalChars:     g.totalChars,
		ElapsedSeconds: stats.ElapsedSeconds(elapsed),
	}
}

// Entry builds the leaderboard entry for the finished drill.
func (g *Game) Entry() model.DrillEntry {
	res := g.Result()
	return model.DrillEntry{
		WPM:            res.WPM,
		Accuracy:       res.Accuracy,
		ElapsedSeconds: res.ElapsedSeconds,
		WordCount:      g.wordCount,
		Date:           g.clock.Now(),
		Language:       g.lang,
	}
}

// MarkRecorded flags the result as recorded, reporting true only the
// first time so a drill lands on the leaderboard exactly once.
func (g *Game) MarkRecorded() bool {
	if g.state != StateResult || g.recorded {
		return false
	}
	g.recorded = true
	return true
}

// State returns the current lifecycle state.
func (g *Game) State() State {
	return g.state
}

// Countdown returns the current countdown digit.
func (g *Game) Countdown() int {
	return g.countdown
}

// Word returns the word being typed.
func (g *Game) Word() string {
	return g.word
}

// Input returns the current input string.
func (g *Game) Input() string {
	return g.input
}

// WordCount returns the number of matched words so far.
func (g *Game) WordCount() int {
	return g.wordCount
}

// Language returns the drill language.
func (g *Game) Language() model.Language {
	return g.lang
}

func (g *Game) reset() {
	g.input = ""
	g.word = ""
	g.startTime = time.Time{}
	g.endTime = time.Time{}
	g.correctChars = 0
	g.totalChars = 0
	g.wordCount = 0
	g.recorded = false
}

func (g *Game) pick() string {
	return g.words[g.rnd.Intn(len(g.words))]
}
