package drill

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/verte-zerg/taja/internal/model"
)

type stepClock struct {
	now time.Time
}

func newStepClock() *stepClock {
	return &stepClock{now: time.Unix(1700000000, 0)}
}

func (c *stepClock) Now() time.Time {
	return c.now
}

func (c *stepClock) advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func newTestGame(clock *stepClock, words ...string) *Game {
	return NewRand(words, model.LangKorean, clock, rand.New(rand.NewSource(1)))
}

// startDrill runs the countdown down to the active state.
func startDrill(t *testing.T, g *Game) {
	t.Helper()
	if err := g.Begin(); err != nil {
		t.Fatalf("begin: %v", err)
	}
	for i := 0; i < countdownStart; i++ {
		g.TickCountdown()
	}
	if g.State() != StateActive {
		t.Fatalf("expected active state, got %v", g.State())
	}
}

func TestBeginRequiresWords(t *testing.T) {
	g := newTestGame(newStepClock())
	if err := g.Begin(); !errors.Is(err, ErrNoWords) {
		t.Fatalf("expected ErrNoWords, got %v", err)
	}
}

func TestCountdownRunsToActive(t *testing.T) {
	g := newTestGame(newStepClock(), "하늘")
	if err := g.Begin(); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if g.State() != StateCountdown || g.Countdown() != 3 {
		t.Fatalf("expected countdown at 3, got state=%v countdown=%d", g.State(), g.Countdown())
	}
	g.TickCountdown()
	g.TickCountdown()
	if g.State() != StateCountdown || g.Countdown() != 1 {
		t.Fatalf("expected countdown at 1, got state=%v countdown=%d", g.State(), g.Countdown())
	}
	g.TickCountdown()
	if g.State() != StateActive {
		t.Fatalf("expected active state, got %v", g.State())
	}
	if g.Word() != "하늘" {
		t.Fatalf("expected the first word, got %q", g.Word())
	}
}

func TestClockWaitsForFirstKeystroke(t *testing.T) {
	clock := newStepClock()
	g := newTestGame(clock, "하늘")
	startDrill(t, g)

	clock.advance(time.Minute)
	if got := g.Remaining(clock.Now()); got != 30 {
		t.Fatalf("clock must not run before typing, got %d", got)
	}
	if g.Expire(clock.Now()) {
		t.Fatalf("drill must not expire before typing")
	}

	g.SetInput("하")
	clock.advance(time.Second)
	if got := g.Remaining(clock.Now()); got != 29 {
		t.Fatalf("expected 29 seconds, got %d", got)
	}
}

func TestRemainingRoundsUp(t *testing.T) {
	clock := newStepClock()
	g := newTestGame(clock, "하늘")
	startDrill(t, g)
	g.SetInput("하")

	clock.advance(100 * time.Millisecond)
	if got := g.Remaining(clock.Now()); got != 30 {
		t.Fatalf("expected 30 just after typing starts, got %d", got)
	}
	clock.advance(29850 * time.Millisecond)
	if got := g.Remaining(clock.Now()); got != 1 {
		t.Fatalf("expected 1 in the final second, got %d", got)
	}
	clock.advance(time.Second)
	if got := g.Remaining(clock.Now()); got != 0 {
		t.Fatalf("expected 0 when time is up, got %d", got)
	}
}

func TestSubmitScoresExactMatch(t *testing.T) {
	clock := newStepClock()
	g := newTestGame(clock, "하늘")
	startDrill(t, g)

	g.SetInput(" 하늘 ")
	g.Submit()
	if g.WordCount() != 1 {
		t.Fatalf("expected 1 word, got %d", g.WordCount())
	}
	if g.Input() != "" {
		t.Fatalf("matching submit must clear input, got %q", g.Input())
	}
	if g.Word() == "" {
		t.Fatalf("expected the next word to be served")
	}
}

func TestSubmitIgnoresMismatch(t *testing.T) {
	clock := newStepClock()
	g := newTestGame(clock, "하늘")
	startDrill(t, g)

	g.SetInput("하느")
	g.Submit()
	if g.WordCount() != 0 {
		t.Fatalf("mismatch must not score, got %d words", g.WordCount())
	}
	if g.Input() != "하느" {
		t.Fatalf("mismatch must keep the input, got %q", g.Input())
	}
}

func TestExpireAndResult(t *testing.T) {
	clock := newStepClock()
	g := newTestGame(clock, "하늘")
	startDrill(t, g)

	g.SetInput("하늘")
	g.Submit()
	g.SetInput("하늘")
	g.Submit()

	clock.advance(29 * time.Second)
	if g.Expire(clock.Now()) {
		t.Fatalf("drill must not expire early")
	}
	clock.advance(time.Second)
	if !g.Expire(clock.Now()) {
		t.Fatalf("expected expiry at 30 seconds")
	}
	if g.State() != StateResult {
		t.Fatalf("expected result state, got %v", g.State())
	}

	res := g.Result()
	// Four Korean characters in half a minute.
	if res.WPM != 8.0 {
		t.Fatalf("expected wpm 8.0, got %v", res.WPM)
	}
	if res.Accuracy != 100.0 {
		t.Fatalf("expected accuracy 100, got %v", res.Accuracy)
	}
	if res.ElapsedSeconds != 30 {
		t.Fatalf("expected 30 elapsed seconds, got %d", res.ElapsedSeconds)
	}

	entry := g.Entry()
	if entry.WordCount != 2 || entry.WPM != 8.0 || entry.Language != model.LangKorean {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if !entry.Date.Equal(clock.Now()) {
		t.Fatalf("expected entry date from the clock")
	}
}

func TestResultWithoutWordsReadsPerfect(t *testing.T) {
	clock := newStepClock()
	g := newTestGame(clock, "하늘")
	startDrill(t, g)

	g.SetInput("하")
	clock.advance(drillDuration)
	if !g.Expire(clock.Now()) {
		t.Fatalf("expected expiry")
	}
	res := g.Result()
	if res.WPM != 0 {
		t.Fatalf("expected wpm 0 with no matched words, got %v", res.WPM)
	}
	if res.Accuracy != 100.0 {
		t.Fatalf("expected accuracy 100 with nothing scored, got %v", res.Accuracy)
	}
}

func TestMarkRecordedOnce(t *testing.T) {
	clock := newStepClock()
	g := newTestGame(clock, "하늘")
	startDrill(t, g)
	g.SetInput("하")
	clock.advance(drillDuration)
	g.Expire(clock.Now())

	if !g.MarkRecorded() {
		t.Fatalf("first mark must succeed")
	}
	if g.MarkRecorded() {
		t.Fatalf("second mark must be refused")
	}
}

func TestBeginRestartsAfterResult(t *testing.T) {
	clock := newStepClock()
	g := newTestGame(clock, "하늘")
	startDrill(t, g)
	g.SetInput("하늘")
	g.Submit()
	clock.advance(drillDuration)
	g.Expire(clock.Now())

	if err := g.Begin(); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if g.State() != StateCountdown || g.Countdown() != 3 {
		t.Fatalf("expected a fresh countdown, got state=%v countdown=%d", g.State(), g.Countdown())
	}
	for i := 0; i < countdownStart; i++ {
		g.TickCountdown()
	}
	if g.WordCount() != 0 {
		t.Fatalf("restart must clear the score, got %d", g.WordCount())
	}
	if g.Remaining(clock.Now()) != 30 {
		t.Fatalf("restart must rearm the clock")
	}
}
