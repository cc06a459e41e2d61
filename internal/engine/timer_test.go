package engine

import (
	"testing"
	"time"
)

func TestTimerArmsOncePerSentence(t *testing.T) {
	var tm Timer
	t0 := time.Unix(1000, 0)
	tm.StartTyping(t0)
	tm.StartTyping(t0.Add(5 * time.Second))
	if got := tm.SentenceElapsedMs(t0.Add(2 * time.Second)); got != 2000 {
		t.Fatalf("expected 2000ms, got %d", got)
	}
}

func TestTimerRoundClockSurvivesSentences(t *testing.T) {
	var tm Timer
	t0 := time.Unix(1000, 0)
	tm.StartTyping(t0)
	tm.CompleteSentence(t0.Add(2 * time.Second))
	if !tm.RoundActive() {
		t.Fatalf("round clock must stay armed after a sentence completes")
	}
	if tm.SentenceActive() {
		t.Fatalf("sentence clock must clear on completion")
	}
}

func TestTimerAccumulatesWholeSeconds(t *testing.T) {
	var tm Timer
	t0 := time.Unix(1000, 0)
	tm.StartTyping(t0)
	if got := tm.CompleteSentence(t0.Add(1499 * time.Millisecond)); got != 1 {
		t.Fatalf("expected 1 whole second, got %d", got)
	}
	t1 := t0.Add(10 * time.Second)
	tm.StartTyping(t1)
	if got := tm.CompleteSentence(t1.Add(2500 * time.Millisecond)); got != 3 {
		t.Fatalf("expected 3 whole seconds, got %d", got)
	}
	if got := tm.ActiveSeconds(); got != 4 {
		t.Fatalf("expected 4 accumulated seconds, got %d", got)
	}
}

func TestTimerLiveElapsedExcludesPauses(t *testing.T) {
	var tm Timer
	t0 := time.Unix(1000, 0)
	tm.StartTyping(t0)
	tm.CompleteSentence(t0.Add(2 * time.Second))

	// A long pause before the next sentence starts must not count.
	t1 := t0.Add(10 * time.Minute)
	if got := tm.LiveElapsedMs(t1); got != 2000 {
		t.Fatalf("expected 2000ms during the pause, got %d", got)
	}
	tm.StartTyping(t1)
	if got := tm.LiveElapsedMs(t1.Add(500 * time.Millisecond)); got != 2500 {
		t.Fatalf("expected 2500ms, got %d", got)
	}
}

func TestTimerCompleteWithoutStart(t *testing.T) {
	var tm Timer
	if got := tm.CompleteSentence(time.Unix(1000, 0)); got != 0 {
		t.Fatalf("expected 0 seconds, got %d", got)
	}
	if tm.ActiveSeconds() != 0 {
		t.Fatalf("nothing should accumulate without a start")
	}
}

func TestTimerResetRound(t *testing.T) {
	var tm Timer
	t0 := time.Unix(1000, 0)
	tm.StartTyping(t0)
	tm.CompleteSentence(t0.Add(2 * time.Second))
	tm.ResetRound()
	if tm.RoundActive() || tm.SentenceActive() {
		t.Fatalf("reset must clear both clocks")
	}
	if tm.ActiveSeconds() != 0 {
		t.Fatalf("reset must clear the accumulator, got %d", tm.ActiveSeconds())
	}
}
