package engine

import (
	"math"
	"time"
)

// Timer tracks active typing time for a round of sentences. A
// sentence's clock starts at its first keystroke, and only the whole
// seconds of completed sentences accumulate into the round, so pauses
// between sentences never count.
type Timer struct {
	sentenceStart time.Time
	roundStart    time.Time
	activeSeconds int
}

// StartTyping marks the first keystroke of the current sentence. The
// round clock arms with the first keystroke of the round and stays
// armed until the round is reset.
func (t *Timer) StartTyping(now time.Time) {
	if t.sentenceStart.IsZero() {
		t.sentenceStart = now
	}
	if t.roundStart.IsZero() {
		t.roundStart = now
	}
}

// CompleteSentence folds the current sentence's typing time into the
// round accumulator and returns the whole seconds it took.
func (t *Timer) CompleteSentence(now time.Time) int {
	if t.sentenceStart.IsZero() {
		return 0
	}
	secs := wholeSeconds(now.Sub(t.sentenceStart))
	t.activeSeconds += secs
	t.sentenceStart = time.Time{}
	return secs
}

// ClearSentence forgets the current sentence's start without
// accumulating anything.
func (t *Timer) ClearSentence() {
	t.sentenceStart = time.Time{}
}

// LiveElapsedMs returns the round's active typing time so far in
// milliseconds, counting the in-progress sentence.
func (t *Timer) LiveElapsedMs(now time.Time) int64 {
	ms := int64(t.activeSeconds) * 1000
	if !t.sentenceStart.IsZero() {
		ms += now.Sub(t.sentenceStart).Milliseconds()
	}
	return ms
}

// SentenceElapsedMs returns the in-progress sentence's typing time in
// milliseconds, zero before its first keystroke.
func (t *Timer) SentenceElapsedMs(now time.Time) int64 {
	if t.sentenceStart.IsZero() {
		return 0
	}
	return now.Sub(t.sentenceStart).Milliseconds()
}

// RoundActive reports whether any keystroke has landed this round.
func (t *Timer) RoundActive() bool {
	return !t.roundStart.IsZero()
}

// SentenceActive reports whether the current sentence has been started.
func (t *Timer) SentenceActive() bool {
	return !t.sentenceStart.IsZero()
}

// ActiveSeconds returns the accumulated whole seconds of all completed
// sentences in the round.
func (t *Timer) ActiveSeconds() int {
	return t.activeSeconds
}

// ResetRound clears all round state.
func (t *Timer) ResetRound() {
	t.sentenceStart = time.Time{}
	t.roundStart = time.Time{}
	t.activeSeconds = 0
}

func wholeSeconds(d time.Duration) int {
	return int(math.Round(d.Seconds()))
}
