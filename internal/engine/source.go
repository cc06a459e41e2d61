package engine

import (
	"math/rand"
	"time"
)

const (
	normalBatchSize  = 15
	recentWindowSize = 10
	maxResamples     = 50
)

// ContentSource supplies target sentences for a session.
type ContentSource interface {
	// Next returns the next target sentence, reporting false when the
	// source has no content.
	Next() (string, bool)
	// BatchSize is the number of sentences per round.
	BatchSize() int
	// Rewind restarts ordered sources from the beginning. Random
	// sources ignore it.
	Rewind()
}

// CorpusSource picks sentences uniformly at random, avoiding recently
// used ones when the pool is large enough to allow it.
type CorpusSource struct {
	sentences []string
	rnd       *rand.Rand
	recent    []string
}

// NewCorpusSource returns a source over sentences seeded with the
// current time.
func NewCorpusSource(sentences []string) *CorpusSource {
	return NewCorpusSourceRand(sentences, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewCorpusSourceRand returns a source over sentences drawing from rnd.
func NewCorpusSourceRand(sentences []string, rnd *rand.Rand) *CorpusSource {
	return &CorpusSource{sentences: sentences, rnd: rnd}
}

// Next picks a random sentence. Avoiding the recent window is a soft
// constraint: after too many resamples the last candidate is accepted.
func (s *CorpusSource) Next() (string, bool) {
	if len(s.sentences) == 0 {
		return "", false
	}
	pick := s.sentences[s.rnd.Intn(len(s.sentences))]
	if len(s.sentences) > recentWindowSize {
		for try := 0; try < maxResamples && s.isRecent(pick); try++ {
			pick = s.sentences[s.rnd.Intn(len(s.sentences))]
		}
		s.remember(pick)
	}
	return pick, true
}

// BatchSize is fixed for corpus practice.
func (s *CorpusSource) BatchSize() int {
	return normalBatchSize
}

// Rewind is a no-op for random selection.
func (s *CorpusSource) Rewind() {}

func (s *CorpusSource) isRecent(text string) bool {
	for _, r := range s.recent {
		if r == text {
			return true
		}
	}
	return false
}

func (s *CorpusSource) remember(text string) {
	s.recent = append(s.recent, text)
	if len(s.recent) > recentWindowSize {
		s.recent = s.recent[1:]
	}
}

// FolderSource serves a sentence folder in its stored order, wrapping
// around at the end.
type FolderSource struct {
	sentences []string
	index     int
}

// NewFolderSource returns a source over the folder's sentences.
func NewFolderSource(sentences []string) *FolderSource {
	return &FolderSource{sentences: sentences}
}

// Next returns the folder's sentences in order, wrapping around.
func (s *FolderSource) Next() (string, bool) {
	if len(s.sentences) == 0 {
		return "", false
	}
	text := s.sentences[s.index%len(s.sentences)]
	s.index++
	return text, true
}

// BatchSize matches the folder length, so one round visits every
// sentence once.
func (s *FolderSource) BatchSize() int {
	return len(s.sentences)
}

// Rewind restarts the folder from its first sentence.
func (s *FolderSource) Rewind() {
	s.index = 0
}
