package engine

import (
	"fmt"
	"math/rand"
	"testing"
)

func corpusOf(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("sentence %d", i)
	}
	return out
}

func TestCorpusSourceSinglePool(t *testing.T) {
	src := NewCorpusSourceRand([]string{"only"}, rand.New(rand.NewSource(1)))
	for i := 0; i < 5; i++ {
		text, ok := src.Next()
		if !ok || text != "only" {
			t.Fatalf("expected the single sentence, got %q ok=%v", text, ok)
		}
	}
	if len(src.recent) != 0 {
		t.Fatalf("small pools must not track a recent window")
	}
}

func TestCorpusSourceEmpty(t *testing.T) {
	src := NewCorpusSourceRand(nil, rand.New(rand.NewSource(1)))
	if _, ok := src.Next(); ok {
		t.Fatalf("expected no content")
	}
}

func TestCorpusSourceRecentWindowBounded(t *testing.T) {
	src := NewCorpusSourceRand(corpusOf(20), rand.New(rand.NewSource(1)))
	for i := 0; i < 40; i++ {
		text, ok := src.Next()
		if !ok {
			t.Fatalf("expected content on pick %d", i)
		}
		if len(src.recent) > recentWindowSize {
			t.Fatalf("recent window grew to %d", len(src.recent))
		}
		if src.recent[len(src.recent)-1] != text {
			t.Fatalf("last pick must be remembered")
		}
	}
}

func TestCorpusSourceAcceptsAfterMaxResamples(t *testing.T) {
	pool := corpusOf(11)
	src := NewCorpusSourceRand(pool, rand.New(rand.NewSource(1)))
	// Saturate the window so every candidate counts as recent and the
	// soft constraint has to give up.
	src.recent = append([]string(nil), pool...)

	text, ok := src.Next()
	if !ok {
		t.Fatalf("a saturated window must still yield a sentence")
	}
	found := false
	for _, s := range pool {
		if s == text {
			found = true
		}
	}
	if !found {
		t.Fatalf("pick %q is not from the pool", text)
	}
}

func TestCorpusSourceBatchSize(t *testing.T) {
	src := NewCorpusSource(corpusOf(3))
	if got := src.BatchSize(); got != 15 {
		t.Fatalf("expected batch size 15, got %d", got)
	}
}

func TestFolderSourceOrderAndWrap(t *testing.T) {
	src := NewFolderSource([]string{"a", "b", "c"})
	want := []string{"a", "b", "c", "a", "b"}
	for i, w := range want {
		got, ok := src.Next()
		if !ok || got != w {
			t.Fatalf("pick %d: expected %q, got %q ok=%v", i, w, got, ok)
		}
	}
	if got := src.BatchSize(); got != 3 {
		t.Fatalf("expected batch size 3, got %d", got)
	}
}

func TestFolderSourceRewind(t *testing.T) {
	src := NewFolderSource([]string{"a", "b"})
	if _, ok := src.Next(); !ok {
		t.Fatalf("expected content")
	}
	src.Rewind()
	got, _ := src.Next()
	if got != "a" {
		t.Fatalf("expected the first sentence after rewind, got %q", got)
	}
}

func TestFolderSourceEmpty(t *testing.T) {
	src := NewFolderSource(nil)
	if _, ok := src.Next(); ok {
		t.Fatalf("expected no content")
	}
	if got := src.BatchSize(); got != 0 {
		t.Fatalf("expected batch size 0, got %d", got)
	}
}
