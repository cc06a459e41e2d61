// Package board maintains the local leaderboards.
//
// Entries live newest-first in the key-value store. Recording keeps
// the most recent entries up to capacity regardless of score; queries
// filter, sort by WPM, and cap the result.
package board

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/verte-zerg/taja/internal/model"
	"github.com/verte-zerg/taja/internal/storage"
)

const (
	maxEntries   = 100
	maxQueryRows = 50
)

// Filter selects which entries a query returns.
type Filter string

// Query filters. Korean matches entries written before languages were
// tracked.
const (
	FilterAll     Filter = "all"
	FilterKorean  Filter = "korean"
	FilterEnglish Filter = "english"
	FilterCustom  Filter = "custom"
)

// Store is the sentence-practice leaderboard.
type Store struct {
	kv storage.KV
	mu sync.Mutex
}

// NewStore returns a leaderboard over kv.
func NewStore(kv storage.KV) *Store {
	return &Store{kv: kv}
}

// Record prepends entry, evicting the oldest entries beyond capacity.
// A missing ID is filled in.
func (s *Store) Record(ctx context.Context, entry model.LeaderboardEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	var entries []model.LeaderboardEntry
	if _, err := storage.ReadJSON(ctx, s.kv, storage.KeyLeaderboard, &entries); err != nil {
		return err
	}
	entries = append([]model.LeaderboardEntry{entry}, entries...)
	if len(entries) > maxEntries {
		entries = entries[:maxEntries]
	}
	return storage.WriteJSON(ctx, s.kv, storage.KeyLeaderboard, entries)
}

// Query returns the filtered entries sorted by WPM descending, capped
// at the display limit. Equal speeds keep the newer entry first.
func (s *Store) Query(ctx context.Context, filter Filter) ([]model.LeaderboardEntry, error) {
	var entries []model.LeaderboardEntry
	if _, err := storage.ReadJSON(ctx, s.kv, storage.KeyLeaderboard, &entries); err != nil {
		return nil, err
	}
	var out []model.LeaderboardEntry
	for _, e := range entries {
		if matches(filter, e) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].WPM > out[j].WPM
	})
	if len(out) > maxQueryRows {
		out = out[:maxQueryRows]
	}
	return out, nil
}

func matches(filter Filter, e model.LeaderboardEntry) bool {
	switch filter {
	case FilterKorean:
		return e.Mode == model.ModeNormal && (e.Language == model.LangKorean || e.Language == "")
	case FilterEnglish:
		return e.Mode == model.ModeNormal && e.Language == model.LangEnglish
	case FilterCustom:
		return e.Mode == model.ModeCustom
	}
	return true
}

// DrillStore is the word-drill leaderboard.
type DrillStore struct {
	kv storage.KV
	mu sync.Mutex
}

// NewDrillStore returns a drill leaderboard over kv.
func NewDrillStore(kv storage.KV) *DrillStore {
	return &DrillStore{kv: kv}
}

// Record prepends entry, evicting the oldest entries beyond capacity.
// A missing ID is filled in.
func (s *DrillStore) Record(ctx context.Context, entry model.DrillEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	var entries []model.DrillEntry
	if _, err := storage.ReadJSON(ctx, s.kv, storage.KeyDrillLeaderboard, &entries); err != nil {
		return err
	}
	entries = append([]model.DrillEntry{entry}, entries...)
	if len(entries) > maxEntries {
		entries = entries[:maxEntries]
	}
	return storage.WriteJSON(ctx, s.kv, storage.KeyDrillLeaderboard, entries)
}

// Query returns the filtered drill entries sorted by WPM descending,
// capped at the display limit. Drills have no custom mode, so that
// filter matches nothing.
func (s *DrillStore) Query(ctx context.Context, filter Filter) ([]model.DrillEntry, error) {
	var entries []model.DrillEntry
	if _, err := storage.ReadJSON(ctx, s.kv, storage.KeyDrillLeaderboard, &entries); err != nil {
		return nil, err
	}
	var out []model.DrillEntry
	for _, e := range entries {
		if matchesDrill(filter, e) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].WPM > out[j].WPM
	})
	if len(out) > maxQueryRows {
		out = out[:maxQueryRows]
	}
	return out, nil
}

func matchesDrill(filter Filter, e model.DrillEntry) bool {
	switch filter {
	case FilterKorean:
		return e.Language == model.LangKorean || e.Language == ""
	case FilterEnglish:
		return e.Language == model.LangEnglish
	case FilterCustom:
		return false
	}
	return true
}
