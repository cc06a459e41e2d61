// Package settings persists last-used trainer preferences.
package settings

import (
	"context"

	"github.com/verte-zerg/taja/internal/model"
	"github.com/verte-zerg/taja/internal/storage"
)

// Defaults applied when a preference is missing or unreadable.
const (
	DefaultLanguage     = model.LangKorean
	DefaultPracticeType = model.PracticeShort
	DefaultTargetWPM    = 100
)

// Settings are the persisted last-used preferences.
type Settings struct {
	Language      model.Language
	PracticeType  model.PracticeType
	UseCustomMode bool
	TargetWPM     int
}

// Load reads preferences from the store, substituting the documented
// default for any key that is missing or malformed.
func Load(ctx context.Context, kv storage.KV) (Settings, error) {
	s := Settings{
		Language:     DefaultLanguage,
		PracticeType: DefaultPracticeType,
		TargetWPM:    DefaultTargetWPM,
	}

	var lang string
	ok, err := storage.ReadJSON(ctx, kv, storage.KeyLanguage, &lang)
	if err != nil {
		return s, err
	}
	if ok {
		if parsed, perr := model.ParseLanguage(lang); perr == nil {
			s.Language = parsed
		}
	}

	var practice string
	ok, err = storage.ReadJSON(ctx, kv, storage.KeyPracticeType, &practice)
	if err != nil {
		return s, err
	}
	if ok {
		if parsed, perr := model.ParsePracticeType(practice); perr == nil {
			s.PracticeType = parsed
		}
	}

	var custom bool
	ok, err = storage.ReadJSON(ctx, kv, storage.KeyUseCustomMode, &custom)
	if err != nil {
		return s, err
	}
	if ok {
		s.UseCustomMode = custom
	}

	var target int
	ok, err = storage.ReadJSON(ctx, kv, storage.KeyTargetWPM, &target)
	if err != nil {
		return s, err
	}
	if ok && target >= 1 {
		s.TargetWPM = target
	}

	return s, nil
}

// Save writes all preferences back, one key per value.
func Save(ctx context.Context, kv storage.KV, s Settings) error {
	if err := storage.WriteJSON(ctx, kv, storage.KeyLanguage, string(s.Language)); err != nil {
		return err
	}
	if err := storage.WriteJSON(ctx, kv, storage.KeyPracticeType, string(s.PracticeType)); err != nil {
		return err
	}
	if err := storage.WriteJSON(ctx, kv, storage.KeyUseCustomMode, s.UseCustomMode); err != nil {
		return err
	}
	return storage.WriteJSON(ctx, kv, storage.KeyTargetWPM, s.TargetWPM)
}
