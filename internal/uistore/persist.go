package uistore

import (
	"context"
	"encoding/json"
	"time"
)

// Storage keys.
const (
	StorageKey     = "UI_STORE"
	LegacyThemeKey = "theme"
)

const storageTimeout = 2 * time.Second

// Prefs is the persisted subset of the store.
type Prefs struct {
	TOCVisible bool  `json:"tocVisible"`
	Theme      Theme `json:"theme"`
}

// DefaultPrefs returns the values used when nothing usable is stored.
func DefaultPrefs() Prefs {
	return Prefs{Theme: ThemeLight}
}

// JSON encodes p in the stored format.
func (p Prefs) JSON() string {
	data, err := json.Marshal(p)
	if err != nil {
		return "{}"
	}
	return string(data)
}

// ParsePrefs decodes a stored payload. Malformed JSON reads as an empty
// object; missing keys, values of the wrong type and unknown themes fall back
// to defaults individually.
func ParsePrefs(raw string) Prefs {
	prefs := DefaultPrefs()

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return prefs
	}
	if v, ok := fields["tocVisible"]; ok {
		var toc bool
		if err := json.Unmarshal(v, &toc); err == nil {
			prefs.TOCVisible = toc
		}
	}
	if v, ok := fields["theme"]; ok {
		var theme Theme
		if err := json.Unmarshal(v, &theme); err == nil && theme.Valid() {
			prefs.Theme = theme
		}
	}
	return prefs
}

// Prefs returns the current persisted subset.
func (s *Store) Prefs() Prefs {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Prefs{TOCVisible: s.tocVisible, Theme: s.theme}
}

// AsJSON returns the persistence payload, exactly {"tocVisible":…,"theme":…}.
func (s *Store) AsJSON() string {
	return s.Prefs().JSON()
}

func (s *Store) rehydrate() Prefs {
	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	raw, ok, err := s.storage.Get(ctx, StorageKey)
	if err != nil {
		s.logger.Debug("ui state rehydrate skipped", "key", StorageKey, "error", err)
		return DefaultPrefs()
	}
	if !ok || raw == "" {
		raw = "{}"
	}
	return ParsePrefs(raw)
}

func (s *Store) persist() {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()
	s.write(StorageKey, s.AsJSON())
}

func (s *Store) persistLegacyTheme() {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()
	s.write(LegacyThemeKey, string(s.Theme()))
}

func (s *Store) write(key, value string) {
	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	if err := s.storage.Set(ctx, key, value); err != nil {
		s.logger.Debug("ui state save skipped", "key", key, "error", err)
	}
}
