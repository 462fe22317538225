package engine

import (
	"strings"
)

// Setting is one key:type:value line of a connection profile.
type Setting struct {
	Key   string
	Type  string
	Value string
}

func (s Setting) String() string {
	return s.Key + ":" + s.Type + ":" + s.Value
}

// ParseSettingLine reports whether line has the key:type:value shape and, if
// so, returns the setting it declares. The value is everything after the
// second colon, so values may themselves contain colons.
func ParseSettingLine(line string) (Setting, bool) {
	trimmed := strings.TrimSpace(line)
	key, rest, ok := strings.Cut(trimmed, ":")
	if !ok || key == "" {
		return Setting{}, false
	}
	typ, value, ok := strings.Cut(rest, ":")
	if !ok {
		return Setting{}, false
	}
	return Setting{Key: key, Type: typ, Value: value}, true
}

// SettingsStore is the append-only log of settings written during one render.
// Re-declaring a key shadows earlier declarations instead of replacing them.
type SettingsStore struct {
	entries []Setting
}

// NewSettingsStore creates an empty store.
func NewSettingsStore() *SettingsStore {
	return &SettingsStore{}
}

// Append records a setting after the line declaring it has been emitted.
func (s *SettingsStore) Append(setting Setting) {
	s.entries = append(s.entries, setting)
}

// LookupLatest returns the most recently appended setting whose key matches,
// ignoring case as connection profile keys do.
func (s *SettingsStore) LookupLatest(key string) (Setting, bool) {
	for i := len(s.entries) - 1; i >= 0; i-- {
		if strings.EqualFold(s.entries[i].Key, key) {
			return s.entries[i], true
		}
	}
	return Setting{}, false
}

// Len returns the number of settings written so far.
func (s *SettingsStore) Len() int {
	return len(s.entries)
}

// All returns a copy of the settings in emission order.
func (s *SettingsStore) All() []Setting {
	out := make([]Setting, len(s.entries))
	copy(out, s.entries)
	return out
}
