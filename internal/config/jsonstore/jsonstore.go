// Package jsonstore implements config.Store backed by a flat JSON file.
//
// The file is a single JSON object mapping setting names to values. Known
// keys are typed by config.Load; unknown keys are kept verbatim so that
// free-form settings survive a round trip. encoding/json writes map keys in
// sorted order, keeping the output deterministic and diff-friendly.
package jsonstore

import (
	"rotary-phone/internal/config"
	"rotary-phone/internal/docstore"

	"go.uber.org/zap"
)

// JSONStore implements config.Store using a JSON file on disk.
type JSONStore struct {
	path      string
	data      map[string]any
	overrides map[string]any // in-memory only, never persisted
	outcome   docstore.Outcome
	logger    *zap.Logger
}

// New creates a JSONStore that reads from and writes to path.
// If the file exists it is loaded; if it does not exist the store starts
// empty and the file is created on the first Set call. A malformed file is
// treated as empty and logged; it is overwritten on the next Set.
func New(path string, logger *zap.Logger) *JSONStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &JSONStore{
		path:      path,
		overrides: make(map[string]any),
		logger:    logger,
	}
	s.readFromDisk()
	return s
}

// SetLogger replaces the logger used to report an unusable settings file on
// later reads. A nil logger discards those reports.
func (s *JSONStore) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s.logger = logger
}

// Path returns the location of the settings file.
func (s *JSONStore) Path() string {
	return s.path
}

// Outcome reports how the most recent read of the settings file ended.
func (s *JSONStore) Outcome() docstore.Outcome {
	return s.outcome
}

// Get returns the value for key and whether it was found.
func (s *JSONStore) Get(key string) (any, bool) {
	if v, ok := s.overrides[key]; ok {
		return v, true
	}
	v, ok := s.data[key]
	return v, ok
}

// Set writes key=value and persists to disk.
func (s *JSONStore) Set(key string, value any) error {
	return s.modify(func() {
		s.data[key] = value
	})
}

// SetInMemory writes key=value without persisting. The override shadows
// the stored value for the lifetime of the store.
func (s *JSONStore) SetInMemory(key string, value any) {
	s.overrides[key] = value
}

// Unset removes key and persists to disk. Any in-memory override for the
// key is dropped as well.
func (s *JSONStore) Unset(key string) error {
	delete(s.overrides, key)
	return s.modify(func() {
		delete(s.data, key)
	})
}

// All returns a copy of all key-value pairs, overrides included.
func (s *JSONStore) All() map[string]any {
	out := make(map[string]any, len(s.data)+len(s.overrides))
	for k, v := range s.data {
		out[k] = v
	}
	for k, v := range s.overrides {
		out[k] = v
	}
	return out
}

// Settings returns the typed settings with defaults filled in.
func (s *JSONStore) Settings() config.Settings {
	return config.Load(s)
}

// modify re-reads the file (picking up edits made since the store was
// opened), calls fn to mutate s.data, then writes s.data back to disk.
func (s *JSONStore) modify(fn func()) error {
	s.readFromDisk()
	fn()
	return docstore.Save(s.path, s.data)
}

// readFromDisk reloads s.data from the settings file.
func (s *JSONStore) readFromDisk() {
	res := docstore.Load(s.path, func() map[string]any { return make(map[string]any) })
	if res.Outcome.Recovered() {
		s.logger.Warn("settings file unusable, proceeding with defaults",
			zap.String("path", s.path),
			zap.Stringer("outcome", res.Outcome),
			zap.Error(res.Err))
	}
	s.data = res.Value
	s.outcome = res.Outcome
}

// Compile-time checks.
var (
	_ config.Store  = (*JSONStore)(nil)
	_ config.Source = (*JSONStore)(nil)
)
