// Package history implements the call log: an ordered, size-capped list of
// dialed calls persisted as a single JSON array, oldest first.
package history

import (
	"sort"
	"time"

	"rotary-phone/internal/config"
	"rotary-phone/internal/docstore"

	"go.uber.org/zap"
)

// Store is the call history backed by one JSON file.
// The retention limit and the auto-save switch are read from the
// configured Source on every Append.
type Store struct {
	path   string
	cfg    config.Source
	logger *zap.Logger
	now    func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the function used to timestamp appended entries and to
// evaluate day windows.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New creates a history store for the document at path.
func New(path string, cfg config.Source, logger *zap.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{
		path:   path,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the location of the history document.
func (s *Store) Path() string {
	return s.path
}

// Load reads the history document and reports how the read went.
// A corrupt or unreadable document yields an empty history.
func (s *Store) Load() docstore.Result[[]Entry] {
	res := docstore.Load(s.path, func() []Entry { return []Entry{} })
	if res.Value == nil {
		res.Value = []Entry{}
	}
	return res
}

// Append records a call to number, stamped with the current time, and
// trims the log to the configured limit by dropping the oldest entries.
// It does nothing and returns false when auto_save_history is off.
func (s *Store) Append(number, formatted string) (bool, error) {
	settings := s.cfg.Settings()
	if !settings.AutoSaveHistory {
		s.logger.Debug("history disabled, call not recorded", zap.String("number", number))
		return false, nil
	}

	entries := append(s.load(), Entry{
		Number:    number,
		Formatted: formatted,
		Timestamp: FormatTimestamp(s.now()),
	})
	if limit := settings.HistoryLimit; limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	if err := s.save(entries); err != nil {
		return false, err
	}
	return true, nil
}

// Recent returns up to limit entries, newest first. Ordering is by the
// timestamp string, descending and stable; entries without a timestamp
// sort last.
func (s *Store) Recent(limit int) []Entry {
	if limit <= 0 {
		return []Entry{}
	}
	entries := SortNewestFirst(s.load())
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// WithinDays returns the entries whose timestamp falls within the last
// days days, newest first. Entries with unparsable timestamps are skipped.
func (s *Store) WithinDays(days int) []Entry {
	now := s.now()
	cutoff := now.Add(-time.Duration(days) * 24 * time.Hour)

	var recent []Entry
	for _, e := range s.load() {
		t, ok := e.Time()
		if !ok {
			continue
		}
		if t.Before(cutoff) || t.After(now) {
			continue
		}
		recent = append(recent, e)
	}
	return SortNewestFirst(recent)
}

// Entries returns every entry in stored (append) order.
func (s *Store) Entries() []Entry {
	return s.load()
}

// Count returns the number of stored entries.
func (s *Store) Count() int {
	return len(s.load())
}

// Clear removes every entry.
func (s *Store) Clear() error {
	return s.save([]Entry{})
}

// Replace overwrites the whole history with entries, in the given order.
// The retention limit is not applied.
func (s *Store) Replace(entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	return s.save(entries)
}

// SortNewestFirst returns a copy of entries ordered by timestamp string,
// descending. Equal timestamps keep their relative order.
func SortNewestFirst(entries []Entry) []Entry {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp > sorted[j].Timestamp
	})
	return sorted
}

func (s *Store) load() []Entry {
	res := s.Load()
	if res.Outcome.Recovered() {
		s.logger.Warn("history file unusable, proceeding with empty history",
			zap.String("path", s.path),
			zap.Stringer("outcome", res.Outcome),
			zap.Error(res.Err))
	}
	return res.Value
}

func (s *Store) save(entries []Entry) error {
	return docstore.Save(s.path, entries)
}
