// Package contacts implements the contact book: a name to number mapping
// persisted as a single JSON object.
//
// Every operation reads the whole document from disk, and every mutation
// writes the whole document back. Concurrent writers are not detected; the
// last write wins.
package contacts

import (
	"errors"
	"sort"
	"strings"

	"rotary-phone/internal/docstore"
	"rotary-phone/internal/phone"

	"go.uber.org/zap"
)

// ErrNotFound reports a lookup of a contact name that is not in the book.
// The store itself answers such lookups with a false result; callers that
// need an error wrap this one.
var ErrNotFound = errors.New("contact not found")

// Store is the contact book backed by one JSON file.
// Names are unique and case-sensitive. Numbers are persisted exactly as
// supplied by the caller.
type Store struct {
	path   string
	logger *zap.Logger
}

// New creates a contact store for the document at path.
// The file is created on the first mutation.
func New(path string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{path: path, logger: logger}
}

// Path returns the location of the contacts document.
func (s *Store) Path() string {
	return s.path
}

// Load reads the contacts document and reports how the read went.
// A corrupt or unreadable document yields an empty mapping.
func (s *Store) Load() docstore.Result[map[string]string] {
	return docstore.Load(s.path, func() map[string]string { return make(map[string]string) })
}

// Add stores name→number. If name already exists and force is false the
// store is left untouched and Add returns false.
func (s *Store) Add(name, number string, force bool) (bool, error) {
	contacts := s.load()
	if _, exists := contacts[name]; exists && !force {
		s.logger.Debug("contact already exists", zap.String("name", name))
		return false, nil
	}
	contacts[name] = number
	if err := s.save(contacts); err != nil {
		return false, err
	}
	return true, nil
}

// Get returns the number stored for name.
func (s *Store) Get(name string) (string, bool) {
	number, ok := s.load()[name]
	return number, ok
}

// Update replaces the number of an existing contact. It returns false
// without creating anything if name is not present.
func (s *Store) Update(name, number string) (bool, error) {
	contacts := s.load()
	if _, exists := contacts[name]; !exists {
		return false, nil
	}
	contacts[name] = number
	if err := s.save(contacts); err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes name. It returns false if name is not present.
func (s *Store) Delete(name string) (bool, error) {
	contacts := s.load()
	if _, exists := contacts[name]; !exists {
		return false, nil
	}
	delete(contacts, name)
	if err := s.save(contacts); err != nil {
		return false, err
	}
	return true, nil
}

// List returns a snapshot of every contact.
func (s *Store) List() map[string]string {
	return s.load()
}

// Search returns the contacts whose name contains substr, ignoring case.
func (s *Store) Search(substr string) map[string]string {
	needle := strings.ToLower(substr)
	out := make(map[string]string)
	for name, number := range s.load() {
		if strings.Contains(strings.ToLower(name), needle) {
			out[name] = number
		}
	}
	return out
}

// FindByNumber returns, in sorted order, the names whose stored number
// matches number once formatting characters are removed from both.
func (s *Store) FindByNumber(number string) []string {
	want := phone.Normalize(number)
	var names []string
	for name, stored := range s.load() {
		if phone.Normalize(stored) == want {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Count returns the number of contacts.
func (s *Store) Count() int {
	return len(s.load())
}

// Replace overwrites the whole contact book with contacts.
func (s *Store) Replace(contacts map[string]string) error {
	if contacts == nil {
		contacts = make(map[string]string)
	}
	return s.save(contacts)
}

// SortedNames returns the names in contacts in ascending order.
func SortedNames(contacts map[string]string) []string {
	names := make([]string, 0, len(contacts))
	for name := range contacts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Store) load() map[string]string {
	res := s.Load()
	if res.Outcome.Recovered() {
		s.logger.Warn("contacts file unusable, proceeding with empty contact book",
			zap.String("path", s.path),
			zap.Stringer("outcome", res.Outcome),
			zap.Error(res.Err))
	}
	return res.Value
}

func (s *Store) save(contacts map[string]string) error {
	return docstore.Save(s.path, contacts)
}
