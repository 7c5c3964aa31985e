// Package transfer exports the contact book and call history to a single
// document and imports such documents back, either merging with or
// replacing local data.
package transfer

import (
	"fmt"
	"os"

	"rotary-phone/internal/docstore"
	"rotary-phone/internal/history"

	"go.uber.org/zap"
)

// ContactStore is the part of the contact book used by the engine.
type ContactStore interface {
	List() map[string]string
	Replace(contacts map[string]string) error
}

// HistoryStore is the part of the call history used by the engine.
type HistoryStore interface {
	Entries() []history.Entry
	Replace(entries []history.Entry) error
}

// ImportStats reports what an import changed.
type ImportStats struct {
	ContactsAdded       int `json:"contacts_added"`
	ContactsSkipped     int `json:"contacts_skipped"`
	HistoryEntriesAdded int `json:"history_entries_added"`
}

// Engine moves data between the stores and export documents. It holds no
// data itself; every call works on fresh snapshots.
type Engine struct {
	contacts ContactStore
	history  HistoryStore
	logger   *zap.Logger
}

// New creates an Engine over the given stores.
func New(contacts ContactStore, history HistoryStore, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{contacts: contacts, history: history, logger: logger}
}

// Export snapshots the contact book and, if includeHistory is set, the
// call history.
func (e *Engine) Export(includeHistory bool) Document {
	doc := Document{Contacts: e.contacts.List()}
	if doc.Contacts == nil {
		doc.Contacts = map[string]string{}
	}
	if includeHistory {
		doc.History = e.history.Entries()
		if doc.History == nil {
			doc.History = []history.Entry{}
		}
	}
	return doc
}

// Import applies doc to the stores.
//
// With merge set, contacts whose name already exists locally are skipped,
// and history entries whose merge key (number+timestamp) is already present,
// locally or earlier in doc, are dropped without being counted. Without
// merge, each collection present in doc replaces the local one outright.
// A collection absent from doc is left untouched. The history retention
// limit is not applied.
func (e *Engine) Import(doc Document, merge bool) (ImportStats, error) {
	var st ImportStats

	if doc.Contacts != nil {
		existing := map[string]string{}
		if merge {
			existing = e.contacts.List()
		}
		for name, number := range doc.Contacts {
			if _, exists := existing[name]; merge && exists {
				st.ContactsSkipped++
				continue
			}
			existing[name] = number
			st.ContactsAdded++
		}
		if err := e.contacts.Replace(existing); err != nil {
			return st, fmt.Errorf("saving contacts: %w", err)
		}
	}

	if doc.History != nil {
		var merged []history.Entry
		if merge {
			merged = e.history.Entries()
			seen := make(map[string]bool, len(merged)+len(doc.History))
			for _, entry := range merged {
				seen[entry.MergeKey()] = true
			}
			for _, entry := range doc.History {
				key := entry.MergeKey()
				if seen[key] {
					continue
				}
				seen[key] = true
				merged = append(merged, entry)
				st.HistoryEntriesAdded++
			}
		} else {
			merged = doc.History
			st.HistoryEntriesAdded = len(doc.History)
		}
		if err := e.history.Replace(merged); err != nil {
			return st, fmt.Errorf("saving history: %w", err)
		}
	}

	e.logger.Info("import complete",
		zap.Bool("merge", merge),
		zap.Int("contacts_added", st.ContactsAdded),
		zap.Int("contacts_skipped", st.ContactsSkipped),
		zap.Int("history_entries_added", st.HistoryEntriesAdded))
	return st, nil
}

// ExportFile writes an export document to path, as YAML if the path ends
// in .yaml or .yml and as JSON otherwise.
func (e *Engine) ExportFile(path string, includeHistory bool) error {
	doc := e.Export(includeHistory)
	if err := WriteFile(path, doc); err != nil {
		return err
	}
	e.logger.Info("export complete",
		zap.String("path", path),
		zap.Int("contacts", len(doc.Contacts)),
		zap.Int("history", len(doc.History)))
	return nil
}

// ImportFile reads the document at path and imports it.
func (e *Engine) ImportFile(path string, merge bool) (ImportStats, error) {
	doc, err := ReadFile(path)
	if err != nil {
		return ImportStats{}, err
	}
	return e.Import(doc, merge)
}

// ReadFile reads and validates an export document. Structural problems are
// reported as errors wrapping ErrMalformedDocument.
func ReadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("reading %s: %w", path, err)
	}
	doc, err := Decode(data, FormatForPath(path))
	if err != nil {
		return Document{}, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// WriteFile encodes doc according to the path's extension and writes it
// atomically.
func WriteFile(path string, doc Document) error {
	data, err := Encode(doc, FormatForPath(path))
	if err != nil {
		return err
	}
	if err := docstore.AtomicWrite(path, data); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
