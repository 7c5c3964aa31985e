package history

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher follows the history document and reports calls recorded after it
// was created, including calls recorded by other processes.
type Watcher struct {
	store *Store
	fsw   *fsnotify.Watcher
	seen  map[string]bool
}

// NewWatcher starts watching the directory that holds the history document.
// Entries already stored are not reported.
func (s *Store) NewWatcher() (*Watcher, error) {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating directory: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	// Saves replace the file by rename, so the directory is watched rather
	// than the file itself.
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}

	return &Watcher{
		store: s,
		fsw:   fsw,
		seen:  snapshot(s.load()),
	}, nil
}

// Run calls fn for each new entry, oldest first, until ctx is done or fn
// returns an error. The watcher is closed when Run returns.
func (w *Watcher) Run(ctx context.Context, fn func(Entry) error) error {
	defer w.fsw.Close()

	name := filepath.Base(w.store.path)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if err := w.deliver(fn); err != nil {
				return err
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.store.logger.Warn("history watcher error", zap.Error(err))
		}
	}
}

// Close stops the watcher without running it.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// deliver reloads the document and passes on entries absent from the
// previous snapshot.
func (w *Watcher) deliver(fn func(Entry) error) error {
	entries := w.store.load()
	for _, e := range entries {
		if w.seen[watchKey(e)] {
			continue
		}
		if err := fn(e); err != nil {
			return err
		}
	}
	w.seen = snapshot(entries)
	return nil
}

func snapshot(entries []Entry) map[string]bool {
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		seen[watchKey(e)] = true
	}
	return seen
}

func watchKey(e Entry) string {
	return e.Number + "\x00" + e.Timestamp
}
