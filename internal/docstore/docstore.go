// Package docstore loads and saves a single JSON document on the local
// filesystem. It is the persistence primitive shared by the contact,
// history, and config stores: each of them owns exactly one document.
//
// Loading never fails. A missing, empty, unreadable, or malformed document
// yields the caller's empty value together with an Outcome describing what
// happened, so that the decision to mask corruption stays visible to callers
// and tests instead of being buried in control flow.
package docstore

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Outcome describes how a document load ended.
type Outcome int

const (
	// Loaded means the document was read and decoded successfully.
	Loaded Outcome = iota
	// Missing means the file does not exist yet.
	Missing
	// Empty means the file exists but has no content.
	Empty
	// Corrupt means the file could not be decoded as the expected shape.
	Corrupt
	// Unreadable means the file exists but could not be read.
	Unreadable
)

func (o Outcome) String() string {
	switch o {
	case Loaded:
		return "loaded"
	case Missing:
		return "missing"
	case Empty:
		return "empty"
	case Corrupt:
		return "corrupt"
	case Unreadable:
		return "unreadable"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Recovered reports whether the load fell back to an empty value because
// the document on disk could not be used.
func (o Outcome) Recovered() bool {
	return o == Corrupt || o == Unreadable
}

// Result is the value produced by Load along with its Outcome.
// Err holds the underlying read or decode error when Outcome is Corrupt or
// Unreadable, and is nil otherwise.
type Result[T any] struct {
	Value   T
	Outcome Outcome
	Err     error
}

// Load reads path and decodes it as JSON into a value of type T.
// empty constructs the value returned for every outcome other than Loaded,
// and is also used as the decode target so that a JSON null still yields a
// usable value.
func Load[T any](path string, empty func() T) Result[T] {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Result[T]{Value: empty(), Outcome: Missing}
		}
		return Result[T]{Value: empty(), Outcome: Unreadable, Err: err}
	}
	if len(raw) == 0 {
		return Result[T]{Value: empty(), Outcome: Empty}
	}

	v := empty()
	if err := json.Unmarshal(raw, &v); err != nil {
		return Result[T]{Value: empty(), Outcome: Corrupt, Err: fmt.Errorf("parsing %s: %w", filepath.Base(path), err)}
	}
	if isNil(v) {
		v = empty()
	}
	return Result[T]{Value: v, Outcome: Loaded}
}

// Save encodes v as indented JSON and writes it to path atomically,
// creating the parent directory if needed.
func Save(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", filepath.Base(path), err)
	}
	data = append(data, '\n')
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	if err := AtomicWrite(path, data); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	return nil
}

// AtomicWrite writes data to a file atomically via a temporary file and rename.
func AtomicWrite(path string, data []byte) error {
	randBytes := make([]byte, 8)
	if _, err := rand.Read(randBytes); err != nil {
		return fmt.Errorf("generating random suffix: %w", err)
	}
	tmp := path + ".tmp." + hex.EncodeToString(randBytes)

	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp) // best effort cleanup
		return err
	}
	return nil
}

// isNil reports whether v is a nil map or slice, which is what decoding a
// JSON null into one produces.
func isNil(v any) bool {
	switch x := v.(type) {
	case map[string]string:
		return x == nil
	case map[string]any:
		return x == nil
	default:
		return false
	}
}
