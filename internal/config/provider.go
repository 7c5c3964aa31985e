package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// DirName is the data directory created under the user's home directory.
const DirName = ".rotary_phone"

// File names of the backing documents inside the data directory.
const (
	ConfigFileName   = "config.json"
	ContactsFileName = "contacts.json"
	HistoryFileName  = "history.json"
)

// Paths captures resolved locations of the backing documents.
type Paths struct {
	Dir          string // data directory
	ConfigFile   string // <dir>/config.json
	ContactsFile string // <dir>/contacts.json
	HistoryFile  string // <dir>/history.json
}

// PathsFor returns the document locations inside dir.
func PathsFor(dir string) Paths {
	return Paths{
		Dir:          dir,
		ConfigFile:   filepath.Join(dir, ConfigFileName),
		ContactsFile: filepath.Join(dir, ContactsFileName),
		HistoryFile:  filepath.Join(dir, HistoryFileName),
	}
}

// ResolvePaths resolves the data directory.
// Discovery order: explicit dir > ROTARY_PHONE_DIR env var > $HOME/.rotary_phone.
// The directory is created if it does not exist.
func ResolvePaths(dir string) (Paths, error) {
	if dir == "" {
		dir = os.Getenv(EnvDir)
	}
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Paths{}, fmt.Errorf("cannot determine home directory: %w", err)
		}
		dir = filepath.Join(home, DirName)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return Paths{}, fmt.Errorf("resolving path: %w", err)
	}

	info, err := os.Stat(abs)
	switch {
	case err == nil && !info.IsDir():
		return Paths{}, fmt.Errorf("data path is not a directory: %s", abs)
	case os.IsNotExist(err):
		if err := os.MkdirAll(abs, 0755); err != nil {
			return Paths{}, fmt.Errorf("creating data directory: %w", err)
		}
	case err != nil:
		return Paths{}, fmt.Errorf("cannot access data directory %s: %w", abs, err)
	}

	return PathsFor(abs), nil
}
