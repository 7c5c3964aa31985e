package config

// Store provides key-value access to the settings document.
// Values are JSON-compatible: float64, bool, string, or nil, plus whatever
// free-form values callers choose to persist under unknown keys.
type Store interface {
	// Get returns the value for key and whether it was found.
	Get(key string) (any, bool)

	// Set writes key=value to the store and persists to disk.
	Set(key string, value any) error

	// SetInMemory writes key=value to the in-memory store without persisting.
	// Use this for runtime overrides (env vars) that should not be
	// written back to the settings file.
	SetInMemory(key string, value any)

	// Unset removes key from the store and persists to disk. A known key
	// reverts to its default on the next load.
	Unset(key string) error

	// All returns a copy of all key-value pairs.
	All() map[string]any
}
