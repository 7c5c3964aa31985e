package config

import "os"

// Environment variable names for rotary phone configuration.
const (
	EnvDir          = "ROTARY_PHONE_DIR"     // Path to the data directory
	EnvHistoryLimit = "ROTARY_HISTORY_LIMIT" // Override history_limit
	EnvDelay        = "ROTARY_DELAY"         // Override default_delay
	EnvJSON         = "ROTARY_JSON"          // Enable JSON output ("1" or "true")
)

// ApplyEnvOverrides checks ROTARY_HISTORY_LIMIT and ROTARY_DELAY and
// overrides the corresponding settings in memory. These overrides are not
// persisted to the settings file.
func ApplyEnvOverrides(s Store) {
	if limit := os.Getenv(EnvHistoryLimit); limit != "" {
		s.SetInMemory(KeyHistoryLimit, ParseValue(limit).Interface())
	}
	if delay := os.Getenv(EnvDelay); delay != "" {
		s.SetInMemory(KeyDefaultDelay, ParseValue(delay).Interface())
	}
}

// EnvBool reports whether the named environment variable is "1" or "true".
func EnvBool(name string) bool {
	v := os.Getenv(name)
	return v == "1" || v == "true"
}
