package config

// Known settings keys.
const (
	KeyDefaultDelay    = "default_delay"
	KeyHistoryLimit    = "history_limit"
	KeyAutoSaveHistory = "auto_save_history"
	KeyMinNumberLength = "min_number_length"
	KeyMaxNumberLength = "max_number_length"
	KeyEnableLogging   = "enable_logging"
)

// KnownKeys lists the settings keys with compiled-in defaults, in display order.
var KnownKeys = []string{
	KeyDefaultDelay,
	KeyHistoryLimit,
	KeyAutoSaveHistory,
	KeyMinNumberLength,
	KeyMaxNumberLength,
	KeyEnableLogging,
}

// DefaultValues returns the default settings as a key-value map, using the
// same value types a decoded settings document produces.
func DefaultValues() map[string]any {
	d := Default()
	return map[string]any{
		KeyDefaultDelay:    d.DefaultDelay,
		KeyHistoryLimit:    float64(d.HistoryLimit),
		KeyAutoSaveHistory: d.AutoSaveHistory,
		KeyMinNumberLength: float64(d.MinNumberLength),
		KeyMaxNumberLength: float64(d.MaxNumberLength),
		KeyEnableLogging:   d.EnableLogging,
	}
}

// WithDefaults returns all values in s with every missing known key filled
// from its default. Nothing is written back to s.
func WithDefaults(s Store) map[string]any {
	all := s.All()
	for k, v := range DefaultValues() {
		if _, exists := all[k]; !exists {
			all[k] = v
		}
	}
	return all
}

// IsKnownKey reports whether key has a compiled-in default.
func IsKnownKey(key string) bool {
	for _, k := range KnownKeys {
		if k == key {
			return true
		}
	}
	return false
}
