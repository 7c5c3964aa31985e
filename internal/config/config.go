// Package config handles rotary phone settings: the typed Settings view,
// defaults, environment overrides, and data directory resolution.
package config

// Settings is the fully populated, typed view of the settings document.
// It is always complete: keys missing from disk, or stored with a value of
// the wrong type or out of range, take their compiled-in default.
type Settings struct {
	DefaultDelay    float64 `json:"default_delay"`
	HistoryLimit    int     `json:"history_limit"`
	AutoSaveHistory bool    `json:"auto_save_history"`
	MinNumberLength int     `json:"min_number_length"`
	MaxNumberLength int     `json:"max_number_length"`
	EnableLogging   bool    `json:"enable_logging"`
}

// Source supplies the current Settings. Stores hold a Source rather than a
// Settings value so that they observe changes made after construction.
type Source interface {
	Settings() Settings
}

// Default returns the default settings.
func Default() Settings {
	return Settings{
		DefaultDelay:    0.1,
		HistoryLimit:    100,
		AutoSaveHistory: true,
		MinNumberLength: 3,
		MaxNumberLength: 15,
		EnableLogging:   true,
	}
}

// Load overlays the values held in s onto the defaults.
func Load(s Store) Settings {
	cfg := Default()
	all := s.All()

	if v, ok := asFloat(all[KeyDefaultDelay]); ok && v >= 0 {
		cfg.DefaultDelay = v
	}
	if v, ok := asInt(all[KeyHistoryLimit]); ok && v > 0 {
		cfg.HistoryLimit = v
	}
	if v, ok := all[KeyAutoSaveHistory].(bool); ok {
		cfg.AutoSaveHistory = v
	}
	if v, ok := asInt(all[KeyMinNumberLength]); ok && v > 0 {
		cfg.MinNumberLength = v
	}
	if v, ok := asInt(all[KeyMaxNumberLength]); ok && v > 0 {
		cfg.MaxNumberLength = v
	}
	if v, ok := all[KeyEnableLogging].(bool); ok {
		cfg.EnableLogging = v
	}
	return cfg
}

// Fixed returns a Source that always yields cfg.
func Fixed(cfg Settings) Source {
	return fixed(cfg)
}

type fixed Settings

func (f fixed) Settings() Settings { return Settings(f) }

// asFloat accepts any JSON number.
func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// asInt accepts integers and JSON numbers with no fractional part.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}
