package config

import (
	"fmt"
	"strings"
)

// Validate checks the values in s for known keys. It returns an error
// describing every invalid value found, or nil if all values are valid.
// Unknown keys are free-form and never reported. The stores themselves do
// not call Validate: an invalid stored value only falls back to its
// default in the typed Settings view.
func Validate(s Store) error {
	all := s.All()
	var errs []string

	for _, key := range KnownKeys {
		val, ok := all[key]
		if !ok {
			continue
		}

		switch key {
		case KeyDefaultDelay:
			if f, ok := asFloat(val); !ok || f < 0 {
				errs = append(errs, fmt.Sprintf(
					"%s: must be a non-negative number, got %s", key, FormatAny(val)))
			}
		case KeyHistoryLimit, KeyMinNumberLength, KeyMaxNumberLength:
			if n, ok := asInt(val); !ok || n < 1 {
				errs = append(errs, fmt.Sprintf(
					"%s: must be a positive integer, got %s", key, FormatAny(val)))
			}
		case KeyAutoSaveHistory, KeyEnableLogging:
			if _, ok := val.(bool); !ok {
				errs = append(errs, fmt.Sprintf(
					"%s: must be true or false, got %s", key, FormatAny(val)))
			}
		}
	}

	cfg := Load(s)
	if cfg.MinNumberLength > cfg.MaxNumberLength {
		errs = append(errs, fmt.Sprintf(
			"%s (%d) exceeds %s (%d)",
			KeyMinNumberLength, cfg.MinNumberLength, KeyMaxNumberLength, cfg.MaxNumberLength))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("config validation failed:\n  %s", strings.Join(errs, "\n  "))
}
