package config

import (
	"testing"
)

func TestApplyEnvOverrides_HistoryLimit(t *testing.T) {
	t.Setenv(EnvHistoryLimit, "25")
	t.Setenv(EnvDelay, "")

	s := &memStore{data: map[string]any{KeyHistoryLimit: float64(100)}}
	ApplyEnvOverrides(s)

	if v, _ := s.Get(KeyHistoryLimit); v != float64(25) {
		t.Errorf("history_limit = %v, want 25", v)
	}
	if got := Load(s).HistoryLimit; got != 25 {
		t.Errorf("Load().HistoryLimit = %d, want 25", got)
	}
}

func TestApplyEnvOverrides_Delay(t *testing.T) {
	t.Setenv(EnvHistoryLimit, "")
	t.Setenv(EnvDelay, "0.25")

	s := &memStore{}
	ApplyEnvOverrides(s)

	if got := Load(s).DefaultDelay; got != 0.25 {
		t.Errorf("Load().DefaultDelay = %v, want 0.25", got)
	}
}

func TestApplyEnvOverrides_NoOverride(t *testing.T) {
	t.Setenv(EnvHistoryLimit, "")
	t.Setenv(EnvDelay, "")

	s := &memStore{data: map[string]any{KeyHistoryLimit: float64(9)}}
	ApplyEnvOverrides(s)

	if v, _ := s.Get(KeyHistoryLimit); v != float64(9) {
		t.Errorf("history_limit = %v, want 9 (should not change)", v)
	}
	if _, ok := s.Get(KeyDefaultDelay); ok {
		t.Error("default_delay should not be set")
	}
}

func TestEnvBool(t *testing.T) {
	tests := []struct {
		val  string
		want bool
	}{
		{"1", true},
		{"true", true},
		{"", false},
		{"0", false},
		{"yes", false},
	}
	for _, tt := range tests {
		t.Setenv(EnvJSON, tt.val)
		if got := EnvBool(EnvJSON); got != tt.want {
			t.Errorf("EnvBool with %q = %v, want %v", tt.val, got, tt.want)
		}
	}
}
