package config

import "testing"

func TestParseValue(t *testing.T) {
	tests := []struct {
		raw  string
		want Value
	}{
		{"42", Value{Kind: KindInt, Int: 42}},
		{"-7", Value{Kind: KindInt, Int: -7}},
		{"0.5", Value{Kind: KindFloat, Float: 0.5}},
		{"1e3", Value{Kind: KindFloat, Float: 1000}},
		{"true", Value{Kind: KindBool, Bool: true}},
		{"False", Value{Kind: KindBool, Bool: false}},
		{"TRUE", Value{Kind: KindBool, Bool: true}},
		{"hello", Value{Kind: KindString, Str: "hello"}},
		{"", Value{Kind: KindString, Str: ""}},
		{"NaN", Value{Kind: KindString, Str: "NaN"}},
		{"inf", Value{Kind: KindString, Str: "inf"}},
		{"555-1234", Value{Kind: KindString, Str: "555-1234"}},
	}

	for _, tt := range tests {
		if got := ParseValue(tt.raw); got != tt.want {
			t.Errorf("ParseValue(%q) = %+v, want %+v", tt.raw, got, tt.want)
		}
	}
}

func TestParseValue_IntBeatsFloat(t *testing.T) {
	// "10" parses as both; integers take precedence.
	if got := ParseValue("10"); got.Kind != KindInt {
		t.Errorf("ParseValue(%q).Kind = %v, want %v", "10", got.Kind, KindInt)
	}
}

func TestValue_Interface(t *testing.T) {
	tests := []struct {
		v    Value
		want any
	}{
		{Value{Kind: KindInt, Int: 3}, float64(3)},
		{Value{Kind: KindFloat, Float: 0.25}, 0.25},
		{Value{Kind: KindBool, Bool: true}, true},
		{Value{Kind: KindString, Str: "x"}, "x"},
	}
	for _, tt := range tests {
		if got := tt.v.Interface(); got != tt.want {
			t.Errorf("%+v.Interface() = %#v, want %#v", tt.v, got, tt.want)
		}
	}
}

func TestValue_String(t *testing.T) {
	for _, raw := range []string{"42", "0.5", "true", "hello"} {
		if got := ParseValue(raw).String(); got != raw {
			t.Errorf("ParseValue(%q).String() = %q", raw, got)
		}
	}
}

func TestFormatAny(t *testing.T) {
	tests := []struct {
		v    any
		want string
	}{
		{nil, "null"},
		{"abc", "abc"},
		{true, "true"},
		{float64(100), "100"},
		{0.1, "0.1"},
		{[]any{"a", float64(1)}, `["a",1]`},
	}
	for _, tt := range tests {
		if got := FormatAny(tt.v); got != tt.want {
			t.Errorf("FormatAny(%#v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}
