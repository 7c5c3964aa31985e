package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNew_Disabled(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Enabled: false, Writer: &buf})
	logger.Error("should not appear")

	if buf.Len() != 0 {
		t.Errorf("disabled logger wrote %q", buf.String())
	}
}

func TestNew_InfoLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Enabled: true, Writer: &buf})
	logger.Debug("hidden")
	logger.Info("dialing")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line written at info level: %q", out)
	}
	if !strings.Contains(out, "dialing") || !strings.Contains(out, "INFO") {
		t.Errorf("output = %q, want INFO dialing line", out)
	}
	if !strings.Contains(out, "rotary") {
		t.Errorf("output = %q, want logger name", out)
	}
}

func TestNew_Verbose(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Enabled: true, Verbose: true, Writer: &buf})
	logger.Debug("digits sent")

	if !strings.Contains(buf.String(), "digits sent") {
		t.Errorf("verbose logger dropped debug line: %q", buf.String())
	}
}
