// Package logging builds the zap logger used throughout rotary phone.
package logging

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options controls logger construction.
type Options struct {
	// Enabled mirrors the enable_logging setting. A disabled logger
	// discards everything.
	Enabled bool
	// Verbose lowers the level from Info to Debug.
	Verbose bool
	// Writer receives log lines. Defaults to os.Stderr.
	Writer io.Writer
}

// New returns a console-encoded logger configured by opts.
func New(opts Options) *zap.Logger {
	if !opts.Enabled {
		return zap.NewNop()
	}

	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	level := zapcore.InfoLevel
	if opts.Verbose {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000")
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), level)
	return zap.New(core).Named("rotary")
}
