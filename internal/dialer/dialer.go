// Package dialer simulates dialing a phone number digit by digit and
// records the call in the history.
package dialer

import (
	"errors"
	"fmt"
	"io"
	"time"

	"rotary-phone/internal/phone"

	"go.uber.org/zap"
)

var (
	// ErrInvalidNumber is returned for numbers that contain anything other
	// than digits and formatting characters, or whose length is out of range.
	ErrInvalidNumber = errors.New("invalid phone number")
	// ErrInvalidDelay is returned for a negative per-digit delay.
	ErrInvalidDelay = errors.New("delay must be non-negative")
)

// HighDelay is the per-digit delay above which a warning is logged.
const HighDelay = 10 * time.Second

// Recorder stores a completed call.
type Recorder interface {
	Append(number, formatted string) (bool, error)
}

// Result describes a completed dial.
type Result struct {
	Number    string        `json:"number"`
	Formatted string        `json:"formatted"`
	Recorded  bool          `json:"recorded"`
	Duration  time.Duration `json:"-"`
}

// Dialer prints the dialing animation to its writer.
type Dialer struct {
	out     io.Writer
	history Recorder
	logger  *zap.Logger
	sleep   func(time.Duration)
	minLen  int
	maxLen  int
}

// Option configures a Dialer.
type Option func(*Dialer)

// WithSleep replaces time.Sleep, for tests.
func WithSleep(fn func(time.Duration)) Option {
	return func(d *Dialer) {
		d.sleep = fn
	}
}

// WithLengthBounds sets the accepted digit count range. A non-positive max
// disables the upper bound.
func WithLengthBounds(minLen, maxLen int) Option {
	return func(d *Dialer) {
		d.minLen = minLen
		d.maxLen = maxLen
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(d *Dialer) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// New creates a Dialer writing to out and recording to history. history may
// be nil, in which case nothing is recorded.
func New(out io.Writer, history Recorder, opts ...Option) *Dialer {
	d := &Dialer{
		out:     out,
		history: history,
		logger:  zap.NewNop(),
		sleep:   time.Sleep,
		minLen:  1,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dial validates number, prints each digit with delay between them, and
// appends the call to the history.
func (d *Dialer) Dial(number string, delay time.Duration) (Result, error) {
	if !phone.IsValidNumber(number, d.minLen, d.maxLen) {
		d.logger.Error("invalid phone number", zap.String("number", number))
		return Result{}, fmt.Errorf("%w: %s", ErrInvalidNumber, number)
	}
	if delay < 0 {
		d.logger.Error("negative delay", zap.Duration("delay", delay))
		return Result{}, ErrInvalidDelay
	}
	if delay > HighDelay {
		d.logger.Warn("delay is very high, dialing may take a long time", zap.Duration("delay", delay))
	}

	cleaned := phone.Normalize(number)
	formatted := phone.Format(cleaned)
	d.logger.Info("dialing", zap.String("number", formatted))

	fmt.Fprintf(d.out, "Dialing %s...\n", formatted)
	for i := 0; i < len(cleaned); i++ {
		fmt.Fprintf(d.out, "  %c", cleaned[i])
		d.sleep(delay)
		if (i+1)%3 == 0 && i+1 < len(cleaned) {
			fmt.Fprint(d.out, ".")
		}
	}
	fmt.Fprintln(d.out)

	res := Result{
		Number:    cleaned,
		Formatted: formatted,
		Duration:  time.Duration(len(cleaned)) * delay,
	}
	if d.history != nil {
		recorded, err := d.history.Append(cleaned, formatted)
		if err != nil {
			return res, fmt.Errorf("recording call: %w", err)
		}
		res.Recorded = recorded
	}

	d.logger.Info("connection established", zap.String("number", formatted))
	fmt.Fprintln(d.out, "Connection established!")
	d.logger.Debug("dialing finished", zap.String("took", FormatDuration(res.Duration)))
	return res, nil
}

// FormatDuration renders d as "1.50s" below a minute and "2m 5.0s" above.
func FormatDuration(d time.Duration) string {
	secs := d.Seconds()
	if secs < 60 {
		return fmt.Sprintf("%.2fs", secs)
	}
	minutes := int(secs / 60)
	return fmt.Sprintf("%dm %.1fs", minutes, secs-float64(minutes*60))
}

// SecondsToDuration converts a delay in seconds, as stored in settings and
// accepted on the command line, to a time.Duration.
func SecondsToDuration(secs float64) time.Duration {
	return time.Duration(secs * float64(time.Second))
}
