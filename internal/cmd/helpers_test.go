package cmd

import (
	"bytes"
	"io"
	"testing"
	"time"

	"rotary-phone/internal/config"
	"rotary-phone/internal/config/jsonstore"
	"rotary-phone/internal/history"

	"github.com/spf13/cobra"
)

// testClockStart is the time of the first call recorded by a test App.
var testClockStart = time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

// setupTestApp creates an App over a fresh data directory. Dialing does not
// sleep, and each recorded call is stamped one minute after the previous one.
func setupTestApp(t *testing.T) (*App, *bytes.Buffer) {
	t.Helper()
	paths := config.PathsFor(t.TempDir())
	clock := testClockStart.Add(-time.Minute)
	var out bytes.Buffer
	app := NewApp(paths, jsonstore.New(paths.ConfigFile, nil), nil, &out, &bytes.Buffer{},
		history.WithClock(func() time.Time {
			clock = clock.Add(time.Minute)
			return clock
		}))
	app.Sleep = func(time.Duration) {}
	return app, &out
}

// run executes cmd with args, keeping cobra's own error and usage output
// out of the test log.
func run(cmd *cobra.Command, args ...string) error {
	if args == nil {
		args = []string{} // nil makes cobra fall back to os.Args
	}
	cmd.SetArgs(args)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	return cmd.Execute()
}

// mustRun is run that fails the test on error.
func mustRun(t *testing.T, cmd *cobra.Command, args ...string) {
	t.Helper()
	if err := run(cmd, args...); err != nil {
		t.Fatalf("%s %v failed: %v", cmd.Name(), args, err)
	}
}

// dialAll records a call to each number through the dial command.
func dialAll(t *testing.T, app *App, numbers ...string) {
	t.Helper()
	for _, n := range numbers {
		mustRun(t, newDialCmd(NewTestProvider(app)), n)
	}
}
