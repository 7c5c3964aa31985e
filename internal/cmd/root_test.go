package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rotary-phone/internal/config"
)

// isolateHome points HOME at a fresh directory and clears ROTARY_PHONE_DIR,
// so a command that loses its data directory cannot reach real user data.
func isolateHome(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv(config.EnvDir, "")
}

// runInDir runs a fresh root command with --dir dir followed by args and
// returns what it wrote to stdout and stderr.
func runInDir(t *testing.T, dir string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	provider := &AppProvider{Out: &out, Err: &errOut}
	err := run(newRootCmd(provider), append([]string{"--dir", dir}, args...)...)
	return out.String(), errOut.String(), err
}

func TestRoot_DirFlag(t *testing.T) {
	isolateHome(t)
	dir := filepath.Join(t.TempDir(), "data")
	var out bytes.Buffer
	provider := &AppProvider{Out: &out, Err: &bytes.Buffer{}}

	if err := run(newRootCmd(provider), "--dir", dir, "contacts", "add", "Alice", "555-1234"); err != nil {
		t.Fatalf("contacts add failed: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, config.ContactsFileName))
	if err != nil {
		t.Fatalf("contacts file not created under --dir: %v", err)
	}
	if want := "{\n  \"Alice\": \"555-1234\"\n}\n"; string(raw) != want {
		t.Errorf("contacts file = %q, want %q", raw, want)
	}
}

func TestRoot_DirEnv(t *testing.T) {
	isolateHome(t)
	dir := t.TempDir()
	t.Setenv(config.EnvDir, dir)
	provider := &AppProvider{Out: &bytes.Buffer{}, Err: &bytes.Buffer{}}

	app, err := provider.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if app.Paths.Dir != dir {
		t.Errorf("Paths.Dir = %q, want %q", app.Paths.Dir, dir)
	}
}

func TestRoot_DefaultDirUnderHome(t *testing.T) {
	isolateHome(t)
	home := os.Getenv("HOME")
	provider := &AppProvider{Out: &bytes.Buffer{}, Err: &bytes.Buffer{}}

	if err := run(newRootCmd(provider), "dial", "5551234", "--delay", "0"); err != nil {
		t.Fatalf("dial failed: %v", err)
	}

	want := filepath.Join(home, config.DirName, config.HistoryFileName)
	if _, err := os.Stat(want); err != nil {
		t.Errorf("history not written to %s: %v", want, err)
	}
}

func TestRoot_DirIsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "afile")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	isolateHome(t)

	if _, _, err := runInDir(t, file, "history", "count"); err == nil {
		t.Error("command succeeded with a file as data directory")
	}
}

func TestRoot_JSONEnv(t *testing.T) {
	isolateHome(t)
	t.Setenv(config.EnvJSON, "1")

	out, _, err := runInDir(t, t.TempDir(), "history", "count")
	if err != nil {
		t.Fatalf("history count failed: %v", err)
	}

	var result map[string]int
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("output %q is not JSON: %v", out, err)
	}
	if result["count"] != 0 {
		t.Errorf("count = %d, want 0", result["count"])
	}
}

func TestRoot_HistoryLimitEnvOverride(t *testing.T) {
	isolateHome(t)
	dir := t.TempDir()
	t.Setenv(config.EnvHistoryLimit, "2")

	for _, n := range []string{"111", "222", "333"} {
		if _, _, err := runInDir(t, dir, "dial", n, "--delay", "0"); err != nil {
			t.Fatalf("dial %s failed: %v", n, err)
		}
	}

	provider := &AppProvider{Out: &bytes.Buffer{}, Err: &bytes.Buffer{}, DataDir: dir}
	app, err := provider.Get()
	if err != nil {
		t.Fatal(err)
	}
	if app.Paths.Dir != dir {
		t.Fatalf("Paths.Dir = %q, want %q", app.Paths.Dir, dir)
	}
	if n := app.History.Count(); n != 2 {
		t.Errorf("history Count() = %d, want 2 under ROTARY_HISTORY_LIMIT=2", n)
	}
	if _, err := os.Stat(app.Paths.ConfigFile); !os.IsNotExist(err) {
		t.Errorf("env override was persisted to %s", app.Paths.ConfigFile)
	}
}

func TestRoot_CorruptConfigWarns(t *testing.T) {
	isolateHome(t)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, config.ConfigFileName), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	out, errOut, err := runInDir(t, dir, "config", "get", "history_limit")
	if err != nil {
		t.Fatalf("config get failed: %v", err)
	}
	if got := strings.TrimSpace(out); got != "100" {
		t.Errorf("history_limit = %q, want default 100", got)
	}
	if !strings.Contains(errOut, "settings file unusable") {
		t.Errorf("stderr = %q, want a warning about the settings file", errOut)
	}
}

func TestRoot_LoggingDisabled(t *testing.T) {
	isolateHome(t)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, config.ConfigFileName), []byte(`{"enable_logging": false}`), 0644); err != nil {
		t.Fatal(err)
	}

	if _, errOut, err := runInDir(t, dir, "dial", "5551234", "--delay", "0"); err != nil {
		t.Fatalf("dial failed: %v", err)
	} else if errOut != "" {
		t.Errorf("stderr = %q, want no log output", errOut)
	}

	app, err := (&AppProvider{DataDir: dir}).Get()
	if err != nil {
		t.Fatal(err)
	}
	if n := app.History.Count(); n != 1 {
		t.Errorf("history Count() = %d, want the call recorded under --dir", n)
	}
}

func TestRoot_Commands(t *testing.T) {
	root := newRootCmd(&AppProvider{})
	want := []string{"config", "contacts", "dial", "export", "history", "import", "stats", "version"}

	var got []string
	for _, c := range root.Commands() {
		got = append(got, c.Name())
	}
	for _, name := range want {
		found := false
		for _, g := range got {
			if g == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command is missing %q (have %v)", name, got)
		}
	}
}

func TestRoot_ConfigCorruptedAfterStartupWarns(t *testing.T) {
	isolateHome(t)
	dir := t.TempDir()
	var errOut bytes.Buffer
	provider := &AppProvider{Out: &bytes.Buffer{}, Err: &errOut, DataDir: dir}
	app, err := provider.Get()
	if err != nil {
		t.Fatal(err)
	}
	if errOut.Len() != 0 {
		t.Fatalf("stderr at startup = %q, want nothing", errOut.String())
	}

	if err := os.WriteFile(app.Paths.ConfigFile, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := run(newConfigCmd(provider), "set", "history_limit", "5"); err != nil {
		t.Fatalf("config set failed: %v", err)
	}
	if !strings.Contains(errOut.String(), "settings file unusable") {
		t.Errorf("stderr = %q, want a warning about the settings file", errOut.String())
	}
}
