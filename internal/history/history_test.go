package history

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"rotary-phone/internal/config"
	"rotary-phone/internal/docstore"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var base = time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

// stepClock returns a clock that advances by one second per call.
func stepClock() func() time.Time {
	n := 0
	return func() time.Time {
		t := base.Add(time.Duration(n) * time.Second)
		n++
		return t
	}
}

func settingsWithLimit(limit int) config.Settings {
	cfg := config.Default()
	cfg.HistoryLimit = limit
	return cfg
}

func newTestStore(t *testing.T, cfg config.Settings, opts ...Option) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.json")
	opts = append([]Option{WithClock(stepClock())}, opts...)
	return New(path, config.Fixed(cfg), nil, opts...)
}

func mustAppend(t *testing.T, s *Store, number string) {
	t.Helper()
	if _, err := s.Append(number, number); err != nil {
		t.Fatalf("Append(%q): %v", number, err)
	}
}

func numbers(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Number
	}
	return out
}

func TestAppend(t *testing.T) {
	s := newTestStore(t, config.Default())

	ok, err := s.Append("5551234", "555-1234")
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if !ok {
		t.Fatal("Append returned false with auto_save_history on")
	}

	entries := s.Entries()
	if len(entries) != 1 {
		t.Fatalf("len(Entries()) = %d, want 1", len(entries))
	}
	want := Entry{Number: "5551234", Formatted: "555-1234", Timestamp: "2024-03-10T09:00:00.000000Z"}
	if entries[0] != want {
		t.Errorf("entry = %+v, want %+v", entries[0], want)
	}
}

func TestAppend_Disabled(t *testing.T) {
	cfg := config.Default()
	cfg.AutoSaveHistory = false
	s := newTestStore(t, cfg)

	ok, err := s.Append("5551234", "555-1234")
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if ok {
		t.Error("Append returned true with auto_save_history off")
	}
	if s.Count() != 0 {
		t.Errorf("Count() = %d, want 0", s.Count())
	}
	if _, err := os.Stat(s.Path()); !os.IsNotExist(err) {
		t.Error("disabled Append should not write the file")
	}
}

func TestAppend_RetentionScenario(t *testing.T) {
	s := newTestStore(t, settingsWithLimit(3))
	for _, n := range []string{"1", "2", "3", "4"} {
		mustAppend(t, s, n)
	}

	if diff := cmp.Diff([]string{"2", "3", "4"}, numbers(s.Entries())); diff != "" {
		t.Errorf("stored sequence mismatch (-want +got):\n%s", diff)
	}
}

func TestAppend_RetentionInvariant(t *testing.T) {
	for _, limit := range []int{1, 2, 5, 10} {
		for _, n := range []int{0, 1, limit - 1, limit, limit + 1, 3 * limit} {
			if n < 0 {
				continue
			}
			t.Run(fmt.Sprintf("limit=%d/n=%d", limit, n), func(t *testing.T) {
				s := newTestStore(t, settingsWithLimit(limit))
				var appended []string
				for i := 0; i < n; i++ {
					num := fmt.Sprintf("555%04d", i)
					appended = append(appended, num)
					mustAppend(t, s, num)
				}

				keep := min(n, limit)
				if s.Count() != keep {
					t.Fatalf("Count() = %d, want %d", s.Count(), keep)
				}
				want := appended[len(appended)-keep:]
				if keep == 0 {
					want = []string{}
				}
				if diff := cmp.Diff(want, numbers(s.Entries())); diff != "" {
					t.Errorf("retained entries mismatch (-want +got):\n%s", diff)
				}
			})
		}
	}
}

func TestAppend_DefaultLimit(t *testing.T) {
	s := newTestStore(t, config.Default())
	for i := 0; i < 110; i++ {
		mustAppend(t, s, fmt.Sprintf("555%04d", i))
	}

	entries := s.Entries()
	if len(entries) != 100 {
		t.Fatalf("len = %d, want 100", len(entries))
	}
	if entries[0].Number != "5550010" {
		t.Errorf("oldest retained = %q, want %q", entries[0].Number, "5550010")
	}
}

func TestAppend_LimitFollowsSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	src := &mutableSource{cfg: settingsWithLimit(10)}
	s := New(path, src, nil, WithClock(stepClock()))

	for i := 0; i < 6; i++ {
		mustAppend(t, s, fmt.Sprint(i))
	}
	src.cfg.HistoryLimit = 2
	mustAppend(t, s, "6")

	if diff := cmp.Diff([]string{"5", "6"}, numbers(s.Entries())); diff != "" {
		t.Errorf("entries after lowering the limit (-want +got):\n%s", diff)
	}
}

func TestRecent(t *testing.T) {
	s := newTestStore(t, config.Default())
	for i := 0; i < 15; i++ {
		mustAppend(t, s, fmt.Sprintf("555%04d", i))
	}

	got := s.Recent(10)
	if len(got) != 10 {
		t.Fatalf("len(Recent(10)) = %d, want 10", len(got))
	}
	if got[0].Number != "5550014" {
		t.Errorf("Recent(10)[0] = %q, want newest %q", got[0].Number, "5550014")
	}
	if !sort.SliceIsSorted(got, func(i, j int) bool { return got[i].Timestamp > got[j].Timestamp }) {
		t.Error("Recent is not sorted by timestamp descending")
	}
}

func TestRecent_Limits(t *testing.T) {
	s := newTestStore(t, config.Default())
	mustAppend(t, s, "1")
	mustAppend(t, s, "2")

	for _, tt := range []struct{ limit, want int }{{0, 0}, {-1, 0}, {1, 1}, {2, 2}, {50, 2}} {
		if got := len(s.Recent(tt.limit)); got != tt.want {
			t.Errorf("len(Recent(%d)) = %d, want %d", tt.limit, got, tt.want)
		}
	}
}

func TestRecent_SortsByTimestampNotInsertion(t *testing.T) {
	s := newTestStore(t, config.Default())
	err := s.Replace([]Entry{
		{Number: "b", Timestamp: "2024-01-02T00:00:00.000000Z"},
		{Number: "none"},
		{Number: "c", Timestamp: "2024-01-03T00:00:00.000000Z"},
		{Number: "a", Timestamp: "2024-01-01T00:00:00.000000Z"},
		{Number: "c2", Timestamp: "2024-01-03T00:00:00.000000Z"},
	})
	if err != nil {
		t.Fatal(err)
	}

	// Ties keep stored order; a missing timestamp sorts last.
	want := []string{"c", "c2", "b", "a", "none"}
	if diff := cmp.Diff(want, numbers(s.Recent(10))); diff != "" {
		t.Errorf("Recent order mismatch (-want +got):\n%s", diff)
	}
}

func TestWithinDays(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	path := filepath.Join(t.TempDir(), "history.json")
	s := New(path, config.Fixed(config.Default()), nil, WithClock(func() time.Time { return now }))

	err := s.Replace([]Entry{
		{Number: "old", Timestamp: FormatTimestamp(now.Add(-8 * 24 * time.Hour))},
		{Number: "edge", Timestamp: FormatTimestamp(now.Add(-7 * 24 * time.Hour))},
		{Number: "recent", Timestamp: FormatTimestamp(now.Add(-2 * time.Hour))},
		{Number: "garbage", Timestamp: "yesterday-ish"},
		{Number: "empty"},
		{Number: "future", Timestamp: FormatTimestamp(now.Add(time.Hour))},
		{Number: "local", Timestamp: now.Add(-time.Hour).In(time.Local).Format("2006-01-02T15:04:05.000000")},
	})
	if err != nil {
		t.Fatal(err)
	}

	got := numbers(s.WithinDays(7))
	want := []string{"recent", "local", "edge"}
	sortedWant := numbers(SortNewestFirst(filterByNumber(s.Entries(), want)))
	if diff := cmp.Diff(sortedWant, got); diff != "" {
		t.Errorf("WithinDays(7) mismatch (-want +got):\n%s", diff)
	}
}

func TestClear(t *testing.T) {
	s := newTestStore(t, config.Default())
	mustAppend(t, s, "5551111")
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if s.Count() != 0 {
		t.Errorf("Count() after Clear = %d, want 0", s.Count())
	}
	if got := s.Recent(10); len(got) != 0 {
		t.Errorf("Recent after Clear = %v, want empty", got)
	}
}

func TestReplace_SkipsRetentionCap(t *testing.T) {
	s := newTestStore(t, settingsWithLimit(2))
	entries := []Entry{{Number: "1"}, {Number: "2"}, {Number: "3"}}
	if err := s.Replace(entries); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if s.Count() != 3 {
		t.Errorf("Count() = %d, want 3", s.Count())
	}
}

func TestCorruptFileTreatedAsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	if err := os.WriteFile(path, []byte(`{"number": "1"}`), 0644); err != nil {
		t.Fatal(err)
	}

	core, logs := observer.New(zapcore.WarnLevel)
	s := New(path, config.Fixed(config.Default()), zap.New(core), WithClock(stepClock()))

	if got := s.Load().Outcome; got != docstore.Corrupt {
		t.Errorf("Load().Outcome = %v, want %v", got, docstore.Corrupt)
	}
	if s.Count() != 0 {
		t.Errorf("Count() = %d, want 0", s.Count())
	}
	if logs.Len() == 0 {
		t.Error("corrupt history file was not logged")
	}

	mustAppend(t, s, "5551111")
	if s.Count() != 1 {
		t.Errorf("Count() after Append = %d, want 1", s.Count())
	}
}

func TestFileFormat(t *testing.T) {
	s := newTestStore(t, config.Default())
	mustAppend(t, s, "5551234")

	raw, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatal(err)
	}
	want := `[
  {
    "number": "5551234",
    "formatted": "5551234",
    "timestamp": "2024-03-10T09:00:00.000000Z"
  }
]
`
	if string(raw) != want {
		t.Errorf("history.json =\n%s\nwant\n%s", raw, want)
	}
}

type mutableSource struct {
	cfg config.Settings
}

func (m *mutableSource) Settings() config.Settings { return m.cfg }

func filterByNumber(entries []Entry, keep []string) []Entry {
	set := make(map[string]bool, len(keep))
	for _, k := range keep {
		set[k] = true
	}
	var out []Entry
	for _, e := range entries {
		if set[e.Number] {
			out = append(out, e)
		}
	}
	return out
}
