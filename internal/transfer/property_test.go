package transfer

import (
	"testing"
	"time"

	"rotary-phone/testutil"

	"github.com/google/go-cmp/cmp"
)

func TestMergeRandomDocuments(t *testing.T) {
	start := time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC)

	for seed := int64(1); seed <= 10; seed++ {
		gen := testutil.NewCallGenerator(seed, start)
		gen.Pool(8)
		doc := Document{
			Contacts: gen.Contacts(int(seed) + 2),
			History:  gen.Calls(int(seed)*10, 2*time.Hour),
		}

		f := newFixture(t, 100)
		// Pre-load half the history so the merge has overlap to skip.
		half := doc.History[:len(doc.History)/2]
		if err := f.history.Replace(half); err != nil {
			t.Fatal(err)
		}

		first, err := f.engine.Import(doc, true)
		if err != nil {
			t.Fatalf("seed %d: Import: %v", seed, err)
		}
		if want := len(doc.History) - len(half); first.HistoryEntriesAdded != want {
			t.Errorf("seed %d: HistoryEntriesAdded = %d, want %d", seed, first.HistoryEntriesAdded, want)
		}
		if diff := cmp.Diff(doc.History, f.history.Entries()); diff != "" {
			t.Errorf("seed %d: merged history mismatch (-want +got):\n%s", seed, diff)
		}

		second, err := f.engine.Import(doc, true)
		if err != nil {
			t.Fatalf("seed %d: second Import: %v", seed, err)
		}
		if second.ContactsAdded != 0 || second.HistoryEntriesAdded != 0 {
			t.Errorf("seed %d: second import = %+v, want nothing added", seed, second)
		}
		if second.ContactsSkipped != len(doc.Contacts) {
			t.Errorf("seed %d: ContactsSkipped = %d, want %d", seed, second.ContactsSkipped, len(doc.Contacts))
		}
	}
}
