// Package stats computes usage statistics from call history and contact
// snapshots. It keeps no state of its own: every function is a pure
// computation over the slices and maps it is given, and Engine takes fresh
// snapshots from the stores on each call.
//
// Ties between equally frequent numbers are broken by the order in which
// each number first appears in the history, so results are deterministic
// for a given history.
package stats

import (
	"math"
	"sort"

	"rotary-phone/internal/history"
)

// DialStats summarizes the call history.
type DialStats struct {
	TotalCalls      int     `json:"total_calls"`
	UniqueNumbers   int     `json:"unique_numbers"`
	MostDialed      *string `json:"most_dialed"` // nil when there is no history
	MostDialedCount int     `json:"most_dialed_count"`
	TotalContacts   int     `json:"total_contacts"`
}

// NumberCount pairs a normalized number with how often it was dialed.
type NumberCount struct {
	Number string `json:"number"`
	Count  int    `json:"count"`
}

// ComputeDialStats summarizes entries. Numbers are compared by the
// normalized Number field, not the display form.
func ComputeDialStats(entries []history.Entry, contactCount int) DialStats {
	counts := countNumbers(entries)
	st := DialStats{
		TotalCalls:    len(entries),
		UniqueNumbers: len(counts),
		TotalContacts: contactCount,
	}
	if top := rank(counts); len(top) > 0 {
		number := top[0].Number
		st.MostDialed = &number
		st.MostDialedCount = top[0].Count
	}
	return st
}

// TopDialed returns up to limit numbers ordered by call count, highest first.
func TopDialed(entries []history.Entry, limit int) []NumberCount {
	if limit <= 0 {
		return []NumberCount{}
	}
	top := rank(countNumbers(entries))
	if len(top) > limit {
		top = top[:limit]
	}
	return top
}

// AverageCallsPerDay divides the number of entries by the number of days
// spanned by their timestamps, counting both end days. With no entries it
// is 0; with a single entry, or fewer than two parsable timestamps, the
// divisor is 1.
func AverageCallsPerDay(entries []history.Entry) float64 {
	if len(entries) == 0 {
		return 0
	}
	if len(entries) < 2 {
		return float64(len(entries))
	}

	var earliest, latest int64
	parsed := 0
	for _, e := range entries {
		t, ok := e.Time()
		if !ok {
			continue
		}
		ns := t.UnixNano()
		if parsed == 0 || ns < earliest {
			earliest = ns
		}
		if parsed == 0 || ns > latest {
			latest = ns
		}
		parsed++
	}

	days := 1.0
	if parsed >= 2 {
		const nsPerDay = float64(24 * 60 * 60 * 1e9)
		days = math.Floor(float64(latest-earliest)/nsPerDay) + 1
	}
	return float64(len(entries)) / days
}

// CallsByDay counts entries per calendar day ("YYYY-MM-DD"), in the zone
// each timestamp was recorded in. Unparsable timestamps are not counted.
func CallsByDay(entries []history.Entry) map[string]int {
	out := make(map[string]int)
	for _, e := range entries {
		if t, ok := e.Time(); ok {
			out[t.Format("2006-01-02")]++
		}
	}
	return out
}

// CallsByHour counts entries per hour of day (0-23), in the zone each
// timestamp was recorded in. Unparsable timestamps are not counted.
func CallsByHour(entries []history.Entry) [24]int {
	var out [24]int
	for _, e := range entries {
		if t, ok := e.Time(); ok {
			out[t.Hour()]++
		}
	}
	return out
}

// countNumbers tallies calls per number in first-encountered order.
func countNumbers(entries []history.Entry) []NumberCount {
	index := make(map[string]int)
	var counts []NumberCount
	for _, e := range entries {
		i, seen := index[e.Number]
		if !seen {
			i = len(counts)
			index[e.Number] = i
			counts = append(counts, NumberCount{Number: e.Number})
		}
		counts[i].Count++
	}
	return counts
}

// rank orders counts by count descending. The sort is stable, so equal
// counts keep first-encountered order.
func rank(counts []NumberCount) []NumberCount {
	ranked := make([]NumberCount, len(counts))
	copy(ranked, counts)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	return ranked
}
