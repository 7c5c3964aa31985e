// Package testutil provides test data generators for rotary phone stores.
package testutil

import (
	"fmt"
	"math/rand"
	"time"

	"rotary-phone/internal/history"
	"rotary-phone/internal/phone"
)

// CallGenerator creates call history and contacts from a seeded source,
// so a failing test can be reproduced from its seed.
type CallGenerator struct {
	rng   *rand.Rand
	clock time.Time
	pool  []string
}

// NewCallGenerator creates a generator whose first call is stamped at start.
func NewCallGenerator(seed int64, start time.Time) *CallGenerator {
	return &CallGenerator{
		rng:   rand.New(rand.NewSource(seed)),
		clock: start,
	}
}

// Number returns a random 7 or 10 digit number.
func (g *CallGenerator) Number() string {
	digits := 7
	if g.rng.Intn(2) == 0 {
		digits = 10
	}
	b := make([]byte, digits)
	for i := range b {
		b[i] = byte('0' + g.rng.Intn(10))
	}
	return string(b)
}

// Pool returns n distinct numbers. Calls generated afterwards dial only
// numbers from the most recent pool.
func (g *CallGenerator) Pool(n int) []string {
	seen := make(map[string]bool, n)
	g.pool = make([]string, 0, n)
	for len(g.pool) < n {
		number := g.Number()
		if seen[number] {
			continue
		}
		seen[number] = true
		g.pool = append(g.pool, number)
	}
	return g.pool
}

// Calls returns n history entries in chronological order. Each call comes
// between one minute and maxGap after the previous one. Numbers are drawn
// from the current pool, or generated freshly if there is none.
func (g *CallGenerator) Calls(n int, maxGap time.Duration) []history.Entry {
	entries := make([]history.Entry, 0, n)
	for i := 0; i < n; i++ {
		var number string
		if len(g.pool) > 0 {
			number = g.pool[g.rng.Intn(len(g.pool))]
		} else {
			number = g.Number()
		}
		entries = append(entries, history.Entry{
			Number:    number,
			Formatted: phone.Format(number),
			Timestamp: history.FormatTimestamp(g.clock),
		})
		g.clock = g.clock.Add(time.Minute + g.jitter(maxGap-time.Minute))
	}
	return entries
}

// Contacts returns n contacts named "Contact 0".."Contact n-1", each with a
// formatted number.
func (g *CallGenerator) Contacts(n int) map[string]string {
	contacts := make(map[string]string, n)
	for i := 0; i < n; i++ {
		contacts[fmt.Sprintf("Contact %d", i)] = phone.Format(g.Number())
	}
	return contacts
}

// Now returns the time the next generated call will be stamped with.
func (g *CallGenerator) Now() time.Time {
	return g.clock
}

func (g *CallGenerator) jitter(limit time.Duration) time.Duration {
	if limit <= 0 {
		return 0
	}
	return time.Duration(g.rng.Int63n(int64(limit)))
}
