package stats

import "rotary-phone/internal/history"

// HistorySource provides a snapshot of the call history in stored order.
type HistorySource interface {
	Entries() []history.Entry
}

// ContactSource provides a snapshot of the contact book.
type ContactSource interface {
	List() map[string]string
}

// Engine computes statistics from the current contents of the stores.
// Each method takes its own snapshot; nothing is cached between calls.
type Engine struct {
	history  HistorySource
	contacts ContactSource
}

// New creates an Engine reading from h and c.
func New(h HistorySource, c ContactSource) *Engine {
	return &Engine{history: h, contacts: c}
}

// Report bundles every statistic computed from a single snapshot.
type Report struct {
	Summary            DialStats      `json:"summary"`
	TopDialed          []NumberCount  `json:"top_dialed"`
	AverageCallsPerDay float64        `json:"average_calls_per_day"`
	CallsByDay         map[string]int `json:"calls_by_day"`
	CallsByHour        [24]int        `json:"calls_by_hour"`
}

// DialStats summarizes the current history and contact book.
func (e *Engine) DialStats() DialStats {
	return ComputeDialStats(e.history.Entries(), len(e.contacts.List()))
}

// TopDialed returns up to limit of the most dialed numbers.
func (e *Engine) TopDialed(limit int) []NumberCount {
	return TopDialed(e.history.Entries(), limit)
}

// AverageCallsPerDay returns the average number of calls per day.
func (e *Engine) AverageCallsPerDay() float64 {
	return AverageCallsPerDay(e.history.Entries())
}

// CallsByDay returns call counts per calendar day.
func (e *Engine) CallsByDay() map[string]int {
	return CallsByDay(e.history.Entries())
}

// CallsByHour returns call counts per hour of day.
func (e *Engine) CallsByHour() [24]int {
	return CallsByHour(e.history.Entries())
}

// Report computes every statistic from one snapshot of each store.
func (e *Engine) Report(top int) Report {
	entries := e.history.Entries()
	return Report{
		Summary:            ComputeDialStats(entries, len(e.contacts.List())),
		TopDialed:          TopDialed(entries, top),
		AverageCallsPerDay: AverageCallsPerDay(entries),
		CallsByDay:         CallsByDay(entries),
		CallsByHour:        CallsByHour(entries),
	}
}
