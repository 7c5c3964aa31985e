package history

import "time"

// TimestampLayout is the layout used for timestamps written by Append.
// Times are stored in UTC with a fixed-width fractional part so that
// lexicographic order of the strings matches chronological order.
const TimestampLayout = "2006-01-02T15:04:05.000000Z07:00"

// Entry is one dialed call.
type Entry struct {
	Number    string `json:"number"`    // digits only
	Formatted string `json:"formatted"` // display form
	Timestamp string `json:"timestamp"` // ISO-8601
}

// Time parses the entry's timestamp. See ParseTimestamp.
func (e Entry) Time() (time.Time, bool) {
	return ParseTimestamp(e.Timestamp)
}

// MergeKey identifies an entry when merging imported history: the number
// and timestamp concatenated. Distinct pairs can collide ("1"+"23" and
// "12"+"3"); the key is kept as-is for compatibility with existing exports.
func (e Entry) MergeKey() string {
	return e.Number + e.Timestamp
}

// FormatTimestamp renders t in TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// zone-less layouts, interpreted in local time. Fractional seconds are
// accepted by time.Parse even when the layout omits them.
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTimestamp parses an ISO-8601 timestamp, either RFC 3339 with a zone
// or zone-less (taken as local time). It reports false for anything else,
// including the empty string.
func ParseTimestamp(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
