// Package dates provides canonical calendar-day keys for habit records.
// A day key is the local calendar day formatted as YYYY-MM-DD, so
// lexicographic ordering of keys matches chronological ordering.
package dates

import (
	"math"
	"time"
)

// KeyLayout is the time layout for day keys.
const KeyLayout = "2006-01-02"

// Key returns the day key for a point in time, in t's location.
func Key(t time.Time) string {
	return t.Format(KeyLayout)
}

// Today returns the day key for the current local day.
func Today() string {
	return Key(time.Now())
}

// Parse converts a day key back to a time at midnight local time.
func Parse(key string) (time.Time, error) {
	return time.ParseInLocation(KeyLayout, key, time.Local)
}

// IsValidKey reports whether s is a well-formed day key.
func IsValidKey(s string) bool {
	_, err := time.Parse(KeyLayout, s)
	return err == nil && len(s) == len(KeyLayout)
}

// AddDays returns the day key n days after key (n may be negative).
// An invalid key is returned unchanged.
func AddDays(key string, n int) string {
	t, err := Parse(key)
	if err != nil {
		return key
	}
	return Key(t.AddDate(0, 0, n))
}

// Range returns days consecutive day keys in ascending order, ending at end.
func Range(end string, days int) []string {
	keys := make([]string, 0, days)
	for i := days - 1; i >= 0; i-- {
		keys = append(keys, AddDays(end, -i))
	}
	return keys
}

// DaysBetween returns the number of calendar days from the earlier key to
// the later key. Same day returns 0; invalid keys return 0.
func DaysBetween(a, b string) int {
	ta, errA := Parse(a)
	tb, errB := Parse(b)
	if errA != nil || errB != nil {
		return 0
	}
	// Round instead of truncating so 23- and 25-hour DST days still
	// count as one calendar day.
	d := int(math.Round(tb.Sub(ta).Hours() / 24))
	if d < 0 {
		return -d
	}
	return d
}

// IsNewDay reports whether now falls on a different calendar day than
// lastUpdate. A zero lastUpdate always counts as a new day.
func IsNewDay(lastUpdate, now time.Time) bool {
	if lastUpdate.IsZero() {
		return true
	}
	return Key(lastUpdate) != Key(now)
}
