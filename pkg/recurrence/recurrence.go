package recurrence

import (
	"time"

	"github.com/upkeepd/upkeep/pkg/core"
)

// Advance computes the occurrence after last for the given frequency.
// The result is strictly after last for every recognized frequency. For an
// unrecognized frequency it returns ok=false, which callers must treat as
// "do not reschedule" rather than an error.
func Advance(last time.Time, f core.Frequency) (time.Time, bool) {
	switch f {
	case core.FreqDaily:
		return last.AddDate(0, 0, 1), true
	case core.FreqWeekly:
		return last.AddDate(0, 0, 7), true
	case core.FreqMonthly:
		return nextMonth(last), true
	case core.FreqQuarterly:
		// Fixed 90-day offset, not calendar-quarter aware. Drifts against
		// calendar quarters over repeated steps; preserved as-is.
		return last.AddDate(0, 0, 90), true
	case core.FreqYearly:
		return nextYear(last), true
	}
	return time.Time{}, false
}

// nextMonth returns the same day-of-month in the following month, rolling
// December into January. A day-of-month that does not exist in the target
// month clamps to 28 (lossy: Jan 31 -> Feb 28 even in leap years).
//
// time.Time.AddDate is deliberately avoided here: it normalizes overflow, so
// Jan 31 + one month would land on Mar 2 or Mar 3 instead of a February date.
func nextMonth(t time.Time) time.Time {
	year, month, day := t.Date()
	hour, min, sec := t.Clock()

	month++
	if month > time.December {
		month = time.January
		year++
	}
	if day > daysIn(year, month) {
		day = 28
	}
	return time.Date(year, month, day, hour, min, sec, t.Nanosecond(), t.Location())
}

// nextYear returns the same month/day one year later. Feb 29 clamps to
// Feb 28 when the target year is not a leap year, consistent with the
// monthly clamp policy.
func nextYear(t time.Time) time.Time {
	year, month, day := t.Date()
	hour, min, sec := t.Clock()

	year++
	if day > daysIn(year, month) {
		day = 28
	}
	return time.Date(year, month, day, hour, min, sec, t.Nanosecond(), t.Location())
}

// daysIn returns the number of days in the given month.
func daysIn(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Occurrences materializes the occurrences strictly after start and no later
// than end, up to max entries. It stops early when Advance reports no next
// occurrence. start itself is never included.
func Occurrences(start, end time.Time, f core.Frequency, max int) []time.Time {
	var out []time.Time
	cur := start
	for len(out) < max {
		next, ok := Advance(cur, f)
		if !ok || next.After(end) {
			break
		}
		out = append(out, next)
		cur = next
	}
	return out
}
