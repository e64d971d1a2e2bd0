package due

import (
	"time"
)

// Status represents where a maintenance item stands relative to its due date.
type Status string

const (
	StatusOverdue    Status = "overdue"
	StatusDueSoon    Status = "due_soon"
	StatusOnSchedule Status = "on_schedule"
)

// DefaultSoonWindowDays is the default look-ahead window for StatusDueSoon.
const DefaultSoonWindowDays = 7

// maxPriorityScore caps the overdue priority score.
const maxPriorityScore = 100

// Classification is the derived due state of a single item.
//
// DaysDelta is whole days late for StatusOverdue, and whole days until due
// otherwise. PriorityScore is nonzero only for overdue items.
type Classification struct {
	Status        Status
	DaysDelta     int
	PriorityScore int
}

// Classify classifies dueAt against now. Overdue requires dueAt strictly
// before now; an item due exactly at now is DueSoon with DaysDelta 0.
// soonWindowDays bounds the DueSoon window; values below zero are treated
// as zero.
func Classify(dueAt, now time.Time, soonWindowDays int) Classification {
	if soonWindowDays < 0 {
		soonWindowDays = 0
	}

	if dueAt.Before(now) {
		days := wholeDays(now.Sub(dueAt))
		score := days * 10
		if score > maxPriorityScore {
			score = maxPriorityScore
		}
		return Classification{Status: StatusOverdue, DaysDelta: days, PriorityScore: score}
	}

	days := wholeDays(dueAt.Sub(now))
	if !dueAt.After(now.AddDate(0, 0, soonWindowDays)) {
		return Classification{Status: StatusDueSoon, DaysDelta: days}
	}
	return Classification{Status: StatusOnSchedule, DaysDelta: days}
}

// Less reports whether item a ranks before item b in a priority-sorted list:
// higher PriorityScore first, ties broken by earlier due date.
func Less(a, b Classification, aDueAt, bDueAt time.Time) bool {
	if a.PriorityScore != b.PriorityScore {
		return a.PriorityScore > b.PriorityScore
	}
	return aDueAt.Before(bDueAt)
}

// wholeDays truncates a non-negative duration to whole days.
func wholeDays(d time.Duration) int {
	return int(d / (24 * time.Hour))
}
