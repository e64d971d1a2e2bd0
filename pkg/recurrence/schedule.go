package recurrence

import (
	"time"

	"github.com/robfig/cron/v3"

	"github.com/upkeepd/upkeep/pkg/core"
)

// Schedule defines when the next occurrence of a recurring task falls.
// Implementations return the zero time when no next occurrence exists.
type Schedule interface {
	Next(from time.Time) time.Time
}

// everySchedule repeats at fixed intervals.
type everySchedule struct {
	interval time.Duration
}

// Every creates a schedule that repeats at fixed intervals.
func Every(d time.Duration) Schedule {
	return &everySchedule{interval: d}
}

func (s *everySchedule) Next(from time.Time) time.Time {
	return from.Add(s.interval)
}

// fixedSchedule wraps a named frequency behind the Schedule interface so the
// five standard cadences ride the same dispatch path as ad-hoc ones.
type fixedSchedule struct {
	freq core.Frequency
}

// Fixed creates a schedule from a named frequency. Its Next returns the zero
// time for unrecognized frequencies.
func Fixed(f core.Frequency) Schedule {
	return &fixedSchedule{freq: f}
}

func (s *fixedSchedule) Next(from time.Time) time.Time {
	next, ok := Advance(from, s.freq)
	if !ok {
		return time.Time{}
	}
	return next
}

// cronSchedule wraps a cron expression.
type cronSchedule struct {
	schedule cron.Schedule
}

// Cron creates a schedule from a cron expression.
func Cron(expr string) Schedule {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	schedule, err := parser.Parse(expr)
	if err != nil {
		panic("invalid cron expression: " + err.Error())
	}
	return &cronSchedule{schedule: schedule}
}

func (s *cronSchedule) Next(from time.Time) time.Time {
	return s.schedule.Next(from)
}

// ForProcedure picks the schedule for a procedure: its cron expression when
// set, otherwise its named frequency.
func ForProcedure(p *core.Procedure) Schedule {
	if p.CronExpr != "" {
		return Cron(p.CronExpr)
	}
	return Fixed(p.Frequency)
}
