package dashboard

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jinzhu/now"

	"github.com/upkeepd/upkeep/pkg/core"
	"github.com/upkeepd/upkeep/pkg/due"
	"github.com/upkeepd/upkeep/pkg/recurrence"
	"github.com/upkeepd/upkeep/pkg/validate"
)

// maxCalendarOccurrences bounds how many occurrences a single schedule can
// contribute to one month view.
const maxCalendarOccurrences = 62

// Row is one classified schedule in a dashboard list.
type Row struct {
	Schedule *core.PMSchedule
	DueAt    time.Time
	due.Classification
}

// Summary holds the dashboard headline counts.
type Summary struct {
	Overdue        int
	DueSoon        int
	OnSchedule     int
	OpenWorkOrders int
	OpenIssues     int
}

// CalendarEntry is one scheduled occurrence on the month view.
type CalendarEntry struct {
	ScheduleID string
	MachineID  string
	Day        time.Time
}

// MonthView is the calendar view for a single month.
type MonthView struct {
	Start   time.Time
	End     time.Time
	Entries []CalendarEntry
}

// Service computes dashboard views from storage.
type Service struct {
	storage        core.Storage
	soonWindowDays int
	nowFn          func() time.Time
}

// Option configures a Service.
type Option interface {
	apply(*Service)
}

type optionFunc func(*Service)

func (f optionFunc) apply(s *Service) { f(s) }

// WithSoonWindow sets the due-soon look-ahead window in days.
func WithSoonWindow(days int) Option {
	return optionFunc(func(s *Service) {
		s.soonWindowDays = validate.ClampSoonWindow(days)
	})
}

// WithClock overrides the service clock. Used in tests for determinism.
func WithClock(nowFn func() time.Time) Option {
	return optionFunc(func(s *Service) {
		s.nowFn = nowFn
	})
}

// NewService creates a dashboard service over the given storage.
func NewService(storage core.Storage, opts ...Option) *Service {
	s := &Service{
		storage:        storage,
		soonWindowDays: due.DefaultSoonWindowDays,
		nowFn:          time.Now,
	}
	for _, opt := range opts {
		opt.apply(s)
	}
	return s
}

// classify builds classified rows for all active schedules that carry a due
// date. Schedules without one never appear in dashboard lists.
func (s *Service) classify(ctx context.Context) ([]Row, error) {
	scheds, err := s.storage.ListSchedules(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("dashboard: failed to list schedules: %w", err)
	}

	now := s.nowFn()
	rows := make([]Row, 0, len(scheds))
	for _, sched := range scheds {
		if sched.NextDueAt == nil {
			continue
		}
		rows = append(rows, Row{
			Schedule:       sched,
			DueAt:          *sched.NextDueAt,
			Classification: due.Classify(*sched.NextDueAt, now, s.soonWindowDays),
		})
	}
	return rows, nil
}

// Overdue returns overdue schedules, most overdue first.
func (s *Service) Overdue(ctx context.Context) ([]Row, error) {
	rows, err := s.classify(ctx)
	if err != nil {
		return nil, err
	}

	overdue := rows[:0]
	for _, r := range rows {
		if r.Status == due.StatusOverdue {
			overdue = append(overdue, r)
		}
	}
	sortRows(overdue)
	return overdue, nil
}

// Upcoming returns schedules due within the soon window, earliest first.
func (s *Service) Upcoming(ctx context.Context) ([]Row, error) {
	rows, err := s.classify(ctx)
	if err != nil {
		return nil, err
	}

	upcoming := rows[:0]
	for _, r := range rows {
		if r.Status == due.StatusDueSoon {
			upcoming = append(upcoming, r)
		}
	}
	sortRows(upcoming)
	return upcoming, nil
}

// Summary returns the headline counts for the dashboard.
func (s *Service) Summary(ctx context.Context) (Summary, error) {
	rows, err := s.classify(ctx)
	if err != nil {
		return Summary{}, err
	}

	var sum Summary
	for _, r := range rows {
		switch r.Status {
		case due.StatusOverdue:
			sum.Overdue++
		case due.StatusDueSoon:
			sum.DueSoon++
		default:
			sum.OnSchedule++
		}
	}

	orders, err := s.storage.OpenWorkOrders(ctx, 0)
	if err != nil {
		return Summary{}, fmt.Errorf("dashboard: failed to list work orders: %w", err)
	}
	sum.OpenWorkOrders = len(orders)

	issues, err := s.storage.ListOpenIssues(ctx, 0)
	if err != nil {
		return Summary{}, fmt.Errorf("dashboard: failed to list issues: %w", err)
	}
	sum.OpenIssues = len(issues)

	return sum, nil
}

// Month returns the calendar view for the month containing ref. Each active
// schedule contributes its pending due date plus the materialized occurrences
// that fall inside the month.
func (s *Service) Month(ctx context.Context, ref time.Time) (*MonthView, error) {
	scheds, err := s.storage.ListSchedules(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("dashboard: failed to list schedules: %w", err)
	}

	cal := now.New(ref)
	start := cal.BeginningOfMonth()
	end := cal.EndOfMonth()

	view := &MonthView{Start: start, End: end}
	for _, sched := range scheds {
		if sched.NextDueAt == nil {
			continue
		}
		dueAt := *sched.NextDueAt
		if dueAt.After(end) {
			continue
		}
		if !dueAt.Before(start) {
			view.Entries = append(view.Entries, CalendarEntry{
				ScheduleID: sched.ID,
				MachineID:  sched.MachineID,
				Day:        dueAt,
			})
		}
		for _, occ := range recurrence.Occurrences(dueAt, end, sched.Frequency, maxCalendarOccurrences) {
			if occ.Before(start) {
				continue
			}
			view.Entries = append(view.Entries, CalendarEntry{
				ScheduleID: sched.ID,
				MachineID:  sched.MachineID,
				Day:        occ,
			})
		}
	}

	sort.Slice(view.Entries, func(i, j int) bool {
		if !view.Entries[i].Day.Equal(view.Entries[j].Day) {
			return view.Entries[i].Day.Before(view.Entries[j].Day)
		}
		return view.Entries[i].ScheduleID < view.Entries[j].ScheduleID
	})

	return view, nil
}

// sortRows orders rows by priority score descending, ties by earliest due.
func sortRows(rows []Row) {
	sort.Slice(rows, func(i, j int) bool {
		return due.Less(rows[i].Classification, rows[j].Classification, rows[i].DueAt, rows[j].DueAt)
	})
}
