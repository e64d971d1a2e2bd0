// Package upkeep provides a preventive-maintenance scheduling core: asset and
// procedure records, recurring PM schedules, due-date classification, and a
// dispatcher that turns due schedules into work orders.
//
// This is the main package users should import. It re-exports all public
// types from the internal pkg/ packages for a clean API surface.
//
// Basic usage:
//
//	// Create storage
//	db, _ := gorm.Open(sqlite.Open("upkeep.db"), &gorm.Config{})
//	store := upkeep.NewGormStorage(db)
//	store.Migrate(context.Background())
//
//	// Register a machine and a schedule
//	machine := &upkeep.Machine{RoomID: roomID, Name: "Air handler #1"}
//	store.CreateMachine(ctx, machine)
//	store.CreateSchedule(ctx, &upkeep.PMSchedule{
//	    MachineID:   machine.ID,
//	    ProcedureID: procID,
//	    Frequency:   upkeep.FreqMonthly,
//	    NextDueAt:   &firstDue,
//	})
//
//	// Start the dispatcher
//	d := upkeep.NewDispatcher(store)
//	d.Start(ctx)
package upkeep

import (
	"context"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/upkeepd/upkeep/pkg/core"
	"github.com/upkeepd/upkeep/pkg/dashboard"
	"github.com/upkeepd/upkeep/pkg/dispatcher"
	"github.com/upkeepd/upkeep/pkg/due"
	"github.com/upkeepd/upkeep/pkg/recurrence"
	"github.com/upkeepd/upkeep/pkg/storage"
	"github.com/upkeepd/upkeep/pkg/validate"
)

// Type aliases for the public API
type (
	// Property is a physical site that contains rooms.
	Property = core.Property

	// Room is a location within a property.
	Room = core.Room

	// Machine is a maintainable piece of equipment.
	Machine = core.Machine

	// Procedure describes how a recurring maintenance task is performed.
	Procedure = core.Procedure

	// PMSchedule binds a procedure to a machine at a given cadence.
	PMSchedule = core.PMSchedule

	// PMExecution is one resolved occurrence of a PM schedule.
	PMExecution = core.PMExecution

	// WorkOrder is a dispatchable unit of maintenance work.
	WorkOrder = core.WorkOrder

	// WorkOrderStatus represents the current state of a work order.
	WorkOrderStatus = core.WorkOrderStatus

	// Issue is an ad-hoc defect report against a machine.
	Issue = core.Issue

	// IssueStatus represents the current state of an issue.
	IssueStatus = core.IssueStatus

	// Inspection is a walk-through record over a property or room.
	Inspection = core.Inspection

	// Frequency is the cadence at which a maintenance task repeats.
	Frequency = core.Frequency

	// ExecutionStatus records how a scheduled occurrence was resolved.
	ExecutionStatus = core.ExecutionStatus

	// Storage defines the persistence layer for the maintenance domain.
	Storage = core.Storage

	// Event is the interface for all dispatch events.
	Event = core.Event

	// WorkOrderCreated is emitted when a work order is generated.
	WorkOrderCreated = core.WorkOrderCreated

	// ScheduleAdvanced is emitted when a schedule's due date moves forward.
	ScheduleAdvanced = core.ScheduleAdvanced

	// ScheduleExhausted is emitted when a schedule runs out of occurrences.
	ScheduleExhausted = core.ScheduleExhausted

	// ExecutionRecorded is emitted when a completed occurrence is written.
	ExecutionRecorded = core.ExecutionRecorded

	// GormStorage implements Storage using GORM.
	GormStorage = storage.GormStorage

	// Dispatcher generates work orders from due PM schedules.
	Dispatcher = dispatcher.Dispatcher

	// DispatcherOption configures a Dispatcher.
	DispatcherOption = dispatcher.Option

	// Dashboard computes listing and calendar views from storage.
	Dashboard = dashboard.Service

	// DashboardOption configures a Dashboard.
	DashboardOption = dashboard.Option

	// DashboardRow is one classified schedule in a dashboard list.
	DashboardRow = dashboard.Row

	// DashboardSummary holds the dashboard headline counts.
	DashboardSummary = dashboard.Summary

	// MonthView is the calendar view for a single month.
	MonthView = dashboard.MonthView

	// PoolConfig holds database connection pool configuration.
	PoolConfig = storage.PoolConfig

	// PoolOption configures connection pool settings.
	PoolOption = storage.PoolOption

	// RetryConfig holds backoff settings for transient claim failures.
	RetryConfig = dispatcher.RetryConfig

	// DueStatus represents where an item stands relative to its due date.
	DueStatus = due.Status

	// Classification is the derived due state of a single item.
	Classification = due.Classification

	// Schedule defines when the next occurrence of a recurring task falls.
	Schedule = recurrence.Schedule
)

// Frequency constants
const (
	FreqDaily     = core.FreqDaily
	FreqWeekly    = core.FreqWeekly
	FreqMonthly   = core.FreqMonthly
	FreqQuarterly = core.FreqQuarterly
	FreqYearly    = core.FreqYearly
)

// Work order status constants
const (
	WorkOrderOpen       = core.WorkOrderOpen
	WorkOrderInProgress = core.WorkOrderInProgress
	WorkOrderDone       = core.WorkOrderDone
	WorkOrderCancelled  = core.WorkOrderCancelled
)

// Execution status constants
const (
	ExecCompleted = core.ExecCompleted
	ExecMissed    = core.ExecMissed
	ExecSkipped   = core.ExecSkipped
)

// Issue status constants
const (
	IssueOpen     = core.IssueOpen
	IssueResolved = core.IssueResolved
)

// Due status constants
const (
	StatusOverdue    = due.StatusOverdue
	StatusDueSoon    = due.StatusDueSoon
	StatusOnSchedule = due.StatusOnSchedule
)

// DefaultSoonWindowDays is the default look-ahead window for StatusDueSoon.
const DefaultSoonWindowDays = due.DefaultSoonWindowDays

// Validation limits
const (
	MaxNameLength     = validate.MaxNameLength
	MaxNotesLength    = validate.MaxNotesLength
	MaxSoonWindowDays = validate.MaxSoonWindowDays
	MaxPriority       = validate.MaxPriority
)

// Error variables
var (
	ErrInvalidName        = core.ErrInvalidName
	ErrNameTooLong        = core.ErrNameTooLong
	ErrNotesTooLong       = core.ErrNotesTooLong
	ErrUnknownFrequency   = core.ErrUnknownFrequency
	ErrScheduleInactive   = core.ErrScheduleInactive
	ErrScheduleNotClaimed = core.ErrScheduleNotClaimed
	ErrDuplicateSchedule  = core.ErrDuplicateSchedule
	ErrWorkOrderClosed    = core.ErrWorkOrderClosed
)

// NewGormStorage creates a new GORM-backed storage.
func NewGormStorage(db *gorm.DB) *GormStorage {
	return storage.NewGormStorage(db)
}

// NewGormStorageWithPool creates a new GORM-backed storage with connection
// pooling configured.
func NewGormStorageWithPool(db *gorm.DB, opts ...PoolOption) (*GormStorage, error) {
	return storage.NewGormStorageWithPool(db, opts...)
}

// ConfigurePool applies pool configuration to a GORM database connection.
func ConfigurePool(db *gorm.DB, opts ...PoolOption) error {
	return storage.ConfigurePool(db, opts...)
}

// DefaultPoolConfig returns sensible defaults for connection pooling.
func DefaultPoolConfig() PoolConfig {
	return storage.DefaultPoolConfig()
}

// Pool option builders

// MaxOpenConns sets the maximum number of open connections.
func MaxOpenConns(n int) PoolOption {
	return storage.MaxOpenConns(n)
}

// MaxIdleConns sets the maximum number of idle connections.
func MaxIdleConns(n int) PoolOption {
	return storage.MaxIdleConns(n)
}

// ConnMaxLifetime sets the maximum connection lifetime.
func ConnMaxLifetime(d time.Duration) PoolOption {
	return storage.ConnMaxLifetime(d)
}

// ConnMaxIdleTime sets the maximum idle time for connections.
func ConnMaxIdleTime(d time.Duration) PoolOption {
	return storage.ConnMaxIdleTime(d)
}

// NewDispatcher creates a dispatcher over the given storage.
func NewDispatcher(s Storage, opts ...DispatcherOption) *Dispatcher {
	return dispatcher.New(s, opts...)
}

// NewDashboard creates a dashboard service over the given storage.
func NewDashboard(s Storage, opts ...DashboardOption) *Dashboard {
	return dashboard.NewService(s, opts...)
}

// Dispatcher options

// PollInterval sets how often the dispatcher checks for due schedules.
func PollInterval(d time.Duration) DispatcherOption {
	return dispatcher.PollInterval(d)
}

// Lookahead dispatches schedules due within the given window ahead of now.
func Lookahead(d time.Duration) DispatcherOption {
	return dispatcher.Lookahead(d)
}

// StaleAfter sets how long an untouched claim survives before it is released.
func StaleAfter(d time.Duration) DispatcherOption {
	return dispatcher.StaleAfter(d)
}

// DispatcherID overrides the generated dispatcher identity.
func DispatcherID(id string) DispatcherOption {
	return dispatcher.DispatcherID(id)
}

// ClaimRetry overrides the backoff settings for transient claim failures.
func ClaimRetry(cfg RetryConfig) DispatcherOption {
	return dispatcher.ClaimRetry(cfg)
}

// DefaultRetryConfig returns the default claim retry configuration.
func DefaultRetryConfig() RetryConfig {
	return dispatcher.DefaultRetryConfig()
}

// Logger overrides the dispatcher logger.
func Logger(l *slog.Logger) DispatcherOption {
	return dispatcher.Logger(l)
}

// Dashboard options

// WithSoonWindow sets the dashboard's due-soon look-ahead window in days.
func WithSoonWindow(days int) DashboardOption {
	return dashboard.WithSoonWindow(days)
}

// Advance computes the occurrence after last for the given frequency.
// ok=false means no next occurrence; callers must not reschedule.
func Advance(last time.Time, f Frequency) (time.Time, bool) {
	return recurrence.Advance(last, f)
}

// Occurrences materializes occurrences strictly after start and no later
// than end, up to max entries.
func Occurrences(start, end time.Time, f Frequency, max int) []time.Time {
	return recurrence.Occurrences(start, end, f, max)
}

// Classify classifies dueAt against now using the given due-soon window.
func Classify(dueAt, now time.Time, soonWindowDays int) Classification {
	return due.Classify(dueAt, now, soonWindowDays)
}

// ParseFrequency parses a stored frequency value.
func ParseFrequency(s string) (Frequency, bool) {
	return core.ParseFrequency(s)
}

// Schedule constructors

// Every creates a schedule that repeats at fixed intervals.
func Every(d time.Duration) Schedule {
	return recurrence.Every(d)
}

// Fixed creates a schedule from a named frequency.
func Fixed(f Frequency) Schedule {
	return recurrence.Fixed(f)
}

// Cron creates a schedule from a cron expression.
func Cron(expr string) Schedule {
	return recurrence.Cron(expr)
}

// Validation helpers

// ValidateName validates a display name or title.
func ValidateName(name string) error {
	return validate.ValidateName(name)
}

// SanitizeNotes strips control characters and truncates notes for storage.
func SanitizeNotes(notes string) string {
	return validate.SanitizeNotes(notes)
}

// ClampSoonWindow ensures the due-soon window is within limits.
func ClampSoonWindow(days int) int {
	return validate.ClampSoonWindow(days)
}

// ClampPriority ensures a work order priority is within limits.
func ClampPriority(p int) int {
	return validate.ClampPriority(p)
}

// Schedule pause operations

// PauseSchedule suspends dispatching for a schedule without deactivating it.
func PauseSchedule(ctx context.Context, s Storage, scheduleID string) error {
	return s.PauseSchedule(ctx, scheduleID)
}

// ResumeSchedule resumes a paused schedule.
func ResumeSchedule(ctx context.Context, s Storage, scheduleID string) error {
	return s.ResumeSchedule(ctx, scheduleID)
}

// IsSchedulePaused checks if a schedule is paused.
func IsSchedulePaused(ctx context.Context, s Storage, scheduleID string) (bool, error) {
	return s.IsSchedulePaused(ctx, scheduleID)
}

// GetPausedSchedules returns all paused schedules.
func GetPausedSchedules(ctx context.Context, s Storage) ([]*PMSchedule, error) {
	return s.GetPausedSchedules(ctx)
}
