package core

import "time"

// Event is the interface for all dispatch events.
type Event interface {
	eventMarker()
}

// WorkOrderCreated is emitted when a work order is generated for a due schedule.
type WorkOrderCreated struct {
	WorkOrder *WorkOrder
	Schedule  *PMSchedule
	Timestamp time.Time
}

func (*WorkOrderCreated) eventMarker() {}

// ScheduleAdvanced is emitted when a schedule's next due date moves forward.
type ScheduleAdvanced struct {
	Schedule  *PMSchedule
	NextDueAt time.Time
	Timestamp time.Time
}

func (*ScheduleAdvanced) eventMarker() {}

// ScheduleExhausted is emitted when no next occurrence exists for a schedule
// and it is deactivated instead of rescheduled.
type ScheduleExhausted struct {
	Schedule  *PMSchedule
	Timestamp time.Time
}

func (*ScheduleExhausted) eventMarker() {}

// ExecutionRecorded is emitted when a completed occurrence is written.
type ExecutionRecorded struct {
	Execution *PMExecution
	Timestamp time.Time
}

func (*ExecutionRecorded) eventMarker() {}
