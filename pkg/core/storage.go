package core

import (
	"context"
	"time"
)

// Starter is the interface for long-running components such as the dispatcher.
type Starter interface {
	Start(ctx context.Context) error
}

// Storage defines the persistence layer for the maintenance domain.
type Storage interface {
	// Migrate creates the necessary database tables.
	Migrate(ctx context.Context) error

	// Assets
	CreateProperty(ctx context.Context, p *Property) error
	GetProperty(ctx context.Context, id string) (*Property, error)
	ListProperties(ctx context.Context) ([]*Property, error)
	CreateRoom(ctx context.Context, r *Room) error
	ListRooms(ctx context.Context, propertyID string) ([]*Room, error)
	CreateMachine(ctx context.Context, m *Machine) error
	GetMachine(ctx context.Context, id string) (*Machine, error)
	ListMachines(ctx context.Context, roomID string) ([]*Machine, error)
	DeleteMachine(ctx context.Context, id string) error

	// Procedures
	CreateProcedure(ctx context.Context, p *Procedure) error
	GetProcedure(ctx context.Context, id string) (*Procedure, error)
	ListProcedures(ctx context.Context) ([]*Procedure, error)

	// Schedule lifecycle
	CreateSchedule(ctx context.Context, s *PMSchedule) error
	GetSchedule(ctx context.Context, id string) (*PMSchedule, error)
	ListSchedules(ctx context.Context, activeOnly bool) ([]*PMSchedule, error)
	DueSchedules(ctx context.Context, before time.Time, limit int) ([]*PMSchedule, error)

	// AdvanceSchedule moves a schedule forward after dispatch or completion.
	// A nil nextDueAt deactivates the schedule (no further occurrences).
	AdvanceSchedule(ctx context.Context, id string, lastDoneAt *time.Time, nextDueAt *time.Time) error
	DeactivateSchedule(ctx context.Context, id string) error

	// Dispatch locking
	ClaimSchedule(ctx context.Context, before time.Time, dispatcherID string) (*PMSchedule, error)
	ReleaseClaim(ctx context.Context, id string, dispatcherID string) error
	Heartbeat(ctx context.Context, id string, dispatcherID string) error
	ReleaseStaleClaims(ctx context.Context, staleDuration time.Duration) (int64, error)

	// Schedule pause operations
	PauseSchedule(ctx context.Context, id string) error
	ResumeSchedule(ctx context.Context, id string) error
	IsSchedulePaused(ctx context.Context, id string) (bool, error)
	GetPausedSchedules(ctx context.Context) ([]*PMSchedule, error)

	// Executions
	RecordExecution(ctx context.Context, e *PMExecution) error
	ListExecutions(ctx context.Context, scheduleID string, limit int) ([]*PMExecution, error)

	// Work orders
	CreateWorkOrder(ctx context.Context, wo *WorkOrder) error
	GetWorkOrder(ctx context.Context, id string) (*WorkOrder, error)
	ListWorkOrdersByStatus(ctx context.Context, status WorkOrderStatus, limit int) ([]*WorkOrder, error)
	OpenWorkOrders(ctx context.Context, limit int) ([]*WorkOrder, error)
	UpdateWorkOrderStatus(ctx context.Context, id string, status WorkOrderStatus, at time.Time) error

	// Issues
	CreateIssue(ctx context.Context, i *Issue) error
	GetIssue(ctx context.Context, id string) (*Issue, error)
	ListOpenIssues(ctx context.Context, limit int) ([]*Issue, error)
	ResolveIssue(ctx context.Context, id string, at time.Time) error

	// Inspections
	CreateInspection(ctx context.Context, i *Inspection) error
	ListInspections(ctx context.Context, propertyID string, limit int) ([]*Inspection, error)
}
