package core

import (
	"time"
)

// WorkOrderStatus represents the current state of a work order.
type WorkOrderStatus string

const (
	WorkOrderOpen       WorkOrderStatus = "open"
	WorkOrderInProgress WorkOrderStatus = "in_progress"
	WorkOrderDone       WorkOrderStatus = "done"
	WorkOrderCancelled  WorkOrderStatus = "cancelled"
)

// WorkOrder is a dispatchable unit of maintenance work. It is generated from
// a due PM schedule or raised manually from an issue.
type WorkOrder struct {
	ID          string          `gorm:"primaryKey;size:36"`
	ScheduleID  *string         `gorm:"index;size:36"`
	IssueID     *string         `gorm:"index;size:36"`
	MachineID   string          `gorm:"index;size:36;not null"`
	Title       string          `gorm:"size:255;not null"`
	Description string          `gorm:"type:text"`
	Status      WorkOrderStatus `gorm:"index;size:20;default:'open'"`
	Priority    int             `gorm:"index;default:0"` // higher = dispatched first
	DueAt       *time.Time      `gorm:"index"`
	AssignedTo  string          `gorm:"size:255"`
	StartedAt   *time.Time
	CompletedAt *time.Time
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

// IssueStatus represents the current state of an issue.
type IssueStatus string

const (
	IssueOpen     IssueStatus = "open"
	IssueResolved IssueStatus = "resolved"
)

// Issue is an ad-hoc defect report against a machine. Resolving an issue may
// go through a work order, but does not have to.
type Issue struct {
	ID          string      `gorm:"primaryKey;size:36"`
	MachineID   string      `gorm:"index;size:36;not null"`
	ReportedBy  string      `gorm:"size:255"`
	Title       string      `gorm:"size:255;not null"`
	Description string      `gorm:"type:text"`
	Severity    int         `gorm:"default:0"`
	Status      IssueStatus `gorm:"index;size:20;default:'open'"`
	ResolvedAt  *time.Time
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

// Inspection is a walk-through record over a property or a single room.
type Inspection struct {
	ID          string    `gorm:"primaryKey;size:36"`
	PropertyID  string    `gorm:"index;size:36;not null"`
	RoomID      *string   `gorm:"index;size:36"`
	Inspector   string    `gorm:"size:255"`
	Passed      bool      `gorm:"default:true"`
	Notes       string    `gorm:"type:text"`
	PerformedAt time.Time `gorm:"index;not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}
