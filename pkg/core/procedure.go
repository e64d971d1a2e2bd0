package core

import (
	"time"
)

// Procedure describes how a recurring maintenance task is performed.
type Procedure struct {
	ID               string    `gorm:"primaryKey;size:36"`
	Title            string    `gorm:"size:255;not null"`
	Instructions     string    `gorm:"type:text"`
	Frequency        Frequency `gorm:"size:20"` // default cadence for new schedules
	CronExpr         string    `gorm:"size:255"` // optional ad-hoc cadence, overrides Frequency
	EstimatedMinutes int       `gorm:"default:0"`
	CreatedAt        time.Time `gorm:"autoCreateTime"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime"`
}

// PMSchedule binds a procedure to a machine at a given cadence.
//
// ClaimedBy/ClaimedUntil implement dispatch locking: a dispatcher claims a
// due schedule before generating a work order so that concurrent dispatchers
// never double-dispatch the same occurrence.
type PMSchedule struct {
	ID           string     `gorm:"primaryKey;size:36"`
	MachineID    string     `gorm:"index;size:36;not null"`
	ProcedureID  string     `gorm:"index;size:36;not null"`
	Frequency    Frequency  `gorm:"size:20;not null"`
	NextDueAt    *time.Time `gorm:"index"`
	LastDoneAt   *time.Time
	Active       bool       `gorm:"index;default:true"`
	Paused       bool       `gorm:"index;default:false"`
	ClaimedBy    string     `gorm:"size:255"`
	ClaimedUntil *time.Time `gorm:"index"`
	CreatedAt    time.Time  `gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime"`
}

// ExecutionStatus records how a scheduled occurrence was resolved.
type ExecutionStatus string

const (
	ExecCompleted ExecutionStatus = "completed"
	ExecMissed    ExecutionStatus = "missed"
	ExecSkipped   ExecutionStatus = "skipped"
)

// PMExecution is one resolved occurrence of a PM schedule.
type PMExecution struct {
	ID          string          `gorm:"primaryKey;size:36"`
	ScheduleID  string          `gorm:"index;size:36;not null"`
	WorkOrderID *string         `gorm:"index;size:36"`
	Status      ExecutionStatus `gorm:"size:20;default:'completed'"`
	DoneAt      time.Time       `gorm:"index;not null"`
	DoneBy      string          `gorm:"size:255"`
	Notes       string          `gorm:"type:text"`
	CreatedAt   time.Time       `gorm:"autoCreateTime"`
}
