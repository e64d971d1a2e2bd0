package core

import (
	"errors"
)

// Validation errors
var (
	ErrInvalidName        = errors.New("upkeep: invalid name (must be non-empty printable text)")
	ErrNameTooLong        = errors.New("upkeep: name too long")
	ErrNotesTooLong       = errors.New("upkeep: notes exceed size limit")
	ErrUnknownFrequency   = errors.New("upkeep: unknown recurrence frequency")
	ErrScheduleInactive   = errors.New("upkeep: schedule is inactive")
	ErrScheduleNotClaimed = errors.New("upkeep: schedule not claimed by this dispatcher")
	ErrDuplicateSchedule  = errors.New("upkeep: machine already has a schedule for this procedure")
	ErrWorkOrderClosed    = errors.New("upkeep: work order already done or cancelled")
)
