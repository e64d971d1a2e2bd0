package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWorkOrderCreated_ImplementsEvent(t *testing.T) {
	var e Event = &WorkOrderCreated{
		WorkOrder: &WorkOrder{ID: "wo-1"},
		Schedule:  &PMSchedule{ID: "s-1"},
		Timestamp: time.Now(),
	}
	assert.NotNil(t, e)
}

func TestScheduleAdvanced_ImplementsEvent(t *testing.T) {
	var e Event = &ScheduleAdvanced{
		Schedule:  &PMSchedule{ID: "s-1"},
		NextDueAt: time.Now(),
		Timestamp: time.Now(),
	}
	assert.NotNil(t, e)
}

func TestScheduleExhausted_ImplementsEvent(t *testing.T) {
	var e Event = &ScheduleExhausted{
		Schedule:  &PMSchedule{ID: "s-1"},
		Timestamp: time.Now(),
	}
	assert.NotNil(t, e)
}

func TestExecutionRecorded_ImplementsEvent(t *testing.T) {
	var e Event = &ExecutionRecorded{
		Execution: &PMExecution{ID: "e-1"},
		Timestamp: time.Now(),
	}
	assert.NotNil(t, e)
}
