package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/upkeepd/upkeep/pkg/core"
	"github.com/upkeepd/upkeep/pkg/due"
	"github.com/upkeepd/upkeep/pkg/recurrence"
)

// Dispatcher generates work orders from due PM schedules.
type Dispatcher struct {
	storage core.Storage
	config  Config
	logger  *slog.Logger

	mu          sync.Mutex
	onWorkOrder []func(context.Context, *core.WorkOrder)
	onExhausted []func(context.Context, *core.PMSchedule)
	events      chan core.Event
}

// New creates a dispatcher over the given storage.
func New(storage core.Storage, opts ...Option) *Dispatcher {
	config := Config{
		PollInterval: time.Minute,
		Lookahead:    0,
		StaleAfter:   15 * time.Minute,
		DispatcherID: uuid.New().String(),
		Clock:        time.Now,
		Retry:        DefaultRetryConfig(),
	}

	for _, opt := range opts {
		opt.Apply(&config)
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Dispatcher{
		storage: storage,
		config:  config,
		logger:  logger,
		events:  make(chan core.Event, 1000),
	}
}

// OnWorkOrderCreated registers a hook called after a work order is generated.
func (d *Dispatcher) OnWorkOrderCreated(fn func(context.Context, *core.WorkOrder)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onWorkOrder = append(d.onWorkOrder, fn)
}

// OnScheduleExhausted registers a hook called when a schedule is deactivated
// because no next occurrence exists.
func (d *Dispatcher) OnScheduleExhausted(fn func(context.Context, *core.PMSchedule)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onExhausted = append(d.onExhausted, fn)
}

// Events returns the dispatch event stream. Events are dropped when the
// buffer is full.
func (d *Dispatcher) Events() <-chan core.Event {
	return d.events
}

func (d *Dispatcher) emit(ev core.Event) {
	select {
	case d.events <- ev:
	default:
	}
}

// Start begins polling for due schedules. Blocks until context is cancelled.
func (d *Dispatcher) Start(ctx context.Context) error {
	ticker := time.NewTicker(d.config.PollInterval)
	defer ticker.Stop()

	staleTicker := time.NewTicker(d.config.StaleAfter)
	defer staleTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-staleTicker.C:
			released, err := d.storage.ReleaseStaleClaims(ctx, d.config.StaleAfter)
			if err != nil {
				if !errors.Is(err, context.Canceled) {
					d.logger.Error("failed to release stale claims", "error", err)
				}
				continue
			}
			if released > 0 {
				d.logger.Warn("released stale schedule claims", "count", released)
			}
		case <-ticker.C:
			if err := d.RunOnce(ctx); err != nil {
				if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
					d.logger.Error("dispatch pass failed", "error", err)
				}
			}
		}
	}
}

// RunOnce performs a single dispatch pass: it claims and dispatches every
// schedule currently due (plus the lookahead window), then returns.
func (d *Dispatcher) RunOnce(ctx context.Context) error {
	now := d.config.Clock()
	cutoff := now.Add(d.config.Lookahead)

	for {
		var sched *core.PMSchedule
		err := retryWithBackoff(ctx, d.config.Retry, func() error {
			var claimErr error
			sched, claimErr = d.storage.ClaimSchedule(ctx, cutoff, d.config.DispatcherID)
			return claimErr
		})
		if err != nil {
			return fmt.Errorf("dispatcher: failed to claim schedule: %w", err)
		}
		if sched == nil {
			return nil
		}
		if err := d.dispatch(ctx, sched, now); err != nil {
			// Leave the claim to expire; the schedule will be retried.
			d.logger.Error("failed to dispatch schedule", "schedule_id", sched.ID, "error", err)
			return err
		}
	}
}

// dispatch generates the work order for one claimed schedule and advances it.
func (d *Dispatcher) dispatch(ctx context.Context, sched *core.PMSchedule, now time.Time) error {
	dueAt := *sched.NextDueAt

	proc, err := d.storage.GetProcedure(ctx, sched.ProcedureID)
	if err != nil {
		return fmt.Errorf("dispatcher: failed to load procedure: %w", err)
	}

	title := "Preventive maintenance"
	description := ""
	if proc != nil {
		title = proc.Title
		description = proc.Instructions
	}

	class := due.Classify(dueAt, now, due.DefaultSoonWindowDays)

	wo := &core.WorkOrder{
		ScheduleID:  &sched.ID,
		MachineID:   sched.MachineID,
		Title:       title,
		Description: description,
		DueAt:       &dueAt,
		Priority:    class.PriorityScore,
	}
	if err := d.storage.CreateWorkOrder(ctx, wo); err != nil {
		return fmt.Errorf("dispatcher: failed to create work order: %w", err)
	}

	d.logger.Info("work order created",
		"work_order_id", wo.ID,
		"schedule_id", sched.ID,
		"due_at", dueAt,
		"status", class.Status,
	)
	d.emit(&core.WorkOrderCreated{WorkOrder: wo, Schedule: sched, Timestamp: now})

	d.mu.Lock()
	hooks := d.onWorkOrder
	d.mu.Unlock()
	for _, fn := range hooks {
		fn(ctx, wo)
	}

	next := d.nextOccurrence(sched, proc, dueAt)
	if next == nil {
		if err := d.storage.AdvanceSchedule(ctx, sched.ID, nil, nil); err != nil {
			return fmt.Errorf("dispatcher: failed to deactivate schedule: %w", err)
		}
		d.logger.Info("schedule exhausted", "schedule_id", sched.ID)
		d.emit(&core.ScheduleExhausted{Schedule: sched, Timestamp: now})

		d.mu.Lock()
		exhausted := d.onExhausted
		d.mu.Unlock()
		for _, fn := range exhausted {
			fn(ctx, sched)
		}
		return nil
	}

	if err := d.storage.AdvanceSchedule(ctx, sched.ID, nil, next); err != nil {
		return fmt.Errorf("dispatcher: failed to advance schedule: %w", err)
	}
	d.emit(&core.ScheduleAdvanced{Schedule: sched, NextDueAt: *next, Timestamp: now})
	return nil
}

// nextOccurrence computes the occurrence after dueAt, preferring the
// procedure's cron expression when one is set. Nil means no next occurrence.
func (d *Dispatcher) nextOccurrence(sched *core.PMSchedule, proc *core.Procedure, dueAt time.Time) *time.Time {
	if proc != nil && proc.CronExpr != "" {
		next := recurrence.ForProcedure(proc).Next(dueAt)
		if next.IsZero() {
			return nil
		}
		return &next
	}

	next, ok := recurrence.Advance(dueAt, sched.Frequency)
	if !ok {
		return nil
	}
	return &next
}

// Complete closes a work order and, for schedule-generated orders, records
// the execution and stamps the schedule's last-done date.
func (d *Dispatcher) Complete(ctx context.Context, workOrderID, doneBy, notes string) error {
	wo, err := d.storage.GetWorkOrder(ctx, workOrderID)
	if err != nil {
		return fmt.Errorf("dispatcher: failed to load work order: %w", err)
	}
	if wo == nil {
		return fmt.Errorf("dispatcher: no work order %q", workOrderID)
	}

	now := d.config.Clock()
	if err := d.storage.UpdateWorkOrderStatus(ctx, wo.ID, core.WorkOrderDone, now); err != nil {
		return err
	}

	if wo.ScheduleID == nil {
		return nil
	}

	exec := &core.PMExecution{
		ScheduleID:  *wo.ScheduleID,
		WorkOrderID: &wo.ID,
		Status:      core.ExecCompleted,
		DoneAt:      now,
		DoneBy:      doneBy,
		Notes:       notes,
	}
	if err := d.storage.RecordExecution(ctx, exec); err != nil {
		return fmt.Errorf("dispatcher: failed to record execution: %w", err)
	}
	d.emit(&core.ExecutionRecorded{Execution: exec, Timestamp: now})

	sched, err := d.storage.GetSchedule(ctx, *wo.ScheduleID)
	if err != nil || sched == nil {
		return err
	}
	// Stamp last-done without touching the already-advanced due date.
	return d.storage.AdvanceSchedule(ctx, sched.ID, &now, sched.NextDueAt)
}
