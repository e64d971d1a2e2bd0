package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/upkeepd/upkeep/pkg/core"
	"github.com/upkeepd/upkeep/pkg/validate"
)

// claimTTL is how long a dispatcher holds a claimed schedule before the
// claim can be reclaimed as stale.
const claimTTL = 5 * time.Minute

// GormStorage implements core.Storage using GORM.
type GormStorage struct {
	db *gorm.DB
}

// NewGormStorage creates a new GORM-backed storage.
func NewGormStorage(db *gorm.DB) *GormStorage {
	return &GormStorage{db: db}
}

// limitOrAll maps non-positive limits to "no limit".
func limitOrAll(limit int) int {
	if limit <= 0 {
		return -1
	}
	return limit
}

// Migrate creates the necessary tables.
func (s *GormStorage) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(
		&core.Property{},
		&core.Room{},
		&core.Machine{},
		&core.Procedure{},
		&core.PMSchedule{},
		&core.PMExecution{},
		&core.WorkOrder{},
		&core.Issue{},
		&core.Inspection{},
	)
}

// CreateProperty stores a property.
func (s *GormStorage) CreateProperty(ctx context.Context, p *core.Property) error {
	if err := validate.ValidateName(p.Name); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return s.db.WithContext(ctx).Create(p).Error
}

// GetProperty retrieves a property by ID.
func (s *GormStorage) GetProperty(ctx context.Context, id string) (*core.Property, error) {
	var p core.Property
	err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &p, err
}

// ListProperties retrieves all properties.
func (s *GormStorage) ListProperties(ctx context.Context) ([]*core.Property, error) {
	var props []*core.Property
	err := s.db.WithContext(ctx).Order("name ASC").Find(&props).Error
	return props, err
}

// CreateRoom stores a room.
func (s *GormStorage) CreateRoom(ctx context.Context, r *core.Room) error {
	if err := validate.ValidateName(r.Name); err != nil {
		return err
	}
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return s.db.WithContext(ctx).Create(r).Error
}

// ListRooms retrieves the rooms of a property.
func (s *GormStorage) ListRooms(ctx context.Context, propertyID string) ([]*core.Room, error) {
	var rooms []*core.Room
	err := s.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("name ASC").
		Find(&rooms).Error
	return rooms, err
}

// CreateMachine stores a machine.
func (s *GormStorage) CreateMachine(ctx context.Context, m *core.Machine) error {
	if err := validate.ValidateName(m.Name); err != nil {
		return err
	}
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	m.Notes = validate.SanitizeNotes(m.Notes)
	return s.db.WithContext(ctx).Create(m).Error
}

// GetMachine retrieves a machine by ID.
func (s *GormStorage) GetMachine(ctx context.Context, id string) (*core.Machine, error) {
	var m core.Machine
	err := s.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &m, err
}

// ListMachines retrieves the machines in a room.
func (s *GormStorage) ListMachines(ctx context.Context, roomID string) ([]*core.Machine, error) {
	var machines []*core.Machine
	err := s.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("name ASC").
		Find(&machines).Error
	return machines, err
}

// DeleteMachine removes a machine and deactivates its schedules.
func (s *GormStorage) DeleteMachine(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&core.PMSchedule{}).
			Where("machine_id = ?", id).
			Update("active", false).Error; err != nil {
			return err
		}
		return tx.Delete(&core.Machine{}, "id = ?", id).Error
	})
}

// CreateProcedure stores a procedure.
func (s *GormStorage) CreateProcedure(ctx context.Context, p *core.Procedure) error {
	if err := validate.ValidateName(p.Title); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	p.Instructions = validate.SanitizeNotes(p.Instructions)
	return s.db.WithContext(ctx).Create(p).Error
}

// GetProcedure retrieves a procedure by ID.
func (s *GormStorage) GetProcedure(ctx context.Context, id string) (*core.Procedure, error) {
	var p core.Procedure
	err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &p, err
}

// ListProcedures retrieves all procedures.
func (s *GormStorage) ListProcedures(ctx context.Context) ([]*core.Procedure, error) {
	var procs []*core.Procedure
	err := s.db.WithContext(ctx).Order("title ASC").Find(&procs).Error
	return procs, err
}

// CreateSchedule stores a PM schedule. A machine may only carry one schedule
// per procedure; duplicates are rejected.
func (s *GormStorage) CreateSchedule(ctx context.Context, sched *core.PMSchedule) error {
	if err := validate.ValidateFrequency(sched.Frequency); err != nil {
		return err
	}
	if sched.ID == "" {
		sched.ID = uuid.New().String()
	}
	sched.Active = true

	var count int64
	err := s.db.WithContext(ctx).
		Model(&core.PMSchedule{}).
		Where("machine_id = ?", sched.MachineID).
		Where("procedure_id = ?", sched.ProcedureID).
		Where("active = ?", true).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return core.ErrDuplicateSchedule
	}

	return s.db.WithContext(ctx).Create(sched).Error
}

// GetSchedule retrieves a schedule by ID.
func (s *GormStorage) GetSchedule(ctx context.Context, id string) (*core.PMSchedule, error) {
	var sched core.PMSchedule
	err := s.db.WithContext(ctx).First(&sched, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sched, err
}

// ListSchedules retrieves schedules, optionally only active unpaused ones.
func (s *GormStorage) ListSchedules(ctx context.Context, activeOnly bool) ([]*core.PMSchedule, error) {
	q := s.db.WithContext(ctx)
	if activeOnly {
		q = q.Where("active = ?", true).Where("paused = ?", false)
	}
	var scheds []*core.PMSchedule
	err := q.Order("next_due_at ASC").Find(&scheds).Error
	return scheds, err
}

// DueSchedules returns active unpaused schedules due at or before the cutoff.
func (s *GormStorage) DueSchedules(ctx context.Context, before time.Time, limit int) ([]*core.PMSchedule, error) {
	var scheds []*core.PMSchedule
	err := s.db.WithContext(ctx).
		Where("active = ?", true).
		Where("paused = ?", false).
		Where("next_due_at IS NOT NULL AND next_due_at <= ?", before).
		Order("next_due_at ASC").
		Limit(limitOrAll(limit)).
		Find(&scheds).Error
	return scheds, err
}

// AdvanceSchedule moves a schedule forward after dispatch or completion and
// releases any claim on it. A nil nextDueAt deactivates the schedule.
func (s *GormStorage) AdvanceSchedule(ctx context.Context, id string, lastDoneAt *time.Time, nextDueAt *time.Time) error {
	updates := map[string]any{
		"claimed_by":    "",
		"claimed_until": nil,
	}
	if lastDoneAt != nil {
		updates["last_done_at"] = lastDoneAt
	}
	if nextDueAt != nil {
		updates["next_due_at"] = nextDueAt
	} else {
		updates["active"] = false
	}
	return s.db.WithContext(ctx).
		Model(&core.PMSchedule{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// DeactivateSchedule turns a schedule off without deleting its history.
func (s *GormStorage) DeactivateSchedule(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).
		Model(&core.PMSchedule{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"active":        false,
			"claimed_by":    "",
			"claimed_until": nil,
		}).Error
}

// ClaimSchedule fetches and claims the most overdue unclaimed schedule due
// at or before the cutoff. Returns nil when nothing is due.
func (s *GormStorage) ClaimSchedule(ctx context.Context, before time.Time, dispatcherID string) (*core.PMSchedule, error) {
	var sched core.PMSchedule
	now := time.Now()
	claimUntil := now.Add(claimTTL)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.
			Where("active = ?", true).
			Where("paused = ?", false).
			Where("next_due_at IS NOT NULL AND next_due_at <= ?", before).
			Where("(claimed_until IS NULL OR claimed_until < ?)", now).
			Order("next_due_at ASC").
			First(&sched)

		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return nil
			}
			return result.Error
		}

		sched.ClaimedBy = dispatcherID
		sched.ClaimedUntil = &claimUntil

		return tx.Save(&sched).Error
	})

	if err != nil {
		return nil, err
	}
	if sched.ID == "" {
		return nil, nil
	}
	return &sched, nil
}

// ReleaseClaim drops a dispatcher's claim without advancing the schedule.
// Validates that the dispatcher owns the claim.
func (s *GormStorage) ReleaseClaim(ctx context.Context, id string, dispatcherID string) error {
	result := s.db.WithContext(ctx).
		Model(&core.PMSchedule{}).
		Where("id = ? AND claimed_by = ?", id, dispatcherID).
		Updates(map[string]any{
			"claimed_by":    "",
			"claimed_until": nil,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return core.ErrScheduleNotClaimed
	}
	return nil
}

// Heartbeat extends the claim on a schedule being dispatched.
func (s *GormStorage) Heartbeat(ctx context.Context, id string, dispatcherID string) error {
	claimUntil := time.Now().Add(claimTTL)
	result := s.db.WithContext(ctx).
		Model(&core.PMSchedule{}).
		Where("id = ? AND claimed_by = ?", id, dispatcherID).
		Update("claimed_until", claimUntil)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return core.ErrScheduleNotClaimed
	}
	return nil
}

// ReleaseStaleClaims releases claims whose holder stopped heartbeating.
func (s *GormStorage) ReleaseStaleClaims(ctx context.Context, staleDuration time.Duration) (int64, error) {
	cutoff := time.Now().Add(-staleDuration)
	result := s.db.WithContext(ctx).
		Model(&core.PMSchedule{}).
		Where("claimed_by <> ''").
		Where("claimed_until < ?", cutoff).
		Updates(map[string]any{
			"claimed_by":    "",
			"claimed_until": nil,
		})
	return result.RowsAffected, result.Error
}

// PauseSchedule suspends dispatching for a schedule without deactivating it.
func (s *GormStorage) PauseSchedule(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).
		Model(&core.PMSchedule{}).
		Where("id = ?", id).
		Update("paused", true).Error
}

// ResumeSchedule resumes a paused schedule.
func (s *GormStorage) ResumeSchedule(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).
		Model(&core.PMSchedule{}).
		Where("id = ?", id).
		Update("paused", false).Error
}

// IsSchedulePaused checks if a schedule is paused.
func (s *GormStorage) IsSchedulePaused(ctx context.Context, id string) (bool, error) {
	var sched core.PMSchedule
	err := s.db.WithContext(ctx).First(&sched, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return sched.Paused, nil
}

// GetPausedSchedules returns all paused schedules.
func (s *GormStorage) GetPausedSchedules(ctx context.Context) ([]*core.PMSchedule, error) {
	var scheds []*core.PMSchedule
	err := s.db.WithContext(ctx).
		Where("paused = ?", true).
		Find(&scheds).Error
	return scheds, err
}

// RecordExecution stores a resolved occurrence.
func (s *GormStorage) RecordExecution(ctx context.Context, e *core.PMExecution) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.Status == "" {
		e.Status = core.ExecCompleted
	}
	e.Notes = validate.SanitizeNotes(e.Notes)
	return s.db.WithContext(ctx).Create(e).Error
}

// ListExecutions retrieves the execution history of a schedule, newest first.
func (s *GormStorage) ListExecutions(ctx context.Context, scheduleID string, limit int) ([]*core.PMExecution, error) {
	var execs []*core.PMExecution
	err := s.db.WithContext(ctx).
		Where("schedule_id = ?", scheduleID).
		Order("done_at DESC").
		Limit(limitOrAll(limit)).
		Find(&execs).Error
	return execs, err
}

// CreateWorkOrder stores a work order.
func (s *GormStorage) CreateWorkOrder(ctx context.Context, wo *core.WorkOrder) error {
	if err := validate.ValidateName(wo.Title); err != nil {
		return err
	}
	if wo.ID == "" {
		wo.ID = uuid.New().String()
	}
	if wo.Status == "" {
		wo.Status = core.WorkOrderOpen
	}
	wo.Priority = validate.ClampPriority(wo.Priority)
	wo.Description = validate.SanitizeNotes(wo.Description)
	return s.db.WithContext(ctx).Create(wo).Error
}

// GetWorkOrder retrieves a work order by ID.
func (s *GormStorage) GetWorkOrder(ctx context.Context, id string) (*core.WorkOrder, error) {
	var wo core.WorkOrder
	err := s.db.WithContext(ctx).First(&wo, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &wo, err
}

// ListWorkOrdersByStatus retrieves work orders by status.
func (s *GormStorage) ListWorkOrdersByStatus(ctx context.Context, status core.WorkOrderStatus, limit int) ([]*core.WorkOrder, error) {
	var orders []*core.WorkOrder
	err := s.db.WithContext(ctx).
		Where("status = ?", status).
		Order("priority DESC, due_at ASC").
		Limit(limitOrAll(limit)).
		Find(&orders).Error
	return orders, err
}

// OpenWorkOrders retrieves work orders that still need action.
func (s *GormStorage) OpenWorkOrders(ctx context.Context, limit int) ([]*core.WorkOrder, error) {
	var orders []*core.WorkOrder
	err := s.db.WithContext(ctx).
		Where("status IN ?", []core.WorkOrderStatus{core.WorkOrderOpen, core.WorkOrderInProgress}).
		Order("priority DESC, due_at ASC").
		Limit(limitOrAll(limit)).
		Find(&orders).Error
	return orders, err
}

// UpdateWorkOrderStatus transitions a work order. Closed work orders
// (done or cancelled) cannot be transitioned again.
func (s *GormStorage) UpdateWorkOrderStatus(ctx context.Context, id string, status core.WorkOrderStatus, at time.Time) error {
	updates := map[string]any{"status": status}
	switch status {
	case core.WorkOrderInProgress:
		updates["started_at"] = at
	case core.WorkOrderDone, core.WorkOrderCancelled:
		updates["completed_at"] = at
	}

	result := s.db.WithContext(ctx).
		Model(&core.WorkOrder{}).
		Where("id = ?", id).
		Where("status NOT IN ?", []core.WorkOrderStatus{core.WorkOrderDone, core.WorkOrderCancelled}).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return core.ErrWorkOrderClosed
	}
	return nil
}

// CreateIssue stores an issue report.
func (s *GormStorage) CreateIssue(ctx context.Context, i *core.Issue) error {
	if err := validate.ValidateName(i.Title); err != nil {
		return err
	}
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	if i.Status == "" {
		i.Status = core.IssueOpen
	}
	i.Description = validate.SanitizeNotes(i.Description)
	return s.db.WithContext(ctx).Create(i).Error
}

// GetIssue retrieves an issue by ID.
func (s *GormStorage) GetIssue(ctx context.Context, id string) (*core.Issue, error) {
	var i core.Issue
	err := s.db.WithContext(ctx).First(&i, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &i, err
}

// ListOpenIssues retrieves open issues, most severe first.
func (s *GormStorage) ListOpenIssues(ctx context.Context, limit int) ([]*core.Issue, error) {
	var issues []*core.Issue
	err := s.db.WithContext(ctx).
		Where("status = ?", core.IssueOpen).
		Order("severity DESC, created_at ASC").
		Limit(limitOrAll(limit)).
		Find(&issues).Error
	return issues, err
}

// ResolveIssue marks an issue resolved.
func (s *GormStorage) ResolveIssue(ctx context.Context, id string, at time.Time) error {
	return s.db.WithContext(ctx).
		Model(&core.Issue{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":      core.IssueResolved,
			"resolved_at": at,
		}).Error
}

// CreateInspection stores an inspection record.
func (s *GormStorage) CreateInspection(ctx context.Context, i *core.Inspection) error {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	i.Notes = validate.SanitizeNotes(i.Notes)
	return s.db.WithContext(ctx).Create(i).Error
}

// ListInspections retrieves a property's inspections, newest first.
func (s *GormStorage) ListInspections(ctx context.Context, propertyID string, limit int) ([]*core.Inspection, error) {
	var inspections []*core.Inspection
	err := s.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("performed_at DESC").
		Limit(limitOrAll(limit)).
		Find(&inspections).Error
	return inspections, err
}
