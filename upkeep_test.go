package upkeep_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	upkeep "github.com/upkeepd/upkeep"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestStorage creates an in-memory SQLite storage for use in tests.
func setupTestStorage(t *testing.T) *upkeep.GormStorage {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&_busy_timeout=5000"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	store := upkeep.NewGormStorage(db)
	require.NoError(t, store.Migrate(context.Background()))
	return store
}

// ---------------------------------------------------------------------------
// TestFacadeNew - constructors
// ---------------------------------------------------------------------------

func TestFacadeNew_NewGormStorage(t *testing.T) {
	store := setupTestStorage(t)
	assert.NotNil(t, store)
}

func TestFacadeNew_NewDispatcher(t *testing.T) {
	store := setupTestStorage(t)
	d := upkeep.NewDispatcher(store)
	assert.NotNil(t, d)
}

func TestFacadeNew_NewDashboard(t *testing.T) {
	store := setupTestStorage(t)
	dash := upkeep.NewDashboard(store)
	assert.NotNil(t, dash)
}

func TestFacadeNew_CreateAndGetMachine(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()

	m := &upkeep.Machine{Name: "Chiller #2"}
	require.NoError(t, store.CreateMachine(ctx, m))
	assert.NotEmpty(t, m.ID)

	got, err := store.GetMachine(ctx, m.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Chiller #2", got.Name)
}

// ---------------------------------------------------------------------------
// TestFacadeOptions - option builders return non-nil options
// ---------------------------------------------------------------------------

func TestFacadeOptions_DispatcherAllReturnNonNil(t *testing.T) {
	assert.NotNil(t, upkeep.PollInterval(time.Minute))
	assert.NotNil(t, upkeep.Lookahead(time.Hour))
	assert.NotNil(t, upkeep.StaleAfter(10*time.Minute))
	assert.NotNil(t, upkeep.DispatcherID("d-test"))
}

func TestFacadeOptions_DashboardSoonWindow(t *testing.T) {
	assert.NotNil(t, upkeep.WithSoonWindow(14))
}

func TestFacadeOptions_ClaimRetry(t *testing.T) {
	cfg := upkeep.DefaultRetryConfig()
	assert.Greater(t, cfg.MaxAttempts, 0)
	assert.Greater(t, cfg.InitialBackoff, time.Duration(0))
	assert.NotNil(t, upkeep.ClaimRetry(cfg))
}

func TestFacadeOptions_PoolBuilders(t *testing.T) {
	assert.NotNil(t, upkeep.MaxOpenConns(25))
	assert.NotNil(t, upkeep.MaxIdleConns(10))
	assert.NotNil(t, upkeep.ConnMaxLifetime(5*time.Minute))
	assert.NotNil(t, upkeep.ConnMaxIdleTime(time.Minute))

	cfg := upkeep.DefaultPoolConfig()
	assert.Greater(t, cfg.MaxOpenConns, 0)
}

func TestFacadeOptions_NewGormStorageWithPool(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	store, err := upkeep.NewGormStorageWithPool(db, upkeep.MaxOpenConns(5))
	require.NoError(t, err)
	assert.NotNil(t, store)
}

// ---------------------------------------------------------------------------
// TestFacadeRecurrence - Advance and Occurrences re-exports
// ---------------------------------------------------------------------------

func TestFacadeRecurrence_Advance(t *testing.T) {
	last := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	next, ok := upkeep.Advance(last, upkeep.FreqMonthly)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC), next)
}

func TestFacadeRecurrence_AdvanceUnknownFrequency(t *testing.T) {
	_, ok := upkeep.Advance(time.Now(), upkeep.Frequency("fortnightly"))
	assert.False(t, ok)
}

func TestFacadeRecurrence_Occurrences(t *testing.T) {
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	occs := upkeep.Occurrences(start, end, upkeep.FreqWeekly, 10)
	assert.Len(t, occs, 4)
}

// ---------------------------------------------------------------------------
// TestFacadeClassify - due classification re-export
// ---------------------------------------------------------------------------

func TestFacadeClassify_Overdue(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	c := upkeep.Classify(now.AddDate(0, 0, -3), now, upkeep.DefaultSoonWindowDays)
	assert.Equal(t, upkeep.StatusOverdue, c.Status)
	assert.Equal(t, 3, c.DaysDelta)
	assert.Equal(t, 30, c.PriorityScore)
}

func TestFacadeClassify_DueSoon(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	c := upkeep.Classify(now.AddDate(0, 0, 5), now, upkeep.DefaultSoonWindowDays)
	assert.Equal(t, upkeep.StatusDueSoon, c.Status)
	assert.Zero(t, c.PriorityScore)
}

// ---------------------------------------------------------------------------
// TestFacadeScheduleBuilders - Schedule constructors return valid schedules
// ---------------------------------------------------------------------------

func TestFacadeScheduleBuilders_Every(t *testing.T) {
	s := upkeep.Every(time.Minute)
	require.NotNil(t, s)
	next := s.Next(time.Now())
	assert.True(t, next.After(time.Now()))
}

func TestFacadeScheduleBuilders_Fixed(t *testing.T) {
	s := upkeep.Fixed(upkeep.FreqDaily)
	require.NotNil(t, s)
	from := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, from.AddDate(0, 0, 1), s.Next(from))
}

func TestFacadeScheduleBuilders_Cron(t *testing.T) {
	s := upkeep.Cron("* * * * *")
	require.NotNil(t, s)
	next := s.Next(time.Now())
	assert.False(t, next.IsZero())
}

// ---------------------------------------------------------------------------
// TestFacadeValidation - validation and sanitization helpers
// ---------------------------------------------------------------------------

func TestFacadeValidation_ValidateName(t *testing.T) {
	assert.NoError(t, upkeep.ValidateName("Boiler #1"))
	assert.Error(t, upkeep.ValidateName(""))

	long := strings.Repeat("a", upkeep.MaxNameLength+1)
	assert.Error(t, upkeep.ValidateName(long))
}

func TestFacadeValidation_SanitizeNotes(t *testing.T) {
	assert.Equal(t, "checked belts", upkeep.SanitizeNotes("checked belts"))

	long := strings.Repeat("x", upkeep.MaxNotesLength+100)
	truncated := upkeep.SanitizeNotes(long)
	assert.LessOrEqual(t, len([]rune(truncated)), upkeep.MaxNotesLength)
}

func TestFacadeValidation_ClampSoonWindow(t *testing.T) {
	assert.Equal(t, 7, upkeep.ClampSoonWindow(7))
	assert.Equal(t, 0, upkeep.ClampSoonWindow(-5))
	assert.Equal(t, upkeep.MaxSoonWindowDays, upkeep.ClampSoonWindow(upkeep.MaxSoonWindowDays+1))
}

func TestFacadeValidation_ClampPriority(t *testing.T) {
	assert.Equal(t, 50, upkeep.ClampPriority(50))
	assert.Equal(t, 0, upkeep.ClampPriority(-1))
	assert.Equal(t, upkeep.MaxPriority, upkeep.ClampPriority(upkeep.MaxPriority+1))
}

// ---------------------------------------------------------------------------
// TestFacadePause - schedule pause wrappers
// ---------------------------------------------------------------------------

func TestFacadePause_PauseAndResume(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()

	dueAt := time.Now().AddDate(0, 0, 1)
	require.NoError(t, store.CreateSchedule(ctx, &upkeep.PMSchedule{
		ID:          "s-pause",
		MachineID:   "m-1",
		ProcedureID: "p-1",
		Frequency:   upkeep.FreqWeekly,
		NextDueAt:   &dueAt,
	}))

	require.NoError(t, upkeep.PauseSchedule(ctx, store, "s-pause"))
	paused, err := upkeep.IsSchedulePaused(ctx, store, "s-pause")
	require.NoError(t, err)
	assert.True(t, paused)

	all, err := upkeep.GetPausedSchedules(ctx, store)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, upkeep.ResumeSchedule(ctx, store, "s-pause"))
	paused, err = upkeep.IsSchedulePaused(ctx, store, "s-pause")
	require.NoError(t, err)
	assert.False(t, paused)
}

// ---------------------------------------------------------------------------
// TestFacadeConstants - frequency and status constants are defined
// ---------------------------------------------------------------------------

func TestFacadeConstants_FrequencyValues(t *testing.T) {
	assert.Equal(t, upkeep.Frequency("daily"), upkeep.FreqDaily)
	assert.Equal(t, upkeep.Frequency("weekly"), upkeep.FreqWeekly)
	assert.Equal(t, upkeep.Frequency("monthly"), upkeep.FreqMonthly)
	assert.Equal(t, upkeep.Frequency("quarterly"), upkeep.FreqQuarterly)
	assert.Equal(t, upkeep.Frequency("yearly"), upkeep.FreqYearly)
}

func TestFacadeConstants_WorkOrderStatusValues(t *testing.T) {
	assert.Equal(t, upkeep.WorkOrderStatus("open"), upkeep.WorkOrderOpen)
	assert.Equal(t, upkeep.WorkOrderStatus("in_progress"), upkeep.WorkOrderInProgress)
	assert.Equal(t, upkeep.WorkOrderStatus("done"), upkeep.WorkOrderDone)
	assert.Equal(t, upkeep.WorkOrderStatus("cancelled"), upkeep.WorkOrderCancelled)
}

func TestFacadeConstants_DueStatusValues(t *testing.T) {
	assert.NotEqual(t, upkeep.StatusOverdue, upkeep.StatusDueSoon)
	assert.NotEqual(t, upkeep.StatusDueSoon, upkeep.StatusOnSchedule)
}

func TestFacadeParseFrequency(t *testing.T) {
	f, ok := upkeep.ParseFrequency("monthly")
	require.True(t, ok)
	assert.Equal(t, upkeep.FreqMonthly, f)

	_, ok = upkeep.ParseFrequency("hourly")
	assert.False(t, ok)
}
