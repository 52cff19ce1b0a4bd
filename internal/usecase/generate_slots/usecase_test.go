package generate_slots

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TimeslotService/internal/domain"
	formRepo "github.com/m04kA/SMC-TimeslotService/internal/infra/storage/form"
	"github.com/m04kA/SMC-TimeslotService/internal/infra/storage/storagetest"
	timeslotRepo "github.com/m04kA/SMC-TimeslotService/internal/infra/storage/timeslot"
	"github.com/m04kA/SMC-TimeslotService/pkg/logger"
	"github.com/m04kA/SMC-TimeslotService/pkg/ptr"
	"github.com/m04kA/SMC-TimeslotService/pkg/types"
)

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type countingMetrics struct{ generated int }

func (m *countingMetrics) AddTimeslotsGenerated(n int) { m.generated += n }

var (
	monday  = time.Date(2026, time.October, 5, 0, 0, 0, 0, time.UTC)
	beforeM = time.Date(2026, time.October, 1, 9, 0, 0, 0, time.UTC)
)

type env struct {
	fx      *storagetest.Fixture
	uc      *UseCase
	slots   *timeslotRepo.Repository
	metrics *countingMetrics
}

func newEnv(t *testing.T) *env {
	t.Helper()
	fx := storagetest.Open(t)
	slots := timeslotRepo.NewRepository(fx.DB, fx.Dialect, 0)
	m := &countingMetrics{}

	uc := NewUseCase(
		formRepo.NewRepository(fx.DB, fx.Dialect),
		slots,
		fx.TxManager,
		m,
		logger.NewWithWriter(io.Discard, logger.LevelError),
	)
	uc.timeProvider = fixedTime{t: beforeM}

	return &env{fx: fx, uc: uc, slots: slots, metrics: m}
}

func mondaySchedule() domain.Schedule {
	return domain.Schedule{
		DaysOfWeek:    []string{"monday"},
		WindowStart:   types.TimeString("10:00"),
		WindowEnd:     types.TimeString("12:00"),
		SlotMinutes:   60,
		WeeksAhead:    2,
		StartFromDate: ptr.Ptr(monday),
	}
}

func everyDay(start, end string, weeks int, capacity *int) domain.Schedule {
	return domain.Schedule{
		DaysOfWeek:      []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"},
		WindowStart:     types.TimeString(start),
		WindowEnd:       types.TimeString(end),
		SlotMinutes:     60,
		WeeksAhead:      weeks,
		StartFromDate:   ptr.Ptr(monday),
		CapacityPerSlot: capacity,
	}
}

func (e *env) count(t *testing.T, formID uuid.UUID) int {
	t.Helper()
	n, err := e.slots.CountByForm(context.Background(), formID)
	require.NoError(t, err)
	return n
}

func TestExecute_IsIdempotent(t *testing.T) {
	e := newEnv(t)
	formID := e.fx.CreateForm(t, nil, domain.FormStatusDraft)
	ctx := context.Background()

	first, err := e.uc.Execute(ctx, &Request{FormID: formID, Schedule: mondaySchedule()})
	require.NoError(t, err)
	assert.Equal(t, 4, first.AddedCount)
	assert.Equal(t, 0, first.SkippedExistingCount)
	require.Len(t, first.Timeslots, 4)
	assert.Equal(t, 0, first.Timeslots[0].BookedCount)

	second, err := e.uc.Execute(ctx, &Request{FormID: formID, Schedule: mondaySchedule()})
	require.NoError(t, err)
	assert.Equal(t, 0, second.AddedCount)
	assert.Equal(t, 4, second.SkippedExistingCount)
	assert.Empty(t, second.Timeslots)

	assert.Equal(t, 4, e.count(t, formID))
	assert.Equal(t, 4, e.metrics.generated)
}

func TestExecute_AddsOnlyMissingWindows(t *testing.T) {
	e := newEnv(t)
	formID := e.fx.CreateForm(t, nil, domain.FormStatusDraft)
	ctx := context.Background()

	s := mondaySchedule()
	s.WeeksAhead = 1
	_, err := e.uc.Execute(ctx, &Request{FormID: formID, Schedule: s})
	require.NoError(t, err)

	res, err := e.uc.Execute(ctx, &Request{FormID: formID, Schedule: mondaySchedule()})
	require.NoError(t, err)
	assert.Equal(t, 2, res.AddedCount)
	assert.Equal(t, 2, res.SkippedExistingCount)
	assert.Equal(t, 4, e.count(t, formID))
}

func TestExecute_SkipsPastSlotsUsingRequestNow(t *testing.T) {
	e := newEnv(t)
	formID := e.fx.CreateForm(t, nil, domain.FormStatusDraft)

	s := mondaySchedule()
	s.WeeksAhead = 1
	now := time.Date(2026, time.October, 5, 10, 30, 0, 0, time.UTC)

	res, err := e.uc.Execute(context.Background(), &Request{FormID: formID, Schedule: s, Now: &now})
	require.NoError(t, err)
	require.Equal(t, 1, res.AddedCount)
	assert.Equal(t, time.Date(2026, time.October, 5, 11, 0, 0, 0, time.UTC), res.Timeslots[0].StartAt)
}

func TestExecute_UsesFormTimeZone(t *testing.T) {
	e := newEnv(t)
	formID := e.fx.CreateForm(t, ptr.Ptr("America/Bogota"), domain.FormStatusPublished)

	s := mondaySchedule()
	s.WindowStart = "17:00"
	s.WindowEnd = "19:00"
	s.WeeksAhead = 1

	res, err := e.uc.Execute(context.Background(), &Request{FormID: formID, Schedule: s})
	require.NoError(t, err)
	require.Len(t, res.Timeslots, 2)
	assert.Equal(t, time.Date(2026, time.October, 5, 22, 0, 0, 0, time.UTC), res.Timeslots[0].StartAt)
	assert.Equal(t, time.Date(2026, time.October, 6, 0, 0, 0, 0, time.UTC), res.Timeslots[1].EndAt)
}

func TestExecute_RejectsWholeBatchOverCap(t *testing.T) {
	e := newEnv(t)
	formID := e.fx.CreateForm(t, nil, domain.FormStatusDraft)
	ctx := context.Background()

	// 7 дней * 12 слотов * 2 недели = 168
	_, err := e.uc.Execute(ctx, &Request{FormID: formID, Schedule: everyDay("08:00", "20:00", 2, nil)})
	assert.ErrorIs(t, err, ErrTimeslotCapExceeded)
	assert.Equal(t, 0, e.count(t, formID))

	// 84 существующих + 21 новый = 105
	_, err = e.uc.Execute(ctx, &Request{FormID: formID, Schedule: everyDay("08:00", "20:00", 1, nil)})
	require.NoError(t, err)
	assert.Equal(t, 84, e.count(t, formID))

	_, err = e.uc.Execute(ctx, &Request{FormID: formID, Schedule: everyDay("20:00", "23:00", 1, nil)})
	var exceeded *CapExceededError
	require.ErrorAs(t, err, &exceeded)
	assert.Equal(t, 84, exceeded.Existing)
	assert.Equal(t, 21, exceeded.New)
	assert.Equal(t, domain.MaxTimeslotsPerForm, exceeded.Limit)
	assert.Equal(t, 84, e.count(t, formID))
}

func TestExecute_CapacityMismatch(t *testing.T) {
	e := newEnv(t)
	formID := e.fx.CreateForm(t, nil, domain.FormStatusDraft)
	ctx := context.Background()

	first := mondaySchedule()
	first.CapacityPerSlot = ptr.Ptr(2)
	_, err := e.uc.Execute(ctx, &Request{FormID: formID, Schedule: first})
	require.NoError(t, err)

	second := mondaySchedule()
	second.DaysOfWeek = []string{"tuesday"}
	second.CapacityPerSlot = ptr.Ptr(3)
	_, err = e.uc.Execute(ctx, &Request{FormID: formID, Schedule: second})

	var mismatch *CapacityMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.ErrorIs(t, err, ErrCapacityMismatch)
	assert.Equal(t, 2, *mismatch.Existing)
	assert.Equal(t, 3, *mismatch.Requested)
	assert.Equal(t, 4, e.count(t, formID))

	unlimited := second
	unlimited.CapacityPerSlot = nil
	_, err = e.uc.Execute(ctx, &Request{FormID: formID, Schedule: unlimited})
	assert.ErrorIs(t, err, ErrCapacityMismatch)

	same := second
	same.CapacityPerSlot = ptr.Ptr(2)
	res, err := e.uc.Execute(ctx, &Request{FormID: formID, Schedule: same})
	require.NoError(t, err)
	assert.Equal(t, 4, res.AddedCount)
}

func TestExecute_Errors(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	archived := e.fx.CreateForm(t, nil, domain.FormStatusArchived)
	draft := e.fx.CreateForm(t, nil, domain.FormStatusDraft)

	badSchedule := mondaySchedule()
	badSchedule.SlotMinutes = 7

	badZone := mondaySchedule()
	badZone.TimeZone = ptr.Ptr("Not/AZone")

	tests := []struct {
		name string
		req  *Request
		want error
	}{
		{"nil form id", &Request{Schedule: mondaySchedule()}, ErrInvalidInput},
		{"unknown form", &Request{FormID: uuid.New(), Schedule: mondaySchedule()}, ErrFormNotFound},
		{"archived form", &Request{FormID: archived, Schedule: mondaySchedule()}, ErrFormArchived},
		{"invalid schedule", &Request{FormID: draft, Schedule: badSchedule}, ErrInvalidSchedule},
		{"invalid zone", &Request{FormID: draft, Schedule: badZone}, ErrInvalidTimeZone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.uc.Execute(ctx, tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	assert.Equal(t, 0, e.count(t, draft))
}
