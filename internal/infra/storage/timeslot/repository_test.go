package timeslot_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TimeslotService/internal/domain"
	"github.com/m04kA/SMC-TimeslotService/internal/infra/storage/storagetest"
	"github.com/m04kA/SMC-TimeslotService/internal/infra/storage/timeslot"
	"github.com/m04kA/SMC-TimeslotService/pkg/ptr"
)

var base = time.Date(2026, time.October, 5, 10, 0, 0, 0, time.UTC)

func newSlot(formID uuid.UUID, offsetHours int, capacity *int) *domain.Timeslot {
	start := base.Add(time.Duration(offsetHours) * time.Hour)
	return &domain.Timeslot{
		ID:        uuid.New(),
		FormID:    formID,
		StartAt:   start,
		EndAt:     start.Add(time.Hour),
		Capacity:  capacity,
		CreatedAt: base,
		UpdatedAt: base,
	}
}

func setup(t *testing.T) (*storagetest.Fixture, *timeslot.Repository, uuid.UUID) {
	t.Helper()
	fx := storagetest.Open(t)
	repo := timeslot.NewRepository(fx.DB, fx.Dialect, 0)
	formID := fx.CreateForm(t, nil, domain.FormStatusDraft)
	return fx, repo, formID
}

func TestRepository_CreateBatch_SkipsDuplicates(t *testing.T) {
	_, repo, formID := setup(t)
	ctx := context.Background()

	slots := []*domain.Timeslot{newSlot(formID, 0, nil), newSlot(formID, 1, nil)}
	inserted, err := repo.CreateBatch(ctx, slots)
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)

	again := []*domain.Timeslot{newSlot(formID, 0, nil), newSlot(formID, 2, nil)}
	inserted, err = repo.CreateBatch(ctx, again)
	require.NoError(t, err)
	assert.Equal(t, 1, inserted)

	count, err := repo.CountByForm(ctx, formID)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestRepository_GetByFormInRange_HalfOpen(t *testing.T) {
	_, repo, formID := setup(t)
	ctx := context.Background()

	_, err := repo.CreateBatch(ctx, []*domain.Timeslot{
		newSlot(formID, 0, nil),
		newSlot(formID, 1, nil),
		newSlot(formID, 2, nil),
	})
	require.NoError(t, err)

	got, err := repo.GetByFormInRange(ctx, formID, base, base.Add(2*time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, base, got[0].StartAt)
	assert.Equal(t, base.Add(time.Hour), got[1].StartAt)
	assert.Equal(t, formID, got[0].FormID)
}

func TestRepository_GetFormCapacity(t *testing.T) {
	fx, repo, formID := setup(t)
	ctx := context.Background()

	_, exists, err := repo.GetFormCapacity(ctx, formID)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = repo.CreateBatch(ctx, []*domain.Timeslot{newSlot(formID, 0, ptr.Ptr(3))})
	require.NoError(t, err)

	capacity, exists, err := repo.GetFormCapacity(ctx, formID)
	require.NoError(t, err)
	assert.True(t, exists)
	require.NotNil(t, capacity)
	assert.Equal(t, 3, *capacity)

	unlimitedForm := fx.CreateForm(t, nil, domain.FormStatusDraft)
	_, err = repo.CreateBatch(ctx, []*domain.Timeslot{newSlot(unlimitedForm, 0, nil)})
	require.NoError(t, err)

	capacity, exists, err = repo.GetFormCapacity(ctx, unlimitedForm)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Nil(t, capacity)
}

func TestRepository_List(t *testing.T) {
	fx, repo, formID := setup(t)
	ctx := context.Background()

	past := newSlot(formID, -2, ptr.Ptr(1))
	full := newSlot(formID, 0, ptr.Ptr(1))
	open := newSlot(formID, 1, ptr.Ptr(1))
	later := newSlot(formID, 5, ptr.Ptr(1))
	_, err := repo.CreateBatch(ctx, []*domain.Timeslot{past, full, open, later})
	require.NoError(t, err)
	fx.SetBookedCount(t, full.ID, 1)

	page := domain.Page{Limit: 100}

	upcoming, err := repo.List(ctx, domain.TimeslotFilter{FormID: formID, Now: base, Page: page})
	require.NoError(t, err)
	require.Len(t, upcoming, 3)
	assert.Equal(t, full.ID, upcoming[0].ID)
	assert.True(t, upcoming[0].IsFull())

	available, err := repo.List(ctx, domain.TimeslotFilter{FormID: formID, Now: base, OnlyAvailable: true, Page: page})
	require.NoError(t, err)
	require.Len(t, available, 2)
	assert.Equal(t, open.ID, available[0].ID)
	assert.Equal(t, later.ID, available[1].ID)

	ranged, err := repo.List(ctx, domain.TimeslotFilter{
		FormID: formID,
		Now:    base,
		Range:  domain.TimeRange{From: ptr.Ptr(base.Add(time.Hour)), To: ptr.Ptr(base.Add(5 * time.Hour))},
		Page:   page,
	})
	require.NoError(t, err)
	require.Len(t, ranged, 1)
	assert.Equal(t, open.ID, ranged[0].ID)

	paged, err := repo.List(ctx, domain.TimeslotFilter{FormID: formID, Now: base, Page: domain.Page{Limit: 1, Offset: 1}})
	require.NoError(t, err)
	require.Len(t, paged, 1)
	assert.Equal(t, open.ID, paged[0].ID)
}

func TestRepository_LockByIDs(t *testing.T) {
	fx, repo, formID := setup(t)
	ctx := context.Background()

	a := newSlot(formID, 0, nil)
	b := newSlot(formID, 1, nil)
	_, err := repo.CreateBatch(ctx, []*domain.Timeslot{a, b})
	require.NoError(t, err)

	_, err = repo.LockByIDs(ctx, []uuid.UUID{a.ID})
	assert.ErrorIs(t, err, timeslot.ErrNotInTx)

	err = fx.TxManager.Do(ctx, func(txCtx context.Context) error {
		locked, err := repo.LockByIDs(txCtx, []uuid.UUID{b.ID, uuid.New(), a.ID})
		require.NoError(t, err)
		require.Len(t, locked, 2)
		assert.True(t, locked[0].ID.String() < locked[1].ID.String())
		return nil
	})
	require.NoError(t, err)
}

func TestRepository_IncrementBookedCount_RespectsCapacity(t *testing.T) {
	fx, repo, formID := setup(t)
	ctx := context.Background()

	roomy := newSlot(formID, 0, ptr.Ptr(2))
	full := newSlot(formID, 1, ptr.Ptr(1))
	_, err := repo.CreateBatch(ctx, []*domain.Timeslot{roomy, full})
	require.NoError(t, err)
	fx.SetBookedCount(t, full.ID, 1)

	updated, err := repo.IncrementBookedCount(ctx, []uuid.UUID{roomy.ID, full.ID}, base)
	require.NoError(t, err)
	assert.Equal(t, 1, updated)

	got, err := repo.GetByFormInRange(ctx, formID, base, base.Add(2*time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].BookedCount)
	assert.Equal(t, 1, got[1].BookedCount)
}

func TestRepository_DeleteIfUnbooked(t *testing.T) {
	fx, repo, formID := setup(t)
	ctx := context.Background()

	free := newSlot(formID, 0, nil)
	booked := newSlot(formID, 1, nil)
	_, err := repo.CreateBatch(ctx, []*domain.Timeslot{free, booked})
	require.NoError(t, err)
	fx.SetBookedCount(t, booked.ID, 1)

	deleted, err := repo.DeleteIfUnbooked(ctx, free.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.DeleteIfUnbooked(ctx, booked.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	count, err := repo.CountByForm(ctx, formID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
