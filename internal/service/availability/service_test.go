package availability

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
	"github.com/m04kA/SMC-TimeslotService/internal/service/availability/models"
	"github.com/m04kA/SMC-TimeslotService/pkg/logger"
	"github.com/m04kA/SMC-TimeslotService/pkg/ptr"
)

var now = time.Date(2026, time.October, 5, 12, 0, 0, 0, time.UTC)

func hour(h int) time.Time {
	return now.Add(time.Duration(h) * time.Hour)
}

type fixture struct {
	svc    *Service
	formID uuid.UUID
	ids    map[string]uuid.UUID
}

// newFixture: прошедший слот, полный слот, свободный с вместимостью и безлимитный
func newFixture(t *testing.T, opts Options) *fixture {
	t.Helper()
	fx := storagetest.Open(t)
	slots := timeslotRepo.NewRepository(fx.DB, fx.Dialect, 0)
	formID := fx.CreateForm(t, nil, domain.FormStatusPublished)

	ids := map[string]uuid.UUID{
		"past":      uuid.New(),
		"full":      uuid.New(),
		"open":      uuid.New(),
		"unlimited": uuid.New(),
	}
	created := time.Now().UTC()
	mk := func(name string, start time.Time, capacity *int) *domain.Timeslot {
		return &domain.Timeslot{
			ID: ids[name], FormID: formID, StartAt: start, EndAt: start.Add(time.Hour),
			Capacity: capacity, CreatedAt: created, UpdatedAt: created,
		}
	}
	_, err := slots.CreateBatch(context.Background(), []*domain.Timeslot{
		mk("past", hour(-2), nil),
		mk("full", hour(1), ptr.Ptr(1)),
		mk("open", hour(2), ptr.Ptr(3)),
		mk("unlimited", hour(3), nil),
	})
	require.NoError(t, err)
	fx.SetBookedCount(t, ids["full"], 1)
	fx.SetBookedCount(t, ids["open"], 1)

	svc := NewService(
		formRepo.NewRepository(fx.DB, fx.Dialect),
		slots,
		logger.NewWithWriter(io.Discard, logger.LevelError),
		opts,
	)
	return &fixture{svc: svc, formID: formID, ids: ids}
}

func slotIDs(resp *models.TimeslotListResponse) []uuid.UUID {
	result := make([]uuid.UUID, 0, len(resp.Timeslots))
	for _, s := range resp.Timeslots {
		result = append(result, s.ID)
	}
	return result
}

func TestListAvailable(t *testing.T) {
	f := newFixture(t, Options{})

	resp, err := f.svc.ListAvailable(context.Background(), &models.ListRequest{FormID: f.formID, Now: &now})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{f.ids["open"], f.ids["unlimited"]}, slotIDs(resp))
	assert.Equal(t, domain.DefaultPageLimit, resp.Limit)

	open := resp.Timeslots[0]
	assert.Equal(t, 2, *open.RemainingCapacity)
	assert.False(t, open.IsFull)
	assert.Nil(t, resp.Timeslots[1].RemainingCapacity)
}

func TestListUpcoming_IncludesFull(t *testing.T) {
	f := newFixture(t, Options{})

	resp, err := f.svc.ListUpcoming(context.Background(), &models.ListRequest{FormID: f.formID, Now: &now})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{f.ids["full"], f.ids["open"], f.ids["unlimited"]}, slotIDs(resp))
	assert.True(t, resp.Timeslots[0].IsFull)
}

func TestList_RangeAndPagination(t *testing.T) {
	f := newFixture(t, Options{DefaultLimit: 10, MaxLimit: 2})
	ctx := context.Background()

	resp, err := f.svc.ListUpcoming(ctx, &models.ListRequest{
		FormID: f.formID, Now: &now, From: ptr.Ptr(hour(1)), To: ptr.Ptr(hour(3)),
	})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{f.ids["full"], f.ids["open"]}, slotIDs(resp))
	assert.Equal(t, 2, resp.Limit)

	resp, err = f.svc.ListUpcoming(ctx, &models.ListRequest{
		FormID: f.formID, Now: &now, Limit: ptr.Ptr(50), Offset: ptr.Ptr(2),
	})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{f.ids["unlimited"]}, slotIDs(resp))
	assert.Equal(t, 2, resp.Limit)
	assert.Equal(t, 2, resp.Offset)
}

func TestList_Errors(t *testing.T) {
	f := newFixture(t, Options{})
	ctx := context.Background()

	tests := []struct {
		name string
		req  *models.ListRequest
		want error
	}{
		{"unknown form", &models.ListRequest{FormID: uuid.New()}, ErrFormNotFound},
		{"zero limit", &models.ListRequest{FormID: f.formID, Limit: ptr.Ptr(0)}, ErrInvalidInput},
		{"negative offset", &models.ListRequest{FormID: f.formID, Offset: ptr.Ptr(-1)}, ErrInvalidInput},
		{"inverted range", &models.ListRequest{FormID: f.formID, From: ptr.Ptr(hour(3)), To: ptr.Ptr(hour(1))}, ErrInvalidTimeRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.ListAvailable(ctx, tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
