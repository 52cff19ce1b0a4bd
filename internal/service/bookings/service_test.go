package bookings

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TimeslotService/internal/domain"
	"github.com/m04kA/SMC-TimeslotService/pkg/logger"
)

type stubRepo struct {
	booked []*domain.BookedTimeslot
	err    error
}

func (r *stubRepo) ListByRegistration(_ context.Context, _ uuid.UUID) ([]*domain.BookedTimeslot, error) {
	return r.booked, r.err
}

func booked(start time.Time) *domain.BookedTimeslot {
	return &domain.BookedTimeslot{
		BookingID: uuid.New(),
		BookedAt:  start.Add(-time.Hour),
		Timeslot: domain.Timeslot{
			ID: uuid.New(), FormID: uuid.New(), StartAt: start, EndAt: start.Add(30 * time.Minute),
		},
	}
}

func TestGetRegistrationTimeslots(t *testing.T) {
	start := time.Date(2026, time.October, 5, 10, 0, 0, 0, time.UTC)
	repo := &stubRepo{booked: []*domain.BookedTimeslot{booked(start), booked(start.Add(time.Hour))}}
	svc := NewService(repo, logger.NewWithWriter(io.Discard, logger.LevelError))
	regID := uuid.New()

	resp, err := svc.GetRegistrationTimeslots(context.Background(), regID)
	require.NoError(t, err)
	assert.Equal(t, regID, resp.RegistrationID)
	require.Len(t, resp.Timeslots, 2)
	assert.Equal(t, repo.booked[0].Timeslot.ID, resp.Timeslots[0].TimeslotID)
	assert.Equal(t, start, resp.Timeslots[0].StartAt)
}

func TestGetRegistrationTimeslots_Errors(t *testing.T) {
	svc := NewService(&stubRepo{err: errors.New("db down")}, logger.NewWithWriter(io.Discard, logger.LevelError))

	_, err := svc.GetRegistrationTimeslots(context.Background(), uuid.Nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.GetRegistrationTimeslots(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExportCalendar(t *testing.T) {
	start := time.Date(2026, time.October, 5, 10, 0, 0, 0, time.UTC)
	repo := &stubRepo{booked: []*domain.BookedTimeslot{booked(start)}}
	svc := NewService(repo, logger.NewWithWriter(io.Discard, logger.LevelError))

	out, err := svc.ExportCalendar(context.Background(), uuid.New(), start)
	require.NoError(t, err)

	cal, err := ical.ParseCalendar(strings.NewReader(out))
	require.NoError(t, err)
	assert.Len(t, cal.Events(), 1)
}
