package book_slots

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TimeslotService/internal/domain"
)

// TimeslotRepository интерфейс репозитория слотов
type TimeslotRepository interface {
	LockByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Timeslot, error)
	IncrementBookedCount(ctx context.Context, ids []uuid.UUID, now time.Time) (int, error)
}

// BookingRepository интерфейс репозитория записей бронирования
type BookingRepository interface {
	GetHeldTimeslotIDs(ctx context.Context, registrationID uuid.UUID, timeslotIDs []uuid.UUID) ([]uuid.UUID, error)
	CreateBatch(ctx context.Context, bookings []*domain.Booking) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// MetricsRecorder счетчик исходов бронирования
type MetricsRecorder interface {
	IncBookingOutcome(outcome string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
