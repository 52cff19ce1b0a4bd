package remove_slots

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TimeslotService/internal/domain"
)

// FormRepository интерфейс поиска форм
type FormRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Form, error)
}

// TimeslotRepository интерфейс репозитория слотов
type TimeslotRepository interface {
	GetByFormInRange(ctx context.Context, formID uuid.UUID, from, to time.Time) ([]*domain.Timeslot, error)
	DeleteIfUnbooked(ctx context.Context, id uuid.UUID) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// MetricsRecorder счетчик удаленных слотов
type MetricsRecorder interface {
	AddTimeslotsRemoved(n int)
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
