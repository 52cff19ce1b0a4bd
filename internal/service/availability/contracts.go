package availability

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

// TimeslotRepository интерфейс чтения слотов
type TimeslotRepository interface {
	List(ctx context.Context, filter domain.TimeslotFilter) ([]*domain.Timeslot, error)
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
