package export_registration_calendar

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type BookingsService interface {
	ExportCalendar(ctx context.Context, registrationID uuid.UUID, now time.Time) (string, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
