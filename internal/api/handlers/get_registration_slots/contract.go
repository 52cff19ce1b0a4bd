package get_registration_slots

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TimeslotService/internal/service/bookings/models"
)

type BookingsService interface {
	GetRegistrationTimeslots(ctx context.Context, registrationID uuid.UUID) (*models.RegistrationTimeslotsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
