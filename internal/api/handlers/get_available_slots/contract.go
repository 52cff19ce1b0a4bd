package get_available_slots

import (
	"context"

	"github.com/m04kA/SMC-TimeslotService/internal/service/availability/models"
)

type AvailableSlotsService interface {
	ListAvailable(ctx context.Context, req *models.ListRequest) (*models.TimeslotListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
