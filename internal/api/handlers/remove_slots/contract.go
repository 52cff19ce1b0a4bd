package remove_slots

import (
	"context"

	removeSlots "github.com/m04kA/SMC-TimeslotService/internal/usecase/remove_slots"
)

type RemoveSlotsUseCase interface {
	Execute(ctx context.Context, req *removeSlots.Request) (*removeSlots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
