package generate_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TimeslotService/internal/domain"
)

// Request запрос на генерацию слотов по расписанию
type Request struct {
	FormID   uuid.UUID
	Schedule domain.Schedule
	Now      *time.Time // nil - текущее время
}

// Response результат генерации
type Response struct {
	AddedCount           int
	SkippedExistingCount int
	Timeslots            []*domain.Timeslot // созданные слоты
}
