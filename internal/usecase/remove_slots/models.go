package remove_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TimeslotService/internal/domain"
)

// Request запрос на удаление слотов формы
type Request struct {
	FormID uuid.UUID
	Spec   domain.RemovalSpec
	Now    *time.Time // nil - текущее время, задает дату начала по умолчанию
}

// Response результат удаления
type Response struct {
	RemovedCount       int
	SkippedBookedCount int
}
