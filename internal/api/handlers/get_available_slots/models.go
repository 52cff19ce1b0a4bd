package get_available_slots

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-TimeslotService/internal/api/handlers"
	"github.com/m04kA/SMC-TimeslotService/internal/service/availability/models"
)

// ToServiceRequest собирает запрос к сервису из пути и query параметров
func ToServiceRequest(formID uuid.UUID, q handlers.ListQuery) *models.ListRequest {
	return &models.ListRequest{
		FormID: formID,
		From:   q.From,
		To:     q.To,
		Limit:  q.Limit,
		Offset: q.Offset,
	}
}
