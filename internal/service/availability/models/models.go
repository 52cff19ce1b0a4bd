package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TimeslotService/internal/domain"
)

// Request модели

// ListRequest запрос списка слотов формы
type ListRequest struct {
	FormID uuid.UUID
	Now    *time.Time // nil - текущее время
	From   *time.Time // включительно
	To     *time.Time // не включительно
	Limit  *int
	Offset *int
}

// Response модели

// TimeslotResponse слот для клиента
type TimeslotResponse struct {
	ID                uuid.UUID `json:"id"`
	FormID            uuid.UUID `json:"formId"`
	StartAt           time.Time `json:"startAt"`
	EndAt             time.Time `json:"endAt"`
	Capacity          *int      `json:"capacity"` // null - без ограничения
	BookedCount       int       `json:"bookedCount"`
	RemainingCapacity *int      `json:"remainingCapacity"`
	IsFull            bool      `json:"isFull"`
}

// TimeslotListResponse страница слотов
type TimeslotListResponse struct {
	Timeslots []TimeslotResponse `json:"timeslots"`
	Limit     int                `json:"limit"`
	Offset    int                `json:"offset"`
}

// FromDomainTimeslot конвертирует domain.Timeslot в TimeslotResponse
func FromDomainTimeslot(slot *domain.Timeslot) TimeslotResponse {
	return TimeslotResponse{
		ID:                slot.ID,
		FormID:            slot.FormID,
		StartAt:           slot.StartAt.UTC(),
		EndAt:             slot.EndAt.UTC(),
		Capacity:          slot.Capacity,
		BookedCount:       slot.BookedCount,
		RemainingCapacity: slot.RemainingCapacity(),
		IsFull:            slot.IsFull(),
	}
}

// FromDomainTimeslots конвертирует список слотов
func FromDomainTimeslots(slots []*domain.Timeslot) []TimeslotResponse {
	result := make([]TimeslotResponse, 0, len(slots))
	for _, s := range slots {
		result = append(result, FromDomainTimeslot(s))
	}
	return result
}
