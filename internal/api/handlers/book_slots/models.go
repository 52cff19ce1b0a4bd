package book_slots

import (
	"github.com/google/uuid"

	bookSlots "github.com/m04kA/SMC-TimeslotService/internal/usecase/book_slots"
)

// BookSlotsRequest HTTP request model
type BookSlotsRequest struct {
	TimeslotIDs []uuid.UUID `json:"timeslotIds"`
}

// BookingResultResponse HTTP response model, одинаковый для успеха и конфликта
type BookingResultResponse struct {
	Success          bool        `json:"success"`
	BookedIDs        []uuid.UUID `json:"bookedIds"`
	UnavailableIDs   []uuid.UUID `json:"unavailableIds"` // отсутствующие и заполненные
	MissingIDs       []uuid.UUID `json:"missingIds"`
	FullIDs          []uuid.UUID `json:"fullIds"`
	AlreadyBookedIDs []uuid.UUID `json:"alreadyBookedIds"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *BookSlotsRequest) ToUseCaseRequest(registrationID uuid.UUID) *bookSlots.Request {
	return &bookSlots.Request{
		RegistrationID: registrationID,
		TimeslotIDs:    r.TimeslotIDs,
	}
}

// FromUseCaseResponse успешное бронирование
func FromUseCaseResponse(resp *bookSlots.Response) *BookingResultResponse {
	return &BookingResultResponse{
		Success:          resp.Success,
		BookedIDs:        orEmpty(resp.BookedIDs),
		UnavailableIDs:   []uuid.UUID{},
		MissingIDs:       []uuid.UUID{},
		FullIDs:          []uuid.UUID{},
		AlreadyBookedIDs: []uuid.UUID{},
	}
}

// FromConflict диагностика отказа
func FromConflict(conflict *bookSlots.ConflictError) *BookingResultResponse {
	return &BookingResultResponse{
		Success:          false,
		BookedIDs:        []uuid.UUID{},
		UnavailableIDs:   orEmpty(conflict.UnavailableIDs()),
		MissingIDs:       orEmpty(conflict.MissingIDs),
		FullIDs:          orEmpty(conflict.FullIDs),
		AlreadyBookedIDs: orEmpty(conflict.AlreadyBookedIDs),
	}
}

func orEmpty(ids []uuid.UUID) []uuid.UUID {
	if ids == nil {
		return []uuid.UUID{}
	}
	return ids
}
