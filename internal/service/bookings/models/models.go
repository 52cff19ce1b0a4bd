package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TimeslotService/internal/domain"
)

// BookedTimeslotResponse слот, забронированный регистрацией
type BookedTimeslotResponse struct {
	BookingID  uuid.UUID `json:"bookingId"`
	BookedAt   time.Time `json:"bookedAt"`
	TimeslotID uuid.UUID `json:"timeslotId"`
	FormID     uuid.UUID `json:"formId"`
	StartAt    time.Time `json:"startAt"`
	EndAt      time.Time `json:"endAt"`
}

// RegistrationTimeslotsResponse список слотов регистрации
type RegistrationTimeslotsResponse struct {
	RegistrationID uuid.UUID                `json:"registrationId"`
	Timeslots      []BookedTimeslotResponse `json:"timeslots"`
}

// FromDomainBookedTimeslot конвертирует domain.BookedTimeslot в ответ
func FromDomainBookedTimeslot(b *domain.BookedTimeslot) BookedTimeslotResponse {
	return BookedTimeslotResponse{
		BookingID:  b.BookingID,
		BookedAt:   b.BookedAt.UTC(),
		TimeslotID: b.Timeslot.ID,
		FormID:     b.Timeslot.FormID,
		StartAt:    b.Timeslot.StartAt.UTC(),
		EndAt:      b.Timeslot.EndAt.UTC(),
	}
}

// FromDomainBookedTimeslots конвертирует список
func FromDomainBookedTimeslots(list []*domain.BookedTimeslot) []BookedTimeslotResponse {
	result := make([]BookedTimeslotResponse, 0, len(list))
	for _, b := range list {
		result = append(result, FromDomainBookedTimeslot(b))
	}
	return result
}
