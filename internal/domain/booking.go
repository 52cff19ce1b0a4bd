package domain

import (
	"time"

	"github.com/google/uuid"
)

// Booking links one registration to one timeslot.
// A (RegistrationID, TimeslotID) pair exists at most once.
type Booking struct {
	ID             uuid.UUID
	RegistrationID uuid.UUID
	TimeslotID     uuid.UUID
	CreatedAt      time.Time
}

// BookedTimeslot is a timeslot together with the booking that holds it
type BookedTimeslot struct {
	BookingID uuid.UUID
	BookedAt  time.Time
	Timeslot  Timeslot
}
