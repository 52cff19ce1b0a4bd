package generate_slots

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	ErrInvalidInput        = errors.New("generate_slots: invalid input")
	ErrInvalidSchedule     = errors.New("generate_slots: invalid schedule")
	ErrInvalidTimeZone     = errors.New("generate_slots: invalid time zone")
	ErrFormNotFound        = errors.New("generate_slots: form not found")
	ErrFormArchived        = errors.New("generate_slots: form is archived")
	ErrCapacityMismatch    = errors.New("generate_slots: capacity mismatch")
	ErrTimeslotCapExceeded = errors.New("generate_slots: timeslot cap exceeded")
	ErrInternal            = errors.New("generate_slots: internal error")
)

// CapacityMismatchError вместимость новых слотов отличается от существующих
type CapacityMismatchError struct {
	Existing  *int
	Requested *int
}

func (e *CapacityMismatchError) Error() string {
	return fmt.Sprintf("%v: existing slots have capacity %s, requested %s",
		ErrCapacityMismatch, formatCapacity(e.Existing), formatCapacity(e.Requested))
}

func (e *CapacityMismatchError) Unwrap() error {
	return ErrCapacityMismatch
}

// CapExceededError добавление превысит лимит слотов формы
type CapExceededError struct {
	Existing int
	New      int
	Limit    int
}

func (e *CapExceededError) Error() string {
	return fmt.Sprintf("%v: %d existing + %d new exceeds %d", ErrTimeslotCapExceeded, e.Existing, e.New, e.Limit)
}

func (e *CapExceededError) Unwrap() error {
	return ErrTimeslotCapExceeded
}

func formatCapacity(c *int) string {
	if c == nil {
		return "unlimited"
	}
	return strconv.Itoa(*c)
}
