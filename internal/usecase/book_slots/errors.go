package book_slots

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
)

var (
	// ErrInvalidInput пустой список слотов или не задана регистрация
	ErrInvalidInput = errors.New("book_slots: invalid input")

	// ErrBookingConflict часть слотов отсутствует, заполнена или уже забронирована регистрацией
	ErrBookingConflict = errors.New("book_slots: booking conflict")

	// ErrInternal внутренняя ошибка use case
	ErrInternal = errors.New("book_slots: internal error")
)

// ConflictError диагностика отказа: какие слоты и почему не удалось забронировать.
// Ни один слот при этом не изменен.
type ConflictError struct {
	MissingIDs       []uuid.UUID
	FullIDs          []uuid.UUID
	AlreadyBookedIDs []uuid.UUID
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%v: missing=%d, full=%d, already_booked=%d",
		ErrBookingConflict, len(e.MissingIDs), len(e.FullIDs), len(e.AlreadyBookedIDs))
}

func (e *ConflictError) Unwrap() error {
	return ErrBookingConflict
}

// UnavailableIDs объединение отсутствующих и заполненных слотов
func (e *ConflictError) UnavailableIDs() []uuid.UUID {
	result := make([]uuid.UUID, 0, len(e.MissingIDs)+len(e.FullIDs))
	result = append(result, e.MissingIDs...)
	result = append(result, e.FullIDs...)
	sortIDs(result)
	return result
}

func (e *ConflictError) empty() bool {
	return len(e.MissingIDs) == 0 && len(e.FullIDs) == 0 && len(e.AlreadyBookedIDs) == 0
}

func sortIDs(ids []uuid.UUID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
}
