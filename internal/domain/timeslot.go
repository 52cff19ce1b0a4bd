package domain

import (
	"time"

	"github.com/google/uuid"
)

// Timeslot is a concrete bookable window of a form.
// StartAt and EndAt are UTC and immutable; BookedCount is changed only by booking.
type Timeslot struct {
	ID          uuid.UUID
	FormID      uuid.UUID
	StartAt     time.Time
	EndAt       time.Time
	Capacity    *int // nil means unlimited
	BookedCount int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsFull checks whether the slot reached its capacity
func (t *Timeslot) IsFull() bool {
	return t.Capacity != nil && t.BookedCount >= *t.Capacity
}

// IsBooked reports whether at least one booking holds the slot
func (t *Timeslot) IsBooked() bool {
	return t.BookedCount > 0
}

// RemainingCapacity returns free places or nil for unlimited slots
func (t *Timeslot) RemainingCapacity() *int {
	if t.Capacity == nil {
		return nil
	}
	remaining := *t.Capacity - t.BookedCount
	if remaining < 0 {
		remaining = 0
	}
	return &remaining
}

// Window returns the slot bounds
func (t *Timeslot) Window() SlotWindow {
	return SlotWindow{StartAt: t.StartAt, EndAt: t.EndAt}
}

// SlotWindow is a half-open [StartAt, EndAt) UTC interval
type SlotWindow struct {
	StartAt time.Time
	EndAt   time.Time
}

// WindowKey identifies a window independently of time.Location
type WindowKey struct {
	Start int64
	End   int64
}

func (w SlotWindow) Key() WindowKey {
	return WindowKey{Start: w.StartAt.UnixNano(), End: w.EndAt.UnixNano()}
}

// TimeRange is an optional [From, To) UTC filter
type TimeRange struct {
	From *time.Time
	To   *time.Time
}

// Page is limit/offset pagination
type Page struct {
	Limit  int
	Offset int
}

// TimeslotFilter selects slots of a form for the availability queries
type TimeslotFilter struct {
	FormID        uuid.UUID
	Now           time.Time // slots starting before Now are excluded
	Range         TimeRange
	OnlyAvailable bool
	Page          Page
}
