package domain

import (
	"time"

	"github.com/m04kA/SMC-TimeslotService/pkg/types"
)

// Schedule is a weekly recurrence used to generate timeslots
type Schedule struct {
	DaysOfWeek      []string
	WindowStart     types.TimeString
	WindowEnd       types.TimeString
	SlotMinutes     int
	WeeksAhead      int
	StartFromDate   *time.Time // only the calendar date is used
	CapacityPerSlot *int       // nil means unlimited
	TimeZone        *string
}

// RemovalSpec selects generated slots to delete.
// Exactly one of EndDate (inclusive) and WeeksAhead bounds the date range.
type RemovalSpec struct {
	DaysOfWeek    []string
	WindowStart   *types.TimeString
	WindowEnd     *types.TimeString
	StartFromDate *time.Time
	EndDate       *time.Time
	WeeksAhead    *int
	TimeZone      *string
}
