package schedule

import (
	"fmt"

	"github.com/m04kA/SMC-TimeslotService/internal/domain"
	"github.com/m04kA/SMC-TimeslotService/pkg/types"
)

// ValidateSchedule проверяет поля расписания до любых вычислений
func ValidateSchedule(s domain.Schedule) error {
	if _, err := ParseWeekdays(s.DaysOfWeek); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
	}

	if err := validateWindow(s.WindowStart, s.WindowEnd); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
	}

	if !domain.IsAllowedSlotMinutes(s.SlotMinutes) {
		return fmt.Errorf("%w: slot_minutes: %d is not one of %v",
			ErrInvalidSchedule, s.SlotMinutes, domain.AllowedSlotMinutes)
	}

	if s.WeeksAhead < domain.MinWeeksAhead || s.WeeksAhead > domain.MaxWeeksAhead {
		return fmt.Errorf("%w: weeks_ahead: %d is outside [%d, %d]",
			ErrInvalidSchedule, s.WeeksAhead, domain.MinWeeksAhead, domain.MaxWeeksAhead)
	}

	if s.CapacityPerSlot != nil && *s.CapacityPerSlot < 1 {
		return fmt.Errorf("%w: capacity_per_slot: must be at least 1, got %d",
			ErrInvalidSchedule, *s.CapacityPerSlot)
	}

	return nil
}

// ValidateRemovalSpec проверяет спецификацию удаления
func ValidateRemovalSpec(s domain.RemovalSpec) error {
	if _, err := ParseWeekdays(s.DaysOfWeek); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRemovalSpec, err)
	}

	if (s.WindowStart == nil) != (s.WindowEnd == nil) {
		return fmt.Errorf("%w: window_start and window_end must be given together", ErrInvalidRemovalSpec)
	}
	if s.WindowStart != nil {
		if err := validateWindow(*s.WindowStart, *s.WindowEnd); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidRemovalSpec, err)
		}
	}

	if (s.EndDate == nil) == (s.WeeksAhead == nil) {
		return fmt.Errorf("%w: exactly one of end_date and weeks_ahead is required", ErrInvalidRemovalSpec)
	}
	if s.WeeksAhead != nil && (*s.WeeksAhead < domain.MinWeeksAhead || *s.WeeksAhead > domain.MaxWeeksAhead) {
		return fmt.Errorf("%w: weeks_ahead: %d is outside [%d, %d]",
			ErrInvalidRemovalSpec, *s.WeeksAhead, domain.MinWeeksAhead, domain.MaxWeeksAhead)
	}

	return nil
}

func validateWindow(start, end types.TimeString) error {
	if err := start.Validate(); err != nil {
		return fmt.Errorf("window_start: %v", err)
	}
	if err := end.Validate(); err != nil {
		return fmt.Errorf("window_end: %v", err)
	}
	if !start.IsBefore(end) {
		return fmt.Errorf("window_start: %s must be before window_end %s", start, end)
	}
	return nil
}
