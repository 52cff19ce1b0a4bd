package generate_slots

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TimeslotService/internal/domain"
)

// validateRequest проверяет идентификатор формы; поля расписания проверяет schedule.Expand
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: empty request", ErrInvalidInput)
	}
	if req.FormID == uuid.Nil {
		return fmt.Errorf("%w: form_id is required", ErrInvalidInput)
	}
	return nil
}

// splitExisting отделяет кандидатов, уже существующих с теми же границами
func splitExisting(candidates []domain.SlotWindow, existing []*domain.Timeslot) (fresh []domain.SlotWindow, skipped int) {
	present := make(map[domain.WindowKey]bool, len(existing))
	for _, slot := range existing {
		present[slot.Window().Key()] = true
	}

	fresh = make([]domain.SlotWindow, 0, len(candidates))
	for _, c := range candidates {
		if present[c.Key()] {
			skipped++
			continue
		}
		fresh = append(fresh, c)
	}
	return fresh, skipped
}

// candidatesRange границы [min start, max end) для поиска существующих слотов
func candidatesRange(candidates []domain.SlotWindow) (from, to time.Time) {
	from, to = candidates[0].StartAt, candidates[0].EndAt
	for _, c := range candidates[1:] {
		if c.StartAt.Before(from) {
			from = c.StartAt
		}
		if c.EndAt.After(to) {
			to = c.EndAt
		}
	}
	return from, to
}
