package book_slots

import (
	"fmt"

	"github.com/google/uuid"
)

// validateRequest проверяет запрос и возвращает уникальные идентификаторы в детерминированном порядке
func validateRequest(req *Request) ([]uuid.UUID, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: empty request", ErrInvalidInput)
	}
	if req.RegistrationID == uuid.Nil {
		return nil, fmt.Errorf("%w: registration_id is required", ErrInvalidInput)
	}
	if len(req.TimeslotIDs) == 0 {
		return nil, fmt.Errorf("%w: timeslot_ids must not be empty", ErrInvalidInput)
	}

	seen := make(map[uuid.UUID]bool, len(req.TimeslotIDs))
	ids := make([]uuid.UUID, 0, len(req.TimeslotIDs))
	for _, id := range req.TimeslotIDs {
		if id == uuid.Nil {
			return nil, fmt.Errorf("%w: timeslot_ids contains an empty id", ErrInvalidInput)
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}

	sortIDs(ids)
	return ids, nil
}
