package remove_slots

import "errors"

var (
	ErrInvalidInput       = errors.New("remove_slots: invalid input")
	ErrInvalidRemovalSpec = errors.New("remove_slots: invalid removal spec")
	ErrInvalidTimeZone    = errors.New("remove_slots: invalid time zone")
	ErrFormNotFound       = errors.New("remove_slots: form not found")
	ErrFormArchived       = errors.New("remove_slots: form is archived")
	ErrInternal           = errors.New("remove_slots: internal error")
)
