package schedule

import "errors"

var (
	ErrInvalidSchedule    = errors.New("schedule: invalid schedule")
	ErrInvalidRemovalSpec = errors.New("schedule: invalid removal spec")
)
