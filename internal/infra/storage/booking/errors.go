package booking

import "errors"

var (
	ErrAlreadyBooked = errors.New("booking.repository: registration already holds the timeslot")
	ErrBuildQuery    = errors.New("booking.repository: failed to build query")
	ErrExecQuery     = errors.New("booking.repository: failed to execute query")
	ErrScanRow       = errors.New("booking.repository: failed to scan row")
)
