package timeslot

import "errors"

var (
	ErrBuildQuery = errors.New("timeslot.repository: failed to build query")
	ErrExecQuery  = errors.New("timeslot.repository: failed to execute query")
	ErrScanRow    = errors.New("timeslot.repository: failed to scan row")
	ErrNotInTx    = errors.New("timeslot.repository: row lock requires a transaction")
)
