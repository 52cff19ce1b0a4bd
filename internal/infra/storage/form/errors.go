package form

import "errors"

var (
	ErrFormNotFound = errors.New("form.repository: form not found")
	ErrBuildQuery   = errors.New("form.repository: failed to build query")
	ErrExecQuery    = errors.New("form.repository: failed to execute query")
)
