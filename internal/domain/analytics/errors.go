package analytics

import "errors"

var (
	ErrInvalidTimeRange  = errors.New("Invalid time range")
	ErrInvalidStatus     = errors.New("Invalid status filter")
	ErrScopeNotPermitted = errors.New("Role cannot view team analytics")
)
