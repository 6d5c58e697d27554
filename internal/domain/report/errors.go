package report

import "errors"

var (
	ErrUnsupportedFormat = errors.New("Unsupported export format")
)
