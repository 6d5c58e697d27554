package user

import "errors"

var (
	ErrUserNotFound             = errors.New("User not found")
	ErrInvalidToken             = errors.New("Invalid or expired token")
	ErrAnalyticsAccessRequired  = errors.New("Analytics access required")
	ErrReportExportNotPermitted = errors.New("Report export not permitted")
)
