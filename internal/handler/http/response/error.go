package response

import (
	"errors"
	"net/http"

	"github.com/worklens/worklens-backend-go/internal/domain/analytics"
	"github.com/worklens/worklens-backend-go/internal/domain/report"
	"github.com/worklens/worklens-backend-go/internal/domain/user"
	"github.com/worklens/worklens-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Analytics domain errors
	case errors.Is(err, analytics.ErrInvalidTimeRange):
		BadRequest(w, "Invalid time range; expected 7d, 30d, 90d or all", nil)
	case errors.Is(err, analytics.ErrInvalidStatus):
		BadRequest(w, "Invalid status filter", nil)
	case errors.Is(err, analytics.ErrScopeNotPermitted):
		Forbidden(w, "Role cannot view team analytics")

	// Report domain errors
	case errors.Is(err, report.ErrUnsupportedFormat):
		BadRequest(w, "Unsupported export format; expected csv or json", nil)

	// User domain errors
	case errors.Is(err, user.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, user.ErrAnalyticsAccessRequired):
		Forbidden(w, "Analytics access required")
	case errors.Is(err, user.ErrReportExportNotPermitted):
		Forbidden(w, "Report export not permitted")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
