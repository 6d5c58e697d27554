package http

import (
	"net/http"
	"strconv"

	"github.com/worklens/worklens-backend-go/internal/domain/analytics"
	"github.com/worklens/worklens-backend-go/internal/handler/http/middleware"
	"github.com/worklens/worklens-backend-go/internal/handler/http/response"
	"github.com/worklens/worklens-backend-go/internal/pkg/validator"
)

type AnalyticsHandler interface {
	// GetOverview returns the full resolved snapshot
	GetOverview(w http.ResponseWriter, r *http.Request)
	// GetTrend returns the daily created/completed series
	GetTrend(w http.ResponseWriter, r *http.Request)
	// GetRankings returns the per-user leaderboard
	GetRankings(w http.ResponseWriter, r *http.Request)
	// GetDepartments returns the per-department rollups
	GetDepartments(w http.ResponseWriter, r *http.Request)
}

type analyticsHandlerImpl struct {
	analyticsService analytics.Service
}

func NewAnalyticsHandler(analyticsService analytics.Service) AnalyticsHandler {
	return &analyticsHandlerImpl{analyticsService: analyticsService}
}

var knownStatuses = append(append([]string{analytics.StatusAll}, analytics.TaskStatuses...), analytics.LeaveStatuses...)

// criteriaFromQuery reads time_range and status filters, defaulting both to
// "all". The service validates semantics again; these checks only catch
// malformed query values early with field-level messages.
func criteriaFromQuery(r *http.Request) (analytics.FilterCriteria, error) {
	var errs validator.ValidationErrors

	criteria := analytics.FilterCriteria{
		TimeRange: analytics.TimeRange(r.URL.Query().Get("time_range")),
		Status:    r.URL.Query().Get("status"),
	}
	if criteria.TimeRange == "" {
		criteria.TimeRange = analytics.RangeAll
	}
	if criteria.Status == "" {
		criteria.Status = analytics.StatusAll
	}

	if !criteria.TimeRange.Valid() {
		errs = append(errs, validator.ValidationError{Field: "time_range", Message: "must be one of 7d, 30d, 90d, all"})
	}
	if !validator.IsInSlice(criteria.Status, knownStatuses) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "unknown status"})
	}

	if len(errs) > 0 {
		return analytics.FilterCriteria{}, errs
	}
	return criteria, nil
}

// GetOverview handles GET /analytics/overview
func (h *analyticsHandlerImpl) GetOverview(w http.ResponseWriter, r *http.Request) {
	scope, err := middleware.ActorScope(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	criteria, err := criteriaFromQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.analyticsService.GetOverview(r.Context(), scope, criteria)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetTrend handles GET /analytics/trend
func (h *analyticsHandlerImpl) GetTrend(w http.ResponseWriter, r *http.Request) {
	scope, err := middleware.ActorScope(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	days := 0 // service default
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 90 {
			response.BadRequest(w, "days must be an integer between 1 and 90", nil)
			return
		}
		days = parsed
	}

	result, err := h.analyticsService.GetTrend(r.Context(), scope, days)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetRankings handles GET /analytics/rankings
func (h *analyticsHandlerImpl) GetRankings(w http.ResponseWriter, r *http.Request) {
	scope, err := middleware.ActorScope(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	criteria, err := criteriaFromQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.analyticsService.GetRankings(r.Context(), scope, criteria)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetDepartments handles GET /analytics/departments
func (h *analyticsHandlerImpl) GetDepartments(w http.ResponseWriter, r *http.Request) {
	scope, err := middleware.ActorScope(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	criteria, err := criteriaFromQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.analyticsService.GetDepartments(r.Context(), scope, criteria)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
