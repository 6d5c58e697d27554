package http

import (
	"fmt"
	"net/http"

	"github.com/worklens/worklens-backend-go/internal/domain/analytics"
	"github.com/worklens/worklens-backend-go/internal/domain/report"
	"github.com/worklens/worklens-backend-go/internal/handler/http/middleware"
	"github.com/worklens/worklens-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	// ExportAnalytics streams the current snapshot as CSV or JSON
	ExportAnalytics(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	analyticsService analytics.Service
	reportService    report.Service
}

func NewReportHandler(analyticsService analytics.Service, reportService report.Service) ReportHandler {
	return &reportHandlerImpl{
		analyticsService: analyticsService,
		reportService:    reportService,
	}
}

// ExportAnalytics handles GET /reports/analytics/export
func (h *reportHandlerImpl) ExportAnalytics(w http.ResponseWriter, r *http.Request) {
	scope, err := middleware.ActorScope(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	format := report.Format(r.URL.Query().Get("format"))
	if format == "" {
		format = report.FormatCSV
	}
	if !format.Valid() {
		response.HandleError(w, report.ErrUnsupportedFormat)
		return
	}

	criteria, err := criteriaFromQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	snapshot, err := h.analyticsService.GetOverview(r.Context(), scope, criteria)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	export, err := h.reportService.ExportSnapshot(r.Context(), snapshot, format)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(export.Data)
}
