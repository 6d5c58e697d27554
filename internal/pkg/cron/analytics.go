package cron

import (
	"time"

	"github.com/worklens/worklens-backend-go/internal/domain/analytics"
)

type AnalyticsJobs struct {
	analyticsSvc analytics.Service
	interval     time.Duration
}

func NewAnalyticsJobs(analyticsSvc analytics.Service, interval time.Duration) *AnalyticsJobs {
	return &AnalyticsJobs{
		analyticsSvc: analyticsSvc,
		interval:     interval,
	}
}

// RegisterJobs wires the stale payload sweep so interactive requests keep
// serving cached aggregates while refreshes happen off the request path.
func (j *AnalyticsJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("refresh_stale_analytics_payloads", j.interval, j.analyticsSvc.RefreshStale)
}
