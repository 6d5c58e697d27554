package analytics

import "context"

// Service is the engine's public entry point. No error from normalization or
// the authoritative fetch escapes as a failure; both degrade to a
// well-defined Snapshot.
type Service interface {
	// GetOverview returns the fully resolved snapshot for the actor's scope
	GetOverview(ctx context.Context, scope Scope, criteria FilterCriteria) (*Snapshot, error)

	// GetTrend returns only the daily trend series
	GetTrend(ctx context.Context, scope Scope, days int) ([]TrendPoint, error)

	// GetRankings returns only the per-user leaderboard
	GetRankings(ctx context.Context, scope Scope, criteria FilterCriteria) ([]UserRanking, error)

	// GetDepartments returns only the per-department rollups
	GetDepartments(ctx context.Context, scope Scope, criteria FilterCriteria) ([]DepartmentRollup, error)

	// RefreshStale refetches authoritative payloads for stale cache entries;
	// wired to the background scheduler
	RefreshStale(ctx context.Context) error
}
