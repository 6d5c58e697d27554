package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/worklens/worklens-backend-go/internal/config"
	"github.com/worklens/worklens-backend-go/internal/domain/analytics"
	"github.com/worklens/worklens-backend-go/internal/domain/user"
)

// Fetcher retrieves the authoritative aggregate payload for a scope
type Fetcher interface {
	FetchAggregate(ctx context.Context, scopeID string, criteria analytics.FilterCriteria) (*analytics.PartialSnapshot, error)
}

type ServiceImpl struct {
	repo      analytics.Repository
	fetcher   Fetcher // nil disables the authoritative source
	cache     *payloadCache
	refreshes singleflight.Group
	trendDays int
	now       func() time.Time
}

// NewAnalyticsService wires the aggregation engine: repositories feed raw
// records, the fetcher supplies authoritative payloads, and every call
// produces a fresh snapshot.
func NewAnalyticsService(repo analytics.Repository, fetcher Fetcher, cfg config.AnalyticsConfig) (analytics.Service, error) {
	cache, err := newPayloadCache(cfg.CacheSize, cfg.CacheTTL)
	if err != nil {
		return nil, err
	}
	return &ServiceImpl{
		repo:      repo,
		fetcher:   fetcher,
		cache:     cache,
		trendDays: cfg.TrendDays,
		now:       time.Now,
	}, nil
}

// GetOverview returns the fully resolved snapshot for the actor's scope
func (s *ServiceImpl) GetOverview(ctx context.Context, scope analytics.Scope, criteria analytics.FilterCriteria) (*analytics.Snapshot, error) {
	return s.snapshot(ctx, scope, criteria, s.trendDays)
}

// GetTrend returns the daily created/completed series over the given window
func (s *ServiceImpl) GetTrend(ctx context.Context, scope analytics.Scope, days int) ([]analytics.TrendPoint, error) {
	if days <= 0 {
		days = s.trendDays
	}
	snap, err := s.snapshot(ctx, scope, analytics.FilterCriteria{TimeRange: analytics.RangeAll, Status: analytics.StatusAll}, days)
	if err != nil {
		return nil, err
	}
	return snap.Trend, nil
}

// GetRankings returns the per-user leaderboard for the actor's scope
func (s *ServiceImpl) GetRankings(ctx context.Context, scope analytics.Scope, criteria analytics.FilterCriteria) ([]analytics.UserRanking, error) {
	snap, err := s.snapshot(ctx, scope, criteria, s.trendDays)
	if err != nil {
		return nil, err
	}
	return snap.Rankings, nil
}

// GetDepartments returns the per-department rollups for the actor's scope
func (s *ServiceImpl) GetDepartments(ctx context.Context, scope analytics.Scope, criteria analytics.FilterCriteria) ([]analytics.DepartmentRollup, error) {
	snap, err := s.snapshot(ctx, scope, criteria, s.trendDays)
	if err != nil {
		return nil, err
	}
	return snap.Departments, nil
}

// snapshot runs the full pipeline: load raw inputs, normalize, filter,
// compute the fallback, adjust for self-exclusion, and resolve against the
// authoritative payload. Errors from the authoritative side never fail the
// call; only repository failures do.
func (s *ServiceImpl) snapshot(ctx context.Context, scope analytics.Scope, criteria analytics.FilterCriteria, trendDays int) (*analytics.Snapshot, error) {
	if criteria.TimeRange == "" {
		criteria.TimeRange = analytics.RangeAll
	}
	if criteria.Status == "" {
		criteria.Status = analytics.StatusAll
	}
	if err := criteria.Validate(); err != nil {
		return nil, err
	}
	if !user.HasPermission(scope.Role, user.PermissionAnalyticsViewTeam) {
		return nil, analytics.ErrScopeNotPermitted
	}

	now := s.now()
	scopeID, effective, selfExcluded := scopeCriteria(scope, criteria)

	// A department head's query can be narrowed at the repository; other
	// scopes narrow in the filter engine.
	queryDept := effective.Scope.RestrictToDepartmentID

	var (
		taskPayloads  [][]byte
		leavePayloads [][]byte
		allMembers    []analytics.Member
		departments   []analytics.Department
		authoritative *analytics.PartialSnapshot
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		taskPayloads, err = s.repo.ListTaskPayloads(gCtx, queryDept)
		if err != nil {
			return fmt.Errorf("list task payloads: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		leavePayloads, err = s.repo.ListLeavePayloads(gCtx, queryDept)
		if err != nil {
			return fmt.Errorf("list leave payloads: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		allMembers, err = s.repo.ListMembers(gCtx, "")
		if err != nil {
			return fmt.Errorf("list members: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		departments, err = s.repo.ListDepartments(gCtx)
		if err != nil {
			return fmt.Errorf("list departments: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		// Fetch failures degrade to local computation, never fail the group
		authoritative = s.authoritative(gCtx, scopeID, criteria, now)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	records := NormalizeRecords(analytics.KindTask, taskPayloads)
	records = append(records, NormalizeRecords(analytics.KindLeave, leavePayloads)...)
	filtered := ApplyFilters(records, effective, allMembers, now)

	population := measuredPopulation(scope, allMembers)
	if selfExcluded {
		// The adjustment only applies when the actor is actually part of
		// the measured population; an actor rostered elsewhere was never
		// counted, locally or remotely.
		var found bool
		population, found = ExcludeActor(population, scope.ActorID)
		if found {
			authoritative = AdjustPartial(authoritative, scope.Role)
		}
	}

	scopedDepartments := departments
	if queryDept != "" {
		scopedDepartments = nil
		for _, d := range departments {
			if d.ID == queryDept {
				scopedDepartments = append(scopedDepartments, d)
			}
		}
	}

	fallback := Compute(filtered, population, scopedDepartments, now, trendDays)
	snap := Resolve(authoritative, fallback)
	return &snap, nil
}

// scopeCriteria applies role-based restriction on top of the caller's
// criteria and returns the scope id used for the authoritative lookup. A
// self-measurable actor is excluded from the record set here; the population
// adjustment happens after loading.
func scopeCriteria(scope analytics.Scope, criteria analytics.FilterCriteria) (scopeID string, effective analytics.FilterCriteria, selfExcluded bool) {
	effective = criteria
	switch scope.Role {
	case user.RoleManager:
		effective.Scope.RestrictToManagerID = scope.ActorID
		return "manager:" + scope.ActorID, effective, false
	case user.RoleDepartmentHead:
		effective.Scope.RestrictToDepartmentID = scope.DepartmentID
		effective.Scope.ExcludeUserID = scope.ActorID
		return "department:" + scope.DepartmentID, effective, scope.Role.SelfMeasurable()
	default:
		return "org", effective, false
	}
}

// measuredPopulation picks the member set the metrics are measured against
func measuredPopulation(scope analytics.Scope, allMembers []analytics.Member) []analytics.Member {
	switch scope.Role {
	case user.RoleManager:
		var reports []analytics.Member
		for _, m := range allMembers {
			if m.ManagerID == scope.ActorID {
				reports = append(reports, m)
			}
		}
		return reports
	case user.RoleDepartmentHead:
		var dept []analytics.Member
		for _, m := range allMembers {
			if m.DepartmentID == scope.DepartmentID {
				dept = append(dept, m)
			}
		}
		return dept
	default:
		return allMembers
	}
}

// authoritative returns the remote payload for the scope, serving cached
// values fresh or stale; a stale hit triggers an async refresh
// (stale-while-revalidate). Any failure yields nil and the caller falls back
// to local computation.
func (s *ServiceImpl) authoritative(ctx context.Context, scopeID string, criteria analytics.FilterCriteria, now time.Time) *analytics.PartialSnapshot {
	if s.fetcher == nil {
		return nil
	}

	key := cacheKey(scopeID, criteria)
	if payload, stale, ok := s.cache.Get(key, now); ok {
		if stale {
			go s.refresh(scopeID, criteria)
		}
		return payload
	}

	payload, err := s.fetcher.FetchAggregate(ctx, scopeID, criteria)
	if err != nil {
		slog.Warn("Authoritative fetch failed, using local computation",
			"scope_id", scopeID, "error", err)
		return nil
	}
	s.cache.Add(key, scopeID, criteria, payload, now)
	return payload
}

// refreshTimeout bounds a single background refetch
const refreshTimeout = 10 * time.Second

// refresh refetches one payload. Concurrent stale hits on the same key
// collapse into a single upstream fetch.
func (s *ServiceImpl) refresh(scopeID string, criteria analytics.FilterCriteria) {
	key := cacheKey(scopeID, criteria)
	_, _, _ = s.refreshes.Do(key, func() (interface{}, error) {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()

		payload, err := s.fetcher.FetchAggregate(ctx, scopeID, criteria)
		if err != nil {
			slog.Warn("Background refresh failed, keeping stale payload",
				"scope_id", scopeID, "error", err)
			return nil, err
		}
		s.cache.Add(key, scopeID, criteria, payload, s.now())
		return nil, nil
	})
}

// RefreshStale refetches every cache entry past its TTL; wired to the cron
// scheduler so interactive requests rarely pay the refresh cost.
func (s *ServiceImpl) RefreshStale(ctx context.Context) error {
	if s.fetcher == nil {
		return nil
	}

	entries := s.cache.StaleEntries(s.now())
	refreshed := 0
	for _, entry := range entries {
		payload, err := s.fetcher.FetchAggregate(ctx, entry.scopeID, entry.criteria)
		if err != nil {
			slog.Warn("Cron: Stale refresh failed", "scope_id", entry.scopeID, "error", err)
			continue
		}
		s.cache.Add(cacheKey(entry.scopeID, entry.criteria), entry.scopeID, entry.criteria, payload, s.now())
		refreshed++
	}

	if len(entries) > 0 {
		slog.Info("Cron: Refreshed stale analytics payloads", "stale", len(entries), "refreshed", refreshed)
	}
	return nil
}
