package analytics

import (
	"time"

	"github.com/worklens/worklens-backend-go/internal/domain/analytics"
)

// ApplyFilters narrows records to the working subset every downstream
// computation uses. The current time is threaded explicitly so time-range
// behavior is reproducible in tests. Filters commute; all non-"all"/non-empty
// criteria are applied.
func ApplyFilters(records []analytics.Record, criteria analytics.FilterCriteria, population []analytics.Member, now time.Time) []analytics.Record {
	var cutoff time.Time
	if days := criteria.TimeRange.Days(); days > 0 {
		cutoff = now.AddDate(0, 0, -days)
	}

	byID := make(map[string]analytics.Member, len(population))
	for _, m := range population {
		byID[m.ID] = m
	}

	filtered := make([]analytics.Record, 0, len(records))
	for _, rec := range records {
		if !cutoff.IsZero() && rec.CreatedAt.Before(cutoff) {
			continue
		}
		if criteria.Status != "" && criteria.Status != analytics.StatusAll && rec.Status != criteria.Status {
			continue
		}
		if !inScope(rec, criteria.Scope, byID) {
			continue
		}
		filtered = append(filtered, rec)
	}
	return filtered
}

func inScope(rec analytics.Record, scope analytics.OwnerScope, byID map[string]analytics.Member) bool {
	if scope.ExcludeUserID != "" {
		for _, id := range rec.AssigneeIDs {
			if id == scope.ExcludeUserID {
				return false
			}
		}
	}

	if scope.RestrictToDepartmentID != "" {
		if !recordInDepartment(rec, scope.RestrictToDepartmentID, byID) {
			return false
		}
	}

	if scope.RestrictToManagerID != "" {
		owned := false
		for _, id := range rec.AssigneeIDs {
			if m, ok := byID[id]; ok && m.ManagerID == scope.RestrictToManagerID {
				owned = true
				break
			}
		}
		if !owned {
			return false
		}
	}

	return true
}

// recordInDepartment matches on the record's own department tag first, then
// falls back to any assignee's department membership.
func recordInDepartment(rec analytics.Record, departmentID string, byID map[string]analytics.Member) bool {
	if rec.DepartmentID == departmentID {
		return true
	}
	for _, id := range rec.AssigneeIDs {
		if m, ok := byID[id]; ok && m.DepartmentID == departmentID {
			return true
		}
	}
	return false
}
