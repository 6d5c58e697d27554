package analytics

import "github.com/worklens/worklens-backend-go/internal/domain/analytics"

// Resolve merges an authoritative remote payload over the locally computed
// fallback. Each metric group resolves independently: a partial payload
// (summary present, trend absent) never drags the whole snapshot down to the
// fallback. A nil payload yields exactly the fallback.
func Resolve(auth *analytics.PartialSnapshot, fallback analytics.Snapshot) analytics.Snapshot {
	out := fallback

	if auth == nil {
		out.Sources = analytics.SourceMap{
			Summary:     computedOr(fallback.Summary.TotalTasks > 0 || fallback.Summary.TotalMembers > 0),
			Status:      computedOr(len(fallback.StatusCounts) > 0),
			Priority:    computedOr(len(fallback.PriorityCounts) > 0),
			Leave:       computedOr(len(fallback.LeaveCounts) > 0),
			Roles:       computedOr(len(fallback.RoleCounts) > 0),
			Departments: computedOr(len(fallback.Departments) > 0),
			Rankings:    computedOr(len(fallback.Rankings) > 0),
			Trend:       computedOr(len(fallback.Trend) > 0),
		}
		return out
	}

	out.Summary, out.Sources.Summary = resolveSummary(auth.Summary, fallback.Summary)
	out.StatusCounts, out.Sources.Status = resolveStatusGroup(auth.StatusCounts, fallback.StatusCounts)
	out.LeaveCounts, out.Sources.Leave = resolveStatusGroup(auth.LeaveCounts, fallback.LeaveCounts)

	if auth.PriorityCounts != nil {
		out.PriorityCounts, out.Sources.Priority = auth.PriorityCounts, analytics.SourceLive
	} else {
		out.Sources.Priority = computedOr(len(fallback.PriorityCounts) > 0)
	}

	if auth.RoleCounts != nil {
		out.RoleCounts, out.Sources.Roles = auth.RoleCounts, analytics.SourceLive
	} else {
		out.Sources.Roles = computedOr(len(fallback.RoleCounts) > 0)
	}

	if auth.Departments != nil {
		out.Departments, out.Sources.Departments = auth.Departments, analytics.SourceLive
	} else {
		out.Sources.Departments = computedOr(len(fallback.Departments) > 0)
	}

	if auth.Rankings != nil {
		out.Rankings, out.Sources.Rankings = auth.Rankings, analytics.SourceLive
	} else {
		out.Sources.Rankings = computedOr(len(fallback.Rankings) > 0)
	}

	if auth.Trend != nil {
		out.Trend, out.Sources.Trend = auth.Trend, analytics.SourceLive
	} else {
		out.Sources.Trend = computedOr(len(fallback.Trend) > 0)
	}

	return out
}

// resolveSummary merges field by field: authoritative values win, absent
// fields keep the fallback value. The source tag reflects whether all, some,
// or none of the fields came from the payload.
func resolveSummary(auth *analytics.PartialSummary, fallback analytics.Summary) (analytics.Summary, analytics.Source) {
	if auth == nil {
		return fallback, computedOr(fallback.TotalTasks > 0 || fallback.TotalMembers > 0)
	}

	out := fallback
	hasLocal := fallback.TotalTasks > 0 || fallback.TotalMembers > 0
	taken, missed := 0, 0
	pick := func(dst *int, src *int) {
		if src != nil {
			*dst = *src
			taken++
			return
		}
		missed++
	}

	pick(&out.TotalTasks, auth.TotalTasks)
	pick(&out.CompletedTasks, auth.CompletedTasks)
	pick(&out.CompletionRate, auth.CompletionRate)
	pick(&out.TotalMembers, auth.TotalMembers)
	pick(&out.ActiveMembers, auth.ActiveMembers)
	pick(&out.AvgTasksPerMember, auth.AvgTasksPerMember)
	pick(&out.EngagementRate, auth.EngagementRate)

	switch {
	case missed == 0:
		return out, analytics.SourceLive
	case taken == 0:
		return out, computedOr(hasLocal)
	case !hasLocal:
		// The unfilled fields are zeros from empty local data, not
		// computed values, so the payload is the only real source
		return out, analytics.SourceLive
	default:
		return out, analytics.SourceMixed
	}
}

func resolveStatusGroup(auth, fallback []analytics.StatusCount) ([]analytics.StatusCount, analytics.Source) {
	if auth != nil {
		return auth, analytics.SourceLive
	}
	return fallback, computedOr(len(fallback) > 0)
}

// computedOr distinguishes a real locally computed group from the
// error-empty state: a fetch that failed with nothing local to show must
// render as explicitly empty, not as zeros that look like data.
func computedOr(hasData bool) analytics.Source {
	if hasData {
		return analytics.SourceComputed
	}
	return analytics.SourceEmpty
}
