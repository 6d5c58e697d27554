package analytics

import (
	"sort"
	"time"

	"github.com/worklens/worklens-backend-go/internal/domain/analytics"
	"github.com/worklens/worklens-backend-go/internal/domain/user"
)

// Compute derives a full fallback snapshot from filtered records and the
// measured population. It is pure: same inputs, same snapshot, no shared
// state. Source tags are the resolver's concern.
func Compute(records []analytics.Record, population []analytics.Member, departments []analytics.Department, now time.Time, trendDays int) analytics.Snapshot {
	var tasks, leaves []analytics.Record
	for _, rec := range records {
		switch rec.Kind {
		case analytics.KindLeave:
			leaves = append(leaves, rec)
		default:
			tasks = append(tasks, rec)
		}
	}

	completed := 0
	for _, t := range tasks {
		if t.Status == analytics.TaskCompleted {
			completed++
		}
	}

	active := 0
	for _, m := range population {
		if m.IsActive {
			active++
		}
	}

	return analytics.Snapshot{
		Summary: analytics.Summary{
			TotalTasks:        len(tasks),
			CompletedTasks:    completed,
			CompletionRate:    RoundPercent(completed, len(tasks)),
			TotalMembers:      len(population),
			ActiveMembers:     active,
			AvgTasksPerMember: RoundRatio(len(tasks), len(population)),
			EngagementRate:    RoundPercent(active, len(population)),
		},
		StatusCounts:   statusDistribution(tasks, analytics.TaskStatuses),
		PriorityCounts: priorityDistribution(tasks),
		LeaveCounts:    statusDistribution(leaves, analytics.LeaveStatuses),
		RoleCounts:     RoleDistribution(population),
		Departments:    departmentRollups(tasks, population, departments),
		Rankings:       userRankings(tasks, population),
		Trend:          TrendSeries(tasks, now, trendDays),
		GeneratedAt:    now,
	}
}

// RoundPercent computes round(100*part/total) with half-up rounding, in
// integer arithmetic, guarding total == 0.
func RoundPercent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return (200*part + total) / (2 * total)
}

// RoundRatio computes round(numerator/denominator) half-up, guarding zero
func RoundRatio(numerator, denominator int) int {
	if denominator <= 0 {
		return 0
	}
	return (2*numerator + denominator) / (2 * denominator)
}

// statusDistribution group-counts records by status. Categories with no
// records are omitted, not zero-filled; order follows the enum order.
func statusDistribution(records []analytics.Record, order []string) []analytics.StatusCount {
	counts := make(map[string]int)
	for _, rec := range records {
		counts[rec.Status]++
	}

	var out []analytics.StatusCount
	for _, status := range order {
		if n := counts[status]; n > 0 {
			out = append(out, analytics.StatusCount{Status: status, Count: n})
		}
	}
	return out
}

func priorityDistribution(tasks []analytics.Record) []analytics.PriorityCount {
	counts := make(map[string]int)
	for _, t := range tasks {
		if t.Priority != "" {
			counts[t.Priority]++
		}
	}

	var out []analytics.PriorityCount
	for _, p := range analytics.Priorities {
		if n := counts[p]; n > 0 {
			out = append(out, analytics.PriorityCount{Priority: p, Count: n})
		}
	}
	return out
}

// RoleDistribution counts population members per role label
func RoleDistribution(population []analytics.Member) []analytics.RoleCount {
	counts := make(map[user.Role]int)
	for _, m := range population {
		counts[m.Role]++
	}

	var out []analytics.RoleCount
	for _, role := range user.Roles {
		if n := counts[role]; n > 0 {
			out = append(out, analytics.RoleCount{Role: role.Label(), Count: n})
		}
	}
	return out
}

// departmentRollups groups filtered tasks by department. MemberCount comes
// from the population roster, never from task data. Departments appear in
// input order; departments only seen on tasks follow in first-seen order.
func departmentRollups(tasks []analytics.Record, population []analytics.Member, departments []analytics.Department) []analytics.DepartmentRollup {
	type group struct {
		total, completed int
	}
	groups := make(map[string]*group)
	var order []string

	track := func(id string) *group {
		if g, ok := groups[id]; ok {
			return g
		}
		g := &group{}
		groups[id] = g
		order = append(order, id)
		return g
	}

	names := make(map[string]string, len(departments))
	for _, d := range departments {
		names[d.ID] = d.Name
		track(d.ID)
	}

	members := make(map[string]int)
	for _, m := range population {
		if m.DepartmentID != "" {
			members[m.DepartmentID]++
		}
	}

	for _, t := range tasks {
		if t.DepartmentID == "" {
			continue
		}
		g := track(t.DepartmentID)
		g.total++
		if t.Status == analytics.TaskCompleted {
			g.completed++
		}
	}

	out := make([]analytics.DepartmentRollup, 0, len(order))
	for _, id := range order {
		g := groups[id]
		name := names[id]
		if name == "" {
			name = id
		}
		out = append(out, analytics.DepartmentRollup{
			Name:           name,
			TotalTasks:     g.total,
			CompletedTasks: g.completed,
			CompletionRate: RoundPercent(g.completed, g.total),
			MemberCount:    members[id],
		})
	}
	return out
}

// userRankings ranks population members by completion rate desc, breaking
// ties by total task count desc, then by roster position. The stable sort
// over the roster order supplies the final tie-break.
func userRankings(tasks []analytics.Record, population []analytics.Member) []analytics.UserRanking {
	totals := make(map[string]int, len(population))
	completed := make(map[string]int, len(population))
	for _, t := range tasks {
		if t.OwnerID == "" {
			continue
		}
		totals[t.OwnerID]++
		if t.Status == analytics.TaskCompleted {
			completed[t.OwnerID]++
		}
	}

	out := make([]analytics.UserRanking, 0, len(population))
	for _, m := range population {
		out = append(out, analytics.UserRanking{
			Name:           m.Name,
			TotalTasks:     totals[m.ID],
			CompletedTasks: completed[m.ID],
			CompletionRate: RoundPercent(completed[m.ID], totals[m.ID]),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CompletionRate != out[j].CompletionRate {
			return out[i].CompletionRate > out[j].CompletionRate
		}
		return out[i].TotalTasks > out[j].TotalTasks
	})
	return out
}

// TrendSeries buckets tasks by calendar day over the trailing window ending
// at now. Every day gets a bucket even with zero records. A task counts
// toward "created" on its createdAt day and toward "completed" only on the
// day of the updatedAt that marked it completed, not every day since.
func TrendSeries(tasks []analytics.Record, now time.Time, days int) []analytics.TrendPoint {
	if days <= 0 {
		days = 7
	}

	index := make(map[string]int, days)
	series := make([]analytics.TrendPoint, days)
	for i := 0; i < days; i++ {
		day := now.AddDate(0, 0, i-days+1).UTC().Format("2006-01-02")
		index[day] = i
		series[i] = analytics.TrendPoint{Period: day}
	}

	for _, t := range tasks {
		if i, ok := index[t.CreatedAt.UTC().Format("2006-01-02")]; ok {
			series[i].Created++
		}
		if t.Status == analytics.TaskCompleted {
			if i, ok := index[t.UpdatedAt.UTC().Format("2006-01-02")]; ok {
				series[i].Completed++
			}
		}
	}
	return series
}
