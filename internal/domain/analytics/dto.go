package analytics

import "time"

// ========== RESOLVED SNAPSHOT ==========

// Source tags where a metric group's data came from
type Source string

const (
	SourceLive     Source = "live"     // authoritative payload
	SourceComputed Source = "computed" // local fallback computation
	SourceMixed    Source = "mixed"    // field-level mix of both
	SourceEmpty    Source = "empty"    // no authoritative data and no local records
)

// Summary holds the headline counters
type Summary struct {
	TotalTasks        int `json:"total_tasks"`
	CompletedTasks    int `json:"completed_tasks"`
	CompletionRate    int `json:"completion_rate"` // 0-100, round half-up
	TotalMembers      int `json:"total_members"`
	ActiveMembers     int `json:"active_members"`
	AvgTasksPerMember int `json:"avg_tasks_per_member"`
	EngagementRate    int `json:"engagement_rate"` // 0-100
}

// StatusCount is one slice of a status distribution; zero-count categories
// are omitted, so consumers must tolerate sparse series.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// PriorityCount is one slice of the task priority distribution
type PriorityCount struct {
	Priority string `json:"priority"`
	Count    int    `json:"count"`
}

// RoleCount is one slice of the population's role distribution
type RoleCount struct {
	Role  string `json:"role"`
	Count int    `json:"count"`
}

// DepartmentRollup aggregates one department's tasks; MemberCount comes from
// the population, not from task data.
type DepartmentRollup struct {
	Name           string `json:"name"`
	TotalTasks     int    `json:"total_tasks"`
	CompletedTasks int    `json:"completed_tasks"`
	CompletionRate int    `json:"completion_rate"`
	MemberCount    int    `json:"member_count"`
}

// UserRanking is one row of the per-user leaderboard, ordered by completion
// rate desc, then total tasks desc, then population input order.
type UserRanking struct {
	Name           string `json:"name"`
	TotalTasks     int    `json:"total_tasks"`
	CompletedTasks int    `json:"completed_tasks"`
	CompletionRate int    `json:"completion_rate"`
}

// TrendPoint is one zero-filled daily bucket of the trend series
type TrendPoint struct {
	Period    string `json:"period"` // YYYY-MM-DD
	Created   int    `json:"created"`
	Completed int    `json:"completed"`
}

// SourceMap carries the per-group provenance tags
type SourceMap struct {
	Summary     Source `json:"summary"`
	Status      Source `json:"status"`
	Priority    Source `json:"priority"`
	Leave       Source `json:"leave"`
	Roles       Source `json:"roles"`
	Departments Source `json:"departments"`
	Rankings    Source `json:"rankings"`
	Trend       Source `json:"trend"`
}

// Snapshot is the fully resolved metric object handed to the rendering
// layer. It is recomputed fresh on every call, never mutated in place, and
// contains only JSON-serializable fields.
type Snapshot struct {
	Summary        Summary            `json:"summary"`
	StatusCounts   []StatusCount      `json:"status_counts"`
	PriorityCounts []PriorityCount    `json:"priority_counts"`
	LeaveCounts    []StatusCount      `json:"leave_counts"`
	RoleCounts     []RoleCount        `json:"role_counts"`
	Departments    []DepartmentRollup `json:"departments"`
	Rankings       []UserRanking      `json:"rankings"`
	Trend          []TrendPoint       `json:"trend"`
	Sources        SourceMap          `json:"sources"`
	GeneratedAt    time.Time          `json:"generated_at"`
}

// ========== AUTHORITATIVE PAYLOAD ==========

// PartialSummary mirrors Summary with every field optional; absent fields
// fall back to the locally computed value.
type PartialSummary struct {
	TotalTasks        *int `json:"total_tasks"`
	CompletedTasks    *int `json:"completed_tasks"`
	CompletionRate    *int `json:"completion_rate"`
	TotalMembers      *int `json:"total_members"`
	ActiveMembers     *int `json:"active_members"`
	AvgTasksPerMember *int `json:"avg_tasks_per_member"`
	EngagementRate    *int `json:"engagement_rate"`
}

// PartialSnapshot is the remote aggregate payload. Each group is resolved
// independently; a nil group means "not provided", not "empty".
type PartialSnapshot struct {
	Summary        *PartialSummary    `json:"summary"`
	StatusCounts   []StatusCount      `json:"status_counts"`
	PriorityCounts []PriorityCount    `json:"priority_counts"`
	LeaveCounts    []StatusCount      `json:"leave_counts"`
	RoleCounts     []RoleCount        `json:"role_counts"`
	Departments    []DepartmentRollup `json:"departments"`
	Rankings       []UserRanking      `json:"rankings"`
	Trend          []TrendPoint       `json:"trend"`
}
