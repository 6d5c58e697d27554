package analytics

import (
	"time"

	"github.com/worklens/worklens-backend-go/internal/domain/user"
)

// RecordKind distinguishes the record families the engine aggregates
type RecordKind string

const (
	KindTask  RecordKind = "task"
	KindLeave RecordKind = "leave"
)

// Task statuses after normalization
const (
	TaskAssigned   = "assigned"
	TaskInProgress = "in_progress"
	TaskCompleted  = "completed"
	TaskBlocked    = "blocked"
)

// Leave request statuses after normalization
const (
	LeavePending   = "pending"
	LeaveApproved  = "approved"
	LeaveRejected  = "rejected"
	LeaveCancelled = "cancelled"
)

// TaskStatuses lists task statuses in display order
var TaskStatuses = []string{TaskAssigned, TaskInProgress, TaskCompleted, TaskBlocked}

// LeaveStatuses lists leave statuses in display order
var LeaveStatuses = []string{LeavePending, LeaveApproved, LeaveRejected, LeaveCancelled}

// Priority levels, tasks only
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Priorities lists priority levels in display order
var Priorities = []string{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

// Record is the canonical in-memory shape every raw upstream record is
// normalized into. Unresolvable identities are empty strings, not errors.
type Record struct {
	ID           string
	Kind         RecordKind
	OwnerID      string   // primary assignee, "" when unresolved
	AssigneeIDs  []string // all resolved assignees, owner first
	Status       string
	Priority     string // "" for non-task records or when absent
	DepartmentID string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DueAt        *time.Time
}

// Member is one user of the population being measured
type Member struct {
	ID           string
	Name         string
	Role         user.Role
	IsActive     bool
	DepartmentID string
	ManagerID    string
}

// Department is a named grouping of members
type Department struct {
	ID   string
	Name string
}

// TimeRange is the lookback window applied by the filter engine
type TimeRange string

const (
	Range7Days  TimeRange = "7d"
	Range30Days TimeRange = "30d"
	Range90Days TimeRange = "90d"
	RangeAll    TimeRange = "all"
)

// Valid reports whether the time range is one of the supported windows
func (t TimeRange) Valid() bool {
	switch t {
	case Range7Days, Range30Days, Range90Days, RangeAll:
		return true
	}
	return false
}

// Days returns the lookback length in days, 0 for RangeAll
func (t TimeRange) Days() int {
	switch t {
	case Range7Days:
		return 7
	case Range30Days:
		return 30
	case Range90Days:
		return 90
	}
	return 0
}

// StatusAll disables status filtering
const StatusAll = "all"

// OwnerScope narrows the record set to a role's visible slice
type OwnerScope struct {
	ExcludeUserID          string
	RestrictToDepartmentID string
	RestrictToManagerID    string
}

// FilterCriteria is the full filter input; filters commute, all non-"all"
// criteria must be applied.
type FilterCriteria struct {
	TimeRange TimeRange
	Status    string
	Scope     OwnerScope
}

// Validate checks the criteria against the supported enums
func (c FilterCriteria) Validate() error {
	if !c.TimeRange.Valid() {
		return ErrInvalidTimeRange
	}
	if c.Status != StatusAll && c.Status != "" {
		known := false
		for _, s := range append(append([]string{}, TaskStatuses...), LeaveStatuses...) {
			if c.Status == s {
				known = true
				break
			}
		}
		if !known {
			return ErrInvalidStatus
		}
	}
	return nil
}

// Scope identifies the viewing actor; it drives role-based restriction and
// self-exclusion.
type Scope struct {
	ActorID      string
	Role         user.Role
	DepartmentID string
}
