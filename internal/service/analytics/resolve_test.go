package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worklens/worklens-backend-go/internal/domain/analytics"
)

func resolveFallback() analytics.Snapshot {
	return analytics.Snapshot{
		Summary: analytics.Summary{
			TotalTasks:     8,
			CompletedTasks: 5,
			CompletionRate: 62,
			TotalMembers:   4,
			ActiveMembers:  4,
		},
		StatusCounts: []analytics.StatusCount{
			{Status: analytics.TaskCompleted, Count: 5},
			{Status: analytics.TaskBlocked, Count: 3},
		},
		RoleCounts: []analytics.RoleCount{{Role: "Employee", Count: 4}},
		Trend:      []analytics.TrendPoint{{Period: "2026-08-31", Created: 2}},
		GeneratedAt: time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC),
	}
}

func TestResolve_AuthoritativeFieldWins(t *testing.T) {
	t.Parallel()

	auth := &analytics.PartialSnapshot{
		Summary: &analytics.PartialSummary{CompletionRate: intPtr(77)},
	}

	got := Resolve(auth, resolveFallback())

	// The payload's value replaces the computed one; everything the
	// payload omitted keeps the fallback value
	assert.Equal(t, 77, got.Summary.CompletionRate)
	assert.Equal(t, 8, got.Summary.TotalTasks)
	assert.Equal(t, 5, got.Summary.CompletedTasks)
	assert.Equal(t, analytics.SourceMixed, got.Sources.Summary)
}

func TestResolve_NilPayloadYieldsFallback(t *testing.T) {
	t.Parallel()

	fallback := resolveFallback()
	got := Resolve(nil, fallback)

	assert.Equal(t, fallback.Summary, got.Summary)
	assert.Equal(t, fallback.StatusCounts, got.StatusCounts)
	assert.Equal(t, fallback.Trend, got.Trend)
	assert.Equal(t, analytics.SourceComputed, got.Sources.Summary)
	assert.Equal(t, analytics.SourceComputed, got.Sources.Status)
	assert.Equal(t, analytics.SourceComputed, got.Sources.Roles)
	assert.Equal(t, analytics.SourceComputed, got.Sources.Trend)
	// Groups the fallback has nothing for are flagged empty, not computed
	assert.Equal(t, analytics.SourceEmpty, got.Sources.Priority)
	assert.Equal(t, analytics.SourceEmpty, got.Sources.Departments)
	assert.Equal(t, analytics.SourceEmpty, got.Sources.Rankings)
}

func TestResolve_GroupsResolveIndependently(t *testing.T) {
	t.Parallel()

	auth := &analytics.PartialSnapshot{
		StatusCounts: []analytics.StatusCount{{Status: analytics.TaskCompleted, Count: 9}},
	}

	got := Resolve(auth, resolveFallback())

	// Status comes from the payload, summary stays computed
	require.Len(t, got.StatusCounts, 1)
	assert.Equal(t, 9, got.StatusCounts[0].Count)
	assert.Equal(t, analytics.SourceLive, got.Sources.Status)
	assert.Equal(t, 62, got.Summary.CompletionRate)
	assert.Equal(t, analytics.SourceComputed, got.Sources.Summary)
}

func TestResolve_FullSummaryIsLive(t *testing.T) {
	t.Parallel()

	auth := &analytics.PartialSnapshot{
		Summary: &analytics.PartialSummary{
			TotalTasks:        intPtr(10),
			CompletedTasks:    intPtr(7),
			CompletionRate:    intPtr(70),
			TotalMembers:      intPtr(5),
			ActiveMembers:     intPtr(5),
			AvgTasksPerMember: intPtr(2),
			EngagementRate:    intPtr(100),
		},
	}

	got := Resolve(auth, resolveFallback())
	assert.Equal(t, analytics.SourceLive, got.Sources.Summary)
	assert.Equal(t, 10, got.Summary.TotalTasks)
	assert.Equal(t, 70, got.Summary.CompletionRate)
}

func TestResolve_PartialSummaryOverEmptyFallbackIsLive(t *testing.T) {
	t.Parallel()

	// With no local data the unfilled summary fields are empty-state zeros,
	// not computed values: the payload is the only real source
	auth := &analytics.PartialSnapshot{
		Summary: &analytics.PartialSummary{CompletionRate: intPtr(77)},
	}

	got := Resolve(auth, analytics.Snapshot{})
	assert.Equal(t, 77, got.Summary.CompletionRate)
	assert.Zero(t, got.Summary.TotalTasks)
	assert.Equal(t, analytics.SourceLive, got.Sources.Summary)
}

func TestResolve_EmptyLiveGroupStillWins(t *testing.T) {
	t.Parallel()

	// A present-but-empty slice is an authoritative statement of "no data",
	// distinct from an absent group
	auth := &analytics.PartialSnapshot{
		StatusCounts: []analytics.StatusCount{},
	}

	got := Resolve(auth, resolveFallback())
	assert.Empty(t, got.StatusCounts)
	assert.Equal(t, analytics.SourceLive, got.Sources.Status)
}

func TestResolve_NoValueLostWhenFallbackHasIt(t *testing.T) {
	t.Parallel()

	fallback := resolveFallback()
	got := Resolve(&analytics.PartialSnapshot{}, fallback)

	assert.Equal(t, fallback.Summary, got.Summary)
	assert.Equal(t, fallback.StatusCounts, got.StatusCounts)
	assert.Equal(t, fallback.RoleCounts, got.RoleCounts)
	assert.Equal(t, fallback.Trend, got.Trend)
}
