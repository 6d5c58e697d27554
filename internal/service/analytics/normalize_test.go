package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worklens/worklens-backend-go/internal/domain/analytics"
)

func TestNormalizeRecords_AssigneeShapes(t *testing.T) {
	t.Parallel()

	payloads := [][]byte{
		// bare id string
		[]byte(`{"id":"t1","assignedTo":"u1","status":"completed","createdAt":"2026-08-20T10:00:00Z"}`),
		// embedded object with _id
		[]byte(`{"id":"t2","assignedTo":{"_id":"u2","name":"Dina"},"status":"in_progress","createdAt":"2026-08-21T10:00:00Z"}`),
		// embedded object falling back to email identity
		[]byte(`{"id":"t3","assignedTo":{"email":"eka@worklens.io"},"status":"assigned","createdAt":"2026-08-22T10:00:00Z"}`),
		// assignee list, first entry is primary
		[]byte(`{"id":"t4","assignees":[{"id":"u4"},"u5"],"status":"blocked","createdAt":"2026-08-23T10:00:00Z"}`),
	}

	records := NormalizeRecords(analytics.KindTask, payloads)
	require.Len(t, records, 4)

	assert.Equal(t, "u1", records[0].OwnerID)
	assert.Equal(t, []string{"u1"}, records[0].AssigneeIDs)
	assert.Equal(t, "u2", records[1].OwnerID)
	assert.Equal(t, "eka@worklens.io", records[2].OwnerID)
	assert.Equal(t, "u4", records[3].OwnerID)
	assert.Equal(t, []string{"u4", "u5"}, records[3].AssigneeIDs)
}

func TestNormalizeRecords_DateShapes(t *testing.T) {
	t.Parallel()

	payloads := [][]byte{
		[]byte(`{"id":"t1","status":"assigned","createdAt":"2026-08-20T10:30:00Z"}`),
		[]byte(`{"id":"t2","status":"assigned","createdAt":"2026-08-20"}`),
		[]byte(`{"id":"t3","status":"assigned","createdAt":1755684600}`),
		[]byte(`{"id":"t4","status":"assigned","createdAt":1755684600000}`),
	}

	records := NormalizeRecords(analytics.KindTask, payloads)
	require.Len(t, records, 4)

	assert.Equal(t, time.Date(2026, 8, 20, 10, 30, 0, 0, time.UTC), records[0].CreatedAt)
	assert.Equal(t, time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC), records[1].CreatedAt)
	// epoch seconds and epoch millis resolve to the same instant
	assert.Equal(t, records[2].CreatedAt, records[3].CreatedAt)
}

func TestNormalizeRecords_SkipsMalformed(t *testing.T) {
	t.Parallel()

	payloads := [][]byte{
		[]byte(`not json at all`),
		[]byte(`{"status":"assigned","createdAt":"2026-08-20T10:00:00Z"}`),          // no id
		[]byte(`{"id":"t1","status":"assigned","createdAt":"not-a-date"}`),          // bad date
		[]byte(`{"id":"t2","status":"assigned","createdAt":"2026-08-20T10:00:00Z"}`), // good
	}

	records := NormalizeRecords(analytics.KindTask, payloads)
	require.Len(t, records, 1)
	assert.Equal(t, "t2", records[0].ID)
}

func TestNormalizeRecords_UnresolvableAssigneeDegrades(t *testing.T) {
	t.Parallel()

	payloads := [][]byte{
		[]byte(`{"id":"t1","assignedTo":{"name":"no id here"},"status":"assigned","createdAt":"2026-08-20T10:00:00Z"}`),
	}

	records := NormalizeRecords(analytics.KindTask, payloads)
	require.Len(t, records, 1)
	assert.Empty(t, records[0].OwnerID)
	assert.Empty(t, records[0].AssigneeIDs)
}

func TestNormalizeRecords_StatusCoercion(t *testing.T) {
	t.Parallel()

	payloads := [][]byte{
		[]byte(`{"id":"t1","status":"In Progress","createdAt":"2026-08-20T10:00:00Z"}`),
		[]byte(`{"id":"t2","status":"something-else","createdAt":"2026-08-20T10:00:00Z"}`),
		[]byte(`{"id":"t3","createdAt":"2026-08-20T10:00:00Z"}`),
	}

	records := NormalizeRecords(analytics.KindTask, payloads)
	require.Len(t, records, 3)
	assert.Equal(t, analytics.TaskInProgress, records[0].Status)
	assert.Equal(t, analytics.TaskAssigned, records[1].Status)
	assert.Equal(t, analytics.TaskAssigned, records[2].Status)

	leave := NormalizeRecords(analytics.KindLeave, [][]byte{
		[]byte(`{"id":"l1","status":"APPROVED","createdAt":"2026-08-20T10:00:00Z"}`),
		[]byte(`{"id":"l2","createdAt":"2026-08-20T10:00:00Z"}`),
	})
	require.Len(t, leave, 2)
	assert.Equal(t, analytics.LeaveApproved, leave[0].Status)
	assert.Equal(t, analytics.LeavePending, leave[1].Status)
}

func TestNormalizeRecords_MissingUpdatedAtFallsBackToCreatedAt(t *testing.T) {
	t.Parallel()

	records := NormalizeRecords(analytics.KindTask, [][]byte{
		[]byte(`{"id":"t1","status":"completed","createdAt":"2026-08-20T10:00:00Z"}`),
	})
	require.Len(t, records, 1)
	assert.Equal(t, records[0].CreatedAt, records[0].UpdatedAt)
}

func TestNormalizeRecords_PriorityAndDepartment(t *testing.T) {
	t.Parallel()

	records := NormalizeRecords(analytics.KindTask, [][]byte{
		[]byte(`{"id":"t1","priority":"Urgent","department":{"_id":"d1","name":"Engineering"},"status":"assigned","createdAt":"2026-08-20T10:00:00Z","dueDate":"2026-08-30"}`),
		[]byte(`{"id":"t2","priority":"whenever","department":"d2","status":"assigned","createdAt":"2026-08-20T10:00:00Z"}`),
	})
	require.Len(t, records, 2)

	assert.Equal(t, analytics.PriorityUrgent, records[0].Priority)
	assert.Equal(t, "d1", records[0].DepartmentID)
	require.NotNil(t, records[0].DueAt)
	assert.Equal(t, time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC), *records[0].DueAt)

	assert.Empty(t, records[1].Priority)
	assert.Equal(t, "d2", records[1].DepartmentID)
	assert.Nil(t, records[1].DueAt)
}

func TestCollectAssigneeIDs(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input any
		want  []string
	}{
		{"nil", nil, nil},
		{"bare string", "u1", []string{"u1"}},
		{"object", map[string]any{"id": "u2"}, []string{"u2"}},
		{"mixed list", []any{"u1", map[string]any{"_id": "u2"}, map[string]any{"name": "no id"}}, []string{"u1", "u2"}},
		{"empty string", "  ", nil},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, CollectAssigneeIDs(c.input))
		})
	}
}
