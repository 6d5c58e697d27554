package analytics

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/worklens/worklens-backend-go/internal/domain/analytics"
)

// Upstream systems encode the same record several ways: assignees as a bare
// id string, an embedded object, or a list; dates as ISO-8601 strings or
// epoch numbers. Normalization resolves each payload into the canonical
// Record exactly once so downstream code never branches on raw shape again.

// NormalizeRecords parses raw JSON payloads into canonical records. Payloads
// that fail normalization (unresolvable id or created date) are skipped; one
// bad record never aborts the aggregation.
func NormalizeRecords(kind analytics.RecordKind, payloads [][]byte) []analytics.Record {
	records := make([]analytics.Record, 0, len(payloads))
	for _, payload := range payloads {
		if rec, ok := normalizeOne(kind, payload); ok {
			records = append(records, rec)
		}
	}
	return records
}

func normalizeOne(kind analytics.RecordKind, payload []byte) (analytics.Record, bool) {
	var doc map[string]any
	if err := json.Unmarshal(payload, &doc); err != nil {
		return analytics.Record{}, false
	}

	id := ResolveIdentity(firstPresent(doc, "_id", "id"))
	if id == "" {
		return analytics.Record{}, false
	}

	createdAt, ok := ParseTimestamp(firstPresent(doc, "createdAt", "created_at"))
	if !ok {
		return analytics.Record{}, false
	}
	updatedAt, ok := ParseTimestamp(firstPresent(doc, "updatedAt", "updated_at"))
	if !ok {
		updatedAt = createdAt
	}

	rec := analytics.Record{
		ID:           id,
		Kind:         kind,
		AssigneeIDs:  CollectAssigneeIDs(firstPresent(doc, "assignedTo", "assigned_to", "assignees", "owner", "user")),
		Status:       normalizeStatus(kind, doc["status"]),
		DepartmentID: ResolveIdentity(firstPresent(doc, "department", "departmentId", "department_id")),
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}
	if len(rec.AssigneeIDs) > 0 {
		rec.OwnerID = rec.AssigneeIDs[0]
	}

	if kind == analytics.KindTask {
		rec.Priority = normalizePriority(doc["priority"])
		if due, ok := ParseTimestamp(firstPresent(doc, "dueDate", "due_date", "dueAt")); ok {
			rec.DueAt = &due
		}
	}

	return rec, true
}

// CollectAssigneeIDs resolves an assignee field of any supported shape into
// a list of identity strings, owner first. Unresolvable entries are dropped
// rather than failing.
func CollectAssigneeIDs(v any) []string {
	switch t := v.(type) {
	case nil:
		return nil
	case []any:
		var ids []string
		for _, item := range t {
			if id := ResolveIdentity(item); id != "" {
				ids = append(ids, id)
			}
		}
		return ids
	default:
		if id := ResolveIdentity(v); id != "" {
			return []string{id}
		}
		return nil
	}
}

// ResolveIdentity extracts a single identity string from a bare string or an
// embedded object carrying {_id|id} with {email} as a fallback identity.
func ResolveIdentity(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case map[string]any:
		for _, key := range []string{"_id", "id", "email"} {
			if s, ok := t[key].(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}

// epochMillisCutoff separates second-precision epochs from millisecond ones.
// Anything above it is read as milliseconds.
const epochMillisCutoff = 1e12

// ParseTimestamp accepts an ISO-8601 string, a plain date string, or an
// epoch number (seconds or milliseconds) and returns a UTC time.
func ParseTimestamp(v any) (time.Time, bool) {
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed.UTC(), true
			}
		}
	case float64:
		if t <= 0 {
			return time.Time{}, false
		}
		if t >= epochMillisCutoff {
			return time.UnixMilli(int64(t)).UTC(), true
		}
		return time.Unix(int64(t), 0).UTC(), true
	case time.Time:
		if t.IsZero() {
			return time.Time{}, false
		}
		return t.UTC(), true
	}
	return time.Time{}, false
}

// normalizeStatus lowercases and snake-cases the raw status and coerces it
// onto the kind's enum; unknown or missing statuses default to the enum's
// initial state so every record stays countable.
func normalizeStatus(kind analytics.RecordKind, v any) string {
	raw, _ := v.(string)
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, " ", "_")

	known := analytics.TaskStatuses
	fallback := analytics.TaskAssigned
	if kind == analytics.KindLeave {
		known = analytics.LeaveStatuses
		fallback = analytics.LeavePending
	}
	for _, status := range known {
		if s == status {
			return status
		}
	}
	return fallback
}

func normalizePriority(v any) string {
	raw, _ := v.(string)
	s := strings.ToLower(strings.TrimSpace(raw))
	for _, p := range analytics.Priorities {
		if s == p {
			return p
		}
	}
	return ""
}

// firstPresent returns the first key present in the document, regardless of
// its value's shape
func firstPresent(doc map[string]any, keys ...string) any {
	for _, key := range keys {
		if v, ok := doc[key]; ok && v != nil {
			return v
		}
	}
	return nil
}
