package analytics

import (
	"strings"

	"github.com/worklens/worklens-backend-go/internal/domain/analytics"
	"github.com/worklens/worklens-backend-go/internal/domain/user"
)

// Self-exclusion: a department head viewing their own department must not
// appear in the team's headcounts or role distribution. The adjustment must
// be applied exactly once per snapshot: either to the population before
// computing (preferred, see ExcludeActor) or to a finished payload
// (AdjustPartial / AdjustSnapshot), never both.

// ExcludeActor returns the population without the actor, preserving roster
// order. The second return reports whether the actor was present.
func ExcludeActor(population []analytics.Member, actorID string) ([]analytics.Member, bool) {
	out := make([]analytics.Member, 0, len(population))
	found := false
	for _, m := range population {
		if m.ID == actorID {
			found = true
			continue
		}
		out = append(out, m)
	}
	return out, found
}

// AdjustPartial removes the actor's contribution from an authoritative
// payload's summary headcounts and role distribution. Counts floor at zero;
// a role entry reaching zero is dropped rather than shown as an empty
// category. The input is not mutated.
func AdjustPartial(p *analytics.PartialSnapshot, actorRole user.Role) *analytics.PartialSnapshot {
	if p == nil {
		return nil
	}

	adjusted := *p
	if p.Summary != nil {
		summary := *p.Summary
		summary.TotalMembers = decremented(p.Summary.TotalMembers)
		summary.ActiveMembers = decremented(p.Summary.ActiveMembers)
		adjusted.Summary = &summary
	}
	adjusted.RoleCounts = decrementRole(p.RoleCounts, actorRole)
	return &adjusted
}

// AdjustSnapshot applies the same adjustment to a finished snapshot, for
// callers that could not exclude the actor before computing.
func AdjustSnapshot(s analytics.Snapshot, actorRole user.Role) analytics.Snapshot {
	if s.Summary.TotalMembers > 0 {
		s.Summary.TotalMembers--
	}
	if s.Summary.ActiveMembers > 0 {
		s.Summary.ActiveMembers--
	}
	s.RoleCounts = decrementRole(s.RoleCounts, actorRole)
	return s
}

// decrementRole lowers the count of the entry whose label matches the
// actor's role, case-insensitively, returning a fresh slice.
func decrementRole(counts []analytics.RoleCount, actorRole user.Role) []analytics.RoleCount {
	if counts == nil {
		return nil
	}

	label := strings.ToLower(actorRole.Label())
	out := make([]analytics.RoleCount, 0, len(counts))
	adjusted := false
	for _, rc := range counts {
		if !adjusted && strings.ToLower(rc.Role) == label {
			adjusted = true
			if rc.Count <= 1 {
				continue
			}
			rc.Count--
		}
		out = append(out, rc)
	}
	return out
}

func decremented(v *int) *int {
	if v == nil {
		return nil
	}
	n := *v - 1
	if n < 0 {
		n = 0
	}
	return &n
}
