package analytics

import "context"

// Repository loads the raw inputs the aggregation engine consumes. Task and
// leave payloads are returned as raw upstream JSON; shape coercion is the
// normalizer's job, not the repository's.
type Repository interface {
	// ListTaskPayloads returns raw task documents, optionally narrowed to a
	// department at the query level
	ListTaskPayloads(ctx context.Context, departmentID string) ([][]byte, error)

	// ListLeavePayloads returns raw leave request documents
	ListLeavePayloads(ctx context.Context, departmentID string) ([][]byte, error)

	// ListMembers returns the measured population in stable roster order
	ListMembers(ctx context.Context, departmentID string) ([]Member, error)

	// ListDepartments returns all departments
	ListDepartments(ctx context.Context) ([]Department, error)
}
