package postgresql

import (
	"context"
	"fmt"

	"github.com/worklens/worklens-backend-go/internal/domain/analytics"
	"github.com/worklens/worklens-backend-go/internal/domain/user"
	"github.com/worklens/worklens-backend-go/internal/pkg/database"
)

type analyticsRepositoryImpl struct {
	db *database.DB
}

func NewAnalyticsRepository(db *database.DB) analytics.Repository {
	return &analyticsRepositoryImpl{db: db}
}

// ListTaskPayloads returns raw task documents as stored. Upstream syncs
// write heterogeneous JSON shapes into the payload column; normalization
// happens in the engine, not here.
func (r *analyticsRepositoryImpl) ListTaskPayloads(ctx context.Context, departmentID string) ([][]byte, error) {
	return r.listPayloads(ctx, "task_records", departmentID)
}

// ListLeavePayloads returns raw leave request documents
func (r *analyticsRepositoryImpl) ListLeavePayloads(ctx context.Context, departmentID string) ([][]byte, error) {
	return r.listPayloads(ctx, "leave_records", departmentID)
}

func (r *analyticsRepositoryImpl) listPayloads(ctx context.Context, table, departmentID string) ([][]byte, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT payload
		FROM %s
		WHERE deleted_at IS NULL
	`, table)
	args := []interface{}{}
	if departmentID != "" {
		query += " AND department_id = $1"
		args = append(args, departmentID)
	}
	query += " ORDER BY created_at"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s payloads: %w", table, err)
	}
	defer rows.Close()

	var payloads [][]byte
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan %s payload: %w", table, err)
		}
		payloads = append(payloads, payload)
	}
	return payloads, rows.Err()
}

// ListMembers returns users in stable roster order; ranking tie-breaks
// depend on this order being deterministic.
func (r *analyticsRepositoryImpl) ListMembers(ctx context.Context, departmentID string) ([]analytics.Member, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, role, is_active,
			COALESCE(department_id, '') AS department_id,
			COALESCE(manager_id, '') AS manager_id
		FROM users
		WHERE deleted_at IS NULL
	`
	args := []interface{}{}
	if departmentID != "" {
		query += " AND department_id = $1"
		args = append(args, departmentID)
	}
	query += " ORDER BY created_at, id"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []analytics.Member
	for rows.Next() {
		var m analytics.Member
		var role string
		if err := rows.Scan(&m.ID, &m.Name, &role, &m.IsActive, &m.DepartmentID, &m.ManagerID); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		m.Role = user.Role(role)
		members = append(members, m)
	}
	return members, rows.Err()
}

// ListDepartments returns all departments in display order
func (r *analyticsRepositoryImpl) ListDepartments(ctx context.Context) ([]analytics.Department, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, name
		FROM departments
		WHERE deleted_at IS NULL
		ORDER BY name, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	defer rows.Close()

	var departments []analytics.Department
	for rows.Next() {
		var d analytics.Department
		if err := rows.Scan(&d.ID, &d.Name); err != nil {
			return nil, fmt.Errorf("failed to scan department: %w", err)
		}
		departments = append(departments, d)
	}
	return departments, rows.Err()
}
