package user

import "time"

type Role string

const (
	RoleAdmin          Role = "admin"           // Org-wide access
	RoleManager        Role = "manager"         // Direct reports only
	RoleDepartmentHead Role = "department_head" // Own department, excluded from own team views
	RoleEmployee       Role = "employee"        // Own records only
)

// Roles lists all roles in display order
var Roles = []Role{RoleAdmin, RoleManager, RoleDepartmentHead, RoleEmployee}

// Valid checks if the role is known
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleDepartmentHead, RoleEmployee:
		return true
	}
	return false
}

// Label returns the display label used in role distributions
func (r Role) Label() string {
	switch r {
	case RoleAdmin:
		return "Admin"
	case RoleManager:
		return "Manager"
	case RoleDepartmentHead:
		return "Department Head"
	case RoleEmployee:
		return "Employee"
	}
	return string(r)
}

// SelfMeasurable checks whether holders of this role are structurally part
// of the population they view, and must be excluded from their own team
// rollups. Only department heads measure a population containing themselves.
func (r Role) SelfMeasurable() bool {
	return r == RoleDepartmentHead
}

type User struct {
	ID           string
	Name         string
	Email        string
	Role         Role
	DepartmentID *string
	ManagerID    *string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin checks if user has org-wide access
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanViewTeam checks if user can view analytics for a population
func (u *User) CanViewTeam() bool {
	return u.Role == RoleAdmin || u.Role == RoleManager || u.Role == RoleDepartmentHead
}
