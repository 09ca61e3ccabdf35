package identity

// Role is the fixed set of account roles. "rh" is the HR staff role, kept
// under its historical name because tokens and clients carry it verbatim.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleRH       Role = "rh"
	RoleEmployee Role = "employee"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleRH, RoleEmployee:
		return true
	}
	return false
}

// Actor is the resolved identity performing an operation. It is built
// once by the auth middleware and passed explicitly into every service
// call; nothing below the HTTP layer reads ambient auth state.
type Actor struct {
	UserID     uint
	Role       Role
	EmployeeID *uint
}

// IsStaff reports whether the actor may decide requests and manage
// organizational data.
func (a Actor) IsStaff() bool {
	return a.Role == RoleAdmin || a.Role == RoleRH
}

// Owns reports whether the actor's employee profile owns the resource.
func (a Actor) Owns(employeeID uint) bool {
	return a.EmployeeID != nil && *a.EmployeeID == employeeID
}
