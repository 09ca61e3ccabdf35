// Package authz is the ownership/state gate shared by the three request
// entities. It is pure: callers supply the resolved actor and the
// resource facts, and translate denials into their own error values.
package authz

import "github.com/ImaneBelmiloudi/hr-management/internal/identity"

type Action string

const (
	ActionView   Action = "view"
	ActionModify Action = "modify" // self-service content edit or delete
	ActionDecide Action = "decide" // status transition by staff
)

type Denial string

const (
	DenyNotOwner   Denial = "not_owner"
	DenyNotStaff   Denial = "not_staff"
	DenyNotPending Denial = "not_pending"
	DenyNoProfile  Denial = "no_employee_profile"
)

func (d Denial) Error() string { return string(d) }

// Request carries the facts the gate needs about one resource access.
type Request struct {
	Action          Action
	OwnerEmployeeID uint
	Pending         bool
}

// CanAct returns nil when the actor may perform the action, or a Denial
// stating why not. Rules are identical across leave requests, absence
// justifications and complaints:
//
//	view:   staff always; owner otherwise
//	modify: owner only, and only while the record is pending
//	decide: staff only
func CanAct(actor identity.Actor, req Request) error {
	switch req.Action {
	case ActionView:
		if actor.IsStaff() || actor.Owns(req.OwnerEmployeeID) {
			return nil
		}
		return DenyNotOwner

	case ActionModify:
		if !actor.Owns(req.OwnerEmployeeID) {
			return DenyNotOwner
		}
		if !req.Pending {
			return DenyNotPending
		}
		return nil

	case ActionDecide:
		if !actor.IsStaff() {
			return DenyNotStaff
		}
		return nil
	}

	return DenyNotStaff
}

// RequireProfile guards operations that create records on behalf of the
// actor: the owner is always forced to the actor's own employee id.
func RequireProfile(actor identity.Actor) (uint, error) {
	if actor.EmployeeID == nil {
		return 0, DenyNoProfile
	}
	return *actor.EmployeeID, nil
}

// ListScope returns the employee id listings must be restricted to, or
// nil when the actor may see all records.
func ListScope(actor identity.Actor) *uint {
	if actor.IsStaff() {
		return nil
	}
	return actor.EmployeeID
}
