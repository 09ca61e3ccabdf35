package authz

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

// Route-level RBAC. Roles are fixed, so the model and policy are compiled
// in rather than loaded from storage.
const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// policy rows: role, resource, action. Employees reach the request
// endpoints too; ownership and pending-state checks happen in authz.CanAct
// inside the services, not here.
var policy = [][]string{
	{"staff", "employees", "manage"},
	{"staff", "career_paths", "manage"},
	{"staff", "leave_requests", "decide"},
	{"staff", "absence_justifications", "decide"},
	{"staff", "complaints", "decide"},
	{"admin", "dashboard_admin", "read"},
	{"rh", "dashboard_rh", "read"},
	{"employee", "dashboard_employee", "read"},
}

var grouping = [][]string{
	{"admin", "staff"},
	{"rh", "staff"},
}

// NewEnforcer builds the static casbin enforcer used by the route
// middleware.
func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, err
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, p := range policy {
		if _, err := e.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}
	for _, g := range grouping {
		if _, err := e.AddGroupingPolicy(g[0], g[1]); err != nil {
			return nil, err
		}
	}

	return e, nil
}
