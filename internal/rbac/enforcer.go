package rbac

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const modelText = `
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

// Role hierarchy, higher inherits lower:
// SUPER_ADMIN > ADMIN > OWNER > MANAGER > OFFICE > STAFF.
var groupings = [][]string{
	{"SUPER_ADMIN", "ADMIN"},
	{"ADMIN", "OWNER"},
	{"OWNER", "MANAGER"},
	{"MANAGER", "OFFICE"},
	{"OFFICE", "STAFF"},
}

var policies = [][]string{
	// STAFF: self-service and the daily sheet.
	{"STAFF", "store", "read"},
	{"STAFF", "attendance", "mark"},
	{"STAFF", "attendance", "read"},
	{"STAFF", "leave", "create"},
	{"STAFF", "leave", "read"},
	{"STAFF", "rokar", "create"},
	{"STAFF", "rokar", "read"},
	{"STAFF", "expense", "create"},
	{"STAFF", "expense", "read"},
	{"STAFF", "salary_request", "create"},
	{"STAFF", "salary_request", "read"},
	{"STAFF", "customer", "read"},
	{"STAFF", "target", "read"},

	// OFFICE: back-office visibility.
	{"OFFICE", "staff", "read"},
	{"OFFICE", "payroll", "read"},

	// MANAGER: approvals and store-level management.
	{"MANAGER", "leave", "approve"},
	{"MANAGER", "expense", "approve"},
	{"MANAGER", "salary_request", "approve"},
	{"MANAGER", "customer", "manage"},
	{"MANAGER", "target", "manage"},

	// OWNER and up: directory management.
	{"OWNER", "staff", "manage"},
	{"OWNER", "store", "manage"},
}

// NewEnforcer builds the in-memory enforcer with the fixed role policy.
// Roles and permissions are code, not data: there is no admin UI for them.
func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, g := range groupings {
		if _, err := enforcer.AddGroupingPolicy(g[0], g[1]); err != nil {
			return nil, err
		}
	}
	for _, p := range policies {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}

	return enforcer, nil
}
