// Package auth resolves staff identities and decides what each may do.
package auth

type Role string

const (
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

func (r Role) Valid() bool {
	return r == RoleManager || r == RoleEmployee
}

type Action string

const (
	ActionRead       Action = "read"
	ActionBook       Action = "book"
	ActionTransition Action = "transition"
	ActionReschedule Action = "reschedule"
	ActionDelete     Action = "delete"
	ActionMetrics    Action = "metrics"
	ActionAudit      Action = "audit"
)

// Identity is the resolved caller. Name is the display name that appears
// as employee_name on the caller's own bookings.
type Identity struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
}

func (i Identity) IsManager() bool {
	return i.Role == RoleManager
}

// Target describes the calendar an action touches. An empty EmployeeName
// means "all calendars".
type Target struct {
	EmployeeName string
}

// Authorize reports whether id may perform action on target.
func Authorize(id Identity, action Action, target Target) bool {
	switch id.Role {
	case RoleManager:
		return true
	case RoleEmployee:
		switch action {
		case ActionRead, ActionBook, ActionTransition:
			return target.EmployeeName != "" && target.EmployeeName == id.Name
		}
	}
	return false
}
