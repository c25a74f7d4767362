// Package guard gates navigation into role-scoped areas. It is a pure
// decision function over the session snapshot; it holds no state of its own.
package guard

import (
	"github.com/bhukyapavithra/Smart-Dairy-farm/domain"
	"github.com/bhukyapavithra/Smart-Dairy-farm/session"
)

// Well-known navigation targets.
const (
	LoginPath             = "/login"
	FarmerDashboardPath   = "/farmer/dashboard"
	CustomerDashboardPath = "/customer/dashboard"
)

// Action is what the host should do with the attempted navigation.
type Action string

const (
	// ActionWait means authentication state is still indeterminate; render
	// a pending placeholder and do not redirect.
	ActionWait Action = "wait"
	// ActionAllow lets the navigation through.
	ActionAllow Action = "allow"
	// ActionRedirect sends the visitor to Decision.Target instead.
	ActionRedirect Action = "redirect"
)

// Decision is the guard's verdict for one navigation attempt.
type Decision struct {
	Action Action
	// Target is the redirect destination when Action is ActionRedirect.
	Target string
	// Resume carries the originally requested path on a login redirect so
	// a successful login can pick it back up.
	Resume string
}

// DashboardPath returns the landing page for a role.
func DashboardPath(role domain.Role) string {
	if role == domain.RoleFarmer {
		return FarmerDashboardPath
	}
	return CustomerDashboardPath
}

// Decide resolves a navigation to path, which requires requiredRole (empty
// means any authenticated visitor). A visitor with the wrong role is sent
// to their own dashboard, not an error page.
func Decide(state session.State, requiredRole domain.Role, path string) Decision {
	if state.Loading {
		return Decision{Action: ActionWait}
	}

	if !state.IsAuthenticated() {
		return Decision{Action: ActionRedirect, Target: LoginPath, Resume: path}
	}

	if requiredRole != "" && state.Role != requiredRole {
		return Decision{Action: ActionRedirect, Target: DashboardPath(state.Role)}
	}

	return Decision{Action: ActionAllow}
}
