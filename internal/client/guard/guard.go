// Package guard decides which view variant renders for a navigation
// target, given the current session state. It is a pure function: no
// side effects, every input combination has a defined outcome.
package guard

import (
	"github.com/sorail742/task-manager-frontend/internal/client/session"
	"github.com/sorail742/task-manager-frontend/internal/models"
)

// Route is a navigation target and its access requirements.
type Route struct {
	// Name identifies the route (one of the Route* constants).
	Name string
	// RequiresAuth marks routes only visible to authenticated users.
	RequiresAuth bool
	// AdminOnly marks routes restricted to the admin role.
	AdminOnly bool
	// PublicOnly marks routes that make no sense for a signed-in user
	// (login, register); they redirect home instead.
	PublicOnly bool
}

// The application's routing table, mirroring the pages of the UI.
var (
	RouteLogin     = Route{Name: "login", PublicOnly: true}
	RouteRegister  = Route{Name: "register", PublicOnly: true}
	RouteDashboard = Route{Name: "dashboard", RequiresAuth: true}
	RouteTasks     = Route{Name: "tasks", RequiresAuth: true}
	RouteMembers   = Route{Name: "members", RequiresAuth: true, AdminOnly: true}
	RouteUsers     = Route{Name: "users", RequiresAuth: true, AdminOnly: true}
)

// Outcome is the guard's decision for a navigation.
type Outcome int

const (
	// Render means the target view may be shown.
	Render Outcome = iota
	// ShowLoading means the session is still bootstrapping and a
	// placeholder must render; no redirect decision is made yet.
	ShowLoading
	// RedirectLogin sends the visitor to the login view.
	RedirectLogin
	// RedirectHome sends the visitor to the dashboard.
	RedirectHome
)

func (o Outcome) String() string {
	switch o {
	case Render:
		return "render"
	case ShowLoading:
		return "loading"
	case RedirectLogin:
		return "redirect-login"
	case RedirectHome:
		return "redirect-home"
	}
	return "unknown"
}

// Decide maps a session status, role and target route to an outcome.
// While the session bootstraps, protected routes show a placeholder
// rather than flashing a redirect that the settled session might not
// warrant.
func Decide(status session.Status, role models.Role, target Route) Outcome {
	switch status {
	case session.StatusBootstrapping:
		if target.RequiresAuth {
			return ShowLoading
		}
		return Render
	case session.StatusAnonymous:
		if target.RequiresAuth {
			return RedirectLogin
		}
		return Render
	case session.StatusAuthenticated:
		if target.PublicOnly {
			return RedirectHome
		}
		if target.AdminOnly && role != models.RoleAdmin {
			return RedirectHome
		}
		return Render
	}
	// Unknown status: treat as anonymous rather than leaking a view.
	if target.RequiresAuth {
		return RedirectLogin
	}
	return Render
}
