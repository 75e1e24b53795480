package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sorail742/task-manager-frontend/internal/client/session"
	"github.com/sorail742/task-manager-frontend/internal/models"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name   string
		status session.Status
		role   models.Role
		target Route
		want   Outcome
	}{
		{
			name:   "bootstrapping never redirects from a protected route",
			status: session.StatusBootstrapping,
			target: RouteDashboard,
			want:   ShowLoading,
		},
		{
			name:   "bootstrapping renders public routes",
			status: session.StatusBootstrapping,
			target: RouteLogin,
			want:   Render,
		},
		{
			name:   "anonymous is sent to login from protected routes",
			status: session.StatusAnonymous,
			target: RouteTasks,
			want:   RedirectLogin,
		},
		{
			name:   "anonymous may view login",
			status: session.StatusAnonymous,
			target: RouteLogin,
			want:   Render,
		},
		{
			name:   "member is denied admin-only users view",
			status: session.StatusAuthenticated,
			role:   models.RoleMember,
			target: RouteUsers,
			want:   RedirectHome,
		},
		{
			name:   "member is denied admin-only members view",
			status: session.StatusAuthenticated,
			role:   models.RoleMember,
			target: RouteMembers,
			want:   RedirectHome,
		},
		{
			name:   "member may view tasks",
			status: session.StatusAuthenticated,
			role:   models.RoleMember,
			target: RouteTasks,
			want:   Render,
		},
		{
			name:   "admin may view everything",
			status: session.StatusAuthenticated,
			role:   models.RoleAdmin,
			target: RouteUsers,
			want:   Render,
		},
		{
			name:   "authenticated user is bounced off the login view",
			status: session.StatusAuthenticated,
			role:   models.RoleMember,
			target: RouteLogin,
			want:   RedirectHome,
		},
		{
			name:   "authenticated user is bounced off the register view",
			status: session.StatusAuthenticated,
			role:   models.RoleAdmin,
			target: RouteRegister,
			want:   RedirectHome,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.status, tt.role, tt.target))
		})
	}
}

func TestDecide_TotalOverAllCombinations(t *testing.T) {
	statuses := []session.Status{session.StatusBootstrapping, session.StatusAnonymous, session.StatusAuthenticated}
	roles := []models.Role{"", models.RoleMember, models.RoleAdmin}
	routes := []Route{RouteLogin, RouteRegister, RouteDashboard, RouteTasks, RouteMembers, RouteUsers}

	for _, st := range statuses {
		for _, role := range roles {
			for _, rt := range routes {
				out := Decide(st, role, rt)
				assert.Contains(t, []Outcome{Render, ShowLoading, RedirectLogin, RedirectHome}, out)

				// A protected view never renders while bootstrapping.
				if st == session.StatusBootstrapping && rt.RequiresAuth {
					assert.Equal(t, ShowLoading, out, "route %s", rt.Name)
				}
			}
		}
	}
}
