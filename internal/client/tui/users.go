package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sorail742/task-manager-frontend/internal/client/session"
	"github.com/sorail742/task-manager-frontend/internal/models"
)

type usersModel struct {
	cursor int
}

func newUsersModel() usersModel {
	return usersModel{}
}

func (m *usersModel) clamp(n int) {
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// update handles the admin user list. The returned notice is non-empty
// when the action was rejected locally.
func (m usersModel) update(msg tea.KeyMsg, app *App, snap session.Snapshot, users []models.Identity) (usersModel, tea.Cmd, string) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(users)-1 {
			m.cursor++
		}
	case "x":
		if m.cursor >= len(users) {
			break
		}
		target := users[m.cursor]
		// The server rejects this too; catching it here keeps the
		// message immediate.
		if snap.Identity != nil && target.ID == snap.Identity.ID {
			return m, nil, "cannot delete your own account"
		}
		return m, app.deleteUser(snap.Role(), target.ID), ""
	}
	return m, nil, ""
}

func (m usersModel) view(snap session.Snapshot, users []models.Identity, loading bool) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Users"))
	b.WriteString("\n\n")

	switch {
	case loading:
		b.WriteString(mutedStyle.Render("Loading..."))
	case len(users) == 0:
		b.WriteString(mutedStyle.Render("No users."))
	default:
		for i, u := range users {
			line := fmt.Sprintf("%-20.20s %-30.30s %s", u.Name, u.Email, roleLabel(u.Role))
			if snap.Identity != nil && u.ID == snap.Identity.ID {
				line += mutedStyle.Render(" (you)")
			}
			if i == m.cursor {
				b.WriteString(selectedStyle.Render("> ") + line + "\n")
			} else {
				b.WriteString("  " + line + "\n")
			}
		}
		b.WriteString("\n" + helpStyle.Render("x: delete"))
	}
	return b.String()
}

func roleLabel(r models.Role) string {
	if r == models.RoleAdmin {
		return accentStyle.Render(string(r))
	}
	return mutedStyle.Render(string(r))
}
