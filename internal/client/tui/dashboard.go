package tui

import (
	"fmt"
	"strings"

	"github.com/sorail742/task-manager-frontend/internal/client/session"
	"github.com/sorail742/task-manager-frontend/internal/models"
)

// viewDashboard renders the aggregate stats the web dashboard shows:
// task totals by status, and the user count for admins.
func viewDashboard(snap session.Snapshot, tasks []models.Task, users []models.Identity, tasksLoading, usersLoading bool) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Welcome, %s", snap.Identity.Name)))
	b.WriteString("\n\n")

	if tasksLoading {
		b.WriteString(mutedStyle.Render("Loading tasks..."))
		return b.String()
	}

	var pending, inProgress, done int
	for _, t := range tasks {
		switch t.Status {
		case models.StatusPending:
			pending++
		case models.StatusInProgress:
			inProgress++
		case models.StatusDone:
			done++
		}
	}

	b.WriteString(fmt.Sprintf("Tasks        %s\n", accentStyle.Render(fmt.Sprintf("%d", len(tasks)))))
	b.WriteString(fmt.Sprintf("Pending      %s\n", pendingStyle.Render(fmt.Sprintf("%d", pending))))
	b.WriteString(fmt.Sprintf("In progress  %s\n", accentStyle.Render(fmt.Sprintf("%d", inProgress))))
	b.WriteString(fmt.Sprintf("Done         %s\n", successStyle.Render(fmt.Sprintf("%d", done))))

	if snap.Role() == models.RoleAdmin {
		if usersLoading {
			b.WriteString("\n" + mutedStyle.Render("Loading users..."))
		} else {
			b.WriteString(fmt.Sprintf("\nUsers        %s\n", accentStyle.Render(fmt.Sprintf("%d", len(users)))))
		}
	}
	return b.String()
}
