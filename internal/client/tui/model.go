package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/sorail742/task-manager-frontend/internal/client/api"
	"github.com/sorail742/task-manager-frontend/internal/client/cache"
	"github.com/sorail742/task-manager-frontend/internal/client/guard"
	"github.com/sorail742/task-manager-frontend/internal/client/session"
	"github.com/sorail742/task-manager-frontend/internal/models"
)

// model is the root Elm-style model. It owns the current route, the
// latest session snapshot and the loaded collections; the per-view
// models only hold cursor and form state.
type model struct {
	app   *App
	snap  session.Snapshot
	route guard.Route

	width  int
	height int

	notice    string
	noticeErr bool

	taskList     []models.Task
	userList     []models.Identity
	tasksLoading bool
	usersLoading bool

	login    loginModel
	register registerModel
	tasks    tasksModel
	users    usersModel
	members  membersModel
}

func newModel(app *App) model {
	m := model{
		app:      app,
		snap:     app.Session.Snapshot(),
		route:    guard.RouteDashboard,
		login:    newLoginModel(),
		register: newRegisterModel(),
		tasks:    newTasksModel(),
		users:    newUsersModel(),
		members:  newMembersModel(),
	}
	return m
}

func (m model) Init() tea.Cmd {
	return nil
}

// navigate applies the route guard and switches to the resulting view,
// returning the command that loads whatever the view needs.
func (m *model) navigate(target guard.Route) tea.Cmd {
	switch guard.Decide(m.snap.Status, m.snap.Role(), target) {
	case guard.Render, guard.ShowLoading:
		m.route = target
	case guard.RedirectLogin:
		m.route = guard.RouteLogin
	case guard.RedirectHome:
		m.route = guard.RouteDashboard
	}
	return m.enterCmd()
}

// enterCmd returns the data loads the current route depends on.
func (m *model) enterCmd() tea.Cmd {
	if m.snap.Status != session.StatusAuthenticated {
		return nil
	}
	role := m.snap.Role()
	switch m.route.Name {
	case guard.RouteDashboard.Name:
		cmds := []tea.Cmd{m.app.loadTasks(role)}
		m.tasksLoading = true
		if role == models.RoleAdmin {
			m.usersLoading = true
			cmds = append(cmds, m.app.loadUsers(role))
		}
		return tea.Batch(cmds...)
	case guard.RouteTasks.Name:
		m.tasksLoading = true
		return m.app.loadTasks(role)
	case guard.RouteUsers.Name:
		m.usersLoading = true
		return m.app.loadUsers(role)
	}
	return nil
}

// capturing reports whether the active view owns the keyboard, so
// navigation shortcuts must not fire.
func (m *model) capturing() bool {
	switch m.route.Name {
	case guard.RouteLogin.Name, guard.RouteRegister.Name, guard.RouteMembers.Name:
		return true
	case guard.RouteTasks.Name:
		return m.tasks.editing()
	}
	return false
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)

	case sessionMsg:
		return m.updateSession(session.Snapshot(msg))

	case errMsg:
		return m.updateError(msg.err)

	case noticeMsg:
		m.notice, m.noticeErr = string(msg), false
		return m, nil

	case tasksMsg:
		m.taskList = msg
		m.tasksLoading = false
		m.tasks.clamp(len(m.taskList))
		return m, nil

	case usersMsg:
		m.userList = msg
		m.usersLoading = false
		m.users.clamp(len(m.userList))
		return m, nil

	case loggedInMsg:
		m.app.Session.Login(msg.Token, msg.User)
		m.snap = m.app.Session.Snapshot()
		m.login = newLoginModel()
		m.notice, m.noticeErr = fmt.Sprintf("signed in as %s", msg.User.Name), false
		return m, m.navigate(guard.RouteDashboard)

	case registeredMsg:
		m.register = newRegisterModel()
		m.notice, m.noticeErr = "account created, sign in to continue", false
		return m, m.navigate(guard.RouteLogin)

	case taskCreatedMsg:
		m.tasks.leaveForm()
		m.notice, m.noticeErr = fmt.Sprintf("task %q created", msg.Title), false
		return m, m.app.loadTasks(m.snap.Role())

	case taskUpdatedMsg:
		m.notice, m.noticeErr = "task updated", false
		return m, m.app.loadTasks(m.snap.Role())

	case taskDeletedMsg:
		m.notice, m.noticeErr = "task deleted", false
		return m, m.app.loadTasks(m.snap.Role())

	case userDeletedMsg:
		m.notice, m.noticeErr = "user deleted", false
		return m, m.app.loadUsers(m.snap.Role())

	case userCreatedMsg:
		m.members = newMembersModel()
		if msg.admin {
			m.notice = "admin account created"
		} else {
			m.notice = "member account created"
		}
		m.noticeErr = false
		return m, nil
	}

	return m, nil
}

func (m model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Control chords work everywhere, even inside forms.
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "ctrl+d":
		if m.snap.Status == session.StatusAuthenticated {
			m.app.Session.Logout()
			m.snap = m.app.Session.Snapshot()
			m.notice, m.noticeErr = "signed out", false
			return m, m.navigate(guard.RouteLogin)
		}
		return m, nil
	case "ctrl+r":
		// Toggle between the two public views.
		if m.snap.Status == session.StatusAnonymous {
			if m.route.Name == guard.RouteLogin.Name {
				return m, m.navigate(guard.RouteRegister)
			}
			return m, m.navigate(guard.RouteLogin)
		}
		return m, nil
	}

	if !m.capturing() {
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "1", "2", "3", "4":
			idx := int(msg.String()[0] - '1')
			return m, m.navigate(guardRoutes[idx])
		case "r":
			return m, m.refresh()
		}
	}

	return m.updateView(msg)
}

// refresh drops the cached collections behind the current route and
// reloads them.
func (m *model) refresh() tea.Cmd {
	role := m.snap.Role()
	switch m.route.Name {
	case guard.RouteTasks.Name, guard.RouteDashboard.Name:
		m.app.Tasks.Invalidate(cache.Key("tasks", role))
		if m.route.Name == guard.RouteDashboard.Name && role == models.RoleAdmin {
			m.app.Users.Invalidate(cache.Key("users", role))
		}
	case guard.RouteUsers.Name:
		m.app.Users.Invalidate(cache.Key("users", role))
	}
	return m.enterCmd()
}

// updateView forwards a key to the active view's model.
func (m model) updateView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.route.Name {
	case guard.RouteLogin.Name:
		m.login, cmd = m.login.update(msg, m.app)
	case guard.RouteRegister.Name:
		m.register, cmd = m.register.update(msg, m.app)
	case guard.RouteTasks.Name:
		m.tasks, cmd = m.tasks.update(msg, m.app, m.snap.Role(), m.taskList)
	case guard.RouteUsers.Name:
		var notice string
		m.users, cmd, notice = m.users.update(msg, m.app, m.snap, m.userList)
		if notice != "" {
			m.notice, m.noticeErr = notice, true
		}
	case guard.RouteMembers.Name:
		m.members, cmd = m.members.update(msg, m.app)
	}
	return m, cmd
}

func (m model) updateSession(snap session.Snapshot) (tea.Model, tea.Cmd) {
	prev := m.snap.Status
	m.snap = snap

	if snap.Status == session.StatusAnonymous {
		// Drop everything loaded under the old session so a later
		// sign-in starts from server state.
		for _, role := range []models.Role{models.RoleMember, models.RoleAdmin} {
			m.app.Tasks.Invalidate(cache.Key("tasks", role))
			m.app.Users.Invalidate(cache.Key("users", role))
		}
		m.taskList = nil
		m.userList = nil
	}

	// Re-run the guard for the route we are on; a settled bootstrap or
	// an expired session may demand a different view.
	cmd := m.navigate(m.route)

	if prev == session.StatusBootstrapping {
		m.app.Log.Info("session settled", zap.Stringer("status", snap.Status))
	}
	return m, cmd
}

func (m model) updateError(err error) (tea.Model, tea.Cmd) {
	m.tasksLoading = false
	m.usersLoading = false
	m.login.submitting = false
	m.register.submitting = false
	m.members.submitting = false
	if m.tasks.form != nil {
		// Keep the form contents so the input can be corrected.
		m.tasks.form.submitting = false
	}

	if api.IsAuth(err) && m.snap.Status == session.StatusAuthenticated {
		m.app.Log.Info("credential rejected mid-session, signing out", zap.Error(err))
		m.app.Session.Logout()
		m.snap = m.app.Session.Snapshot()
		m.notice, m.noticeErr = "session expired, sign in again", true
		return m, m.navigate(guard.RouteLogin)
	}

	m.app.Log.Warn("request failed", zap.Error(err))
	m.notice, m.noticeErr = err.Error(), true
	return m, nil
}

func (m model) View() string {
	var body string

	if m.snap.Status == session.StatusBootstrapping && m.route.RequiresAuth {
		body = mutedStyle.Render("Restoring session...")
	} else {
		switch m.route.Name {
		case guard.RouteLogin.Name:
			body = m.login.view()
		case guard.RouteRegister.Name:
			body = m.register.view()
		case guard.RouteDashboard.Name:
			body = viewDashboard(m.snap, m.taskList, m.userList, m.tasksLoading, m.usersLoading)
		case guard.RouteTasks.Name:
			body = m.tasks.view(m.taskList, m.tasksLoading)
		case guard.RouteUsers.Name:
			body = m.users.view(m.snap, m.userList, m.usersLoading)
		case guard.RouteMembers.Name:
			body = m.members.view()
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.headerView(),
		panelStyle.Render(body),
		m.footerView(),
	)
}

func (m model) headerView() string {
	title := titleStyle.Render("Task Manager")

	var who string
	switch m.snap.Status {
	case session.StatusAuthenticated:
		who = accentStyle.Render(fmt.Sprintf("%s (%s)", m.snap.Identity.Name, m.snap.Identity.Role))
	case session.StatusBootstrapping:
		who = mutedStyle.Render("...")
	default:
		who = mutedStyle.Render("not signed in")
	}

	var tabs []string
	if m.snap.Status == session.StatusAuthenticated {
		for i, route := range guardRoutes {
			if route.AdminOnly && m.snap.Role() != models.RoleAdmin {
				continue
			}
			label := fmt.Sprintf("%d:%s", i+1, route.Name)
			if route.Name == m.route.Name {
				label = selectedStyle.Render(label)
			} else {
				label = mutedStyle.Render(label)
			}
			tabs = append(tabs, label)
		}
	}

	line := title + "  " + who
	if len(tabs) > 0 {
		line += "  " + strings.Join(tabs, " ")
	}
	return line
}

func (m model) footerView() string {
	var parts []string
	if m.notice != "" {
		if m.noticeErr {
			parts = append(parts, errorStyle.Render(m.notice))
		} else {
			parts = append(parts, successStyle.Render(m.notice))
		}
	}

	var help string
	switch {
	case m.snap.Status != session.StatusAuthenticated:
		help = "tab: next field • enter: submit • ctrl+r: login/register • ctrl+c: quit"
	case m.capturing():
		help = "tab: next field • enter: submit • esc: back • ctrl+d: sign out"
	default:
		help = "1-4: navigate • r: refresh • ctrl+d: sign out • q: quit"
	}
	parts = append(parts, helpStyle.Render(help))
	return strings.Join(parts, "\n")
}
