// Package tui is the terminal front end: login and register forms, a
// dashboard with aggregate stats, and task/user management views. Every
// navigation passes through the route guard, and all data flows through
// the query cache so views never issue duplicate loads.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/sorail742/task-manager-frontend/internal/client/api"
	"github.com/sorail742/task-manager-frontend/internal/client/cache"
	"github.com/sorail742/task-manager-frontend/internal/client/guard"
	"github.com/sorail742/task-manager-frontend/internal/client/session"
	"github.com/sorail742/task-manager-frontend/internal/models"
)

// App bundles the client-side core the views run on.
type App struct {
	Session *session.Store
	Client  *api.Client
	Tasks   *cache.Store[models.Task]
	Users   *cache.Store[models.Identity]
	Log     *zap.Logger
	Timeout time.Duration
}

// NewApp wires the client core together.
func NewApp(store *session.Store, client *api.Client, log *zap.Logger, timeout time.Duration) *App {
	if log == nil {
		log = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &App{
		Session: store,
		Client:  client,
		Tasks:   cache.New[models.Task](),
		Users:   cache.New[models.Identity](),
		Log:     log,
		Timeout: timeout,
	}
}

// Run starts the UI. It subscribes the program to session transitions,
// kicks off the bootstrap in the background and blocks until quit.
func (a *App) Run(ctx context.Context) error {
	p := tea.NewProgram(newModel(a), tea.WithAltScreen(), tea.WithContext(ctx))

	// Every session transition becomes a message; the model re-guards
	// the current route when it arrives.
	a.Session.Subscribe(func(snap session.Snapshot) {
		p.Send(sessionMsg(snap))
	})

	go a.Session.Bootstrap(ctx, a.Client)

	_, err := p.Run()
	return err
}

func (a *App) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), a.Timeout)
}

// Messages exchanged between commands and the model.
type (
	sessionMsg session.Snapshot
	errMsg     struct{ err error }
	noticeMsg  string

	tasksMsg       []models.Task
	usersMsg       []models.Identity
	taskCreatedMsg models.Task
	taskUpdatedMsg models.Task
	taskDeletedMsg string
	userDeletedMsg string
	userCreatedMsg struct{ admin bool }
	loggedInMsg    *api.LoginResult
	registeredMsg  struct{}
)

// loadTasks fetches the role-scoped task collection through the cache.
func (a *App) loadTasks(role models.Role) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.ctx()
		defer cancel()
		items, err := a.Tasks.Fetch(ctx, cache.Key("tasks", role), func(ctx context.Context) ([]models.Task, error) {
			return a.Client.ListTasks(ctx)
		})
		if err != nil {
			return errMsg{err}
		}
		return tasksMsg(items)
	}
}

// loadUsers fetches the user collection; only issued for admins.
func (a *App) loadUsers(role models.Role) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.ctx()
		defer cancel()
		items, err := a.Users.Fetch(ctx, cache.Key("users", role), func(ctx context.Context) ([]models.Identity, error) {
			return a.Client.ListUsers(ctx)
		})
		if err != nil {
			return errMsg{err}
		}
		return usersMsg(items)
	}
}

func (a *App) login(email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.ctx()
		defer cancel()
		res, err := a.Client.Login(ctx, email, password)
		if err != nil {
			return errMsg{err}
		}
		return loggedInMsg(res)
	}
}

func (a *App) register(req api.RegisterRequest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.ctx()
		defer cancel()
		if err := a.Client.Register(ctx, req); err != nil {
			return errMsg{err}
		}
		return registeredMsg{}
	}
}

func (a *App) createUser(req api.RegisterRequest, admin bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.ctx()
		defer cancel()
		var err error
		if admin {
			err = a.Client.CreateAdmin(ctx, req)
		} else {
			err = a.Client.CreateMember(ctx, req)
		}
		if err != nil {
			return errMsg{err}
		}
		// The users collection changed server-side; a reload is needed
		// next time the list renders.
		a.Users.Invalidate(cache.Key("users", models.RoleAdmin))
		return userCreatedMsg{admin: admin}
	}
}

// createTask creates the task server-side and appends the returned
// record to the cached collection, avoiding a reload round-trip.
func (a *App) createTask(role models.Role, req api.CreateTaskRequest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.ctx()
		defer cancel()

		var created models.Task
		err := a.Tasks.Mutate(ctx, cache.Key("tasks", role),
			func(ctx context.Context) error {
				t, err := a.Client.CreateTask(ctx, req)
				created = t
				return err
			},
			cache.Append(&created),
		)
		if err != nil {
			return errMsg{err}
		}
		return taskCreatedMsg(created)
	}
}

func (a *App) updateTask(role models.Role, id string, patch api.TaskPatch) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.ctx()
		defer cancel()

		var updated models.Task
		err := a.Tasks.Mutate(ctx, cache.Key("tasks", role),
			func(ctx context.Context) error {
				t, err := a.Client.UpdateTask(ctx, id, patch)
				updated = t
				return err
			},
			cache.Replace(func(t models.Task) bool { return t.ID == id }, &updated),
		)
		if err != nil {
			return errMsg{err}
		}
		return taskUpdatedMsg(updated)
	}
}

func (a *App) deleteTask(role models.Role, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.ctx()
		defer cancel()

		err := a.Tasks.Mutate(ctx, cache.Key("tasks", role),
			func(ctx context.Context) error {
				return a.Client.DeleteTask(ctx, id)
			},
			cache.Remove(func(t models.Task) bool { return t.ID == id }),
		)
		if err != nil {
			return errMsg{err}
		}
		return taskDeletedMsg(id)
	}
}

func (a *App) deleteUser(role models.Role, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.ctx()
		defer cancel()

		err := a.Users.Mutate(ctx, cache.Key("users", role),
			func(ctx context.Context) error {
				return a.Client.DeleteUser(ctx, id)
			},
			cache.Remove(func(u models.Identity) bool { return u.ID == id }),
		)
		if err != nil {
			return errMsg{err}
		}
		return userDeletedMsg(id)
	}
}

// guardRoutes is the navigation order shown in the footer.
var guardRoutes = []guard.Route{
	guard.RouteDashboard,
	guard.RouteTasks,
	guard.RouteUsers,
	guard.RouteMembers,
}
