package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sorail742/task-manager-frontend/internal/client/api"
	"github.com/sorail742/task-manager-frontend/internal/models"
)

type tasksModel struct {
	cursor int
	form   *taskForm
}

type taskForm struct {
	inputs     []textinput.Model
	focus      int
	priority   models.Priority
	submitting bool
}

func newTasksModel() tasksModel {
	return tasksModel{}
}

func newTaskForm() *taskForm {
	title := textinput.New()
	title.Placeholder = "title"
	title.CharLimit = 200
	title.Focus()

	description := textinput.New()
	description.Placeholder = "description"
	description.CharLimit = 500

	return &taskForm{
		inputs:   []textinput.Model{title, description},
		priority: models.PriorityLow,
	}
}

func (m tasksModel) editing() bool { return m.form != nil }

func (m *tasksModel) leaveForm() { m.form = nil }

func (m *tasksModel) clamp(n int) {
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m tasksModel) update(msg tea.KeyMsg, app *App, role models.Role, tasks []models.Task) (tasksModel, tea.Cmd) {
	if m.form != nil {
		return m.updateForm(msg, app, role)
	}

	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(tasks)-1 {
			m.cursor++
		}
	case "n":
		m.form = newTaskForm()
	case "d":
		if m.cursor < len(tasks) {
			task := tasks[m.cursor]
			if task.Status != models.StatusDone {
				done := models.StatusDone
				return m, app.updateTask(role, task.ID, api.TaskPatch{Status: &done})
			}
		}
	case "x":
		if m.cursor < len(tasks) {
			return m, app.deleteTask(role, tasks[m.cursor].ID)
		}
	}
	return m, nil
}

func (m tasksModel) updateForm(msg tea.KeyMsg, app *App, role models.Role) (tasksModel, tea.Cmd) {
	f := m.form
	if f.submitting {
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.form = nil
		return m, nil
	case "tab", "down":
		f.inputs[f.focus].Blur()
		f.focus = (f.focus + 1) % len(f.inputs)
		f.inputs[f.focus].Focus()
		return m, nil
	case "shift+tab", "up":
		f.inputs[f.focus].Blur()
		f.focus = (f.focus + len(f.inputs) - 1) % len(f.inputs)
		f.inputs[f.focus].Focus()
		return m, nil
	case "ctrl+p":
		f.priority = nextPriority(f.priority)
		return m, nil
	case "enter":
		title := strings.TrimSpace(f.inputs[0].Value())
		if f.focus == 0 && title != "" {
			f.inputs[f.focus].Blur()
			f.focus = 1
			f.inputs[1].Focus()
			return m, nil
		}
		if title == "" {
			return m, nil
		}
		f.submitting = true
		return m, app.createTask(role, api.CreateTaskRequest{
			Title:       title,
			Description: strings.TrimSpace(f.inputs[1].Value()),
			Priority:    f.priority,
			Status:      models.StatusPending,
		})
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return m, cmd
}

func nextPriority(p models.Priority) models.Priority {
	switch p {
	case models.PriorityLow:
		return models.PriorityMedium
	case models.PriorityMedium:
		return models.PriorityHigh
	default:
		return models.PriorityLow
	}
}

func (m tasksModel) view(tasks []models.Task, loading bool) string {
	if m.form != nil {
		return m.form.view()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Tasks"))
	b.WriteString("\n\n")

	switch {
	case loading:
		b.WriteString(mutedStyle.Render("Loading..."))
	case len(tasks) == 0:
		b.WriteString(mutedStyle.Render("No tasks yet. Press n to create one."))
	default:
		for i, t := range tasks {
			title := fmt.Sprintf("%-30.30s", t.Title)
			if i == m.cursor {
				b.WriteString(selectedStyle.Render("> " + title))
			} else {
				b.WriteString("  " + title)
			}
			b.WriteString(" " + priorityStyle(string(t.Priority)).Render(fmt.Sprintf("%-6s", t.Priority)))
			b.WriteString(" " + statusLabel(t.Status))
			b.WriteString("\n")
		}
		b.WriteString("\n" + helpStyle.Render("n: new • d: mark done • x: delete"))
	}
	return b.String()
}

func statusLabel(s models.Status) string {
	switch s {
	case models.StatusDone:
		return successStyle.Render(string(s))
	case models.StatusInProgress:
		return accentStyle.Render(string(s))
	default:
		return pendingStyle.Render(string(s))
	}
}

func (f *taskForm) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("New task"))
	b.WriteString("\n\n")
	for _, in := range f.inputs {
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	b.WriteString("priority: " + priorityStyle(string(f.priority)).Render(string(f.priority)))
	b.WriteString("  " + helpStyle.Render("(ctrl+p to cycle)"))
	if f.submitting {
		b.WriteString("\n\n" + mutedStyle.Render("Creating..."))
	}
	return b.String()
}
