package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sorail742/task-manager-frontend/internal/client/api"
)

// membersModel is the admin view for creating member and admin accounts.
type membersModel struct {
	inputs     []textinput.Model
	focus      int
	admin      bool
	submitting bool
}

func newMembersModel() membersModel {
	name := textinput.New()
	name.Placeholder = "name"
	name.CharLimit = 120
	name.Focus()

	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 120

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 120
	password.EchoMode = textinput.EchoPassword

	return membersModel{inputs: []textinput.Model{name, email, password}}
}

func (m membersModel) update(msg tea.KeyMsg, app *App) (membersModel, tea.Cmd) {
	if m.submitting {
		return m, nil
	}

	switch msg.String() {
	case "esc":
		return newMembersModel(), nil
	case "tab", "down":
		return m.focusNext(), nil
	case "shift+tab", "up":
		return m.focusPrev(), nil
	case "ctrl+a":
		m.admin = !m.admin
		return m, nil
	case "enter":
		req := api.RegisterRequest{
			Name:     strings.TrimSpace(m.inputs[0].Value()),
			Email:    strings.TrimSpace(m.inputs[1].Value()),
			Password: m.inputs[2].Value(),
		}
		if m.focus < len(m.inputs)-1 || req.Name == "" || req.Email == "" || req.Password == "" {
			return m.focusNext(), nil
		}
		m.submitting = true
		return m, app.createUser(req, m.admin)
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m membersModel) focusNext() membersModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}

func (m membersModel) focusPrev() membersModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + len(m.inputs) - 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}

func (m membersModel) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Create account"))
	b.WriteString("\n\n")
	for _, in := range m.inputs {
		b.WriteString(in.View())
		b.WriteString("\n")
	}

	role := "member"
	if m.admin {
		role = "admin"
	}
	b.WriteString("role: " + accentStyle.Render(role))
	b.WriteString("  " + helpStyle.Render("(ctrl+a to toggle)"))
	if m.submitting {
		b.WriteString("\n\n" + mutedStyle.Render("Creating..."))
	}
	return b.String()
}
