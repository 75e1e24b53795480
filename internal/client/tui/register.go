package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sorail742/task-manager-frontend/internal/client/api"
)

type registerModel struct {
	inputs     []textinput.Model
	focus      int
	submitting bool
}

func newRegisterModel() registerModel {
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

	return registerModel{inputs: []textinput.Model{name, email, password}}
}

func (m registerModel) update(msg tea.KeyMsg, app *App) (registerModel, tea.Cmd) {
	if m.submitting {
		return m, nil
	}

	switch msg.String() {
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
		return m, app.register(req)
	case "tab", "down":
		return m.focusNext(), nil
	case "shift+tab", "up":
		return m.focusPrev(), nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m registerModel) focusNext() registerModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}

func (m registerModel) focusPrev() registerModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + len(m.inputs) - 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}

func (m registerModel) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Create account"))
	b.WriteString("\n\n")
	for _, in := range m.inputs {
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	if m.submitting {
		b.WriteString("\n" + mutedStyle.Render("Creating account..."))
	} else {
		b.WriteString("\n" + mutedStyle.Render("Already registered? ctrl+r to sign in"))
	}
	return b.String()
}
