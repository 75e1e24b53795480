package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type loginModel struct {
	inputs     []textinput.Model
	focus      int
	submitting bool
}

func newLoginModel() loginModel {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 120
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 120
	password.EchoMode = textinput.EchoPassword

	return loginModel{inputs: []textinput.Model{email, password}}
}

func (m loginModel) update(msg tea.KeyMsg, app *App) (loginModel, tea.Cmd) {
	if m.submitting {
		return m, nil
	}

	switch msg.String() {
	case "enter":
		email := strings.TrimSpace(m.inputs[0].Value())
		password := m.inputs[1].Value()
		if m.focus == 0 || email == "" || password == "" {
			return m.focusNext(), nil
		}
		m.submitting = true
		return m, app.login(email, password)
	case "tab", "down":
		return m.focusNext(), nil
	case "shift+tab", "up":
		return m.focusPrev(), nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m loginModel) focusNext() loginModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}

func (m loginModel) focusPrev() loginModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + len(m.inputs) - 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}

func (m loginModel) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Sign in"))
	b.WriteString("\n\n")
	for _, in := range m.inputs {
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	if m.submitting {
		b.WriteString("\n" + mutedStyle.Render("Signing in..."))
	} else {
		b.WriteString("\n" + mutedStyle.Render("No account yet? ctrl+r to register"))
	}
	return b.String()
}
