package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"cinetix-cli/booking"
	"cinetix-cli/model"
)

const (
	loginEmail = iota
	loginPassword
)

const (
	regName = iota
	regEmail
	regPassword
	regConfirm
)

type form struct {
	labels []string
	inputs []textinput.Model
	focus  int
	err    string
	busy   bool
}

func newInput(placeholder string, secret bool) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 128
	in.Width = 36
	if secret {
		in.EchoMode = textinput.EchoPassword
		in.EchoCharacter = '•'
	}
	return in
}

func newLoginForm() form {
	f := form{
		labels: []string{"Email", "Password"},
		inputs: []textinput.Model{
			newInput("you@example.com", false),
			newInput("Password", true),
		},
	}
	f.focusOn(loginEmail)
	return f
}

func newRegisterForm() form {
	f := form{
		labels: []string{"Name", "Email", "Password", "Confirm Password"},
		inputs: []textinput.Model{
			newInput("Full name", false),
			newInput("you@example.com", false),
			newInput("At least 6 characters", true),
			newInput("Repeat password", true),
		},
	}
	f.focusOn(regName)
	return f
}

func (f *form) focusOn(i int) tea.Cmd {
	if i < 0 || i >= len(f.inputs) {
		return nil
	}
	f.focus = i
	var cmd tea.Cmd
	for j := range f.inputs {
		if j == i {
			cmd = f.inputs[j].Focus()
			continue
		}
		f.inputs[j].Blur()
	}
	return cmd
}

func (f *form) next() tea.Cmd {
	return f.focusOn((f.focus + 1) % len(f.inputs))
}

func (f *form) prev() tea.Cmd {
	return f.focusOn((f.focus - 1 + len(f.inputs)) % len(f.inputs))
}

// value returns a trimmed field. Passwords are read with secret.
func (f form) value(i int) string {
	return strings.TrimSpace(f.inputs[i].Value())
}

func (f form) secret(i int) string {
	return f.inputs[i].Value()
}

func (f *form) reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
	}
	f.err = ""
	f.busy = false
	f.focusOn(0)
}

func (f form) update(msg tea.Msg) (form, tea.Cmd) {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f form) view(title string, spin string) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(title))
	b.WriteString("\n\n")
	for i, in := range f.inputs {
		label := f.labels[i]
		if i == f.focus {
			label = focusStyle.Render(label)
		} else {
			label = hint(label)
		}
		b.WriteString(label)
		b.WriteString("\n")
		b.WriteString(in.View())
		b.WriteString("\n\n")
	}
	if f.busy {
		b.WriteString(spin + " Please wait...")
	} else if f.err != "" {
		b.WriteString(errorStyle.Render(f.err))
	}
	return b.String()
}

func (m appModel) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	f := m.activeForm()
	switch msg.String() {
	case "tab", "down":
		cmd := f.next()
		return m, cmd, true
	case "shift+tab", "up":
		cmd := f.prev()
		return m, cmd, true
	case "esc":
		if m.state == stateRegister {
			next, cmd := m.goBack()
			focus := next.loginForm.focusOn(next.loginForm.focus)
			return next, tea.Batch(cmd, focus), true
		}
		return m, nil, true
	case "ctrl+r":
		if m.state == stateLogin {
			m.notice = ""
			m.loginForm.err = ""
			m.registerForm.reset()
			m.state = stateRegister
			cmd := m.registerForm.focusOn(regName)
			return m, cmd, true
		}
	case "enter":
		if f.focus < len(f.inputs)-1 {
			cmd := f.next()
			return m, cmd, true
		}
		if m.state == stateLogin {
			return m.submitLogin()
		}
		return m.submitRegister()
	}
	return m, nil, false
}

func (m appModel) submitLogin() (tea.Model, tea.Cmd, bool) {
	email := m.loginForm.value(loginEmail)
	password := m.loginForm.secret(loginPassword)
	if email == "" || password == "" {
		m.loginForm.err = "Please fill in both fields."
		return m, nil, true
	}
	m.notice = ""
	m.loginForm.err = ""
	m.loginForm.busy = true
	req := model.LoginRequest{Email: email, Password: password}
	return m, tea.Batch(m.loginCmd(req), m.spinner.Tick), true
}

func (m appModel) submitRegister() (tea.Model, tea.Cmd, bool) {
	f := &m.registerForm
	req := model.RegisterRequest{
		Name:     f.value(regName),
		Email:    f.value(regEmail),
		Password: f.secret(regPassword),
	}
	confirm := f.secret(regConfirm)
	if req.Name == "" || req.Email == "" || req.Password == "" || confirm == "" {
		f.err = "Please fill in all fields."
		return m, nil, true
	}
	if req.Password != confirm {
		f.err = "Passwords do not match."
		return m, nil, true
	}
	if err := booking.Validate(&req); err != nil {
		f.err = validationMessage(err)
		return m, nil, true
	}
	f.err = ""
	f.busy = true
	return m, tea.Batch(m.registerCmd(req), m.spinner.Tick), true
}

func validationMessage(err error) string {
	var verr *booking.ValidationError
	if errors.As(err, &verr) {
		return booking.FormatValidationErrors(verr.Fields)
	}
	return err.Error()
}

func (m appModel) loginCmd(req model.LoginRequest) tea.Cmd {
	api, timeout := m.api, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		auth, err := api.Login(ctx, req)
		return authMsg{auth: auth, err: err}
	}
}

func (m appModel) registerCmd(req model.RegisterRequest) tea.Cmd {
	api, timeout := m.api, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		msg, err := api.Register(ctx, req)
		return registerMsg{message: msg, err: err}
	}
}
