// Package login is the sign-in and registration screen.
package login

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingua/internal/activity"
	"github.com/abhisek/lingua/internal/api"
	"github.com/abhisek/lingua/internal/screen"
	"github.com/abhisek/lingua/internal/screens"
	"github.com/abhisek/lingua/internal/session"
	"github.com/abhisek/lingua/internal/ui/components"
	"github.com/abhisek/lingua/internal/ui/layout"
	"github.com/abhisek/lingua/internal/ui/theme"
)

type field int

const (
	fieldUsername field = iota
	fieldPassword
	fieldFullName
)

// authResultMsg reports a finished login or registration.
type authResultMsg struct {
	owner screen.Owner
	resp  *api.AuthResponse
	err   error
}

func (m authResultMsg) Failure() error { return m.err }

// LoginScreen collects credentials and signs the learner in.
type LoginScreen struct {
	owner   screen.Owner
	account *activity.Account

	register bool
	focus    field
	inputs   [3]components.TextInput

	busy   bool
	err    string
	notice string
}

var _ screen.Screen = (*LoginScreen)(nil)

// New creates the screen. notice, when set, is shown above the form.
func New(deps screens.Deps, notice string) *LoginScreen {
	s := &LoginScreen{
		owner:   screen.NewOwner(),
		account: activity.NewAccount(deps.API),
		notice:  notice,
	}
	s.inputs[fieldUsername] = components.NewTextInput("Username", "username", false, 64)
	s.inputs[fieldPassword] = components.NewTextInput("Password", "password", true, 128)
	s.inputs[fieldFullName] = components.NewTextInput("Full name (optional)", "", false, 128)
	return s
}

func (s *LoginScreen) Title() string {
	if s.register {
		return "Create Account"
	}
	return "Sign In"
}

func (s *LoginScreen) Init() tea.Cmd {
	return s.setFocus(fieldUsername)
}

func (s *LoginScreen) KeyHints() []layout.KeyHint {
	toggle := "Create account"
	if s.register {
		toggle = "Have an account"
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Ctrl+R", Description: toggle},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *LoginScreen) fields() []field {
	if s.register {
		return []field{fieldUsername, fieldPassword, fieldFullName}
	}
	return []field{fieldUsername, fieldPassword}
}

func (s *LoginScreen) setFocus(f field) tea.Cmd {
	s.focus = f
	var cmd tea.Cmd
	for i := range s.inputs {
		if field(i) == f {
			cmd = s.inputs[i].Focus()
		} else {
			s.inputs[i].Blur()
		}
	}
	return cmd
}

func (s *LoginScreen) moveFocus(delta int) tea.Cmd {
	fs := s.fields()
	idx := 0
	for i, f := range fs {
		if f == s.focus {
			idx = i
		}
	}
	idx = (idx + delta + len(fs)) % len(fs)
	return s.setFocus(fs[idx])
}

func (s *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case authResultMsg:
		if msg.owner != s.owner {
			return s, nil
		}
		s.busy = false
		if msg.err != nil {
			s.err = api.Describe(msg.err)
			return s, nil
		}
		resp := msg.resp
		return s, func() tea.Msg {
			return session.SignedInMsg{Token: resp.AccessToken, User: resp.User}
		}

	case tea.KeyPressMsg:
		switch msg.String() {
		case "tab", "down":
			return s, s.moveFocus(1)
		case "shift+tab", "up":
			return s, s.moveFocus(-1)
		case "ctrl+r":
			s.register = !s.register
			s.err = ""
			if !s.register && s.focus == fieldFullName {
				return s, s.setFocus(fieldUsername)
			}
			return s, nil
		case "enter":
			return s, s.submit()
		}
	}

	var cmd tea.Cmd
	s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
	return s, cmd
}

func (s *LoginScreen) submit() tea.Cmd {
	if s.busy {
		return nil
	}
	username := strings.TrimSpace(s.inputs[fieldUsername].Value())
	password := s.inputs[fieldPassword].Value()
	if username == "" || password == "" {
		s.err = activity.ErrMissingCredentials.Error()
		return nil
	}

	s.busy = true
	s.err = ""
	s.notice = ""
	owner, account, register := s.owner, s.account, s.register
	fullName := s.inputs[fieldFullName].Value()
	return func() tea.Msg {
		ctx := context.Background()
		var (
			resp *api.AuthResponse
			err  error
		)
		if register {
			resp, err = account.Register(ctx, username, password, fullName)
		} else {
			resp, err = account.Login(ctx, username, password)
		}
		return authResultMsg{owner: owner, resp: resp, err: err}
	}
}

type viewModel struct {
	heading string
	notice  string
	status  string
	err     string
	fields  []field
}

func (s *LoginScreen) viewModel() viewModel {
	vm := viewModel{
		heading: "Welcome back",
		notice:  s.notice,
		err:     s.err,
		fields:  s.fields(),
	}
	if s.register {
		vm.heading = "Create your account"
	}
	if s.busy {
		vm.status = "Signing in..."
		if s.register {
			vm.status = "Creating account..."
		}
	}
	return vm
}

func (s *LoginScreen) View(width, height int) string {
	vm := s.viewModel()

	var lines []string
	lines = append(lines, theme.Title.Render(vm.heading), "")
	if vm.notice != "" {
		lines = append(lines, theme.Notice.Render(vm.notice), "")
	}
	for _, f := range vm.fields {
		lines = append(lines, s.inputs[f].View(), "")
	}
	if vm.status != "" {
		lines = append(lines, theme.Hint.Render(vm.status))
	}
	if vm.err != "" {
		lines = append(lines, theme.ErrorText.Render(vm.err))
	}

	card := theme.Card.Width(layout.ContentWidth(width)).Render(strings.Join(lines, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
