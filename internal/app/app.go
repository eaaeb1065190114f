// Package app is the root Bubble Tea model. It owns the session, restores
// it at startup and decides which root screen is shown.
package app

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/lingua/internal/api"
	"github.com/abhisek/lingua/internal/audio"
	"github.com/abhisek/lingua/internal/navigation"
	"github.com/abhisek/lingua/internal/router"
	"github.com/abhisek/lingua/internal/screen"
	"github.com/abhisek/lingua/internal/screens"
	"github.com/abhisek/lingua/internal/screens/welcome"
	"github.com/abhisek/lingua/internal/session"
	"github.com/abhisek/lingua/internal/store"
	"github.com/abhisek/lingua/internal/ui/layout"
)

// Gateway is the API surface the app needs. *api.Client satisfies it.
type Gateway interface {
	screens.API
	SetToken(token string)
}

// Deps are the collaborators of the app.
type Deps struct {
	API         Gateway
	Credentials store.CredentialRepo
	Recorder    audio.Recorder
	Logger      *zap.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	deps    Deps
	logger  *zap.Logger
	clock   func() time.Time
	session *session.Session
	router  *router.Router
	route   navigation.Screen

	// stale is set when the profile changed while a section covered the
	// root screen. The root is rebuilt once it is uncovered.
	stale bool

	// Startup: the splash stays up until it has finished and the restore
	// result is in.
	starting   bool
	splashDone bool
	restored   *restoredMsg

	width  int
	height int
}

// New creates the app showing the splash screen.
func New(deps Deps) AppModel {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return AppModel{
		deps:     deps,
		logger:   logger,
		clock:    time.Now,
		session:  &session.Session{},
		router:   router.New(welcome.New("Restoring your session...")),
		route:    navigation.Unauthenticated,
		starting: true,
	}
}

func (m AppModel) now() time.Time { return m.clock() }

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.router.Active().Init(), func() tea.Msg {
		return m.restore(context.Background())
	})
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if c, ok := m.router.Active().(screen.InputCapturer); ok && c.CapturingInput() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}

	case welcome.FinishedMsg:
		m.splashDone = true
		return m.finishStartup()

	case restoredMsg:
		m.restored = &msg
		return m.finishStartup()

	case session.SignedInMsg:
		user := msg.User
		m.session.SignIn(msg.Token, &user)
		m.deps.API.SetToken(msg.Token)
		if err := m.deps.Credentials.Save(context.Background(), msg.Token); err != nil {
			m.logger.Warn("save credential", zap.Error(err))
		}
		m.logger.Info("signed in", zap.String("user", user.Username))
		return m, m.reset("")

	case session.UserUpdatedMsg:
		m.session.ReplaceUser(msg.User)
		return m, m.refresh()

	case session.PlacementCompletedMsg:
		m.session.CompletePlacement(msg.Level)
		return m, m.refresh()

	case router.PopScreenMsg:
		m.router.Pop()
		if m.stale && m.router.Depth() == 1 {
			return m, m.reset("")
		}
		return m, nil

	case session.SignedOutMsg:
		return m, m.signOut(msg.Notice)

	case screens.OpenMsg:
		s := m.sectionScreen(msg.Section)
		if s == nil {
			return m, nil
		}
		return m, m.router.Push(s)
	}

	if f, ok := msg.(screen.Failed); ok && api.IsUnauthorized(f.Failure()) {
		m.logger.Info("token rejected, signing out")
		return m, m.signOut(ExpiredNotice)
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) finishStartup() (tea.Model, tea.Cmd) {
	if !m.starting || !m.splashDone || m.restored == nil {
		return m, nil
	}
	m.starting = false
	r := m.restored
	m.restored = nil
	if r.user != nil {
		m.session.SignIn(r.token, r.user)
		m.deps.API.SetToken(r.token)
	}
	return m, m.reset(r.notice)
}

// refresh follows a profile change. A section open on top of the root
// keeps running and the root is rebuilt when the section closes.
func (m *AppModel) refresh() tea.Cmd {
	if m.router.Depth() > 1 {
		m.stale = true
		return nil
	}
	if navigation.Route(m.session) == m.route {
		return nil
	}
	return m.reset("")
}

// reset replaces the whole screen stack with the root screen of the
// current route.
func (m *AppModel) reset(notice string) tea.Cmd {
	m.stale = false
	m.route = navigation.Route(m.session)
	m.logger.Debug("route", zap.Stringer("screen", m.route))
	return m.router.Reset(m.rootScreen(m.route, notice))
}

func (m *AppModel) signOut(notice string) tea.Cmd {
	m.session.Clear()
	m.deps.API.SetToken("")
	m.forget(context.Background())
	return m.reset(notice)
}

// badge identifies the learner in the header, e.g. "ana | Spanish (B1)".
func badge(u *api.User) string {
	if u == nil {
		return ""
	}
	lang, level := "?", "?"
	if u.HasLanguage() {
		lang = *u.TargetLanguage
	}
	if u.HasLevel() {
		level = *u.Level
	}
	return u.Username + " | " + lang + " (" + level + ")"
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	if m.starting {
		v.SetContent(active.View(m.width, m.height))
		return v
	}

	header := layout.RenderHeader(active.Title(), badge(m.session.User()), m.width)

	var footerHints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		footerHints = p.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	footer := layout.RenderFooter(footerHints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}
