// Package onboarding holds the screens a new learner passes through before
// the module hub: picking a target language and then a level.
package onboarding

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

// Languages offered for study.
var Languages = []string{"Spanish", "French", "German", "Italian", "Portuguese", "Japanese"}

// Levels are the CEFR levels a learner can pick directly.
var Levels = []string{"A1", "A2", "B1", "B2", "C1", "C2"}

var levelNames = map[string]string{
	"A1": "Beginner",
	"A2": "Elementary",
	"B1": "Intermediate",
	"B2": "Upper intermediate",
	"C1": "Advanced",
	"C2": "Proficient",
}

// profileMsg reports the profile returned after a selection.
type profileMsg struct {
	owner screen.Owner
	user  *api.User
	err   error
}

func (m profileMsg) Failure() error { return m.err }

// selectMsg is produced by a menu item.
type selectMsg struct{ value string }

// picker is the behaviour both onboarding screens share: a menu whose
// choice is sent to the server, after which the fresh profile is handed to
// the app.
type picker struct {
	owner   screen.Owner
	account *activity.Account
	menu    components.Menu

	busy    bool
	pending string
	err     string
}

func (p *picker) handle(msg tea.Msg, apply func(ctx context.Context, value string) (*api.User, error)) tea.Cmd {
	switch msg := msg.(type) {
	case profileMsg:
		if msg.owner != p.owner {
			return nil
		}
		p.busy = false
		if msg.err != nil {
			p.err = api.Describe(msg.err)
			return nil
		}
		user := *msg.user
		return func() tea.Msg { return session.UserUpdatedMsg{User: user} }

	case selectMsg:
		if p.busy {
			return nil
		}
		p.busy = true
		p.pending = msg.value
		p.err = ""
		owner, value := p.owner, msg.value
		return func() tea.Msg {
			u, err := apply(context.Background(), value)
			return profileMsg{owner: owner, user: u, err: err}
		}

	case tea.KeyPressMsg:
		if p.busy {
			return nil
		}
		var cmd tea.Cmd
		p.menu, cmd = p.menu.Update(msg)
		return cmd
	}
	return nil
}

func selectItem(label, description, value string) components.MenuItem {
	return components.MenuItem{
		Label:       label,
		Description: description,
		Action: func() tea.Cmd {
			return func() tea.Msg { return selectMsg{value: value} }
		},
	}
}

type viewModel struct {
	heading string
	prompt  string
	status  string
	err     string
}

func render(vm viewModel, menu components.Menu, width, height int) string {
	lines := []string{
		theme.Title.Render(vm.heading),
		theme.Subtitle.Render(vm.prompt),
		"",
		menu.View(),
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

// LanguageScreen asks which language to study.
type LanguageScreen struct {
	picker
}

var _ screen.Screen = (*LanguageScreen)(nil)

// NewLanguage creates the language selection screen.
func NewLanguage(deps screens.Deps) *LanguageScreen {
	items := make([]components.MenuItem, len(Languages))
	for i, lang := range Languages {
		items[i] = selectItem(lang, "", lang)
	}
	return &LanguageScreen{picker{
		owner:   screen.NewOwner(),
		account: activity.NewAccount(deps.API),
		menu:    components.NewMenu(items),
	}}
}

func (s *LanguageScreen) Title() string { return "Choose a Language" }
func (s *LanguageScreen) Init() tea.Cmd { return nil }

func (s *LanguageScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return s, s.handle(msg, s.account.SelectLanguage)
}

func (s *LanguageScreen) viewModel() viewModel {
	vm := viewModel{
		heading: "Which language do you want to learn?",
		prompt:  "You can practise vocabulary, grammar, writing, conversation, pronunciation and more.",
		err:     s.err,
	}
	if s.busy {
		vm.status = "Saving " + s.pending + "..."
	}
	return vm
}

func (s *LanguageScreen) View(width, height int) string {
	return render(s.viewModel(), s.menu, width, height)
}

// placementValue marks the menu item that opens the placement test.
const placementValue = "placement"

// LevelScreen asks for a level or offers the placement test.
type LevelScreen struct {
	picker
	language string
}

var _ screen.Screen = (*LevelScreen)(nil)

// NewLevel creates the level selection screen for language.
func NewLevel(deps screens.Deps, language string) *LevelScreen {
	items := make([]components.MenuItem, 0, len(Levels)+1)
	items = append(items, components.MenuItem{
		Label:       "Take placement test",
		Description: "Not sure? Find your level",
		Action: func() tea.Cmd {
			return func() tea.Msg { return screens.OpenMsg{Section: screens.Placement} }
		},
	})
	for _, lvl := range Levels {
		items = append(items, selectItem(lvl, levelNames[lvl], lvl))
	}
	return &LevelScreen{
		picker: picker{
			owner:   screen.NewOwner(),
			account: activity.NewAccount(deps.API),
			menu:    components.NewMenu(items),
		},
		language: language,
	}
}

func (s *LevelScreen) Title() string { return "Choose a Level" }
func (s *LevelScreen) Init() tea.Cmd { return nil }

func (s *LevelScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return s, s.handle(msg, s.account.SelectLevel)
}

func (s *LevelScreen) viewModel() viewModel {
	vm := viewModel{
		heading: "How well do you know " + s.language + "?",
		prompt:  "Pick your level, or take a short placement test.",
		err:     s.err,
	}
	if s.busy {
		vm.status = "Saving level " + s.pending + "..."
	}
	return vm
}

func (s *LevelScreen) View(width, height int) string {
	return render(s.viewModel(), s.menu, width, height)
}
