// Package home is the module hub: the menu of practice activities shown to
// a learner who has a language and a level.
package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lingua/internal/api"
	"github.com/abhisek/lingua/internal/screen"
	"github.com/abhisek/lingua/internal/screens"
	"github.com/abhisek/lingua/internal/session"
	"github.com/abhisek/lingua/internal/ui/components"
	"github.com/abhisek/lingua/internal/ui/layout"
)

// HomeScreen is the module hub.
type HomeScreen struct {
	menu  components.Menu
	stats stats
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

type stats struct {
	greeting  string
	level     string
	xp        int
	placement bool
}

func open(section screens.Section) func() tea.Cmd {
	return func() tea.Cmd {
		return func() tea.Msg { return screens.OpenMsg{Section: section} }
	}
}

// New creates the hub for user.
func New(user api.User) *HomeScreen {
	items := []components.MenuItem{
		{Label: "VOCABULARY", Description: "Flashcards", Action: open(screens.Vocabulary)},
		{Label: "GRAMMAR", Description: "Multiple choice drills", Action: open(screens.Grammar)},
		{Label: "WRITING", Description: "Get your text corrected", Action: open(screens.Writing)},
		{Label: "CONVERSATION", Description: "Chat with a tutor", Action: open(screens.Conversation)},
		{Label: "PRONUNCIATION", Description: "Record and get scored", Action: open(screens.Pronunciation)},
		{Label: "PROGRESS", Description: "Level and advancement", Action: open(screens.Progress)},
		{Label: "RETAKE PLACEMENT", Description: "Find your level again", Action: open(screens.Placement)},
		{Label: "SIGN OUT", Action: func() tea.Cmd {
			return func() tea.Msg { return session.SignedOutMsg{} }
		}},
	}

	st := stats{
		greeting:  "¡Hola, " + user.DisplayName() + "!",
		level:     "?",
		xp:        user.TotalXP,
		placement: user.PlacementTestCompleted,
	}
	if user.HasLevel() {
		st.level = *user.Level
	}
	if user.HasLanguage() {
		st.greeting += "  Ready for some " + *user.TargetLanguage + "?"
	}

	return &HomeScreen{
		menu:  components.NewMenu(items),
		stats: st,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "1-8", Description: "Jump"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add the header and footer back.
	compact := layout.IsCompactHeight(height+layout.HeaderHeight+layout.FooterHeight) ||
		layout.IsCompactWidth(width)
	cw := contentWidth(width)

	sections := []string{
		renderGreeting(h.stats.greeting, cw),
		renderStatsBar(h.stats, cw, compact),
	}
	if compact {
		sections = append(sections, renderMenuCompact(h.menu, cw))
	} else {
		sections = append(sections, renderMenu(h.menu, cw))
	}

	return renderFrame(strings.Join(sections, "\n\n"), width, height)
}
