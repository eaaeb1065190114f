// Package welcome is the splash shown while the saved session is restored.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingua/internal/screen"
	"github.com/abhisek/lingua/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 300 * time.Millisecond
	phase2End    = 800 * time.Millisecond
	totalDur     = 1500 * time.Millisecond
)

const mascotArt = `  ╭─────────────╮
  │  ¡Hola!     │
  │     Bonjour │
  ╰──────╮ ╭────╯
         ╰─╯`

var sparkleFrames = []string{"★", "✦"}

type tickMsg time.Time

// FinishedMsg is sent once, when the animation has played or the learner
// skipped it with a key press.
type FinishedMsg struct{}

// WelcomeScreen shows a short splash animation.
type WelcomeScreen struct {
	status    string
	elapsed   time.Duration
	tickCount int
	finished  bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen. status is shown under the banner.
func New(status string) *WelcomeScreen {
	return &WelcomeScreen{status: status}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		if w.elapsed >= totalDur {
			return w, w.finish()
		}
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.finish()
	}

	return w, nil
}

func (w *WelcomeScreen) finish() tea.Cmd {
	if w.finished {
		return nil
	}
	w.finished = true
	return func() tea.Msg { return FinishedMsg{} }
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	rendered := lipgloss.NewStyle().Foreground(theme.Secondary).Render(mascotArt)

	if w.elapsed >= phase1End {
		sparkle := sparkleFrames[w.tickCount%len(sparkleFrames)]
		s1 := lipgloss.NewStyle().Foreground(theme.Accent).Render(sparkle)
		s2 := lipgloss.NewStyle().Foreground(theme.Primary).Render(sparkle)

		lines := strings.Split(rendered, "\n")
		if len(lines) > 1 {
			lines[0] = s1 + "  " + lines[0] + "  " + s2
		}
		if len(lines) > 3 {
			lines[3] = s2 + "  " + lines[3] + "  " + s1
		}
		rendered = strings.Join(lines, "\n")
	}
	sections = append(sections, rendered)

	if w.elapsed >= phase2End {
		sections = append(sections,
			"",
			RenderBanner(width),
			"",
			lipgloss.NewStyle().
				Foreground(theme.Text).
				Bold(true).
				Render("Practise a language, one conversation at a time."),
		)
	}

	if w.status != "" {
		sections = append(sections, "", lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render(w.status))
	}

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
