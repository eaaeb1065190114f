// Package writing is the free-writing practice screen.
package writing

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingua/internal/activity"
	"github.com/abhisek/lingua/internal/api"
	"github.com/abhisek/lingua/internal/screen"
	"github.com/abhisek/lingua/internal/screens"
	"github.com/abhisek/lingua/internal/ui/components"
	"github.com/abhisek/lingua/internal/ui/layout"
	"github.com/abhisek/lingua/internal/ui/theme"
)

type feedbackMsg struct {
	owner    screen.Owner
	feedback *api.WritingFeedback
	err      error
}

func (m feedbackMsg) Failure() error { return m.err }

// WritingScreen lets the learner write a passage and get it reviewed.
type WritingScreen struct {
	owner  screen.Owner
	review *activity.Writing
	area   components.TextArea

	feedback *api.WritingFeedback
	busy     bool
	err      string
}

var _ screen.Screen = (*WritingScreen)(nil)
var _ screen.KeyHintProvider = (*WritingScreen)(nil)

// New creates the writing screen.
func New(deps screens.Deps) *WritingScreen {
	return &WritingScreen{
		owner:  screen.NewOwner(),
		review: activity.NewWriting(deps.API),
		area:   components.NewTextArea("Write a few sentences in your target language...", 60, 6),
	}
}

func (s *WritingScreen) Title() string { return "Writing" }

func (s *WritingScreen) Init() tea.Cmd { return s.area.Focus() }

func (s *WritingScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Ctrl+S", Description: "Get feedback"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *WritingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case feedbackMsg:
		if msg.owner != s.owner {
			return s, nil
		}
		s.busy = false
		if msg.err != nil {
			s.err = api.Describe(msg.err)
			return s, nil
		}
		s.feedback = msg.feedback
		return s, nil

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+s" {
			return s, s.submit()
		}
	}

	var cmd tea.Cmd
	s.area, cmd = s.area.Update(msg)
	return s, cmd
}

func (s *WritingScreen) submit() tea.Cmd {
	if s.busy {
		return nil
	}
	text := s.area.Value()
	if strings.TrimSpace(text) == "" {
		s.err = "Please write something first."
		return nil
	}
	s.busy = true
	s.err = ""
	owner, review := s.owner, s.review
	return func() tea.Msg {
		fb, err := review.Submit(context.Background(), text)
		return feedbackMsg{owner: owner, feedback: fb, err: err}
	}
}

type viewModel struct {
	corrected   string
	comment     string
	explanation string
	score       string
	status      string
	err         string
}

func (s *WritingScreen) viewModel() viewModel {
	vm := viewModel{err: s.err}
	if s.busy {
		vm.status = "Reviewing your writing..."
	}
	if fb := s.feedback; fb != nil {
		vm.corrected = fb.CorrectedText
		vm.comment = fb.OverallComment
		if fb.InlineExplanation != nil {
			vm.explanation = *fb.InlineExplanation
		}
		if fb.Score != nil && *fb.Score > 0 {
			vm.score = fmt.Sprintf("Score: %g%%", *fb.Score)
		}
	}
	return vm
}

func (s *WritingScreen) View(width, height int) string {
	vm := s.viewModel()
	cw := layout.ContentWidth(width)

	lines := []string{s.area.View()}
	if vm.status != "" {
		lines = append(lines, theme.Hint.Render(vm.status))
	}
	if vm.err != "" {
		lines = append(lines, theme.ErrorText.Render(vm.err))
	}
	if vm.corrected != "" || vm.comment != "" {
		lines = append(lines,
			"",
			theme.Subtitle.Render("Corrected text"),
			theme.Correct.Width(cw-4).Render(vm.corrected),
			"",
			theme.Subtitle.Render("Feedback"),
			theme.Body.Width(cw-4).Render(vm.comment),
		)
		if vm.explanation != "" {
			lines = append(lines, theme.Hint.Width(cw-4).Render(vm.explanation))
		}
		if vm.score != "" {
			lines = append(lines, "", theme.Notice.Render(vm.score))
		}
	}

	card := theme.Card.Width(cw).Render(strings.Join(lines, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
