// Package grammar is the grammar drill screen.
package grammar

import (
	"context"
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

type questionMsg struct {
	owner    screen.Owner
	question *api.GrammarQuestion
	err      error
}

func (m questionMsg) Failure() error { return m.err }

// recordedMsg only carries an error when the session is gone.
type recordedMsg struct {
	err error
}

func (m recordedMsg) Failure() error { return m.err }

// GrammarScreen serves one question at a time and records each attempt.
type GrammarScreen struct {
	owner screen.Owner
	drill *activity.Grammar

	question *api.GrammarQuestion
	choices  components.Choices
	outcome  *activity.Outcome
	answered int
	correct  int

	loading bool
	err     string
}

var _ screen.Screen = (*GrammarScreen)(nil)
var _ screen.KeyHintProvider = (*GrammarScreen)(nil)

// New creates the grammar screen.
func New(deps screens.Deps) *GrammarScreen {
	return &GrammarScreen{
		owner: screen.NewOwner(),
		drill: activity.NewGrammar(deps.API, deps.Logger),
	}
}

func (s *GrammarScreen) Title() string { return "Grammar" }

func (s *GrammarScreen) Init() tea.Cmd { return s.next() }

func (s *GrammarScreen) KeyHints() []layout.KeyHint {
	if s.outcome != nil || s.err != "" {
		return []layout.KeyHint{{Key: "Enter", Description: "Next question"}, {Key: "Esc", Description: "Back"}}
	}
	return []layout.KeyHint{{Key: "↑↓", Description: "Move"}, {Key: "Enter", Description: "Check"}, {Key: "Esc", Description: "Back"}}
}

func (s *GrammarScreen) next() tea.Cmd {
	s.loading = true
	s.err = ""
	owner, drill := s.owner, s.drill
	return func() tea.Msg {
		q, err := drill.Next(context.Background())
		return questionMsg{owner: owner, question: q, err: err}
	}
}

func (s *GrammarScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionMsg:
		if msg.owner != s.owner {
			return s, nil
		}
		s.loading = false
		if msg.err != nil {
			s.err = api.Describe(msg.err)
			return s, nil
		}
		s.question = msg.question
		s.choices = components.NewChoices(msg.question.Options)
		s.outcome = nil
		return s, nil

	case tea.KeyPressMsg:
		if s.loading {
			return s, nil
		}
		if s.outcome != nil || s.question == nil {
			if msg.String() == "enter" || msg.String() == "n" {
				return s, s.next()
			}
			return s, nil
		}
		var chosen int
		s.choices, chosen = s.choices.Update(msg)
		if chosen >= 0 {
			return s, s.check(chosen)
		}
	}
	return s, nil
}

func (s *GrammarScreen) check(selected int) tea.Cmd {
	o, err := s.drill.Check(s.question, selected)
	if err != nil {
		return nil
	}
	s.outcome = &o
	s.choices.Reveal(o.Selected, o.Correct)
	s.answered++
	if o.IsCorrect() {
		s.correct++
	}

	drill, q := s.drill, s.question
	return func() tea.Msg {
		return recordedMsg{err: drill.Record(context.Background(), q, o)}
	}
}

type viewModel struct {
	question    string
	feedback    string
	correct     bool
	explanation string
	score       string
	status      string
	err         string
}

func (s *GrammarScreen) viewModel() viewModel {
	vm := viewModel{err: s.err}
	if s.loading {
		vm.status = "Loading question..."
	}
	if s.answered > 0 {
		vm.score = components.Score(s.correct, s.answered)
	}
	if s.question == nil {
		return vm
	}
	vm.question = s.question.QuestionText
	if o := s.outcome; o != nil {
		vm.correct = o.IsCorrect()
		vm.feedback = "Correct!"
		if !vm.correct {
			vm.feedback = "Incorrect."
		}
		if s.question.Explanation != nil {
			vm.explanation = *s.question.Explanation
		}
	}
	return vm
}

func (s *GrammarScreen) View(width, height int) string {
	vm := s.viewModel()
	cw := layout.ContentWidth(width)

	var lines []string
	if vm.score != "" {
		lines = append(lines, theme.Hint.Render(vm.score), "")
	}
	if vm.question != "" {
		lines = append(lines, theme.Subtitle.Width(cw-4).Render(vm.question), "", s.choices.View())
	}
	if vm.feedback != "" {
		style := theme.Incorrect
		if vm.correct {
			style = theme.Correct
		}
		lines = append(lines, style.Render(vm.feedback))
		if vm.explanation != "" {
			lines = append(lines, theme.Body.Width(cw-4).Render(vm.explanation))
		}
	}
	if vm.status != "" {
		lines = append(lines, theme.Hint.Render(vm.status))
	}
	if vm.err != "" {
		lines = append(lines, theme.ErrorText.Render(vm.err))
	}

	card := theme.Card.Width(cw).Render(strings.Join(lines, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
