// Package placement runs the placement test and shows its results.
package placement

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingua/internal/activity"
	"github.com/abhisek/lingua/internal/api"
	"github.com/abhisek/lingua/internal/router"
	"github.com/abhisek/lingua/internal/screen"
	"github.com/abhisek/lingua/internal/screens"
	"github.com/abhisek/lingua/internal/session"
	"github.com/abhisek/lingua/internal/ui/components"
	"github.com/abhisek/lingua/internal/ui/layout"
	"github.com/abhisek/lingua/internal/ui/theme"
)

// stepMsg carries the outcome of a placement operation.
type stepMsg struct {
	owner screen.Owner
	step  activity.PlacementStep
	err   error
}

func (m stepMsg) Failure() error { return m.err }

type operation func(ctx context.Context) (activity.PlacementStep, error)

// PlacementScreen walks the learner through the test.
type PlacementScreen struct {
	owner    screen.Owner
	test     *activity.Placement
	language string

	step    activity.PlacementStep
	choices components.Choices

	busy  bool
	err   string
	retry operation
}

var _ screen.Screen = (*PlacementScreen)(nil)
var _ screen.KeyHintProvider = (*PlacementScreen)(nil)

// New creates the screen for a test in language.
func New(deps screens.Deps, language string) *PlacementScreen {
	return &PlacementScreen{
		owner:    screen.NewOwner(),
		test:     activity.NewPlacement(deps.API),
		language: language,
	}
}

func (s *PlacementScreen) Title() string { return "Placement Test" }

func (s *PlacementScreen) Init() tea.Cmd {
	language := s.language
	return s.run(func(ctx context.Context) (activity.PlacementStep, error) {
		return s.test.Start(ctx, language)
	})
}

func (s *PlacementScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.step.Done():
		return []layout.KeyHint{{Key: "Enter", Description: "Continue"}}
	case s.err != "":
		return []layout.KeyHint{{Key: "r", Description: "Retry"}, {Key: "Esc", Description: "Back"}}
	default:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Move"},
			{Key: "Enter", Description: "Answer"},
			{Key: "Esc", Description: "Back"},
		}
	}
}

// run starts op unless another operation is in flight. The controller is
// only touched by one command at a time.
func (s *PlacementScreen) run(op operation) tea.Cmd {
	if s.busy {
		return nil
	}
	s.busy = true
	s.err = ""
	s.retry = op
	owner := s.owner
	return func() tea.Msg {
		step, err := op(context.Background())
		return stepMsg{owner: owner, step: step, err: err}
	}
}

func (s *PlacementScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case stepMsg:
		if msg.owner != s.owner {
			return s, nil
		}
		s.busy = false
		if msg.err != nil {
			s.err = api.Describe(msg.err)
			return s, nil
		}
		s.retry = nil
		s.step = msg.step
		if q := msg.step.Question; q != nil {
			s.choices = components.NewChoices(q.Options)
		}
		if res := msg.step.Result; res != nil {
			// The server has already stored the level.
			level := res.DeterminedLevel
			return s, func() tea.Msg { return session.PlacementCompletedMsg{Level: level} }
		}
		return s, nil

	case tea.KeyPressMsg:
		if s.busy {
			return s, nil
		}
		if s.step.Done() {
			if msg.String() == "enter" {
				return s, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return s, nil
		}
		if s.err != "" && msg.String() == "r" {
			return s, s.retryFailed()
		}
		if s.step.Question == nil {
			return s, nil
		}
		var chosen int
		s.choices, chosen = s.choices.Update(msg)
		if chosen >= 0 {
			return s, s.run(func(ctx context.Context) (activity.PlacementStep, error) {
				return s.test.Answer(ctx, chosen)
			})
		}
	}
	return s, nil
}

// retryFailed repeats the operation that failed. Once every question is
// answered only the results are left to fetch.
func (s *PlacementScreen) retryFailed() tea.Cmd {
	if s.test.State() == activity.Completed {
		return s.run(s.test.Results)
	}
	if s.retry == nil {
		return nil
	}
	return s.run(s.retry)
}

type sectionLine struct {
	name    string
	percent float64
	detail  string
}

type viewModel struct {
	status   string
	err      string
	progress string
	fraction float64
	passage  string
	question string

	done            bool
	level           string
	sections        []sectionLine
	recommendations []string
}

func (s *PlacementScreen) viewModel() viewModel {
	vm := viewModel{err: s.err}
	if s.busy {
		vm.status = "Loading..."
		if s.step.Question == nil && !s.step.Done() {
			vm.status = "Preparing your " + s.language + " placement test..."
		}
	}

	if res := s.step.Result; res != nil {
		vm.done = true
		vm.level = res.DeterminedLevel
		for _, sc := range res.SectionScores {
			vm.sections = append(vm.sections, sectionLine{
				name:    capitalize(sc.Section),
				percent: sc.ScorePercentage / 100,
				detail:  fmt.Sprintf("%d/%d correct", sc.CorrectAnswers, sc.TotalQuestions),
			})
		}
		vm.recommendations = res.Recommendations
		return vm
	}

	if q := s.step.Question; q != nil {
		vm.progress = fmt.Sprintf("Question %d of %d", s.step.Current, s.step.Total)
		vm.fraction = components.Fraction(float64(s.step.Current), float64(s.step.Total))
		if q.Passage != nil {
			vm.passage = *q.Passage
		}
		vm.question = q.QuestionText
	}
	return vm
}

func (s *PlacementScreen) View(width, height int) string {
	vm := s.viewModel()
	cw := layout.ContentWidth(width)

	var lines []string
	if vm.done {
		lines = append(lines,
			theme.Title.Render("Your level: "+vm.level),
			"",
		)
		for _, sec := range vm.sections {
			bar := components.NewProgressBar(sec.name, sec.percent, true, cw-20)
			lines = append(lines, bar.View()+"  "+theme.Hint.Render(sec.detail))
		}
		if len(vm.recommendations) > 0 {
			lines = append(lines, "", theme.Subtitle.Render("Recommendations"))
			for _, r := range vm.recommendations {
				lines = append(lines, theme.Body.Render("• "+r))
			}
		}
		lines = append(lines, "", components.Button("Continue", true))
	} else {
		if vm.progress != "" {
			lines = append(lines,
				theme.Hint.Render(vm.progress),
				components.NewProgressBar("", vm.fraction, false, cw-4).View(),
				"",
			)
		}
		if vm.passage != "" {
			lines = append(lines, theme.Body.Width(cw-4).Italic(true).Render(vm.passage), "")
		}
		if vm.question != "" {
			lines = append(lines, theme.Subtitle.Width(cw-4).Render(vm.question), "", s.choices.View())
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

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
