// Package pronunciation is the speaking practice screen.
package pronunciation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingua/internal/activity"
	"github.com/abhisek/lingua/internal/api"
	"github.com/abhisek/lingua/internal/audio"
	"github.com/abhisek/lingua/internal/screen"
	"github.com/abhisek/lingua/internal/screens"
	"github.com/abhisek/lingua/internal/ui/layout"
	"github.com/abhisek/lingua/internal/ui/theme"
)

type phraseMsg struct {
	owner  screen.Owner
	phrase string
	err    error
}

func (m phraseMsg) Failure() error { return m.err }

type resultMsg struct {
	owner  screen.Owner
	result *api.PronunciationResult
	err    error
}

func (m resultMsg) Failure() error { return m.err }

type stage int

const (
	idle stage = iota
	loading
	recording
	evaluating
)

// PronunciationScreen shows a phrase, records the learner and shows the
// score.
type PronunciationScreen struct {
	owner    screen.Owner
	practice *activity.Pronunciation

	stage  stage
	phrase string
	result *api.PronunciationResult
	err    string
}

var _ screen.Screen = (*PronunciationScreen)(nil)
var _ screen.KeyHintProvider = (*PronunciationScreen)(nil)

// New creates the pronunciation screen.
func New(deps screens.Deps) *PronunciationScreen {
	return &PronunciationScreen{
		owner:    screen.NewOwner(),
		practice: activity.NewPronunciation(deps.API, deps.Recorder),
	}
}

func (s *PronunciationScreen) Title() string { return "Pronunciation" }

func (s *PronunciationScreen) Init() tea.Cmd { return s.nextPhrase() }

func (s *PronunciationScreen) KeyHints() []layout.KeyHint {
	if s.stage == recording {
		return []layout.KeyHint{{Key: "r", Description: "Stop and score"}}
	}
	return []layout.KeyHint{
		{Key: "r", Description: "Record"},
		{Key: "n", Description: "New phrase"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *PronunciationScreen) nextPhrase() tea.Cmd {
	s.stage = loading
	s.err = ""
	s.result = nil
	owner, practice := s.owner, s.practice
	return func() tea.Msg {
		phrase, err := practice.Phrase(context.Background())
		return phraseMsg{owner: owner, phrase: phrase, err: err}
	}
}

func (s *PronunciationScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case phraseMsg:
		if msg.owner != s.owner {
			return s, nil
		}
		s.stage = idle
		if msg.err != nil {
			s.err = api.Describe(msg.err)
			return s, nil
		}
		s.phrase = msg.phrase
		return s, nil

	case resultMsg:
		if msg.owner != s.owner {
			return s, nil
		}
		s.stage = idle
		if msg.err != nil {
			s.err = describe(msg.err)
			return s, nil
		}
		s.result = msg.result
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "r", "space":
			return s, s.toggleRecording()
		case "n":
			if s.stage == idle {
				return s, s.nextPhrase()
			}
		}
	}
	return s, nil
}

func (s *PronunciationScreen) toggleRecording() tea.Cmd {
	switch s.stage {
	case idle:
		if s.phrase == "" {
			return nil
		}
		s.err = ""
		s.result = nil
		if err := s.practice.StartRecording(context.Background()); err != nil {
			s.err = describe(err)
			return nil
		}
		s.stage = recording
		return nil

	case recording:
		s.stage = evaluating
		owner, practice := s.owner, s.practice
		return func() tea.Msg {
			if err := practice.StopRecording(); err != nil {
				return resultMsg{owner: owner, err: err}
			}
			res, err := practice.Evaluate(context.Background())
			return resultMsg{owner: owner, result: res, err: err}
		}
	}
	return nil
}

func describe(err error) string {
	if errors.Is(err, audio.ErrPermissionDenied) {
		return "Microphone access denied. Check your recording device and permissions."
	}
	return api.Describe(err)
}

type issue struct {
	word  string
	issue string
	tip   string
}

type viewModel struct {
	phrase     string
	status     string
	err        string
	scored     bool
	good       bool
	score      string
	transcript string
	feedback   string
	issues     []issue
	noIssues   string
}

func (s *PronunciationScreen) viewModel() viewModel {
	vm := viewModel{phrase: s.phrase, err: s.err}
	switch s.stage {
	case loading:
		vm.status = "Loading phrase..."
	case recording:
		vm.status = "● Recording... press r to stop"
	case evaluating:
		vm.status = "Scoring your pronunciation..."
	}

	if r := s.result; r != nil {
		vm.scored = true
		vm.good = r.Good()
		vm.score = fmt.Sprintf("Score: %g/100", r.Score)
		vm.transcript = r.Transcript
		vm.feedback = r.Feedback
		for _, w := range r.WordLevelFeedback {
			vm.issues = append(vm.issues, issue{word: w.Word, issue: w.Issue, tip: w.Tip})
		}
		if len(vm.issues) == 0 && r.Score < 100 {
			vm.noIssues = "No specific word errors detected. Work on overall flow!"
		}
	}
	return vm
}

func (s *PronunciationScreen) View(width, height int) string {
	vm := s.viewModel()
	cw := layout.ContentWidth(width)

	var lines []string
	if vm.phrase != "" {
		lines = append(lines,
			theme.Hint.Render("Say this phrase:"),
			theme.Title.Width(cw-4).Render("“"+vm.phrase+"”"),
			"",
		)
	}
	if vm.status != "" {
		lines = append(lines, theme.Notice.Render(vm.status))
	}
	if vm.err != "" {
		lines = append(lines, theme.ErrorText.Render(vm.err))
	}
	if vm.scored {
		style := theme.Incorrect
		if vm.good {
			style = theme.Correct
		}
		lines = append(lines,
			style.Render(vm.score),
			theme.Body.Width(cw-4).Render("Heard: \""+vm.transcript+"\""),
			theme.Body.Width(cw-4).Render(vm.feedback),
		)
		if len(vm.issues) > 0 {
			lines = append(lines, "", theme.Subtitle.Render("Specific issues"))
			for _, is := range vm.issues {
				lines = append(lines,
					theme.Notice.Render(fmt.Sprintf("%q: %s", is.word, is.issue)),
					theme.Hint.Width(cw-4).Render("  Tip: "+is.tip),
				)
			}
		}
		if vm.noIssues != "" {
			lines = append(lines, theme.Hint.Render(vm.noIssues))
		}
	}

	card := theme.Card.Width(cw).Render(strings.Join(lines, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
