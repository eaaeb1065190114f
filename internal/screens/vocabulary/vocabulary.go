// Package vocabulary is the flashcard drill.
package vocabulary

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/lingua/internal/activity"
	"github.com/abhisek/lingua/internal/api"
	"github.com/abhisek/lingua/internal/screen"
	"github.com/abhisek/lingua/internal/screens"
	"github.com/abhisek/lingua/internal/ui/components"
	"github.com/abhisek/lingua/internal/ui/layout"
	"github.com/abhisek/lingua/internal/ui/theme"
)

type cardMsg struct {
	owner screen.Owner
	card  *api.Flashcard
	err   error
}

func (m cardMsg) Failure() error { return m.err }

type explanationMsg struct {
	owner screen.Owner
	word  string
	text  string
	err   error
}

func (m explanationMsg) Failure() error { return m.err }

// VocabularyScreen shows one flashcard at a time.
type VocabularyScreen struct {
	owner  screen.Owner
	cards  *activity.Flashcards
	logger *zap.Logger

	card        *api.Flashcard
	choices     components.Choices
	outcome     *activity.Outcome
	explanation string
	explainErr  string
	answered    int
	correct     int

	loading bool
	err     string
}

var _ screen.Screen = (*VocabularyScreen)(nil)
var _ screen.KeyHintProvider = (*VocabularyScreen)(nil)

// New creates the flashcard screen.
func New(deps screens.Deps) *VocabularyScreen {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VocabularyScreen{
		owner:  screen.NewOwner(),
		cards:  activity.NewFlashcards(deps.API, logger),
		logger: logger,
	}
}

func (s *VocabularyScreen) Title() string { return "Vocabulary" }

func (s *VocabularyScreen) Init() tea.Cmd {
	return s.load(s.cards.LoadFirst)
}

func (s *VocabularyScreen) KeyHints() []layout.KeyHint {
	if s.outcome != nil || s.err != "" {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next card"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "1-4", Description: "Choose"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *VocabularyScreen) load(fetch func(context.Context) (*api.Flashcard, error)) tea.Cmd {
	s.loading = true
	s.err = ""
	owner := s.owner
	return func() tea.Msg {
		card, err := fetch(context.Background())
		return cardMsg{owner: owner, card: card, err: err}
	}
}

// prefetch runs once the new card is on screen.
func (s *VocabularyScreen) prefetch() tea.Cmd {
	cards := s.cards
	return func() tea.Msg {
		cards.Prefetch(context.Background())
		return nil
	}
}

func (s *VocabularyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case cardMsg:
		if msg.owner != s.owner {
			return s, nil
		}
		s.loading = false
		if msg.err != nil {
			s.err = api.Describe(msg.err)
			return s, nil
		}
		s.card = msg.card
		s.choices = components.NewChoices(msg.card.Options)
		s.outcome = nil
		s.explanation = ""
		s.explainErr = ""
		return s, s.prefetch()

	case explanationMsg:
		if msg.owner != s.owner || s.card == nil || msg.word != s.card.Word {
			return s, nil
		}
		if msg.err != nil {
			s.logger.Warn("flashcard explanation", zap.String("word", msg.word), zap.Error(msg.err))
			s.explainErr = api.Describe(msg.err)
			return s, nil
		}
		s.explanation = msg.text
		return s, nil

	case tea.KeyPressMsg:
		if s.loading {
			return s, nil
		}
		if s.outcome != nil || s.card == nil {
			if msg.String() == "enter" || msg.String() == "n" {
				if s.card == nil {
					return s, s.load(s.cards.LoadFirst)
				}
				return s, s.load(s.cards.Advance)
			}
			return s, nil
		}
		var chosen int
		s.choices, chosen = s.choices.Update(msg)
		if chosen >= 0 {
			return s, s.answer(chosen)
		}
	}
	return s, nil
}

func (s *VocabularyScreen) answer(selected int) tea.Cmd {
	o, err := s.cards.Check(s.card, selected)
	if err != nil {
		return nil
	}
	s.outcome = &o
	s.choices.Reveal(o.Selected, o.Correct)
	s.answered++
	if o.IsCorrect() {
		s.correct++
	}

	owner, cards, card := s.owner, s.cards, s.card
	return func() tea.Msg {
		text, err := cards.Explain(context.Background(), card, o)
		return explanationMsg{owner: owner, word: card.Word, text: text, err: err}
	}
}

type viewModel struct {
	word        string
	example     string
	hasImage    bool
	feedback    string
	correct     bool
	explanation string
	explainErr  string
	score       string
	status      string
	err         string
}

func (s *VocabularyScreen) viewModel() viewModel {
	vm := viewModel{err: s.err}
	if s.loading {
		vm.status = "Loading card..."
	}
	if s.answered > 0 {
		vm.score = components.Score(s.correct, s.answered)
	}
	if s.card == nil {
		return vm
	}
	vm.word = s.card.Word
	if s.card.ExampleSentence != nil {
		vm.example = *s.card.ExampleSentence
	}
	vm.hasImage = s.card.HasImage()
	if o := s.outcome; o != nil {
		vm.correct = o.IsCorrect()
		if vm.correct {
			vm.feedback = "Correct!"
		} else if o.Correct >= 0 && o.Correct < len(s.card.Options) {
			vm.feedback = "Not quite. The answer is: " + s.card.Options[o.Correct]
		} else {
			vm.feedback = "Not quite."
		}
		vm.explanation = s.explanation
		vm.explainErr = s.explainErr
		if vm.explanation == "" && vm.explainErr == "" {
			vm.explanation = "Fetching explanation..."
		}
	}
	return vm
}

func (s *VocabularyScreen) View(width, height int) string {
	vm := s.viewModel()
	cw := layout.ContentWidth(width)

	var lines []string
	if vm.score != "" {
		lines = append(lines, theme.Hint.Render(vm.score), "")
	}
	if vm.word != "" {
		head := theme.Title.Render(vm.word)
		if vm.hasImage {
			head += "  " + theme.Notice.Render("[image available]")
		}
		lines = append(lines, head)
		if vm.example != "" {
			lines = append(lines, theme.Body.Width(cw-4).Italic(true).Render(vm.example))
		}
		lines = append(lines, "", s.choices.View())
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
		if vm.explainErr != "" {
			lines = append(lines, theme.ErrorText.Render(vm.explainErr))
		}
	}
	if vm.status != "" {
		lines = append(lines, theme.Hint.Render(vm.status))
	}
	if vm.err != "" {
		lines = append(lines, theme.ErrorText.Render(vm.err), theme.Hint.Render("Press enter to try again."))
	}

	card := theme.Card.Width(cw).Render(strings.Join(lines, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
