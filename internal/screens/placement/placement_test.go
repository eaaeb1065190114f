package placement

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lingua/internal/api"
	"github.com/abhisek/lingua/internal/router"
	"github.com/abhisek/lingua/internal/screens"
	"github.com/abhisek/lingua/internal/session"
	"github.com/abhisek/lingua/internal/testutil"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func passage(n int) *api.QuestionEnvelope {
	return &api.QuestionEnvelope{
		Question: api.TestQuestion{
			QuestionNumber: n,
			QuestionText:   "Where does Marta live?",
			Options:        []string{"Madrid", "Sevilla"},
			Passage:        testutil.Ptr("Marta vive en Sevilla."),
		},
		CurrentQuestionNumber: n,
		HasNext:               true,
	}
}

var result = &api.PlacementResult{
	DeterminedLevel: "A2",
	SectionScores:   []api.SectionScore{{Section: "reading", ScorePercentage: 50, CorrectAnswers: 1, TotalQuestions: 2}},
	Recommendations: []string{"Practise the past tense"},
}

// settle feeds the screen the messages its command produces and returns
// the first message meant for someone else.
func settle(s *PlacementScreen, cmd tea.Cmd) tea.Msg {
	for cmd != nil {
		msg := cmd()
		if _, ok := msg.(stepMsg); !ok {
			return msg
		}
		_, cmd = s.Update(msg)
	}
	return nil
}

func TestPlacementScreen_FullRun(t *testing.T) {
	m := new(testutil.MockAPI)
	m.On("StartPlacement", "Spanish").Return(&api.PlacementStart{TestID: "42", TotalQuestions: 2}, nil)
	m.On("PlacementQuestion", api.ID("42")).Return(passage(1), false, nil).Once()
	m.On("PlacementQuestion", api.ID("42")).Return(passage(2), false, nil).Once()
	m.On("AnswerPlacement", api.ID("42"), api.PlacementAnswer{QuestionNumber: 1, SelectedOption: 1}).
		Return(&api.AnswerAck{HasNext: true}, nil)
	m.On("AnswerPlacement", api.ID("42"), api.PlacementAnswer{QuestionNumber: 2, SelectedOption: 0}).
		Return(&api.AnswerAck{HasNext: false}, nil)
	m.On("CompletePlacement", api.ID("42")).Return(result, nil).Once()

	s := New(screens.Deps{API: m}, "Spanish")
	settle(s, s.Init())

	vm := s.viewModel()
	assert.Equal(t, "Question 1 of 2", vm.progress)
	assert.Equal(t, "Marta vive en Sevilla.", vm.passage)
	assert.InDelta(t, 0.5, vm.fraction, 0.001)

	_, cmd := s.Update(keyPress('2'))
	settle(s, cmd)
	assert.Equal(t, "Question 2 of 2", s.viewModel().progress)

	_, cmd = s.Update(keyPress('1'))
	assert.Equal(t, session.PlacementCompletedMsg{Level: "A2"}, settle(s, cmd),
		"the level is applied as soon as results arrive")

	vm = s.viewModel()
	require.True(t, vm.done)
	assert.Equal(t, "A2", vm.level)
	require.Len(t, vm.sections, 1)
	assert.Equal(t, "Reading", vm.sections[0].name)
	assert.Equal(t, "1/2 correct", vm.sections[0].detail)
	assert.Equal(t, []string{"Practise the past tense"}, vm.recommendations)

	_, cmd = s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, router.PopScreenMsg{}, cmd())
	m.AssertExpectations(t)
}

func TestPlacementScreen_RetryFetchesResultsAfterCompleteFails(t *testing.T) {
	m := new(testutil.MockAPI)
	m.On("StartPlacement", "Spanish").Return(&api.PlacementStart{TestID: "9", TotalQuestions: 1}, nil)
	m.On("PlacementQuestion", api.ID("9")).Return(passage(1), false, nil).Once()
	m.On("AnswerPlacement", api.ID("9"), api.PlacementAnswer{QuestionNumber: 1, SelectedOption: 1}).
		Return(&api.AnswerAck{HasNext: false}, nil).Once()
	m.On("CompletePlacement", api.ID("9")).Return(nil, &api.UnreachableError{}).Once()
	m.On("CompletePlacement", api.ID("9")).Return(result, nil).Once()

	s := New(screens.Deps{API: m}, "Spanish")
	settle(s, s.Init())

	_, cmd := s.Update(keyPress('2'))
	assert.Nil(t, settle(s, cmd))
	assert.Equal(t, "Could not reach the server. Please try again.", s.viewModel().err)
	assert.False(t, s.viewModel().done)

	_, cmd = s.Update(keyPress('r'))
	assert.Equal(t, session.PlacementCompletedMsg{Level: "A2"}, settle(s, cmd))

	vm := s.viewModel()
	assert.True(t, vm.done)
	assert.Empty(t, vm.err)
	m.AssertNumberOfCalls(t, "AnswerPlacement", 1)
	m.AssertNumberOfCalls(t, "CompletePlacement", 2)
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Reading", capitalize("reading"))
	assert.Equal(t, "Écoute", capitalize("écoute"))
	assert.Equal(t, "", capitalize(""))
}

func TestPlacementScreen_RetryAfterFailure(t *testing.T) {
	m := new(testutil.MockAPI)
	m.On("StartPlacement", "French").Return(nil, &api.UnreachableError{}).Once()
	m.On("StartPlacement", "French").Return(&api.PlacementStart{TestID: "7", TotalQuestions: 1}, nil).Once()
	m.On("PlacementQuestion", api.ID("7")).Return(nil, true, nil)
	m.On("CompletePlacement", api.ID("7")).Return(result, nil)

	s := New(screens.Deps{API: m}, "French")
	settle(s, s.Init())
	assert.Equal(t, "Could not reach the server. Please try again.", s.viewModel().err)

	_, cmd := s.Update(keyPress('r'))
	settle(s, cmd)
	assert.True(t, s.viewModel().done)
	assert.Empty(t, s.viewModel().err)
}

func TestPlacementScreen_DropsForeignResults(t *testing.T) {
	s := New(screens.Deps{API: new(testutil.MockAPI)}, "Spanish")
	s.Update(stepMsg{owner: "someone-else", err: api.ErrUnauthorized})
	assert.Empty(t, s.viewModel().err)
}
