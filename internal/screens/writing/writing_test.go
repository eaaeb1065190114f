package writing

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lingua/internal/api"
	"github.com/abhisek/lingua/internal/screens"
	"github.com/abhisek/lingua/internal/testutil"
)

func ctrlS() tea.KeyPressMsg { return tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl} }

func TestWritingScreen_Submit(t *testing.T) {
	m := new(testutil.MockAPI)
	m.On("WritingFeedback", "Yo tengo hambre").Return(&api.WritingFeedback{
		CorrectedText:     "Yo tengo hambre.",
		OverallComment:    "Good job.",
		InlineExplanation: testutil.Ptr("Sentences end with a period."),
		Score:             testutil.Ptr(92.5),
	}, nil)

	s := New(screens.Deps{API: m})
	s.area.Model.SetValue("Yo tengo hambre")

	_, cmd := s.Update(ctrlS())
	require.NotNil(t, cmd)
	assert.Equal(t, "Reviewing your writing...", s.viewModel().status)

	s.Update(cmd())
	vm := s.viewModel()
	assert.Equal(t, "Yo tengo hambre.", vm.corrected)
	assert.Equal(t, "Good job.", vm.comment)
	assert.Equal(t, "Sentences end with a period.", vm.explanation)
	assert.Equal(t, "Score: 92.5%", vm.score)
}

func TestWritingScreen_EmptyRejectedLocally(t *testing.T) {
	m := new(testutil.MockAPI)
	s := New(screens.Deps{API: m})
	s.area.Model.SetValue("   ")

	_, cmd := s.Update(ctrlS())
	assert.Nil(t, cmd)
	assert.Equal(t, "Please write something first.", s.viewModel().err)
	m.AssertNotCalled(t, "WritingFeedback")
}

func TestWritingScreen_ErrorInline(t *testing.T) {
	m := new(testutil.MockAPI)
	m.On("WritingFeedback", "hola").Return(nil, &api.RejectedError{Status: 429, Detail: "Too many requests"})

	s := New(screens.Deps{API: m})
	s.area.Model.SetValue("hola")
	_, cmd := s.Update(ctrlS())
	s.Update(cmd())

	vm := s.viewModel()
	assert.Equal(t, "Too many requests", vm.err)
	assert.Empty(t, vm.corrected)
	assert.Empty(t, vm.score)
}
