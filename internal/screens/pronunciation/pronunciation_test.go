package pronunciation

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lingua/internal/api"
	"github.com/abhisek/lingua/internal/audio"
	"github.com/abhisek/lingua/internal/screens"
	"github.com/abhisek/lingua/internal/testutil"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

var clip = api.Audio{Filename: "clip.wav", ContentType: "audio/wav", Data: []byte("RIFF")}

func ready(t *testing.T, m *testutil.MockAPI, rec *testutil.MockRecorder) *PronunciationScreen {
	t.Helper()
	m.On("NextPhrase").Return(&api.TargetPhrase{TargetPhrase: "Buenos días"}, nil)
	s := New(screens.Deps{API: m, Recorder: rec})
	s.Update(s.Init()())
	require.Equal(t, "Buenos días", s.viewModel().phrase)
	return s
}

func TestPronunciationScreen_RecordAndScore(t *testing.T) {
	m := new(testutil.MockAPI)
	rec := new(testutil.MockRecorder)
	rec.On("Start").Return(nil)
	rec.On("Stop").Return(clip, nil)
	m.On("EvaluatePronunciation", "Buenos días", clip).Return(&api.PronunciationResult{
		Score:      82,
		Transcript: "buenos días",
		Feedback:   "Clear and natural.",
		WordLevelFeedback: []api.WordIssue{
			{Word: "días", Issue: "stress", Tip: "Stress the i."},
		},
	}, nil)

	s := ready(t, m, rec)

	_, cmd := s.Update(keyPress('r'))
	assert.Nil(t, cmd)
	assert.Equal(t, recording, s.stage)

	_, cmd = s.Update(keyPress('r'))
	require.NotNil(t, cmd)
	s.Update(cmd())

	vm := s.viewModel()
	assert.True(t, vm.good)
	assert.Equal(t, "Score: 82/100", vm.score)
	assert.Equal(t, "buenos días", vm.transcript)
	require.Len(t, vm.issues, 1)
	assert.Equal(t, "Stress the i.", vm.issues[0].tip)
	assert.Empty(t, vm.noIssues)
	rec.AssertExpectations(t)
}

func TestPronunciationScreen_ScoreOf70IsNotGood(t *testing.T) {
	s := New(screens.Deps{API: new(testutil.MockAPI)})
	s.Update(resultMsg{owner: s.owner, result: &api.PronunciationResult{Score: 70}})

	vm := s.viewModel()
	assert.False(t, vm.good)
	assert.Equal(t, "No specific word errors detected. Work on overall flow!", vm.noIssues)
}

func TestPronunciationScreen_PermissionDenied(t *testing.T) {
	m := new(testutil.MockAPI)
	rec := new(testutil.MockRecorder)
	rec.On("Start").Return(audio.ErrPermissionDenied)

	s := ready(t, m, rec)
	s.Update(keyPress('r'))

	assert.Equal(t, idle, s.stage)
	assert.Contains(t, s.viewModel().err, "Microphone access denied")
	m.AssertNotCalled(t, "EvaluatePronunciation")
}

func TestPronunciationScreen_RecordNeedsPhrase(t *testing.T) {
	s := New(screens.Deps{API: new(testutil.MockAPI), Recorder: new(testutil.MockRecorder)})
	s.stage = idle
	_, cmd := s.Update(keyPress('r'))
	assert.Nil(t, cmd)
	assert.Equal(t, idle, s.stage)
}
