package conversation

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lingua/internal/api"
	"github.com/abhisek/lingua/internal/screens"
	"github.com/abhisek/lingua/internal/testutil"
)

func typeText(s *ConversationScreen, text string) {
	for _, r := range text {
		s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func enter() tea.KeyPressMsg { return tea.KeyPressMsg{Code: tea.KeyEnter} }

func prefixes(vm viewModel) []string {
	out := make([]string, len(vm.lines))
	for i, l := range vm.lines {
		out[i] = l.prefix + l.text
	}
	return out
}

func started(t *testing.T, m *testutil.MockAPI) *ConversationScreen {
	t.Helper()
	m.On("StartConversation").Return(&api.ConversationStart{SessionID: "s1", OpeningMessage: "¡Hola!"}, nil)
	s := New(screens.Deps{API: m})
	s.input.Focus()
	s.Update(s.start()())
	require.True(t, s.started)
	return s
}

func TestConversationScreen_TurnWithCorrectionAndTip(t *testing.T) {
	m := new(testutil.MockAPI)
	s := started(t, m)
	m.On("SendMessage", api.ID("s1"), "yo es bien").Return(&api.ConversationReply{
		Reply:                "¡Qué bueno!",
		CorrectedUserMessage: testutil.Ptr("Yo estoy bien"),
		Tips:                 testutil.Ptr("Use estar for states."),
	}, nil)

	typeText(s, "yo es bien")
	_, cmd := s.Update(enter())
	require.NotNil(t, cmd)
	assert.Empty(t, s.input.Value())
	assert.Equal(t, "Tutor is typing...", s.viewModel().status)

	s.Update(cmd())
	assert.Equal(t, []string{
		"Tutor: ¡Hola!",
		"You: yo es bien",
		"Correction: Yo estoy bien",
		"Tutor: ¡Qué bueno!",
		"Tip: Use estar for states.",
	}, prefixes(s.viewModel()))
}

func TestConversationScreen_NullCorrectionHidden(t *testing.T) {
	m := new(testutil.MockAPI)
	s := started(t, m)
	m.On("SendMessage", api.ID("s1"), "Hola").Return(&api.ConversationReply{
		Reply:                "Hola, ¿qué tal?",
		CorrectedUserMessage: testutil.Ptr("null"),
		Tips:                 testutil.Ptr("null"),
	}, nil)

	typeText(s, "Hola")
	_, cmd := s.Update(enter())
	s.Update(cmd())
	assert.Equal(t, []string{"Tutor: ¡Hola!", "You: Hola", "Tutor: Hola, ¿qué tal?"}, prefixes(s.viewModel()))
}

func TestConversationScreen_EmptyInputNotSent(t *testing.T) {
	m := new(testutil.MockAPI)
	s := started(t, m)
	_, cmd := s.Update(enter())
	assert.Nil(t, cmd)
	m.AssertNotCalled(t, "SendMessage")
}

func TestConversationScreen_StartFailureRetries(t *testing.T) {
	m := new(testutil.MockAPI)
	m.On("StartConversation").Return(nil, &api.RejectedError{Status: 503, Detail: "Tutor unavailable"}).Once()
	m.On("StartConversation").Return(&api.ConversationStart{SessionID: "s2", OpeningMessage: "Bonjour"}, nil).Once()

	s := New(screens.Deps{API: m})
	s.Update(s.start()())
	assert.Equal(t, "Tutor unavailable", s.viewModel().err)

	_, cmd := s.Update(enter())
	require.NotNil(t, cmd)
	s.Update(cmd())
	assert.Equal(t, []string{"Tutor: Bonjour"}, prefixes(s.viewModel()))
}
