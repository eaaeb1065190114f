package progress

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lingua/internal/api"
	"github.com/abhisek/lingua/internal/screens"
	"github.com/abhisek/lingua/internal/session"
	"github.com/abhisek/lingua/internal/testutil"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func enter() tea.KeyPressMsg { return tea.KeyPressMsg{Code: tea.KeyEnter} }

func summary(canAdvance bool) *api.ProgressSummary {
	return &api.ProgressSummary{
		CurrentLevel:       testutil.Ptr("B1"),
		NextLevel:          testutil.Ptr("B2"),
		CanAdvance:         canAdvance,
		AdvancementReason:  testutil.Ptr("Complete more grammar practice"),
		OverallProgress:    120,
		TimeAtCurrentLevel: 12,
		TotalXP:            340,
		Modules: []api.ModuleProgress{
			{Module: "vocabulary", Score: 91.4, TotalAttempts: 14, MeetsThreshold: true, MeetsMinimumAttempts: true},
			{Module: "grammar", Score: 60, TotalAttempts: 4},
			{Module: "writing", Score: 70.2, TotalAttempts: 12, MeetsMinimumAttempts: true},
		},
		ConversationEngagement: &api.ConversationEngagement{TotalMessages: 8},
	}
}

func loaded(t *testing.T, m *testutil.MockAPI, canAdvance bool) *ProgressScreen {
	t.Helper()
	m.On("ProgressSummary").Return(summary(canAdvance), nil)
	m.On("LevelHistory").Return([]api.LevelHistoryItem{}, nil)
	s := New(screens.Deps{API: m})
	s.Update(s.Init()())
	require.True(t, s.loaded)
	return s
}

func TestProgressScreen_Dashboard(t *testing.T) {
	s := loaded(t, new(testutil.MockAPI), false)
	vm := s.viewModel()

	assert.Equal(t, "B1", vm.level)
	assert.Equal(t, "12 days at this level · 340 XP", vm.meta)
	assert.Equal(t, 1.0, vm.overall)
	assert.Equal(t, "Complete more grammar practice", vm.advance)
	assert.False(t, vm.ready)

	require.Len(t, vm.modules, 3)
	assert.Equal(t, "✓ Ready", vm.modules[0].status)
	assert.Equal(t, "14 attempts · Accuracy: 91%", vm.modules[0].stat)
	assert.Equal(t, "Need 6 more attempts", vm.modules[1].status)
	assert.Equal(t, "Need 15% more", vm.modules[2].status)
	assert.Equal(t, "12 attempts · Score: 70%", vm.modules[2].stat)

	require.NotNil(t, vm.engagement)
	assert.Equal(t, "8/20", vm.engagement.attempts)
	assert.Equal(t, "Need 12 more messages", vm.engagement.status)

	assert.Equal(t, "No completed levels yet. Keep practicing to advance!", vm.noHistory)
}

func TestProgressScreen_AdvanceNeedsEligibility(t *testing.T) {
	s := loaded(t, new(testutil.MockAPI), false)
	s.Update(keyPress('a'))
	assert.Equal(t, browsing, s.mode)
}

func TestProgressScreen_AdvanceCelebratesAndUpdatesUser(t *testing.T) {
	m := new(testutil.MockAPI)
	s := loaded(t, m, true)
	m.On("AdvanceLevel").Return(&api.AdvancementResult{
		OldLevel:           testutil.Ptr("B1"),
		NewLevel:           "B2",
		ModuleScores:       map[string]any{"vocabulary": 91.4, "writing": nil},
		XPEarned:           150,
		CelebrationMessage: testutil.Ptr("¡Enhorabuena!"),
	}, nil)
	m.On("Me").Return(&api.User{Username: "ana", Level: testutil.Ptr("B2")}, nil)

	s.Update(keyPress('a'))
	require.Equal(t, confirming, s.mode)
	assert.Contains(t, s.viewModel().confirm, "Advance to B2?")
	assert.True(t, s.CapturingInput())

	_, cmd := s.Update(keyPress('y'))
	require.NotNil(t, cmd)
	_, cmd = s.Update(cmd())
	require.NotNil(t, cmd)
	updated, ok := cmd().(session.UserUpdatedMsg)
	require.True(t, ok)
	assert.Equal(t, "B2", *updated.User.Level)

	c := s.viewModel().celebration
	require.NotNil(t, c)
	assert.Equal(t, "B1 → B2", c.transition)
	assert.Equal(t, []string{"Vocabulary: 91%", "Writing: N/A"}, c.scores)
	assert.Equal(t, "+150 XP", c.xp)
	assert.Equal(t, "¡Enhorabuena!", c.message)

	_, cmd = s.Update(enter())
	assert.Equal(t, browsing, s.mode)
	assert.NotNil(t, cmd)
}

func TestProgressScreen_AdvanceRejected(t *testing.T) {
	m := new(testutil.MockAPI)
	s := loaded(t, m, true)
	m.On("AdvanceLevel").Return(nil, &api.RejectedError{Status: 400, Detail: "Not eligible yet"})

	s.Update(keyPress('a'))
	_, cmd := s.Update(keyPress('y'))
	s.Update(cmd())

	assert.Equal(t, browsing, s.mode)
	assert.Equal(t, "Not eligible yet", s.viewModel().err)
}

func TestProgressScreen_CheatCode(t *testing.T) {
	m := new(testutil.MockAPI)
	s := loaded(t, m, false)
	m.On("ApplyCheatCode", "ready").Return(&api.CheatCodeResult{Message: "All modules maxed"}, nil)

	s.Update(keyPress('c'))
	require.Equal(t, enteringCode, s.mode)
	for _, r := range "ready" {
		s.Update(keyPress(r))
	}
	_, cmd := s.Update(enter())
	require.NotNil(t, cmd)
	_, reload := s.Update(cmd())

	assert.Equal(t, browsing, s.mode)
	assert.Equal(t, "All modules maxed", s.viewModel().notice)
	assert.NotNil(t, reload)
}

func TestProgressScreen_EscClosesCodePrompt(t *testing.T) {
	s := loaded(t, new(testutil.MockAPI), false)
	s.Update(keyPress('c'))
	s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Equal(t, browsing, s.mode)
	assert.False(t, s.CapturingInput())
}

func TestProgressScreen_History(t *testing.T) {
	m := new(testutil.MockAPI)
	m.On("ProgressSummary").Return(summary(false), nil)
	m.On("LevelHistory").Return([]api.LevelHistoryItem{{
		Level:         "A2",
		StartedAt:     "2026-01-05T09:30:00",
		CompletedAt:   "2026-02-14T18:00:00Z",
		DaysAtLevel:   40,
		WeightedScore: testutil.Ptr(88.6),
	}}, nil)

	s := New(screens.Deps{API: m})
	s.Update(s.Init()())

	vm := s.viewModel()
	assert.Empty(t, vm.noHistory)
	require.Len(t, vm.history, 1)
	assert.Equal(t, "2026-01-05 - 2026-02-14", vm.history[0].dates)
	assert.Equal(t, "40 days", vm.history[0].days)
	assert.Equal(t, "Weighted score: 89%", vm.history[0].score)
}
