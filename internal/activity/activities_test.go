package activity

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lingua/internal/api"
	"github.com/abhisek/lingua/internal/audio"
	"github.com/abhisek/lingua/internal/testutil"
)

func TestConversation_Send(t *testing.T) {
	tests := []struct {
		name           string
		sent           string
		corrected      *string
		tips           *string
		wantCorrection string
		wantTips       string
	}{
		{name: "no feedback", sent: "Hola"},
		{name: "correction differs", sent: "Yo es bien", corrected: testutil.Ptr("Yo estoy bien"), wantCorrection: "Yo estoy bien"},
		{name: "correction equals sent", sent: "Hola", corrected: testutil.Ptr("Hola")},
		{name: "literal null", sent: "Hola", corrected: testutil.Ptr("null"), tips: testutil.Ptr("null")},
		{name: "tips only", sent: "Hola", tips: testutil.Ptr("Try a greeting"), wantTips: "Try a greeting"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(testutil.MockAPI)
			m.On("StartConversation").Return(&api.ConversationStart{SessionID: "s1", OpeningMessage: "¡Hola!"}, nil)
			m.On("SendMessage", api.ID("s1"), tt.sent).Return(&api.ConversationReply{
				Reply:                "Muy bien",
				CorrectedUserMessage: tt.corrected,
				Tips:                 tt.tips,
			}, nil)

			c := NewConversation(m)
			opening, err := c.Start(context.Background())
			require.NoError(t, err)
			assert.Equal(t, "¡Hola!", opening)

			turn, err := c.Send(context.Background(), "  "+tt.sent+" ")
			require.NoError(t, err)
			assert.Equal(t, "Muy bien", turn.Reply)
			assert.Equal(t, tt.wantCorrection, turn.Correction)
			assert.Equal(t, tt.wantTips, turn.Tips)
		})
	}
}

func TestConversation_SendGuards(t *testing.T) {
	c := NewConversation(new(testutil.MockAPI))
	_, err := c.Send(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyText)
	_, err = c.Send(context.Background(), "hola")
	assert.ErrorIs(t, err, ErrNotStarted)
}

func TestGrammar_RecordSwallowsFailures(t *testing.T) {
	q := &api.GrammarQuestion{QuestionID: "7", Options: []string{"a", "b"}, CorrectOptionIndex: 1, Explanation: testutil.Ptr("because")}

	m := new(testutil.MockAPI)
	m.On("RecordGrammarAnswer", api.GrammarAnswer{
		QuestionID: "7", SelectedOptionIndex: 0, CorrectOptionIndex: 1, Explanation: testutil.Ptr("because"),
	}).Return(&api.RejectedError{Status: 500, Detail: "db down"}).Once()
	m.On("RecordGrammarAnswer", mock.Anything).Return(api.ErrUnauthorized).Once()

	g := NewGrammar(m, nil)
	o, err := g.Check(q, 0)
	require.NoError(t, err)
	assert.False(t, o.IsCorrect())

	assert.NoError(t, g.Record(context.Background(), q, o))
	assert.True(t, api.IsUnauthorized(g.Record(context.Background(), q, o)))
}

func TestGrammar_Next(t *testing.T) {
	m := new(testutil.MockAPI)
	m.On("NextGrammarQuestion").Return(nil, &api.UnreachableError{Err: errors.New("refused")})

	_, err := NewGrammar(m, nil).Next(context.Background())
	var unr *api.UnreachableError
	assert.ErrorAs(t, err, &unr)
}

func TestWriting_Submit(t *testing.T) {
	m := new(testutil.MockAPI)
	m.On("WritingFeedback", "Yo soy feliz.").Return(&api.WritingFeedback{
		CorrectedText: "Yo soy feliz.", OverallComment: "Great", Score: testutil.Ptr(9.0),
	}, nil)

	w := NewWriting(m)
	_, err := w.Submit(context.Background(), " \n ")
	assert.ErrorIs(t, err, ErrEmptyText)
	m.AssertNotCalled(t, "WritingFeedback", mock.Anything)

	fb, err := w.Submit(context.Background(), "Yo soy feliz.")
	require.NoError(t, err)
	assert.Equal(t, "Great", fb.OverallComment)
}

func TestPronunciation_Flow(t *testing.T) {
	clip := api.Audio{Filename: "recording.wav", ContentType: "audio/wav", Data: []byte("RIFF")}
	m := new(testutil.MockAPI)
	m.On("NextPhrase").Return(&api.TargetPhrase{TargetPhrase: "buenos días"}, nil)
	m.On("EvaluatePronunciation", "buenos días", clip).Return(&api.PronunciationResult{Score: 71}, nil)
	rec := new(testutil.MockRecorder)
	rec.On("Start").Return(nil)
	rec.On("Stop").Return(clip, nil)

	p := NewPronunciation(m, rec)
	assert.ErrorIs(t, p.StartRecording(context.Background()), ErrNotStarted)

	phrase, err := p.Phrase(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "buenos días", phrase)

	_, err = p.Evaluate(context.Background())
	assert.ErrorIs(t, err, ErrNotStarted)

	require.NoError(t, p.StartRecording(context.Background()))
	require.NoError(t, p.StopRecording())
	assert.True(t, p.HasRecording())

	res, err := p.Evaluate(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Good())
}

func TestPronunciation_PermissionDenied(t *testing.T) {
	m := new(testutil.MockAPI)
	m.On("NextPhrase").Return(&api.TargetPhrase{TargetPhrase: "hola"}, nil)
	rec := new(testutil.MockRecorder)
	rec.On("Start").Return(audio.ErrPermissionDenied)

	p := NewPronunciation(m, rec)
	_, err := p.Phrase(context.Background())
	require.NoError(t, err)
	assert.ErrorIs(t, p.StartRecording(context.Background()), audio.ErrPermissionDenied)
	assert.False(t, p.HasRecording())
}

func TestPronunciationResult_GoodThreshold(t *testing.T) {
	assert.False(t, api.PronunciationResult{Score: 70}.Good())
	assert.True(t, api.PronunciationResult{Score: 70.5}.Good())
}

func TestProgress_Advance(t *testing.T) {
	m := new(testutil.MockAPI)
	m.On("AdvanceLevel").Return(&api.AdvancementResult{OldLevel: testutil.Ptr("A1"), NewLevel: "A2", XPEarned: 100}, nil)
	m.On("Me").Return(&api.User{Username: "ana", Level: testutil.Ptr("A2")}, nil).Once()

	adv, err := NewProgress(m).Advance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "A2", adv.Result.NewLevel)
	require.NotNil(t, adv.User)
	assert.Equal(t, "A2", *adv.User.Level)
}

func TestProgress_AdvanceRefreshFailure(t *testing.T) {
	m := new(testutil.MockAPI)
	m.On("AdvanceLevel").Return(&api.AdvancementResult{NewLevel: "A2"}, nil)
	m.On("Me").Return(nil, &api.UnreachableError{}).Once()
	m.On("Me").Return(nil, api.ErrUnauthorized).Once()

	p := NewProgress(m)
	adv, err := p.Advance(context.Background())
	require.NoError(t, err)
	assert.Nil(t, adv.User)

	_, err = p.Advance(context.Background())
	assert.True(t, api.IsUnauthorized(err))
}

func TestProgress_LoadAndCheatCode(t *testing.T) {
	m := new(testutil.MockAPI)
	m.On("ProgressSummary").Return(&api.ProgressSummary{CurrentLevel: testutil.Ptr("A1"), CanAdvance: true}, nil)
	m.On("LevelHistory").Return([]api.LevelHistoryItem{{Level: "A1", DaysAtLevel: 3}}, nil)
	m.On("ApplyCheatCode", "DEMO").Return(&api.CheatCodeResult{Message: "Demo mode on"}, nil)

	p := NewProgress(m)
	ov, err := p.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, ov.Summary.CanAdvance)
	assert.Len(t, ov.History, 1)

	_, err = p.CheatCode(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrEmptyText)

	msg, err := p.CheatCode(context.Background(), " DEMO ")
	require.NoError(t, err)
	assert.Equal(t, "Demo mode on", msg)
}

func TestAccount(t *testing.T) {
	m := new(testutil.MockAPI)
	m.On("Login", api.Credentials{Username: "ana", Password: "pw"}).
		Return(&api.AuthResponse{AccessToken: "tok", User: api.User{Username: "ana"}}, nil)
	m.On("Register", api.Registration{Username: "bo", Password: "pw"}).
		Return(nil, &api.RejectedError{Status: 400, Detail: "Username already registered"})
	m.On("SetLanguage", "Spanish").Return(&api.User{Username: "ana", TargetLanguage: testutil.Ptr("Spanish")}, nil)

	a := NewAccount(m)
	_, err := a.Login(context.Background(), "", "pw")
	assert.ErrorIs(t, err, ErrMissingCredentials)

	res, err := a.Login(context.Background(), " ana ", "pw")
	require.NoError(t, err)
	assert.Equal(t, "tok", res.AccessToken)

	_, err = a.Register(context.Background(), "bo", "pw", "  ")
	assert.Equal(t, "Username already registered", api.Describe(err))

	u, err := a.SelectLanguage(context.Background(), "Spanish")
	require.NoError(t, err)
	assert.Equal(t, "Spanish", *u.TargetLanguage)
}
