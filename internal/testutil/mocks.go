// Package testutil provides testify mocks shared by package tests.
package testutil

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/abhisek/lingua/internal/api"
)

// MockAPI implements every API interface the controllers and screens use.
// SetToken is not mocked; the last token is kept for inspection.
type MockAPI struct {
	mock.Mock

	tokenMu sync.Mutex
	token   string
}

func (m *MockAPI) SetToken(token string) {
	m.tokenMu.Lock()
	defer m.tokenMu.Unlock()
	m.token = token
}

// CurrentToken returns the token last passed to SetToken.
func (m *MockAPI) CurrentToken() string {
	m.tokenMu.Lock()
	defer m.tokenMu.Unlock()
	return m.token
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T { return &v }

func (m *MockAPI) Login(ctx context.Context, creds api.Credentials) (*api.AuthResponse, error) {
	args := m.Called(creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.AuthResponse), args.Error(1)
}

func (m *MockAPI) Register(ctx context.Context, reg api.Registration) (*api.AuthResponse, error) {
	args := m.Called(reg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.AuthResponse), args.Error(1)
}

func (m *MockAPI) Me(ctx context.Context) (*api.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.User), args.Error(1)
}

func (m *MockAPI) SetLanguage(ctx context.Context, language string) (*api.User, error) {
	args := m.Called(language)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.User), args.Error(1)
}

func (m *MockAPI) SetLevel(ctx context.Context, level string) (*api.User, error) {
	args := m.Called(level)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.User), args.Error(1)
}

func (m *MockAPI) StartPlacement(ctx context.Context, language string) (*api.PlacementStart, error) {
	args := m.Called(language)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.PlacementStart), args.Error(1)
}

func (m *MockAPI) PlacementQuestion(ctx context.Context, testID api.ID) (*api.QuestionEnvelope, bool, error) {
	args := m.Called(testID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*api.QuestionEnvelope), args.Bool(1), args.Error(2)
}

func (m *MockAPI) AnswerPlacement(ctx context.Context, testID api.ID, answer api.PlacementAnswer) (*api.AnswerAck, error) {
	args := m.Called(testID, answer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.AnswerAck), args.Error(1)
}

func (m *MockAPI) CompletePlacement(ctx context.Context, testID api.ID) (*api.PlacementResult, error) {
	args := m.Called(testID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.PlacementResult), args.Error(1)
}

func (m *MockAPI) NextFlashcard(ctx context.Context) (*api.Flashcard, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.Flashcard), args.Error(1)
}

func (m *MockAPI) AnswerFlashcard(ctx context.Context, answer api.FlashcardAnswer) (*api.Explanation, error) {
	args := m.Called(answer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.Explanation), args.Error(1)
}

func (m *MockAPI) StartConversation(ctx context.Context) (*api.ConversationStart, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.ConversationStart), args.Error(1)
}

func (m *MockAPI) SendMessage(ctx context.Context, sessionID api.ID, message string) (*api.ConversationReply, error) {
	args := m.Called(sessionID, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.ConversationReply), args.Error(1)
}

func (m *MockAPI) NextGrammarQuestion(ctx context.Context) (*api.GrammarQuestion, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.GrammarQuestion), args.Error(1)
}

func (m *MockAPI) RecordGrammarAnswer(ctx context.Context, answer api.GrammarAnswer) error {
	return m.Called(answer).Error(0)
}

func (m *MockAPI) WritingFeedback(ctx context.Context, text string) (*api.WritingFeedback, error) {
	args := m.Called(text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.WritingFeedback), args.Error(1)
}

func (m *MockAPI) NextPhrase(ctx context.Context) (*api.TargetPhrase, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.TargetPhrase), args.Error(1)
}

func (m *MockAPI) EvaluatePronunciation(ctx context.Context, phrase string, clip api.Audio) (*api.PronunciationResult, error) {
	args := m.Called(phrase, clip)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.PronunciationResult), args.Error(1)
}

func (m *MockAPI) ProgressSummary(ctx context.Context) (*api.ProgressSummary, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.ProgressSummary), args.Error(1)
}

func (m *MockAPI) LevelHistory(ctx context.Context) ([]api.LevelHistoryItem, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]api.LevelHistoryItem), args.Error(1)
}

func (m *MockAPI) AdvanceLevel(ctx context.Context) (*api.AdvancementResult, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.AdvancementResult), args.Error(1)
}

func (m *MockAPI) ApplyCheatCode(ctx context.Context, code string) (*api.CheatCodeResult, error) {
	args := m.Called(code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.CheatCodeResult), args.Error(1)
}

// MockRecorder implements audio.Recorder.
type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) Start(ctx context.Context) error {
	return m.Called().Error(0)
}

func (m *MockRecorder) Stop() (api.Audio, error) {
	args := m.Called()
	return args.Get(0).(api.Audio), args.Error(1)
}
