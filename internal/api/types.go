package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ID is an identifier the server may send as either a JSON string or a
// JSON number. It is always carried as a string.
type ID string

// UnmarshalJSON accepts "abc" and 42 alike.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

// User is the learner profile as returned by the auth endpoints.
type User struct {
	ID                     int     `json:"id"`
	Username               string  `json:"username"`
	FullName               *string `json:"full_name"`
	TargetLanguage         *string `json:"target_language"`
	Level                  *string `json:"level"`
	PlacementTestCompleted bool    `json:"placement_test_completed"`
	TotalXP                int     `json:"total_xp"`
}

// DisplayName prefers the full name and falls back to the username.
func (u User) DisplayName() string {
	if u.FullName != nil && strings.TrimSpace(*u.FullName) != "" {
		return *u.FullName
	}
	return u.Username
}

// HasLanguage reports whether a target language is set.
func (u User) HasLanguage() bool {
	return u.TargetLanguage != nil && *u.TargetLanguage != ""
}

// HasLevel reports whether a level is set.
func (u User) HasLevel() bool {
	return u.Level != nil && *u.Level != ""
}

// Credentials are sent to /auth/login.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Registration is sent to /auth/register.
type Registration struct {
	Username string  `json:"username"`
	Password string  `json:"password"`
	FullName *string `json:"full_name"`
}

// AuthResponse is returned by login and register.
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}

// PlacementStart is returned when a placement test begins.
type PlacementStart struct {
	TestID         ID  `json:"test_id"`
	TotalQuestions int `json:"total_questions"`
}

// TestQuestion is one placement test question.
type TestQuestion struct {
	QuestionNumber int      `json:"question_number"`
	QuestionText   string   `json:"question_text"`
	Options        []string `json:"options"`
	Passage        *string  `json:"passage"`
}

// QuestionEnvelope wraps the next placement question.
type QuestionEnvelope struct {
	Question              TestQuestion `json:"question"`
	CurrentQuestionNumber int          `json:"current_question_number"`
	HasNext               bool         `json:"has_next"`
}

// PlacementAnswer is posted for each answered question.
type PlacementAnswer struct {
	QuestionNumber int `json:"question_number"`
	SelectedOption int `json:"selected_option"`
}

// AnswerAck acknowledges a placement answer.
type AnswerAck struct {
	HasNext bool `json:"has_next"`
}

// SectionScore is one section of the placement results.
type SectionScore struct {
	Section         string  `json:"section"`
	ScorePercentage float64 `json:"score_percentage"`
	CorrectAnswers  int     `json:"correct_answers"`
	TotalQuestions  int     `json:"total_questions"`
}

// PlacementResult is the outcome of a completed placement test.
type PlacementResult struct {
	DeterminedLevel string         `json:"determined_level"`
	SectionScores   []SectionScore `json:"section_scores"`
	Recommendations []string       `json:"recommendations"`
}

// Flashcard is a vocabulary card with multiple-choice meanings.
type Flashcard struct {
	Word               string   `json:"word"`
	ExampleSentence    *string  `json:"example_sentence"`
	Options            []string `json:"options"`
	CorrectOptionIndex int      `json:"correct_option_index"`
	ImageData          *string  `json:"image_data"`
}

// HasImage reports whether the card carries an illustration.
func (f Flashcard) HasImage() bool {
	return f.ImageData != nil && *f.ImageData != ""
}

// FlashcardAnswer is posted to get an explanation for an answer.
type FlashcardAnswer struct {
	Word                string `json:"word"`
	SelectedOptionIndex int    `json:"selected_option_index"`
	CorrectOptionIndex  int    `json:"correct_option_index"`
}

// Explanation is the server's commentary on a flashcard answer.
type Explanation struct {
	Explanation string `json:"explanation"`
}

// ConversationStart opens a conversation.
type ConversationStart struct {
	SessionID      ID     `json:"session_id"`
	OpeningMessage string `json:"opening_message"`
}

// ConversationReply answers one user message.
type ConversationReply struct {
	Reply                string  `json:"reply"`
	CorrectedUserMessage *string `json:"corrected_user_message"`
	Tips                 *string `json:"tips"`
}

// GrammarQuestion is a single grammar drill.
type GrammarQuestion struct {
	QuestionID         ID       `json:"question_id"`
	QuestionText       string   `json:"question_text"`
	Options            []string `json:"options"`
	CorrectOptionIndex int      `json:"correct_option_index"`
	Explanation        *string  `json:"explanation"`
}

// GrammarAnswer records a grammar drill attempt.
type GrammarAnswer struct {
	QuestionID          ID      `json:"question_id"`
	SelectedOptionIndex int     `json:"selected_option_index"`
	CorrectOptionIndex  int     `json:"correct_option_index"`
	Explanation         *string `json:"explanation"`
}

// WritingFeedback is the server's review of a piece of writing.
type WritingFeedback struct {
	CorrectedText     string   `json:"corrected_text"`
	OverallComment    string   `json:"overall_comment"`
	InlineExplanation *string  `json:"inline_explanation"`
	Score             *float64 `json:"score"`
}

// TargetPhrase is the phrase a learner must pronounce.
type TargetPhrase struct {
	TargetPhrase string `json:"target_phrase"`
}

// WordIssue is per-word pronunciation feedback.
type WordIssue struct {
	Word  string `json:"word"`
	Issue string `json:"issue"`
	Tip   string `json:"tip"`
}

// PronunciationResult scores a recording against a target phrase.
type PronunciationResult struct {
	Score             float64     `json:"score"`
	Transcript        string      `json:"transcript"`
	Feedback          string      `json:"feedback"`
	WordLevelFeedback []WordIssue `json:"word_level_feedback"`
}

// Good reports whether the score counts as a good pronunciation.
func (r PronunciationResult) Good() bool {
	return r.Score > GoodPronunciationScore
}

// GoodPronunciationScore is the score a result must exceed to count as good.
const GoodPronunciationScore = 70

// Audio is a recorded clip ready for upload.
type Audio struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ModuleProgress is one module's standing toward advancement.
type ModuleProgress struct {
	Module               string  `json:"module"`
	Score                float64 `json:"score"`
	TotalAttempts        int     `json:"total_attempts"`
	MeetsThreshold       bool    `json:"meets_threshold"`
	MeetsMinimumAttempts bool    `json:"meets_minimum_attempts"`
}

// ConversationEngagement counts conversation messages toward advancement.
type ConversationEngagement struct {
	TotalMessages  int  `json:"total_messages"`
	MeetsThreshold bool `json:"meets_threshold"`
}

// ProgressSummary is the learner's standing at the current level.
type ProgressSummary struct {
	CurrentLevel           *string                 `json:"current_level"`
	NextLevel              *string                 `json:"next_level"`
	CanAdvance             bool                    `json:"can_advance"`
	AdvancementReason      *string                 `json:"advancement_reason"`
	OverallProgress        float64                 `json:"overall_progress"`
	TimeAtCurrentLevel     int                     `json:"time_at_current_level"`
	TotalXP                int                     `json:"total_xp"`
	Modules                []ModuleProgress        `json:"modules"`
	ConversationEngagement *ConversationEngagement `json:"conversation_engagement"`
}

// LevelHistoryItem is one completed level.
type LevelHistoryItem struct {
	Level         string   `json:"level"`
	StartedAt     string   `json:"started_at"`
	CompletedAt   string   `json:"completed_at"`
	DaysAtLevel   int      `json:"days_at_level"`
	WeightedScore *float64 `json:"weighted_score"`
}

// AdvancementResult is returned when the learner moves up a level.
type AdvancementResult struct {
	OldLevel           *string        `json:"old_level"`
	NewLevel           string         `json:"new_level"`
	ModuleScores       map[string]any `json:"module_scores"`
	XPEarned           int            `json:"xp_earned"`
	CelebrationMessage *string        `json:"celebration_message"`
}

// CheatCodeResult confirms an applied demo code.
type CheatCodeResult struct {
	Message string `json:"message"`
}
