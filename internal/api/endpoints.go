package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
)

// Login exchanges a username and password for a token.
func (c *Client) Login(ctx context.Context, creds Credentials) (*AuthResponse, error) {
	var out AuthResponse
	cl := call{method: http.MethodPost, path: "/auth/login", anonymous: true, schema: authSchema, out: &out}
	if err := cl.setJSON(creds); err != nil {
		return nil, err
	}
	if err := c.do(ctx, cl); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates an account and signs it in.
func (c *Client) Register(ctx context.Context, reg Registration) (*AuthResponse, error) {
	var out AuthResponse
	cl := call{method: http.MethodPost, path: "/auth/register", anonymous: true, schema: authSchema, out: &out}
	if err := cl.setJSON(reg); err != nil {
		return nil, err
	}
	if err := c.do(ctx, cl); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me returns the profile of the token's owner.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var out User
	if err := c.typed(ctx, http.MethodGet, "/auth/me", nil, userSchema, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetLanguage sets the learner's target language.
func (c *Client) SetLanguage(ctx context.Context, language string) (*User, error) {
	var out User
	body := map[string]string{"target_language": language}
	if err := c.typed(ctx, http.MethodPut, "/auth/me/language", body, userSchema, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetLevel sets the learner's level directly, skipping placement.
func (c *Client) SetLevel(ctx context.Context, level string) (*User, error) {
	var out User
	body := map[string]string{"level": level}
	if err := c.typed(ctx, http.MethodPut, "/auth/me/level", body, userSchema, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// StartPlacement begins a placement test in the given language.
func (c *Client) StartPlacement(ctx context.Context, language string) (*PlacementStart, error) {
	var out PlacementStart
	body := map[string]string{"target_language": language}
	if err := c.typed(ctx, http.MethodPost, "/placement-test/start", body, placementStartSchema, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PlacementQuestion fetches the next question of a test. done is true when
// the server answers 404, which means the test has no more questions.
func (c *Client) PlacementQuestion(ctx context.Context, testID ID) (q *QuestionEnvelope, done bool, err error) {
	var out QuestionEnvelope
	err = c.typed(ctx, http.MethodGet, "/placement-test/"+url.PathEscape(testID.String())+"/question", nil, questionSchema, &out)
	if IsNotFound(err) {
		return nil, true, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &out, false, nil
}

// AnswerPlacement submits the answer to one question.
func (c *Client) AnswerPlacement(ctx context.Context, testID ID, answer PlacementAnswer) (*AnswerAck, error) {
	var out AnswerAck
	if err := c.typed(ctx, http.MethodPost, "/placement-test/"+url.PathEscape(testID.String())+"/answer", answer, answerAckSchema, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CompletePlacement finishes a test and returns the determined level.
func (c *Client) CompletePlacement(ctx context.Context, testID ID) (*PlacementResult, error) {
	var out PlacementResult
	if err := c.typed(ctx, http.MethodPost, "/placement-test/"+url.PathEscape(testID.String())+"/complete", nil, placementResultSchema, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// NextFlashcard fetches a vocabulary card.
func (c *Client) NextFlashcard(ctx context.Context) (*Flashcard, error) {
	var out Flashcard
	if err := c.typed(ctx, http.MethodGet, "/vocabulary/next", nil, flashcardSchema, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AnswerFlashcard records an answer and returns the server's explanation.
func (c *Client) AnswerFlashcard(ctx context.Context, answer FlashcardAnswer) (*Explanation, error) {
	var out Explanation
	if err := c.typed(ctx, http.MethodPost, "/vocabulary/answer", answer, explanationSchema, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// StartConversation opens a conversation on no particular topic.
func (c *Client) StartConversation(ctx context.Context) (*ConversationStart, error) {
	var out ConversationStart
	body := map[string]any{"topic": nil}
	if err := c.typed(ctx, http.MethodPost, "/conversation/start", body, conversationStartSchema, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SendMessage posts one learner message into a conversation.
func (c *Client) SendMessage(ctx context.Context, sessionID ID, message string) (*ConversationReply, error) {
	var out ConversationReply
	body := map[string]string{"message": message}
	if err := c.typed(ctx, http.MethodPost, "/conversation/"+url.PathEscape(sessionID.String())+"/message", body, conversationReplySchema, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GrammarTopic is the only topic the client requests.
const GrammarTopic = "general"

// NextGrammarQuestion fetches a grammar drill.
func (c *Client) NextGrammarQuestion(ctx context.Context) (*GrammarQuestion, error) {
	var out GrammarQuestion
	path := "/grammar/question?" + url.Values{"topic": {GrammarTopic}}.Encode()
	if err := c.typed(ctx, http.MethodGet, path, nil, grammarQuestionSchema, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RecordGrammarAnswer records a drill attempt. The response body is ignored.
func (c *Client) RecordGrammarAnswer(ctx context.Context, answer GrammarAnswer) error {
	return c.Do(ctx, http.MethodPost, "/grammar/answer", answer, nil)
}

// WritingFeedback asks for a review of text.
func (c *Client) WritingFeedback(ctx context.Context, text string) (*WritingFeedback, error) {
	var out WritingFeedback
	body := map[string]string{"text": text}
	if err := c.typed(ctx, http.MethodPost, "/writing/feedback", body, writingFeedbackSchema, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// NextPhrase fetches a phrase to pronounce.
func (c *Client) NextPhrase(ctx context.Context) (*TargetPhrase, error) {
	var out TargetPhrase
	if err := c.typed(ctx, http.MethodGet, "/phonetics/phrase", nil, phraseSchema, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// EvaluatePronunciation uploads a recording of phrase for scoring.
func (c *Client) EvaluatePronunciation(ctx context.Context, phrase string, audio Audio) (*PronunciationResult, error) {
	if len(audio.Data) == 0 {
		return nil, errors.New("evaluate pronunciation: empty recording")
	}
	form := Form{
		Fields: map[string]string{"target_phrase": phrase},
		Files: []FormFile{{
			Field:       "audio_file",
			Filename:    audio.Filename,
			ContentType: audio.ContentType,
			Data:        audio.Data,
		}},
	}
	var out PronunciationResult
	if err := c.upload(ctx, "/phonetics/evaluate", form, pronunciationSchema, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ProgressSummary returns the learner's standing at the current level.
func (c *Client) ProgressSummary(ctx context.Context) (*ProgressSummary, error) {
	var out ProgressSummary
	if err := c.typed(ctx, http.MethodGet, "/progress/summary", nil, progressSummarySchema, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LevelHistory lists completed levels, oldest first.
func (c *Client) LevelHistory(ctx context.Context) ([]LevelHistoryItem, error) {
	var out []LevelHistoryItem
	if err := c.typed(ctx, http.MethodGet, "/progress/history", nil, historySchema, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AdvanceLevel moves the learner to the next level.
func (c *Client) AdvanceLevel(ctx context.Context) (*AdvancementResult, error) {
	var out AdvancementResult
	if err := c.typed(ctx, http.MethodPost, "/progress/advance", nil, advancementSchema, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ApplyCheatCode applies a demo code to the learner's progress.
func (c *Client) ApplyCheatCode(ctx context.Context, code string) (*CheatCodeResult, error) {
	var out CheatCodeResult
	body := map[string]string{"code": code}
	if err := c.typed(ctx, http.MethodPost, "/progress/cheat-code", body, cheatCodeSchema, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) typed(ctx context.Context, method, path string, body any, schema *Schema, out any) error {
	cl := call{method: method, path: path, schema: schema, out: out}
	if body != nil {
		if err := cl.setJSON(body); err != nil {
			return err
		}
	}
	return c.do(ctx, cl)
}

// Form is a multipart/form-data body.
type Form struct {
	Fields map[string]string
	Files  []FormFile
}

// FormFile is one file part of a Form.
type FormFile struct {
	Field       string
	Filename    string
	ContentType string
	Data        []byte
}

// Upload posts a multipart form and decodes the JSON response into out.
func (c *Client) Upload(ctx context.Context, path string, form Form, out any) error {
	return c.upload(ctx, path, form, nil, out)
}

func (c *Client) upload(ctx context.Context, path string, form Form, schema *Schema, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range form.Fields {
		if err := w.WriteField(k, v); err != nil {
			return fmt.Errorf("write field %s: %w", k, err)
		}
	}
	for _, f := range form.Files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", multipart.FileContentDisposition(f.Field, f.Filename))
		ct := f.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)
		part, err := w.CreatePart(h)
		if err != nil {
			return fmt.Errorf("create part %s: %w", f.Field, err)
		}
		if _, err := part.Write(f.Data); err != nil {
			return fmt.Errorf("write part %s: %w", f.Field, err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close multipart: %w", err)
	}
	return c.do(ctx, call{
		method:      http.MethodPost,
		path:        path,
		body:        &buf,
		contentType: w.FormDataContentType(),
		schema:      schema,
		out:         out,
	})
}
