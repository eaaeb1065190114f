package activity

import (
	"context"
	"fmt"

	"github.com/abhisek/lingua/internal/api"
	"github.com/abhisek/lingua/internal/audio"
)

// PronunciationAPI is the subset of the API pronunciation practice needs.
type PronunciationAPI interface {
	NextPhrase(ctx context.Context) (*api.TargetPhrase, error)
	EvaluatePronunciation(ctx context.Context, phrase string, clip api.Audio) (*api.PronunciationResult, error)
}

// Pronunciation asks for a phrase, records the learner saying it and has
// the recording scored.
type Pronunciation struct {
	api      PronunciationAPI
	recorder audio.Recorder

	phrase    string
	recording *api.Audio
}

// NewPronunciation creates a Pronunciation controller.
func NewPronunciation(c PronunciationAPI, rec audio.Recorder) *Pronunciation {
	return &Pronunciation{api: c, recorder: rec}
}

// Phrase fetches a new target phrase and drops any previous recording.
func (p *Pronunciation) Phrase(ctx context.Context) (string, error) {
	res, err := p.api.NextPhrase(label(ctx, LabelPronunciation))
	if err != nil {
		return "", fmt.Errorf("load phrase: %w", err)
	}
	p.phrase = res.TargetPhrase
	p.recording = nil
	return p.phrase, nil
}

// StartRecording begins capturing audio.
func (p *Pronunciation) StartRecording(ctx context.Context) error {
	if p.phrase == "" {
		return ErrNotStarted
	}
	p.recording = nil
	return p.recorder.Start(ctx)
}

// StopRecording ends the capture and keeps the clip for Evaluate.
func (p *Pronunciation) StopRecording() error {
	clip, err := p.recorder.Stop()
	if err != nil {
		return err
	}
	p.recording = &clip
	return nil
}

// HasRecording reports whether a clip is ready to evaluate.
func (p *Pronunciation) HasRecording() bool { return p.recording != nil }

// Evaluate uploads the recorded clip for the current phrase.
func (p *Pronunciation) Evaluate(ctx context.Context) (*api.PronunciationResult, error) {
	if p.recording == nil {
		return nil, ErrNotStarted
	}
	return p.EvaluateClip(ctx, p.phrase, *p.recording)
}

// EvaluateClip uploads clip as a reading of phrase.
func (p *Pronunciation) EvaluateClip(ctx context.Context, phrase string, clip api.Audio) (*api.PronunciationResult, error) {
	res, err := p.api.EvaluatePronunciation(label(ctx, LabelPronunciation), phrase, clip)
	if err != nil {
		return nil, fmt.Errorf("evaluate pronunciation: %w", err)
	}
	return res, nil
}
