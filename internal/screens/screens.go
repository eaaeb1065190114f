// Package screens holds what the individual screens share: the API surface
// they need and the sections the app can open.
package screens

import (
	"go.uber.org/zap"

	"github.com/abhisek/lingua/internal/activity"
	"github.com/abhisek/lingua/internal/audio"
)

// API is everything the screens need from the server. *api.Client
// satisfies it.
type API interface {
	activity.AuthAPI
	activity.PlacementAPI
	activity.VocabularyAPI
	activity.ConversationAPI
	activity.GrammarAPI
	activity.WritingAPI
	activity.PronunciationAPI
	activity.ProgressAPI
}

// Deps are handed to every screen constructor.
type Deps struct {
	API      API
	Recorder audio.Recorder
	Logger   *zap.Logger
}

// Section is a place the app can navigate to on request.
type Section int

const (
	Vocabulary Section = iota
	Conversation
	Grammar
	Writing
	Pronunciation
	Progress
	Placement
)

// OpenMsg asks the app to push the screen for Section.
type OpenMsg struct {
	Section Section
}
