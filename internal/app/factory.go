package app

import (
	"github.com/abhisek/lingua/internal/navigation"
	"github.com/abhisek/lingua/internal/screen"
	"github.com/abhisek/lingua/internal/screens"
	"github.com/abhisek/lingua/internal/screens/conversation"
	"github.com/abhisek/lingua/internal/screens/grammar"
	"github.com/abhisek/lingua/internal/screens/home"
	"github.com/abhisek/lingua/internal/screens/login"
	"github.com/abhisek/lingua/internal/screens/onboarding"
	"github.com/abhisek/lingua/internal/screens/placement"
	"github.com/abhisek/lingua/internal/screens/progress"
	"github.com/abhisek/lingua/internal/screens/pronunciation"
	"github.com/abhisek/lingua/internal/screens/vocabulary"
	"github.com/abhisek/lingua/internal/screens/writing"
)

func (m AppModel) screenDeps() screens.Deps {
	return screens.Deps{API: m.deps.API, Recorder: m.deps.Recorder, Logger: m.logger}
}

// rootScreen builds the screen a route starts on.
func (m AppModel) rootScreen(route navigation.Screen, notice string) screen.Screen {
	deps := m.screenDeps()
	user := m.session.User()
	switch route {
	case navigation.LanguageSelection:
		return onboarding.NewLanguage(deps)
	case navigation.LevelSelection:
		return onboarding.NewLevel(deps, *user.TargetLanguage)
	case navigation.ModuleHub:
		return home.New(*user)
	default:
		return login.New(deps, notice)
	}
}

// sectionScreen builds the screen for an OpenMsg. It returns nil when the
// section cannot be opened for the current user.
func (m AppModel) sectionScreen(section screens.Section) screen.Screen {
	deps := m.screenDeps()
	switch section {
	case screens.Vocabulary:
		return vocabulary.New(deps)
	case screens.Conversation:
		return conversation.New(deps)
	case screens.Grammar:
		return grammar.New(deps)
	case screens.Writing:
		return writing.New(deps)
	case screens.Pronunciation:
		return pronunciation.New(deps)
	case screens.Progress:
		return progress.New(deps)
	case screens.Placement:
		if u := m.session.User(); u != nil && u.HasLanguage() {
			return placement.New(deps, *u.TargetLanguage)
		}
	}
	return nil
}
