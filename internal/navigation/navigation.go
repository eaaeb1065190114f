// Package navigation decides which root screen a session belongs on.
package navigation

import "github.com/abhisek/lingua/internal/session"

// Screen identifies a root screen.
type Screen int

const (
	Unauthenticated Screen = iota
	LanguageSelection
	LevelSelection
	ModuleHub
)

var screenNames = map[Screen]string{
	Unauthenticated:   "unauthenticated",
	LanguageSelection: "language-selection",
	LevelSelection:    "level-selection",
	ModuleHub:         "module-hub",
}

func (s Screen) String() string {
	if n, ok := screenNames[s]; ok {
		return n
	}
	return "unknown"
}

// Route maps a session to its root screen. Rules are checked in order and
// the first match wins.
func Route(s *session.Session) Screen {
	if s == nil || !s.SignedIn() {
		return Unauthenticated
	}
	u := s.User()
	if !u.HasLanguage() {
		return LanguageSelection
	}
	if !u.HasLevel() && !u.PlacementTestCompleted {
		return LevelSelection
	}
	return ModuleHub
}
