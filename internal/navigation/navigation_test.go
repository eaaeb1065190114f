package navigation

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/lingua/internal/api"
	"github.com/abhisek/lingua/internal/session"
)

func strPtr(s string) *string { return &s }

func expected(token, user, lang, level, completed bool) Screen {
	switch {
	case !token || !user:
		return Unauthenticated
	case !lang:
		return LanguageSelection
	case !level && !completed:
		return LevelSelection
	default:
		return ModuleHub
	}
}

func TestRoute_Exhaustive(t *testing.T) {
	bools := []bool{false, true}
	for _, token := range bools {
		for _, user := range bools {
			for _, lang := range bools {
				for _, level := range bools {
					for _, completed := range bools {
						name := fmt.Sprintf("token=%v/user=%v/lang=%v/level=%v/completed=%v",
							token, user, lang, level, completed)
						t.Run(name, func(t *testing.T) {
							var s session.Session
							if token && user {
								u := api.User{Username: "ana", PlacementTestCompleted: completed}
								if lang {
									u.TargetLanguage = strPtr("Spanish")
								}
								if level {
									u.Level = strPtr("A2")
								}
								s.SignIn("tok", &u)
							} else if token {
								s.SignIn("tok", nil)
							}
							assert.Equal(t, expected(token, user, lang, level, completed), Route(&s))
						})
					}
				}
			}
		}
	}
}

func TestRoute_NilSession(t *testing.T) {
	assert.Equal(t, Unauthenticated, Route(nil))
}

func TestRoute_EmptyStringsCountAsAbsent(t *testing.T) {
	var s session.Session
	s.SignIn("tok", &api.User{Username: "ana", TargetLanguage: strPtr("")})
	assert.Equal(t, LanguageSelection, Route(&s))

	s.SignIn("tok", &api.User{Username: "ana", TargetLanguage: strPtr("French"), Level: strPtr("")})
	assert.Equal(t, LevelSelection, Route(&s))
}

func TestRoute_Scenarios(t *testing.T) {
	var s session.Session
	s.SignIn("tok", &api.User{Username: "ana"})
	assert.Equal(t, LanguageSelection, Route(&s), "fresh login")

	s.ReplaceUser(api.User{Username: "ana", TargetLanguage: strPtr("Spanish")})
	assert.Equal(t, LevelSelection, Route(&s), "language chosen")

	s.CompletePlacement("B1")
	assert.Equal(t, ModuleHub, Route(&s), "placement done")

	s.Clear()
	assert.Equal(t, Unauthenticated, Route(&s), "signed out")
}

func TestScreen_String(t *testing.T) {
	assert.Equal(t, "module-hub", ModuleHub.String())
	assert.Equal(t, "unknown", Screen(99).String())
}
