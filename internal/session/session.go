// Package session holds the signed-in state of the client: the bearer token
// and the profile of the user it belongs to. A Session is owned by the UI
// event loop and mutated only there.
package session

import (
	"github.com/abhisek/lingua/internal/api"
)

// Session is the current token and user. The zero value is signed out.
type Session struct {
	token string
	user  *api.User
}

// Token returns the bearer token, or "" when signed out.
func (s *Session) Token() string { return s.token }

// User returns a copy of the current profile, or nil. Changing the copy
// never changes the Session.
func (s *Session) User() *api.User {
	if s.user == nil {
		return nil
	}
	return clone(*s.user)
}

// clone copies u including the strings its optional fields point to.
func clone(u api.User) *api.User {
	u.FullName = cloneString(u.FullName)
	u.TargetLanguage = cloneString(u.TargetLanguage)
	u.Level = cloneString(u.Level)
	return &u
}

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// SignedIn reports whether a token and a confirmed user are both present.
func (s *Session) SignedIn() bool {
	return s.token != "" && s.user != nil
}

// SignIn stores a token together with its user. An empty token or a nil
// user signs out instead; a token is never kept without a user.
func (s *Session) SignIn(token string, user *api.User) {
	if token == "" || user == nil {
		s.Clear()
		return
	}
	s.token = token
	s.user = clone(*user)
}

// ReplaceUser replaces the profile wholesale. It is a no-op when signed out.
func (s *Session) ReplaceUser(user api.User) {
	if s.token == "" {
		return
	}
	s.user = clone(user)
}

// CompletePlacement applies the outcome of a placement test: the
// determined level replaces the user's level and the test is marked done.
func (s *Session) CompletePlacement(level string) {
	if s.user == nil {
		return
	}
	u := clone(*s.user)
	u.Level = &level
	u.PlacementTestCompleted = true
	s.user = u
}

// Clear signs out.
func (s *Session) Clear() {
	s.token = ""
	s.user = nil
}
