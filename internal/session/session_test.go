package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lingua/internal/api"
)

func strPtr(s string) *string { return &s }

func TestSession_ZeroValueSignedOut(t *testing.T) {
	var s Session
	assert.False(t, s.SignedIn())
	assert.Empty(t, s.Token())
	assert.Nil(t, s.User())
}

func TestSession_SignInRequiresUser(t *testing.T) {
	var s Session
	s.SignIn("tok", nil)
	assert.False(t, s.SignedIn())
	assert.Empty(t, s.Token(), "token must not be kept without a user")

	s.SignIn("tok", &api.User{Username: "ana"})
	assert.True(t, s.SignedIn())
	assert.Equal(t, "tok", s.Token())

	s.SignIn("", &api.User{Username: "ana"})
	assert.False(t, s.SignedIn())
}

func TestSession_UserIsACopy(t *testing.T) {
	var s Session
	u := api.User{Username: "ana"}
	s.SignIn("tok", &u)
	u.Username = "changed"

	got := s.User()
	require.NotNil(t, got)
	assert.Equal(t, "ana", got.Username)

	got.Username = "mutated"
	assert.Equal(t, "ana", s.User().Username)
}

func TestSession_ReplaceUser(t *testing.T) {
	var s Session
	s.ReplaceUser(api.User{Username: "ghost"})
	assert.Nil(t, s.User(), "replace while signed out is ignored")

	s.SignIn("tok", &api.User{Username: "ana"})
	s.ReplaceUser(api.User{Username: "ana", TargetLanguage: strPtr("Spanish")})
	assert.Equal(t, "Spanish", *s.User().TargetLanguage)
}

func TestSession_CompletePlacement(t *testing.T) {
	var s Session
	s.SignIn("tok", &api.User{Username: "ana", TargetLanguage: strPtr("French")})
	s.CompletePlacement("B1")

	u := s.User()
	require.NotNil(t, u.Level)
	assert.Equal(t, "B1", *u.Level)
	assert.True(t, u.PlacementTestCompleted)
}

func TestSession_Clear(t *testing.T) {
	var s Session
	s.SignIn("tok", &api.User{Username: "ana"})
	s.Clear()
	s.Clear()
	assert.False(t, s.SignedIn())
	assert.Nil(t, s.User())
}

func TestSession_OptionalFieldsAreCopied(t *testing.T) {
	var s Session
	u := api.User{Username: "ana", TargetLanguage: strPtr("Spanish"), Level: strPtr("B1")}
	s.SignIn("tok", &u)

	*u.TargetLanguage = "French"
	*u.Level = "C2"
	require.NotNil(t, s.User())
	assert.Equal(t, "Spanish", *s.User().TargetLanguage)
	assert.Equal(t, "B1", *s.User().Level)

	got := s.User()
	*got.Level = "A1"
	*got.TargetLanguage = "German"
	assert.Equal(t, "B1", *s.User().Level)
	assert.Equal(t, "Spanish", *s.User().TargetLanguage)

	fresh := api.User{Username: "ana", Level: strPtr("B2")}
	s.ReplaceUser(fresh)
	*fresh.Level = "C1"
	assert.Equal(t, "B2", *s.User().Level)
}
