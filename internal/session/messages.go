package session

import "github.com/abhisek/lingua/internal/api"

// SignedInMsg is sent after a successful login, registration or restore.
type SignedInMsg struct {
	Token string
	User  api.User
}

// UserUpdatedMsg carries a fresh profile from the API.
type UserUpdatedMsg struct {
	User api.User
}

// PlacementCompletedMsg is sent as soon as placement results arrive.
type PlacementCompletedMsg struct {
	Level string
}

// SignedOutMsg ends the session. Notice, when set, is shown on the sign-in
// screen.
type SignedOutMsg struct {
	Notice string
}
