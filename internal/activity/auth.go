package activity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/lingua/internal/api"
)

// AuthAPI is the subset of the API account management needs.
type AuthAPI interface {
	Login(ctx context.Context, creds api.Credentials) (*api.AuthResponse, error)
	Register(ctx context.Context, reg api.Registration) (*api.AuthResponse, error)
	Me(ctx context.Context) (*api.User, error)
	SetLanguage(ctx context.Context, language string) (*api.User, error)
	SetLevel(ctx context.Context, level string) (*api.User, error)
}

// ErrMissingCredentials is returned when username or password is blank.
var ErrMissingCredentials = errors.New("please enter both username and password")

// Account signs learners in and edits their profile.
type Account struct {
	api AuthAPI
}

// NewAccount creates an Account controller.
func NewAccount(c AuthAPI) *Account {
	return &Account{api: c}
}

// Login signs in with a username and password.
func (a *Account) Login(ctx context.Context, username, password string) (*api.AuthResponse, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrMissingCredentials
	}
	res, err := a.api.Login(label(ctx, LabelAuth), api.Credentials{Username: username, Password: password})
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return res, nil
}

// Register creates an account. fullName is optional.
func (a *Account) Register(ctx context.Context, username, password, fullName string) (*api.AuthResponse, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrMissingCredentials
	}
	reg := api.Registration{Username: username, Password: password}
	if fn := strings.TrimSpace(fullName); fn != "" {
		reg.FullName = &fn
	}
	res, err := a.api.Register(label(ctx, LabelAuth), reg)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	return res, nil
}

// Me fetches the profile of the signed-in learner.
func (a *Account) Me(ctx context.Context) (*api.User, error) {
	u, err := a.api.Me(label(ctx, LabelAuth))
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return u, nil
}

// SelectLanguage sets the target language.
func (a *Account) SelectLanguage(ctx context.Context, language string) (*api.User, error) {
	if strings.TrimSpace(language) == "" {
		return nil, ErrEmptyText
	}
	u, err := a.api.SetLanguage(label(ctx, LabelAuth), language)
	if err != nil {
		return nil, fmt.Errorf("set language: %w", err)
	}
	return u, nil
}

// SelectLevel sets the level directly.
func (a *Account) SelectLevel(ctx context.Context, level string) (*api.User, error) {
	u, err := a.api.SetLevel(label(ctx, LabelAuth), level)
	if err != nil {
		return nil, fmt.Errorf("set level: %w", err)
	}
	return u, nil
}
