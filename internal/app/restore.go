package app

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/abhisek/lingua/internal/activity"
	"github.com/abhisek/lingua/internal/api"
)

// ExpiredNotice is shown on the sign-in screen after the session ended
// because the token was rejected or had expired.
const ExpiredNotice = "Session expired. Please login again."

// restoredMsg is the outcome of looking for a saved session at startup.
type restoredMsg struct {
	token  string
	user   *api.User
	notice string
}

// tokenExpired reports whether token is a JWT whose exp claim is already
// past. Tokens that cannot be parsed are left for the server to judge.
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !exp.After(now)
}

// restore loads the saved token and confirms it with the server. A token
// the server rejects is deleted. When the server cannot be reached the
// token is kept for next time and the learner starts signed out.
func (m AppModel) restore(ctx context.Context) restoredMsg {
	creds, gw, logger := m.deps.Credentials, m.deps.API, m.logger

	token, ok, err := creds.Load(ctx)
	if err != nil {
		logger.Warn("load saved credential", zap.Error(err))
		return restoredMsg{}
	}
	if !ok {
		return restoredMsg{}
	}

	if tokenExpired(token, m.now()) {
		logger.Info("saved token expired")
		m.forget(ctx)
		return restoredMsg{notice: ExpiredNotice}
	}

	gw.SetToken(token)
	user, err := activity.NewAccount(gw).Me(ctx)
	if err != nil {
		gw.SetToken("")
		if api.IsUnauthorized(err) {
			logger.Info("saved token rejected")
			m.forget(ctx)
			return restoredMsg{notice: ExpiredNotice}
		}
		logger.Warn("restore session", zap.Error(err))
		return restoredMsg{notice: api.Describe(err)}
	}
	return restoredMsg{token: token, user: user}
}

// forget deletes the saved credential. Failure only means the next start
// will try the token again.
func (m AppModel) forget(ctx context.Context) {
	if err := m.deps.Credentials.Clear(ctx); err != nil {
		m.logger.Warn("clear saved credential", zap.Error(err))
	}
}
