package auth

import (
	"context"
	"errors"
)

var _ Checker = (*LoginChecker)(nil)
var _ Checker = (*LoginTestChecker)(nil)

var ErrNotLoggedIn = errors.New("not logged in")

type Checker interface {
	IsLogged(ctx context.Context, token string) (bool, error)
	// LoggedInUser resolves the session token to the owning user ID,
	// returning ErrNotLoggedIn for unknown or expired sessions.
	LoggedInUser(ctx context.Context, token string) (int, error)
}
