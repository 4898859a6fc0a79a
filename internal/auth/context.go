package auth

import "context"

type contextKey int

const loggedUserIDKey contextKey = iota

// ContextWithLoggedUser attaches the session owner's user ID to the context.
// Set by the auth middleware after the token check.
func ContextWithLoggedUser(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, loggedUserIDKey, userID)
}

// LoggedUser returns the user ID bound to the request context, false when
// the request came in through an open route and carries no session.
func LoggedUser(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value(loggedUserIDKey).(int)
	return userID, ok
}
