package subscription

import (
	"context"
	"errors"
)

type userIDCtxKey struct{}

// SetUserIDToContext stores the authenticated user's ID in ctx.
func SetUserIDToContext(ctx context.Context, id UserID) context.Context {
	return context.WithValue(ctx, userIDCtxKey{}, id)
}

// GetUserIDFromContext returns the authenticated user's ID, if any.
func GetUserIDFromContext(ctx context.Context) (UserID, bool) {
	id, ok := ctx.Value(userIDCtxKey{}).(UserID)
	return id, ok && id > 0
}

// UserIDFromContext is like GetUserIDFromContext but returns ErrNotAuthenticated
// joined with ErrUserIDNotInContext when no user is present.
func UserIDFromContext(ctx context.Context) (UserID, error) {
	id, ok := GetUserIDFromContext(ctx)
	if !ok {
		return 0, errors.Join(ErrNotAuthenticated, ErrUserIDNotInContext)
	}
	return id, nil
}
