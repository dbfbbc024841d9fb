package api

import (
	"context"
)

type keyType string

const (
	userIDKey keyType = "userID"
	rolesKey  keyType = "roles"
)

// ctxWithUserID adds a user ID to the context
func ctxWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// ctxWithRoles adds the caller's roles to the context. They are carried for
// downstream consumers and not evaluated here.
func ctxWithRoles(ctx context.Context, roles []string) context.Context {
	return context.WithValue(ctx, rolesKey, roles)
}

// ctxGetUserID retrieves the user ID, or "" for unauthenticated requests
func ctxGetUserID(ctx context.Context) string {
	userID, _ := ctx.Value(userIDKey).(string)
	return userID
}

func ctxGetRoles(ctx context.Context) []string {
	roles, _ := ctx.Value(rolesKey).([]string)
	return roles
}
