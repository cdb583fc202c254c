package api

import (
	"context"
)

type keyType string

const (
	userIDKey   keyType = "userID"
	userRoleKey keyType = "userRole"
)

// ctxWithIdentity attaches the authenticated caller's id and role to the context
func ctxWithIdentity(ctx context.Context, userID, role string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, userRoleKey, role)
}

// ctxUserID retrieves the caller's id from the context, "" when anonymous
func ctxUserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

// ctxUserRole retrieves the caller's role from the context, "" when anonymous
func ctxUserRole(ctx context.Context) string {
	role, _ := ctx.Value(userRoleKey).(string)
	return role
}
