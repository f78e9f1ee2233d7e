package authctx

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	userIDKey contextKey = "user_id"
	emailKey  contextKey = "user_email"
	roleIDKey contextKey = "role_id"
)

// WithUser attaches the authenticated caller's identity to the context.
// Set by the auth middleware, read by handlers and by the audit trail.
func WithUser(ctx context.Context, userID uuid.UUID, email string, roleID int) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	ctx = context.WithValue(ctx, emailKey, email)
	ctx = context.WithValue(ctx, roleIDKey, roleID)
	return ctx
}

func UserID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	return id, ok
}

func Email(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(emailKey).(string)
	return email, ok
}

func RoleID(ctx context.Context) (int, bool) {
	roleID, ok := ctx.Value(roleIDKey).(int)
	return roleID, ok
}
