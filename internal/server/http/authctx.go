package httpserver

import (
	"context"

	"github.com/and161185/dev-diary/internal/model"
)

type ctxKey string

const userKey ctxKey = "dd.user"

// WithUser returns a derived context carrying the authenticated user.
func WithUser(ctx context.Context, u *model.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// UserFromCtx extracts the authenticated user placed by RequireAuth.
func UserFromCtx(ctx context.Context) (*model.User, bool) {
	u, ok := ctx.Value(userKey).(*model.User)
	return u, ok && u != nil
}
