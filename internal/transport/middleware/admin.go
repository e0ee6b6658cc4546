package middleware

import (
	"context"
	"net/http"

	"github.com/heartmarshall/cvo-backend/internal/domain"
	"github.com/heartmarshall/cvo-backend/pkg/ctxutil"
)

// RequireAdmin returns domain.ErrUnauthorized without a caller and
// domain.ErrForbidden if the caller lacks adminRole.
func RequireAdmin(ctx context.Context, adminRole string) error {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return domain.ErrUnauthorized
	}
	if !ctxutil.HasRole(ctx, adminRole) {
		return domain.ErrForbidden
	}
	return nil
}

// AdminOnly rejects requests whose caller is not an admin. It must run after Auth.
func AdminOnly(adminRole string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch err := RequireAdmin(r.Context(), adminRole); err {
			case nil:
				next.ServeHTTP(w, r)
			case domain.ErrUnauthorized:
				writeAuthError(w, http.StatusUnauthorized, "unauthorized")
			default:
				writeAuthError(w, http.StatusForbidden, "forbidden")
			}
		})
	}
}
