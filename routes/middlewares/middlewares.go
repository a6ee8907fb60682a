package middlewares

import (
	"context"
	"net/http"
	"strings"

	"formlink/model"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/oauth"
)

type ctxKey int

const identityKey ctxKey = iota

// Authenticated validates the bearer token and records the caller's
// Identity in the request context.
func Authenticated(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return chi.Chain(oauth.Authorize(secret, nil), identity).Handler(next)
	}
}

func identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := r.Context().Value(oauth.ClaimsContext).(map[string]string)
		if !ok || claims["user_id"] == "" {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		id := model.Identity{UserID: claims["user_id"], Role: model.RoleRespondent}
		for _, role := range strings.Split(claims["roles"], ",") {
			if role == model.RoleAdmin {
				id.Role = model.RoleAdmin
				break
			}
		}

		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
	})
}

// Admin gates administrator-only routes with a plain role check. Must run
// after Authenticated.
func Admin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := IdentityFrom(r.Context())
		if !ok || !id.IsAdmin() {
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func WithIdentity(ctx context.Context, id model.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

func IdentityFrom(ctx context.Context) (model.Identity, bool) {
	id, ok := ctx.Value(identityKey).(model.Identity)
	return id, ok
}
