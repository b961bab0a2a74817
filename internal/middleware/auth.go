package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/obsidianempire/overlay/api/internal/model"
	"github.com/obsidianempire/overlay/api/internal/service"
)

// Authenticator defines the interface for resolving a session token into
// a principal
type Authenticator interface {
	Authenticate(token string) (*model.Principal, error)
}

// Auth returns a middleware that validates session tokens. The resolved
// principal carries only guilds still on the allow-list; a token whose
// guilds have all been removed is rejected.
func Auth(auth Authenticator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Extract token from Authorization header
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				model.NewUnauthorizedError("missing authorization header").WriteJSON(w)
				return
			}

			// Check Bearer prefix
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				model.NewUnauthorizedError("invalid authorization header format").WriteJSON(w)
				return
			}

			principal, err := auth.Authenticate(parts[1])
			if err != nil {
				if errors.Is(err, service.ErrGuildNotAllowed) {
					forbidden := model.NewForbiddenError("no authorized guild membership")
					forbidden.Code = model.ErrCodeGuildDenied
					forbidden.WriteJSON(w)
					return
				}
				model.NewUnauthorizedError("invalid or expired token").WriteJSON(w)
				return
			}

			ctx := context.WithValue(r.Context(), PrincipalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetPrincipal extracts the authenticated principal from context
func GetPrincipal(ctx context.Context) *model.Principal {
	if principal, ok := ctx.Value(PrincipalKey).(*model.Principal); ok {
		return principal
	}
	return nil
}

// GetUserID extracts the authenticated user ID from context
func GetUserID(ctx context.Context) string {
	if principal := GetPrincipal(ctx); principal != nil {
		return principal.UserID
	}
	return ""
}
