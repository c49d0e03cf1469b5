package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/templui/okrledger/internal/ctxkeys"
	"github.com/templui/okrledger/internal/response"
	"github.com/templui/okrledger/internal/service"
)

const authCookie = "auth_token"

// AuthMiddleware resolves the actor from a Bearer token or the auth_token
// cookie and adds it to the context. Invalid tokens leave the request anonymous.
func AuthMiddleware(authService *service.AuthService) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := authService.Actor(token)
			if err != nil {
				slog.Debug("token rejected", "error", err, "path", r.URL.Path)
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(ctxkeys.WithUser(r.Context(), user)))
		})
	}
}

// RequireAuth rejects anonymous requests with a JSON 401.
func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ctxkeys.User(r.Context()) == nil {
			response.Unauthorized(w, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}

	cookie, err := r.Cookie(authCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}
