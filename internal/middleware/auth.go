package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"satchel/internal/auth"
	"satchel/internal/httputil"
)

// Auth validates the bearer token on every request and stores the
// authenticated owner ID on the request context. Requests without a valid
// token get a 401 problem response.
func Auth(verifier auth.JWTVerifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				httputil.RespondError(w, http.StatusUnauthorized, "missing or malformed authorization header")
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				logger.Debug("token rejected", "path", r.URL.Path, "error", err)
				httputil.RespondError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			r = httputil.WithOwnerID(r, claims.GetOwnerID())
			next.ServeHTTP(w, r)
		})
	}
}

// StaticOwner sets a fixed owner ID on every request. Used in development
// mode, where no JWKS endpoint is configured.
func StaticOwner(ownerID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r = httputil.WithOwnerID(r, ownerID)
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}
