package httpx

import (
	"net/http"
)

// CredentialVerifier checks a username/password pair.
type CredentialVerifier interface {
	Verify(username, password string) error
}

const unauthorizedMessage = "incorrect username or password"

// BasicAuthMiddleware rejects requests whose Basic credentials do not verify.
// The wrapped handler is not reached on failure.
func BasicAuthMiddleware(verifier CredentialVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, password, ok := r.BasicAuth()
			if !ok || verifier.Verify(username, password) != nil {
				w.Header().Set("WWW-Authenticate", "Basic")
				JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", unauthorizedMessage, nil)
				return
			}

			if h := userHolderFrom(r.Context()); h != nil {
				h.username = username
			}
			ctx := ContextWithUsername(r.Context(), username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
