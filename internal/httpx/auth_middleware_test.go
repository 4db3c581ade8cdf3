package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticVerifier struct {
	username, password string
}

func (v staticVerifier) Verify(username, password string) error {
	if username == v.username && password == v.password {
		return nil
	}
	return errors.New("incorrect username or password")
}

func TestBasicAuthMiddleware(t *testing.T) {
	verifier := staticVerifier{username: "librarian", password: "s3cret"}

	tests := []struct {
		name       string
		setAuth    func(r *http.Request)
		wantStatus int
		wantCalled bool
	}{
		{
			name:       "valid credentials",
			setAuth:    func(r *http.Request) { r.SetBasicAuth("librarian", "s3cret") },
			wantStatus: http.StatusOK,
			wantCalled: true,
		},
		{
			name:       "missing credentials",
			setAuth:    func(r *http.Request) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong password",
			setAuth:    func(r *http.Request) { r.SetBasicAuth("librarian", "guess") },
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "bearer scheme",
			setAuth:    func(r *http.Request) { r.Header.Set("Authorization", "Bearer abc") },
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			var seenUser string
			handler := BasicAuthMiddleware(verifier)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				seenUser = UsernameFrom(r)
				w.WriteHeader(http.StatusOK)
			}))

			r := httptest.NewRequest(http.MethodGet, "/books", nil)
			tt.setAuth(r)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, r)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantCalled, called)

			if tt.wantStatus == http.StatusUnauthorized {
				assert.Equal(t, "Basic", w.Header().Get("WWW-Authenticate"))
				var resp ErrorResponse
				require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
				assert.Equal(t, "UNAUTHORIZED", resp.Error.Code)
				assert.Equal(t, "incorrect username or password", resp.Error.Message)
			} else {
				assert.Equal(t, "librarian", seenUser)
			}
		})
	}
}
