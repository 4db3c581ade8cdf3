package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentials_Verify(t *testing.T) {
	creds := Credentials{Username: "librarian", Password: "s3cret"}

	tests := []struct {
		name     string
		username string
		password string
		wantErr  bool
	}{
		{name: "matching pair", username: "librarian", password: "s3cret"},
		{name: "wrong password", username: "librarian", password: "nope", wantErr: true},
		{name: "wrong username", username: "reader", password: "s3cret", wantErr: true},
		{name: "both wrong", username: "reader", password: "nope", wantErr: true},
		{name: "empty", username: "", password: "", wantErr: true},
		{name: "password prefix", username: "librarian", password: "s3cre", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := creds.Verify(tt.username, tt.password)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnauthorized)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCredentials_VerifyWithHash(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)

	creds := Credentials{Username: "librarian", Password: "ignored", PasswordHash: hash}

	assert.NoError(t, creds.Verify("librarian", "s3cret"))
	assert.ErrorIs(t, creds.Verify("librarian", "ignored"), ErrUnauthorized)
	assert.ErrorIs(t, creds.Verify("reader", "s3cret"), ErrUnauthorized)
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)

	assert.NotEqual(t, "correct horse", hash)
	assert.True(t, VerifyPassword(hash, "correct horse"))
	assert.False(t, VerifyPassword(hash, "battery staple"))
}
