package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func TestGenerateAndParse(t *testing.T) {
	token, err := GenerateToken(secret, 7, "user7@example.com", TokenTypeAccess, time.Minute)
	require.NoError(t, err)

	claims, err := ParseToken(secret, TokenTypeAccess, token)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), claims.UserID)
	assert.Equal(t, "user7@example.com", claims.Email)
}

func TestParseRejects(t *testing.T) {
	valid, err := GenerateToken(secret, 7, "a@b.c", TokenTypeAccess, time.Minute)
	require.NoError(t, err)
	expired, err := GenerateToken(secret, 7, "a@b.c", TokenTypeAccess, -time.Minute)
	require.NoError(t, err)
	refresh, err := GenerateToken(secret, 7, "a@b.c", "refresh", time.Minute)
	require.NoError(t, err)
	anonymous, err := GenerateToken(secret, 0, "a@b.c", TokenTypeAccess, time.Minute)
	require.NoError(t, err)

	cases := map[string]struct {
		secret []byte
		token  string
	}{
		"wrong secret": {[]byte("other"), valid},
		"expired":      {secret, expired},
		"wrong type":   {secret, refresh},
		"no user":      {secret, anonymous},
		"garbage":      {secret, "not-a-token"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseToken(tc.secret, TokenTypeAccess, tc.token)
			assert.Error(t, err)
		})
	}
}
