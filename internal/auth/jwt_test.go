package auth

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	customerrors "github.com/axellelanca/qrlinks/internal/errors"
)

func TestIssueAndAuthenticate(t *testing.T) {
	a, err := NewJWTAuthenticator("s3cret", time.Hour)
	require.NoError(t, err)

	token, err := a.IssueToken("alice")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/api/v1/links", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	owner, err := a.Authenticate(req)
	require.NoError(t, err)
	assert.Equal(t, "alice", owner)
}

func TestAuthenticate_Rejects(t *testing.T) {
	a, err := NewJWTAuthenticator("s3cret", time.Hour)
	require.NoError(t, err)
	other, err := NewJWTAuthenticator("another-secret", time.Hour)
	require.NoError(t, err)

	forged, err := other.IssueToken("alice")
	require.NoError(t, err)

	expiredIssuer, err := NewJWTAuthenticator("s3cret", time.Minute)
	require.NoError(t, err)
	expiredIssuer.now = func() time.Time { return time.Now().Add(-time.Hour) }
	expired, err := expiredIssuer.IssueToken("alice")
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "alice", Issuer: issuer}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic YWxpY2U6cHc="},
		{"empty bearer", "Bearer "},
		{"garbage", "Bearer not.a.token"},
		{"wrong secret", "Bearer " + forged},
		{"expired", "Bearer " + expired},
		{"alg none", "Bearer " + none},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/v1/links", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			_, err := a.Authenticate(req)
			assert.ErrorIs(t, err, customerrors.ErrUnauthenticated)
		})
	}
}

func TestNewJWTAuthenticator_RequiresSecret(t *testing.T) {
	_, err := NewJWTAuthenticator("", time.Hour)
	assert.Error(t, err)

	a, err := NewJWTAuthenticator("x", time.Hour)
	require.NoError(t, err)
	_, err = a.IssueToken("")
	assert.Error(t, err)
}
