// Package auth resolves the calling principal from bearer tokens.
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	customerrors "github.com/axellelanca/qrlinks/internal/errors"
)

const issuer = "qrlinks"

// JWTAuthenticator issues and verifies HS256 tokens whose subject is the owner id.
type JWTAuthenticator struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTAuthenticator returns an authenticator. secret must not be empty.
func NewJWTAuthenticator(secret string, ttl time.Duration) (*JWTAuthenticator, error) {
	if secret == "" {
		return nil, errors.New("jwt secret must not be empty")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &JWTAuthenticator{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// IssueToken signs a token for owner.
func (a *JWTAuthenticator) IssueToken(owner string) (string, error) {
	if owner == "" {
		return "", errors.New("owner must not be empty")
	}
	now := a.now()
	claims := jwt.RegisteredClaims{
		Subject:   owner,
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Authenticate returns the owner carried by the request's bearer token.
// Any failure is reported as ErrUnauthenticated.
func (a *JWTAuthenticator) Authenticate(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(raw) == "" {
		return "", customerrors.ErrUnauthenticated
	}
	return a.ParseToken(strings.TrimSpace(raw))
}

// ParseToken verifies a raw token and returns its subject.
func (a *JWTAuthenticator) ParseToken(raw string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil || !token.Valid {
		return "", fmt.Errorf("%w: %v", customerrors.ErrUnauthenticated, err)
	}
	if claims.Subject == "" {
		return "", customerrors.ErrUnauthenticated
	}
	return claims.Subject, nil
}
