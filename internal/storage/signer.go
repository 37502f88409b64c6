package storage

import (
	"fmt"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"

	dErrors "balangay/pkg/domain-errors"
)

// Signer issues and verifies short-lived signed URL tokens. The token is an
// HS256 JWT carrying the blob path; files are never served by bare path.
type Signer struct {
	key      []byte
	ttl      time.Duration
	basePath string
	now      func() time.Time
}

type urlClaims struct {
	Path string `json:"path"`
	jwt.RegisteredClaims
}

// NewSigner constructs a signer. basePath is the download endpoint the
// signed URL points at, typically "/files".
func NewSigner(key []byte, ttl time.Duration, basePath string) *Signer {
	return &Signer{key: key, ttl: ttl, basePath: basePath, now: time.Now}
}

// Sign returns a time-limited URL for one stored blob.
func (s *Signer) Sign(path string) (string, error) {
	now := s.now()
	claims := urlClaims{
		Path: path,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("sign url token: %w", err)
	}
	return s.basePath + "?token=" + url.QueryEscape(token), nil
}

// Verify checks a token and returns the blob path it grants access to.
func (s *Signer) Verify(token string) (string, error) {
	claims := &urlClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid {
		return "", dErrors.New(dErrors.CodeUnauthorized, "signed URL is invalid or expired")
	}
	if claims.Path == "" {
		return "", dErrors.New(dErrors.CodeUnauthorized, "signed URL is missing its file path")
	}
	return claims.Path, nil
}
