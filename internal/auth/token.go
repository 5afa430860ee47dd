package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenMissing is returned when there is no token candidate at all.
	ErrTokenMissing = errors.New("token missing")
	// ErrInvalidToken covers malformed tokens, bad signatures and tokens without an id claim.
	ErrInvalidToken = errors.New("token invalid")
	// ErrTokenExpired is returned for any token whose expiry has passed, signed correctly or not.
	ErrTokenExpired = errors.New("token expired")
)

// TokenCodec issues and verifies identity tokens with a single secret fixed at construction.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenCodec builds a codec.
func NewTokenCodec(secret string, ttl time.Duration) *TokenCodec {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TokenCodec{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Claims describes the JWT payload.
type Claims struct {
	Username string `json:"username,omitempty"`
	ID       string `json:"id,omitempty"`
	jwt.RegisteredClaims
}

// Issue builds and signs a token for the subject.
func (tc *TokenCodec) Issue(subjectID, username string) (string, time.Time, error) {
	now := tc.now()
	expiresAt := now.Add(tc.ttl)
	claims := &Claims{
		Username: username,
		ID:       subjectID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tc.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// Verify validates tokenStr and returns the subject id it carries.
func (tc *TokenCodec) Verify(tokenStr string) (string, error) {
	if tokenStr == "" {
		return "", ErrTokenMissing
	}

	claims := &Claims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(tc.now),
	)
	_, err := parser.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (interface{}, error) {
		return tc.secret, nil
	})
	if err != nil {
		// Claims are decoded before the signature is checked, so expiry is known here even
		// when the signature does not match.
		if claims.ExpiresAt != nil && !tc.now().Before(claims.ExpiresAt.Time) {
			return "", fmt.Errorf("%w: %v", ErrTokenExpired, err)
		}
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims.ID == "" {
		return "", fmt.Errorf("%w: id claim missing", ErrInvalidToken)
	}
	return claims.ID, nil
}
