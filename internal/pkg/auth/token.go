// Package auth verifies the bearer credentials presented to the order API.
// Tokens are HS256-signed JWTs carrying at minimum the user_id and is_staff
// claims, issued by the identity service with a shared secret.
package auth

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// ErrUnauthenticated is the classification sentinel for every credential
// failure. Callers only ever see this; the wrapped sentinels below exist
// for diagnostic logging.
var ErrUnauthenticated = errors.New("unauthenticated")

var (
	ErrTokenMissing   = fmt.Errorf("%w: token is missing", ErrUnauthenticated)
	ErrTokenMalformed = fmt.Errorf("%w: token is malformed", ErrUnauthenticated)
	ErrTokenExpired   = fmt.Errorf("%w: token has expired", ErrUnauthenticated)
	ErrTokenInvalid   = fmt.Errorf("%w: token is invalid", ErrUnauthenticated)
)

// Caller is the identity extracted from a verified token.
type Caller struct {
	ID      string
	IsStaff bool
}

// TokenVerifier validates bearer tokens against the shared signing secret.
// It has no side effects and is safe for concurrent use.
type TokenVerifier struct {
	secret []byte
}

// NewTokenVerifier creates a verifier for tokens signed with the given secret.
func NewTokenVerifier(secret string) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret)}
}

// Verify parses and validates a raw token string and returns the caller
// identity. Missing, malformed, expired and badly signed tokens fail with
// distinct sentinel errors, all of which unwrap to ErrUnauthenticated.
func (v *TokenVerifier) Verify(raw string) (Caller, error) {
	if raw == "" {
		return Caller{}, ErrTokenMissing
	}

	parsed, err := jwt.Parse(raw, func(_ *jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return Caller{}, ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenExpired):
			return Caller{}, ErrTokenExpired
		default:
			return Caller{}, ErrTokenInvalid
		}
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Caller{}, ErrTokenInvalid
	}

	userID := claimAsString(claims["user_id"])
	if userID == "" {
		return Caller{}, ErrTokenInvalid
	}

	isStaff, _ := claims["is_staff"].(bool)
	return Caller{ID: userID, IsStaff: isStaff}, nil
}

// claimAsString normalizes the user_id claim, which upstream services encode
// either as a string or as a JSON number.
func claimAsString(claim any) string {
	switch v := claim.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatInt(int64(v), 10)
	default:
		return ""
	}
}
