package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrMalformedToken = errors.New("malformed token")

var parser = jwt.NewParser(jwt.WithPaddingAllowed())

// DecodePayload returns the claims segment of a JWT-style token. Only the
// middle segment is read; the header and signature are ignored.
func DecodePayload(token string) (jwt.MapClaims, error) {
	parts := strings.Split(token, ".")
	if len(parts) < 2 {
		return nil, fmt.Errorf("%w: expected dot-separated segments", ErrMalformedToken)
	}

	payload, err := parser.DecodeSegment(parts[1])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	claims := jwt.MapClaims{}
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	if claims == nil {
		return nil, fmt.Errorf("%w: payload is not an object", ErrMalformedToken)
	}
	return claims, nil
}

// ExpiresAt returns the exp claim. A token without one is malformed.
func ExpiresAt(token string) (time.Time, error) {
	claims, err := DecodePayload(token)
	if err != nil {
		return time.Time{}, err
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	if exp == nil {
		return time.Time{}, fmt.Errorf("%w: missing exp claim", ErrMalformedToken)
	}
	return exp.Time, nil
}

// IsExpired reports whether the token can no longer be used at now.
// Anything that cannot be decoded counts as expired.
func IsExpired(token string, now time.Time) bool {
	exp, err := ExpiresAt(token)
	if err != nil {
		return true
	}
	return exp.Unix() <= now.Unix()
}

// UserID reads the userId claim, falling back to sub.
func UserID(token string) (string, error) {
	claims, err := DecodePayload(token)
	if err != nil {
		return "", err
	}
	if id, ok := claims["userId"].(string); ok && id != "" {
		return id, nil
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	return sub, nil
}
