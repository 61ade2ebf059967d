package testhelpers

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var TestSecret = []byte("dev-secret")

func SignToken(t testing.TB, claims jwt.MapClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(TestSecret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

// TokenExpiringAt signs a token for sub "u1" with the given exp.
func TokenExpiringAt(t testing.TB, exp time.Time) string {
	t.Helper()

	return SignToken(t, jwt.MapClaims{
		"sub": "u1",
		"exp": exp.Unix(),
		"iat": exp.Add(-time.Hour).Unix(),
	})
}
