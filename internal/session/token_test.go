package session

import (
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TWRT/todo-client/internal/testhelpers"
)

var now = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func TestDecodePayload(t *testing.T) {
	token := testhelpers.SignToken(t, jwt.MapClaims{"sub": "u1", "exp": now.Unix()})

	claims, err := DecodePayload(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims["sub"])
}

func segment(s string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(s))
}

func TestDecodePayloadIgnoresHeader(t *testing.T) {
	payload := segment(`{"sub":"u1","exp":1999999999}`)
	at := time.Unix(1700000000, 0)

	cases := map[string]string{
		"hs256 header":  segment(`{"alg":"HS256","typ":"JWT"}`),
		"no alg":        segment(`{"typ":"JWT"}`),
		"unknown alg":   segment(`{"alg":"XX999"}`),
		"opaque header": "not-json-at-all",
		"empty header":  "",
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			token := header + "." + payload + ".sig"

			claims, err := DecodePayload(token)
			require.NoError(t, err)
			assert.Equal(t, "u1", claims["sub"])
			assert.False(t, IsExpired(token, at))
		})
	}
}

func TestDecodePayloadMalformed(t *testing.T) {
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))

	cases := map[string]string{
		"empty":          "",
		"single segment": "abc",
		"null payload":   header + "." + base64.RawURLEncoding.EncodeToString([]byte("null")) + ".sig",
		"bad base64":     header + ".!!!.sig",
		"payload not json": header + "." +
			base64.RawURLEncoding.EncodeToString([]byte("not json")) + ".sig",
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodePayload(token)
			assert.True(t, errors.Is(err, ErrMalformedToken))
		})
	}
}

func TestIsExpired(t *testing.T) {
	cases := []struct {
		name    string
		token   string
		expired bool
	}{
		{"future exp", testhelpers.TokenExpiringAt(t, now.Add(time.Minute)), false},
		{"past exp", testhelpers.TokenExpiringAt(t, now.Add(-time.Minute)), true},
		{"exp equals now", testhelpers.TokenExpiringAt(t, now), true},
		{"missing exp", testhelpers.SignToken(t, jwt.MapClaims{"sub": "u1"}), true},
		{"exp not a number", testhelpers.SignToken(t, jwt.MapClaims{"exp": "tomorrow"}), true},
		{"garbage", "not-a-token", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expired, IsExpired(tc.token, now))
		})
	}
}

func TestUserID(t *testing.T) {
	withUserId := testhelpers.SignToken(t, jwt.MapClaims{"sub": "sub-1", "userId": "user-1"})
	id, err := UserID(withUserId)
	require.NoError(t, err)
	assert.Equal(t, "user-1", id)

	subOnly := testhelpers.SignToken(t, jwt.MapClaims{"sub": "sub-1"})
	id, err = UserID(subOnly)
	require.NoError(t, err)
	assert.Equal(t, "sub-1", id)
}
