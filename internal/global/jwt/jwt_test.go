package jwt

import (
	"testing"
	"time"

	"community-portal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestCreateAndParseToken(t *testing.T) {
	memberID := uint(7)
	token, err := CreateToken(Payload{UserID: 3, Email: "a@example.com", Role: "Member", MemberID: &memberID})
	require.NoError(t, err)

	claims, ok := ParseToken(token)
	require.True(t, ok)
	require.EqualValues(t, 3, claims.UserID)
	require.Equal(t, "3", claims.Subject)
	require.Equal(t, &memberID, claims.MemberID)
	require.WithinDuration(t, time.Now().Add(time.Duration(config.Get().JWT.AccessExpire)*time.Second), claims.ExpiresAt.Time, time.Minute)
}

func TestParseTokenRejects(t *testing.T) {
	secret := []byte(config.Get().JWT.AccessSecret)
	sign := func(method jwt.SigningMethod, key any, claims Claims) string {
		s, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return s
	}
	valid := jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}

	for name, token := range map[string]string{
		"garbage":      "a.b.c",
		"expired":      sign(jwt.SigningMethodHS256, secret, Claims{Payload: Payload{UserID: 1}, RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Second))}}),
		"no expiry":    sign(jwt.SigningMethodHS256, secret, Claims{Payload: Payload{UserID: 1}}),
		"wrong key":    sign(jwt.SigningMethodHS256, []byte("other"), Claims{Payload: Payload{UserID: 1}, RegisteredClaims: valid}),
		"wrong alg":    sign(jwt.SigningMethodHS512, secret, Claims{Payload: Payload{UserID: 1}, RegisteredClaims: valid}),
		"missing user": sign(jwt.SigningMethodHS256, secret, Claims{RegisteredClaims: valid}),
		"none alg":     sign(jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, Claims{Payload: Payload{UserID: 1}, RegisteredClaims: valid}),
	} {
		_, ok := ParseToken(token)
		require.False(t, ok, name)
	}
}
