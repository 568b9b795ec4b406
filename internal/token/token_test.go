package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func TestIssueAndVerify(t *testing.T) {
	signed, err := Issue(42, secret)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	userID, err := Verify(signed, secret)
	require.NoError(t, err)
	require.Equal(t, uint(42), userID)
}

func TestVerifyExpired(t *testing.T) {
	claims := jwt.MapClaims{
		"sub": 42,
		"exp": time.Now().Add(-time.Minute).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)

	_, err = Verify(signed, secret)
	require.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerifyWrongSecret(t *testing.T) {
	signed, err := Issue(42, secret)
	require.NoError(t, err)

	_, err = Verify(signed, []byte("other-secret"))
	require.ErrorIs(t, err, ErrMalformedToken)
}

func TestVerifyGarbage(t *testing.T) {
	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		_, err := Verify(raw, secret)
		require.ErrorIs(t, err, ErrMalformedToken)
	}
}

func TestVerifyMissingSubject(t *testing.T) {
	claims := jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)

	_, err = Verify(signed, secret)
	require.ErrorIs(t, err, ErrMalformedToken)
}
