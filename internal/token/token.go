package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Tokens carry only the user id and an expiry fixed at issuance. Permissions
// are never embedded: they are re-read from the store on every request.
const TTL = time.Hour

var (
	ErrExpiredToken   = errors.New("token expired")
	ErrMalformedToken = errors.New("invalid token")
)

func Issue(userID uint, secret []byte) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": now.Add(TTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret)
}

func Verify(raw string, secret []byte) (uint, error) {
	t, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrMalformedToken
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrExpiredToken
		}
		return 0, ErrMalformedToken
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok || !t.Valid {
		return 0, ErrMalformedToken
	}

	sub, ok := claims["sub"].(float64)
	if !ok {
		return 0, ErrMalformedToken
	}

	return uint(sub), nil
}
