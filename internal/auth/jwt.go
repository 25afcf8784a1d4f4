// Package auth issues and verifies the signed session tokens carried in the
// auth_token and admin_token cookies. Tokens are stateless: validity is purely
// signature plus expiry, there is no server-side session store.
package auth

import (
	"errors"
	"time"

	"github.com/Saipoo/foodorder/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// TokenValidity is how long a session token stays usable after login.
const TokenValidity = 7 * 24 * time.Hour

var ErrInvalidToken = errors.New("invalid token")

// Claims binds a token to a principal id and kind. The kind claim is what
// keeps customer tokens out of admin routes and vice versa.
type Claims struct {
	jwt.RegisteredClaims
	PrincipalID string               `json:"principal_id"`
	Kind        domain.PrincipalKind `json:"kind"`
}

func GenerateToken(principalID string, kind domain.PrincipalKind, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		PrincipalID: principalID,
		Kind:        kind,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
