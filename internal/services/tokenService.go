package services

import (
	"fmt"
	"time"

	"github.com/flowfunnels/flowfunnels-api/internal/apperr"
	"github.com/golang-jwt/jwt/v5"
)

// TokenIssuer signs and verifies bearer tokens. The signing algorithm is
// resolved once at construction; only the HMAC family is supported.
type TokenIssuer struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
}

func NewTokenIssuer(secret, algorithm string, ttl time.Duration) (*TokenIssuer, error) {
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("unknown signing algorithm %q", algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("signing algorithm %q is not an HMAC method", algorithm)
	}

	return &TokenIssuer{
		secret: []byte(secret),
		method: method,
		ttl:    ttl,
	}, nil
}

// Issue generates a signed token carrying the user ID as subject.
func (t *TokenIssuer) Issue(userID string) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(t.ttl).Unix(),
	}

	token := jwt.NewWithClaims(t.method, claims)
	return token.SignedString(t.secret)
}

// Verify checks the signature and expiry and returns the token subject.
// There is no refresh mechanism; expired tokens require a new login.
func (t *TokenIssuer) Verify(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{t.method.Alg()}))
	if err != nil || !token.Valid {
		return "", fmt.Errorf("%w: invalid token", apperr.ErrUnauthenticated)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("%w: invalid token claims", apperr.ErrUnauthenticated)
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", fmt.Errorf("%w: invalid token payload", apperr.ErrUnauthenticated)
	}

	return sub, nil
}
