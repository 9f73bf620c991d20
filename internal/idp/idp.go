package idp

import (
	"context"
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

var ErrAssertionInvalid = errors.New("identity assertion invalid")

// Identity is what a verified provider assertion proves: a stable subject id
// and the phone number the provider confirmed. Phone is raw provider format
// (usually +91...), callers normalize it.
type Identity struct {
	Subject string
	Phone   string
}

// Client verifies externally issued identity assertions (federated phone
// auth). Constructed once at startup and injected; implementations must be
// safe for concurrent use.
type Client interface {
	VerifyIDToken(ctx context.Context, idToken string) (*Identity, error)
}

type providerClaims struct {
	PhoneNumber string `json:"phone_number"`
	jwt.RegisteredClaims
}

// TokenVerifier checks provider ID tokens signed with a shared HS256 secret.
type TokenVerifier struct {
	secret []byte
}

func NewTokenVerifier(secret []byte) *TokenVerifier {
	return &TokenVerifier{secret: secret}
}

func (v *TokenVerifier) VerifyIDToken(ctx context.Context, idToken string) (*Identity, error) {
	var claims providerClaims
	tkn, err := jwt.ParseWithClaims(idToken, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return v.secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, ErrAssertionInvalid
	}
	if claims.Subject == "" {
		return nil, ErrAssertionInvalid
	}
	return &Identity{Subject: claims.Subject, Phone: claims.PhoneNumber}, nil
}
