package tokens

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

const (
	KindAccess  = "access"
	KindRefresh = "refresh"
)

var (
	ErrTokenInvalid   = errors.New("token invalid")
	ErrTokenExpired   = errors.New("token expired")
	ErrWrongTokenKind = errors.New("wrong token kind")
)

// AccessClaims is the fixed claim set of an access token. Validation is a
// typed decode, never a key lookup.
type AccessClaims struct {
	Phone    string `json:"phone"`
	Role     string `json:"role"`
	IsWorker bool   `json:"is_worker"`
	Kind     string `json:"kind"`
	jwt.RegisteredClaims
}

type RefreshClaims struct {
	Phone string `json:"phone"`
	Kind  string `json:"kind"`
	jwt.RegisteredClaims
}

func parse(tokenStr string, claims jwt.Claims, secret []byte) error {
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrTokenExpired
		}
		return ErrTokenInvalid
	}
	if !tkn.Valid {
		return ErrTokenInvalid
	}
	return nil
}
