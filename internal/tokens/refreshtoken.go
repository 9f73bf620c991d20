package tokens

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/google/uuid"
)

func RefreshClaimsFromToken(tokenStr string, secret []byte) (*RefreshClaims, error) {
	var claims RefreshClaims
	if err := parse(tokenStr, &claims, secret); err != nil {
		return nil, err
	}
	if claims.Kind != KindRefresh {
		return nil, ErrWrongTokenKind
	}
	return &claims, nil
}

// Sha256Hex digests a refresh token for storage; the raw token never touches
// the database.
func Sha256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

func NewJTI() string { return uuid.NewString() }
