package hash

import "golang.org/x/crypto/bcrypt"

// HashCode hashes a one-time code before it is stored. Codes are short-lived
// but still never persisted in plaintext.
func HashCode(code string) (string, error) {
	hashbytes, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashbytes), nil
}

func CheckCode(hash, code string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) == nil
}
