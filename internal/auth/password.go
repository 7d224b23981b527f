package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"

	"carehub/internal/model"
)

// BcryptCost is the work factor for every freshly hashed credential.
const BcryptCost = 10

// HashPassword returns the bcrypt digest of plain.
func HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword checks presented against a stored credential of the given scheme.
// Legacy plain credentials are compared in constant time; unknown schemes never match.
func VerifyPassword(scheme model.CredentialScheme, stored, presented string) bool {
	switch scheme {
	case model.CredentialBcrypt:
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(presented)) == nil
	case model.CredentialPlain:
		return subtle.ConstantTimeCompare([]byte(stored), []byte(presented)) == 1
	default:
		return false
	}
}
