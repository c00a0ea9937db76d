package security

import "golang.org/x/crypto/bcrypt"

// HashPassword derives a salted, adaptive digest from the plaintext. The salt
// is embedded in the digest, so nothing else needs storing. Deliberately slow;
// callers reject empty plaintext before getting here.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPasswordHash reports whether the plaintext matches the stored digest.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
