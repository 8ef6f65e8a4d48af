package auth

import "golang.org/x/crypto/bcrypt"

// dummyHash is compared against when login hits an unknown email, so that
// path costs the same as a real password check.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("mediplan-dummy-password"), bcrypt.DefaultCost)

// HashPassword hashes a plaintext password with bcrypt.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash compares a plaintext password with its stored hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// BurnPasswordCheck performs a throwaway hash comparison.
func BurnPasswordCheck(password string) {
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
}
