// Package auth issues and verifies the signed bearer tokens that carry user
// identity and role between requests. There is no server-side revocation:
// logout is client-side token deletion, and expiry is the only termination.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mediplan/api/internal/apperr"
)

const (
	// SessionTTL is the lifetime of a login/registration token.
	SessionTTL = 7 * 24 * time.Hour
	// ResetTokenTTL is the lifetime of a password-reset token.
	ResetTokenTTL = time.Hour
)

type Claims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Manager signs and validates tokens with an HS256 secret injected at startup.
type Manager struct {
	secret []byte
}

func NewManager(secret string) (*Manager, error) {
	if secret == "" {
		return nil, fmt.Errorf("auth: signing secret is not configured")
	}
	return &Manager{secret: []byte(secret)}, nil
}

// Issue creates a signed token embedding the user's identity and role.
func (m *Manager) Issue(userID, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify validates signature and expiry and returns the embedded claims.
func (m *Manager) Verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperr.ErrInvalidToken
	}
	return claims, nil
}
