package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediplan/api/internal/apperr"
)

func TestIssueAndVerify(t *testing.T) {
	m, err := NewManager("unit-test-secret")
	require.NoError(t, err)

	token, err := m.Issue("user-123", "doctor", SessionTTL)
	require.NoError(t, err)

	claims, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "doctor", claims.Role)
}

func TestVerify_ExpiredToken(t *testing.T) {
	m, err := NewManager("unit-test-secret")
	require.NoError(t, err)

	token, err := m.Issue("user-123", "patient", -time.Minute)
	require.NoError(t, err)

	_, err = m.Verify(token)
	assert.ErrorIs(t, err, apperr.ErrInvalidToken)
}

func TestVerify_WrongSecret(t *testing.T) {
	issuer, err := NewManager("secret-a")
	require.NoError(t, err)
	verifier, err := NewManager("secret-b")
	require.NoError(t, err)

	token, err := issuer.Issue("user-123", "admin", SessionTTL)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, apperr.ErrInvalidToken)
}

func TestVerify_Garbage(t *testing.T) {
	m, err := NewManager("unit-test-secret")
	require.NoError(t, err)

	_, err = m.Verify("not.a.token")
	assert.ErrorIs(t, err, apperr.ErrInvalidToken)
}

func TestNewManager_EmptySecret(t *testing.T) {
	_, err := NewManager("")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)

	assert.NotEqual(t, "s3cret-pass", hash)
	assert.True(t, CheckPasswordHash("s3cret-pass", hash))
	assert.False(t, CheckPasswordHash("wrong-pass", hash))
}
