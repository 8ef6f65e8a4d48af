package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUserJSON_NeverExposesCredentials(t *testing.T) {
	expiry := time.Now().Add(time.Hour)
	u := User{
		ID:               primitive.NewObjectID(),
		Email:            "u@example.com",
		Password:         "bcrypt-hash",
		FullName:         "U",
		Role:             RolePatient,
		ResetToken:       "reset-jwt",
		ResetTokenExpiry: &expiry,
	}

	raw, err := json.Marshal(u)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "bcrypt-hash")
	assert.NotContains(t, string(raw), "reset-jwt")

	raw, err = json.Marshal(u.Public())
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "bcrypt-hash")
	assert.NotContains(t, string(raw), "reset-jwt")
}

func TestStatusHelpers(t *testing.T) {
	for _, s := range []string{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled} {
		assert.True(t, ValidStatus(s), s)
	}
	assert.False(t, ValidStatus("tentative"))

	assert.True(t, TerminalStatus(StatusCompleted))
	assert.True(t, TerminalStatus(StatusCancelled))
	assert.False(t, TerminalStatus(StatusPending))
	assert.False(t, TerminalStatus(StatusConfirmed))
}
