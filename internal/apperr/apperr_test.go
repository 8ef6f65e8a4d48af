package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{ErrValidation, http.StatusBadRequest},
		{ErrInvalidReference, http.StatusBadRequest},
		{ErrPastDateTime, http.StatusBadRequest},
		{ErrInvalidCredentials, http.StatusUnauthorized},
		{ErrInvalidToken, http.StatusUnauthorized},
		{ErrForbidden, http.StatusForbidden},
		{ErrNotFound, http.StatusNotFound},
		{ErrDuplicateIdentity, http.StatusConflict},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Status(tc.err), tc.err.Error())
	}
}

func TestStatus_WrappedErrors(t *testing.T) {
	err := fmt.Errorf("%w: appointment gone", ErrNotFound)
	assert.Equal(t, http.StatusNotFound, Status(err))
	assert.False(t, Internal(err))
	assert.True(t, Internal(errors.New("unexpected")))
}
