package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusByCode(t *testing.T) {
	tests := []struct {
		err    *AppError
		status int
	}{
		{Validation("bad"), http.StatusBadRequest},
		{ErrUnauthorized, http.StatusUnauthorized},
		{ErrNotProjectOwner, http.StatusForbidden},
		{ErrBidNotFound, http.StatusNotFound},
		{ErrDuplicateBid, http.StatusConflict},
		{Database(errors.New("conn reset"), "query failed"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.status, tt.err.HTTPStatus, tt.err.Error())
	}
}

func TestIs_MatchesWrappedSentinels(t *testing.T) {
	wrapped := fmt.Errorf("accept: %w", ErrProjectAlreadyAccepted)
	assert.ErrorIs(t, wrapped, ErrProjectAlreadyAccepted)
	assert.NotErrorIs(t, wrapped, ErrProjectNotOpen, "same code, different message")
	assert.True(t, IsConflict(wrapped))
	assert.False(t, IsNotFound(wrapped))

	cause := errors.New("pq: deadlock detected")
	dbErr := Database(cause, "failed to accept bid")
	assert.ErrorIs(t, dbErr, cause)
	assert.Equal(t, ErrCodeDatabaseError, CodeOf(dbErr))
	assert.Equal(t, ErrCodeInternal, CodeOf(cause))
}
