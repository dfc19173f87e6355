package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeErrorCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"NOT_FOUND", ErrCodeNotFound},
		{"ALREADY_EXISTS", ErrCodeConflict},
		{"INVALID_PERIOD", ErrCodeBadRequest},
		{"MISSING_BOOK", ErrCodeUnprocessable},
		{"INCOMPLETE_OWNERSHIP", ErrCodeUnprocessable},
		{"SOURCE_FETCH_FAILED", ErrCodeUpstream},
		{"INVALID_CREDENTIALS", ErrCodeUnauthorized},
		{"ACCOUNT_LOCKED", ErrCodeLocked},
		{ErrCodeConflict, ErrCodeConflict},
		{"SOMETHING_NOVEL", ErrCodeInternal},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeErrorCode(tt.in), tt.in)
	}
}

func TestGetHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, GetHTTPStatus(ErrCodeNotFound))
	assert.Equal(t, http.StatusBadGateway, GetHTTPStatus(ErrCodeUpstream))
	assert.Equal(t, http.StatusLocked, GetHTTPStatus(ErrCodeLocked))
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus("NO_SUCH_CODE"))
}

func TestNewListMeta(t *testing.T) {
	meta := NewListMeta(2, 20, 45)
	assert.Equal(t, 3, meta.TotalPages)
	assert.Equal(t, int64(45), meta.Total)

	assert.Equal(t, 0, NewListMeta(1, 0, 45).TotalPages)
}
