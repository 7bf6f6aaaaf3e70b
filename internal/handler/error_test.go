package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aidar/taskhive/internal/domain"
)

func TestHandleError(t *testing.T) {
	tests := []struct {
		err  error
		want int
		code string
	}{
		{domain.ErrTaskNotFound, http.StatusNotFound, "NOT_FOUND"},
		{fmt.Errorf("%w: only team creator can remove members", domain.ErrForbidden), http.StatusForbidden, "FORBIDDEN"},
		{domain.ErrInvalidAssignment, http.StatusBadRequest, "INVALID_ASSIGNMENT"},
		{domain.ErrAlreadyMember, http.StatusBadRequest, "ALREADY_MEMBER"},
		{domain.ErrCannotRemoveCreator, http.StatusBadRequest, "CANNOT_REMOVE_CREATOR"},
		{domain.ErrEmailTaken, http.StatusConflict, "EMAIL_TAKEN"},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "UNAUTHORIZED"},
		{errors.New("connection reset"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)

			HandleError(rec, req, tt.err)

			assert.Equal(t, tt.want, rec.Code)
			assert.Contains(t, rec.Body.String(), `"code":"`+tt.code+`"`)
		})
	}
}

func TestHandleError_HidesInternalDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("pq: password=secret"))

	assert.NotContains(t, rec.Body.String(), "secret")
}
