package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sumire/taskboard/internal/domain"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", domain.ErrNotFound, http.StatusNotFound, "not_found"},
		{"wrapped not found", fmt.Errorf("lookup: %w", domain.ErrNotFound), http.StatusNotFound, "not_found"},
		{"invalid input", domain.ErrInvalidInput, http.StatusBadRequest, "invalid_input"},
		{"validation", &domain.ValidationError{Field: "name", Message: "must not be empty"}, http.StatusBadRequest, "validation_error"},
		{"echo 405", echo.NewHTTPError(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed, "Method Not Allowed"},
		{"unexpected", errors.New("db on fire"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, apiErr := mapError(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, apiErr.Code)
		})
	}
}

func TestMapErrorValidationDetails(t *testing.T) {
	_, apiErr := mapError(&domain.ValidationError{Field: "title", Message: "must not be empty"})
	require.Len(t, apiErr.Details, 1)
	assert.Equal(t, "title", apiErr.Details[0].Field)
}

func TestHTTPErrorHandlerWritesEnvelope(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/projects/9", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	HTTPErrorHandler(domain.ErrNotFound, c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t,
		`{"error":{"code":"not_found","message":"The requested resource was not found"}}`,
		rec.Body.String())
}
