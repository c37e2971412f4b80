package middleware

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phresh/internal/delivery/api/response"
	domainerrors "phresh/internal/domain/errors"
	"phresh/internal/errors"
)

func handle(t *testing.T, err error) (*httptest.ResponseRecorder, response.ErrorResponse) {
	t.Helper()

	m := NewErrorMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))
	e := echo.New()
	rec := httptest.NewRecorder()
	m.HandleHTTPError(err, e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec))

	var body response.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return rec, body
}

func TestHandleHTTPError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantErr  string
	}{
		{"app error", errors.Wrap(domainerrors.ErrCleaningNotFound, "failed to load cleaning"), http.StatusNotFound, "CLEANING_NOT_FOUND"},
		{"forbidden", domainerrors.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{"echo error", echo.NewHTTPError(http.StatusMethodNotAllowed, "Method Not Allowed"), http.StatusMethodNotAllowed, "HTTP_ERROR"},
		{"unknown route", echo.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"unknown", errors.New("pq: connection refused"), http.StatusInternalServerError, "INTERNAL_ERROR"},
		{"transaction", fmt.Errorf("%w: commit: %w", domainerrors.ErrTransactionFailed, errors.New("connection refused")), http.StatusInternalServerError, "TRANSACTION_FAILED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := handle(t, tt.err)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantErr, body.Error.Code)
			assert.NotContains(t, rec.Body.String(), "connection refused")
		})
	}
}

func TestHandleHTTPError_Unauthorized(t *testing.T) {
	rec, body := handle(t, domainerrors.ErrUnauthenticated)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Bearer", rec.Header().Get(echo.HeaderWWWAuthenticate))
	assert.Equal(t, "Authentication was unsuccessful.", body.Error.Message)
	assert.Nil(t, body.Error.Details)
}

func TestHandleHTTPError_ServerErrorHidesDetails(t *testing.T) {
	_, body := handle(t, domainerrors.ErrCorruptCredential.WithDetails("salt is not base64"))

	assert.Equal(t, "CORRUPT_CREDENTIAL", body.Error.Code)
	assert.Nil(t, body.Error.Details)
}
