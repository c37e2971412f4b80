package context

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"phresh/internal/domain/entity"
)

func TestRequestIDHelpers(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	generated := GetRequestID(c)
	assert.NotEmpty(t, generated)

	assert.NotEqual(t, generated, GetRequestID(c), "an unset ID is not cached")

	SetRequestID(c, "req-1")
	assert.Equal(t, "req-1", GetRequestID(c))
}

func TestLoggerHelpers(t *testing.T) {
	fallback := slog.New(slog.NewTextHandler(io.Discard, nil))
	scoped := fallback.With(slog.String("request_id", "req-1"))

	assert.Same(t, fallback, GetLoggerOrDefault(context.Background(), fallback))
	assert.Same(t, scoped, GetLoggerOrDefault(WithLogger(context.Background(), scoped), fallback))
	assert.Same(t, fallback, GetLoggerOrDefault(WithLogger(context.Background(), nil), fallback))
}

func TestCurrentUserHelpers(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	_, ok := GetCurrentUser(c)
	assert.False(t, ok)

	user := &entity.User{ID: 7, Username: "abc"}
	SetCurrentUser(c, user)

	got, ok := GetCurrentUser(c)
	assert.True(t, ok)
	assert.Same(t, user, got)

	SetCurrentUser(c, nil)
	_, ok = GetCurrentUser(c)
	assert.False(t, ok)
}
