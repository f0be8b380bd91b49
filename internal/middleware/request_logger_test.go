package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"pizzeria/internal/domain/model"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	e := echo.New()
	e.Use(RequestLogger(zap.New(core)))
	e.GET("/ok", func(c echo.Context) error {
		c.Set(CtxOwnerKey, model.CustomerOwner(3))
		return c.NoContent(http.StatusNoContent)
	})
	e.GET("/boom", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "down")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	entries := logs.All()
	require.Len(t, entries, 2)

	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "/ok", ctx["path"])
	assert.EqualValues(t, http.StatusNoContent, ctx["status"])
	assert.Equal(t, "customer:3", ctx["owner"])

	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.NotContains(t, entries[1].ContextMap(), "owner")
}
