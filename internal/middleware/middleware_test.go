package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deppfellow/petstore/internal/config"
	"github.com/deppfellow/petstore/internal/errs"
	"github.com/deppfellow/petstore/internal/lib/job"
	"github.com/deppfellow/petstore/internal/server"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, mutate func(*config.Config)) *server.Server {
	t.Helper()

	cfg, err := config.Defaults()
	require.NoError(t, err)
	if mutate != nil {
		mutate(cfg)
	}

	logger := zerolog.Nop()
	return &server.Server{Config: cfg, Logger: &logger}
}

func newTestEcho(s *server.Server) (*echo.Echo, *Middlewares) {
	mw := NewMiddlewares(s)

	e := echo.New()
	e.HTTPErrorHandler = mw.Global.GlobalErrorHandler
	e.Use(RequestID(), mw.ContextEnhancer.EnhanceContext())
	return e, mw
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errs.HTTPError {
	t.Helper()
	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRequestID(t *testing.T) {
	e, _ := newTestEcho(newTestServer(t, nil))

	var seenCtxID string
	e.GET("/ping", func(c echo.Context) error {
		seenCtxID = job.RequestIDFromContext(c.Request().Context())
		return c.String(http.StatusOK, GetRequestID(c))
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Body.String())
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
	assert.Equal(t, "abc-123", seenCtxID)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Len(t, rec.Header().Get(RequestIDHeader), 36)
}

func TestRequireAPIKey(t *testing.T) {
	s := newTestServer(t, func(cfg *config.Config) {
		cfg.Auth.APIKey = "special-key"
	})
	e, mw := newTestEcho(s)
	e.DELETE("/pet/:petId", func(c echo.Context) error {
		assert.True(t, IsAPIKeyAuthenticated(c))
		return c.NoContent(http.StatusOK)
	}, mw.Auth.RequireAPIKey())

	tests := []struct {
		name   string
		key    string
		status int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"wrong", "nope", http.StatusUnauthorized},
		{"valid", "special-key", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodDelete, "/pet/1", nil)
			if tt.key != "" {
				req.Header.Set(APIKeyHeader, tt.key)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusUnauthorized {
				assert.Equal(t, "UNAUTHORIZED", decodeError(t, rec).Code)
			}
		})
	}
}

func TestRequireAPIKey_Disabled(t *testing.T) {
	e, mw := newTestEcho(newTestServer(t, nil))
	e.DELETE("/pet/:petId", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, mw.Auth.RequireAPIKey())

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/pet/1", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, func(cfg *config.Config) {
		cfg.API.RateLimit = 0.001
		cfg.API.RateBurst = 2
	})
	e, mw := newTestEcho(s)
	e.Use(mw.RateLimit.Limit())
	e.GET("/pet/:petId", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/pet/1", nil))
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestGlobalErrorHandler(t *testing.T) {
	e, _ := newTestEcho(newTestServer(t, nil))
	e.GET("/http-error", func(c echo.Context) error {
		return fmt.Errorf("wrapped: %w", errs.NewNotFoundError("Pet not found", true, nil))
	})
	e.GET("/pg-error", func(c echo.Context) error {
		return fmt.Errorf("table:pets: put 1: %w", &pgconn.PgError{Code: "23514", ColumnName: "id"})
	})
	e.GET("/plain-error", func(c echo.Context) error {
		return errors.New("boom")
	})

	tests := []struct {
		path     string
		status   int
		code     string
		override bool
	}{
		{"/http-error", http.StatusNotFound, "NOT_FOUND", true},
		{"/pg-error", http.StatusBadRequest, "PET_INVALID", true},
		{"/plain-error", http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", false},
		{"/missing", http.StatusNotFound, "NOT_FOUND", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.status, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, tt.code, body.Code)
			assert.Equal(t, tt.status, body.Status)
			assert.Equal(t, tt.override, body.Override)
		})
	}
}

func TestGlobalErrorHandler_MethodNotAllowed(t *testing.T) {
	e, _ := newTestEcho(newTestServer(t, nil))
	e.GET("/pet/:petId", func(c echo.Context) error { return nil })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/pet/1", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "METHOD_NOT_ALLOWED", decodeError(t, rec).Code)
}
