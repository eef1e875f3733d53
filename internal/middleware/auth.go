package middleware

import (
	"crypto/subtle"
	"errors"

	"github.com/deppfellow/petstore/internal/errs"
	"github.com/deppfellow/petstore/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// APIKeyHeader is the header clients send the API key in.
const APIKeyHeader = "api_key"

type AuthMiddleware struct {
	server *server.Server
}

func NewAuthMiddleware(s *server.Server) *AuthMiddleware {
	return &AuthMiddleware{
		server: s,
	}
}

// RequireAPIKey rejects requests whose api_key header does not match
// auth.api_key. With no key configured every request passes.
func (auth *AuthMiddleware) RequireAPIKey() echo.MiddlewareFunc {
	expected := []byte(auth.server.Config.Auth.APIKey)

	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		Skipper: func(echo.Context) bool {
			return len(expected) == 0
		},
		KeyLookup: "header:" + APIKeyHeader,
		Validator: func(key string, c echo.Context) (bool, error) {
			if subtle.ConstantTimeCompare([]byte(key), expected) != 1 {
				return false, nil
			}
			c.Set(APIKeyAuthKey, true)
			return true, nil
		},
		ErrorHandler: func(err error, c echo.Context) error {
			GetLogger(c).Warn().
				Err(err).
				Str("function", "RequireAPIKey").
				Msg("api key rejected")

			var missing *middleware.ErrKeyAuthMissing
			if errors.As(err, &missing) {
				return errs.NewUnauthorizedError("Missing api_key header", true)
			}
			return errs.NewUnauthorizedError("Invalid api_key", true)
		},
	})
}
