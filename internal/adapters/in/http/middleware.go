package http

import (
	"log/slog"
	"net/http"
	"strings"

	"orders/internal/pkg/auth"

	"github.com/labstack/echo/v4"
)

// callerContextKey is the echo context key the middleware stores the
// verified caller under.
const callerContextKey = "caller"

// bearerAuth verifies the Authorization header and stores the caller
// identity in the request context. Every credential failure answers 401;
// the distinct token failures are kept apart only in the log.
func bearerAuth(verifier *auth.TokenVerifier, logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			raw := bearerToken(ctx.Request().Header.Get("Authorization"))

			caller, err := verifier.Verify(raw)
			if err != nil {
				logger.Info("request rejected",
					"path", ctx.Path(),
					"reason", err.Error())
				return ctx.JSON(http.StatusUnauthorized, ErrorBody{Error: "unauthenticated"})
			}

			ctx.Set(callerContextKey, caller)
			return next(ctx)
		}
	}
}

// bearerToken extracts the token from an "Authorization: Bearer x" header.
func bearerToken(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}

// callerFrom reads the verified caller stored by bearerAuth.
func callerFrom(ctx echo.Context) auth.Caller {
	caller, _ := ctx.Get(callerContextKey).(auth.Caller)
	return caller
}
