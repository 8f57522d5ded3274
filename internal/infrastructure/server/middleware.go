package server

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	httpHandlers "github.com/namorima/notion-todo/internal/adapters/http"
	"github.com/namorima/notion-todo/internal/ports"
)

const sessionKey = "session"

// authMiddleware requires a valid session token in the Authorization header
func (s *Server) authMiddleware(authService ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
			if authHeader == "" || tokenString == "" || tokenString == authHeader {
				return echo.NewHTTPError(http.StatusUnauthorized, httpHandlers.MsgNoToken)
			}

			payload, err := authService.ValidateToken(tokenString)
			if err != nil {
				s.logger.LogSecurityEvent("invalid_token", c.RealIP(), map[string]interface{}{
					"error":    err.Error(),
					"endpoint": c.Request().URL.Path,
				})
				return echo.NewHTTPError(http.StatusUnauthorized, httpHandlers.MsgInvalidToken)
			}

			c.Set(sessionKey, payload)

			return next(c)
		}
	}
}

