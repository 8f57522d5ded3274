package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/namorima/notion-todo/internal/domain/entities"
	"github.com/namorima/notion-todo/internal/infrastructure/logger"
	"github.com/namorima/notion-todo/internal/ports"
)

// AuthHandler handles the shared-password login
type AuthHandler struct {
	authService ports.AuthService
	logger      *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService ports.AuthService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// LoginData is the data of a successful login
type LoginData struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"`
}

// Login godoc
// @Summary Log in with the shared password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ports.LoginRequest true "Password"
// @Success 200 {object} Envelope{data=LoginData}
// @Failure 400 {object} Envelope
// @Failure 401 {object} Envelope
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req ports.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, MsgInvalidRequest)
	}

	if err := c.Validate(&req); err != nil {
		return err
	}

	response, err := h.authService.Login(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, entities.ErrInvalidPassword) {
			h.logger.LogSecurityEvent("login_failed", c.RealIP(), map[string]interface{}{
				"user_agent": c.Request().UserAgent(),
			})
		}
		return err
	}

	return okWithMessage(c, LoginData{
		Token:     response.Token,
		ExpiresAt: response.ExpiresAt.UTC().Format(time.RFC3339),
	}, response.Message)
}

// bindID reads the target id of a done or delete action from the body or
// the query string.
func bindID(c echo.Context) (string, error) {
	var req ports.IDRequest
	if err := c.Bind(&req); err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, MsgInvalidRequest)
	}
	if req.ID == "" {
		req.ID = c.QueryParam("id")
	}
	if err := c.Validate(&req); err != nil {
		return "", err
	}
	return req.ID, nil
}
