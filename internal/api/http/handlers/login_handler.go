package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bloglist/internal/api/dto"
	"github.com/spec-kit/bloglist/internal/service"
)

// LoginHandler exchanges credentials for a token.
type LoginHandler struct {
	auth *service.AuthService
}

// NewLoginHandler constructs handler.
func NewLoginHandler(authService *service.AuthService) *LoginHandler {
	return &LoginHandler{auth: authService}
}

// Login handles POST /api/login.
func (h *LoginHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	session, err := h.auth.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrTooManyAttempts) {
			return fiber.NewError(http.StatusTooManyRequests, err.Error())
		}
		return err
	}
	return c.JSON(dto.NewLoginResponse(session))
}
