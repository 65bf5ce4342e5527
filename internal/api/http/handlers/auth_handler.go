package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/team-organiser/internal/api/dto"
	"github.com/spec-kit/team-organiser/internal/service"
	apperrors "github.com/spec-kit/team-organiser/pkg/util/errorutil"
)

// AuthHandler exchanges the operator passphrase for a token.
type AuthHandler struct {
	service *service.OperatorAuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.OperatorAuthService) *AuthHandler {
	return &AuthHandler{service: authService}
}

// Login POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Passphrase == "" {
		return apperrors.NewValidationError("passphrase required", nil)
	}
	token, exp, err := h.service.Login(c.UserContext(), req.Passphrase)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.LoginResponse{AccessToken: token, ExpiresAt: exp}})
}
