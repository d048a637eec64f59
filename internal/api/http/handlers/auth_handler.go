package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/iot-kit/sensor-gateway/internal/api/dto"
	"github.com/iot-kit/sensor-gateway/internal/auth"
	"github.com/iot-kit/sensor-gateway/internal/service"
	apperrors "github.com/iot-kit/sensor-gateway/pkg/util"
)

// AuthHandler exposes login, logout and token introspection.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /auth.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("missing username or password", nil)
	}
	if req.Username == "" || req.Password == "" {
		return apperrors.NewValidationError("missing username or password", nil)
	}

	token, err := h.auth.Issue(c.Context(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(dto.TokenResponse{AccessToken: token})
}

// LoginPage handles GET /auth, the surface denied requests land on.
func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	return c.Status(http.StatusUnauthorized).JSON(dto.MessageResponse{Msg: "auth required"})
}

// CheckToken handles GET /auth/jwtStore.
func (h *AuthHandler) CheckToken(c *fiber.Ctx) error {
	token, ok := auth.ExtractBearerToken(c.Get(fiber.HeaderAuthorization))
	if !ok {
		return apperrors.NewUnauthorized("missing or malformed authorization header")
	}
	claim, err := h.auth.Introspect(token)
	if err != nil {
		return err
	}
	return c.JSON(dto.RoleResponse{Role: string(claim.Role)})
}

// Logout handles DELETE /auth/jwtStore.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	token, ok := auth.ExtractBearerToken(c.Get(fiber.HeaderAuthorization))
	if !ok {
		return apperrors.NewUnauthorized("missing or malformed authorization header")
	}
	if err := h.auth.Revoke(c.Context(), token); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Msg: "Logged out"})
}
