package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/obrasync/estoque-api/internal/application/auth"
	"github.com/obrasync/estoque-api/internal/application/dto"
)

// AuthHandler trata as requisições de autenticação (público).
type AuthHandler struct {
	uc *auth.UseCase
}

// NewAuthHandler constrói o handler.
func NewAuthHandler(uc *auth.UseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// VerifyPassword godoc
// @Summary      Autenticar com a senha de administração
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.VerifyPasswordRequest  true  "Senha"
// @Success      200   {object}  dto.TokenResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/verify-password [post]
func (h *AuthHandler) VerifyPassword(c *fiber.Ctx) error {
	var in dto.VerifyPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	token, err := h.uc.VerifyPassword(in.Password)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.TokenResponse{Token: token})
}
