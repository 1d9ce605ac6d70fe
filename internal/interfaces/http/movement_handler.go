package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/obrasync/estoque-api/internal/application/dto"
	"github.com/obrasync/estoque-api/internal/application/inventory"
)

// MovementHandler trata as requisições HTTP de movimentações (protegido).
type MovementHandler struct {
	uc *inventory.MovementUseCase
}

// NewMovementHandler constrói o handler.
func NewMovementHandler(uc *inventory.MovementUseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// Register godoc
// @Summary      Registrar movimentação (entrada, saida ou ajuste)
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "Dados da movimentação"
// @Success      201   {object}  dto.MovementResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	result, err := h.uc.Register(c.Context(), inventory.RegisterMovementInput{
		ProductID: in.ProductID,
		Type:      in.Type,
		Quantity:  in.Quantity,
		Reason:    in.Reason,
		UnitCost:  in.UnitCost,
	})
	if err != nil {
		return respondError(c, err)
	}
	product := dto.ToProductResponse(result.Product)
	return c.Status(fiber.StatusCreated).JSON(dto.MovementResultResponse{
		Movement: dto.ToMovementResponse(result.Movement),
		Product:  &product,
	})
}

// List godoc
// @Summary      Listar movimentações
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "Filtrar por produto"
// @Param        limit       query  int     false  "Limite"  default(50)
// @Param        offset      query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 50), Offset: c.QueryInt("offset", 0)}
	page.Normalize()
	movements, err := h.uc.List(c.Query("product_id"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToMovementResponses(movements))
}

// Edit godoc
// @Summary      Corrigir movimentação
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID da movimentação"
// @Param        body  body  dto.EditMovementRequest  true  "Campos a corrigir"
// @Success      200   {object}  dto.MovementResultResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [patch]
func (h *MovementHandler) Edit(c *fiber.Ctx) error {
	var in dto.EditMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	result, err := h.uc.Edit(c.Context(), c.Params("id"), inventory.EditMovementInput{
		Quantity: in.Quantity,
		Reason:   in.Reason,
	})
	if err != nil {
		return respondError(c, err)
	}
	out := dto.MovementResultResponse{Movement: dto.ToMovementResponse(result.Movement)}
	if result.Product != nil {
		product := dto.ToProductResponse(result.Product)
		out.Product = &product
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Excluir movimentação (desfaz o efeito no saldo)
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID da movimentação"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [delete]
func (h *MovementHandler) Delete(c *fiber.Ctx) error {
	product, err := h.uc.Delete(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToProductResponse(product))
}
