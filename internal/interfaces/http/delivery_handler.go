package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/obrasync/estoque-api/internal/application/delivery"
	"github.com/obrasync/estoque-api/internal/application/dto"
)

// DeliveryHandler trata as requisições HTTP de entregas logísticas (protegido).
type DeliveryHandler struct {
	uc *delivery.UseCase
}

// NewDeliveryHandler constrói o handler.
func NewDeliveryHandler(uc *delivery.UseCase) *DeliveryHandler {
	return &DeliveryHandler{uc: uc}
}

// Create godoc
// @Summary      Agendar entrega (debita o estoque)
// @Tags         deliveries
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDeliveryRequest  true  "Dados da entrega"
// @Success      201   {object}  dto.DeliveryResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/deliveries [post]
func (h *DeliveryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDeliveryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	dlv, err := h.uc.Create(c.Context(), delivery.CreateInput{
		RequestedAt:     in.RequestedAt,
		SourceLocation:  in.SourceLocation,
		DestinationSite: in.DestinationSite,
		ProductID:       in.ProductID,
		Quantity:        in.Quantity,
		ContactName:     in.ContactName,
		ContactPhone:    in.ContactPhone,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToDeliveryResponse(dlv))
}

// List godoc
// @Summary      Listar entregas
// @Tags         deliveries
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Limite"  default(50)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {array}  dto.DeliveryListItemResponse
// @Router       /api/deliveries [get]
func (h *DeliveryHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 50), Offset: c.QueryInt("offset", 0)}
	page.Normalize()
	items, err := h.uc.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToDeliveryListResponses(items))
}

// GetByID godoc
// @Summary      Buscar entrega por ID
// @Tags         deliveries
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID da entrega"
// @Success      200  {object}  dto.DeliveryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/deliveries/{id} [get]
func (h *DeliveryHandler) GetByID(c *fiber.Ctx) error {
	dlv, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToDeliveryResponse(dlv))
}

// Update godoc
// @Summary      Editar dados descritivos da entrega
// @Tags         deliveries
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID da entrega"
// @Param        body  body  dto.UpdateDeliveryRequest  true  "Campos a editar"
// @Success      200   {object}  dto.DeliveryResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/deliveries/{id} [patch]
func (h *DeliveryHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateDeliveryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	dlv, err := h.uc.UpdateFields(c.Context(), c.Params("id"), delivery.UpdateFieldsInput{
		RequestedAt:     in.RequestedAt,
		SourceLocation:  in.SourceLocation,
		DestinationSite: in.DestinationSite,
		ContactName:     in.ContactName,
		ContactPhone:    in.ContactPhone,
		Status:          in.Status,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToDeliveryResponse(dlv))
}

// UpdateStatus godoc
// @Summary      Mudar o status da entrega
// @Tags         deliveries
// @Security     Bearer
// @Accept       json
// @Param        id    path  string  true  "ID da entrega"
// @Param        body  body  dto.UpdateDeliveryStatusRequest  true  "Novo status"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/deliveries/{id}/status [patch]
func (h *DeliveryHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateDeliveryStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if err := h.uc.UpdateStatus(c.Context(), c.Params("id"), in.Status); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Reassign godoc
// @Summary      Remanejar produto e/ou quantidade da entrega
// @Tags         deliveries
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID da entrega"
// @Param        body  body  dto.ReassignDeliveryRequest  true  "Novo produto e/ou quantidade"
// @Success      200   {object}  dto.DeliveryResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/deliveries/{id} [put]
func (h *DeliveryHandler) Reassign(c *fiber.Ctx) error {
	var in dto.ReassignDeliveryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	dlv, err := h.uc.Reassign(c.Context(), c.Params("id"), delivery.ReassignInput{
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToDeliveryResponse(dlv))
}

// Delete godoc
// @Summary      Cancelar entrega (estorna o débito de estoque)
// @Tags         deliveries
// @Security     Bearer
// @Param        id  path  string  true  "ID da entrega"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/deliveries/{id} [delete]
func (h *DeliveryHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
