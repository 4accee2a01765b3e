package http

import (
	"github.com/digitalstock/digital-stock-api/internal/application/dto"
	"github.com/digitalstock/digital-stock-api/internal/application/usecase"
	"github.com/gofiber/fiber/v2"
)

// PartyHandler maneja clientes y proveedores. Una instancia por directorio.
type PartyHandler struct {
	uc       *usecase.PartyUseCase
	resource string // para mensajes de error
}

// NewClientHandler handler del directorio de clientes.
func NewClientHandler(uc *usecase.PartyUseCase) *PartyHandler {
	return &PartyHandler{uc: uc, resource: "cliente"}
}

// NewProviderHandler handler del directorio de proveedores.
func NewProviderHandler(uc *usecase.PartyUseCase) *PartyHandler {
	return &PartyHandler{uc: uc, resource: "proveedor"}
}

// Create godoc
// @Summary      Crear cliente o proveedor
// @Tags         parties
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePartyRequest  true  "cédula/RIF, nombre y contacto"
// @Success      201   {object}  dto.PartyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/clients [post]
func (h *PartyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePartyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validationMessage(err)})
	}
	resp, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return crudError(c, err, h.resource)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetByID godoc
// @Summary      Consultar tercero por cédula/RIF
// @Tags         parties
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Cédula o RIF"
// @Success      200  {object}  dto.PartyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clients/{id} [get]
func (h *PartyHandler) GetByID(c *fiber.Ctx) error {
	resp, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return crudError(c, err, h.resource)
	}
	return c.JSON(resp)
}

// List godoc
// @Summary      Listar terceros
// @Tags         parties
// @Security     Bearer
// @Produce      json
// @Param        search  query  string  false  "Búsqueda por cédula o nombre"
// @Param        active  query  bool    false  "Filtrar por estado"
// @Success      200  {object}  dto.PartyListResponse
// @Router       /api/clients [get]
func (h *PartyHandler) List(c *fiber.Ctx) error {
	resp, err := h.uc.List(c.Context(), c.Query("search"), activeFilter(c))
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(resp)
}

// Update godoc
// @Summary      Actualizar tercero (parcial)
// @Tags         parties
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Cédula o RIF"
// @Param        body  body  dto.UpdatePartyRequest  true  "campos a cambiar"
// @Success      200  {object}  dto.PartyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clients/{id} [put]
func (h *PartyHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePartyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validationMessage(err)})
	}
	resp, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return crudError(c, err, h.resource)
	}
	return c.JSON(resp)
}

// Deactivate godoc
// @Summary      Desactivar tercero (borrado lógico)
// @Tags         parties
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Cédula o RIF"
// @Success      204  "sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clients/{id} [delete]
func (h *PartyHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.uc.Deactivate(c.Context(), c.Params("id")); err != nil {
		return crudError(c, err, h.resource)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
