package http

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/digitalstock/digital-stock-api/internal/application/dto"
	"github.com/digitalstock/digital-stock-api/internal/application/movement"
	"github.com/digitalstock/digital-stock-api/internal/domain"
	"github.com/digitalstock/digital-stock-api/internal/domain/entity"
	"github.com/digitalstock/digital-stock-api/internal/domain/repository"
	"github.com/gofiber/fiber/v2"
)

// MovementHandler maneja compras y ventas. Una instancia por dirección:
// /api/purchases y /api/sales comparten el código y difieren solo en ella.
type MovementHandler struct {
	uc        *movement.CreateMovementUseCase
	direction string
}

// NewPurchaseHandler handler de compras (entradas).
func NewPurchaseHandler(uc *movement.CreateMovementUseCase) *MovementHandler {
	return &MovementHandler{uc: uc, direction: entity.DirectionPurchase}
}

// NewSaleHandler handler de ventas (salidas).
func NewSaleHandler(uc *movement.CreateMovementUseCase) *MovementHandler {
	return &MovementHandler{uc: uc, direction: entity.DirectionSale}
}

// Create godoc
// @Summary      Registrar una compra o venta
// @Description  Valida todas las líneas, persiste cabecera y detalle y ajusta stock
//
//	de forma atómica. El comprobante PDF se envía por correo en segundo plano.
//
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovementRequest  true  "counterparty_id y líneas (product_code, quantity)"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validationMessage(err)})
	}

	resp, err := h.uc.Create(c.Context(), CurrentActor(c), h.direction, in)
	if err != nil {
		return movementError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// movementError mapea los errores del motor a códigos HTTP.
func movementError(c *fiber.Ctx, err error) error {
	var stockErr *domain.InsufficientStockError
	if errors.As(err, &stockErr) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    "INSUFFICIENT_STOCK",
			Message: fmt.Sprintf("stock insuficiente para %s. Disponible: %d", stockErr.Code, stockErr.Available),
		})
	}
	var notFound *domain.ProductNotFoundError
	if errors.As(err, &notFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Code:    "PRODUCT_NOT_FOUND",
			Message: fmt.Sprintf("producto %s no encontrado o inactivo", notFound.Code),
		})
	}
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "movimiento no encontrado"})
	}
	return internalError(c, err)
}

// List godoc
// @Summary      Listar movimientos de una dirección
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        month   query  int     false  "Mes (1-12)"
// @Param        search  query  string  false  "Búsqueda por consecutivo, cédula o nombre del tercero"
// @Param        limit   query  int     false  "Máximo de filas"
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/sales [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	filter := repository.MovementFilter{
		Month:  c.QueryInt("month"),
		Search: c.Query("search"),
		Limit:  c.QueryInt("limit"),
	}
	resp, err := h.uc.List(c.Context(), h.direction, filter)
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(resp)
}

// GetByID godoc
// @Summary      Consultar un movimiento con sus líneas
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "Consecutivo del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "consecutivo inválido"})
	}
	resp, err := h.uc.Get(c.Context(), h.direction, id)
	if err != nil {
		return movementError(c, err)
	}
	return c.JSON(resp)
}

// Count godoc
// @Summary      Total de movimientos de una dirección
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CountResponse
// @Router       /api/sales/count [get]
func (h *MovementHandler) Count(c *fiber.Ctx) error {
	count, err := h.uc.Count(c.Context(), h.direction)
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(dto.CountResponse{Count: count})
}
