package http

import (
	"time"

	"github.com/digitalstock/digital-stock-api/internal/application/dto"
	"github.com/digitalstock/digital-stock-api/internal/application/usecase"
	"github.com/digitalstock/digital-stock-api/internal/domain/entity"
	"github.com/gofiber/fiber/v2"
)

// ReportHandler panel y reportes agregados.
type ReportHandler struct {
	uc *usecase.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Dashboard godoc
// @Summary      Resumen del panel
// @Description  Conteos generales y productos activos con stock en o bajo el mínimo.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/dashboard [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	resp, err := h.uc.Dashboard(c.Context())
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(resp)
}

// MonthlyTotals godoc
// @Summary      Totales mensuales por dirección
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        direction  query  string  false  "SALE (default) o PURCHASE"
// @Param        year       query  int     false  "Año; default el actual"
// @Success      200  {array}  dto.MonthlyTotalResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/monthly [get]
func (h *ReportHandler) MonthlyTotals(c *fiber.Ctx) error {
	direction := c.Query("direction", entity.DirectionSale)
	if direction != entity.DirectionSale && direction != entity.DirectionPurchase {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "direction debe ser SALE o PURCHASE"})
	}
	year := c.QueryInt("year", time.Now().Year())
	resp, err := h.uc.MonthlyTotals(c.Context(), direction, year)
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(resp)
}
