package http

import (
	"github.com/digitalstock/digital-stock-api/internal/application/usecase"
	"github.com/digitalstock/digital-stock-api/internal/domain/repository"
	"github.com/gofiber/fiber/v2"
)

// AuditHandler consulta de bitácora (solo admin).
type AuditHandler struct {
	uc *usecase.AuditUseCase
}

// NewAuditHandler construye el handler.
func NewAuditHandler(uc *usecase.AuditUseCase) *AuditHandler {
	return &AuditHandler{uc: uc}
}

// List godoc
// @Summary      Listar bitácora
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        action  query  string  false  "Acción exacta"
// @Param        search  query  string  false  "Búsqueda por cédula, nombre o acción"
// @Param        limit   query  int     false  "Máximo de filas"
// @Success      200  {object}  dto.AuditListResponse
// @Router       /api/audit [get]
func (h *AuditHandler) List(c *fiber.Ctx) error {
	filter := repository.AuditFilter{
		Action: c.Query("action"),
		Search: c.Query("search"),
		Limit:  c.QueryInt("limit"),
	}
	resp, err := h.uc.List(c.Context(), filter)
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(resp)
}

// Actions godoc
// @Summary      Acciones distintas registradas en bitácora
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  string
// @Router       /api/audit/actions [get]
func (h *AuditHandler) Actions(c *fiber.Ctx) error {
	actions, err := h.uc.Actions(c.Context())
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(actions)
}
