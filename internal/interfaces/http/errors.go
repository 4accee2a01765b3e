package http

import (
	"github.com/digitalstock/digital-stock-api/internal/application/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// internalError responde 500 con un mensaje genérico. El detalle del error
// queda en el log, nunca en el cuerpo de la respuesta.
func internalError(c *fiber.Ctx, err error) error {
	log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Code:    "INTERNAL",
		Message: "error interno del servidor",
	})
}
