package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/agrogest/AgroGest-api/internal/application/dto"
	"github.com/agrogest/AgroGest-api/internal/domain"
)

// respondError mapea los errores de dominio a códigos HTTP. Los errores de
// stock llegan envueltos (con producto y cantidades), por eso errors.Is.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrEntradaInvalida):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrLoteRequerido):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "LOTE_REQUERIDO", Message: err.Error()})
	case errors.Is(err, domain.ErrNoEncontrado), errors.Is(err, domain.ErrUsuarioNoEncontrado):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrNoAutorizado):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: err.Error()})
	case errors.Is(err, domain.ErrAccesoDenegado):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	case errors.Is(err, domain.ErrStockInsuficiente):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "STOCK_INSUFICIENTE", Message: err.Error()})
	case errors.Is(err, domain.ErrTareaFinalizada):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "TAREA_FINALIZADA", Message: err.Error()})
	case errors.Is(err, domain.ErrEmailYaRegistrado):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_REGISTRADO", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicado):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICADO", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
