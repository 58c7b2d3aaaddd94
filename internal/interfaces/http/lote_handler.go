package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/agrogest/AgroGest-api/internal/application/dto"
	"github.com/agrogest/AgroGest-api/internal/application/usecase"
)

// LoteHandler maneja las peticiones HTTP de lotes (protegido).
type LoteHandler struct {
	uc *usecase.LoteUseCase
}

// NewLoteHandler construye el handler.
func NewLoteHandler(uc *usecase.LoteUseCase) *LoteHandler {
	return &LoteHandler{uc: uc}
}

// Create godoc
// @Summary      Crear lote en una finca
// @Tags         lotes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        fincaId  path  string                 true  "ID de la finca"
// @Param        body     body  dto.CreateLoteRequest  true  "nombre, cultivo, area"
// @Success      201  {object}  dto.LoteResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/fincas/{fincaId}/lotes [post]
func (h *LoteHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLoteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lote, err := h.uc.Crear(c.Params("fincaId"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(lote)
}

// List godoc
// @Summary      Listar lotes de una finca
// @Tags         lotes
// @Security     Bearer
// @Produce      json
// @Param        fincaId  path   string  true   "ID de la finca"
// @Param        limit    query  int     false  "máximo de resultados (default 50)"
// @Param        offset   query  int     false  "desplazamiento"
// @Success      200  {object}  dto.LoteListResponse
// @Router       /api/fincas/{fincaId}/lotes [get]
func (h *LoteHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.ListByFinca(c.Params("fincaId"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener lote por ID
// @Tags         lotes
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del lote"
// @Success      200  {object}  dto.LoteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/lotes/{id} [get]
func (h *LoteHandler) GetByID(c *fiber.Ctx) error {
	lote, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if lote == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "lote no encontrado"})
	}
	return c.JSON(lote)
}

// Update godoc
// @Summary      Actualizar lote
// @Tags         lotes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del lote"
// @Param        body  body  dto.UpdateLoteRequest  true  "campos a actualizar"
// @Success      200   {object}  dto.LoteResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/lotes/{id} [put]
func (h *LoteHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateLoteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lote, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	if lote == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "lote no encontrado"})
	}
	return c.JSON(lote)
}
