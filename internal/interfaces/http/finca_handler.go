package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/agrogest/AgroGest-api/internal/application/dto"
	"github.com/agrogest/AgroGest-api/internal/application/usecase"
)

// FincaHandler maneja las peticiones HTTP de fincas (protegido).
type FincaHandler struct {
	uc *usecase.FincaUseCase
}

// NewFincaHandler construye el handler.
func NewFincaHandler(uc *usecase.FincaUseCase) *FincaHandler {
	return &FincaHandler{uc: uc}
}

// Create godoc
// @Summary      Crear finca
// @Tags         fincas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateFincaRequest  true  "nombre, ubicacion, area_total"
// @Success      201   {object}  dto.FincaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/fincas [post]
func (h *FincaHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateFincaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	finca, err := h.uc.Crear(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(finca)
}

// List godoc
// @Summary      Listar fincas
// @Tags         fincas
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "máximo de resultados (default 50)"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {object}  dto.FincaListResponse
// @Router       /api/fincas [get]
func (h *FincaHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener finca por ID
// @Tags         fincas
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la finca"
// @Success      200  {object}  dto.FincaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/fincas/{id} [get]
func (h *FincaHandler) GetByID(c *fiber.Ctx) error {
	finca, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if finca == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "finca no encontrada"})
	}
	return c.JSON(finca)
}

// Update godoc
// @Summary      Actualizar finca
// @Tags         fincas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID de la finca"
// @Param        body  body  dto.UpdateFincaRequest  true  "campos a actualizar"
// @Success      200   {object}  dto.FincaResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/fincas/{id} [put]
func (h *FincaHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateFincaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	finca, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	if finca == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "finca no encontrada"})
	}
	return c.JSON(finca)
}

// pageParams lee limit/offset de la query con defaults razonables.
func pageParams(c *fiber.Ctx) (limit, offset int) {
	limit = c.QueryInt("limit", 50)
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	offset = c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
