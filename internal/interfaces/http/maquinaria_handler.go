package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/agrogest/AgroGest-api/internal/application/dto"
	"github.com/agrogest/AgroGest-api/internal/application/usecase"
)

// MaquinariaHandler maneja las peticiones HTTP de maquinaria (protegido).
type MaquinariaHandler struct {
	uc *usecase.MaquinariaUseCase
}

// NewMaquinariaHandler construye el handler.
func NewMaquinariaHandler(uc *usecase.MaquinariaUseCase) *MaquinariaHandler {
	return &MaquinariaHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar máquina en una finca
// @Tags         maquinaria
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        fincaId  path  string                       true  "ID de la finca"
// @Param        body     body  dto.CreateMaquinariaRequest  true  "nombre, tipo, marca, modelo"
// @Success      201  {object}  dto.MaquinariaResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/fincas/{fincaId}/maquinarias [post]
func (h *MaquinariaHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMaquinariaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	m, err := h.uc.Crear(c.Params("fincaId"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(m)
}

// List godoc
// @Summary      Listar maquinaria de una finca
// @Tags         maquinaria
// @Security     Bearer
// @Produce      json
// @Param        fincaId  path   string  true   "ID de la finca"
// @Param        limit    query  int     false  "máximo de resultados (default 50)"
// @Param        offset   query  int     false  "desplazamiento"
// @Success      200  {object}  dto.MaquinariaListResponse
// @Router       /api/fincas/{fincaId}/maquinarias [get]
func (h *MaquinariaHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.ListByFinca(c.Params("fincaId"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener máquina por ID
// @Tags         maquinaria
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la máquina"
// @Success      200  {object}  dto.MaquinariaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/maquinarias/{id} [get]
func (h *MaquinariaHandler) GetByID(c *fiber.Ctx) error {
	m, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if m == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "máquina no encontrada"})
	}
	return c.JSON(m)
}

// Update godoc
// @Summary      Actualizar máquina
// @Tags         maquinaria
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "ID de la máquina"
// @Param        body  body  dto.UpdateMaquinariaRequest  true  "campos a actualizar"
// @Success      200   {object}  dto.MaquinariaResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/maquinarias/{id} [put]
func (h *MaquinariaHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateMaquinariaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	m, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	if m == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "máquina no encontrada"})
	}
	return c.JSON(m)
}

// Usos godoc
// @Summary      Historial de usos de una máquina
// @Tags         maquinaria
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID de la máquina"
// @Param        limit   query  int     false  "máximo de resultados (default 50)"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {array}   dto.UsoMaquinariaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/maquinarias/{id}/usos [get]
func (h *MaquinariaHandler) Usos(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	usos, err := h.uc.UsosDeMaquinaria(c.Params("id"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(usos)
}
