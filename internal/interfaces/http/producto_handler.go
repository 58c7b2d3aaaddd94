package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/agrogest/AgroGest-api/internal/application/dto"
	"github.com/agrogest/AgroGest-api/internal/application/usecase"
)

// ProductoHandler maneja las peticiones HTTP del catálogo de insumos (protegido).
type ProductoHandler struct {
	uc *usecase.ProductoUseCase
}

// NewProductoHandler construye el handler.
func NewProductoHandler(uc *usecase.ProductoUseCase) *ProductoHandler {
	return &ProductoHandler{uc: uc}
}

// Create godoc
// @Summary      Crear producto en una finca
// @Description  Si stock_inicial es mayor que cero se registra una ENTRADA
//               inicial en la misma transacción que crea el producto.
// @Tags         productos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        fincaId  path  string                     true  "ID de la finca"
// @Param        body     body  dto.CreateProductoRequest  true  "nombre, categoria, unidad_medida, stock_inicial, stock_minimo"
// @Success      201  {object}  dto.ProductoResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/fincas/{fincaId}/productos [post]
func (h *ProductoHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	producto, err := h.uc.Crear(c.Context(), c.Params("fincaId"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(producto)
}

// List godoc
// @Summary      Listar productos de una finca
// @Tags         productos
// @Security     Bearer
// @Produce      json
// @Param        fincaId  path   string  true   "ID de la finca"
// @Param        limit    query  int     false  "máximo de resultados (default 50)"
// @Param        offset   query  int     false  "desplazamiento"
// @Success      200  {object}  dto.ProductoListResponse
// @Router       /api/fincas/{fincaId}/productos [get]
func (h *ProductoHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.ListByFinca(c.Params("fincaId"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         productos
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/productos/{id} [get]
func (h *ProductoHandler) GetByID(c *fiber.Ctx) error {
	producto, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if producto == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	return c.JSON(producto)
}

// Update godoc
// @Summary      Actualizar producto
// @Description  El stock no se edita aquí: solo cambia vía movimientos.
// @Tags         productos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del producto"
// @Param        body  body  dto.UpdateProductoRequest  true  "campos a actualizar"
// @Success      200   {object}  dto.ProductoResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/productos/{id} [put]
func (h *ProductoHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	producto, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	if producto == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	return c.JSON(producto)
}
