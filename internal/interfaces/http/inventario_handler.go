package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/agrogest/AgroGest-api/internal/application/dto"
	"github.com/agrogest/AgroGest-api/internal/application/inventario"
)

// InventarioHandler maneja las peticiones HTTP del kárdex de insumos (protegido).
type InventarioHandler struct {
	registrar *inventario.RegistrarMovimientoUseCase
	consulta  *inventario.ConsultaUseCase
}

// NewInventarioHandler construye el handler.
func NewInventarioHandler(registrar *inventario.RegistrarMovimientoUseCase, consulta *inventario.ConsultaUseCase) *InventarioHandler {
	return &InventarioHandler{registrar: registrar, consulta: consulta}
}

// RegistrarMovimiento godoc
// @Summary      Registrar movimiento de inventario
// @Description  ENTRADA y SALIDA exigen cantidad positiva. AJUSTE admite signo
//               y se normaliza a ENTRADA o SALIDA en el kárdex.
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        fincaId  path  string                         true  "ID de la finca"
// @Param        body     body  dto.RegistrarMovimientoRequest true  "producto_id, tipo, cantidad"
// @Success      201  {object}  map[string]string
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/fincas/{fincaId}/movimientos [post]
func (h *InventarioHandler) RegistrarMovimiento(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RegistrarMovimientoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	err := h.registrar.Registrar(c.Context(), inventario.MovimientoInput{
		FincaID:       c.Params("fincaId"),
		UsuarioID:     userID,
		ProductoID:    in.ProductoID,
		Tipo:          in.Tipo,
		Cantidad:      in.Cantidad,
		Referencia:    in.Referencia,
		Observaciones: in.Observaciones,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "movimiento registrado"})
}

// ListByFinca godoc
// @Summary      Kárdex de movimientos de una finca
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Param        fincaId  path   string  true   "ID de la finca"
// @Param        desde    query  string  false  "fecha inicial (RFC3339)"
// @Param        hasta    query  string  false  "fecha final (RFC3339)"
// @Param        limit    query  int     false  "máximo de resultados (default 50)"
// @Param        offset   query  int     false  "desplazamiento"
// @Success      200  {object}  dto.MovimientoListResponse
// @Router       /api/fincas/{fincaId}/movimientos [get]
func (h *InventarioHandler) ListByFinca(c *fiber.Ctx) error {
	desde, hasta, err := rangoFechas(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "desde/hasta deben ser RFC3339"})
	}
	limit, offset := pageParams(c)
	out, err := h.consulta.ListByFinca(c.Params("fincaId"), desde, hasta, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListByProducto godoc
// @Summary      Kárdex de movimientos de un producto
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del producto"
// @Param        desde   query  string  false  "fecha inicial (RFC3339)"
// @Param        hasta   query  string  false  "fecha final (RFC3339)"
// @Param        limit   query  int     false  "máximo de resultados (default 50)"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {object}  dto.MovimientoListResponse
// @Router       /api/productos/{id}/movimientos [get]
func (h *InventarioHandler) ListByProducto(c *fiber.Ctx) error {
	desde, hasta, err := rangoFechas(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "desde/hasta deben ser RFC3339"})
	}
	limit, offset := pageParams(c)
	out, err := h.consulta.ListByProducto(c.Params("id"), desde, hasta, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// rangoFechas parsea los filtros opcionales desde/hasta de la query.
func rangoFechas(c *fiber.Ctx) (desde, hasta *time.Time, err error) {
	if s := c.Query("desde"); s != "" {
		t, perr := time.Parse(time.RFC3339, s)
		if perr != nil {
			return nil, nil, perr
		}
		desde = &t
	}
	if s := c.Query("hasta"); s != "" {
		t, perr := time.Parse(time.RFC3339, s)
		if perr != nil {
			return nil, nil, perr
		}
		hasta = &t
	}
	return desde, hasta, nil
}
