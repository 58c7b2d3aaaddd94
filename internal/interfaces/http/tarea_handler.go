package http

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/agrogest/AgroGest-api/internal/application/dto"
	"github.com/agrogest/AgroGest-api/internal/application/tarea"
)

// TareaHandler maneja las peticiones HTTP de tareas de campo (protegido).
type TareaHandler struct {
	uc       *tarea.UseCase
	ejecutar *tarea.EjecutarTareaUseCase
}

// NewTareaHandler construye el handler.
func NewTareaHandler(uc *tarea.UseCase, ejecutar *tarea.EjecutarTareaUseCase) *TareaHandler {
	return &TareaHandler{uc: uc, ejecutar: ejecutar}
}

// Create godoc
// @Summary      Crear tarea en una finca
// @Description  nivel FINCA no admite lote_id; nivel LOTE lo exige.
// @Tags         tareas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        fincaId  path  string                  true  "ID de la finca"
// @Param        body     body  dto.CreateTareaRequest  true  "nombre, nivel, lote_id (nivel LOTE), fecha_programada"
// @Success      201  {object}  dto.TareaResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/fincas/{fincaId}/tareas [post]
func (h *TareaHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTareaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	t, err := h.uc.Crear(c.Params("fincaId"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(t)
}

// List godoc
// @Summary      Listar tareas de una finca
// @Tags         tareas
// @Security     Bearer
// @Produce      json
// @Param        fincaId  path   string  true   "ID de la finca"
// @Param        estado   query  string  false  "PROGRAMADA | EN_PROGRESO | EJECUTADA | CANCELADA"
// @Param        limit    query  int     false  "máximo de resultados (default 50)"
// @Param        offset   query  int     false  "desplazamiento"
// @Success      200  {object}  dto.TareaListResponse
// @Router       /api/fincas/{fincaId}/tareas [get]
func (h *TareaHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.ListByFinca(c.Params("fincaId"), c.Query("estado"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener tarea por ID
// @Tags         tareas
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la tarea"
// @Success      200  {object}  dto.TareaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tareas/{id} [get]
func (h *TareaHandler) GetByID(c *fiber.Ctx) error {
	t, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if t == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "tarea no encontrada"})
	}
	return c.JSON(t)
}

// Ejecutar godoc
// @Summary      Ejecutar tarea
// @Description  Cambia el estado, descuenta los consumos del stock y registra
//               los usos de maquinaria en una sola transacción: si un consumo
//               no tiene stock, no queda nada. Una tarea EJECUTADA o CANCELADA
//               no puede re-ejecutarse.
// @Tags         tareas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        fincaId  path  string                    true  "ID de la finca"
// @Param        id       path  string                    true  "ID de la tarea"
// @Param        body     body  dto.EjecutarTareaRequest  true  "consumos, usos_maquinaria, evidencias"
// @Success      200  {object}  dto.TareaResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/fincas/{fincaId}/tareas/{id}/ejecutar [post]
func (h *TareaHandler) Ejecutar(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.EjecutarTareaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	input := tarea.EjecutarInput{
		TareaID:        c.Params("id"),
		FincaID:        c.Params("fincaId"),
		UsuarioID:      userID,
		NuevoEstado:    in.NuevoEstado,
		FechaEjecucion: in.FechaEjecucion,
		Evidencias:     in.Evidencias,
	}
	for _, consumo := range in.Consumos {
		input.Consumos = append(input.Consumos, tarea.ConsumoInput{
			ProductoID: consumo.ProductoID,
			Cantidad:   consumo.Cantidad,
		})
	}
	for _, uso := range in.UsosMaquinaria {
		input.UsosMaquinaria = append(input.UsosMaquinaria, tarea.UsoMaquinariaInput{
			MaquinariaID: uso.MaquinariaID,
			Horas:        uso.Horas,
			Operador:     uso.Operador,
			Inicio:       uso.Inicio,
		})
	}
	if err := h.ejecutar.Ejecutar(c.Context(), input); err != nil {
		return respondError(c, err)
	}
	t, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if t == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "tarea no encontrada"})
	}
	return c.JSON(t)
}

// Cancelar godoc
// @Summary      Cancelar tarea
// @Tags         tareas
// @Security     Bearer
// @Produce      json
// @Param        fincaId  path  string  true  "ID de la finca"
// @Param        id       path  string  true  "ID de la tarea"
// @Success      200  {object}  dto.TareaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/fincas/{fincaId}/tareas/{id}/cancelar [post]
func (h *TareaHandler) Cancelar(c *fiber.Ctx) error {
	t, err := h.uc.Cancelar(c.Params("fincaId"), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if t == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "tarea no encontrada"})
	}
	return c.JSON(t)
}

// SubirEvidencia godoc
// @Summary      Subir evidencia de una tarea
// @Description  multipart/form-data con el campo "archivo". La referencia
//               queda agregada a la lista de evidencias de la tarea.
// @Tags         tareas
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        fincaId  path      string  true  "ID de la finca"
// @Param        id       path      string  true  "ID de la tarea"
// @Param        archivo  formData  file    true  "archivo de evidencia"
// @Success      201  {object}  dto.EvidenciaResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/fincas/{fincaId}/tareas/{id}/evidencias [post]
func (h *TareaHandler) SubirEvidencia(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("archivo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "campo archivo requerido (multipart/form-data)"})
	}
	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "no se pudo leer el archivo"})
	}
	defer f.Close()
	contenido, err := io.ReadAll(f)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "no se pudo leer el archivo"})
	}

	contentType := fileHeader.Header.Get("Content-Type")
	ref, err := h.uc.SubirEvidencia(c.Context(), c.Params("fincaId"), c.Params("id"), fileHeader.Filename, contenido, contentType)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.EvidenciaResponse{Referencia: ref})
}

// Usos godoc
// @Summary      Usos de maquinaria registrados en una tarea
// @Tags         tareas
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la tarea"
// @Success      200  {array}   dto.UsoMaquinariaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tareas/{id}/usos [get]
func (h *TareaHandler) Usos(c *fiber.Ctx) error {
	usos, err := h.uc.UsosDeTarea(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(usos)
}
