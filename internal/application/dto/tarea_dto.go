package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateTareaRequest body para POST /api/fincas/:fincaId/tareas.
// LoteID es obligatorio cuando Nivel es LOTE y debe omitirse cuando es FINCA.
type CreateTareaRequest struct {
	Nombre          string     `json:"nombre"`
	Descripcion     string     `json:"descripcion"`
	Nivel           string     `json:"nivel"`
	LoteID          *string    `json:"lote_id,omitempty"`
	FechaProgramada *time.Time `json:"fecha_programada"`
}

// ConsumoRequest una línea de consumo de insumo al ejecutar.
type ConsumoRequest struct {
	ProductoID string          `json:"producto_id"`
	Cantidad   decimal.Decimal `json:"cantidad"`
}

// UsoMaquinariaRequest una línea de uso de maquinaria al ejecutar.
type UsoMaquinariaRequest struct {
	MaquinariaID string          `json:"maquinaria_id"`
	Horas        decimal.Decimal `json:"horas"`
	Operador     string          `json:"operador,omitempty"`
	Inicio       *time.Time      `json:"inicio,omitempty"`
}

// EjecutarTareaRequest body para POST /api/fincas/:fincaId/tareas/:id/ejecutar.
type EjecutarTareaRequest struct {
	NuevoEstado    string                 `json:"nuevo_estado,omitempty"`
	FechaEjecucion *time.Time             `json:"fecha_ejecucion,omitempty"`
	Evidencias     []string               `json:"evidencias,omitempty"`
	Consumos       []ConsumoRequest       `json:"consumos,omitempty"`
	UsosMaquinaria []UsoMaquinariaRequest `json:"usos_maquinaria,omitempty"`
}

// TareaResponse representación de una tarea en respuestas.
type TareaResponse struct {
	ID              string     `json:"id"`
	FincaID         string     `json:"finca_id"`
	LoteID          *string    `json:"lote_id,omitempty"`
	Codigo          string     `json:"codigo"`
	Nombre          string     `json:"nombre"`
	Descripcion     string     `json:"descripcion,omitempty"`
	Nivel           string     `json:"nivel"`
	Estado          string     `json:"estado"`
	FechaProgramada time.Time  `json:"fecha_programada"`
	FechaEjecucion  *time.Time `json:"fecha_ejecucion,omitempty"`
	Evidencias      []string   `json:"evidencias,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// TareaListResponse listado paginado de tareas.
type TareaListResponse struct {
	Items []TareaResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// EvidenciaResponse referencia del archivo subido.
type EvidenciaResponse struct {
	Referencia string `json:"referencia"`
}
