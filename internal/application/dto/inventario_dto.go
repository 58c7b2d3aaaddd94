package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegistrarMovimientoRequest body para POST /api/fincas/:fincaId/movimientos.
// Para AJUSTE la cantidad admite signo; para ENTRADA/SALIDA debe ser positiva.
type RegistrarMovimientoRequest struct {
	ProductoID    string          `json:"producto_id"`
	Tipo          string          `json:"tipo"`
	Cantidad      decimal.Decimal `json:"cantidad"`
	Referencia    string          `json:"referencia,omitempty"`
	Observaciones string          `json:"observaciones,omitempty"`
}

// MovimientoResponse una entrada del libro de movimientos.
type MovimientoResponse struct {
	ID             string          `json:"id"`
	FincaID        string          `json:"finca_id"`
	ProductoID     string          `json:"producto_id"`
	TipoMovimiento string          `json:"tipo_movimiento"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	Referencia     string          `json:"referencia,omitempty"`
	Observaciones  string          `json:"observaciones,omitempty"`
	TareaID        *string         `json:"tarea_id,omitempty"`
	LoteID         *string         `json:"lote_id,omitempty"`
	Fecha          time.Time       `json:"fecha"`
	CreatedBy      string          `json:"created_by,omitempty"`
}

// MovimientoListResponse listado paginado de movimientos.
type MovimientoListResponse struct {
	Items []MovimientoResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}
