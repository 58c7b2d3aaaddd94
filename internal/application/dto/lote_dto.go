package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateLoteRequest body para POST /api/fincas/:fincaId/lotes.
// Area llega calculada desde el mapa (polígono dibujado en el cliente).
type CreateLoteRequest struct {
	Nombre  string          `json:"nombre"`
	Cultivo string          `json:"cultivo"`
	Area    decimal.Decimal `json:"area"`
}

// UpdateLoteRequest body para PUT /api/lotes/:id. Campos nil no se tocan.
type UpdateLoteRequest struct {
	Nombre  *string          `json:"nombre"`
	Cultivo *string          `json:"cultivo"`
	Area    *decimal.Decimal `json:"area"`
}

// LoteResponse representación de un lote en respuestas.
type LoteResponse struct {
	ID        string          `json:"id"`
	FincaID   string          `json:"finca_id"`
	Codigo    string          `json:"codigo"`
	Nombre    string          `json:"nombre"`
	Cultivo   string          `json:"cultivo,omitempty"`
	Area      decimal.Decimal `json:"area"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// LoteListResponse listado paginado de lotes.
type LoteListResponse struct {
	Items []LoteResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
