package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateFincaRequest body para POST /api/fincas.
type CreateFincaRequest struct {
	Nombre      string          `json:"nombre"`
	Ubicacion   string          `json:"ubicacion"`
	AreaTotal   decimal.Decimal `json:"area_total"`
	Descripcion string          `json:"descripcion"`
}

// UpdateFincaRequest body para PUT /api/fincas/:id. Campos nil no se tocan.
type UpdateFincaRequest struct {
	Nombre      *string          `json:"nombre"`
	Ubicacion   *string          `json:"ubicacion"`
	AreaTotal   *decimal.Decimal `json:"area_total"`
	Descripcion *string          `json:"descripcion"`
}

// FincaResponse representación de una finca en respuestas.
type FincaResponse struct {
	ID          string          `json:"id"`
	Codigo      string          `json:"codigo"`
	Nombre      string          `json:"nombre"`
	Ubicacion   string          `json:"ubicacion"`
	AreaTotal   decimal.Decimal `json:"area_total"`
	Descripcion string          `json:"descripcion,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// FincaListResponse listado paginado de fincas.
type FincaListResponse struct {
	Items []FincaResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
