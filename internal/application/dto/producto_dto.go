package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductoRequest body para POST /api/fincas/:fincaId/productos.
// StockInicial mayor que cero genera una ENTRADA inicial en la misma transacción.
type CreateProductoRequest struct {
	Nombre       string          `json:"nombre"`
	Categoria    string          `json:"categoria"`
	UnidadMedida string          `json:"unidad_medida"`
	StockInicial decimal.Decimal `json:"stock_inicial"`
	StockMinimo  decimal.Decimal `json:"stock_minimo"`
	Descripcion  string          `json:"descripcion"`
}

// UpdateProductoRequest body para PUT /api/productos/:id. Campos nil no se
// tocan. El stock no se edita aquí: solo cambia vía movimientos.
type UpdateProductoRequest struct {
	Nombre       *string          `json:"nombre"`
	Categoria    *string          `json:"categoria"`
	UnidadMedida *string          `json:"unidad_medida"`
	StockMinimo  *decimal.Decimal `json:"stock_minimo"`
	Descripcion  *string          `json:"descripcion"`
}

// ProductoResponse representación de un producto en respuestas.
type ProductoResponse struct {
	ID           string          `json:"id"`
	FincaID      string          `json:"finca_id"`
	Codigo       string          `json:"codigo"`
	Nombre       string          `json:"nombre"`
	Categoria    string          `json:"categoria"`
	UnidadMedida string          `json:"unidad_medida"`
	StockActual  decimal.Decimal `json:"stock_actual"`
	StockMinimo  decimal.Decimal `json:"stock_minimo"`
	Descripcion  string          `json:"descripcion,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ProductoListResponse listado paginado de productos.
type ProductoListResponse struct {
	Items []ProductoResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
