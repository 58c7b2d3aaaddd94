package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMaquinariaRequest body para POST /api/fincas/:fincaId/maquinarias.
type CreateMaquinariaRequest struct {
	Nombre      string `json:"nombre"`
	Tipo        string `json:"tipo"`
	Marca       string `json:"marca"`
	Modelo      string `json:"modelo"`
	Descripcion string `json:"descripcion"`
}

// UpdateMaquinariaRequest body para PUT /api/maquinarias/:id. Campos nil no se tocan.
type UpdateMaquinariaRequest struct {
	Nombre      *string `json:"nombre"`
	Tipo        *string `json:"tipo"`
	Marca       *string `json:"marca"`
	Modelo      *string `json:"modelo"`
	Estado      *string `json:"estado"`
	Descripcion *string `json:"descripcion"`
}

// MaquinariaResponse representación de una máquina en respuestas.
type MaquinariaResponse struct {
	ID          string    `json:"id"`
	FincaID     string    `json:"finca_id"`
	Codigo      string    `json:"codigo"`
	Nombre      string    `json:"nombre"`
	Tipo        string    `json:"tipo,omitempty"`
	Marca       string    `json:"marca,omitempty"`
	Modelo      string    `json:"modelo,omitempty"`
	Estado      string    `json:"estado"`
	Descripcion string    `json:"descripcion,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MaquinariaListResponse listado paginado de maquinaria.
type MaquinariaListResponse struct {
	Items []MaquinariaResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}

// UsoMaquinariaResponse registro de uso de una máquina en una tarea.
type UsoMaquinariaResponse struct {
	ID           string          `json:"id"`
	MaquinariaID string          `json:"maquinaria_id"`
	TareaID      string          `json:"tarea_id"`
	Operador     string          `json:"operador"`
	Horas        decimal.Decimal `json:"horas"`
	Inicio       time.Time       `json:"inicio"`
	Fin          time.Time       `json:"fin"`
}
