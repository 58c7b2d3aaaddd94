package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Lote representa una subdivisión de una finca destinada a un cultivo.
// Codigo es secuencial por finca con formato L-01 (dos dígitos).
// El área llega calculada desde el mapa (polígono dibujado por el usuario).
type Lote struct {
	ID        string
	FincaID   string
	Codigo    string
	Nombre    string
	Cultivo   string          // tipo de cultivo sembrado (café, plátano, etc.)
	Area      decimal.Decimal // hectáreas
	CreatedAt time.Time
	UpdatedAt time.Time
}
