package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Finca representa una unidad productiva (hacienda o predio agrícola).
// Codigo es secuencial global con formato FIN-001.
type Finca struct {
	ID          string
	Codigo      string
	Nombre      string
	Ubicacion   string
	AreaTotal   decimal.Decimal // hectáreas
	Descripcion string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
