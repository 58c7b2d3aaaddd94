package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	TipoMovimientoEntrada = "ENTRADA"
	TipoMovimientoSalida  = "SALIDA"
	TipoMovimientoAjuste  = "AJUSTE" // tipo de entrada en la API; en el libro se normaliza a ENTRADA/SALIDA
)

// Movimiento es una entrada del libro de inventario: inmutable una vez creada.
// Cantidad siempre es positiva; la dirección la da TipoMovimiento, no el signo.
// TareaID y LoteID quedan estampados cuando el movimiento nace de la ejecución
// de una tarea (trazabilidad del consumo por labor y por lote).
type Movimiento struct {
	ID             string
	FincaID        string
	ProductoID     string
	TipoMovimiento string
	Cantidad       decimal.Decimal
	Referencia     string
	Observaciones  string
	TareaID        *string
	LoteID         *string
	Fecha          time.Time
	CreatedAt      time.Time
	CreatedBy      string
}

// Signo devuelve +1 para ENTRADA y -1 para SALIDA (efecto sobre StockActual).
func (m *Movimiento) Signo() decimal.Decimal {
	if m.TipoMovimiento == TipoMovimientoSalida {
		return decimal.NewFromInt(-1)
	}
	return decimal.NewFromInt(1)
}
