package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de producto/insumo agrícola.
const (
	CategoriaFertilizante = "FERTILIZANTE"
	CategoriaPlaguicida   = "PLAGUICIDA"
	CategoriaSemilla      = "SEMILLA"
	CategoriaHerramienta  = "HERRAMIENTA"
	CategoriaOtro         = "OTRO"
)

// Producto representa un insumo o producto de inventario de una finca.
// Codigo es secuencial por finca con formato PRO-001. StockActual es el saldo
// materializado: siempre igual a la suma con signo de sus movimientos
// (ENTRADA suma, SALIDA resta) y nunca se edita directamente — solo cambia
// dentro de la transacción que registra el movimiento.
type Producto struct {
	ID            string
	FincaID       string
	Codigo        string
	Nombre        string
	Categoria     string
	UnidadMedida  string          // kg, lt, unidad...
	StockActual   decimal.Decimal // nunca negativo (CHECK en DB)
	StockMinimo   decimal.Decimal // umbral de alerta de reposición
	Descripcion   string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
