package repository

import (
	"github.com/shopspring/decimal"

	"github.com/agrogest/AgroGest-api/internal/domain/entity"
)

// ProductoRepository define el puerto de persistencia para Producto.
// StockActual nunca se escribe vía Update: solo con AjustarStock dentro de la
// transacción que registra el movimiento correspondiente.
type ProductoRepository interface {
	Create(producto *entity.Producto) error
	GetByID(id string) (*entity.Producto, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE) dentro de una tx.
	GetForUpdate(id string) (*entity.Producto, error)
	ListByFinca(fincaID string, limit, offset int) ([]*entity.Producto, error)
	Update(producto *entity.Producto) error
	// AjustarStock aplica un delta atómico sobre stock_actual en SQL
	// (stock_actual = stock_actual + delta), nunca un reemplazo calculado en memoria.
	AjustarStock(productoID string, delta decimal.Decimal) error
	// MaxCodigo devuelve el código más alto dentro de la finca ("" si no hay productos).
	MaxCodigo(fincaID string) (string, error)
}
