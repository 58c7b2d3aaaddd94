package repository

import (
	"time"

	"github.com/agrogest/AgroGest-api/internal/domain/entity"
)

// MovimientoRepository define el puerto de persistencia para el libro de movimientos.
// Solo inserciones y lecturas: los movimientos nunca se actualizan ni se borran.
type MovimientoRepository interface {
	Create(movimiento *entity.Movimiento) error
	GetByID(id string) (*entity.Movimiento, error)
	ListByProducto(productoID string, desde, hasta *time.Time, limit, offset int) ([]*entity.Movimiento, error)
	ListByFinca(fincaID string, desde, hasta *time.Time, limit, offset int) ([]*entity.Movimiento, error)
}
