package inventario

import (
	"context"

	"github.com/agrogest/AgroGest-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad entre el registro del
// movimiento y el ajuste del stock materializado: o ambos quedan, o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovimientoRepository,
		productoRepo repository.ProductoRepository,
	) error) error
}
