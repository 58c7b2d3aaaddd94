package repository

import "github.com/agrogest/AgroGest-api/internal/domain/entity"

// LoteRepository define el puerto de persistencia para Lote.
type LoteRepository interface {
	Create(lote *entity.Lote) error
	GetByID(id string) (*entity.Lote, error)
	ListByFinca(fincaID string, limit, offset int) ([]*entity.Lote, error)
	Update(lote *entity.Lote) error
	// MaxCodigo devuelve el código más alto dentro de la finca ("" si no hay lotes).
	MaxCodigo(fincaID string) (string, error)
}
