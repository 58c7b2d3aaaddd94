package repository

import "github.com/agrogest/AgroGest-api/internal/domain/entity"

// FincaRepository define el puerto de persistencia para Finca (DIP).
type FincaRepository interface {
	Create(finca *entity.Finca) error
	GetByID(id string) (*entity.Finca, error)
	List(limit, offset int) ([]*entity.Finca, error)
	Update(finca *entity.Finca) error
	// MaxCodigo devuelve el código más alto existente ("" si no hay fincas).
	MaxCodigo() (string, error)
}
