package repository

import "github.com/agrogest/AgroGest-api/internal/domain/entity"

// MaquinariaRepository define el puerto de persistencia para Maquinaria.
type MaquinariaRepository interface {
	Create(maquinaria *entity.Maquinaria) error
	GetByID(id string) (*entity.Maquinaria, error)
	ListByFinca(fincaID string, limit, offset int) ([]*entity.Maquinaria, error)
	Update(maquinaria *entity.Maquinaria) error
	// MaxCodigo devuelve el código más alto dentro de la finca ("" si no hay máquinas).
	MaxCodigo(fincaID string) (string, error)
}

// UsoMaquinariaRepository define el puerto para registros de uso de maquinaria.
// Solo inserciones y lecturas: los usos son inmutables.
type UsoMaquinariaRepository interface {
	Create(uso *entity.UsoMaquinaria) error
	ListByTarea(tareaID string) ([]*entity.UsoMaquinaria, error)
	ListByMaquinaria(maquinariaID string, limit, offset int) ([]*entity.UsoMaquinaria, error)
}
