package repository

import "github.com/agrogest/AgroGest-api/internal/domain/entity"

// TareaRepository define el puerto de persistencia para Tarea.
type TareaRepository interface {
	Create(tarea *entity.Tarea) error
	GetByID(id string) (*entity.Tarea, error)
	// GetForUpdate bloquea la fila de la tarea (SELECT FOR UPDATE) dentro de una tx,
	// para que dos ejecuciones concurrentes no pasen ambas el guard de estado.
	GetForUpdate(id string) (*entity.Tarea, error)
	ListByFinca(fincaID, estado string, limit, offset int) ([]*entity.Tarea, error)
	Update(tarea *entity.Tarea) error
	// MaxCodigo devuelve el código más alto global ("" si no hay tareas).
	MaxCodigo() (string, error)
}
