package tarea

import (
	"context"

	"github.com/agrogest/AgroGest-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios que participan en la ejecución de una tarea. Todo lo que pasa
// al ejecutar (estado de la tarea, consumos de insumos, usos de maquinaria)
// comparte una sola transacción: o queda completo, o no queda nada.
type TxRunner interface {
	RunEjecucion(ctx context.Context, fn func(
		tareaRepo repository.TareaRepository,
		movRepo repository.MovimientoRepository,
		productoRepo repository.ProductoRepository,
		maquinariaRepo repository.MaquinariaRepository,
		usoRepo repository.UsoMaquinariaRepository,
	) error) error
}

// AlmacenEvidencias guarda archivos de evidencia (fotos, documentos) y devuelve
// la referencia con la que quedan registrados en la tarea.
type AlmacenEvidencias interface {
	Guardar(ctx context.Context, nombre string, contenido []byte, contentType string) (string, error)
}
