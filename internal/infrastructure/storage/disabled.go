package storage

import (
	"context"
	"errors"

	"github.com/agrogest/AgroGest-api/internal/application/tarea"
)

var _ tarea.AlmacenEvidencias = (*EvidenciasDeshabilitadas)(nil)

// EvidenciasDeshabilitadas almacén nulo para cuando no hay bucket configurado.
// Todo intento de subir evidencias falla con un error claro.
type EvidenciasDeshabilitadas struct{}

func (EvidenciasDeshabilitadas) Guardar(_ context.Context, _ string, _ []byte, _ string) (string, error) {
	return "", errors.New("storage: almacén de evidencias no configurado (STORAGE_BUCKET vacío)")
}
