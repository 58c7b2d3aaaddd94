package entity

import "time"

// Estados de una tarea de campo.
// PROGRAMADA → EN_PROGRESO → EJECUTADA; CANCELADA desde PROGRAMADA o EN_PROGRESO.
// EJECUTADA y CANCELADA son terminales.
const (
	EstadoTareaProgramada = "PROGRAMADA"
	EstadoTareaEnProgreso = "EN_PROGRESO"
	EstadoTareaEjecutada  = "EJECUTADA"
	EstadoTareaCancelada  = "CANCELADA"
)

// Niveles de alcance de una tarea.
const (
	NivelTareaFinca = "FINCA"
	NivelTareaLote  = "LOTE"
)

// Tarea representa una labor de campo programada o ejecutada (fertilización,
// fumigación, siembra...). Codigo es secuencial global con formato TAR-001.
// Una tarea de nivel LOTE debe referenciar un lote; una de nivel FINCA no.
type Tarea struct {
	ID              string
	FincaID         string
	LoteID          *string
	Codigo          string
	Nombre          string
	Descripcion     string
	Nivel           string
	Estado          string
	FechaProgramada time.Time
	FechaEjecucion  *time.Time
	Evidencias      []string // referencias a archivos subidos (fotos, documentos)
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Finalizada indica si la tarea está en un estado terminal.
func (t *Tarea) Finalizada() bool {
	return t.Estado == EstadoTareaEjecutada || t.Estado == EstadoTareaCancelada
}
