package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una máquina.
const (
	EstadoMaquinariaDisponible    = "DISPONIBLE"
	EstadoMaquinariaEnUso         = "EN_USO"
	EstadoMaquinariaMantenimiento = "MANTENIMIENTO"
)

// Maquinaria representa un equipo o máquina de la finca (tractor, guadaña...).
// Codigo es secuencial por finca con formato MAQ-001.
type Maquinaria struct {
	ID          string
	FincaID     string
	Codigo      string
	Nombre      string
	Tipo        string
	Marca       string
	Modelo      string
	Estado      string
	Descripcion string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// UsoMaquinaria registra el uso de una máquina durante la ejecución de una tarea.
// Se crea solo como efecto de ejecutar la tarea y es inmutable después.
// Fin se calcula como Inicio + Horas.
type UsoMaquinaria struct {
	ID           string
	FincaID      string
	MaquinariaID string
	TareaID      string
	Operador     string
	Horas        decimal.Decimal
	Inicio       time.Time
	Fin          time.Time
	CreatedAt    time.Time
}
