package tarea

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agrogest/AgroGest-api/internal/application/inventario"
	"github.com/agrogest/AgroGest-api/internal/domain"
	"github.com/agrogest/AgroGest-api/internal/domain/entity"
	"github.com/agrogest/AgroGest-api/internal/domain/repository"
)

// OperadorPorDefecto se estampa en un uso de maquinaria cuando el caller no
// indica quién operó la máquina.
const OperadorPorDefecto = "sin asignar"

// EjecutarTareaUseCase ejecuta una tarea de campo en una sola transacción:
// actualiza el estado, descarga los consumos de insumos como SALIDAs del
// inventario y registra los usos de maquinaria. Cualquier línea inválida
// (producto inexistente, stock insuficiente, máquina inexistente) revierte
// la operación completa, incluido el cambio de estado.
type EjecutarTareaUseCase struct {
	txRunner   TxRunner
	inventario *inventario.RegistrarMovimientoUseCase
}

// NewEjecutarTareaUseCase construye el caso de uso.
func NewEjecutarTareaUseCase(txRunner TxRunner, inv *inventario.RegistrarMovimientoUseCase) *EjecutarTareaUseCase {
	return &EjecutarTareaUseCase{txRunner: txRunner, inventario: inv}
}

// ConsumoInput una línea de consumo de insumo al ejecutar la tarea.
type ConsumoInput struct {
	ProductoID string
	Cantidad   decimal.Decimal
}

// UsoMaquinariaInput una línea de uso de maquinaria al ejecutar la tarea.
type UsoMaquinariaInput struct {
	MaquinariaID string
	Horas        decimal.Decimal
	Operador     string
	Inicio       *time.Time // vacío = fecha de ejecución
}

// EjecutarInput entrada para ejecutar una tarea.
type EjecutarInput struct {
	TareaID        string
	FincaID        string
	UsuarioID      string
	NuevoEstado    string // EN_PROGRESO o EJECUTADA; vacío = EJECUTADA
	FechaEjecucion *time.Time
	Evidencias     []string
	Consumos       []ConsumoInput
	UsosMaquinaria []UsoMaquinariaInput
}

// Ejecutar aplica la ejecución en una transacción. La tarea se bloquea con
// SELECT FOR UPDATE antes del guard de estado: una tarea EJECUTADA o CANCELADA
// no puede re-ejecutarse (ErrTareaFinalizada), de lo contrario cada repetición
// descontaría el stock de nuevo.
func (uc *EjecutarTareaUseCase) Ejecutar(ctx context.Context, input EjecutarInput) error {
	nuevoEstado := input.NuevoEstado
	if nuevoEstado == "" {
		nuevoEstado = entity.EstadoTareaEjecutada
	}
	if nuevoEstado != entity.EstadoTareaEjecutada && nuevoEstado != entity.EstadoTareaEnProgreso {
		return domain.ErrEntradaInvalida
	}
	if input.TareaID == "" || input.FincaID == "" {
		return domain.ErrEntradaInvalida
	}
	for _, c := range input.Consumos {
		if c.ProductoID == "" || !c.Cantidad.GreaterThan(decimal.Zero) {
			return domain.ErrEntradaInvalida
		}
	}
	for _, u := range input.UsosMaquinaria {
		if u.MaquinariaID == "" || !u.Horas.GreaterThan(decimal.Zero) {
			return domain.ErrEntradaInvalida
		}
	}

	now := time.Now()
	fechaEjecucion := now
	if input.FechaEjecucion != nil {
		fechaEjecucion = *input.FechaEjecucion
	}

	return uc.txRunner.RunEjecucion(ctx, func(
		tareaRepo repository.TareaRepository,
		movRepo repository.MovimientoRepository,
		productoRepo repository.ProductoRepository,
		maquinariaRepo repository.MaquinariaRepository,
		usoRepo repository.UsoMaquinariaRepository,
	) error {
		t, err := tareaRepo.GetForUpdate(input.TareaID)
		if err != nil {
			return err
		}
		if t == nil {
			return domain.ErrNoEncontrado
		}
		if t.FincaID != input.FincaID {
			return domain.ErrAccesoDenegado
		}
		if t.Finalizada() {
			return domain.ErrTareaFinalizada
		}

		// 1) Estado y metadatos de ejecución
		t.Estado = nuevoEstado
		if nuevoEstado == entity.EstadoTareaEjecutada {
			t.FechaEjecucion = &fechaEjecucion
		}
		t.Evidencias = append(t.Evidencias, input.Evidencias...)
		t.UpdatedAt = now
		if err := tareaRepo.Update(t); err != nil {
			return err
		}

		// 2) Consumos: una SALIDA por línea, estampada con tarea y lote.
		// La primera línea inválida revierte todo, incluido el estado.
		for _, c := range input.Consumos {
			if err := uc.inventario.RegistrarSalidaEnTx(
				movRepo, productoRepo,
				t.FincaID, c.ProductoID, input.UsuarioID,
				c.Cantidad, t.ID, t.LoteID, fechaEjecucion,
			); err != nil {
				return err
			}
		}

		// 3) Usos de maquinaria: fin calculado como inicio + horas
		for _, u := range input.UsosMaquinaria {
			maq, err := maquinariaRepo.GetByID(u.MaquinariaID)
			if err != nil {
				return err
			}
			if maq == nil || maq.FincaID != t.FincaID {
				return fmt.Errorf("%w: maquinaria %s", domain.ErrNoEncontrado, u.MaquinariaID)
			}
			operador := u.Operador
			if operador == "" {
				operador = OperadorPorDefecto
			}
			inicio := fechaEjecucion
			if u.Inicio != nil {
				inicio = *u.Inicio
			}
			uso := &entity.UsoMaquinaria{
				ID:           uuid.New().String(),
				FincaID:      t.FincaID,
				MaquinariaID: maq.ID,
				TareaID:      t.ID,
				Operador:     operador,
				Horas:        u.Horas,
				Inicio:       inicio,
				Fin:          inicio.Add(horasADuracion(u.Horas)),
				CreatedAt:    now,
			}
			if err := usoRepo.Create(uso); err != nil {
				return err
			}
		}
		return nil
	})
}

// horasADuracion convierte horas decimales (ej. 2.5) a time.Duration.
func horasADuracion(horas decimal.Decimal) time.Duration {
	minutos := horas.Mul(decimal.NewFromInt(60)).IntPart()
	return time.Duration(minutos) * time.Minute
}
