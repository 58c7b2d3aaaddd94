package inventario

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agrogest/AgroGest-api/internal/domain"
	"github.com/agrogest/AgroGest-api/internal/domain/entity"
	"github.com/agrogest/AgroGest-api/internal/domain/repository"
)

// RegistrarMovimientoUseCase registra movimientos de inventario de forma
// transaccional (ENTRADA, SALIDA, AJUSTE) con bloqueo de fila (SELECT FOR
// UPDATE) sobre el producto y Commit/Rollback.
type RegistrarMovimientoUseCase struct {
	txRunner     TxRunner
	productoRepo repository.ProductoRepository
	fincaRepo    repository.FincaRepository
}

// NewRegistrarMovimientoUseCase construye el caso de uso.
func NewRegistrarMovimientoUseCase(
	txRunner TxRunner,
	productoRepo repository.ProductoRepository,
	fincaRepo repository.FincaRepository,
) *RegistrarMovimientoUseCase {
	return &RegistrarMovimientoUseCase{
		txRunner:     txRunner,
		productoRepo: productoRepo,
		fincaRepo:    fincaRepo,
	}
}

// MovimientoInput entrada para registrar un movimiento de inventario.
// Cantidad debe ser positiva para ENTRADA/SALIDA. Para AJUSTE se admite
// con signo: positivo descarga como ENTRADA y negativo como SALIDA, siempre
// registrando la magnitud positiva en el libro.
type MovimientoInput struct {
	FincaID       string
	UsuarioID     string
	ProductoID    string
	Tipo          string
	Cantidad      decimal.Decimal
	Referencia    string
	Observaciones string
}

// Registrar valida la entrada, abre una transacción, bloquea la fila del
// producto y aplica el movimiento. Para SALIDA verifica el stock disponible
// dentro de la misma transacción que escribe (sin ventana entre chequeo y
// descuento); el stock se ajusta con un delta atómico en SQL.
func (uc *RegistrarMovimientoUseCase) Registrar(ctx context.Context, input MovimientoInput) error {
	switch input.Tipo {
	case entity.TipoMovimientoEntrada, entity.TipoMovimientoSalida:
		if !input.Cantidad.GreaterThan(decimal.Zero) {
			return domain.ErrEntradaInvalida
		}
	case entity.TipoMovimientoAjuste:
		if input.Cantidad.IsZero() {
			return domain.ErrEntradaInvalida
		}
	default:
		return domain.ErrEntradaInvalida
	}
	if input.ProductoID == "" || input.FincaID == "" {
		return domain.ErrEntradaInvalida
	}

	// Validar que producto y finca existan y correspondan (solo lectura, fuera de la tx)
	producto, err := uc.productoRepo.GetByID(input.ProductoID)
	if err != nil {
		return err
	}
	if producto == nil {
		return domain.ErrNoEncontrado
	}
	if producto.FincaID != input.FincaID {
		return domain.ErrAccesoDenegado
	}

	// Normalizar AJUSTE a ENTRADA/SALIDA con magnitud positiva: el libro nunca
	// guarda cantidades con signo, la dirección la da el tipo.
	tipo := input.Tipo
	cantidad := input.Cantidad
	if tipo == entity.TipoMovimientoAjuste {
		if cantidad.IsNegative() {
			tipo = entity.TipoMovimientoSalida
			cantidad = cantidad.Neg()
		} else {
			tipo = entity.TipoMovimientoEntrada
		}
		if input.Referencia == "" {
			input.Referencia = "ajuste manual"
		}
	}

	now := time.Now()
	return uc.txRunner.Run(ctx, func(
		movRepo repository.MovimientoRepository,
		productoRepo repository.ProductoRepository,
	) error {
		return aplicarMovimiento(movRepo, productoRepo, aplicarInput{
			fincaID:       input.FincaID,
			productoID:    input.ProductoID,
			tipo:          tipo,
			cantidad:      cantidad,
			referencia:    input.Referencia,
			observaciones: input.Observaciones,
			usuarioID:     input.UsuarioID,
			fecha:         now,
		})
	})
}

// aplicarInput parámetros internos de un movimiento ya normalizado
// (tipo ENTRADA o SALIDA, cantidad positiva).
type aplicarInput struct {
	fincaID       string
	productoID    string
	tipo          string
	cantidad      decimal.Decimal
	referencia    string
	observaciones string
	usuarioID     string
	tareaID       *string
	loteID        *string
	fecha         time.Time
}

// aplicarMovimiento ejecuta el núcleo del procesador dentro de una tx ya
// abierta: bloquea la fila del producto, para SALIDA verifica disponibilidad,
// ajusta stock con delta atómico y agrega la entrada inmutable al libro.
func aplicarMovimiento(
	movRepo repository.MovimientoRepository,
	productoRepo repository.ProductoRepository,
	in aplicarInput,
) error {
	producto, err := productoRepo.GetForUpdate(in.productoID)
	if err != nil {
		return err
	}
	if producto == nil {
		return domain.ErrNoEncontrado
	}

	delta := in.cantidad
	if in.tipo == entity.TipoMovimientoSalida {
		if producto.StockActual.LessThan(in.cantidad) {
			return fmt.Errorf("%w: producto %s disponible %s %s, solicitado %s",
				domain.ErrStockInsuficiente, producto.Codigo,
				producto.StockActual, producto.UnidadMedida, in.cantidad)
		}
		delta = in.cantidad.Neg()
	}

	if err := productoRepo.AjustarStock(in.productoID, delta); err != nil {
		return err
	}

	mov := &entity.Movimiento{
		ID:             uuid.New().String(),
		FincaID:        in.fincaID,
		ProductoID:     in.productoID,
		TipoMovimiento: in.tipo,
		Cantidad:       in.cantidad,
		Referencia:     in.referencia,
		Observaciones:  in.observaciones,
		TareaID:        in.tareaID,
		LoteID:         in.loteID,
		Fecha:          in.fecha,
		CreatedAt:      in.fecha,
		CreatedBy:      in.usuarioID,
	}
	return movRepo.Create(mov)
}

// RegistrarSalidaEnTx descarga una SALIDA usando los repositorios de la
// transacción del caller (ejecución de tareas: consumo de insumos). El
// movimiento queda estampado con la tarea y el lote para trazabilidad.
func (uc *RegistrarMovimientoUseCase) RegistrarSalidaEnTx(
	movRepo repository.MovimientoRepository,
	productoRepo repository.ProductoRepository,
	fincaID, productoID, usuarioID string,
	cantidad decimal.Decimal,
	tareaID string,
	loteID *string,
	fecha time.Time,
) error {
	if !cantidad.GreaterThan(decimal.Zero) {
		return domain.ErrEntradaInvalida
	}
	return aplicarMovimiento(movRepo, productoRepo, aplicarInput{
		fincaID:    fincaID,
		productoID: productoID,
		tipo:       entity.TipoMovimientoSalida,
		cantidad:   cantidad,
		referencia: "consumo de tarea",
		usuarioID:  usuarioID,
		tareaID:    &tareaID,
		loteID:     loteID,
		fecha:      fecha,
	})
}

// RegistrarEntradaInicialEnTx registra la ENTRADA inicial de un producto recién
// creado, dentro de la misma transacción de la creación.
func RegistrarEntradaInicialEnTx(
	movRepo repository.MovimientoRepository,
	productoRepo repository.ProductoRepository,
	producto *entity.Producto,
	cantidad decimal.Decimal,
	usuarioID string,
	fecha time.Time,
) error {
	if !cantidad.GreaterThan(decimal.Zero) {
		return domain.ErrEntradaInvalida
	}
	return aplicarMovimiento(movRepo, productoRepo, aplicarInput{
		fincaID:    producto.FincaID,
		productoID: producto.ID,
		tipo:       entity.TipoMovimientoEntrada,
		cantidad:   cantidad,
		referencia: "stock inicial",
		usuarioID:  usuarioID,
		fecha:      fecha,
	})
}
