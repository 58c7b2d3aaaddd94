package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agrogest/AgroGest-api/internal/application/inventario"
	"github.com/agrogest/AgroGest-api/internal/application/tarea"
	"github.com/agrogest/AgroGest-api/internal/domain/repository"
)

// Ensure TxRunner implements inventario.TxRunner and tarea.TxRunner.
var _ inventario.TxRunner = (*TxRunner)(nil)
var _ tarea.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con los repos de inventario atados a
// la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovimientoRepository,
	productoRepo repository.ProductoRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	movRepo := NewMovimientoRepository(tx)
	productoRepo := NewProductoRepository(tx)

	if err := fn(movRepo, productoRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunEjecucion inicia una transacción con todos los repos que participan en la
// ejecución de una tarea (estado + consumos + usos de maquinaria).
func (r *TxRunner) RunEjecucion(ctx context.Context, fn func(
	tareaRepo repository.TareaRepository,
	movRepo repository.MovimientoRepository,
	productoRepo repository.ProductoRepository,
	maquinariaRepo repository.MaquinariaRepository,
	usoRepo repository.UsoMaquinariaRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tareaRepo := NewTareaRepository(tx)
	movRepo := NewMovimientoRepository(tx)
	productoRepo := NewProductoRepository(tx)
	maquinariaRepo := NewMaquinariaRepository(tx)
	usoRepo := NewUsoMaquinariaRepository(tx)

	if err := fn(tareaRepo, movRepo, productoRepo, maquinariaRepo, usoRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
