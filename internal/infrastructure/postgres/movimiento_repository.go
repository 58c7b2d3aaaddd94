package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/agrogest/AgroGest-api/internal/domain/entity"
	"github.com/agrogest/AgroGest-api/internal/domain/repository"
)

var _ repository.MovimientoRepository = (*MovimientoRepo)(nil)

// MovimientoRepo implementación sobre PostgreSQL (usable con pool o tx).
// La tabla es solo-inserción: no hay UPDATE ni DELETE sobre movimientos.
type MovimientoRepo struct {
	q Querier
}

// NewMovimientoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovimientoRepository(q Querier) *MovimientoRepo {
	return &MovimientoRepo{q: q}
}

// Create persiste un movimiento de inventario.
func (r *MovimientoRepo) Create(movimiento *entity.Movimiento) error {
	query := `
		INSERT INTO movimientos_inventario (id, finca_id, producto_id, tipo_movimiento, cantidad, referencia, observaciones, tarea_id, lote_id, fecha, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	createdBy := (*string)(nil)
	if movimiento.CreatedBy != "" {
		createdBy = &movimiento.CreatedBy
	}
	_, err := r.q.Exec(context.Background(), query,
		movimiento.ID, movimiento.FincaID, movimiento.ProductoID, movimiento.TipoMovimiento,
		movimiento.Cantidad, movimiento.Referencia, movimiento.Observaciones,
		movimiento.TareaID, movimiento.LoteID, movimiento.Fecha, movimiento.CreatedAt, createdBy,
	)
	if err != nil {
		return fmt.Errorf("insert movimiento: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *MovimientoRepo) GetByID(id string) (*entity.Movimiento, error) {
	query := `
		SELECT id, finca_id, producto_id, tipo_movimiento, cantidad, referencia, observaciones, tarea_id, lote_id, fecha, created_at, COALESCE(created_by, '')
		FROM movimientos_inventario WHERE id = $1`
	var m entity.Movimiento
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.FincaID, &m.ProductoID, &m.TipoMovimiento, &m.Cantidad,
		&m.Referencia, &m.Observaciones, &m.TareaID, &m.LoteID, &m.Fecha, &m.CreatedAt, &m.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movimiento: %w", err)
	}
	return &m, nil
}

// ListByProducto lista movimientos de un producto por fecha descendente, con
// rango opcional de fechas.
func (r *MovimientoRepo) ListByProducto(productoID string, desde, hasta *time.Time, limit, offset int) ([]*entity.Movimiento, error) {
	return r.list(`producto_id = $1`, productoID, desde, hasta, limit, offset)
}

// ListByFinca lista movimientos de una finca por fecha descendente, con rango
// opcional de fechas.
func (r *MovimientoRepo) ListByFinca(fincaID string, desde, hasta *time.Time, limit, offset int) ([]*entity.Movimiento, error) {
	return r.list(`finca_id = $1`, fincaID, desde, hasta, limit, offset)
}

func (r *MovimientoRepo) list(where, id string, desde, hasta *time.Time, limit, offset int) ([]*entity.Movimiento, error) {
	query := `
		SELECT id, finca_id, producto_id, tipo_movimiento, cantidad, referencia, observaciones, tarea_id, lote_id, fecha, created_at, COALESCE(created_by, '')
		FROM movimientos_inventario WHERE ` + where
	args := []any{id}
	if desde != nil {
		args = append(args, *desde)
		query += ` AND fecha >= $` + strconv.Itoa(len(args))
	}
	if hasta != nil {
		args = append(args, *hasta)
		query += ` AND fecha <= $` + strconv.Itoa(len(args))
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(` ORDER BY fecha DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movimientos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movimiento
	for rows.Next() {
		var m entity.Movimiento
		if err := rows.Scan(&m.ID, &m.FincaID, &m.ProductoID, &m.TipoMovimiento, &m.Cantidad,
			&m.Referencia, &m.Observaciones, &m.TareaID, &m.LoteID, &m.Fecha, &m.CreatedAt, &m.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan movimiento: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
