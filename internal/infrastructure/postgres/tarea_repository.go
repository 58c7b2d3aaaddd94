package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/agrogest/AgroGest-api/internal/domain"
	"github.com/agrogest/AgroGest-api/internal/domain/entity"
	"github.com/agrogest/AgroGest-api/internal/domain/repository"
)

var _ repository.TareaRepository = (*TareaRepo)(nil)

// TareaRepo implementación de TareaRepository sobre PostgreSQL (usable con pool o tx).
type TareaRepo struct {
	q Querier
}

// NewTareaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTareaRepository(q Querier) *TareaRepo {
	return &TareaRepo{q: q}
}

const tareaColumns = `id, finca_id, lote_id, codigo, nombre, descripcion, nivel, estado, fecha_programada, fecha_ejecucion, evidencias, created_at, updated_at`

func scanTarea(row pgx.Row) (*entity.Tarea, error) {
	var t entity.Tarea
	err := row.Scan(
		&t.ID, &t.FincaID, &t.LoteID, &t.Codigo, &t.Nombre, &t.Descripcion, &t.Nivel,
		&t.Estado, &t.FechaProgramada, &t.FechaEjecucion, &t.Evidencias, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create persiste una nueva tarea.
func (r *TareaRepo) Create(tarea *entity.Tarea) error {
	query := `
		INSERT INTO tareas (id, finca_id, lote_id, codigo, nombre, descripcion, nivel, estado, fecha_programada, fecha_ejecucion, evidencias, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		tarea.ID, tarea.FincaID, tarea.LoteID, tarea.Codigo, tarea.Nombre, tarea.Descripcion,
		tarea.Nivel, tarea.Estado, tarea.FechaProgramada, tarea.FechaEjecucion,
		tarea.Evidencias, tarea.CreatedAt, tarea.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("insert tarea: %w", err)
	}
	return nil
}

// GetByID obtiene una tarea por ID.
func (r *TareaRepo) GetByID(id string) (*entity.Tarea, error) {
	query := `SELECT ` + tareaColumns + ` FROM tareas WHERE id = $1`
	t, err := scanTarea(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tarea: %w", err)
	}
	return t, nil
}

// GetForUpdate obtiene la tarea y bloquea la fila (SELECT FOR UPDATE).
// Usar solo dentro de una transacción: así dos ejecuciones concurrentes no
// pasan ambas el guard de estado.
func (r *TareaRepo) GetForUpdate(id string) (*entity.Tarea, error) {
	query := `SELECT ` + tareaColumns + ` FROM tareas WHERE id = $1 FOR UPDATE`
	t, err := scanTarea(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tarea for update: %w", err)
	}
	return t, nil
}

// ListByFinca lista tareas de una finca, opcionalmente filtradas por estado,
// por fecha programada descendente.
func (r *TareaRepo) ListByFinca(fincaID, estado string, limit, offset int) ([]*entity.Tarea, error) {
	query := `SELECT ` + tareaColumns + ` FROM tareas WHERE finca_id = $1`
	args := []any{fincaID}
	if estado != "" {
		args = append(args, estado)
		query += ` AND estado = $2`
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(` ORDER BY fecha_programada DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tareas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Tarea
	for rows.Next() {
		var t entity.Tarea
		if err := rows.Scan(&t.ID, &t.FincaID, &t.LoteID, &t.Codigo, &t.Nombre, &t.Descripcion, &t.Nivel,
			&t.Estado, &t.FechaProgramada, &t.FechaEjecucion, &t.Evidencias, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan tarea: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// Update actualiza estado, metadatos de ejecución y evidencias de una tarea.
// Codigo, nivel y lote no cambian después de la creación.
func (r *TareaRepo) Update(tarea *entity.Tarea) error {
	query := `
		UPDATE tareas SET nombre = $2, descripcion = $3, estado = $4, fecha_programada = $5, fecha_ejecucion = $6, evidencias = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		tarea.ID, tarea.Nombre, tarea.Descripcion, tarea.Estado, tarea.FechaProgramada,
		tarea.FechaEjecucion, tarea.Evidencias, tarea.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update tarea: %w", err)
	}
	return nil
}

// MaxCodigo devuelve el código más alto global; "" si no hay tareas.
func (r *TareaRepo) MaxCodigo() (string, error) {
	var codigo string
	err := r.q.QueryRow(context.Background(),
		`SELECT codigo FROM tareas ORDER BY codigo DESC LIMIT 1`,
	).Scan(&codigo)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("max codigo tarea: %w", err)
	}
	return codigo, nil
}
