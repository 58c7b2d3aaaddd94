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

var _ repository.FincaRepository = (*FincaRepo)(nil)

// FincaRepo implementación de FincaRepository sobre PostgreSQL (usable con pool o tx).
type FincaRepo struct {
	q Querier
}

// NewFincaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFincaRepository(q Querier) *FincaRepo {
	return &FincaRepo{q: q}
}

// Create persiste una nueva finca.
func (r *FincaRepo) Create(finca *entity.Finca) error {
	query := `
		INSERT INTO fincas (id, codigo, nombre, ubicacion, area_total, descripcion, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		finca.ID, finca.Codigo, finca.Nombre, finca.Ubicacion,
		finca.AreaTotal, finca.Descripcion, finca.CreatedAt, finca.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("insert finca: %w", err)
	}
	return nil
}

// GetByID obtiene una finca por ID.
func (r *FincaRepo) GetByID(id string) (*entity.Finca, error) {
	query := `
		SELECT id, codigo, nombre, ubicacion, area_total, descripcion, created_at, updated_at
		FROM fincas WHERE id = $1`
	var f entity.Finca
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&f.ID, &f.Codigo, &f.Nombre, &f.Ubicacion, &f.AreaTotal, &f.Descripcion, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get finca: %w", err)
	}
	return &f, nil
}

// List lista fincas con paginación, la más reciente primero.
func (r *FincaRepo) List(limit, offset int) ([]*entity.Finca, error) {
	query := `
		SELECT id, codigo, nombre, ubicacion, area_total, descripcion, created_at, updated_at
		FROM fincas ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list fincas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Finca
	for rows.Next() {
		var f entity.Finca
		if err := rows.Scan(&f.ID, &f.Codigo, &f.Nombre, &f.Ubicacion, &f.AreaTotal, &f.Descripcion, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan finca: %w", err)
		}
		list = append(list, &f)
	}
	return list, rows.Err()
}

// Update actualiza una finca existente. El código no se toca.
func (r *FincaRepo) Update(finca *entity.Finca) error {
	query := `
		UPDATE fincas SET nombre = $2, ubicacion = $3, area_total = $4, descripcion = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		finca.ID, finca.Nombre, finca.Ubicacion, finca.AreaTotal, finca.Descripcion, finca.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update finca: %w", err)
	}
	return nil
}

// MaxCodigo devuelve el código más alto existente; "" si no hay fincas.
// El orden lexicográfico funciona porque los códigos van con cero a la izquierda.
func (r *FincaRepo) MaxCodigo() (string, error) {
	var codigo string
	err := r.q.QueryRow(context.Background(),
		`SELECT codigo FROM fincas ORDER BY codigo DESC LIMIT 1`,
	).Scan(&codigo)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("max codigo finca: %w", err)
	}
	return codigo, nil
}
