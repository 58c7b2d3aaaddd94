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

var _ repository.LoteRepository = (*LoteRepo)(nil)

// LoteRepo implementación de LoteRepository sobre PostgreSQL (usable con pool o tx).
type LoteRepo struct {
	q Querier
}

// NewLoteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLoteRepository(q Querier) *LoteRepo {
	return &LoteRepo{q: q}
}

// Create persiste un nuevo lote.
func (r *LoteRepo) Create(lote *entity.Lote) error {
	query := `
		INSERT INTO lotes (id, finca_id, codigo, nombre, cultivo, area, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		lote.ID, lote.FincaID, lote.Codigo, lote.Nombre, lote.Cultivo,
		lote.Area, lote.CreatedAt, lote.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("insert lote: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID.
func (r *LoteRepo) GetByID(id string) (*entity.Lote, error) {
	query := `
		SELECT id, finca_id, codigo, nombre, cultivo, area, created_at, updated_at
		FROM lotes WHERE id = $1`
	var l entity.Lote
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&l.ID, &l.FincaID, &l.Codigo, &l.Nombre, &l.Cultivo, &l.Area, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lote: %w", err)
	}
	return &l, nil
}

// ListByFinca lista lotes de una finca ordenados por código.
func (r *LoteRepo) ListByFinca(fincaID string, limit, offset int) ([]*entity.Lote, error) {
	query := `
		SELECT id, finca_id, codigo, nombre, cultivo, area, created_at, updated_at
		FROM lotes WHERE finca_id = $1 ORDER BY codigo LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, fincaID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list lotes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Lote
	for rows.Next() {
		var l entity.Lote
		if err := rows.Scan(&l.ID, &l.FincaID, &l.Codigo, &l.Nombre, &l.Cultivo, &l.Area, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan lote: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// Update actualiza un lote existente. El código no se toca.
func (r *LoteRepo) Update(lote *entity.Lote) error {
	query := `
		UPDATE lotes SET nombre = $2, cultivo = $3, area = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		lote.ID, lote.Nombre, lote.Cultivo, lote.Area, lote.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update lote: %w", err)
	}
	return nil
}

// MaxCodigo devuelve el código más alto dentro de la finca; "" si no hay lotes.
func (r *LoteRepo) MaxCodigo(fincaID string) (string, error) {
	var codigo string
	err := r.q.QueryRow(context.Background(),
		`SELECT codigo FROM lotes WHERE finca_id = $1 ORDER BY codigo DESC LIMIT 1`,
		fincaID,
	).Scan(&codigo)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("max codigo lote: %w", err)
	}
	return codigo, nil
}
