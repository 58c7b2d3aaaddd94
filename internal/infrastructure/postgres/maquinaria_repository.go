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

var _ repository.MaquinariaRepository = (*MaquinariaRepo)(nil)

// MaquinariaRepo implementación de MaquinariaRepository sobre PostgreSQL.
type MaquinariaRepo struct {
	q Querier
}

func NewMaquinariaRepository(q Querier) *MaquinariaRepo {
	return &MaquinariaRepo{q: q}
}

const maquinariaColumns = `id, finca_id, codigo, nombre, tipo, marca, modelo, estado, descripcion, created_at, updated_at`

func scanMaquinaria(row pgx.Row) (*entity.Maquinaria, error) {
	var m entity.Maquinaria
	err := row.Scan(
		&m.ID, &m.FincaID, &m.Codigo, &m.Nombre, &m.Tipo, &m.Marca, &m.Modelo,
		&m.Estado, &m.Descripcion, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MaquinariaRepo) Create(maquinaria *entity.Maquinaria) error {
	query := `
		INSERT INTO maquinarias (id, finca_id, codigo, nombre, tipo, marca, modelo, estado, descripcion, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		maquinaria.ID, maquinaria.FincaID, maquinaria.Codigo, maquinaria.Nombre, maquinaria.Tipo,
		maquinaria.Marca, maquinaria.Modelo, maquinaria.Estado, maquinaria.Descripcion,
		maquinaria.CreatedAt, maquinaria.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("insert maquinaria: %w", err)
	}
	return nil
}

func (r *MaquinariaRepo) GetByID(id string) (*entity.Maquinaria, error) {
	query := `SELECT ` + maquinariaColumns + ` FROM maquinarias WHERE id = $1`
	m, err := scanMaquinaria(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get maquinaria: %w", err)
	}
	return m, nil
}

func (r *MaquinariaRepo) ListByFinca(fincaID string, limit, offset int) ([]*entity.Maquinaria, error) {
	query := `SELECT ` + maquinariaColumns + ` FROM maquinarias WHERE finca_id = $1 ORDER BY codigo LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, fincaID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list maquinarias: %w", err)
	}
	defer rows.Close()
	var list []*entity.Maquinaria
	for rows.Next() {
		var m entity.Maquinaria
		if err := rows.Scan(&m.ID, &m.FincaID, &m.Codigo, &m.Nombre, &m.Tipo, &m.Marca, &m.Modelo,
			&m.Estado, &m.Descripcion, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan maquinaria: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// Update actualiza los datos editables de la máquina. Codigo no cambia.
func (r *MaquinariaRepo) Update(maquinaria *entity.Maquinaria) error {
	query := `
		UPDATE maquinarias SET nombre = $2, tipo = $3, marca = $4, modelo = $5, estado = $6, descripcion = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		maquinaria.ID, maquinaria.Nombre, maquinaria.Tipo, maquinaria.Marca, maquinaria.Modelo,
		maquinaria.Estado, maquinaria.Descripcion, maquinaria.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update maquinaria: %w", err)
	}
	return nil
}

// MaxCodigo devuelve el código más alto dentro de la finca; "" si no hay máquinas.
func (r *MaquinariaRepo) MaxCodigo(fincaID string) (string, error) {
	var codigo string
	err := r.q.QueryRow(context.Background(),
		`SELECT codigo FROM maquinarias WHERE finca_id = $1 ORDER BY codigo DESC LIMIT 1`, fincaID,
	).Scan(&codigo)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("max codigo maquinaria: %w", err)
	}
	return codigo, nil
}

var _ repository.UsoMaquinariaRepository = (*UsoMaquinariaRepo)(nil)

// UsoMaquinariaRepo persiste los registros de uso de maquinaria.
// Solo inserciones y lecturas: los usos son inmutables.
type UsoMaquinariaRepo struct {
	q Querier
}

func NewUsoMaquinariaRepository(q Querier) *UsoMaquinariaRepo {
	return &UsoMaquinariaRepo{q: q}
}

const usoColumns = `id, finca_id, maquinaria_id, tarea_id, operador, horas, inicio, fin, created_at`

func (r *UsoMaquinariaRepo) Create(uso *entity.UsoMaquinaria) error {
	query := `
		INSERT INTO usos_maquinaria (id, finca_id, maquinaria_id, tarea_id, operador, horas, inicio, fin, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		uso.ID, uso.FincaID, uso.MaquinariaID, uso.TareaID, uso.Operador,
		uso.Horas, uso.Inicio, uso.Fin, uso.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert uso maquinaria: %w", err)
	}
	return nil
}

func (r *UsoMaquinariaRepo) ListByTarea(tareaID string) ([]*entity.UsoMaquinaria, error) {
	query := `SELECT ` + usoColumns + ` FROM usos_maquinaria WHERE tarea_id = $1 ORDER BY inicio`
	return r.list(query, tareaID)
}

func (r *UsoMaquinariaRepo) ListByMaquinaria(maquinariaID string, limit, offset int) ([]*entity.UsoMaquinaria, error) {
	query := `SELECT ` + usoColumns + ` FROM usos_maquinaria WHERE maquinaria_id = $1 ORDER BY inicio DESC LIMIT $2 OFFSET $3`
	return r.list(query, maquinariaID, limit, offset)
}

func (r *UsoMaquinariaRepo) list(query string, args ...any) ([]*entity.UsoMaquinaria, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list usos maquinaria: %w", err)
	}
	defer rows.Close()
	var list []*entity.UsoMaquinaria
	for rows.Next() {
		var u entity.UsoMaquinaria
		if err := rows.Scan(&u.ID, &u.FincaID, &u.MaquinariaID, &u.TareaID, &u.Operador,
			&u.Horas, &u.Inicio, &u.Fin, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan uso maquinaria: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}
