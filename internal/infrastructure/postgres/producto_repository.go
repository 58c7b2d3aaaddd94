package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/agrogest/AgroGest-api/internal/domain"
	"github.com/agrogest/AgroGest-api/internal/domain/entity"
	"github.com/agrogest/AgroGest-api/internal/domain/repository"
)

var _ repository.ProductoRepository = (*ProductoRepo)(nil)

// ProductoRepo implementación de ProductoRepository sobre PostgreSQL (usable con pool o tx).
type ProductoRepo struct {
	q Querier
}

// NewProductoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductoRepository(q Querier) *ProductoRepo {
	return &ProductoRepo{q: q}
}

const productoColumns = `id, finca_id, codigo, nombre, categoria, unidad_medida, stock_actual, stock_minimo, descripcion, created_at, updated_at`

func scanProducto(row pgx.Row) (*entity.Producto, error) {
	var p entity.Producto
	err := row.Scan(
		&p.ID, &p.FincaID, &p.Codigo, &p.Nombre, &p.Categoria, &p.UnidadMedida,
		&p.StockActual, &p.StockMinimo, &p.Descripcion, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un nuevo producto. El stock arranca en cero.
func (r *ProductoRepo) Create(producto *entity.Producto) error {
	query := `
		INSERT INTO productos (id, finca_id, codigo, nombre, categoria, unidad_medida, stock_actual, stock_minimo, descripcion, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		producto.ID, producto.FincaID, producto.Codigo, producto.Nombre, producto.Categoria,
		producto.UnidadMedida, producto.StockActual, producto.StockMinimo, producto.Descripcion,
		producto.CreatedAt, producto.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("insert producto: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductoRepo) GetByID(id string) (*entity.Producto, error) {
	query := `SELECT ` + productoColumns + ` FROM productos WHERE id = $1`
	p, err := scanProducto(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto: %w", err)
	}
	return p, nil
}

// GetForUpdate obtiene el producto y bloquea la fila (SELECT FOR UPDATE).
// Usar solo dentro de una transacción.
func (r *ProductoRepo) GetForUpdate(id string) (*entity.Producto, error) {
	query := `SELECT ` + productoColumns + ` FROM productos WHERE id = $1 FOR UPDATE`
	p, err := scanProducto(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto for update: %w", err)
	}
	return p, nil
}

// ListByFinca lista productos de una finca ordenados por código.
func (r *ProductoRepo) ListByFinca(fincaID string, limit, offset int) ([]*entity.Producto, error) {
	query := `SELECT ` + productoColumns + ` FROM productos WHERE finca_id = $1 ORDER BY codigo LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, fincaID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list productos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Producto
	for rows.Next() {
		var p entity.Producto
		if err := rows.Scan(&p.ID, &p.FincaID, &p.Codigo, &p.Nombre, &p.Categoria, &p.UnidadMedida,
			&p.StockActual, &p.StockMinimo, &p.Descripcion, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan producto: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Update actualiza un producto. No toca codigo ni stock_actual (se manejan vía movimientos).
func (r *ProductoRepo) Update(producto *entity.Producto) error {
	query := `
		UPDATE productos SET nombre = $2, categoria = $3, unidad_medida = $4, stock_minimo = $5, descripcion = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		producto.ID, producto.Nombre, producto.Categoria, producto.UnidadMedida,
		producto.StockMinimo, producto.Descripcion, producto.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update producto: %w", err)
	}
	return nil
}

// AjustarStock aplica un delta atómico sobre stock_actual en SQL: el valor
// nunca se reemplaza por uno calculado en memoria. El CHECK stock_actual >= 0
// de la tabla es la última línea de defensa contra salidas concurrentes.
func (r *ProductoRepo) AjustarStock(productoID string, delta decimal.Decimal) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE productos SET stock_actual = stock_actual + $2, updated_at = now() WHERE id = $1`,
		productoID, delta,
	)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrStockInsuficiente
		}
		return fmt.Errorf("ajustar stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNoEncontrado
	}
	return nil
}

// MaxCodigo devuelve el código más alto dentro de la finca; "" si no hay productos.
func (r *ProductoRepo) MaxCodigo(fincaID string) (string, error) {
	var codigo string
	err := r.q.QueryRow(context.Background(),
		`SELECT codigo FROM productos WHERE finca_id = $1 ORDER BY codigo DESC LIMIT 1`,
		fincaID,
	).Scan(&codigo)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("max codigo producto: %w", err)
	}
	return codigo, nil
}
