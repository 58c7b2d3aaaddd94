package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrogest/AgroGest-api/internal/application/dto"
	"github.com/agrogest/AgroGest-api/internal/application/usecase"
	"github.com/agrogest/AgroGest-api/internal/domain"
	"github.com/agrogest/AgroGest-api/internal/domain/entity"
	"github.com/agrogest/AgroGest-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memProductos struct {
	porID map[string]*entity.Producto
	// fallosCreate hace fallar Create con ErrDuplicado las primeras n veces,
	// para simular la carrera de dos creaciones mintando el mismo código.
	fallosCreate int
}

func newMemProductos(productos ...*entity.Producto) *memProductos {
	m := &memProductos{porID: make(map[string]*entity.Producto)}
	for _, p := range productos {
		copia := *p
		m.porID[p.ID] = &copia
	}
	return m
}

func (m *memProductos) Create(p *entity.Producto) error {
	if m.fallosCreate > 0 {
		m.fallosCreate--
		return domain.ErrDuplicado
	}
	copia := *p
	m.porID[p.ID] = &copia
	return nil
}

func (m *memProductos) GetByID(id string) (*entity.Producto, error) {
	p, ok := m.porID[id]
	if !ok {
		return nil, nil
	}
	copia := *p
	return &copia, nil
}

func (m *memProductos) GetForUpdate(id string) (*entity.Producto, error) { return m.GetByID(id) }

func (m *memProductos) ListByFinca(fincaID string, limit, offset int) ([]*entity.Producto, error) {
	var out []*entity.Producto
	for _, p := range m.porID {
		if p.FincaID == fincaID {
			copia := *p
			out = append(out, &copia)
		}
	}
	return out, nil
}

func (m *memProductos) Update(p *entity.Producto) error {
	existente, ok := m.porID[p.ID]
	if !ok {
		return domain.ErrNoEncontrado
	}
	stock := existente.StockActual
	copia := *p
	copia.StockActual = stock
	m.porID[p.ID] = &copia
	return nil
}

func (m *memProductos) AjustarStock(productoID string, delta decimal.Decimal) error {
	p, ok := m.porID[productoID]
	if !ok {
		return domain.ErrNoEncontrado
	}
	nuevo := p.StockActual.Add(delta)
	if nuevo.IsNegative() {
		return domain.ErrStockInsuficiente
	}
	p.StockActual = nuevo
	return nil
}

func (m *memProductos) MaxCodigo(fincaID string) (string, error) {
	max := ""
	for _, p := range m.porID {
		if p.FincaID == fincaID && p.Codigo > max {
			max = p.Codigo
		}
	}
	return max, nil
}

type memMovimientos struct {
	items []*entity.Movimiento
}

func (m *memMovimientos) Create(mov *entity.Movimiento) error {
	copia := *mov
	m.items = append(m.items, &copia)
	return nil
}

func (m *memMovimientos) GetByID(string) (*entity.Movimiento, error) { return nil, nil }

func (m *memMovimientos) ListByProducto(string, *time.Time, *time.Time, int, int) ([]*entity.Movimiento, error) {
	return nil, nil
}

func (m *memMovimientos) ListByFinca(string, *time.Time, *time.Time, int, int) ([]*entity.Movimiento, error) {
	return nil, nil
}

type memFincas struct {
	porID map[string]*entity.Finca
}

func (m *memFincas) Create(f *entity.Finca) error { return nil }

func (m *memFincas) GetByID(id string) (*entity.Finca, error) {
	f, ok := m.porID[id]
	if !ok {
		return nil, nil
	}
	copia := *f
	return &copia, nil
}

func (m *memFincas) List(int, int) ([]*entity.Finca, error) { return nil, nil }
func (m *memFincas) Update(*entity.Finca) error             { return nil }
func (m *memFincas) MaxCodigo() (string, error)             { return "", nil }

// memTx pasa los repos directamente; si fn falla restaura productos y
// movimientos (Rollback).
type memTx struct {
	productos   *memProductos
	movimientos *memMovimientos
}

func (tx *memTx) Run(_ context.Context, fn func(repository.MovimientoRepository, repository.ProductoRepository) error) error {
	snapProductos := make(map[string]entity.Producto, len(tx.productos.porID))
	for id, p := range tx.productos.porID {
		snapProductos[id] = *p
	}
	snapMovs := len(tx.movimientos.items)

	if err := fn(tx.movimientos, tx.productos); err != nil {
		for id := range tx.productos.porID {
			copia := snapProductos[id]
			tx.productos.porID[id] = &copia
		}
		for id := range tx.productos.porID {
			if _, existia := snapProductos[id]; !existia {
				delete(tx.productos.porID, id)
			}
		}
		tx.movimientos.items = tx.movimientos.items[:snapMovs]
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario base
// ──────────────────────────────────────────────────────────────────────────────

const fincaID = "finca-1"

func nuevoEscenario(existentes ...*entity.Producto) (*usecase.ProductoUseCase, *memProductos, *memMovimientos) {
	productos := newMemProductos(existentes...)
	movimientos := &memMovimientos{}
	fincas := &memFincas{porID: map[string]*entity.Finca{
		fincaID: {ID: fincaID, Codigo: "FIN-001", Nombre: "La Esperanza"},
	}}
	tx := &memTx{productos: productos, movimientos: movimientos}
	uc := usecase.NewProductoUseCase(productos, fincas, tx)
	return uc, productos, movimientos
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestCrearProducto_PrimerCodigoEsPRO001(t *testing.T) {
	uc, _, _ := nuevoEscenario()

	out, err := uc.Crear(context.Background(), fincaID, dto.CreateProductoRequest{
		Nombre:       "Urea 46%",
		Categoria:    entity.CategoriaFertilizante,
		UnidadMedida: "kg",
	})
	require.NoError(t, err)
	assert.Equal(t, "PRO-001", out.Codigo)
	assert.True(t, out.StockActual.IsZero(), "sin stock inicial el producto nace en cero")
}

func TestCrearProducto_CodigoSigueAlMayorExistente(t *testing.T) {
	uc, _, _ := nuevoEscenario(
		&entity.Producto{ID: "p7", FincaID: fincaID, Codigo: "PRO-007", Nombre: "Abono"},
		&entity.Producto{ID: "p3", FincaID: fincaID, Codigo: "PRO-003", Nombre: "Cal"},
	)

	out, err := uc.Crear(context.Background(), fincaID, dto.CreateProductoRequest{Nombre: "Herbicida"})
	require.NoError(t, err)
	assert.Equal(t, "PRO-008", out.Codigo)
}

func TestCrearProducto_CodigosPorFincaSonIndependientes(t *testing.T) {
	uc, _, _ := nuevoEscenario(
		&entity.Producto{ID: "ajeno", FincaID: "finca-2", Codigo: "PRO-042", Nombre: "Otro"},
	)

	out, err := uc.Crear(context.Background(), fincaID, dto.CreateProductoRequest{Nombre: "Urea"})
	require.NoError(t, err)
	assert.Equal(t, "PRO-001", out.Codigo,
		"la secuencia de otra finca no debe afectar a esta")
}

func TestCrearProducto_StockInicialGeneraEntrada(t *testing.T) {
	uc, productos, movimientos := nuevoEscenario()

	out, err := uc.Crear(context.Background(), fincaID, dto.CreateProductoRequest{
		Nombre:       "Urea 46%",
		UnidadMedida: "kg",
		StockInicial: decimal.RequireFromString("120"),
	})
	require.NoError(t, err)

	assert.True(t, out.StockActual.Equal(decimal.RequireFromString("120")),
		"la respuesta debe traer el stock materializado por la transacción")

	p, _ := productos.GetByID(out.ID)
	assert.True(t, p.StockActual.Equal(decimal.RequireFromString("120")))

	require.Len(t, movimientos.items, 1)
	mov := movimientos.items[0]
	assert.Equal(t, entity.TipoMovimientoEntrada, mov.TipoMovimiento)
	assert.True(t, mov.Cantidad.Equal(decimal.RequireFromString("120")))
	assert.Equal(t, "stock inicial", mov.Referencia)
}

func TestCrearProducto_ReintentaTrasColisionDeCodigo(t *testing.T) {
	uc, productos, _ := nuevoEscenario()
	productos.fallosCreate = 1 // la primera inserción choca con un código duplicado

	out, err := uc.Crear(context.Background(), fincaID, dto.CreateProductoRequest{Nombre: "Urea"})
	require.NoError(t, err, "una colisión aislada debe resolverse re-mintando")
	assert.NotEmpty(t, out.Codigo)
}

func TestCrearProducto_ColisionesPersistentesAgotanReintentos(t *testing.T) {
	uc, productos, _ := nuevoEscenario()
	productos.fallosCreate = 10 // nunca deja de chocar

	_, err := uc.Crear(context.Background(), fincaID, dto.CreateProductoRequest{Nombre: "Urea"})
	assert.ErrorIs(t, err, domain.ErrDuplicado)
}

func TestCrearProducto_Validaciones(t *testing.T) {
	uc, _, _ := nuevoEscenario()

	_, err := uc.Crear(context.Background(), fincaID, dto.CreateProductoRequest{Nombre: ""})
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)

	_, err = uc.Crear(context.Background(), fincaID, dto.CreateProductoRequest{
		Nombre:       "Urea",
		StockInicial: decimal.NewFromInt(-5),
	})
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)

	_, err = uc.Crear(context.Background(), "finca-fantasma", dto.CreateProductoRequest{Nombre: "Urea"})
	assert.ErrorIs(t, err, domain.ErrNoEncontrado)
}

func TestUpdateProducto_NoTocaStockNiCodigo(t *testing.T) {
	uc, productos, _ := nuevoEscenario(&entity.Producto{
		ID:          "p1",
		FincaID:     fincaID,
		Codigo:      "PRO-001",
		Nombre:      "Urea",
		StockActual: decimal.RequireFromString("50"),
	})

	nombre := "Urea granulada"
	out, err := uc.Update("p1", dto.UpdateProductoRequest{Nombre: &nombre})
	require.NoError(t, err)
	assert.Equal(t, "Urea granulada", out.Nombre)
	assert.Equal(t, "PRO-001", out.Codigo)

	p, _ := productos.GetByID("p1")
	assert.True(t, p.StockActual.Equal(decimal.RequireFromString("50")),
		"update de catálogo no debe tocar el stock")
}
