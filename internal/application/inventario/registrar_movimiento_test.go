package inventario_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrogest/AgroGest-api/internal/application/inventario"
	"github.com/agrogest/AgroGest-api/internal/domain"
	"github.com/agrogest/AgroGest-api/internal/domain/entity"
	"github.com/agrogest/AgroGest-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memProductos struct {
	porID map[string]*entity.Producto
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

func (m *memProductos) GetForUpdate(id string) (*entity.Producto, error) {
	return m.GetByID(id)
}

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
	copia.StockActual = stock // el stock solo cambia vía AjustarStock
	m.porID[p.ID] = &copia
	return nil
}

func (m *memProductos) AjustarStock(productoID string, delta decimal.Decimal) error {
	p, ok := m.porID[productoID]
	if !ok {
		return domain.ErrNoEncontrado
	}
	nuevo := p.StockActual.Add(delta)
	// Equivale al CHECK (stock_actual >= 0) de la tabla
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

func (m *memMovimientos) GetByID(id string) (*entity.Movimiento, error) {
	for _, mov := range m.items {
		if mov.ID == id {
			copia := *mov
			return &copia, nil
		}
	}
	return nil, nil
}

func (m *memMovimientos) ListByProducto(productoID string, _, _ *time.Time, _, _ int) ([]*entity.Movimiento, error) {
	var out []*entity.Movimiento
	for _, mov := range m.items {
		if mov.ProductoID == productoID {
			copia := *mov
			out = append(out, &copia)
		}
	}
	return out, nil
}

func (m *memMovimientos) ListByFinca(fincaID string, _, _ *time.Time, _, _ int) ([]*entity.Movimiento, error) {
	var out []*entity.Movimiento
	for _, mov := range m.items {
		if mov.FincaID == fincaID {
			copia := *mov
			out = append(out, &copia)
		}
	}
	return out, nil
}

type memFincas struct {
	porID map[string]*entity.Finca
}

func newMemFincas(fincas ...*entity.Finca) *memFincas {
	m := &memFincas{porID: make(map[string]*entity.Finca)}
	for _, f := range fincas {
		copia := *f
		m.porID[f.ID] = &copia
	}
	return m
}

func (m *memFincas) Create(f *entity.Finca) error {
	copia := *f
	m.porID[f.ID] = &copia
	return nil
}

func (m *memFincas) GetByID(id string) (*entity.Finca, error) {
	f, ok := m.porID[id]
	if !ok {
		return nil, nil
	}
	copia := *f
	return &copia, nil
}

func (m *memFincas) List(limit, offset int) ([]*entity.Finca, error) {
	var out []*entity.Finca
	for _, f := range m.porID {
		copia := *f
		out = append(out, &copia)
	}
	return out, nil
}

func (m *memFincas) Update(f *entity.Finca) error {
	copia := *f
	m.porID[f.ID] = &copia
	return nil
}

func (m *memFincas) MaxCodigo() (string, error) {
	max := ""
	for _, f := range m.porID {
		if f.Codigo > max {
			max = f.Codigo
		}
	}
	return max, nil
}

// memTx simula la transacción: si fn falla, restaura productos y movimientos
// al estado previo (equivalente al Rollback).
type memTx struct {
	productos   *memProductos
	movimientos *memMovimientos
}

func (tx *memTx) Run(_ context.Context, fn func(repository.MovimientoRepository, repository.ProductoRepository) error) error {
	snapshotProductos := make(map[string]entity.Producto, len(tx.productos.porID))
	for id, p := range tx.productos.porID {
		snapshotProductos[id] = *p
	}
	snapshotMovs := len(tx.movimientos.items)

	if err := fn(tx.movimientos, tx.productos); err != nil {
		for id := range tx.productos.porID {
			copia := snapshotProductos[id]
			tx.productos.porID[id] = &copia
		}
		tx.movimientos.items = tx.movimientos.items[:snapshotMovs]
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario base
// ──────────────────────────────────────────────────────────────────────────────

const (
	fincaID    = "finca-1"
	productoID = "prod-1"
	usuarioID  = "user-1"
)

func nuevoEscenario(stock string) (*inventario.RegistrarMovimientoUseCase, *memProductos, *memMovimientos) {
	productos := newMemProductos(&entity.Producto{
		ID:           productoID,
		FincaID:      fincaID,
		Codigo:       "PRO-001",
		Nombre:       "Urea 46%",
		Categoria:    entity.CategoriaFertilizante,
		UnidadMedida: "kg",
		StockActual:  decimal.RequireFromString(stock),
	})
	movimientos := &memMovimientos{}
	fincas := newMemFincas(&entity.Finca{ID: fincaID, Codigo: "FIN-001", Nombre: "La Esperanza"})
	tx := &memTx{productos: productos, movimientos: movimientos}
	uc := inventario.NewRegistrarMovimientoUseCase(tx, productos, fincas)
	return uc, productos, movimientos
}

func stockDe(t *testing.T, productos *memProductos, id string) decimal.Decimal {
	t.Helper()
	p, err := productos.GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.StockActual
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestRegistrar_EntradaAumentaStockYDejaRastro(t *testing.T) {
	uc, productos, movimientos := nuevoEscenario("10")

	err := uc.Registrar(context.Background(), inventario.MovimientoInput{
		FincaID:    fincaID,
		UsuarioID:  usuarioID,
		ProductoID: productoID,
		Tipo:       entity.TipoMovimientoEntrada,
		Cantidad:   decimal.RequireFromString("40"),
		Referencia: "compra proveedor",
	})
	require.NoError(t, err)

	assert.True(t, stockDe(t, productos, productoID).Equal(decimal.RequireFromString("50")),
		"el stock debe quedar en 50")
	require.Len(t, movimientos.items, 1)
	mov := movimientos.items[0]
	assert.Equal(t, entity.TipoMovimientoEntrada, mov.TipoMovimiento)
	assert.True(t, mov.Cantidad.Equal(decimal.RequireFromString("40")))
	assert.Equal(t, usuarioID, mov.CreatedBy)
}

func TestRegistrar_SalidaDescuentaStock(t *testing.T) {
	uc, productos, movimientos := nuevoEscenario("100")

	err := uc.Registrar(context.Background(), inventario.MovimientoInput{
		FincaID:    fincaID,
		UsuarioID:  usuarioID,
		ProductoID: productoID,
		Tipo:       entity.TipoMovimientoSalida,
		Cantidad:   decimal.RequireFromString("30"),
	})
	require.NoError(t, err)

	assert.True(t, stockDe(t, productos, productoID).Equal(decimal.RequireFromString("70")))
	require.Len(t, movimientos.items, 1)
	assert.Equal(t, entity.TipoMovimientoSalida, movimientos.items[0].TipoMovimiento)
	// El libro siempre guarda la magnitud positiva
	assert.True(t, movimientos.items[0].Cantidad.IsPositive())
}

func TestRegistrar_SalidaSinStockNoDejaNada(t *testing.T) {
	uc, productos, movimientos := nuevoEscenario("20")

	err := uc.Registrar(context.Background(), inventario.MovimientoInput{
		FincaID:    fincaID,
		UsuarioID:  usuarioID,
		ProductoID: productoID,
		Tipo:       entity.TipoMovimientoSalida,
		Cantidad:   decimal.RequireFromString("30"),
	})
	require.ErrorIs(t, err, domain.ErrStockInsuficiente)
	assert.Contains(t, err.Error(), "PRO-001", "el error debe identificar el producto")

	assert.True(t, stockDe(t, productos, productoID).Equal(decimal.RequireFromString("20")),
		"el stock no debe cambiar cuando se rechaza la salida")
	assert.Empty(t, movimientos.items, "no debe quedar ningún movimiento en el libro")
}

func TestRegistrar_AjusteNegativoSeNormalizaASalida(t *testing.T) {
	uc, productos, movimientos := nuevoEscenario("50")

	err := uc.Registrar(context.Background(), inventario.MovimientoInput{
		FincaID:    fincaID,
		UsuarioID:  usuarioID,
		ProductoID: productoID,
		Tipo:       entity.TipoMovimientoAjuste,
		Cantidad:   decimal.RequireFromString("-5"),
	})
	require.NoError(t, err)

	assert.True(t, stockDe(t, productos, productoID).Equal(decimal.RequireFromString("45")))
	require.Len(t, movimientos.items, 1)
	mov := movimientos.items[0]
	assert.Equal(t, entity.TipoMovimientoSalida, mov.TipoMovimiento,
		"un ajuste negativo debe quedar como SALIDA")
	assert.True(t, mov.Cantidad.Equal(decimal.RequireFromString("5")),
		"la cantidad registrada debe ser la magnitud positiva")
	assert.Equal(t, "ajuste manual", mov.Referencia)
}

func TestRegistrar_AjustePositivoSeNormalizaAEntrada(t *testing.T) {
	uc, productos, movimientos := nuevoEscenario("50")

	err := uc.Registrar(context.Background(), inventario.MovimientoInput{
		FincaID:    fincaID,
		UsuarioID:  usuarioID,
		ProductoID: productoID,
		Tipo:       entity.TipoMovimientoAjuste,
		Cantidad:   decimal.RequireFromString("8"),
	})
	require.NoError(t, err)

	assert.True(t, stockDe(t, productos, productoID).Equal(decimal.RequireFromString("58")))
	require.Len(t, movimientos.items, 1)
	assert.Equal(t, entity.TipoMovimientoEntrada, movimientos.items[0].TipoMovimiento)
}

func TestRegistrar_EntradasInvalidas(t *testing.T) {
	uc, _, _ := nuevoEscenario("50")

	casos := []inventario.MovimientoInput{
		{FincaID: fincaID, ProductoID: productoID, Tipo: "TRASLADO", Cantidad: decimal.NewFromInt(1)},
		{FincaID: fincaID, ProductoID: productoID, Tipo: entity.TipoMovimientoEntrada, Cantidad: decimal.Zero},
		{FincaID: fincaID, ProductoID: productoID, Tipo: entity.TipoMovimientoSalida, Cantidad: decimal.NewFromInt(-3)},
		{FincaID: fincaID, ProductoID: productoID, Tipo: entity.TipoMovimientoAjuste, Cantidad: decimal.Zero},
		{FincaID: fincaID, ProductoID: "", Tipo: entity.TipoMovimientoEntrada, Cantidad: decimal.NewFromInt(1)},
	}
	for _, in := range casos {
		err := uc.Registrar(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrEntradaInvalida, "tipo=%s cantidad=%s", in.Tipo, in.Cantidad)
	}
}

func TestRegistrar_ProductoDeOtraFinca(t *testing.T) {
	uc, _, _ := nuevoEscenario("50")

	err := uc.Registrar(context.Background(), inventario.MovimientoInput{
		FincaID:    "finca-ajena",
		UsuarioID:  usuarioID,
		ProductoID: productoID,
		Tipo:       entity.TipoMovimientoEntrada,
		Cantidad:   decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, domain.ErrAccesoDenegado)
}

// El stock materializado siempre debe cuadrar con el libro:
// stock = suma(ENTRADA) - suma(SALIDA).
func TestRegistrar_StockCuadraConElLibro(t *testing.T) {
	uc, productos, movimientos := nuevoEscenario("0")

	pasos := []inventario.MovimientoInput{
		{Tipo: entity.TipoMovimientoEntrada, Cantidad: decimal.RequireFromString("100")},
		{Tipo: entity.TipoMovimientoSalida, Cantidad: decimal.RequireFromString("25.5")},
		{Tipo: entity.TipoMovimientoAjuste, Cantidad: decimal.RequireFromString("-4.5")},
		{Tipo: entity.TipoMovimientoEntrada, Cantidad: decimal.RequireFromString("10")},
	}
	for _, paso := range pasos {
		paso.FincaID = fincaID
		paso.ProductoID = productoID
		paso.UsuarioID = usuarioID
		require.NoError(t, uc.Registrar(context.Background(), paso))
	}

	saldo := decimal.Zero
	for _, mov := range movimientos.items {
		saldo = saldo.Add(mov.Cantidad.Mul(mov.Signo()))
	}
	assert.True(t, stockDe(t, productos, productoID).Equal(saldo),
		"stock materializado (%s) debe cuadrar con el saldo del libro (%s)",
		stockDe(t, productos, productoID), saldo)
	assert.True(t, saldo.Equal(decimal.RequireFromString("80")))
}
