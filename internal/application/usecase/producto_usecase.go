package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agrogest/AgroGest-api/internal/application/codigo"
	"github.com/agrogest/AgroGest-api/internal/application/dto"
	"github.com/agrogest/AgroGest-api/internal/application/inventario"
	"github.com/agrogest/AgroGest-api/internal/domain"
	"github.com/agrogest/AgroGest-api/internal/domain/entity"
	"github.com/agrogest/AgroGest-api/internal/domain/repository"
)

// ProductoUseCase casos de uso CRUD para productos/insumos. El stock nace en
// cero y solo cambia vía movimientos: un stock inicial genera una ENTRADA en
// la misma transacción de la creación.
type ProductoUseCase struct {
	repo      repository.ProductoRepository
	fincaRepo repository.FincaRepository
	txRunner  inventario.TxRunner
}

// NewProductoUseCase construye el caso de uso.
func NewProductoUseCase(
	repo repository.ProductoRepository,
	fincaRepo repository.FincaRepository,
	txRunner inventario.TxRunner,
) *ProductoUseCase {
	return &ProductoUseCase{repo: repo, fincaRepo: fincaRepo, txRunner: txRunner}
}

// Crear crea un producto con código PRO-xxx secuencial dentro de la finca.
// StockInicial positivo registra la ENTRADA inicial en la misma transacción:
// el producto nunca existe con stock sin su movimiento correspondiente.
func (uc *ProductoUseCase) Crear(ctx context.Context, fincaID string, in dto.CreateProductoRequest) (*dto.ProductoResponse, error) {
	if in.Nombre == "" || fincaID == "" {
		return nil, domain.ErrEntradaInvalida
	}
	if in.StockInicial.IsNegative() || in.StockMinimo.IsNegative() {
		return nil, domain.ErrEntradaInvalida
	}
	finca, err := uc.fincaRepo.GetByID(fincaID)
	if err != nil {
		return nil, err
	}
	if finca == nil {
		return nil, domain.ErrNoEncontrado
	}
	categoria := in.Categoria
	if categoria == "" {
		categoria = entity.CategoriaOtro
	}
	unidad := in.UnidadMedida
	if unidad == "" {
		unidad = "unidad"
	}

	var p *entity.Producto
	err = codigo.Reintentar(func() error {
		max, err := uc.repo.MaxCodigo(fincaID)
		if err != nil {
			return err
		}
		now := time.Now()
		p = &entity.Producto{
			ID:           uuid.New().String(),
			FincaID:      fincaID,
			Codigo:       codigo.Siguiente(codigo.PrefijoProducto, codigo.AnchoEstandar, max),
			Nombre:       in.Nombre,
			Categoria:    categoria,
			UnidadMedida: unidad,
			StockActual:  decimal.Zero,
			StockMinimo:  in.StockMinimo,
			Descripcion:  in.Descripcion,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		return uc.txRunner.Run(ctx, func(
			movRepo repository.MovimientoRepository,
			productoRepo repository.ProductoRepository,
		) error {
			if err := productoRepo.Create(p); err != nil {
				return err
			}
			if in.StockInicial.GreaterThan(decimal.Zero) {
				return inventario.RegistrarEntradaInicialEnTx(
					movRepo, productoRepo, p, in.StockInicial, "", now,
				)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	// Releer: el stock materializado lo escribió la tx
	creado, err := uc.repo.GetByID(p.ID)
	if err != nil {
		return nil, err
	}
	return toProductoResponse(creado), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductoUseCase) GetByID(id string) (*dto.ProductoResponse, error) {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	return toProductoResponse(p), nil
}

// ListByFinca lista productos de una finca con paginación.
func (uc *ProductoUseCase) ListByFinca(fincaID string, limit, offset int) (*dto.ProductoListResponse, error) {
	list, err := uc.repo.ListByFinca(fincaID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductoResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductoResponse(p))
	}
	return &dto.ProductoListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update actualiza un producto. No permite modificar Codigo ni StockActual
// (el stock se maneja vía movimientos).
func (uc *ProductoUseCase) Update(id string, in dto.UpdateProductoRequest) (*dto.ProductoResponse, error) {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	if in.Nombre != nil {
		p.Nombre = *in.Nombre
	}
	if in.Categoria != nil {
		p.Categoria = *in.Categoria
	}
	if in.UnidadMedida != nil {
		p.UnidadMedida = *in.UnidadMedida
	}
	if in.StockMinimo != nil {
		if in.StockMinimo.IsNegative() {
			return nil, domain.ErrEntradaInvalida
		}
		p.StockMinimo = *in.StockMinimo
	}
	if in.Descripcion != nil {
		p.Descripcion = *in.Descripcion
	}
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(p); err != nil {
		return nil, err
	}
	return toProductoResponse(p), nil
}

func toProductoResponse(p *entity.Producto) *dto.ProductoResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductoResponse{
		ID:           p.ID,
		FincaID:      p.FincaID,
		Codigo:       p.Codigo,
		Nombre:       p.Nombre,
		Categoria:    p.Categoria,
		UnidadMedida: p.UnidadMedida,
		StockActual:  p.StockActual,
		StockMinimo:  p.StockMinimo,
		Descripcion:  p.Descripcion,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
