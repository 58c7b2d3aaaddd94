package inventario

import (
	"time"

	"github.com/agrogest/AgroGest-api/internal/application/dto"
	"github.com/agrogest/AgroGest-api/internal/domain/entity"
	"github.com/agrogest/AgroGest-api/internal/domain/repository"
)

// ConsultaUseCase lecturas del libro de movimientos (kardex). El libro se
// consulta por fecha, no por orden de inserción.
type ConsultaUseCase struct {
	movRepo repository.MovimientoRepository
}

// NewConsultaUseCase construye el caso de uso.
func NewConsultaUseCase(movRepo repository.MovimientoRepository) *ConsultaUseCase {
	return &ConsultaUseCase{movRepo: movRepo}
}

// ListByProducto lista movimientos de un producto en un rango de fechas.
func (uc *ConsultaUseCase) ListByProducto(productoID string, desde, hasta *time.Time, limit, offset int) (*dto.MovimientoListResponse, error) {
	list, err := uc.movRepo.ListByProducto(productoID, desde, hasta, limit, offset)
	if err != nil {
		return nil, err
	}
	return toMovimientoList(list, limit, offset), nil
}

// ListByFinca lista movimientos de una finca en un rango de fechas.
func (uc *ConsultaUseCase) ListByFinca(fincaID string, desde, hasta *time.Time, limit, offset int) (*dto.MovimientoListResponse, error) {
	list, err := uc.movRepo.ListByFinca(fincaID, desde, hasta, limit, offset)
	if err != nil {
		return nil, err
	}
	return toMovimientoList(list, limit, offset), nil
}

func toMovimientoList(list []*entity.Movimiento, limit, offset int) *dto.MovimientoListResponse {
	items := make([]dto.MovimientoResponse, 0, len(list))
	for _, m := range list {
		items = append(items, dto.MovimientoResponse{
			ID:             m.ID,
			FincaID:        m.FincaID,
			ProductoID:     m.ProductoID,
			TipoMovimiento: m.TipoMovimiento,
			Cantidad:       m.Cantidad,
			Referencia:     m.Referencia,
			Observaciones:  m.Observaciones,
			TareaID:        m.TareaID,
			LoteID:         m.LoteID,
			Fecha:          m.Fecha,
			CreatedBy:      m.CreatedBy,
		})
	}
	return &dto.MovimientoListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
}
