package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/agrogest/AgroGest-api/internal/application/codigo"
	"github.com/agrogest/AgroGest-api/internal/application/dto"
	"github.com/agrogest/AgroGest-api/internal/domain"
	"github.com/agrogest/AgroGest-api/internal/domain/entity"
	"github.com/agrogest/AgroGest-api/internal/domain/repository"
)

// FincaUseCase casos de uso CRUD para fincas.
type FincaUseCase struct {
	repo repository.FincaRepository
}

// NewFincaUseCase construye el caso de uso.
func NewFincaUseCase(repo repository.FincaRepository) *FincaUseCase {
	return &FincaUseCase{repo: repo}
}

// Crear crea una finca con código FIN-xxx global. Colisión de código se
// reintenta re-mintando.
func (uc *FincaUseCase) Crear(in dto.CreateFincaRequest) (*dto.FincaResponse, error) {
	if in.Nombre == "" {
		return nil, domain.ErrEntradaInvalida
	}
	var f *entity.Finca
	err := codigo.Reintentar(func() error {
		max, err := uc.repo.MaxCodigo()
		if err != nil {
			return err
		}
		now := time.Now()
		f = &entity.Finca{
			ID:          uuid.New().String(),
			Codigo:      codigo.Siguiente(codigo.PrefijoFinca, codigo.AnchoEstandar, max),
			Nombre:      in.Nombre,
			Ubicacion:   in.Ubicacion,
			AreaTotal:   in.AreaTotal,
			Descripcion: in.Descripcion,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		return uc.repo.Create(f)
	})
	if err != nil {
		return nil, err
	}
	return toFincaResponse(f), nil
}

// GetByID obtiene una finca por ID.
func (uc *FincaUseCase) GetByID(id string) (*dto.FincaResponse, error) {
	f, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, nil
	}
	return toFincaResponse(f), nil
}

// List lista fincas con paginación.
func (uc *FincaUseCase) List(limit, offset int) (*dto.FincaListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.FincaResponse, 0, len(list))
	for _, f := range list {
		items = append(items, *toFincaResponse(f))
	}
	return &dto.FincaListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update actualiza una finca. El código no se modifica nunca.
func (uc *FincaUseCase) Update(id string, in dto.UpdateFincaRequest) (*dto.FincaResponse, error) {
	f, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, nil
	}
	if in.Nombre != nil {
		f.Nombre = *in.Nombre
	}
	if in.Ubicacion != nil {
		f.Ubicacion = *in.Ubicacion
	}
	if in.AreaTotal != nil {
		f.AreaTotal = *in.AreaTotal
	}
	if in.Descripcion != nil {
		f.Descripcion = *in.Descripcion
	}
	f.UpdatedAt = time.Now()
	if err := uc.repo.Update(f); err != nil {
		return nil, err
	}
	return toFincaResponse(f), nil
}

func toFincaResponse(f *entity.Finca) *dto.FincaResponse {
	if f == nil {
		return nil
	}
	return &dto.FincaResponse{
		ID:          f.ID,
		Codigo:      f.Codigo,
		Nombre:      f.Nombre,
		Ubicacion:   f.Ubicacion,
		AreaTotal:   f.AreaTotal,
		Descripcion: f.Descripcion,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}
