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

// LoteUseCase casos de uso CRUD para lotes. El área viene calculada desde el
// mapa del cliente (polígono); aquí solo se persiste.
type LoteUseCase struct {
	repo      repository.LoteRepository
	fincaRepo repository.FincaRepository
}

// NewLoteUseCase construye el caso de uso.
func NewLoteUseCase(repo repository.LoteRepository, fincaRepo repository.FincaRepository) *LoteUseCase {
	return &LoteUseCase{repo: repo, fincaRepo: fincaRepo}
}

// Crear crea un lote con código L-xx secuencial dentro de la finca.
func (uc *LoteUseCase) Crear(fincaID string, in dto.CreateLoteRequest) (*dto.LoteResponse, error) {
	if in.Nombre == "" || fincaID == "" {
		return nil, domain.ErrEntradaInvalida
	}
	finca, err := uc.fincaRepo.GetByID(fincaID)
	if err != nil {
		return nil, err
	}
	if finca == nil {
		return nil, domain.ErrNoEncontrado
	}
	var l *entity.Lote
	err = codigo.Reintentar(func() error {
		max, err := uc.repo.MaxCodigo(fincaID)
		if err != nil {
			return err
		}
		now := time.Now()
		l = &entity.Lote{
			ID:        uuid.New().String(),
			FincaID:   fincaID,
			Codigo:    codigo.Siguiente(codigo.PrefijoLote, codigo.AnchoLote, max),
			Nombre:    in.Nombre,
			Cultivo:   in.Cultivo,
			Area:      in.Area,
			CreatedAt: now,
			UpdatedAt: now,
		}
		return uc.repo.Create(l)
	})
	if err != nil {
		return nil, err
	}
	return toLoteResponse(l), nil
}

// GetByID obtiene un lote por ID.
func (uc *LoteUseCase) GetByID(id string) (*dto.LoteResponse, error) {
	l, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, nil
	}
	return toLoteResponse(l), nil
}

// ListByFinca lista lotes de una finca con paginación.
func (uc *LoteUseCase) ListByFinca(fincaID string, limit, offset int) (*dto.LoteListResponse, error) {
	list, err := uc.repo.ListByFinca(fincaID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LoteResponse, 0, len(list))
	for _, l := range list {
		items = append(items, *toLoteResponse(l))
	}
	return &dto.LoteListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update actualiza un lote. El código no se modifica nunca.
func (uc *LoteUseCase) Update(id string, in dto.UpdateLoteRequest) (*dto.LoteResponse, error) {
	l, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, nil
	}
	if in.Nombre != nil {
		l.Nombre = *in.Nombre
	}
	if in.Cultivo != nil {
		l.Cultivo = *in.Cultivo
	}
	if in.Area != nil {
		l.Area = *in.Area
	}
	l.UpdatedAt = time.Now()
	if err := uc.repo.Update(l); err != nil {
		return nil, err
	}
	return toLoteResponse(l), nil
}

func toLoteResponse(l *entity.Lote) *dto.LoteResponse {
	if l == nil {
		return nil
	}
	return &dto.LoteResponse{
		ID:        l.ID,
		FincaID:   l.FincaID,
		Codigo:    l.Codigo,
		Nombre:    l.Nombre,
		Cultivo:   l.Cultivo,
		Area:      l.Area,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}
