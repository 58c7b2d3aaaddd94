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

// MaquinariaUseCase casos de uso CRUD para maquinaria y sus registros de uso.
type MaquinariaUseCase struct {
	repo      repository.MaquinariaRepository
	usoRepo   repository.UsoMaquinariaRepository
	fincaRepo repository.FincaRepository
}

// NewMaquinariaUseCase construye el caso de uso.
func NewMaquinariaUseCase(
	repo repository.MaquinariaRepository,
	usoRepo repository.UsoMaquinariaRepository,
	fincaRepo repository.FincaRepository,
) *MaquinariaUseCase {
	return &MaquinariaUseCase{repo: repo, usoRepo: usoRepo, fincaRepo: fincaRepo}
}

// Crear crea una máquina con código MAQ-xxx secuencial dentro de la finca.
func (uc *MaquinariaUseCase) Crear(fincaID string, in dto.CreateMaquinariaRequest) (*dto.MaquinariaResponse, error) {
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
	var m *entity.Maquinaria
	err = codigo.Reintentar(func() error {
		max, err := uc.repo.MaxCodigo(fincaID)
		if err != nil {
			return err
		}
		now := time.Now()
		m = &entity.Maquinaria{
			ID:          uuid.New().String(),
			FincaID:     fincaID,
			Codigo:      codigo.Siguiente(codigo.PrefijoMaquinaria, codigo.AnchoEstandar, max),
			Nombre:      in.Nombre,
			Tipo:        in.Tipo,
			Marca:       in.Marca,
			Modelo:      in.Modelo,
			Estado:      entity.EstadoMaquinariaDisponible,
			Descripcion: in.Descripcion,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		return uc.repo.Create(m)
	})
	if err != nil {
		return nil, err
	}
	return toMaquinariaResponse(m), nil
}

// GetByID obtiene una máquina por ID.
func (uc *MaquinariaUseCase) GetByID(id string) (*dto.MaquinariaResponse, error) {
	m, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, nil
	}
	return toMaquinariaResponse(m), nil
}

// ListByFinca lista maquinaria de una finca con paginación.
func (uc *MaquinariaUseCase) ListByFinca(fincaID string, limit, offset int) (*dto.MaquinariaListResponse, error) {
	list, err := uc.repo.ListByFinca(fincaID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MaquinariaResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMaquinariaResponse(m))
	}
	return &dto.MaquinariaListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update actualiza una máquina. El código no se modifica nunca.
func (uc *MaquinariaUseCase) Update(id string, in dto.UpdateMaquinariaRequest) (*dto.MaquinariaResponse, error) {
	m, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, nil
	}
	if in.Nombre != nil {
		m.Nombre = *in.Nombre
	}
	if in.Tipo != nil {
		m.Tipo = *in.Tipo
	}
	if in.Marca != nil {
		m.Marca = *in.Marca
	}
	if in.Modelo != nil {
		m.Modelo = *in.Modelo
	}
	if in.Estado != nil {
		switch *in.Estado {
		case entity.EstadoMaquinariaDisponible, entity.EstadoMaquinariaEnUso, entity.EstadoMaquinariaMantenimiento:
			m.Estado = *in.Estado
		default:
			return nil, domain.ErrEntradaInvalida
		}
	}
	if in.Descripcion != nil {
		m.Descripcion = *in.Descripcion
	}
	m.UpdatedAt = time.Now()
	if err := uc.repo.Update(m); err != nil {
		return nil, err
	}
	return toMaquinariaResponse(m), nil
}

// UsosDeMaquinaria lista el historial de uso de una máquina.
func (uc *MaquinariaUseCase) UsosDeMaquinaria(id string, limit, offset int) ([]dto.UsoMaquinariaResponse, error) {
	usos, err := uc.usoRepo.ListByMaquinaria(id, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UsoMaquinariaResponse, 0, len(usos))
	for _, u := range usos {
		out = append(out, dto.UsoMaquinariaResponse{
			ID:           u.ID,
			MaquinariaID: u.MaquinariaID,
			TareaID:      u.TareaID,
			Operador:     u.Operador,
			Horas:        u.Horas,
			Inicio:       u.Inicio,
			Fin:          u.Fin,
		})
	}
	return out, nil
}

func toMaquinariaResponse(m *entity.Maquinaria) *dto.MaquinariaResponse {
	if m == nil {
		return nil
	}
	return &dto.MaquinariaResponse{
		ID:          m.ID,
		FincaID:     m.FincaID,
		Codigo:      m.Codigo,
		Nombre:      m.Nombre,
		Tipo:        m.Tipo,
		Marca:       m.Marca,
		Modelo:      m.Modelo,
		Estado:      m.Estado,
		Descripcion: m.Descripcion,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
