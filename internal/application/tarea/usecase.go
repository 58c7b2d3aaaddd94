package tarea

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/agrogest/AgroGest-api/internal/application/codigo"
	"github.com/agrogest/AgroGest-api/internal/application/dto"
	"github.com/agrogest/AgroGest-api/internal/domain"
	"github.com/agrogest/AgroGest-api/internal/domain/entity"
	"github.com/agrogest/AgroGest-api/internal/domain/repository"
)

// UseCase casos de uso CRUD para tareas de campo. La ejecución (estado,
// consumos, maquinaria) vive en EjecutarTareaUseCase.
type UseCase struct {
	repo       repository.TareaRepository
	loteRepo   repository.LoteRepository
	usoRepo    repository.UsoMaquinariaRepository
	evidencias AlmacenEvidencias
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	repo repository.TareaRepository,
	loteRepo repository.LoteRepository,
	usoRepo repository.UsoMaquinariaRepository,
	evidencias AlmacenEvidencias,
) *UseCase {
	return &UseCase{repo: repo, loteRepo: loteRepo, usoRepo: usoRepo, evidencias: evidencias}
}

// Crear crea una tarea en estado PROGRAMADA con código TAR-xxx global.
// Una colisión de código (creaciones concurrentes) se reintenta re-mintando.
func (uc *UseCase) Crear(fincaID string, in dto.CreateTareaRequest) (*dto.TareaResponse, error) {
	if in.Nombre == "" || fincaID == "" {
		return nil, domain.ErrEntradaInvalida
	}
	nivel := in.Nivel
	if nivel == "" {
		nivel = entity.NivelTareaFinca
	}
	switch nivel {
	case entity.NivelTareaFinca:
		if in.LoteID != nil && *in.LoteID != "" {
			return nil, domain.ErrEntradaInvalida
		}
	case entity.NivelTareaLote:
		if in.LoteID == nil || *in.LoteID == "" {
			return nil, domain.ErrLoteRequerido
		}
		lote, err := uc.loteRepo.GetByID(*in.LoteID)
		if err != nil {
			return nil, err
		}
		if lote == nil || lote.FincaID != fincaID {
			return nil, fmt.Errorf("%w: lote %s", domain.ErrNoEncontrado, *in.LoteID)
		}
	default:
		return nil, domain.ErrEntradaInvalida
	}

	fechaProgramada := time.Now()
	if in.FechaProgramada != nil {
		fechaProgramada = *in.FechaProgramada
	}

	var t *entity.Tarea
	err := codigo.Reintentar(func() error {
		max, err := uc.repo.MaxCodigo()
		if err != nil {
			return err
		}
		now := time.Now()
		t = &entity.Tarea{
			ID:              uuid.New().String(),
			FincaID:         fincaID,
			LoteID:          in.LoteID,
			Codigo:          codigo.Siguiente(codigo.PrefijoTarea, codigo.AnchoEstandar, max),
			Nombre:          in.Nombre,
			Descripcion:     in.Descripcion,
			Nivel:           nivel,
			Estado:          entity.EstadoTareaProgramada,
			FechaProgramada: fechaProgramada,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		return uc.repo.Create(t)
	})
	if err != nil {
		return nil, err
	}
	return toTareaResponse(t), nil
}

// GetByID obtiene una tarea por ID.
func (uc *UseCase) GetByID(id string) (*dto.TareaResponse, error) {
	t, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, nil
	}
	return toTareaResponse(t), nil
}

// ListByFinca lista tareas de una finca, opcionalmente filtradas por estado.
func (uc *UseCase) ListByFinca(fincaID, estado string, limit, offset int) (*dto.TareaListResponse, error) {
	list, err := uc.repo.ListByFinca(fincaID, estado, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TareaResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toTareaResponse(t))
	}
	return &dto.TareaListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Cancelar pasa la tarea a CANCELADA. Solo desde PROGRAMADA o EN_PROGRESO.
func (uc *UseCase) Cancelar(fincaID, id string) (*dto.TareaResponse, error) {
	t, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, nil
	}
	if t.FincaID != fincaID {
		return nil, domain.ErrAccesoDenegado
	}
	if t.Finalizada() {
		return nil, domain.ErrTareaFinalizada
	}
	t.Estado = entity.EstadoTareaCancelada
	t.UpdatedAt = time.Now()
	if err := uc.repo.Update(t); err != nil {
		return nil, err
	}
	return toTareaResponse(t), nil
}

// SubirEvidencia guarda el archivo en el almacén y agrega la referencia a la
// tarea. Las evidencias se aceptan en cualquier estado no cancelado.
func (uc *UseCase) SubirEvidencia(ctx context.Context, fincaID, id, nombre string, contenido []byte, contentType string) (string, error) {
	t, err := uc.repo.GetByID(id)
	if err != nil {
		return "", err
	}
	if t == nil {
		return "", domain.ErrNoEncontrado
	}
	if t.FincaID != fincaID {
		return "", domain.ErrAccesoDenegado
	}
	if t.Estado == entity.EstadoTareaCancelada {
		return "", domain.ErrTareaFinalizada
	}
	ref, err := uc.evidencias.Guardar(ctx, fmt.Sprintf("tareas/%s/%s", t.Codigo, nombre), contenido, contentType)
	if err != nil {
		return "", err
	}
	t.Evidencias = append(t.Evidencias, ref)
	t.UpdatedAt = time.Now()
	if err := uc.repo.Update(t); err != nil {
		return "", err
	}
	return ref, nil
}

// UsosDeTarea lista los usos de maquinaria registrados al ejecutar la tarea.
func (uc *UseCase) UsosDeTarea(id string) ([]dto.UsoMaquinariaResponse, error) {
	usos, err := uc.usoRepo.ListByTarea(id)
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

func toTareaResponse(t *entity.Tarea) *dto.TareaResponse {
	if t == nil {
		return nil
	}
	return &dto.TareaResponse{
		ID:              t.ID,
		FincaID:         t.FincaID,
		LoteID:          t.LoteID,
		Codigo:          t.Codigo,
		Nombre:          t.Nombre,
		Descripcion:     t.Descripcion,
		Nivel:           t.Nivel,
		Estado:          t.Estado,
		FechaProgramada: t.FechaProgramada,
		FechaEjecucion:  t.FechaEjecucion,
		Evidencias:      t.Evidencias,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}
