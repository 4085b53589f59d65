// Package valoraciones implementa las calificaciones de socios sobre reclamos
// resueltos: una por par (reclamo, socio), editable y borrable solo por su autor.
package valoraciones

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/coelsur/cooperativa-api/internal/application/dto"
	"github.com/coelsur/cooperativa-api/internal/domain"
	"github.com/coelsur/cooperativa-api/internal/domain/entity"
	"github.com/coelsur/cooperativa-api/internal/domain/repository"
)

// TxRunner puerto transaccional: las validaciones de alta (reclamo terminal,
// titularidad, unicidad) y el INSERT corren en la misma transacción.
type TxRunner interface {
	RunValoracion(ctx context.Context, fn func(
		valoracionRepo repository.ValoracionRepository,
		reclamoRepo repository.ReclamoRepository,
		cuentaRepo repository.CuentaRepository,
	) error) error
}

// UseCase casos de uso de valoraciones.
type UseCase struct {
	txRunner       TxRunner
	valoracionRepo repository.ValoracionRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, valoracionRepo repository.ValoracionRepository) *UseCase {
	return &UseCase{txRunner: txRunner, valoracionRepo: valoracionRepo}
}

// Crear registra la valoración del socio sobre un reclamo RESUELTO o CERRADO de
// una cuenta propia. El par (reclamo, socio) es único; ante carrera el UNIQUE de
// la tabla devuelve ErrYaValorado.
func (uc *UseCase) Crear(ctx context.Context, socioID string, in dto.CreateValoracionRequest) (*dto.ValoracionResponse, error) {
	if in.ReclamoID == "" || socioID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Puntaje < 1 || in.Puntaje > 5 {
		return nil, domain.ErrInvalidInput
	}

	v := &entity.Valoracion{
		ID:         uuid.New().String(),
		ReclamoID:  in.ReclamoID,
		SocioID:    socioID,
		Puntaje:    in.Puntaje,
		Comentario: in.Comentario,
		CreatedAt:  time.Now(),
	}

	err := uc.txRunner.RunValoracion(ctx, func(
		valoracionRepo repository.ValoracionRepository,
		reclamoRepo repository.ReclamoRepository,
		cuentaRepo repository.CuentaRepository,
	) error {
		reclamo, err := reclamoRepo.GetByID(ctx, in.ReclamoID)
		if err != nil {
			return err
		}
		if reclamo == nil {
			return domain.ErrNotFound
		}
		if !reclamo.Estado.Terminal() {
			return domain.ErrReclamoNoTerminal
		}

		cuenta, err := cuentaRepo.GetByID(ctx, reclamo.CuentaID)
		if err != nil {
			return err
		}
		if cuenta == nil || cuenta.SocioID != socioID {
			return domain.ErrForbidden
		}

		existente, err := valoracionRepo.GetByReclamoAndSocio(ctx, in.ReclamoID, socioID)
		if err != nil {
			return err
		}
		if existente != nil {
			return domain.ErrYaValorado
		}
		return valoracionRepo.Create(ctx, v)
	})
	if err != nil {
		return nil, err
	}
	return toValoracionResponse(v), nil
}

// Actualizar edita puntaje y comentario de una valoración propia.
func (uc *UseCase) Actualizar(ctx context.Context, socioID, valoracionID string, in dto.UpdateValoracionRequest) (*dto.ValoracionResponse, error) {
	if in.Puntaje < 1 || in.Puntaje > 5 {
		return nil, domain.ErrInvalidInput
	}
	v, err := uc.obtenerPropia(ctx, socioID, valoracionID)
	if err != nil {
		return nil, err
	}
	v.Puntaje = in.Puntaje
	v.Comentario = in.Comentario
	if err := uc.valoracionRepo.Update(ctx, v); err != nil {
		return nil, err
	}
	return toValoracionResponse(v), nil
}

// Eliminar borra una valoración propia.
func (uc *UseCase) Eliminar(ctx context.Context, socioID, valoracionID string) error {
	v, err := uc.obtenerPropia(ctx, socioID, valoracionID)
	if err != nil {
		return err
	}
	return uc.valoracionRepo.Delete(ctx, v.ID)
}

// ObtenerPorReclamo valoración de un reclamo (nil si no tiene).
func (uc *UseCase) ObtenerPorReclamo(ctx context.Context, reclamoID string) (*dto.ValoracionResponse, error) {
	v, err := uc.valoracionRepo.GetByReclamo(ctx, reclamoID)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.ErrNotFound
	}
	return toValoracionResponse(v), nil
}

// ListarPorSocio valoraciones hechas por el socio.
func (uc *UseCase) ListarPorSocio(ctx context.Context, socioID string, page dto.PageRequest) ([]*dto.ValoracionResponse, error) {
	page.DefaultPage()
	list, err := uc.valoracionRepo.ListBySocio(ctx, socioID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ValoracionResponse, 0, len(list))
	for _, v := range list {
		out = append(out, toValoracionResponse(v))
	}
	return out, nil
}

// Estadisticas agregados globales para el tablero administrativo.
func (uc *UseCase) Estadisticas(ctx context.Context) (*dto.EstadisticasValoracionesResponse, error) {
	est, err := uc.valoracionRepo.Estadisticas(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.EstadisticasValoracionesResponse{
		Total:         est.Total,
		Promedio:      est.Promedio,
		PorPuntaje:    est.PorPuntaje,
		ConComentario: est.ConComentario,
	}, nil
}

// Recientes últimas n valoraciones.
func (uc *UseCase) Recientes(ctx context.Context, n int) ([]*dto.ValoracionResponse, error) {
	if n <= 0 || n > 100 {
		n = 10
	}
	list, err := uc.valoracionRepo.Recientes(ctx, n)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ValoracionResponse, 0, len(list))
	for _, v := range list {
		out = append(out, toValoracionResponse(v))
	}
	return out, nil
}

func (uc *UseCase) obtenerPropia(ctx context.Context, socioID, valoracionID string) (*entity.Valoracion, error) {
	v, err := uc.valoracionRepo.GetByID(ctx, valoracionID)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.ErrNotFound
	}
	if v.SocioID != socioID {
		return nil, domain.ErrForbidden
	}
	return v, nil
}

func toValoracionResponse(v *entity.Valoracion) *dto.ValoracionResponse {
	return &dto.ValoracionResponse{
		ID:         v.ID,
		ReclamoID:  v.ReclamoID,
		SocioID:    v.SocioID,
		Puntaje:    v.Puntaje,
		Comentario: v.Comentario,
		CreatedAt:  v.CreatedAt,
	}
}
