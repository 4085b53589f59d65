// Package cuadrillas administra cuadrillas técnicas y sus integrantes.
package cuadrillas

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/coelsur/cooperativa-api/internal/application/dto"
	"github.com/coelsur/cooperativa-api/internal/domain"
	"github.com/coelsur/cooperativa-api/internal/domain/entity"
	"github.com/coelsur/cooperativa-api/internal/domain/repository"
)

// UseCase casos de uso de cuadrillas y empleados.
type UseCase struct {
	cuadrillaRepo repository.CuadrillaRepository
	empleadoRepo  repository.EmpleadoRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(cuadrillaRepo repository.CuadrillaRepository, empleadoRepo repository.EmpleadoRepository) *UseCase {
	return &UseCase{cuadrillaRepo: cuadrillaRepo, empleadoRepo: empleadoRepo}
}

// CrearCuadrilla da de alta una cuadrilla activa.
func (uc *UseCase) CrearCuadrilla(ctx context.Context, in dto.CreateCuadrillaRequest) (*dto.CuadrillaResponse, error) {
	if strings.TrimSpace(in.Nombre) == "" {
		return nil, domain.ErrInvalidInput
	}
	cuadrilla := &entity.Cuadrilla{
		ID:        uuid.New().String(),
		Nombre:    strings.TrimSpace(in.Nombre),
		Zona:      strings.TrimSpace(in.Zona),
		Activa:    true,
		CreatedAt: time.Now(),
	}
	if err := uc.cuadrillaRepo.Create(ctx, cuadrilla); err != nil {
		return nil, err
	}
	return toCuadrillaResponse(cuadrilla), nil
}

// ListarCuadrillas cuadrillas, opcionalmente solo activas.
func (uc *UseCase) ListarCuadrillas(ctx context.Context, soloActivas bool) ([]*dto.CuadrillaResponse, error) {
	list, err := uc.cuadrillaRepo.List(ctx, soloActivas)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CuadrillaResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCuadrillaResponse(c))
	}
	return out, nil
}

// ObtenerConIntegrantes cuadrilla más la lista de empleados que la integran.
func (uc *UseCase) ObtenerConIntegrantes(ctx context.Context, cuadrillaID string) (*dto.CuadrillaConIntegrantesResponse, error) {
	cuadrilla, err := uc.cuadrillaRepo.GetByID(ctx, cuadrillaID)
	if err != nil {
		return nil, err
	}
	if cuadrilla == nil {
		return nil, domain.ErrNotFound
	}
	integrantes, err := uc.empleadoRepo.ListByCuadrilla(ctx, cuadrillaID)
	if err != nil {
		return nil, err
	}
	resp := &dto.CuadrillaConIntegrantesResponse{
		Cuadrilla:   *toCuadrillaResponse(cuadrilla),
		Integrantes: make([]dto.EmpleadoResponse, 0, len(integrantes)),
	}
	for _, e := range integrantes {
		resp.Integrantes = append(resp.Integrantes, *toEmpleadoResponse(e))
	}
	return resp, nil
}

// CrearEmpleado da de alta un empleado activo, sin cuadrilla.
func (uc *UseCase) CrearEmpleado(ctx context.Context, in dto.CreateEmpleadoRequest) (*dto.EmpleadoResponse, error) {
	if strings.TrimSpace(in.Nombre) == "" || strings.TrimSpace(in.Apellido) == "" || strings.TrimSpace(in.Legajo) == "" {
		return nil, domain.ErrInvalidInput
	}
	empleado := &entity.Empleado{
		ID:        uuid.New().String(),
		Nombre:    strings.TrimSpace(in.Nombre),
		Apellido:  strings.TrimSpace(in.Apellido),
		Legajo:    strings.TrimSpace(in.Legajo),
		Activo:    true,
		CreatedAt: time.Now(),
	}
	if err := uc.empleadoRepo.Create(ctx, empleado); err != nil {
		return nil, err
	}
	return toEmpleadoResponse(empleado), nil
}

// ListarEmpleados empleados, opcionalmente solo activos.
func (uc *UseCase) ListarEmpleados(ctx context.Context, soloActivos bool) ([]*dto.EmpleadoResponse, error) {
	list, err := uc.empleadoRepo.List(ctx, soloActivos)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.EmpleadoResponse, 0, len(list))
	for _, e := range list {
		out = append(out, toEmpleadoResponse(e))
	}
	return out, nil
}

// AsignarIntegrante suma un empleado activo a una cuadrilla activa.
func (uc *UseCase) AsignarIntegrante(ctx context.Context, cuadrillaID, empleadoID string) (*dto.EmpleadoResponse, error) {
	cuadrilla, err := uc.cuadrillaRepo.GetByID(ctx, cuadrillaID)
	if err != nil {
		return nil, err
	}
	if cuadrilla == nil || !cuadrilla.Activa {
		return nil, domain.ErrNotFound
	}
	empleado, err := uc.empleadoRepo.GetByID(ctx, empleadoID)
	if err != nil {
		return nil, err
	}
	if empleado == nil || !empleado.Activo {
		return nil, domain.ErrEmpleadoInactivo
	}
	if err := uc.empleadoRepo.AsignarCuadrilla(ctx, empleadoID, &cuadrillaID); err != nil {
		return nil, err
	}
	empleado.CuadrillaID = &cuadrillaID
	return toEmpleadoResponse(empleado), nil
}

// QuitarIntegrante saca al empleado de su cuadrilla.
func (uc *UseCase) QuitarIntegrante(ctx context.Context, empleadoID string) error {
	empleado, err := uc.empleadoRepo.GetByID(ctx, empleadoID)
	if err != nil {
		return err
	}
	if empleado == nil {
		return domain.ErrNotFound
	}
	return uc.empleadoRepo.AsignarCuadrilla(ctx, empleadoID, nil)
}

func toCuadrillaResponse(c *entity.Cuadrilla) *dto.CuadrillaResponse {
	return &dto.CuadrillaResponse{ID: c.ID, Nombre: c.Nombre, Zona: c.Zona, Activa: c.Activa}
}

func toEmpleadoResponse(e *entity.Empleado) *dto.EmpleadoResponse {
	return &dto.EmpleadoResponse{
		ID:          e.ID,
		Nombre:      e.Nombre,
		Apellido:    e.Apellido,
		Legajo:      e.Legajo,
		Activo:      e.Activo,
		CuadrillaID: e.CuadrillaID,
	}
}
