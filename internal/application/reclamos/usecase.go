// Package reclamos implementa el ciclo de vida de los reclamos: alta con su
// orden de trabajo, transiciones de estado, asignación de operario y resúmenes.
package reclamos

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/coelsur/cooperativa-api/internal/application/dto"
	"github.com/coelsur/cooperativa-api/internal/domain"
	"github.com/coelsur/cooperativa-api/internal/domain/entity"
	"github.com/coelsur/cooperativa-api/internal/domain/repository"
	"github.com/coelsur/cooperativa-api/internal/domain/workflow"
)

// TxRunner puerto transaccional: el alta de reclamo + orden de trabajo se
// persiste completa o no se persiste.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		reclamoRepo repository.ReclamoRepository,
		ordenRepo repository.OrdenTrabajoRepository,
	) error) error
}

// UseCase casos de uso del ciclo de vida de reclamos.
type UseCase struct {
	txRunner     TxRunner
	reclamoRepo  repository.ReclamoRepository
	cuentaRepo   repository.CuentaRepository
	tipoRepo     repository.TipoReclamoRepository
	empleadoRepo repository.EmpleadoRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	reclamoRepo repository.ReclamoRepository,
	cuentaRepo repository.CuentaRepository,
	tipoRepo repository.TipoReclamoRepository,
	empleadoRepo repository.EmpleadoRepository,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		reclamoRepo:  reclamoRepo,
		cuentaRepo:   cuentaRepo,
		tipoRepo:     tipoRepo,
		empleadoRepo: empleadoRepo,
	}
}

// Crear da de alta un reclamo PENDIENTE y, en la misma transacción, su orden de
// trabajo: sin empleado para tipos administrativos, con la dirección de
// suministro de la cuenta para tipos técnicos. socioID debe ser titular de la cuenta.
func (uc *UseCase) Crear(ctx context.Context, socioID string, in dto.CreateReclamoRequest) (*dto.ReclamoConOrdenResponse, error) {
	if in.CuentaID == "" || in.TipoID == "" || strings.TrimSpace(in.Descripcion) == "" {
		return nil, domain.ErrInvalidInput
	}
	prioridad := in.Prioridad
	if prioridad == 0 {
		prioridad = 2
	}
	if prioridad < 1 || prioridad > 3 {
		return nil, domain.ErrInvalidInput
	}
	canal := in.Canal
	if canal == "" {
		canal = "WEB"
	}

	cuenta, err := uc.cuentaRepo.GetByID(ctx, in.CuentaID)
	if err != nil {
		return nil, err
	}
	if cuenta == nil {
		return nil, domain.ErrNotFound
	}
	if socioID != "" && cuenta.SocioID != socioID {
		return nil, domain.ErrForbidden
	}

	tipo, err := uc.tipoRepo.GetByID(ctx, in.TipoID)
	if err != nil {
		return nil, err
	}
	if tipo == nil || !tipo.Activo {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	reclamo := &entity.Reclamo{
		ID:          uuid.New().String(),
		CuentaID:    cuenta.ID,
		TipoID:      tipo.ID,
		Descripcion: strings.TrimSpace(in.Descripcion),
		Prioridad:   prioridad,
		Canal:       canal,
		Estado:      workflow.ReclamoPendiente,
		CreatedAt:   now,
	}
	orden := &entity.OrdenTrabajo{
		ID:        uuid.New().String(),
		ReclamoID: reclamo.ID,
		Estado:    workflow.OrdenPendiente,
		CreatedAt: now,
	}
	if tipo.Categoria == entity.CategoriaTecnico {
		orden.DireccionIntervencion = cuenta.DireccionSuministro
	}

	err = uc.txRunner.Run(ctx, func(reclamoRepo repository.ReclamoRepository, ordenRepo repository.OrdenTrabajoRepository) error {
		if err := reclamoRepo.Create(ctx, reclamo); err != nil {
			return err
		}
		return ordenRepo.Create(ctx, orden)
	})
	if err != nil {
		return nil, err
	}

	resp := &dto.ReclamoConOrdenResponse{Reclamo: *ToReclamoResponse(reclamo)}
	ot := ToOrdenResponse(orden)
	resp.Orden = ot
	return resp, nil
}

// Transicionar mueve el reclamo al estado pedido, validando contra la tabla de
// transiciones antes de tocar la DB. Estados terminales estampan cerrado_at y
// las observaciones de cierre.
func (uc *UseCase) Transicionar(ctx context.Context, reclamoID, nuevoEstado, observaciones string) (*dto.ReclamoResponse, error) {
	hacia := workflow.EstadoReclamo(nuevoEstado)
	if !hacia.Valido() {
		return nil, domain.ErrInvalidInput
	}
	reclamo, err := uc.reclamoRepo.GetByID(ctx, reclamoID)
	if err != nil {
		return nil, err
	}
	if reclamo == nil {
		return nil, domain.ErrNotFound
	}
	if !reclamo.Estado.PuedeTransicionar(hacia) {
		return nil, domain.ErrTransicionInvalida
	}

	var obs *string
	var cerradoAt *time.Time
	if hacia.Terminal() {
		now := time.Now()
		cerradoAt = &now
		if s := strings.TrimSpace(observaciones); s != "" {
			obs = &s
		}
	}
	ok, err := uc.reclamoRepo.Transicionar(ctx, reclamoID, reclamo.Estado, hacia, obs, cerradoAt)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Otra request movió el reclamo entre la lectura y el UPDATE.
		return nil, domain.ErrConflict
	}
	return uc.obtener(ctx, reclamoID)
}

// AsignarOperario asigna el reclamo a un operario activo; avanza
// PENDIENTE -> EN_PROCESO, en otros estados solo cambia el operario.
func (uc *UseCase) AsignarOperario(ctx context.Context, reclamoID, operarioID string) (*dto.ReclamoResponse, error) {
	empleado, err := uc.empleadoRepo.GetByID(ctx, operarioID)
	if err != nil {
		return nil, err
	}
	if empleado == nil || !empleado.Activo {
		return nil, domain.ErrEmpleadoInactivo
	}
	ok, err := uc.reclamoRepo.AsignarOperario(ctx, reclamoID, operarioID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNotFound
	}
	return uc.obtener(ctx, reclamoID)
}

// ListarPorSocio reclamos de todas las cuentas del socio, paginados sobre el
// conjunto completo.
func (uc *UseCase) ListarPorSocio(ctx context.Context, socioID string, page dto.PageRequest) ([]*dto.ReclamoResponse, error) {
	page.DefaultPage()
	list, err := uc.reclamoRepo.ListBySocio(ctx, socioID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ReclamoResponse, 0, len(list))
	for _, rec := range list {
		out = append(out, ToReclamoResponse(rec))
	}
	return out, nil
}

// ListarPorCuenta reclamos de una cuenta. Si socioID no es vacío la cuenta
// debe ser del socio.
func (uc *UseCase) ListarPorCuenta(ctx context.Context, socioID, cuentaID string, page dto.PageRequest) ([]*dto.ReclamoResponse, error) {
	page.DefaultPage()
	cuenta, err := uc.cuentaRepo.GetByID(ctx, cuentaID)
	if err != nil {
		return nil, err
	}
	if cuenta == nil {
		return nil, domain.ErrNotFound
	}
	if socioID != "" && cuenta.SocioID != socioID {
		return nil, domain.ErrForbidden
	}
	list, err := uc.reclamoRepo.ListByCuenta(ctx, cuentaID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ReclamoResponse, 0, len(list))
	for _, rec := range list {
		out = append(out, ToReclamoResponse(rec))
	}
	return out, nil
}

// ListarTodos listado administrativo con filtros de estado y prioridad.
func (uc *UseCase) ListarTodos(ctx context.Context, estado string, prioridad int, page dto.PageRequest) ([]*dto.ReclamoResponse, error) {
	page.DefaultPage()
	filter := repository.ReclamoFilter{Limit: page.Limit, Offset: page.Offset}
	if estado != "" {
		e := workflow.EstadoReclamo(estado)
		if !e.Valido() {
			return nil, domain.ErrInvalidInput
		}
		filter.Estado = &e
	}
	if prioridad != 0 {
		if prioridad < 1 || prioridad > 3 {
			return nil, domain.ErrInvalidInput
		}
		filter.Prioridad = &prioridad
	}
	list, err := uc.reclamoRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ReclamoResponse, 0, len(list))
	for _, rec := range list {
		out = append(out, ToReclamoResponse(rec))
	}
	return out, nil
}

// ResumenPorSocio conteos por estado de los reclamos del socio.
func (uc *UseCase) ResumenPorSocio(ctx context.Context, socioID string) (*dto.ResumenReclamosResponse, error) {
	res, err := uc.reclamoRepo.ResumenPorSocio(ctx, socioID)
	if err != nil {
		return nil, err
	}
	return toResumenResponse(res), nil
}

// ResumenPorOperario conteos por estado de los reclamos asignados al operario.
func (uc *UseCase) ResumenPorOperario(ctx context.Context, operarioID string) (*dto.ResumenReclamosResponse, error) {
	res, err := uc.reclamoRepo.ResumenPorOperario(ctx, operarioID)
	if err != nil {
		return nil, err
	}
	return toResumenResponse(res), nil
}

// ResumenGlobal conteos por estado de todos los reclamos.
func (uc *UseCase) ResumenGlobal(ctx context.Context) (*dto.ResumenReclamosResponse, error) {
	res, err := uc.reclamoRepo.ResumenGlobal(ctx)
	if err != nil {
		return nil, err
	}
	return toResumenResponse(res), nil
}

func (uc *UseCase) obtener(ctx context.Context, id string) (*dto.ReclamoResponse, error) {
	reclamo, err := uc.reclamoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if reclamo == nil {
		return nil, domain.ErrNotFound
	}
	return ToReclamoResponse(reclamo), nil
}

// ToReclamoResponse convierte la entidad a su representación HTTP.
func ToReclamoResponse(r *entity.Reclamo) *dto.ReclamoResponse {
	return &dto.ReclamoResponse{
		ID:                  r.ID,
		CuentaID:            r.CuentaID,
		TipoID:              r.TipoID,
		Descripcion:         r.Descripcion,
		Prioridad:           r.Prioridad,
		Canal:               r.Canal,
		Estado:              string(r.Estado),
		OperarioID:          r.OperarioID,
		ObservacionesCierre: r.ObservacionesCierre,
		CreatedAt:           r.CreatedAt,
		CerradoAt:           r.CerradoAt,
	}
}

// ToOrdenResponse convierte la orden creada junto al reclamo a su representación HTTP.
func ToOrdenResponse(o *entity.OrdenTrabajo) *dto.OrdenTrabajoResponse {
	return &dto.OrdenTrabajoResponse{
		ID:                    o.ID,
		ReclamoID:             o.ReclamoID,
		EmpleadoID:            o.EmpleadoID,
		Estado:                string(o.Estado),
		DireccionIntervencion: o.DireccionIntervencion,
		Observaciones:         o.Observaciones,
		CuadrillaID:           o.CuadrillaID,
		FechaProgramada:       o.FechaProgramada,
		AsignadaAt:            o.AsignadaAt,
		CerradaAt:             o.CerradaAt,
		CreatedAt:             o.CreatedAt,
	}
}

func toResumenResponse(r *repository.ResumenReclamos) *dto.ResumenReclamosResponse {
	return &dto.ResumenReclamosResponse{
		Total:      r.Total,
		Pendientes: r.Pendientes,
		EnProceso:  r.EnProceso,
		Resueltos:  r.Resueltos,
		Cerrados:   r.Cerrados,
	}
}
