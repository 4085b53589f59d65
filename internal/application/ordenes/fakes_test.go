package ordenes_test

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/coelsur/cooperativa-api/internal/domain/entity"
	"github.com/coelsur/cooperativa-api/internal/domain/repository"
	"github.com/coelsur/cooperativa-api/internal/domain/workflow"
)

// fakeStore estado compartido en memoria. Los repos fake replican las guardas
// de los UPDATE de la capa postgres (estado y empleado esperados en el WHERE).
type fakeStore struct {
	reclamos   map[string]*entity.Reclamo
	ordenes    map[string]*entity.OrdenTrabajo
	empleados  map[string]*entity.Empleado
	cuadrillas map[string]*entity.Cuadrilla

	failSetEstado bool // simula un fallo de DB en el espejo del reclamo
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		reclamos:   make(map[string]*entity.Reclamo),
		ordenes:    make(map[string]*entity.OrdenTrabajo),
		empleados:  make(map[string]*entity.Empleado),
		cuadrillas: make(map[string]*entity.Cuadrilla),
	}
}

func cloneReclamo(r *entity.Reclamo) *entity.Reclamo {
	c := *r
	if r.OperarioID != nil {
		v := *r.OperarioID
		c.OperarioID = &v
	}
	if r.ObservacionesCierre != nil {
		v := *r.ObservacionesCierre
		c.ObservacionesCierre = &v
	}
	if r.CerradoAt != nil {
		v := *r.CerradoAt
		c.CerradoAt = &v
	}
	return &c
}

func cloneOrden(o *entity.OrdenTrabajo) *entity.OrdenTrabajo {
	c := *o
	if o.EmpleadoID != nil {
		v := *o.EmpleadoID
		c.EmpleadoID = &v
	}
	if o.CuadrillaID != nil {
		v := *o.CuadrillaID
		c.CuadrillaID = &v
	}
	if o.FechaProgramada != nil {
		v := *o.FechaProgramada
		c.FechaProgramada = &v
	}
	if o.AsignadaAt != nil {
		v := *o.AsignadaAt
		c.AsignadaAt = &v
	}
	if o.CerradaAt != nil {
		v := *o.CerradaAt
		c.CerradaAt = &v
	}
	return &c
}

func (s *fakeStore) snapshot() (map[string]*entity.Reclamo, map[string]*entity.OrdenTrabajo) {
	sr := make(map[string]*entity.Reclamo, len(s.reclamos))
	for k, v := range s.reclamos {
		sr[k] = cloneReclamo(v)
	}
	so := make(map[string]*entity.OrdenTrabajo, len(s.ordenes))
	for k, v := range s.ordenes {
		so[k] = cloneOrden(v)
	}
	return sr, so
}

// appendNota replica el appendObs SQL: concatena con salto de línea y recorta.
func appendNota(obs string, nota string) string {
	return strings.Trim(obs+"\n"+nota, "\n")
}

// ── fakeTxRunner ──────────────────────────────────────────────────────────────

// fakeTxRunner ejecuta el callback sobre el store y restaura el snapshot si fn
// falla, emulando el rollback.
type fakeTxRunner struct {
	store *fakeStore
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	reclamoRepo repository.ReclamoRepository,
	ordenRepo repository.OrdenTrabajoRepository,
) error) error {
	sr, so := r.store.snapshot()
	err := fn(&fakeReclamoRepo{store: r.store}, &fakeOrdenRepo{store: r.store})
	if err != nil {
		r.store.reclamos = sr
		r.store.ordenes = so
	}
	return err
}

// ── fakeReclamoRepo ───────────────────────────────────────────────────────────

type fakeReclamoRepo struct {
	store *fakeStore
}

func (f *fakeReclamoRepo) Create(_ context.Context, reclamo *entity.Reclamo) error {
	f.store.reclamos[reclamo.ID] = cloneReclamo(reclamo)
	return nil
}

func (f *fakeReclamoRepo) GetByID(_ context.Context, id string) (*entity.Reclamo, error) {
	r, ok := f.store.reclamos[id]
	if !ok {
		return nil, nil
	}
	return cloneReclamo(r), nil
}

func (f *fakeReclamoRepo) ListByCuenta(_ context.Context, cuentaID string, _, _ int) ([]*entity.Reclamo, error) {
	var out []*entity.Reclamo
	for _, r := range f.store.reclamos {
		if r.CuentaID == cuentaID {
			out = append(out, cloneReclamo(r))
		}
	}
	return out, nil
}

func (f *fakeReclamoRepo) ListBySocio(_ context.Context, _ string, _, _ int) ([]*entity.Reclamo, error) {
	return nil, nil
}

func (f *fakeReclamoRepo) List(_ context.Context, _ repository.ReclamoFilter) ([]*entity.Reclamo, error) {
	var out []*entity.Reclamo
	for _, r := range f.store.reclamos {
		out = append(out, cloneReclamo(r))
	}
	return out, nil
}

func (f *fakeReclamoRepo) Transicionar(_ context.Context, id string, desde, hacia workflow.EstadoReclamo, observaciones *string, cerradoAt *time.Time) (bool, error) {
	r, ok := f.store.reclamos[id]
	if !ok || r.Estado != desde {
		return false, nil
	}
	r.Estado = hacia
	if observaciones != nil {
		r.ObservacionesCierre = observaciones
	}
	if cerradoAt != nil {
		r.CerradoAt = cerradoAt
	}
	return true, nil
}

func (f *fakeReclamoRepo) SetEstado(_ context.Context, id string, estado workflow.EstadoReclamo, observaciones *string, cerradoAt *time.Time) (bool, error) {
	if f.store.failSetEstado {
		return false, errors.New("db caída")
	}
	r, ok := f.store.reclamos[id]
	if !ok {
		return false, nil
	}
	r.Estado = estado
	if observaciones != nil {
		r.ObservacionesCierre = observaciones
	}
	r.CerradoAt = cerradoAt
	return true, nil
}

func (f *fakeReclamoRepo) AsignarOperario(_ context.Context, id, operarioID string) (bool, error) {
	r, ok := f.store.reclamos[id]
	if !ok {
		return false, nil
	}
	r.OperarioID = &operarioID
	if r.Estado == workflow.ReclamoPendiente {
		r.Estado = workflow.ReclamoEnProceso
	}
	return true, nil
}

func (f *fakeReclamoRepo) ResumenPorSocio(_ context.Context, _ string) (*repository.ResumenReclamos, error) {
	return &repository.ResumenReclamos{}, nil
}

func (f *fakeReclamoRepo) ResumenPorOperario(_ context.Context, _ string) (*repository.ResumenReclamos, error) {
	return &repository.ResumenReclamos{}, nil
}

func (f *fakeReclamoRepo) ResumenGlobal(_ context.Context) (*repository.ResumenReclamos, error) {
	return &repository.ResumenReclamos{}, nil
}

// ── fakeOrdenRepo ─────────────────────────────────────────────────────────────

type fakeOrdenRepo struct {
	store *fakeStore
}

func (f *fakeOrdenRepo) Create(_ context.Context, orden *entity.OrdenTrabajo) error {
	f.store.ordenes[orden.ID] = cloneOrden(orden)
	return nil
}

func (f *fakeOrdenRepo) GetByID(_ context.Context, id string) (*entity.OrdenTrabajo, error) {
	o, ok := f.store.ordenes[id]
	if !ok {
		return nil, nil
	}
	return cloneOrden(o), nil
}

func (f *fakeOrdenRepo) GetByReclamo(_ context.Context, reclamoID string) (*entity.OrdenTrabajo, error) {
	for _, o := range f.store.ordenes {
		if o.ReclamoID == reclamoID {
			return cloneOrden(o), nil
		}
	}
	return nil, nil
}

func (f *fakeOrdenRepo) ListByEmpleado(_ context.Context, empleadoID string, _, _ int) ([]*entity.OrdenTrabajo, error) {
	var out []*entity.OrdenTrabajo
	for _, o := range f.store.ordenes {
		if o.EmpleadoID != nil && *o.EmpleadoID == empleadoID {
			out = append(out, cloneOrden(o))
		}
	}
	return out, nil
}

func (f *fakeOrdenRepo) ListSinAsignar(_ context.Context, _ string) ([]*entity.OrdenTrabajo, error) {
	var out []*entity.OrdenTrabajo
	for _, o := range f.store.ordenes {
		if o.Estado == workflow.OrdenPendiente && o.EmpleadoID == nil && o.CuadrillaID == nil {
			out = append(out, cloneOrden(o))
		}
	}
	return out, nil
}

func (f *fakeOrdenRepo) MarcarEnProceso(_ context.Context, id string, observaciones *string) (bool, error) {
	o, ok := f.store.ordenes[id]
	if !ok || o.Estado != workflow.OrdenPendiente || o.EmpleadoID != nil {
		return false, nil
	}
	o.Estado = workflow.OrdenEnProceso
	if observaciones != nil {
		o.Observaciones = appendNota(o.Observaciones, *observaciones)
	}
	return true, nil
}

func (f *fakeOrdenRepo) CerrarAdministrativa(_ context.Context, id, observaciones string, cerradaAt time.Time) (bool, error) {
	o, ok := f.store.ordenes[id]
	if !ok || o.Estado != workflow.OrdenEnProceso || o.EmpleadoID != nil {
		return false, nil
	}
	o.Estado = workflow.OrdenCerrada
	o.Observaciones = appendNota(o.Observaciones, observaciones)
	o.CerradaAt = &cerradaAt
	return true, nil
}

func (f *fakeOrdenRepo) AsignarEmpleado(_ context.Context, id, empleadoID string, asignadaAt time.Time) (bool, error) {
	o, ok := f.store.ordenes[id]
	if !ok || o.Estado != workflow.OrdenPendiente {
		return false, nil
	}
	o.Estado = workflow.OrdenAsignada
	o.EmpleadoID = &empleadoID
	o.AsignadaAt = &asignadaAt
	return true, nil
}

func (f *fakeOrdenRepo) IniciarTrabajo(_ context.Context, id, empleadoID string) (bool, error) {
	o, ok := f.store.ordenes[id]
	if !ok || o.Estado != workflow.OrdenAsignada || o.EmpleadoID == nil || *o.EmpleadoID != empleadoID {
		return false, nil
	}
	o.Estado = workflow.OrdenEnProceso
	return true, nil
}

func (f *fakeOrdenRepo) Completar(_ context.Context, id, empleadoID, observaciones string, cerradaAt time.Time) (bool, error) {
	o, ok := f.store.ordenes[id]
	if !ok || o.Estado != workflow.OrdenEnProceso || o.EmpleadoID == nil || *o.EmpleadoID != empleadoID {
		return false, nil
	}
	o.Estado = workflow.OrdenCompletada
	o.Observaciones = appendNota(o.Observaciones, observaciones)
	o.CerradaAt = &cerradaAt
	return true, nil
}

func (f *fakeOrdenRepo) Cancelar(_ context.Context, id, motivo string) (bool, error) {
	o, ok := f.store.ordenes[id]
	if !ok || (o.Estado != workflow.OrdenPendiente && o.Estado != workflow.OrdenAsignada) {
		return false, nil
	}
	o.Estado = workflow.OrdenCancelada
	o.EmpleadoID = nil
	o.Observaciones = appendNota(o.Observaciones, "Cancelada: "+motivo)
	return true, nil
}

func (f *fakeOrdenRepo) AsignarACuadrilla(_ context.Context, id, cuadrillaID string, fecha time.Time, nota string) (bool, error) {
	o, ok := f.store.ordenes[id]
	if !ok || o.Estado != workflow.OrdenPendiente || o.EmpleadoID != nil {
		return false, nil
	}
	o.CuadrillaID = &cuadrillaID
	o.FechaProgramada = &fecha
	o.Observaciones = appendNota(o.Observaciones, nota)
	return true, nil
}

func (f *fakeOrdenRepo) ListItinerario(_ context.Context, cuadrillaID string, fecha time.Time) ([]*entity.OrdenTrabajo, error) {
	var out []*entity.OrdenTrabajo
	for _, o := range f.store.ordenes {
		if o.CuadrillaID != nil && *o.CuadrillaID == cuadrillaID &&
			o.FechaProgramada != nil && o.FechaProgramada.Equal(fecha) {
			out = append(out, cloneOrden(o))
		}
	}
	return out, nil
}

func (f *fakeOrdenRepo) TomarDeItinerario(_ context.Context, id, empleadoID, cuadrillaID string, fecha, asignadaAt time.Time, nota string) (bool, error) {
	o, ok := f.store.ordenes[id]
	if !ok || o.CuadrillaID == nil || *o.CuadrillaID != cuadrillaID ||
		o.FechaProgramada == nil || !o.FechaProgramada.Equal(fecha) ||
		o.Estado != workflow.OrdenPendiente || o.EmpleadoID != nil {
		return false, nil
	}
	o.Estado = workflow.OrdenAsignada
	o.EmpleadoID = &empleadoID
	o.AsignadaAt = &asignadaAt
	o.Observaciones = appendNota(o.Observaciones, nota)
	return true, nil
}

func (f *fakeOrdenRepo) QuitarDeItinerario(_ context.Context, id string) (bool, error) {
	o, ok := f.store.ordenes[id]
	if !ok || o.Estado != workflow.OrdenPendiente || o.EmpleadoID != nil || o.CuadrillaID == nil {
		return false, nil
	}
	o.CuadrillaID = nil
	o.FechaProgramada = nil
	return true, nil
}

// ── fakeEmpleadoRepo / fakeCuadrillaRepo ──────────────────────────────────────

type fakeEmpleadoRepo struct {
	store *fakeStore
}

func (f *fakeEmpleadoRepo) Create(_ context.Context, empleado *entity.Empleado) error {
	f.store.empleados[empleado.ID] = empleado
	return nil
}

func (f *fakeEmpleadoRepo) GetByID(_ context.Context, id string) (*entity.Empleado, error) {
	e, ok := f.store.empleados[id]
	if !ok {
		return nil, nil
	}
	return e, nil
}

func (f *fakeEmpleadoRepo) List(_ context.Context, _ bool) ([]*entity.Empleado, error) {
	return nil, nil
}

func (f *fakeEmpleadoRepo) ListByCuadrilla(_ context.Context, _ string) ([]*entity.Empleado, error) {
	return nil, nil
}

func (f *fakeEmpleadoRepo) AsignarCuadrilla(_ context.Context, empleadoID string, cuadrillaID *string) error {
	if e, ok := f.store.empleados[empleadoID]; ok {
		e.CuadrillaID = cuadrillaID
	}
	return nil
}

type fakeCuadrillaRepo struct {
	store *fakeStore
}

func (f *fakeCuadrillaRepo) Create(_ context.Context, cuadrilla *entity.Cuadrilla) error {
	f.store.cuadrillas[cuadrilla.ID] = cuadrilla
	return nil
}

func (f *fakeCuadrillaRepo) GetByID(_ context.Context, id string) (*entity.Cuadrilla, error) {
	c, ok := f.store.cuadrillas[id]
	if !ok {
		return nil, nil
	}
	return c, nil
}

func (f *fakeCuadrillaRepo) List(_ context.Context, _ bool) ([]*entity.Cuadrilla, error) {
	return nil, nil
}
