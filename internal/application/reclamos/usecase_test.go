package reclamos_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coelsur/cooperativa-api/internal/application/dto"
	"github.com/coelsur/cooperativa-api/internal/application/reclamos"
	"github.com/coelsur/cooperativa-api/internal/domain"
	"github.com/coelsur/cooperativa-api/internal/domain/entity"
	"github.com/coelsur/cooperativa-api/internal/domain/repository"
	"github.com/coelsur/cooperativa-api/internal/domain/workflow"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	reclamos  map[string]*entity.Reclamo
	ordenes   map[string]*entity.OrdenTrabajo
	cuentas   map[string]*entity.Cuenta
	tipos     map[string]*entity.TipoReclamo
	empleados map[string]*entity.Empleado

	failOrdenCreate bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		reclamos:  map[string]*entity.Reclamo{},
		ordenes:   map[string]*entity.OrdenTrabajo{},
		cuentas:   map[string]*entity.Cuenta{},
		tipos:     map[string]*entity.TipoReclamo{},
		empleados: map[string]*entity.Empleado{},
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

type fakeReclamoRepo struct {
	store *fakeStore
}

func (r *fakeReclamoRepo) Create(_ context.Context, reclamo *entity.Reclamo) error {
	r.store.reclamos[reclamo.ID] = cloneReclamo(reclamo)
	return nil
}

func (r *fakeReclamoRepo) GetByID(_ context.Context, id string) (*entity.Reclamo, error) {
	rec, ok := r.store.reclamos[id]
	if !ok {
		return nil, nil
	}
	return cloneReclamo(rec), nil
}

func (r *fakeReclamoRepo) ListByCuenta(_ context.Context, cuentaID string, _, _ int) ([]*entity.Reclamo, error) {
	var out []*entity.Reclamo
	for _, rec := range r.store.reclamos {
		if rec.CuentaID == cuentaID {
			out = append(out, cloneReclamo(rec))
		}
	}
	return out, nil
}

func (r *fakeReclamoRepo) ListBySocio(_ context.Context, socioID string, limit, offset int) ([]*entity.Reclamo, error) {
	var out []*entity.Reclamo
	for _, rec := range r.store.reclamos {
		cuenta, ok := r.store.cuentas[rec.CuentaID]
		if ok && cuenta.SocioID == socioID {
			out = append(out, cloneReclamo(rec))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeReclamoRepo) List(_ context.Context, filter repository.ReclamoFilter) ([]*entity.Reclamo, error) {
	var out []*entity.Reclamo
	for _, rec := range r.store.reclamos {
		if filter.Estado != nil && rec.Estado != *filter.Estado {
			continue
		}
		if filter.Prioridad != nil && rec.Prioridad != *filter.Prioridad {
			continue
		}
		out = append(out, cloneReclamo(rec))
	}
	return out, nil
}

func (r *fakeReclamoRepo) Transicionar(_ context.Context, id string, desde, hacia workflow.EstadoReclamo, observaciones *string, cerradoAt *time.Time) (bool, error) {
	rec, ok := r.store.reclamos[id]
	if !ok || rec.Estado != desde {
		return false, nil
	}
	rec.Estado = hacia
	if observaciones != nil {
		rec.ObservacionesCierre = observaciones
	}
	rec.CerradoAt = cerradoAt
	return true, nil
}

func (r *fakeReclamoRepo) AsignarOperario(_ context.Context, id, operarioID string) (bool, error) {
	rec, ok := r.store.reclamos[id]
	if !ok {
		return false, nil
	}
	rec.OperarioID = &operarioID
	if rec.Estado == workflow.ReclamoPendiente {
		rec.Estado = workflow.ReclamoEnProceso
	}
	return true, nil
}

func (r *fakeReclamoRepo) SetEstado(_ context.Context, id string, estado workflow.EstadoReclamo, observaciones *string, cerradoAt *time.Time) (bool, error) {
	rec, ok := r.store.reclamos[id]
	if !ok {
		return false, nil
	}
	rec.Estado = estado
	if observaciones != nil {
		rec.ObservacionesCierre = observaciones
	}
	rec.CerradoAt = cerradoAt
	return true, nil
}

func (r *fakeReclamoRepo) resumen(filtro func(*entity.Reclamo) bool) *repository.ResumenReclamos {
	res := &repository.ResumenReclamos{}
	for _, rec := range r.store.reclamos {
		if !filtro(rec) {
			continue
		}
		res.Total++
		switch rec.Estado {
		case workflow.ReclamoPendiente:
			res.Pendientes++
		case workflow.ReclamoEnProceso:
			res.EnProceso++
		case workflow.ReclamoResuelto:
			res.Resueltos++
		case workflow.ReclamoCerrado:
			res.Cerrados++
		}
	}
	return res
}

func (r *fakeReclamoRepo) ResumenPorSocio(_ context.Context, socioID string) (*repository.ResumenReclamos, error) {
	return r.resumen(func(rec *entity.Reclamo) bool {
		cuenta, ok := r.store.cuentas[rec.CuentaID]
		return ok && cuenta.SocioID == socioID
	}), nil
}

func (r *fakeReclamoRepo) ResumenPorOperario(_ context.Context, operarioID string) (*repository.ResumenReclamos, error) {
	return r.resumen(func(rec *entity.Reclamo) bool {
		return rec.OperarioID != nil && *rec.OperarioID == operarioID
	}), nil
}

func (r *fakeReclamoRepo) ResumenGlobal(_ context.Context) (*repository.ResumenReclamos, error) {
	return r.resumen(func(*entity.Reclamo) bool { return true }), nil
}

// fakeOrdenRepo solo implementa Create; el alta es lo único que este paquete
// hace sobre órdenes.
type fakeOrdenRepo struct {
	repository.OrdenTrabajoRepository
	store *fakeStore
}

func (r *fakeOrdenRepo) Create(_ context.Context, orden *entity.OrdenTrabajo) error {
	if r.store.failOrdenCreate {
		return assert.AnError
	}
	c := *orden
	r.store.ordenes[orden.ID] = &c
	return nil
}

type fakeCuentaRepo struct {
	repository.CuentaRepository
	store *fakeStore
}

func (r *fakeCuentaRepo) GetByID(_ context.Context, id string) (*entity.Cuenta, error) {
	cta, ok := r.store.cuentas[id]
	if !ok {
		return nil, nil
	}
	c := *cta
	return &c, nil
}

func (r *fakeCuentaRepo) ListBySocio(_ context.Context, socioID string) ([]*entity.Cuenta, error) {
	var out []*entity.Cuenta
	for _, cta := range r.store.cuentas {
		if cta.SocioID == socioID {
			c := *cta
			out = append(out, &c)
		}
	}
	return out, nil
}

type fakeTipoRepo struct {
	repository.TipoReclamoRepository
	store *fakeStore
}

func (r *fakeTipoRepo) GetByID(_ context.Context, id string) (*entity.TipoReclamo, error) {
	tipo, ok := r.store.tipos[id]
	if !ok {
		return nil, nil
	}
	c := *tipo
	return &c, nil
}

type fakeEmpleadoRepo struct {
	repository.EmpleadoRepository
	store *fakeStore
}

func (r *fakeEmpleadoRepo) GetByID(_ context.Context, id string) (*entity.Empleado, error) {
	emp, ok := r.store.empleados[id]
	if !ok {
		return nil, nil
	}
	c := *emp
	return &c, nil
}

// fakeTxRunner revierte los mapas si fn falla, imitando el rollback.
type fakeTxRunner struct {
	store *fakeStore
}

func (t *fakeTxRunner) Run(ctx context.Context, fn func(
	reclamoRepo repository.ReclamoRepository,
	ordenRepo repository.OrdenTrabajoRepository,
) error) error {
	recSnap := map[string]*entity.Reclamo{}
	for k, v := range t.store.reclamos {
		recSnap[k] = cloneReclamo(v)
	}
	ordSnap := map[string]*entity.OrdenTrabajo{}
	for k, v := range t.store.ordenes {
		c := *v
		ordSnap[k] = &c
	}
	err := fn(&fakeReclamoRepo{store: t.store}, &fakeOrdenRepo{store: t.store})
	if err != nil {
		t.store.reclamos = recSnap
		t.store.ordenes = ordSnap
	}
	return err
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func buildUseCase(store *fakeStore) *reclamos.UseCase {
	return reclamos.NewUseCase(
		&fakeTxRunner{store: store},
		&fakeReclamoRepo{store: store},
		&fakeCuentaRepo{store: store},
		&fakeTipoRepo{store: store},
		&fakeEmpleadoRepo{store: store},
	)
}

func seedCuenta(store *fakeStore, id, socioID string) {
	store.cuentas[id] = &entity.Cuenta{
		ID: id, SocioID: socioID, Numero: "N-" + id,
		DireccionSuministro: "Av. San Martín 1234", Estado: "ACTIVA",
	}
}

func seedTipo(store *fakeStore, id, categoria string, activo bool) {
	store.tipos[id] = &entity.TipoReclamo{
		ID: id, Nombre: "Tipo " + id, Categoria: categoria, Activo: activo,
	}
}

func crearRequest(cuentaID, tipoID string) dto.CreateReclamoRequest {
	return dto.CreateReclamoRequest{
		CuentaID:    cuentaID,
		TipoID:      tipoID,
		Descripcion: "sin suministro desde anoche",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Crear: reclamo + orden nacen juntos
// ──────────────────────────────────────────────────────────────────────────────

func TestCrear_TecnicoHeredaDireccion(t *testing.T) {
	store := newFakeStore()
	seedCuenta(store, "cta-1", "socio-1")
	seedTipo(store, "tipo-tec", entity.CategoriaTecnico, true)
	uc := buildUseCase(store)

	out, err := uc.Crear(context.Background(), "socio-1", crearRequest("cta-1", "tipo-tec"))
	require.NoError(t, err)
	assert.Equal(t, "PENDIENTE", out.Reclamo.Estado)
	assert.Equal(t, 2, out.Reclamo.Prioridad, "prioridad default")
	assert.Equal(t, "WEB", out.Reclamo.Canal, "canal default")

	require.NotNil(t, out.Orden)
	assert.Equal(t, "PENDIENTE", out.Orden.Estado)
	assert.Equal(t, out.Reclamo.ID, out.Orden.ReclamoID)
	assert.Equal(t, "Av. San Martín 1234", out.Orden.DireccionIntervencion)
	assert.Nil(t, out.Orden.EmpleadoID)
}

func TestCrear_AdministrativoSinDireccion(t *testing.T) {
	store := newFakeStore()
	seedCuenta(store, "cta-1", "socio-1")
	seedTipo(store, "tipo-adm", entity.CategoriaAdministrativo, true)
	uc := buildUseCase(store)

	out, err := uc.Crear(context.Background(), "socio-1", crearRequest("cta-1", "tipo-adm"))
	require.NoError(t, err)
	assert.Empty(t, out.Orden.DireccionIntervencion)
}

func TestCrear_CuentaAjena(t *testing.T) {
	store := newFakeStore()
	seedCuenta(store, "cta-1", "socio-1")
	seedTipo(store, "tipo-tec", entity.CategoriaTecnico, true)
	uc := buildUseCase(store)

	_, err := uc.Crear(context.Background(), "socio-intruso", crearRequest("cta-1", "tipo-tec"))
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCrear_StaffSinTitularidad(t *testing.T) {
	store := newFakeStore()
	seedCuenta(store, "cta-1", "socio-1")
	seedTipo(store, "tipo-tec", entity.CategoriaTecnico, true)
	uc := buildUseCase(store)

	// socioID vacío: el alta por mostrador no exige titularidad
	_, err := uc.Crear(context.Background(), "", crearRequest("cta-1", "tipo-tec"))
	assert.NoError(t, err)
}

func TestCrear_TipoInactivo(t *testing.T) {
	store := newFakeStore()
	seedCuenta(store, "cta-1", "socio-1")
	seedTipo(store, "tipo-baja", entity.CategoriaTecnico, false)
	uc := buildUseCase(store)

	_, err := uc.Crear(context.Background(), "socio-1", crearRequest("cta-1", "tipo-baja"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCrear_PrioridadFueraDeRango(t *testing.T) {
	store := newFakeStore()
	seedCuenta(store, "cta-1", "socio-1")
	seedTipo(store, "tipo-tec", entity.CategoriaTecnico, true)
	uc := buildUseCase(store)

	in := crearRequest("cta-1", "tipo-tec")
	in.Prioridad = 4
	_, err := uc.Crear(context.Background(), "socio-1", in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCrear_FallaLaOrden_NadaQueda(t *testing.T) {
	store := newFakeStore()
	seedCuenta(store, "cta-1", "socio-1")
	seedTipo(store, "tipo-tec", entity.CategoriaTecnico, true)
	store.failOrdenCreate = true
	uc := buildUseCase(store)

	_, err := uc.Crear(context.Background(), "socio-1", crearRequest("cta-1", "tipo-tec"))
	require.Error(t, err)

	// rollback: el reclamo no queda huérfano
	assert.Empty(t, store.reclamos)
	assert.Empty(t, store.ordenes)
}

// ──────────────────────────────────────────────────────────────────────────────
// Transicionar
// ──────────────────────────────────────────────────────────────────────────────

func seedReclamo(store *fakeStore, id string, estado workflow.EstadoReclamo) {
	store.reclamos[id] = &entity.Reclamo{
		ID: id, CuentaID: "cta-1", TipoID: "tipo-tec",
		Descripcion: "corte de luz", Prioridad: 2, Canal: "WEB",
		Estado: estado, CreatedAt: time.Now(),
	}
}

func TestTransicionar_EstampaElCierre(t *testing.T) {
	store := newFakeStore()
	seedReclamo(store, "rec-1", workflow.ReclamoEnProceso)
	uc := buildUseCase(store)

	out, err := uc.Transicionar(context.Background(), "rec-1", "RESUELTO", "se normalizó el servicio")
	require.NoError(t, err)
	assert.Equal(t, "RESUELTO", out.Estado)
	require.NotNil(t, out.ObservacionesCierre)
	assert.Equal(t, "se normalizó el servicio", *out.ObservacionesCierre)
	assert.NotNil(t, out.CerradoAt)
}

func TestTransicionar_EstadoDesconocido(t *testing.T) {
	store := newFakeStore()
	seedReclamo(store, "rec-1", workflow.ReclamoPendiente)
	uc := buildUseCase(store)

	_, err := uc.Transicionar(context.Background(), "rec-1", "ARCHIVADO", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTransicionar_TransicionProhibida(t *testing.T) {
	store := newFakeStore()
	seedReclamo(store, "rec-1", workflow.ReclamoPendiente)
	uc := buildUseCase(store)

	// PENDIENTE no puede saltar a RESUELTO
	_, err := uc.Transicionar(context.Background(), "rec-1", "RESUELTO", "")
	assert.ErrorIs(t, err, domain.ErrTransicionInvalida)
	assert.Equal(t, workflow.ReclamoPendiente, store.reclamos["rec-1"].Estado)
}

func TestTransicionar_CierreDirectoDesdePendiente(t *testing.T) {
	store := newFakeStore()
	seedReclamo(store, "rec-1", workflow.ReclamoPendiente)
	uc := buildUseCase(store)

	out, err := uc.Transicionar(context.Background(), "rec-1", "CERRADO", "duplicado del reclamo anterior")
	require.NoError(t, err)
	assert.Equal(t, "CERRADO", out.Estado)
	assert.NotNil(t, out.CerradoAt)
}

func TestTransicionar_CarreraPerdida(t *testing.T) {
	store := newFakeStore()
	seedReclamo(store, "rec-1", workflow.ReclamoPendiente)
	uc := buildUseCase(store)

	// entre el GetByID y el UPDATE otra request lo movió
	carrera := &carreraReclamoRepo{fakeReclamoRepo{store: store}}
	uc = reclamos.NewUseCase(
		&fakeTxRunner{store: store},
		carrera,
		&fakeCuentaRepo{store: store},
		&fakeTipoRepo{store: store},
		&fakeEmpleadoRepo{store: store},
	)

	_, err := uc.Transicionar(context.Background(), "rec-1", "EN_PROCESO", "")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// carreraReclamoRepo mueve el reclamo justo después de la lectura.
type carreraReclamoRepo struct {
	fakeReclamoRepo
}

func (r *carreraReclamoRepo) GetByID(ctx context.Context, id string) (*entity.Reclamo, error) {
	rec, err := r.fakeReclamoRepo.GetByID(ctx, id)
	if rec != nil {
		r.store.reclamos[id].Estado = workflow.ReclamoEnProceso
	}
	return rec, err
}

// ──────────────────────────────────────────────────────────────────────────────
// Asignación y listados
// ──────────────────────────────────────────────────────────────────────────────

func TestAsignarOperario_AvanzaElPendiente(t *testing.T) {
	store := newFakeStore()
	seedReclamo(store, "rec-1", workflow.ReclamoPendiente)
	store.empleados["emp-1"] = &entity.Empleado{ID: "emp-1", Nombre: "Juana", Apellido: "Gómez", Activo: true}
	uc := buildUseCase(store)

	out, err := uc.AsignarOperario(context.Background(), "rec-1", "emp-1")
	require.NoError(t, err)
	assert.Equal(t, "EN_PROCESO", out.Estado)
	require.NotNil(t, out.OperarioID)
	assert.Equal(t, "emp-1", *out.OperarioID)
}

func TestAsignarOperario_Inactivo(t *testing.T) {
	store := newFakeStore()
	seedReclamo(store, "rec-1", workflow.ReclamoPendiente)
	store.empleados["emp-baja"] = &entity.Empleado{ID: "emp-baja", Activo: false}
	uc := buildUseCase(store)

	_, err := uc.AsignarOperario(context.Background(), "rec-1", "emp-baja")
	assert.ErrorIs(t, err, domain.ErrEmpleadoInactivo)
}

func TestListarTodos_FiltroInvalido(t *testing.T) {
	store := newFakeStore()
	uc := buildUseCase(store)
	ctx := context.Background()

	_, err := uc.ListarTodos(ctx, "ARCHIVADO", 0, dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.ListarTodos(ctx, "", 9, dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListarPorSocio_SoloSusCuentas(t *testing.T) {
	store := newFakeStore()
	seedCuenta(store, "cta-1", "socio-1")
	seedCuenta(store, "cta-2", "socio-2")
	seedReclamo(store, "rec-1", workflow.ReclamoPendiente)
	store.reclamos["rec-1"].CuentaID = "cta-1"
	seedReclamo(store, "rec-2", workflow.ReclamoPendiente)
	store.reclamos["rec-2"].CuentaID = "cta-2"
	uc := buildUseCase(store)

	out, err := uc.ListarPorSocio(context.Background(), "socio-1", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "rec-1", out[0].ID)
}

func TestListarPorSocio_PaginaSobreTodasLasCuentas(t *testing.T) {
	store := newFakeStore()
	seedCuenta(store, "cta-1", "socio-1")
	seedCuenta(store, "cta-2", "socio-1")
	base := time.Now()
	for i, par := range []struct{ id, cuenta string }{
		{"rec-1", "cta-1"},
		{"rec-2", "cta-2"},
		{"rec-3", "cta-1"},
	} {
		seedReclamo(store, par.id, workflow.ReclamoPendiente)
		store.reclamos[par.id].CuentaID = par.cuenta
		store.reclamos[par.id].CreatedAt = base.Add(time.Duration(i) * time.Minute)
	}
	uc := buildUseCase(store)

	// el límite aplica sobre el conjunto completo, no por cuenta
	out, err := uc.ListarPorSocio(context.Background(), "socio-1", dto.PageRequest{Limit: 2})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "rec-3", out[0].ID)
	assert.Equal(t, "rec-2", out[1].ID)

	out, err = uc.ListarPorSocio(context.Background(), "socio-1", dto.PageRequest{Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "rec-1", out[0].ID)
}

func TestResumenGlobal(t *testing.T) {
	store := newFakeStore()
	seedReclamo(store, "rec-1", workflow.ReclamoPendiente)
	seedReclamo(store, "rec-2", workflow.ReclamoEnProceso)
	seedReclamo(store, "rec-3", workflow.ReclamoResuelto)
	uc := buildUseCase(store)

	res, err := uc.ResumenGlobal(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 1, res.Pendientes)
	assert.Equal(t, 1, res.EnProceso)
	assert.Equal(t, 1, res.Resueltos)
	assert.Equal(t, 0, res.Cerrados)
}
