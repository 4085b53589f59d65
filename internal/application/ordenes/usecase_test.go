package ordenes_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coelsur/cooperativa-api/internal/application/ordenes"
	"github.com/coelsur/cooperativa-api/internal/domain"
	"github.com/coelsur/cooperativa-api/internal/domain/entity"
	"github.com/coelsur/cooperativa-api/internal/domain/workflow"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func buildUseCase(store *fakeStore) *ordenes.UseCase {
	return ordenes.NewUseCase(
		&fakeTxRunner{store: store},
		&fakeOrdenRepo{store: store},
		&fakeEmpleadoRepo{store: store},
		&fakeCuadrillaRepo{store: store},
	)
}

// seedPar crea un reclamo PENDIENTE con su orden PENDIENTE, sin empleado.
func seedPar(store *fakeStore, reclamoID, ordenID string) {
	store.reclamos[reclamoID] = &entity.Reclamo{
		ID:          reclamoID,
		CuentaID:    "cuenta-1",
		TipoID:      "tipo-1",
		Descripcion: "corte de luz en la cuadra",
		Prioridad:   2,
		Canal:       "WEB",
		Estado:      workflow.ReclamoPendiente,
		CreatedAt:   time.Now(),
	}
	store.ordenes[ordenID] = &entity.OrdenTrabajo{
		ID:        ordenID,
		ReclamoID: reclamoID,
		Estado:    workflow.OrdenPendiente,
		CreatedAt: time.Now(),
	}
}

func seedEmpleado(store *fakeStore, id string, activo bool, cuadrillaID *string) {
	store.empleados[id] = &entity.Empleado{
		ID: id, Nombre: "Juana", Apellido: "Gómez", Legajo: "L-" + id,
		Activo: activo, CuadrillaID: cuadrillaID,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujo administrativo
// ──────────────────────────────────────────────────────────────────────────────

func TestMarcarEnProceso_EspejaReclamo(t *testing.T) {
	store := newFakeStore()
	seedPar(store, "rec-1", "ord-1")
	uc := buildUseCase(store)

	out, err := uc.MarcarEnProceso(context.Background(), "ord-1", "se deriva al área comercial")
	require.NoError(t, err)
	assert.Equal(t, "EN_PROCESO", out.Estado)

	// el reclamo padre se mueve en la misma operación
	assert.Equal(t, workflow.ReclamoEnProceso, store.reclamos["rec-1"].Estado)
	assert.Contains(t, store.ordenes["ord-1"].Observaciones, "área comercial")
}

func TestCerrarAdministrativa_ReclamoQuedaResuelto(t *testing.T) {
	store := newFakeStore()
	seedPar(store, "rec-1", "ord-1")
	store.ordenes["ord-1"].Estado = workflow.OrdenEnProceso
	store.reclamos["rec-1"].Estado = workflow.ReclamoEnProceso
	uc := buildUseCase(store)

	out, err := uc.CerrarAdministrativa(context.Background(), "ord-1", "se ajustó la facturación del período")
	require.NoError(t, err)
	assert.Equal(t, "CERRADA", out.Estado)
	assert.NotNil(t, out.CerradaAt)

	reclamo := store.reclamos["rec-1"]
	assert.Equal(t, workflow.ReclamoResuelto, reclamo.Estado)
	require.NotNil(t, reclamo.ObservacionesCierre)
	assert.Equal(t, "se ajustó la facturación del período", *reclamo.ObservacionesCierre)
	assert.NotNil(t, reclamo.CerradoAt)
}

func TestCerrarAdministrativa_SinObservaciones(t *testing.T) {
	store := newFakeStore()
	seedPar(store, "rec-1", "ord-1")
	store.ordenes["ord-1"].Estado = workflow.OrdenEnProceso
	uc := buildUseCase(store)

	_, err := uc.CerrarAdministrativa(context.Background(), "ord-1", "   ")
	assert.ErrorIs(t, err, domain.ErrObservacionRequerida)

	// se rechaza antes de tocar nada
	assert.Equal(t, workflow.OrdenEnProceso, store.ordenes["ord-1"].Estado)
}

func TestCerrarAdministrativa_EstadoIncompatible(t *testing.T) {
	store := newFakeStore()
	seedPar(store, "rec-1", "ord-1") // PENDIENTE, no EN_PROCESO
	uc := buildUseCase(store)

	_, err := uc.CerrarAdministrativa(context.Background(), "ord-1", "listo")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestTransicion_OrdenInexistente(t *testing.T) {
	store := newFakeStore()
	uc := buildUseCase(store)

	_, err := uc.MarcarEnProceso(context.Background(), "no-existe", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujo técnico
// ──────────────────────────────────────────────────────────────────────────────

func TestFlujoTecnicoCompleto(t *testing.T) {
	store := newFakeStore()
	seedPar(store, "rec-1", "ord-1")
	seedEmpleado(store, "emp-1", true, nil)
	uc := buildUseCase(store)
	ctx := context.Background()

	// asignar: orden ASIGNADA, reclamo EN_PROCESO
	out, err := uc.AsignarOperario(ctx, "ord-1", "emp-1")
	require.NoError(t, err)
	assert.Equal(t, "ASIGNADA", out.Estado)
	require.NotNil(t, out.EmpleadoID)
	assert.Equal(t, "emp-1", *out.EmpleadoID)
	assert.NotNil(t, out.AsignadaAt)
	assert.Equal(t, workflow.ReclamoEnProceso, store.reclamos["rec-1"].Estado)

	// iniciar: orden EN_PROCESO
	out, err = uc.IniciarTrabajo(ctx, "ord-1", "emp-1")
	require.NoError(t, err)
	assert.Equal(t, "EN_PROCESO", out.Estado)

	// completar: orden COMPLETADA, reclamo RESUELTO con cierre estampado
	out, err = uc.CompletarTrabajo(ctx, "ord-1", "emp-1", "se reemplazó el fusible del transformador")
	require.NoError(t, err)
	assert.Equal(t, "COMPLETADA", out.Estado)
	assert.NotNil(t, out.CerradaAt)

	reclamo := store.reclamos["rec-1"]
	assert.Equal(t, workflow.ReclamoResuelto, reclamo.Estado)
	require.NotNil(t, reclamo.ObservacionesCierre)
	assert.Contains(t, *reclamo.ObservacionesCierre, "fusible")
	assert.NotNil(t, reclamo.CerradoAt)
}

func TestAsignarOperario_EmpleadoInactivo(t *testing.T) {
	store := newFakeStore()
	seedPar(store, "rec-1", "ord-1")
	seedEmpleado(store, "emp-baja", false, nil)
	uc := buildUseCase(store)

	_, err := uc.AsignarOperario(context.Background(), "ord-1", "emp-baja")
	assert.ErrorIs(t, err, domain.ErrEmpleadoInactivo)
	assert.Equal(t, workflow.OrdenPendiente, store.ordenes["ord-1"].Estado)
}

func TestIniciarTrabajo_SoloElAsignado(t *testing.T) {
	store := newFakeStore()
	seedPar(store, "rec-1", "ord-1")
	seedEmpleado(store, "emp-1", true, nil)
	seedEmpleado(store, "emp-2", true, nil)
	uc := buildUseCase(store)
	ctx := context.Background()

	_, err := uc.AsignarOperario(ctx, "ord-1", "emp-1")
	require.NoError(t, err)

	// otro empleado no puede iniciarla
	_, err = uc.IniciarTrabajo(ctx, "ord-1", "emp-2")
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, workflow.OrdenAsignada, store.ordenes["ord-1"].Estado)
}

func TestCompletarTrabajo_SinObservaciones(t *testing.T) {
	store := newFakeStore()
	seedPar(store, "rec-1", "ord-1")
	uc := buildUseCase(store)

	_, err := uc.CompletarTrabajo(context.Background(), "ord-1", "emp-1", "")
	assert.ErrorIs(t, err, domain.ErrObservacionRequerida)
}

func TestCancelar_ReclamoVuelveAPendiente(t *testing.T) {
	store := newFakeStore()
	seedPar(store, "rec-1", "ord-1")
	seedEmpleado(store, "emp-1", true, nil)
	uc := buildUseCase(store)
	ctx := context.Background()

	_, err := uc.AsignarOperario(ctx, "ord-1", "emp-1")
	require.NoError(t, err)
	assert.Equal(t, workflow.ReclamoEnProceso, store.reclamos["rec-1"].Estado)

	out, err := uc.Cancelar(ctx, "ord-1", "el socio retiró el reclamo")
	require.NoError(t, err)
	assert.Equal(t, "CANCELADA", out.Estado)
	assert.Nil(t, out.EmpleadoID)
	assert.Contains(t, out.Observaciones, "Cancelada: el socio retiró el reclamo")

	// la cancelación revierte el reclamo, sin marca de cierre
	reclamo := store.reclamos["rec-1"]
	assert.Equal(t, workflow.ReclamoPendiente, reclamo.Estado)
	assert.Nil(t, reclamo.CerradoAt)
}

// ──────────────────────────────────────────────────────────────────────────────
// Atomicidad del par orden / reclamo
// ──────────────────────────────────────────────────────────────────────────────

func TestTransicion_FallaElEspejo_NadaCambia(t *testing.T) {
	store := newFakeStore()
	seedPar(store, "rec-1", "ord-1")
	store.failSetEstado = true
	uc := buildUseCase(store)

	_, err := uc.MarcarEnProceso(context.Background(), "ord-1", "nota")
	require.Error(t, err)

	// rollback: ni la orden ni el reclamo se movieron
	assert.Equal(t, workflow.OrdenPendiente, store.ordenes["ord-1"].Estado)
	assert.Equal(t, workflow.ReclamoPendiente, store.reclamos["rec-1"].Estado)
	assert.Empty(t, store.ordenes["ord-1"].Observaciones)
}

// ──────────────────────────────────────────────────────────────────────────────
// Listados
// ──────────────────────────────────────────────────────────────────────────────

func TestListarSinAsignar_CategoriaInvalida(t *testing.T) {
	store := newFakeStore()
	uc := buildUseCase(store)

	_, err := uc.ListarSinAsignar(context.Background(), "OTRA")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListarSinAsignar_SoloDisponibles(t *testing.T) {
	store := newFakeStore()
	seedPar(store, "rec-1", "ord-1")
	seedPar(store, "rec-2", "ord-2")
	empID := "emp-1"
	store.ordenes["ord-2"].EmpleadoID = &empID
	store.ordenes["ord-2"].Estado = workflow.OrdenAsignada
	uc := buildUseCase(store)

	out, err := uc.ListarSinAsignar(context.Background(), entity.CategoriaTecnico)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "ord-1", out[0].ID)
}
