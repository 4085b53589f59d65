package workflow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coelsur/cooperativa-api/internal/domain/workflow"
)

// ──────────────────────────────────────────────────────────────────────────────
// Transiciones de reclamo
// ──────────────────────────────────────────────────────────────────────────────

func TestEstadoReclamo_TransicionesPermitidas(t *testing.T) {
	casos := []struct {
		desde, hacia workflow.EstadoReclamo
		permitida    bool
	}{
		{workflow.ReclamoPendiente, workflow.ReclamoEnProceso, true},
		// cierre administrativo directo, sin pasar por EN_PROCESO
		{workflow.ReclamoPendiente, workflow.ReclamoCerrado, true},
		{workflow.ReclamoPendiente, workflow.ReclamoResuelto, false},
		{workflow.ReclamoEnProceso, workflow.ReclamoResuelto, true},
		{workflow.ReclamoEnProceso, workflow.ReclamoCerrado, true},
		{workflow.ReclamoEnProceso, workflow.ReclamoPendiente, false},
		{workflow.ReclamoResuelto, workflow.ReclamoCerrado, true},
		{workflow.ReclamoResuelto, workflow.ReclamoEnProceso, false},
		{workflow.ReclamoCerrado, workflow.ReclamoPendiente, false},
		{workflow.ReclamoCerrado, workflow.ReclamoEnProceso, false},
	}
	for _, c := range casos {
		assert.Equal(t, c.permitida, c.desde.PuedeTransicionar(c.hacia),
			"transición %s -> %s", c.desde, c.hacia)
	}
}

func TestEstadoReclamo_Terminal(t *testing.T) {
	assert.False(t, workflow.ReclamoPendiente.Terminal())
	assert.False(t, workflow.ReclamoEnProceso.Terminal())
	assert.True(t, workflow.ReclamoResuelto.Terminal())
	assert.True(t, workflow.ReclamoCerrado.Terminal())
}

func TestEstadoReclamo_Valido(t *testing.T) {
	assert.True(t, workflow.ReclamoPendiente.Valido())
	assert.False(t, workflow.EstadoReclamo("ARCHIVADO").Valido())
	assert.False(t, workflow.EstadoReclamo("").Valido())
}

// ──────────────────────────────────────────────────────────────────────────────
// Transiciones de orden de trabajo
// ──────────────────────────────────────────────────────────────────────────────

func TestEstadoOrden_FlujoTecnico(t *testing.T) {
	// PENDIENTE -> ASIGNADA -> EN_PROCESO -> COMPLETADA
	assert.True(t, workflow.OrdenPendiente.PuedeTransicionar(workflow.OrdenAsignada))
	assert.True(t, workflow.OrdenAsignada.PuedeTransicionar(workflow.OrdenEnProceso))
	assert.True(t, workflow.OrdenEnProceso.PuedeTransicionar(workflow.OrdenCompletada))

	// cancelación solo antes de arrancar el trabajo
	assert.True(t, workflow.OrdenPendiente.PuedeTransicionar(workflow.OrdenCancelada))
	assert.True(t, workflow.OrdenAsignada.PuedeTransicionar(workflow.OrdenCancelada))
	assert.False(t, workflow.OrdenEnProceso.PuedeTransicionar(workflow.OrdenCancelada))
}

func TestEstadoOrden_FlujoAdministrativo(t *testing.T) {
	// PENDIENTE -> EN_PROCESO -> CERRADA, sin pasar por ASIGNADA
	assert.True(t, workflow.OrdenPendiente.PuedeTransicionar(workflow.OrdenEnProceso))
	assert.True(t, workflow.OrdenEnProceso.PuedeTransicionar(workflow.OrdenCerrada))
	assert.False(t, workflow.OrdenPendiente.PuedeTransicionar(workflow.OrdenCerrada))
}

func TestEstadoOrden_TerminalesNoTransicionan(t *testing.T) {
	terminales := []workflow.EstadoOrden{
		workflow.OrdenCompletada, workflow.OrdenCancelada, workflow.OrdenCerrada,
	}
	destinos := []workflow.EstadoOrden{
		workflow.OrdenPendiente, workflow.OrdenAsignada, workflow.OrdenEnProceso,
		workflow.OrdenCompletada, workflow.OrdenCancelada, workflow.OrdenCerrada,
	}
	for _, desde := range terminales {
		assert.True(t, desde.Terminal(), "%s debe ser terminal", desde)
		for _, hacia := range destinos {
			assert.False(t, desde.PuedeTransicionar(hacia),
				"terminal %s no debe transicionar a %s", desde, hacia)
		}
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Estado espejo: la transición de la orden dicta el estado del reclamo padre
// ──────────────────────────────────────────────────────────────────────────────

func TestEstadoReclamoEspejo(t *testing.T) {
	casos := []struct {
		orden   workflow.EstadoOrden
		reclamo workflow.EstadoReclamo
	}{
		{workflow.OrdenAsignada, workflow.ReclamoEnProceso},
		{workflow.OrdenEnProceso, workflow.ReclamoEnProceso},
		{workflow.OrdenCompletada, workflow.ReclamoResuelto},
		{workflow.OrdenCerrada, workflow.ReclamoResuelto},
		{workflow.OrdenCancelada, workflow.ReclamoPendiente},
	}
	for _, c := range casos {
		espejo, ok := workflow.EstadoReclamoEspejo(c.orden)
		assert.True(t, ok, "orden %s debe tener estado espejo", c.orden)
		assert.Equal(t, c.reclamo, espejo, "espejo de %s", c.orden)
	}
}

func TestEstadoReclamoEspejo_PendienteNoEspeja(t *testing.T) {
	// crear la orden no toca el reclamo: nacen juntos en PENDIENTE
	_, ok := workflow.EstadoReclamoEspejo(workflow.OrdenPendiente)
	assert.False(t, ok)
}
