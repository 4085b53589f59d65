// Package workflow define los estados de reclamos y órdenes de trabajo y sus
// tablas de transición. Toda mutación de estado pasa primero por PuedeTransicionar;
// el UPDATE con guarda de estado en la capa postgres queda como segunda barrera
// ante carreras entre requests.
package workflow

// EstadoReclamo estado del ciclo de vida de un reclamo.
type EstadoReclamo string

const (
	ReclamoPendiente EstadoReclamo = "PENDIENTE"
	ReclamoEnProceso EstadoReclamo = "EN_PROCESO"
	ReclamoResuelto  EstadoReclamo = "RESUELTO"
	ReclamoCerrado   EstadoReclamo = "CERRADO"
)

// EstadoOrden estado del ciclo de vida de una orden de trabajo.
// Las órdenes administrativas terminan en CERRADA; las técnicas en COMPLETADA o CANCELADA.
type EstadoOrden string

const (
	OrdenPendiente  EstadoOrden = "PENDIENTE"
	OrdenAsignada   EstadoOrden = "ASIGNADA"
	OrdenEnProceso  EstadoOrden = "EN_PROCESO"
	OrdenCompletada EstadoOrden = "COMPLETADA"
	OrdenCancelada  EstadoOrden = "CANCELADA"
	OrdenCerrada    EstadoOrden = "CERRADA"
)

// transicionesReclamo estados destino permitidos por estado origen.
// PENDIENTE -> CERRADO directo está permitido: cierre administrativo sin pasar
// por EN_PROCESO (regla de negocio heredada del sistema anterior).
var transicionesReclamo = map[EstadoReclamo][]EstadoReclamo{
	ReclamoPendiente: {ReclamoEnProceso, ReclamoCerrado},
	ReclamoEnProceso: {ReclamoResuelto, ReclamoCerrado},
	ReclamoResuelto:  {ReclamoCerrado},
	ReclamoCerrado:   {},
}

// transicionesOrden cubre ambos subflujos sobre la misma tabla:
// administrativo PENDIENTE -> EN_PROCESO -> CERRADA y
// técnico PENDIENTE -> ASIGNADA -> EN_PROCESO -> COMPLETADA (CANCELADA solo
// desde PENDIENTE o ASIGNADA).
var transicionesOrden = map[EstadoOrden][]EstadoOrden{
	OrdenPendiente:  {OrdenAsignada, OrdenEnProceso, OrdenCancelada},
	OrdenAsignada:   {OrdenEnProceso, OrdenCancelada},
	OrdenEnProceso:  {OrdenCompletada, OrdenCerrada},
	OrdenCompletada: {},
	OrdenCancelada:  {},
	OrdenCerrada:    {},
}

// Valido indica si el string corresponde a un estado de reclamo conocido.
func (e EstadoReclamo) Valido() bool {
	_, ok := transicionesReclamo[e]
	return ok
}

// Terminal indica si el estado cierra el ciclo de vida del reclamo.
// cerrado_at se setea si y solo si el estado es terminal.
func (e EstadoReclamo) Terminal() bool {
	return e == ReclamoResuelto || e == ReclamoCerrado
}

// PuedeTransicionar indica si el reclamo puede pasar de e a destino.
func (e EstadoReclamo) PuedeTransicionar(destino EstadoReclamo) bool {
	for _, d := range transicionesReclamo[e] {
		if d == destino {
			return true
		}
	}
	return false
}

// Valido indica si el string corresponde a un estado de orden conocido.
func (e EstadoOrden) Valido() bool {
	_, ok := transicionesOrden[e]
	return ok
}

// Terminal indica si la orden ya no admite más transiciones.
func (e EstadoOrden) Terminal() bool {
	return len(transicionesOrden[e]) == 0
}

// PuedeTransicionar indica si la orden puede pasar de e a destino.
func (e EstadoOrden) PuedeTransicionar(destino EstadoOrden) bool {
	for _, d := range transicionesOrden[e] {
		if d == destino {
			return true
		}
	}
	return false
}

// EstadoReclamoEspejo devuelve el estado que debe escribirse sobre el reclamo
// cuando su orden de trabajo transiciona a destino. El par se escribe siempre
// en la misma transacción.
func EstadoReclamoEspejo(destino EstadoOrden) (EstadoReclamo, bool) {
	switch destino {
	case OrdenAsignada, OrdenEnProceso:
		return ReclamoEnProceso, true
	case OrdenCompletada, OrdenCerrada:
		return ReclamoResuelto, true
	case OrdenCancelada:
		return ReclamoPendiente, true
	}
	return "", false
}
