package domain

import "errors"

// Errores de dominio (sin dependencias externas). Los handlers HTTP mapean
// cada uno a un status code con errors.Is; nunca se discrimina por texto.
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrDuplicate            = errors.New("recurso duplicado")
	ErrUnauthorized         = errors.New("no autorizado")
	ErrForbidden            = errors.New("acceso denegado")
	ErrConflict             = errors.New("conflicto con el estado actual")
	ErrTransicionInvalida   = errors.New("transición de estado no permitida")
	ErrObservacionRequerida = errors.New("las observaciones son obligatorias")
	ErrYaValorado           = errors.New("el reclamo ya fue valorado por este socio")
	ErrReclamoNoTerminal    = errors.New("solo se pueden valorar reclamos resueltos o cerrados")
	ErrEmpleadoInactivo     = errors.New("empleado no encontrado o inactivo")
	ErrOrdenNoDisponible    = errors.New("orden no disponible, ya tomada o fuera de tu cuadrilla")
	ErrEmailYaRegistrado    = errors.New("el email ya está registrado")
)
