package entity

import (
	"time"

	"github.com/coelsur/cooperativa-api/internal/domain/workflow"
)

// Categorías de tipo de reclamo. La categoría decide el subflujo de la orden
// de trabajo: ADMINISTRATIVO nunca lleva técnico, TECNICO lo requiere para cerrar.
const (
	CategoriaTecnico        = "TECNICO"
	CategoriaAdministrativo = "ADMINISTRATIVO"
)

// TipoReclamo catálogo de tipos/detalles de reclamo.
type TipoReclamo struct {
	ID        string
	Nombre    string
	Categoria string // CategoriaTecnico | CategoriaAdministrativo
	Activo    bool
}

// Reclamo representa un reclamo de servicio reportado por un socio.
type Reclamo struct {
	ID                  string
	CuentaID            string
	TipoID              string
	Descripcion         string
	Prioridad           int    // 1 = alta, 2 = media, 3 = baja
	Canal               string // "WEB" | "TELEFONO" | "PRESENCIAL"
	Estado              workflow.EstadoReclamo
	OperarioID          *string
	ObservacionesCierre *string
	CreatedAt           time.Time
	CerradoAt           *time.Time
}
