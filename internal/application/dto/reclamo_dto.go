package dto

import "time"

// CreateReclamoRequest alta de reclamo por un socio.
type CreateReclamoRequest struct {
	CuentaID    string `json:"cuenta_id"`
	TipoID      string `json:"tipo_id"`
	Descripcion string `json:"descripcion"`
	Prioridad   int    `json:"prioridad"` // 1..3; 0 = default (2)
	Canal       string `json:"canal"`     // vacío = "WEB"
}

// TransicionReclamoRequest cambio de estado de un reclamo por operario/admin.
type TransicionReclamoRequest struct {
	Estado        string `json:"estado"`
	Observaciones string `json:"observaciones"`
}

// AsignarOperarioRequest asignación de operario a un reclamo.
type AsignarOperarioRequest struct {
	OperarioID string `json:"operario_id"`
}

// ReclamoResponse representación de un reclamo.
type ReclamoResponse struct {
	ID                  string     `json:"id"`
	CuentaID            string     `json:"cuenta_id"`
	TipoID              string     `json:"tipo_id"`
	Descripcion         string     `json:"descripcion"`
	Prioridad           int        `json:"prioridad"`
	Canal               string     `json:"canal"`
	Estado              string     `json:"estado"`
	OperarioID          *string    `json:"operario_id,omitempty"`
	ObservacionesCierre *string    `json:"observaciones_cierre,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	CerradoAt           *time.Time `json:"cerrado_at,omitempty"`
}

// ReclamoConOrdenResponse reclamo recién creado junto con su orden de trabajo.
type ReclamoConOrdenResponse struct {
	Reclamo ReclamoResponse       `json:"reclamo"`
	Orden   *OrdenTrabajoResponse `json:"orden_trabajo,omitempty"`
}

// ResumenReclamosResponse conteos por estado.
type ResumenReclamosResponse struct {
	Total      int `json:"total"`
	Pendientes int `json:"pendientes"`
	EnProceso  int `json:"en_proceso"`
	Resueltos  int `json:"resueltos"`
	Cerrados   int `json:"cerrados"`
}
