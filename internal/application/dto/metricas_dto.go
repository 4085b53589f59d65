package dto

// ConteoResponse conteo agrupado por clave.
type ConteoResponse struct {
	Clave    string `json:"clave"`
	Cantidad int    `json:"cantidad"`
}

// DashboardResponse KPIs del tablero administrativo.
type DashboardResponse struct {
	TiempoMedioResolucionHoras float64          `json:"tiempo_medio_resolucion_horas"`
	EficienciaOperativa        float64          `json:"eficiencia_operativa"` // % resueltos dentro del umbral
	Satisfaccion               float64          `json:"satisfaccion"`         // promedio de valoraciones
	PorEstado                  []ConteoResponse `json:"por_estado"`
	PorTipo                    []ConteoResponse `json:"por_tipo"`
	PorCanal                   []ConteoResponse `json:"por_canal"`
}
