package dto

import "time"

// CreateValoracionRequest alta de valoración sobre un reclamo terminado.
type CreateValoracionRequest struct {
	ReclamoID  string  `json:"reclamo_id"`
	Puntaje    int     `json:"puntaje"` // 1..5
	Comentario *string `json:"comentario,omitempty"`
}

// UpdateValoracionRequest edición de la valoración propia.
type UpdateValoracionRequest struct {
	Puntaje    int     `json:"puntaje"`
	Comentario *string `json:"comentario,omitempty"`
}

// ValoracionResponse representación de una valoración.
type ValoracionResponse struct {
	ID         string    `json:"id"`
	ReclamoID  string    `json:"reclamo_id"`
	SocioID    string    `json:"socio_id"`
	Puntaje    int       `json:"puntaje"`
	Comentario *string   `json:"comentario,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// EstadisticasValoracionesResponse agregados globales de valoraciones.
type EstadisticasValoracionesResponse struct {
	Total         int         `json:"total"`
	Promedio      float64     `json:"promedio"`
	PorPuntaje    map[int]int `json:"por_puntaje"`
	ConComentario int         `json:"con_comentario"`
}
