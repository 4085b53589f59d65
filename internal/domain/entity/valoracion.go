package entity

import "time"

// Valoracion es la calificación 1-5 que un socio deja, una sola vez, sobre un
// reclamo resuelto o cerrado de su cuenta.
type Valoracion struct {
	ID         string
	ReclamoID  string
	SocioID    string
	Puntaje    int // 1..5
	Comentario *string
	CreatedAt  time.Time
}
