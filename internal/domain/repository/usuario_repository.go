package repository

import (
	"context"

	"github.com/coelsur/cooperativa-api/internal/domain/entity"
)

// UsuarioRepository define el puerto de persistencia para Usuario (credenciales).
type UsuarioRepository interface {
	Create(ctx context.Context, usuario *entity.Usuario) error
	GetByID(ctx context.Context, id string) (*entity.Usuario, error)
	FindByEmail(ctx context.Context, email string) (*entity.Usuario, error)
}
