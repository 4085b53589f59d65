// Package auth implementa registro y login con JWT.
package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/coelsur/cooperativa-api/internal/application/dto"
	"github.com/coelsur/cooperativa-api/internal/domain"
	"github.com/coelsur/cooperativa-api/internal/domain/entity"
	"github.com/coelsur/cooperativa-api/internal/domain/repository"
	"github.com/coelsur/cooperativa-api/pkg/config"
	appjwt "github.com/coelsur/cooperativa-api/pkg/jwt"
)

// UseCase casos de uso de autenticación.
type UseCase struct {
	usuarioRepo repository.UsuarioRepository
	jwtCfg      config.JWTConfig
}

// NewUseCase construye el caso de uso.
func NewUseCase(usuarioRepo repository.UsuarioRepository, jwtCfg config.JWTConfig) *UseCase {
	return &UseCase{usuarioRepo: usuarioRepo, jwtCfg: jwtCfg}
}

// Register da de alta un usuario. Rol vacío registra un CLIENTE; los roles de
// staff exigen el empleado asociado, CLIENTE exige el socio.
func (uc *UseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UsuarioResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || !strings.Contains(email, "@") || len(in.Password) < 8 {
		return nil, domain.ErrInvalidInput
	}
	rol := in.Rol
	if rol == "" {
		rol = entity.RolCliente
	}
	switch rol {
	case entity.RolCliente:
		if in.SocioID == nil {
			return nil, domain.ErrInvalidInput
		}
	case entity.RolOperario, entity.RolAdministrador:
		if in.EmpleadoID == nil {
			return nil, domain.ErrInvalidInput
		}
	default:
		return nil, domain.ErrInvalidInput
	}

	existente, err := uc.usuarioRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return nil, domain.ErrEmailYaRegistrado
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	usuario := &entity.Usuario{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Rol:          rol,
		SocioID:      in.SocioID,
		EmpleadoID:   in.EmpleadoID,
		Estado:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.usuarioRepo.Create(ctx, usuario); err != nil {
		return nil, err
	}
	return toUsuarioResponse(usuario), nil
}

// Login valida credenciales y emite el token. Credenciales desconocidas y
// password incorrecta responden igual para no filtrar qué emails existen.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	usuario, err := uc.usuarioRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if usuario == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usuario.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if usuario.Estado != "active" {
		return nil, domain.ErrForbidden
	}

	token, err := appjwt.Generate(uc.jwtCfg.Secret, usuario.ID, usuario.ActorID(), usuario.Rol, uc.jwtCfg.Issuer, uc.jwtCfg.Expiration)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, Usuario: *toUsuarioResponse(usuario)}, nil
}

func toUsuarioResponse(u *entity.Usuario) *dto.UsuarioResponse {
	return &dto.UsuarioResponse{
		ID:         u.ID,
		Email:      u.Email,
		Rol:        u.Rol,
		SocioID:    u.SocioID,
		EmpleadoID: u.EmpleadoID,
		Estado:     u.Estado,
		CreatedAt:  u.CreatedAt,
	}
}
