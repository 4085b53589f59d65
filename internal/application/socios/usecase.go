// Package socios administra el padrón de socios y sus cuentas de suministro.
package socios

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/coelsur/cooperativa-api/internal/application/dto"
	"github.com/coelsur/cooperativa-api/internal/domain"
	"github.com/coelsur/cooperativa-api/internal/domain/entity"
	"github.com/coelsur/cooperativa-api/internal/domain/repository"
)

// UseCase casos de uso del padrón de socios.
type UseCase struct {
	socioRepo  repository.SocioRepository
	cuentaRepo repository.CuentaRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(socioRepo repository.SocioRepository, cuentaRepo repository.CuentaRepository) *UseCase {
	return &UseCase{socioRepo: socioRepo, cuentaRepo: cuentaRepo}
}

// Crear da de alta un socio ACTIVO. El DNI es único.
func (uc *UseCase) Crear(ctx context.Context, in dto.CreateSocioRequest) (*dto.SocioResponse, error) {
	if strings.TrimSpace(in.Nombre) == "" || strings.TrimSpace(in.Apellido) == "" || strings.TrimSpace(in.DNI) == "" {
		return nil, domain.ErrInvalidInput
	}
	existente, err := uc.socioRepo.GetByDNI(ctx, strings.TrimSpace(in.DNI))
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return nil, domain.ErrDuplicate
	}
	socio := &entity.Socio{
		ID:        uuid.New().String(),
		Nombre:    strings.TrimSpace(in.Nombre),
		Apellido:  strings.TrimSpace(in.Apellido),
		DNI:       strings.TrimSpace(in.DNI),
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		Telefono:  strings.TrimSpace(in.Telefono),
		Direccion: strings.TrimSpace(in.Direccion),
		Estado:    "ACTIVO",
		CreatedAt: time.Now(),
	}
	if err := uc.socioRepo.Create(ctx, socio); err != nil {
		return nil, err
	}
	return toSocioResponse(socio), nil
}

// Obtener devuelve un socio por ID.
func (uc *UseCase) Obtener(ctx context.Context, id string) (*dto.SocioResponse, error) {
	socio, err := uc.socioRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if socio == nil {
		return nil, domain.ErrNotFound
	}
	return toSocioResponse(socio), nil
}

// Listar padrón completo paginado.
func (uc *UseCase) Listar(ctx context.Context, page dto.PageRequest) ([]*dto.SocioResponse, error) {
	page.DefaultPage()
	list, err := uc.socioRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toSocioResponses(list), nil
}

// Buscar busca por nombre, apellido o DNI, ignorando acentos y mayúsculas.
func (uc *UseCase) Buscar(ctx context.Context, termino string, page dto.PageRequest) ([]*dto.SocioResponse, error) {
	termino = Normalizar(termino)
	if termino == "" {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	list, err := uc.socioRepo.Search(ctx, termino, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toSocioResponses(list), nil
}

// Actualizar edita los datos de contacto y el estado del socio.
func (uc *UseCase) Actualizar(ctx context.Context, id string, in dto.UpdateSocioRequest) (*dto.SocioResponse, error) {
	socio, err := uc.socioRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if socio == nil {
		return nil, domain.ErrNotFound
	}
	if in.Email != nil {
		socio.Email = strings.ToLower(strings.TrimSpace(*in.Email))
	}
	if in.Telefono != nil {
		socio.Telefono = strings.TrimSpace(*in.Telefono)
	}
	if in.Direccion != nil {
		socio.Direccion = strings.TrimSpace(*in.Direccion)
	}
	if in.Estado != nil {
		switch *in.Estado {
		case "ACTIVO", "SUSPENDIDO", "BAJA":
			socio.Estado = *in.Estado
		default:
			return nil, domain.ErrInvalidInput
		}
	}
	if err := uc.socioRepo.Update(ctx, socio); err != nil {
		return nil, err
	}
	return toSocioResponse(socio), nil
}

// CrearCuenta da de alta una cuenta de suministro para el socio.
func (uc *UseCase) CrearCuenta(ctx context.Context, socioID string, in dto.CreateCuentaRequest) (*dto.CuentaResponse, error) {
	if strings.TrimSpace(in.Numero) == "" || strings.TrimSpace(in.DireccionSuministro) == "" {
		return nil, domain.ErrInvalidInput
	}
	socio, err := uc.socioRepo.GetByID(ctx, socioID)
	if err != nil {
		return nil, err
	}
	if socio == nil {
		return nil, domain.ErrNotFound
	}
	existente, err := uc.cuentaRepo.GetByNumero(ctx, strings.TrimSpace(in.Numero))
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return nil, domain.ErrDuplicate
	}
	cuenta := &entity.Cuenta{
		ID:                  uuid.New().String(),
		SocioID:             socioID,
		Numero:              strings.TrimSpace(in.Numero),
		DireccionSuministro: strings.TrimSpace(in.DireccionSuministro),
		Estado:              "ACTIVA",
		CreatedAt:           time.Now(),
	}
	if err := uc.cuentaRepo.Create(ctx, cuenta); err != nil {
		return nil, err
	}
	return toCuentaResponse(cuenta), nil
}

// ListarCuentas cuentas de suministro del socio.
func (uc *UseCase) ListarCuentas(ctx context.Context, socioID string) ([]*dto.CuentaResponse, error) {
	list, err := uc.cuentaRepo.ListBySocio(ctx, socioID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CuentaResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCuentaResponse(c))
	}
	return out, nil
}

// Normalizar baja a minúsculas y elimina marcas diacríticas (á -> a, ñ -> n),
// para que la búsqueda matchee sin importar cómo tipeó el usuario.
func Normalizar(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plano, _, err := transform.String(t, s)
	if err != nil {
		plano = s
	}
	return strings.ToLower(strings.TrimSpace(plano))
}

func toSocioResponse(s *entity.Socio) *dto.SocioResponse {
	return &dto.SocioResponse{
		ID:        s.ID,
		Nombre:    s.Nombre,
		Apellido:  s.Apellido,
		DNI:       s.DNI,
		Email:     s.Email,
		Telefono:  s.Telefono,
		Direccion: s.Direccion,
		Estado:    s.Estado,
		CreatedAt: s.CreatedAt,
	}
}

func toSocioResponses(list []*entity.Socio) []*dto.SocioResponse {
	out := make([]*dto.SocioResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toSocioResponse(s))
	}
	return out
}

func toCuentaResponse(c *entity.Cuenta) *dto.CuentaResponse {
	return &dto.CuentaResponse{
		ID:                  c.ID,
		SocioID:             c.SocioID,
		Numero:              c.Numero,
		DireccionSuministro: c.DireccionSuministro,
		Estado:              c.Estado,
	}
}
