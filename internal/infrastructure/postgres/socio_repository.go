package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/coelsur/cooperativa-api/internal/domain"
	"github.com/coelsur/cooperativa-api/internal/domain/entity"
	"github.com/coelsur/cooperativa-api/internal/domain/repository"
)

var _ repository.SocioRepository = (*SocioRepo)(nil)
var _ repository.CuentaRepository = (*CuentaRepo)(nil)

const socioColumns = `id, nombre, apellido, dni, email, telefono, direccion, estado, created_at`

// SocioRepo implementación de SocioRepository (usable con pool o tx).
type SocioRepo struct {
	q Querier
}

// NewSocioRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSocioRepository(q Querier) *SocioRepo {
	return &SocioRepo{q: q}
}

// Create persiste un nuevo socio.
func (r *SocioRepo) Create(ctx context.Context, socio *entity.Socio) error {
	if socio.ID == "" {
		socio.ID = uuid.New().String()
	}
	query := `
		INSERT INTO socios (id, nombre, apellido, dni, email, telefono, direccion, estado, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		socio.ID, socio.Nombre, socio.Apellido, socio.DNI, socio.Email,
		socio.Telefono, socio.Direccion, socio.Estado, socio.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert socio: %w", err)
	}
	return nil
}

// GetByID obtiene un socio por ID. Devuelve nil, nil si no existe.
func (r *SocioRepo) GetByID(ctx context.Context, id string) (*entity.Socio, error) {
	return r.getOne(ctx, `SELECT `+socioColumns+` FROM socios WHERE id = $1`, id)
}

// GetByDNI obtiene un socio por DNI.
func (r *SocioRepo) GetByDNI(ctx context.Context, dni string) (*entity.Socio, error) {
	return r.getOne(ctx, `SELECT `+socioColumns+` FROM socios WHERE dni = $1`, dni)
}

// List lista socios con paginación, por apellido.
func (r *SocioRepo) List(ctx context.Context, limit, offset int) ([]*entity.Socio, error) {
	query := `SELECT ` + socioColumns + ` FROM socios ORDER BY apellido, nombre LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list socios: %w", err)
	}
	return collectSocios(rows)
}

// Search busca por nombre, apellido o DNI con ILIKE. El término llega ya
// normalizado desde el caso de uso; la columna se desacentúa con translate
// para que "Pérez" matchee "perez".
func (r *SocioRepo) Search(ctx context.Context, termino string, limit, offset int) ([]*entity.Socio, error) {
	query := `SELECT ` + socioColumns + `
		FROM socios
		WHERE translate(lower(nombre || ' ' || apellido), 'áéíóúüñ', 'aeiouun') ILIKE '%' || $1 || '%'
		   OR dni ILIKE '%' || $1 || '%'
		ORDER BY apellido, nombre LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, termino, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("search socios: %w", err)
	}
	return collectSocios(rows)
}

// Update actualiza los datos de contacto y estado del socio.
func (r *SocioRepo) Update(ctx context.Context, socio *entity.Socio) error {
	query := `
		UPDATE socios SET nombre = $2, apellido = $3, email = $4, telefono = $5, direccion = $6, estado = $7
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		socio.ID, socio.Nombre, socio.Apellido, socio.Email, socio.Telefono, socio.Direccion, socio.Estado,
	)
	if err != nil {
		return fmt.Errorf("update socio: %w", err)
	}
	return nil
}

func (r *SocioRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Socio, error) {
	var s entity.Socio
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&s.ID, &s.Nombre, &s.Apellido, &s.DNI, &s.Email, &s.Telefono, &s.Direccion, &s.Estado, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get socio: %w", err)
	}
	return &s, nil
}

func collectSocios(rows pgx.Rows) ([]*entity.Socio, error) {
	defer rows.Close()
	var list []*entity.Socio
	for rows.Next() {
		var s entity.Socio
		if err := rows.Scan(&s.ID, &s.Nombre, &s.Apellido, &s.DNI, &s.Email, &s.Telefono, &s.Direccion, &s.Estado, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan socio: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// CuentaRepo implementación de CuentaRepository (usable con pool o tx).
type CuentaRepo struct {
	q Querier
}

// NewCuentaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCuentaRepository(q Querier) *CuentaRepo {
	return &CuentaRepo{q: q}
}

const cuentaColumns = `id, socio_id, numero, direccion_suministro, estado, created_at`

// Create persiste una nueva cuenta.
func (r *CuentaRepo) Create(ctx context.Context, cuenta *entity.Cuenta) error {
	if cuenta.ID == "" {
		cuenta.ID = uuid.New().String()
	}
	query := `
		INSERT INTO cuentas (id, socio_id, numero, direccion_suministro, estado, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		cuenta.ID, cuenta.SocioID, cuenta.Numero, cuenta.DireccionSuministro, cuenta.Estado, cuenta.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cuenta: %w", err)
	}
	return nil
}

// GetByID obtiene una cuenta por ID. Devuelve nil, nil si no existe.
func (r *CuentaRepo) GetByID(ctx context.Context, id string) (*entity.Cuenta, error) {
	return r.getOne(ctx, `SELECT `+cuentaColumns+` FROM cuentas WHERE id = $1`, id)
}

// GetByNumero obtiene una cuenta por número de suministro.
func (r *CuentaRepo) GetByNumero(ctx context.Context, numero string) (*entity.Cuenta, error) {
	return r.getOne(ctx, `SELECT `+cuentaColumns+` FROM cuentas WHERE numero = $1`, numero)
}

// ListBySocio lista las cuentas del socio.
func (r *CuentaRepo) ListBySocio(ctx context.Context, socioID string) ([]*entity.Cuenta, error) {
	query := `SELECT ` + cuentaColumns + ` FROM cuentas WHERE socio_id = $1 ORDER BY numero`
	rows, err := r.q.Query(ctx, query, socioID)
	if err != nil {
		return nil, fmt.Errorf("list cuentas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Cuenta
	for rows.Next() {
		var c entity.Cuenta
		if err := rows.Scan(&c.ID, &c.SocioID, &c.Numero, &c.DireccionSuministro, &c.Estado, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan cuenta: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

func (r *CuentaRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Cuenta, error) {
	var c entity.Cuenta
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&c.ID, &c.SocioID, &c.Numero, &c.DireccionSuministro, &c.Estado, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cuenta: %w", err)
	}
	return &c, nil
}
