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

var _ repository.EmpleadoRepository = (*EmpleadoRepo)(nil)
var _ repository.CuadrillaRepository = (*CuadrillaRepo)(nil)
var _ repository.TipoReclamoRepository = (*TipoReclamoRepo)(nil)

const empleadoColumns = `id, nombre, apellido, legajo, activo, cuadrilla_id, created_at`

// EmpleadoRepo implementación de EmpleadoRepository (usable con pool o tx).
type EmpleadoRepo struct {
	q Querier
}

// NewEmpleadoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEmpleadoRepository(q Querier) *EmpleadoRepo {
	return &EmpleadoRepo{q: q}
}

// Create persiste un nuevo empleado.
func (r *EmpleadoRepo) Create(ctx context.Context, empleado *entity.Empleado) error {
	if empleado.ID == "" {
		empleado.ID = uuid.New().String()
	}
	query := `
		INSERT INTO empleados (id, nombre, apellido, legajo, activo, cuadrilla_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		empleado.ID, empleado.Nombre, empleado.Apellido, empleado.Legajo,
		empleado.Activo, empleado.CuadrillaID, empleado.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert empleado: %w", err)
	}
	return nil
}

// GetByID obtiene un empleado por ID. Devuelve nil, nil si no existe.
func (r *EmpleadoRepo) GetByID(ctx context.Context, id string) (*entity.Empleado, error) {
	query := `SELECT ` + empleadoColumns + ` FROM empleados WHERE id = $1`
	var e entity.Empleado
	err := r.q.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.Nombre, &e.Apellido, &e.Legajo, &e.Activo, &e.CuadrillaID, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get empleado: %w", err)
	}
	return &e, nil
}

// List lista empleados, opcionalmente solo activos.
func (r *EmpleadoRepo) List(ctx context.Context, soloActivos bool) ([]*entity.Empleado, error) {
	query := `SELECT ` + empleadoColumns + ` FROM empleados WHERE ($1 = FALSE OR activo) ORDER BY apellido, nombre`
	rows, err := r.q.Query(ctx, query, soloActivos)
	if err != nil {
		return nil, fmt.Errorf("list empleados: %w", err)
	}
	return collectEmpleados(rows)
}

// ListByCuadrilla lista los integrantes de la cuadrilla.
func (r *EmpleadoRepo) ListByCuadrilla(ctx context.Context, cuadrillaID string) ([]*entity.Empleado, error) {
	query := `SELECT ` + empleadoColumns + ` FROM empleados WHERE cuadrilla_id = $1 ORDER BY apellido, nombre`
	rows, err := r.q.Query(ctx, query, cuadrillaID)
	if err != nil {
		return nil, fmt.Errorf("list empleados por cuadrilla: %w", err)
	}
	return collectEmpleados(rows)
}

// AsignarCuadrilla setea (o limpia, con nil) la cuadrilla del empleado.
func (r *EmpleadoRepo) AsignarCuadrilla(ctx context.Context, empleadoID string, cuadrillaID *string) error {
	_, err := r.q.Exec(ctx, `UPDATE empleados SET cuadrilla_id = $2 WHERE id = $1`, empleadoID, cuadrillaID)
	if err != nil {
		return fmt.Errorf("asignar cuadrilla a empleado: %w", err)
	}
	return nil
}

func collectEmpleados(rows pgx.Rows) ([]*entity.Empleado, error) {
	defer rows.Close()
	var list []*entity.Empleado
	for rows.Next() {
		var e entity.Empleado
		if err := rows.Scan(&e.ID, &e.Nombre, &e.Apellido, &e.Legajo, &e.Activo, &e.CuadrillaID, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan empleado: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// CuadrillaRepo implementación de CuadrillaRepository (usable con pool o tx).
type CuadrillaRepo struct {
	q Querier
}

// NewCuadrillaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCuadrillaRepository(q Querier) *CuadrillaRepo {
	return &CuadrillaRepo{q: q}
}

// Create persiste una nueva cuadrilla.
func (r *CuadrillaRepo) Create(ctx context.Context, cuadrilla *entity.Cuadrilla) error {
	if cuadrilla.ID == "" {
		cuadrilla.ID = uuid.New().String()
	}
	query := `INSERT INTO cuadrillas (id, nombre, zona, activa, created_at) VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query,
		cuadrilla.ID, cuadrilla.Nombre, cuadrilla.Zona, cuadrilla.Activa, cuadrilla.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cuadrilla: %w", err)
	}
	return nil
}

// GetByID obtiene una cuadrilla por ID. Devuelve nil, nil si no existe.
func (r *CuadrillaRepo) GetByID(ctx context.Context, id string) (*entity.Cuadrilla, error) {
	query := `SELECT id, nombre, zona, activa, created_at FROM cuadrillas WHERE id = $1`
	var c entity.Cuadrilla
	err := r.q.QueryRow(ctx, query, id).Scan(&c.ID, &c.Nombre, &c.Zona, &c.Activa, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cuadrilla: %w", err)
	}
	return &c, nil
}

// List lista cuadrillas, opcionalmente solo activas.
func (r *CuadrillaRepo) List(ctx context.Context, soloActivas bool) ([]*entity.Cuadrilla, error) {
	query := `SELECT id, nombre, zona, activa, created_at FROM cuadrillas WHERE ($1 = FALSE OR activa) ORDER BY nombre`
	rows, err := r.q.Query(ctx, query, soloActivas)
	if err != nil {
		return nil, fmt.Errorf("list cuadrillas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Cuadrilla
	for rows.Next() {
		var c entity.Cuadrilla
		if err := rows.Scan(&c.ID, &c.Nombre, &c.Zona, &c.Activa, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan cuadrilla: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// TipoReclamoRepo catálogo de tipos de reclamo (solo lectura desde la API).
type TipoReclamoRepo struct {
	q Querier
}

// NewTipoReclamoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTipoReclamoRepository(q Querier) *TipoReclamoRepo {
	return &TipoReclamoRepo{q: q}
}

// GetByID obtiene un tipo de reclamo por ID. Devuelve nil, nil si no existe.
func (r *TipoReclamoRepo) GetByID(ctx context.Context, id string) (*entity.TipoReclamo, error) {
	query := `SELECT id, nombre, categoria, activo FROM tipos_reclamo WHERE id = $1`
	var t entity.TipoReclamo
	err := r.q.QueryRow(ctx, query, id).Scan(&t.ID, &t.Nombre, &t.Categoria, &t.Activo)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tipo reclamo: %w", err)
	}
	return &t, nil
}

// List lista tipos de reclamo, opcionalmente solo activos.
func (r *TipoReclamoRepo) List(ctx context.Context, soloActivos bool) ([]*entity.TipoReclamo, error) {
	query := `SELECT id, nombre, categoria, activo FROM tipos_reclamo WHERE ($1 = FALSE OR activo) ORDER BY nombre`
	rows, err := r.q.Query(ctx, query, soloActivos)
	if err != nil {
		return nil, fmt.Errorf("list tipos reclamo: %w", err)
	}
	defer rows.Close()
	var list []*entity.TipoReclamo
	for rows.Next() {
		var t entity.TipoReclamo
		if err := rows.Scan(&t.ID, &t.Nombre, &t.Categoria, &t.Activo); err != nil {
			return nil, fmt.Errorf("scan tipo reclamo: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
