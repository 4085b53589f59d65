package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/coelsur/cooperativa-api/internal/application/dto"
	"github.com/coelsur/cooperativa-api/internal/application/reclamos"
)

// ReclamoHandler maneja las peticiones HTTP de reclamos.
type ReclamoHandler struct {
	uc *reclamos.UseCase
}

// NewReclamoHandler construye el handler.
func NewReclamoHandler(uc *reclamos.UseCase) *ReclamoHandler {
	return &ReclamoHandler{uc: uc}
}

// Crear da de alta un reclamo sobre una cuenta del socio autenticado.
// POST /api/clientes/reclamos
func (h *ReclamoHandler) Crear(c *fiber.Ctx) error {
	socioID := GetActorID(c)
	if socioID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateReclamoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Crear(c.Context(), socioID, in)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CrearComoStaff alta de reclamo en nombre de un socio (canal TELEFONO / PRESENCIAL).
// POST /api/administradores/reclamos
func (h *ReclamoHandler) CrearComoStaff(c *fiber.Ctx) error {
	var in dto.CreateReclamoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	// socioID vacío omite el control de titularidad: el staff carga por terceros.
	out, err := h.uc.Crear(c.Context(), "", in)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListarPropios reclamos de las cuentas del socio autenticado.
// GET /api/clientes/reclamos
func (h *ReclamoHandler) ListarPropios(c *fiber.Ctx) error {
	socioID := GetActorID(c)
	if socioID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	out, err := h.uc.ListarPorSocio(c.Context(), socioID, page)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// ListarPorCuenta reclamos de una cuenta del socio autenticado.
// GET /api/clientes/cuentas/:cuentaId/reclamos
func (h *ReclamoHandler) ListarPorCuenta(c *fiber.Ctx) error {
	socioID := GetActorID(c)
	if socioID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	out, err := h.uc.ListarPorCuenta(c.Context(), socioID, c.Params("cuentaId"), page)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// ListarTodos listado administrativo con filtros estado y prioridad.
// GET /api/administradores/reclamos?estado=&prioridad=
func (h *ReclamoHandler) ListarTodos(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	out, err := h.uc.ListarTodos(c.Context(), c.Query("estado"), c.QueryInt("prioridad"), page)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Transicionar mueve el reclamo a un nuevo estado.
// PATCH /api/operarios/reclamos/:id/estado
// PATCH /api/administradores/reclamos/:id/estado
func (h *ReclamoHandler) Transicionar(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.TransicionReclamoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Transicionar(c.Context(), id, in.Estado, in.Observaciones)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// AsignarOperario asigna el reclamo a un operario activo.
// PATCH /api/administradores/reclamos/:id/operario
func (h *ReclamoHandler) AsignarOperario(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.AsignarOperarioRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.OperarioID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "operario_id requerido"})
	}
	out, err := h.uc.AsignarOperario(c.Context(), id, in.OperarioID)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// ResumenPropio conteos por estado del socio autenticado.
// GET /api/clientes/reclamos/resumen
func (h *ReclamoHandler) ResumenPropio(c *fiber.Ctx) error {
	socioID := GetActorID(c)
	if socioID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	out, err := h.uc.ResumenPorSocio(c.Context(), socioID)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// ResumenOperario conteos por estado de los reclamos asignados al operario autenticado.
// GET /api/operarios/reclamos/resumen
func (h *ReclamoHandler) ResumenOperario(c *fiber.Ctx) error {
	operarioID := GetActorID(c)
	if operarioID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	out, err := h.uc.ResumenPorOperario(c.Context(), operarioID)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// ResumenGlobal conteos por estado de todos los reclamos.
// GET /api/administradores/reclamos/resumen
func (h *ReclamoHandler) ResumenGlobal(c *fiber.Ctx) error {
	out, err := h.uc.ResumenGlobal(c.Context())
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}
