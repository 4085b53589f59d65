package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/coelsur/cooperativa-api/internal/application/dto"
	"github.com/coelsur/cooperativa-api/internal/application/ordenes"
)

// OrdenHandler maneja las peticiones HTTP de órdenes de trabajo.
type OrdenHandler struct {
	uc *ordenes.UseCase
}

// NewOrdenHandler construye el handler.
func NewOrdenHandler(uc *ordenes.UseCase) *OrdenHandler {
	return &OrdenHandler{uc: uc}
}

// Obtener devuelve una orden por ID.
// GET /api/operarios/ordenes/:id
func (h *OrdenHandler) Obtener(c *fiber.Ctx) error {
	out, err := h.uc.ObtenerPorID(c.Context(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// ObtenerPorReclamo devuelve la orden de trabajo de un reclamo.
// GET /api/administradores/reclamos/:id/orden
func (h *OrdenHandler) ObtenerPorReclamo(c *fiber.Ctx) error {
	out, err := h.uc.ObtenerPorReclamo(c.Context(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// ListarPropias órdenes asignadas al operario autenticado.
// GET /api/operarios/ordenes
func (h *OrdenHandler) ListarPropias(c *fiber.Ctx) error {
	empleadoID := GetActorID(c)
	if empleadoID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	out, err := h.uc.ListarPorEmpleado(c.Context(), empleadoID, page)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// ListarSinAsignar pool de órdenes pendientes de la categoría.
// GET /api/administradores/ordenes/sin-asignar?categoria=TECNICO
func (h *OrdenHandler) ListarSinAsignar(c *fiber.Ctx) error {
	out, err := h.uc.ListarSinAsignar(c.Context(), c.Query("categoria"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// MarcarEnProceso arranca el tratamiento de una orden administrativa.
// PATCH /api/administradores/ordenes/:id/en-proceso
func (h *OrdenHandler) MarcarEnProceso(c *fiber.Ctx) error {
	var in dto.ObservacionesRequest
	if err := c.BodyParser(&in); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.MarcarEnProceso(c.Context(), c.Params("id"), in.Observaciones)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// CerrarAdministrativa cierra una orden administrativa con observaciones obligatorias.
// PATCH /api/administradores/ordenes/:id/cerrar
func (h *OrdenHandler) CerrarAdministrativa(c *fiber.Ctx) error {
	var in dto.ObservacionesRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CerrarAdministrativa(c.Context(), c.Params("id"), in.Observaciones)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// AsignarOperario asigna un técnico a una orden pendiente.
// PATCH /api/operarios/ordenes/:id/asignar
// PATCH /api/administradores/ordenes/:id/empleado
func (h *OrdenHandler) AsignarOperario(c *fiber.Ctx) error {
	var in dto.AsignarEmpleadoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.EmpleadoID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "empleado_id requerido"})
	}
	out, err := h.uc.AsignarOperario(c.Context(), c.Params("id"), in.EmpleadoID)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// IniciarTrabajo el operario autenticado arranca su orden asignada.
// PATCH /api/operarios/ordenes/:id/iniciar
func (h *OrdenHandler) IniciarTrabajo(c *fiber.Ctx) error {
	empleadoID := GetActorID(c)
	if empleadoID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	out, err := h.uc.IniciarTrabajo(c.Context(), c.Params("id"), empleadoID)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// CompletarTrabajo el operario autenticado completa su orden con observaciones.
// PATCH /api/operarios/ordenes/:id/completar
func (h *OrdenHandler) CompletarTrabajo(c *fiber.Ctx) error {
	empleadoID := GetActorID(c)
	if empleadoID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ObservacionesRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CompletarTrabajo(c.Context(), c.Params("id"), empleadoID, in.Observaciones)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Cancelar cancela una orden técnica; el reclamo vuelve a pendiente.
// PATCH /api/operarios/ordenes/:id/cancelar
// PATCH /api/administradores/ordenes/:id/cancelar
func (h *OrdenHandler) Cancelar(c *fiber.Ctx) error {
	var in dto.CancelarOrdenRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Cancelar(c.Context(), c.Params("id"), in.Motivo)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}
