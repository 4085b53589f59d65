package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/coelsur/cooperativa-api/internal/application/cuadrillas"
	"github.com/coelsur/cooperativa-api/internal/application/dto"
)

// CuadrillaHandler maneja cuadrillas y empleados (administración).
type CuadrillaHandler struct {
	uc *cuadrillas.UseCase
}

// NewCuadrillaHandler construye el handler.
func NewCuadrillaHandler(uc *cuadrillas.UseCase) *CuadrillaHandler {
	return &CuadrillaHandler{uc: uc}
}

// Crear alta de cuadrilla.
// POST /api/administradores/cuadrillas
func (h *CuadrillaHandler) Crear(c *fiber.Ctx) error {
	var in dto.CreateCuadrillaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CrearCuadrilla(c.Context(), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Listar cuadrillas; ?activas=true filtra solo activas.
// GET /api/administradores/cuadrillas
func (h *CuadrillaHandler) Listar(c *fiber.Ctx) error {
	out, err := h.uc.ListarCuadrillas(c.Context(), c.QueryBool("activas"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Obtener cuadrilla con sus integrantes.
// GET /api/administradores/cuadrillas/:id
func (h *CuadrillaHandler) Obtener(c *fiber.Ctx) error {
	out, err := h.uc.ObtenerConIntegrantes(c.Context(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// AsignarIntegrante suma un empleado a la cuadrilla.
// POST /api/administradores/cuadrillas/:id/integrantes
func (h *CuadrillaHandler) AsignarIntegrante(c *fiber.Ctx) error {
	var in dto.AsignarEmpleadoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.EmpleadoID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "empleado_id requerido"})
	}
	out, err := h.uc.AsignarIntegrante(c.Context(), c.Params("id"), in.EmpleadoID)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// QuitarIntegrante saca al empleado de su cuadrilla.
// DELETE /api/administradores/empleados/:id/cuadrilla
func (h *CuadrillaHandler) QuitarIntegrante(c *fiber.Ctx) error {
	if err := h.uc.QuitarIntegrante(c.Context(), c.Params("id")); err != nil {
		return responderError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CrearEmpleado alta de empleado.
// POST /api/administradores/empleados
func (h *CuadrillaHandler) CrearEmpleado(c *fiber.Ctx) error {
	var in dto.CreateEmpleadoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CrearEmpleado(c.Context(), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListarEmpleados empleados; ?activos=true filtra solo activos.
// GET /api/administradores/empleados
func (h *CuadrillaHandler) ListarEmpleados(c *fiber.Ctx) error {
	out, err := h.uc.ListarEmpleados(c.Context(), c.QueryBool("activos"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}
