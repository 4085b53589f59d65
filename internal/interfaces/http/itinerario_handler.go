package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/coelsur/cooperativa-api/internal/application/dto"
	"github.com/coelsur/cooperativa-api/internal/application/ordenes"
)

// ItinerarioHandler maneja el itinerario diario de cuadrillas: el admin agenda
// órdenes a una cuadrilla y cualquier integrante las va tomando.
type ItinerarioHandler struct {
	uc *ordenes.UseCase
}

// NewItinerarioHandler construye el handler.
func NewItinerarioHandler(uc *ordenes.UseCase) *ItinerarioHandler {
	return &ItinerarioHandler{uc: uc}
}

// Asignar agenda una orden en el itinerario de una cuadrilla.
// POST /api/administradores/itinerarios
func (h *ItinerarioHandler) Asignar(c *fiber.Ctx) error {
	var in dto.AsignarCuadrillaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.AsignarACuadrilla(c.Context(), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Listar itinerario de una cuadrilla para una fecha.
// GET /api/operarios/itinerarios/:cuadrillaId?fecha=2026-08-30
func (h *ItinerarioHandler) Listar(c *fiber.Ctx) error {
	out, err := h.uc.ListarItinerario(c.Context(), c.Params("cuadrillaId"), c.Query("fecha"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Tomar el operario autenticado reclama una orden del itinerario de su
// cuadrilla para la fecha indicada.
// POST /api/operarios/itinerarios/ordenes/:id/tomar?fecha=2026-08-30
func (h *ItinerarioHandler) Tomar(c *fiber.Ctx) error {
	empleadoID := GetActorID(c)
	if empleadoID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	out, err := h.uc.TomarDeItinerario(c.Context(), c.Params("id"), empleadoID, c.Query("fecha"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Quitar saca una orden no tomada del itinerario.
// DELETE /api/administradores/itinerarios/ordenes/:id
func (h *ItinerarioHandler) Quitar(c *fiber.Ctx) error {
	out, err := h.uc.QuitarDeItinerario(c.Context(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}
