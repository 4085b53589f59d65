package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/coelsur/cooperativa-api/internal/application/dto"
	"github.com/coelsur/cooperativa-api/internal/application/valoraciones"
)

// ValoracionHandler maneja las peticiones HTTP de valoraciones.
type ValoracionHandler struct {
	uc *valoraciones.UseCase
}

// NewValoracionHandler construye el handler.
func NewValoracionHandler(uc *valoraciones.UseCase) *ValoracionHandler {
	return &ValoracionHandler{uc: uc}
}

// Crear el socio autenticado valora un reclamo terminado.
// POST /api/clientes/valoraciones
func (h *ValoracionHandler) Crear(c *fiber.Ctx) error {
	socioID := GetActorID(c)
	if socioID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateValoracionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Crear(c.Context(), socioID, in)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Actualizar edita una valoración propia.
// PUT /api/clientes/valoraciones/:id
func (h *ValoracionHandler) Actualizar(c *fiber.Ctx) error {
	socioID := GetActorID(c)
	if socioID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.UpdateValoracionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Actualizar(c.Context(), socioID, c.Params("id"), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Eliminar borra una valoración propia.
// DELETE /api/clientes/valoraciones/:id
func (h *ValoracionHandler) Eliminar(c *fiber.Ctx) error {
	socioID := GetActorID(c)
	if socioID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	if err := h.uc.Eliminar(c.Context(), socioID, c.Params("id")); err != nil {
		return responderError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListarPropias valoraciones hechas por el socio autenticado.
// GET /api/clientes/valoraciones
func (h *ValoracionHandler) ListarPropias(c *fiber.Ctx) error {
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

// ObtenerPorReclamo valoración asociada a un reclamo.
// GET /api/administradores/reclamos/:id/valoracion
func (h *ValoracionHandler) ObtenerPorReclamo(c *fiber.Ctx) error {
	out, err := h.uc.ObtenerPorReclamo(c.Context(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Estadisticas agregados globales de valoraciones.
// GET /api/administradores/valoraciones/estadisticas
func (h *ValoracionHandler) Estadisticas(c *fiber.Ctx) error {
	out, err := h.uc.Estadisticas(c.Context())
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Recientes últimas valoraciones.
// GET /api/administradores/valoraciones/recientes?n=10
func (h *ValoracionHandler) Recientes(c *fiber.Ctx) error {
	out, err := h.uc.Recientes(c.Context(), c.QueryInt("n"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}
