package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/coelsur/cooperativa-api/internal/application/dto"
	"github.com/coelsur/cooperativa-api/internal/domain"
)

// responderError traduce errores de dominio a status HTTP con un cuerpo uniforme.
// Los handlers solo agregan casos cuando necesitan un mensaje más específico.
func responderError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrObservacionRequerida):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "las observaciones son obligatorias"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrTransicionInvalida):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: "transición de estado no permitida"})
	case errors.Is(err, domain.ErrYaValorado):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_RATED", Message: "el reclamo ya fue valorado"})
	case errors.Is(err, domain.ErrReclamoNoTerminal):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CLAIM_NOT_FINISHED", Message: "el reclamo aún no está resuelto ni cerrado"})
	case errors.Is(err, domain.ErrOrdenNoDisponible):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ORDER_UNAVAILABLE", Message: "la orden no está disponible para este operario"})
	case errors.Is(err, domain.ErrEmpleadoInactivo):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMPLOYEE_INACTIVE", Message: "el empleado no existe o está inactivo"})
	case errors.Is(err, domain.ErrEmailYaRegistrado):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: "el email ya está registrado"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el recurso ya existe"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "el recurso cambió de estado, reintente"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
