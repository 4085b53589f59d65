package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/coelsur/cooperativa-api/internal/application/dto"
	"github.com/coelsur/cooperativa-api/internal/application/socios"
)

// SocioHandler maneja el padrón de socios y sus cuentas (administración).
type SocioHandler struct {
	uc *socios.UseCase
}

// NewSocioHandler construye el handler.
func NewSocioHandler(uc *socios.UseCase) *SocioHandler {
	return &SocioHandler{uc: uc}
}

// Crear da de alta un socio.
// POST /api/administradores/socios
func (h *SocioHandler) Crear(c *fiber.Ctx) error {
	var in dto.CreateSocioRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Crear(c.Context(), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Obtener devuelve un socio por ID.
// GET /api/administradores/socios/:id
func (h *SocioHandler) Obtener(c *fiber.Ctx) error {
	out, err := h.uc.Obtener(c.Context(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Listar padrón paginado; ?q= busca ignorando acentos y mayúsculas.
// GET /api/administradores/socios
func (h *SocioHandler) Listar(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	if q := c.Query("q"); q != "" {
		out, err := h.uc.Buscar(c.Context(), q, page)
		if err != nil {
			return responderError(c, err)
		}
		return c.JSON(out)
	}
	out, err := h.uc.Listar(c.Context(), page)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Actualizar edita datos de contacto y estado del socio.
// PUT /api/administradores/socios/:id
func (h *SocioHandler) Actualizar(c *fiber.Ctx) error {
	var in dto.UpdateSocioRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Actualizar(c.Context(), c.Params("id"), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// CrearCuenta alta de cuenta de suministro para el socio.
// POST /api/administradores/socios/:id/cuentas
func (h *SocioHandler) CrearCuenta(c *fiber.Ctx) error {
	var in dto.CreateCuentaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CrearCuenta(c.Context(), c.Params("id"), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListarCuentas cuentas del socio.
// GET /api/administradores/socios/:id/cuentas
func (h *SocioHandler) ListarCuentas(c *fiber.Ctx) error {
	out, err := h.uc.ListarCuentas(c.Context(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// MisCuentas cuentas del socio autenticado.
// GET /api/clientes/cuentas
func (h *SocioHandler) MisCuentas(c *fiber.Ctx) error {
	socioID := GetActorID(c)
	if socioID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	out, err := h.uc.ListarCuentas(c.Context(), socioID)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}
