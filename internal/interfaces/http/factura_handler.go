package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/coelsur/cooperativa-api/internal/application/dto"
	"github.com/coelsur/cooperativa-api/internal/application/facturas"
)

// FacturaHandler maneja la consulta de facturación desde autogestión.
type FacturaHandler struct {
	uc *facturas.UseCase
}

// NewFacturaHandler construye el handler.
func NewFacturaHandler(uc *facturas.UseCase) *FacturaHandler {
	return &FacturaHandler{uc: uc}
}

// Listar facturas de una cuenta del socio autenticado.
// GET /api/clientes/cuentas/:cuentaId/facturas
func (h *FacturaHandler) Listar(c *fiber.Ctx) error {
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

// Saldo saldo pendiente de una cuenta del socio autenticado.
// GET /api/clientes/cuentas/:cuentaId/saldo
func (h *FacturaHandler) Saldo(c *fiber.Ctx) error {
	socioID := GetActorID(c)
	if socioID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	out, err := h.uc.Saldo(c.Context(), socioID, c.Params("cuentaId"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// DescargarPDF descarga el PDF de una factura propia.
// GET /api/clientes/facturas/:id/pdf
func (h *FacturaHandler) DescargarPDF(c *fiber.Ctx) error {
	socioID := GetActorID(c)
	if socioID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	pdfBytes, err := h.uc.DescargarPDF(c.Context(), socioID, c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="factura.pdf"`)
	return c.Send(pdfBytes)
}
