package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/coelsur/cooperativa-api/internal/application/metricas"
)

// MetricasHandler expone los KPIs del panel administrativo.
type MetricasHandler struct {
	uc *metricas.UseCase
}

// NewMetricasHandler construye el handler.
func NewMetricasHandler(uc *metricas.UseCase) *MetricasHandler {
	return &MetricasHandler{uc: uc}
}

// Dashboard KPIs del período.
// GET /api/administradores/metricas?desde=2026-08-01&hasta=2026-08-30&dias_umbral=5
func (h *MetricasHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard(c.Context(), c.Query("desde"), c.Query("hasta"), c.QueryInt("dias_umbral"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}
