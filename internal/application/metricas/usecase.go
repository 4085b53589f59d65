// Package metricas arma el tablero de KPIs del panel administrativo.
package metricas

import (
	"context"
	"time"

	"github.com/coelsur/cooperativa-api/internal/application/dto"
	"github.com/coelsur/cooperativa-api/internal/domain"
	"github.com/coelsur/cooperativa-api/internal/domain/repository"
)

// Valores por defecto del tablero.
const (
	diasPeriodoDefault = 30
	diasUmbralDefault  = 5
)

// UseCase casos de uso del tablero administrativo.
type UseCase struct {
	metricasRepo repository.MetricasRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(metricasRepo repository.MetricasRepository) *UseCase {
	return &UseCase{metricasRepo: metricasRepo}
}

// Dashboard KPIs del período. Fechas vacías usan los últimos 30 días;
// diasUmbral <= 0 usa 5 días.
func (uc *UseCase) Dashboard(ctx context.Context, desde, hasta string, diasUmbral int) (*dto.DashboardResponse, error) {
	hastaT := time.Now()
	desdeT := hastaT.AddDate(0, 0, -diasPeriodoDefault)
	var err error
	if desde != "" {
		desdeT, err = time.Parse("2006-01-02", desde)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
	}
	if hasta != "" {
		hastaT, err = time.Parse("2006-01-02", hasta)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		// hasta inclusivo: el día completo
		hastaT = hastaT.AddDate(0, 0, 1)
	}
	if !desdeT.Before(hastaT) {
		return nil, domain.ErrInvalidInput
	}
	if diasUmbral <= 0 {
		diasUmbral = diasUmbralDefault
	}

	tiempoMedio, err := uc.metricasRepo.TiempoMedioResolucionHoras(ctx, desdeT, hastaT)
	if err != nil {
		return nil, err
	}
	eficiencia, err := uc.metricasRepo.EficienciaOperativa(ctx, desdeT, hastaT, diasUmbral)
	if err != nil {
		return nil, err
	}
	satisfaccion, err := uc.metricasRepo.SatisfaccionPromedio(ctx)
	if err != nil {
		return nil, err
	}
	porEstado, err := uc.metricasRepo.ReclamosPorEstado(ctx)
	if err != nil {
		return nil, err
	}
	porTipo, err := uc.metricasRepo.ReclamosPorTipo(ctx)
	if err != nil {
		return nil, err
	}
	porCanal, err := uc.metricasRepo.ReclamosPorCanal(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardResponse{
		TiempoMedioResolucionHoras: tiempoMedio,
		EficienciaOperativa:        eficiencia,
		Satisfaccion:               satisfaccion,
		PorEstado:                  toConteos(porEstado),
		PorTipo:                    toConteos(porTipo),
		PorCanal:                   toConteos(porCanal),
	}, nil
}

func toConteos(list []repository.ConteoPorClave) []dto.ConteoResponse {
	out := make([]dto.ConteoResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.ConteoResponse{Clave: c.Clave, Cantidad: c.Cantidad})
	}
	return out
}
