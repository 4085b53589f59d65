// Package facturas expone la consulta de facturación desde autogestión: listado,
// saldo pendiente y descarga en PDF. La emisión de facturas vive en el sistema
// comercial; acá solo se leen.
package facturas

import (
	"context"

	"github.com/coelsur/cooperativa-api/internal/application/dto"
	"github.com/coelsur/cooperativa-api/internal/domain"
	"github.com/coelsur/cooperativa-api/internal/domain/entity"
	"github.com/coelsur/cooperativa-api/internal/domain/repository"
)

// PDFGenerator puerto de generación del PDF de una factura.
type PDFGenerator interface {
	GenerarFactura(factura *entity.Factura, cuenta *entity.Cuenta, socio *entity.Socio) ([]byte, error)
}

// UseCase casos de uso de consulta de facturación.
type UseCase struct {
	facturaRepo repository.FacturaRepository
	cuentaRepo  repository.CuentaRepository
	socioRepo   repository.SocioRepository
	pdf         PDFGenerator
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	facturaRepo repository.FacturaRepository,
	cuentaRepo repository.CuentaRepository,
	socioRepo repository.SocioRepository,
	pdf PDFGenerator,
) *UseCase {
	return &UseCase{facturaRepo: facturaRepo, cuentaRepo: cuentaRepo, socioRepo: socioRepo, pdf: pdf}
}

// ListarPorCuenta facturas de una cuenta. socioID no vacío exige titularidad.
func (uc *UseCase) ListarPorCuenta(ctx context.Context, socioID, cuentaID string, page dto.PageRequest) ([]*dto.FacturaResponse, error) {
	if _, err := uc.cuentaDelSocio(ctx, socioID, cuentaID); err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, err := uc.facturaRepo.ListByCuenta(ctx, cuentaID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.FacturaResponse, 0, len(list))
	for _, f := range list {
		out = append(out, toFacturaResponse(f))
	}
	return out, nil
}

// Saldo saldo pendiente (PENDIENTE + VENCIDA) de la cuenta.
func (uc *UseCase) Saldo(ctx context.Context, socioID, cuentaID string) (*dto.SaldoResponse, error) {
	if _, err := uc.cuentaDelSocio(ctx, socioID, cuentaID); err != nil {
		return nil, err
	}
	saldo, err := uc.facturaRepo.SaldoPendiente(ctx, cuentaID)
	if err != nil {
		return nil, err
	}
	return &dto.SaldoResponse{CuentaID: cuentaID, Saldo: saldo}, nil
}

// DescargarPDF genera el PDF de una factura de una cuenta del socio.
func (uc *UseCase) DescargarPDF(ctx context.Context, socioID, facturaID string) ([]byte, error) {
	factura, err := uc.facturaRepo.GetByID(ctx, facturaID)
	if err != nil {
		return nil, err
	}
	if factura == nil {
		return nil, domain.ErrNotFound
	}
	cuenta, err := uc.cuentaDelSocio(ctx, socioID, factura.CuentaID)
	if err != nil {
		return nil, err
	}
	socio, err := uc.socioRepo.GetByID(ctx, cuenta.SocioID)
	if err != nil {
		return nil, err
	}
	if socio == nil {
		return nil, domain.ErrNotFound
	}
	return uc.pdf.GenerarFactura(factura, cuenta, socio)
}

// cuentaDelSocio carga la cuenta y, si socioID no es vacío (staff), valida titularidad.
func (uc *UseCase) cuentaDelSocio(ctx context.Context, socioID, cuentaID string) (*entity.Cuenta, error) {
	cuenta, err := uc.cuentaRepo.GetByID(ctx, cuentaID)
	if err != nil {
		return nil, err
	}
	if cuenta == nil {
		return nil, domain.ErrNotFound
	}
	if socioID != "" && cuenta.SocioID != socioID {
		return nil, domain.ErrForbidden
	}
	return cuenta, nil
}

func toFacturaResponse(f *entity.Factura) *dto.FacturaResponse {
	return &dto.FacturaResponse{
		ID:          f.ID,
		CuentaID:    f.CuentaID,
		Periodo:     f.Periodo,
		Vencimiento: f.Vencimiento,
		Importe:     f.Importe,
		Estado:      f.Estado,
	}
}
