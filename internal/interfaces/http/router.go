package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/coelsur/cooperativa-api/internal/application/auth"
	"github.com/coelsur/cooperativa-api/internal/application/cuadrillas"
	"github.com/coelsur/cooperativa-api/internal/application/facturas"
	"github.com/coelsur/cooperativa-api/internal/application/metricas"
	"github.com/coelsur/cooperativa-api/internal/application/ordenes"
	"github.com/coelsur/cooperativa-api/internal/application/reclamos"
	"github.com/coelsur/cooperativa-api/internal/application/socios"
	"github.com/coelsur/cooperativa-api/internal/application/valoraciones"
	"github.com/coelsur/cooperativa-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.UseCase
	SocioUC      *socios.UseCase
	ReclamoUC    *reclamos.UseCase
	OrdenUC      *ordenes.UseCase
	ValoracionUC *valoraciones.UseCase
	CuadrillaUC  *cuadrillas.UseCase
	FacturaUC    *facturas.UseCase
	MetricasUC   *metricas.UseCase
	JWTSecret    string
}

// Router registra las rutas de la API agrupadas por rol:
// /api/clientes (CLIENTE), /api/operarios (OPERARIO y ADMINISTRADOR) y
// /api/administradores (solo ADMINISTRADOR).
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	reclamoHandler := NewReclamoHandler(deps.ReclamoUC)
	ordenHandler := NewOrdenHandler(deps.OrdenUC)
	itinerarioHandler := NewItinerarioHandler(deps.OrdenUC)
	valoracionHandler := NewValoracionHandler(deps.ValoracionUC)
	socioHandler := NewSocioHandler(deps.SocioUC)
	cuadrillaHandler := NewCuadrillaHandler(deps.CuadrillaUC)
	facturaHandler := NewFacturaHandler(deps.FacturaUC)
	metricasHandler := NewMetricasHandler(deps.MetricasUC)

	// Autogestión de socios
	clientes := api.Group("/clientes", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RolCliente))
	clientes.Get("/cuentas", socioHandler.MisCuentas)
	clientes.Get("/cuentas/:cuentaId/facturas", facturaHandler.Listar)
	clientes.Get("/cuentas/:cuentaId/reclamos", reclamoHandler.ListarPorCuenta)
	clientes.Get("/cuentas/:cuentaId/saldo", facturaHandler.Saldo)
	clientes.Get("/facturas/:id/pdf", facturaHandler.DescargarPDF)
	clientes.Post("/reclamos", reclamoHandler.Crear)
	clientes.Get("/reclamos", reclamoHandler.ListarPropios)
	clientes.Get("/reclamos/resumen", reclamoHandler.ResumenPropio)
	clientes.Post("/valoraciones", valoracionHandler.Crear)
	clientes.Get("/valoraciones", valoracionHandler.ListarPropias)
	clientes.Put("/valoraciones/:id", valoracionHandler.Actualizar)
	clientes.Delete("/valoraciones/:id", valoracionHandler.Eliminar)

	// Panel de operarios (los admins también pueden operar en campo)
	operarios := api.Group("/operarios", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RolOperario, entity.RolAdministrador))
	operarios.Get("/ordenes", ordenHandler.ListarPropias)
	operarios.Get("/ordenes/:id", ordenHandler.Obtener)
	operarios.Patch("/ordenes/:id/asignar", ordenHandler.AsignarOperario)
	operarios.Patch("/ordenes/:id/iniciar", ordenHandler.IniciarTrabajo)
	operarios.Patch("/ordenes/:id/completar", ordenHandler.CompletarTrabajo)
	operarios.Patch("/ordenes/:id/cancelar", ordenHandler.Cancelar)
	operarios.Get("/reclamos/resumen", reclamoHandler.ResumenOperario)
	operarios.Patch("/reclamos/:id/estado", reclamoHandler.Transicionar)
	operarios.Get("/itinerarios/:cuadrillaId", itinerarioHandler.Listar)
	operarios.Post("/itinerarios/ordenes/:id/tomar", itinerarioHandler.Tomar)

	// Back-office administrativo
	admins := api.Group("/administradores", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RolAdministrador))
	admins.Post("/socios", socioHandler.Crear)
	admins.Get("/socios", socioHandler.Listar)
	admins.Get("/socios/:id", socioHandler.Obtener)
	admins.Put("/socios/:id", socioHandler.Actualizar)
	admins.Post("/socios/:id/cuentas", socioHandler.CrearCuenta)
	admins.Get("/socios/:id/cuentas", socioHandler.ListarCuentas)

	admins.Post("/reclamos", reclamoHandler.CrearComoStaff)
	admins.Get("/reclamos", reclamoHandler.ListarTodos)
	admins.Get("/reclamos/resumen", reclamoHandler.ResumenGlobal)
	admins.Patch("/reclamos/:id/estado", reclamoHandler.Transicionar)
	admins.Patch("/reclamos/:id/operario", reclamoHandler.AsignarOperario)
	admins.Get("/reclamos/:id/valoracion", valoracionHandler.ObtenerPorReclamo)
	admins.Get("/reclamos/:id/orden", ordenHandler.ObtenerPorReclamo)

	admins.Get("/ordenes/sin-asignar", ordenHandler.ListarSinAsignar)
	admins.Patch("/ordenes/:id/en-proceso", ordenHandler.MarcarEnProceso)
	admins.Patch("/ordenes/:id/cerrar", ordenHandler.CerrarAdministrativa)
	admins.Patch("/ordenes/:id/empleado", ordenHandler.AsignarOperario)
	admins.Patch("/ordenes/:id/cancelar", ordenHandler.Cancelar)

	admins.Post("/itinerarios", itinerarioHandler.Asignar)
	admins.Delete("/itinerarios/ordenes/:id", itinerarioHandler.Quitar)

	admins.Post("/cuadrillas", cuadrillaHandler.Crear)
	admins.Get("/cuadrillas", cuadrillaHandler.Listar)
	admins.Get("/cuadrillas/:id", cuadrillaHandler.Obtener)
	admins.Post("/cuadrillas/:id/integrantes", cuadrillaHandler.AsignarIntegrante)
	admins.Post("/empleados", cuadrillaHandler.CrearEmpleado)
	admins.Get("/empleados", cuadrillaHandler.ListarEmpleados)
	admins.Delete("/empleados/:id/cuadrilla", cuadrillaHandler.QuitarIntegrante)

	admins.Get("/valoraciones/estadisticas", valoracionHandler.Estadisticas)
	admins.Get("/valoraciones/recientes", valoracionHandler.Recientes)
	admins.Get("/metricas", metricasHandler.Dashboard)
}
