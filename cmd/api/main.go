package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/coelsur/cooperativa-api/internal/application/auth"
	"github.com/coelsur/cooperativa-api/internal/application/cuadrillas"
	"github.com/coelsur/cooperativa-api/internal/application/facturas"
	"github.com/coelsur/cooperativa-api/internal/application/metricas"
	"github.com/coelsur/cooperativa-api/internal/application/ordenes"
	"github.com/coelsur/cooperativa-api/internal/application/reclamos"
	"github.com/coelsur/cooperativa-api/internal/application/socios"
	"github.com/coelsur/cooperativa-api/internal/application/valoraciones"
	infrapdf "github.com/coelsur/cooperativa-api/internal/infrastructure/pdf"
	"github.com/coelsur/cooperativa-api/internal/infrastructure/postgres"
	httpRouter "github.com/coelsur/cooperativa-api/internal/interfaces/http"
	"github.com/coelsur/cooperativa-api/pkg/config"
	"github.com/coelsur/cooperativa-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	socioRepo := postgres.NewSocioRepository(pool)
	cuentaRepo := postgres.NewCuentaRepository(pool)
	empleadoRepo := postgres.NewEmpleadoRepository(pool)
	cuadrillaRepo := postgres.NewCuadrillaRepository(pool)
	tipoRepo := postgres.NewTipoReclamoRepository(pool)
	reclamoRepo := postgres.NewReclamoRepository(pool)
	ordenRepo := postgres.NewOrdenTrabajoRepository(pool)
	valoracionRepo := postgres.NewValoracionRepository(pool)
	facturaRepo := postgres.NewFacturaRepository(pool)
	usuarioRepo := postgres.NewUsuarioRepository(pool)
	metricasRepo := postgres.NewMetricasRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewUseCase(usuarioRepo, cfg.JWT)
	socioUC := socios.NewUseCase(socioRepo, cuentaRepo)
	reclamoUC := reclamos.NewUseCase(txRunner, reclamoRepo, cuentaRepo, tipoRepo, empleadoRepo)
	ordenUC := ordenes.NewUseCase(txRunner, ordenRepo, empleadoRepo, cuadrillaRepo)
	valoracionUC := valoraciones.NewUseCase(txRunner, valoracionRepo)
	cuadrillaUC := cuadrillas.NewUseCase(cuadrillaRepo, empleadoRepo)
	metricasUC := metricas.NewUseCase(metricasRepo)

	pdfGenerator := infrapdf.NewMarotoFacturaGenerator(cfg.App.Name)
	facturaUC := facturas.NewUseCase(facturaRepo, cuentaRepo, socioRepo, pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Cooperativa API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		SocioUC:      socioUC,
		ReclamoUC:    reclamoUC,
		OrdenUC:      ordenUC,
		ValoracionUC: valoracionUC,
		CuadrillaUC:  cuadrillaUC,
		FacturaUC:    facturaUC,
		MetricasUC:   metricasUC,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
