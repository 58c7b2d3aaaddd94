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

	"github.com/agrogest/AgroGest-api/internal/application/auth"
	"github.com/agrogest/AgroGest-api/internal/application/inventario"
	apptarea "github.com/agrogest/AgroGest-api/internal/application/tarea"
	"github.com/agrogest/AgroGest-api/internal/application/usecase"
	"github.com/agrogest/AgroGest-api/internal/infrastructure/migration"
	"github.com/agrogest/AgroGest-api/internal/infrastructure/postgres"
	"github.com/agrogest/AgroGest-api/internal/infrastructure/storage"
	httpRouter "github.com/agrogest/AgroGest-api/internal/interfaces/http"
	"github.com/agrogest/AgroGest-api/pkg/config"
	"github.com/agrogest/AgroGest-api/pkg/logger"
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

	// Esquema al día antes de atender tráfico
	migrator, err := migration.New(cfg.DB.ConnectionString(), cfg.App.MigrationsPath, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar migraciones")
	}
	if err := migrator.Up(); err != nil {
		log.Fatal().Err(err).Msg("aplicar migraciones")
	}

	fincaRepo := postgres.NewFincaRepository(pool)
	loteRepo := postgres.NewLoteRepository(pool)
	productoRepo := postgres.NewProductoRepository(pool)
	tareaRepo := postgres.NewTareaRepository(pool)
	maquinariaRepo := postgres.NewMaquinariaRepository(pool)
	usoRepo := postgres.NewUsoMaquinariaRepository(pool)
	movRepo := postgres.NewMovimientoRepository(pool)
	usuarioRepo := postgres.NewUsuarioRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	var evidencias apptarea.AlmacenEvidencias
	if cfg.Storage.Bucket != "" {
		s3, err := storage.NewS3Evidencias(cfg.Storage, log)
		if err != nil {
			log.Fatal().Err(err).Msg("inicializar almacén de evidencias")
		}
		if err := s3.EnsureBucket(ctx); err != nil {
			log.Fatal().Err(err).Msg("preparar bucket de evidencias")
		}
		evidencias = s3
	} else {
		log.Warn().Msg("STORAGE_BUCKET vacío: subida de evidencias deshabilitada")
		evidencias = storage.EvidenciasDeshabilitadas{}
	}

	registrarMovimientoUC := inventario.NewRegistrarMovimientoUseCase(txRunner, productoRepo, fincaRepo)
	consultaInventarioUC := inventario.NewConsultaUseCase(movRepo)
	fincaUC := usecase.NewFincaUseCase(fincaRepo)
	loteUC := usecase.NewLoteUseCase(loteRepo, fincaRepo)
	productoUC := usecase.NewProductoUseCase(productoRepo, fincaRepo, txRunner)
	maquinariaUC := usecase.NewMaquinariaUseCase(maquinariaRepo, usoRepo, fincaRepo)
	tareaUC := apptarea.NewUseCase(tareaRepo, loteRepo, usoRepo, evidencias)
	ejecutarTareaUC := apptarea.NewEjecutarTareaUseCase(txRunner, registrarMovimientoUC)
	authUC := auth.NewAuthUseCase(usuarioRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

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
		Title:    "AgroGest API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		FincaUC:             fincaUC,
		LoteUC:              loteUC,
		ProductoUC:          productoUC,
		MaquinariaUC:        maquinariaUC,
		RegistrarMovimiento: registrarMovimientoUC,
		ConsultaInventario:  consultaInventarioUC,
		TareaUC:             tareaUC,
		EjecutarTarea:       ejecutarTareaUC,
		AuthUC:              authUC,
		JWTSecret:           cfg.JWT.Secret,
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
}
