package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/jhoicas/camstock-api/internal/application/analytics"
	"github.com/jhoicas/camstock-api/internal/application/auth"
	"github.com/jhoicas/camstock-api/internal/application/inventory"
	"github.com/jhoicas/camstock-api/internal/application/ports"
	"github.com/jhoicas/camstock-api/internal/application/usecase"
	"github.com/jhoicas/camstock-api/internal/infrastructure/cache"
	infraexcel "github.com/jhoicas/camstock-api/internal/infrastructure/excel"
	infrapdf "github.com/jhoicas/camstock-api/internal/infrastructure/pdf"
	"github.com/jhoicas/camstock-api/internal/infrastructure/postgres"
	"github.com/jhoicas/camstock-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/camstock-api/internal/interfaces/http"
	"github.com/jhoicas/camstock-api/pkg/config"
	"github.com/jhoicas/camstock-api/pkg/logger"
)

// @title                       camstock API
// @version                     1.0
// @description                 Inventario de repuestos y cámaras armadas.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if _, err := postgres.Migrate(ctx, pool, log); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	// Caché del panel: Redis si está configurado; si no, sin caché.
	var panelCache ports.Cache = cache.Noop{}
	if cfg.Redis.Enabled() {
		rdb, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis no disponible, se sigue sin caché")
		} else {
			defer rdb.Close()
			panelCache = cache.NewRedisCache(rdb)
			log.Info().Str("addr", cfg.Redis.Addr).Dur("ttl", cfg.Redis.TTL).Msg("caché Redis activa")
		}
	}

	// Imágenes: MinIO opcional; sin él /api/file/upload responde 503.
	var objects ports.ObjectStorage
	if cfg.Storage.Enabled() {
		minioStorage, err := storage.NewMinioStorage(ctx, cfg.Storage)
		if err != nil {
			log.Warn().Err(err).Str("endpoint", cfg.Storage.Endpoint).Msg("MinIO no disponible, subida de imágenes desactivada")
		} else {
			objects = minioStorage
		}
	}

	userRepo := postgres.NewUserRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	subRepo := postgres.NewSubCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	outRepo := postgres.NewOutProductRepository(pool)
	damageRepo := postgres.NewDamageProductRepository(pool)
	readyRepo := postgres.NewReadyCameraRepository(pool)
	deliveryRepo := postgres.NewDeliveryRepository(pool)
	uploadRepo := postgres.NewExcelUploadRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// El panel observa el libro de stock: cada escritura invalida su caché.
	dashboardUC := appanalytics.NewDashboardUseCase(appanalytics.Repositories{
		Dashboard:     postgres.NewDashboardRepository(pool),
		Categories:    categoryRepo,
		SubCategories: subRepo,
		Products:      productRepo,
		OutProducts:   outRepo,
		Damages:       damageRepo,
	}, panelCache, cfg.Redis.TTL, map[string]ports.SummaryWriter{
		"xlsx": infraexcel.NewSummaryWriter(),
		"pdf":  infrapdf.NewSummaryWriter(),
	}, log)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    10 << 20,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.HTTP.FrontendURL,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowCredentials: cfg.HTTP.FrontendURL != "*",
		ExposeHeaders:    fiber.HeaderContentDisposition,
	}))

	// Swagger UI en local: http://localhost:<port>/docs (solo si se generó docs/swagger.json)
	if _, err := os.Stat(cfg.HTTP.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.SwaggerFile,
			Path:     "docs",
			Title:    "camstock API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		CategoryUC:    usecase.NewCategoryUseCase(categoryRepo),
		SubCategoryUC: usecase.NewSubCategoryUseCase(subRepo, categoryRepo),
		ProductUC:     usecase.NewProductUseCase(productRepo, categoryRepo, subRepo, dashboardUC),
		FileUC:        usecase.NewFileUseCase(objects),
		ExcelImport: inventory.NewExcelImportUseCase(
			txRunner, infraexcel.NewParser(), uploadRepo, categoryRepo, subRepo, dashboardUC, log,
		),
		OutProduct:  inventory.NewOutProductUseCase(txRunner, outRepo, dashboardUC),
		Damage:      inventory.NewDamageUseCase(txRunner, damageRepo, subRepo, dashboardUC, log),
		ReadyCamera: inventory.NewReadyCameraUseCase(txRunner, readyRepo, categoryRepo, dashboardUC),
		Delivery:    inventory.NewDeliveryUseCase(txRunner, deliveryRepo, dashboardUC, log),
		DashboardUC: dashboardUC,
		ServiceName: cfg.App.Name,
		DB:          postgres.NewPinger(pool),
		JWTSecret:   cfg.JWT.Secret,
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
