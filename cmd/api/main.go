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
	"github.com/jhoicas/Backoffice-api/internal/application/analytics"
	"github.com/jhoicas/Backoffice-api/internal/application/auth"
	"github.com/jhoicas/Backoffice-api/internal/application/inventory"
	"github.com/jhoicas/Backoffice-api/internal/application/usecase"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
	"github.com/jhoicas/Backoffice-api/internal/infrastructure/backend"
	"github.com/jhoicas/Backoffice-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Backoffice-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Backoffice-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Backoffice-api/internal/interfaces/http"
	"github.com/jhoicas/Backoffice-api/pkg/config"
	"github.com/jhoicas/Backoffice-api/pkg/logger"
	"github.com/jhoicas/Backoffice-api/pkg/metrics"
)

const swaggerFile = "./docs/swagger.json"

// ledgerStore repositorios del ledger y de los rapports según LEDGER_STORE.
type ledgerStore struct {
	tx        inventory.TxRunner
	items     repository.StockItemRepository
	movements repository.StockMovementRepository
	reports   repository.ActivityReportRepository
	close     func()
}

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
		Str("backend", cfg.Backend.BaseURL).
		Str("ledger_store", cfg.Ledger.Store).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx := context.Background()
	m := metrics.New("backoffice")

	store, err := openLedgerStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("almacén del ledger")
	}
	defer store.close()

	policy, err := inventory.ParseOversellPolicy(cfg.Ledger.OversellPolicy)
	if err != nil {
		log.Fatal().Err(err).Msg("política de sobreventa")
	}
	ledgerUC := inventory.NewLedgerUseCase(store.tx, store.items, store.movements, log,
		inventory.WithOversellPolicy(policy),
		inventory.WithObserver(m),
	)
	if cfg.Ledger.Seed {
		n, err := ledgerUC.Seed(ctx, inventory.DefaultCatalogue())
		if err != nil {
			log.Fatal().Err(err).Msg("carga del catálogo inicial")
		}
		log.Info().Int("inserted", n).Msg("catálogo inicial del ledger")
	}

	backendClient := backend.NewClient(cfg.Backend, log, m)
	authUC := auth.NewAuthUseCase(backendClient, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)
	reportUC := analytics.NewReportUseCase(backendClient, log, cfg.Reports.LowStockThreshold, cfg.Reports.MaxPages)
	activityUC := usecase.NewActivityReportUseCase(store.reports)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestMiddleware(log, m))

	// Swagger UI en local: http://localhost:<port>/docs (solo si se generó docs/swagger.json)
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Backoffice API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:           authUC,
		Backend:          backendClient,
		Reports:          reportUC,
		ReportPDF:        infrapdf.NewMarotoReportGenerator(),
		Ledger:           ledgerUC,
		ActivityReportUC: activityUC,
		Metrics:          m,
		Log:              log,
		JWTSecret:        cfg.JWT.Secret,
		ServiceName:      cfg.App.Name,
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

// openLedgerStore abre memoria o PostgreSQL (aplicando migraciones).
func openLedgerStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (*ledgerStore, error) {
	if cfg.Ledger.Store == config.LedgerStoreMemory {
		s := memory.NewStore()
		return &ledgerStore{
			tx:        memory.NewTxRunner(s),
			items:     s.Items(),
			movements: s.Movements(),
			reports:   s.Reports(),
			close:     func() {},
		}, nil
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	applied, err := postgres.Migrate(ctx, pool)
	if err != nil {
		pool.Close()
		return nil, err
	}
	log.Info().Strs("migrations", applied).Msg("migraciones aplicadas")
	return &ledgerStore{
		tx:        postgres.NewTxRunner(pool),
		items:     postgres.NewStockItemRepository(pool),
		movements: postgres.NewStockMovementRepository(pool),
		reports:   postgres.NewActivityReportRepository(pool),
		close:     pool.Close,
	}, nil
}
