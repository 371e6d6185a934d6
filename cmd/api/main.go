package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"carrier-records-service/internal/config"
	filtersMemory "carrier-records-service/internal/filters/adapters/memory"
	filtersRepoPg "carrier-records-service/internal/filters/adapters/postgres"
	filtersPorts "carrier-records-service/internal/filters/core/ports"
	"carrier-records-service/internal/records/adapters/csvsource"
	recordsUsecase "carrier-records-service/internal/records/core/usecase"
	viewsHttp "carrier-records-service/internal/views/adapters/http/fiber"
	viewsUsecase "carrier-records-service/internal/views/core/usecase"

	"github.com/gofiber/fiber/v2"
	_ "github.com/lib/pq"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	_ "carrier-records-service/docs"
)

func newLogger(level string) (*zap.Logger, error) {
	if level == "debug" {
		return zap.NewDevelopment()
	}
	zc := zap.NewProductionConfig()
	if lvl, err := zap.ParseAtomicLevel(level); err == nil {
		zc.Level = lvl
	}
	return zc.Build()
}

func main() {
	// Config
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	// Filter snapshot + share link stores
	var (
		snapshots filtersPorts.SnapshotStorePort
		clipboard filtersPorts.ClipboardPort
		links     filtersPorts.ShareResolverPort
	)

	if cfg.PostgresDSN != "" {
		db, err := sql.Open("postgres", cfg.PostgresDSN)
		if err != nil {
			logger.Fatal("failed to open postgres", zap.Error(err))
		}
		defer db.Close()

		db.SetMaxOpenConns(20)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(30 * time.Minute)

		if err := db.Ping(); err != nil {
			logger.Fatal("failed to ping postgres", zap.Error(err))
		}

		filtersDB := filtersRepoPg.NewSQLDB(db)

		schemaCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err = filtersRepoPg.EnsureSchema(schemaCtx, filtersDB)
		cancel()
		if err != nil {
			logger.Fatal("failed to prepare schema", zap.Error(err))
		}

		shareRepository := filtersRepoPg.NewShareRepository(filtersDB)
		snapshots = filtersRepoPg.NewSnapshotRepository(filtersDB)
		clipboard = shareRepository
		links = shareRepository
	} else {
		logger.Warn("POSTGRES_DSN is not set, filter snapshots are kept in memory")
		mem := filtersMemory.NewClipboard()
		snapshots = filtersMemory.NewSnapshotStore()
		clipboard = mem
		links = mem
	}

	// Usecases
	viewsUC := viewsUsecase.NewViewsUseCase(viewsUsecase.Config{
		SourceLocator: cfg.CSVSource,
		PublicBaseURL: cfg.PublicBaseURL,
		FetchTimeout:  cfg.FetchTimeout,
		SessionTTL:    cfg.SessionTTL,
	}, viewsUsecase.Deps{
		Source:    csvsource.NewSource(cfg.FetchTimeout),
		Snapshots: snapshots,
		Clipboard: clipboard,
		Links:     links,
		Enricher:  recordsUsecase.NewEnricher(cfg.DisplayTimezone),
		Log:       logger,
	}, viewsUsecase.DataViewOptions(), viewsUsecase.PivotViewOptions())

	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	defer stopJanitor()
	if cfg.SessionTTL > 0 {
		go viewsUC.RunJanitor(janitorCtx, cfg.SessionTTL/4+time.Second)
	}

	// HTTP (Fiber) app + handlers
	app := fiber.New()

	viewsHandler := viewsHttp.NewViewHandler(viewsUC)
	viewsHandler.Register(app)

	// Swagger
	app.Get("/docs/*", fiberSwagger.WrapHandler)

	// Graceful shutdown
	go func() {
		if err := app.Listen(cfg.HTTPAddr); err != nil {
			logger.Warn("fiber stopped", zap.Error(err))
		}
	}()

	logger.Info("server started",
		zap.String("addr", cfg.HTTPAddr),
		zap.String("source", cfg.CSVSource))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	logger.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Warn("fiber shutdown error", zap.Error(err))
	}

	stopJanitor()
	viewsUC.Flush(ctx)

	logger.Info("server exiting")
}
