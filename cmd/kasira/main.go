package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/kasira-pos/kasira-pos/internal/app"
	"github.com/kasira-pos/kasira-pos/internal/auth"
	"github.com/kasira-pos/kasira-pos/internal/catalog/categories"
	"github.com/kasira-pos/kasira-pos/internal/catalog/products"
	"github.com/kasira-pos/kasira-pos/internal/catalog/promotions"
	"github.com/kasira-pos/kasira-pos/internal/catalog/stores"
	"github.com/kasira-pos/kasira-pos/internal/catalog/suppliers"
	"github.com/kasira-pos/kasira-pos/internal/platform/cache"
	"github.com/kasira-pos/kasira-pos/internal/platform/db"
	"github.com/kasira-pos/kasira-pos/internal/pos"
	"github.com/kasira-pos/kasira-pos/internal/report"
	"github.com/kasira-pos/kasira-pos/internal/shared"
	"github.com/kasira-pos/kasira-pos/internal/users"
	"github.com/kasira-pos/kasira-pos/jobs"
)

// saleIntegration runs post-commit side effects: the report cache version
// bump and the background warmup enqueue. The sale is already durable, so
// failures only get logged.
type saleIntegration struct {
	reports *report.Service
	jobs    *jobs.Client
	logger  *slog.Logger
}

func (i *saleIntegration) HandleSaleCommitted(ctx context.Context, txn pos.Transaction) {
	if err := i.reports.Invalidate(ctx); err != nil {
		i.logger.Warn("invalidate report cache", slog.String("transaction", txn.ID), slog.Any("error", err))
	}
	if i.jobs != nil {
		if _, err := i.jobs.EnqueueReportWarmup(ctx); err != nil {
			i.logger.Warn("enqueue report warmup", slog.String("transaction", txn.ID), slog.Any("error", err))
		}
	}
}

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, "kasira_session", cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction())

	jobClient := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := jobClient.Close(); err != nil {
			logger.Warn("job client close", slog.Any("error", err))
		}
	}()

	reportRepo := report.NewRepository(dbpool)
	reportCache := report.NewCache(redisClient, cfg.ReportCacheTTL)
	reportService := report.NewService(reportRepo, reportCache)
	reportHandler := report.NewHandler(logger, reportService)

	posRepo := pos.NewRepository(dbpool)
	posService := pos.NewService(posRepo, &saleIntegration{
		reports: reportService,
		jobs:    jobClient,
		logger:  logger,
	})
	posHandler := pos.NewHandler(logger, posService)

	authRepo := auth.NewRepository(dbpool)
	authService := auth.NewService(authRepo)
	authHandler := auth.NewHandler(logger, authService, sessionManager, posService)

	productsHandler := products.NewHandler(logger, products.NewService(products.NewRepository(dbpool)))
	categoriesHandler := categories.NewHandler(logger, categories.NewService(categories.NewRepository(dbpool)))
	suppliersHandler := suppliers.NewHandler(logger, suppliers.NewService(suppliers.NewRepository(dbpool)))
	promotionsHandler := promotions.NewHandler(logger, promotions.NewService(promotions.NewRepository(dbpool)))
	storesHandler := stores.NewHandler(logger, stores.NewService(stores.NewRepository(dbpool)))
	usersHandler := users.NewHandler(logger, users.NewService(users.NewRepository(dbpool)))

	router := app.NewRouter(app.RouterParams{
		Logger:            logger,
		Config:            cfg,
		SessionManager:    sessionManager,
		AuthHandler:       authHandler,
		POSHandler:        posHandler,
		ReportHandler:     reportHandler,
		ProductsHandler:   productsHandler,
		CategoriesHandler: categoriesHandler,
		SuppliersHandler:  suppliersHandler,
		PromotionsHandler: promotionsHandler,
		StoresHandler:     storesHandler,
		UsersHandler:      usersHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
