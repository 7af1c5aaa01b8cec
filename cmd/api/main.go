package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/pverissimo/loja-admin-api/api/routes"
	"github.com/pverissimo/loja-admin-api/internal/auth"
	"github.com/pverissimo/loja-admin-api/internal/billboards"
	"github.com/pverissimo/loja-admin-api/internal/categories"
	"github.com/pverissimo/loja-admin-api/internal/colors"
	"github.com/pverissimo/loja-admin-api/internal/orders"
	"github.com/pverissimo/loja-admin-api/internal/products"
	"github.com/pverissimo/loja-admin-api/internal/sizes"
	"github.com/pverissimo/loja-admin-api/internal/stores"
	"github.com/pverissimo/loja-admin-api/internal/uploads"
	"github.com/pverissimo/loja-admin-api/internal/users"
	"github.com/pverissimo/loja-admin-api/pkg/auth/session"
	"github.com/pverissimo/loja-admin-api/pkg/config"
	"github.com/pverissimo/loja-admin-api/pkg/db"
	"github.com/pverissimo/loja-admin-api/pkg/logger"
	"github.com/pverissimo/loja-admin-api/pkg/metrics"
	"github.com/pverissimo/loja-admin-api/pkg/migrate"
	"github.com/pverissimo/loja-admin-api/pkg/redis"
	"github.com/pverissimo/loja-admin-api/pkg/storage/gcs"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	gcsClient, err := gcs.NewClient(context.Background(), cfg.GCS, cfg.GCP, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap gcs", err)
		os.Exit(1)
	}

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	userRepo := users.NewRepository(dbClient.DB())
	storeRepo := stores.NewRepository(dbClient.DB())
	billboardRepo := billboards.NewRepository(dbClient.DB())
	categoryRepo := categories.NewRepository(dbClient.DB())
	colorRepo := colors.NewRepository(dbClient.DB())
	sizeRepo := sizes.NewRepository(dbClient.DB())
	productRepo := products.NewRepository(dbClient.DB())
	orderRepo := orders.NewRepository(dbClient.DB())

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       userRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	storeService, err := stores.NewService(storeRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create store service", err)
		os.Exit(1)
	}

	billboardService, err := billboards.NewService(billboardRepo, storeService)
	if err != nil {
		logg.Error(context.Background(), "failed to create billboard service", err)
		os.Exit(1)
	}

	categoryService, err := categories.NewService(categoryRepo, billboardRepo, storeService)
	if err != nil {
		logg.Error(context.Background(), "failed to create category service", err)
		os.Exit(1)
	}

	colorService, err := colors.NewService(colorRepo, storeService)
	if err != nil {
		logg.Error(context.Background(), "failed to create color service", err)
		os.Exit(1)
	}

	sizeService, err := sizes.NewService(sizeRepo, storeService)
	if err != nil {
		logg.Error(context.Background(), "failed to create size service", err)
		os.Exit(1)
	}

	uploadService, err := uploads.NewService(uploads.ServiceParams{
		Blobs:       gcsClient,
		Billboards:  billboardRepo,
		URLExpiry:   cfg.GCS.UploadURLExpiry,
		MaxUploadMB: cfg.Uploads.MaxUploadMB,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create upload service", err)
		os.Exit(1)
	}

	productService, err := products.NewService(products.ServiceParams{
		Repo:       productRepo,
		Guard:      storeService,
		Categories: categoryRepo,
		Colors:     colorRepo,
		Sizes:      sizeRepo,
		Blobs:      uploadService,
		Logg:       logg,
		MaxImages:  cfg.Uploads.MaxProductImgs,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}

	orderService, err := orders.NewService(orderRepo, storeService)
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpStats := metrics.NewHTTPMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, routes.Dependencies{
			Redis:     redisClient,
			DB:        dbClient,
			Blobs:     gcsClient,
			Sessions:  sessionManager,
			HTTPStats: httpStats,
			Registry:  registry,
		}, routes.Services{
			Auth:       authService,
			Stores:     storeService,
			Billboards: billboardService,
			Categories: categoryService,
			Colors:     colorService,
			Sizes:      sizeService,
			Products:   productService,
			Orders:     orderService,
			Uploads:    uploadService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
