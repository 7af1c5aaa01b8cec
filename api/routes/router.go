package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pverissimo/loja-admin-api/api/controllers"
	"github.com/pverissimo/loja-admin-api/api/middleware"
	"github.com/pverissimo/loja-admin-api/internal/auth"
	"github.com/pverissimo/loja-admin-api/internal/billboards"
	"github.com/pverissimo/loja-admin-api/internal/categories"
	"github.com/pverissimo/loja-admin-api/internal/colors"
	"github.com/pverissimo/loja-admin-api/internal/orders"
	"github.com/pverissimo/loja-admin-api/internal/products"
	"github.com/pverissimo/loja-admin-api/internal/sizes"
	"github.com/pverissimo/loja-admin-api/internal/stores"
	"github.com/pverissimo/loja-admin-api/internal/uploads"
	"github.com/pverissimo/loja-admin-api/pkg/auth/session"
	"github.com/pverissimo/loja-admin-api/pkg/config"
	"github.com/pverissimo/loja-admin-api/pkg/logger"
	"github.com/pverissimo/loja-admin-api/pkg/metrics"
	"github.com/pverissimo/loja-admin-api/pkg/redis"
)

// Services groups the domain services the router exposes.
type Services struct {
	Auth       auth.Service
	Stores     stores.Service
	Billboards billboards.Service
	Categories categories.Service
	Colors     colors.Service
	Sizes      sizes.Service
	Products   products.Service
	Orders     orders.Service
	Uploads    uploads.Service
}

// Dependencies carries the infrastructure the router health-checks and
// middleware needs.
type Dependencies struct {
	Redis     *redis.Client
	DB        controllers.Pinger
	Blobs     controllers.Pinger
	Sessions  session.AccessSessionChecker
	HTTPStats *metrics.HTTPMetrics
	Registry  *prometheus.Registry
}

func NewRouter(cfg *config.Config, logg *logger.Logger, deps Dependencies, svcs Services) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPStats),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, map[string]controllers.Pinger{
			"database": deps.DB,
			"redis":    deps.Redis,
			"storage":  deps.Blobs,
		}))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	authed := middleware.Auth(cfg.JWT, deps.Sessions, logg)

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).Post("/login", controllers.Login(svcs.Auth, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, deps.Redis, logg)).Post("/register", controllers.Register(svcs.Auth, logg))
		r.Post("/refresh", controllers.Refresh(svcs.Auth, logg))
		r.With(authed).Post("/logout", controllers.Logout(svcs.Auth, logg))
	})

	r.Route("/api/v1/stores", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authed)
			r.Get("/", controllers.StoreList(svcs.Stores, logg))
			r.Post("/", controllers.StoreCreate(svcs.Stores, logg))
		})

		r.Route("/{storeId}", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(authed)
				r.Get("/", controllers.StoreGet(svcs.Stores, logg))
				r.Patch("/", controllers.StoreUpdate(svcs.Stores, logg))
				r.Delete("/", controllers.StoreDelete(svcs.Stores, logg))
			})

			r.Route("/billboards", func(r chi.Router) {
				r.Get("/", controllers.BillboardList(svcs.Billboards, logg))
				r.Get("/{billboardId}", controllers.BillboardGet(svcs.Billboards, logg))
				r.Group(func(r chi.Router) {
					r.Use(authed)
					r.Post("/", controllers.BillboardCreate(svcs.Billboards, logg))
					r.Patch("/{billboardId}", controllers.BillboardUpdate(svcs.Billboards, logg))
					r.Delete("/{billboardId}", controllers.BillboardDelete(svcs.Billboards, logg))
				})
			})

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", controllers.CategoryList(svcs.Categories, logg))
				r.Get("/{categoryId}", controllers.CategoryGet(svcs.Categories, logg))
				r.Group(func(r chi.Router) {
					r.Use(authed)
					r.Post("/", controllers.CategoryCreate(svcs.Categories, logg))
					r.Patch("/{categoryId}", controllers.CategoryUpdate(svcs.Categories, logg))
					r.Delete("/{categoryId}", controllers.CategoryDelete(svcs.Categories, logg))
				})
			})

			r.Route("/colors", func(r chi.Router) {
				r.Get("/", controllers.ColorList(svcs.Colors, logg))
				r.Get("/{colorId}", controllers.ColorGet(svcs.Colors, logg))
				r.Group(func(r chi.Router) {
					r.Use(authed)
					r.Post("/", controllers.ColorCreate(svcs.Colors, logg))
					r.Patch("/{colorId}", controllers.ColorUpdate(svcs.Colors, logg))
					r.Delete("/{colorId}", controllers.ColorDelete(svcs.Colors, logg))
				})
			})

			r.Route("/sizes", func(r chi.Router) {
				r.Get("/", controllers.SizeList(svcs.Sizes, logg))
				r.Get("/{sizeId}", controllers.SizeGet(svcs.Sizes, logg))
				r.Group(func(r chi.Router) {
					r.Use(authed)
					r.Post("/", controllers.SizeCreate(svcs.Sizes, logg))
					r.Patch("/{sizeId}", controllers.SizeUpdate(svcs.Sizes, logg))
					r.Delete("/{sizeId}", controllers.SizeDelete(svcs.Sizes, logg))
				})
			})

			r.Route("/products", func(r chi.Router) {
				r.Get("/", controllers.ProductList(svcs.Products, logg))
				r.Get("/{productId}", controllers.ProductGet(svcs.Products, logg))
				r.Group(func(r chi.Router) {
					r.Use(authed)
					r.Post("/", controllers.ProductCreate(svcs.Products, logg))
					r.Patch("/{productId}", controllers.ProductUpdate(svcs.Products, logg))
					r.Delete("/{productId}", controllers.ProductDelete(svcs.Products, logg))
				})
			})

			r.Route("/orders", func(r chi.Router) {
				r.Use(authed)
				r.Get("/", controllers.OrderList(svcs.Orders, logg))
				r.Get("/{orderId}", controllers.OrderGet(svcs.Orders, logg))
			})
		})
	})

	r.Route("/api/v1/uploads", func(r chi.Router) {
		r.Use(authed)
		r.Post("/presign", controllers.UploadPresign(svcs.Uploads, logg))
		r.Delete("/", controllers.UploadDelete(svcs.Uploads, logg))
	})

	return r
}
