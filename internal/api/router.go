package api

import (
	"backoffice/internal/api/handler"
	mw "backoffice/internal/api/middleware"
	"backoffice/internal/api/routes"
	"backoffice/internal/config"
	"context"
	"log/slog"
	"net/http"
	"time"

	_ "backoffice/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/traceid"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// Dependencies are the collaborators the HTTP surface is built on.
type Dependencies struct {
	Workflow  handler.CustomerWorkflow
	Customers handler.CustomerReader
	Addresses handler.AddressReader
	Accounts  handler.Authenticator
	Tokens    TokenService
}

type TokenService interface {
	handler.TokenIssuer
	mw.TokenParser
}

func SetupRouter(ctx context.Context, deps Dependencies, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	router := chi.NewRouter()

	setupMiddleware(ctx, router, cfg, logger)
	setupMetricsEndpoint(router, cfg, logger)
	setupAuthRoutes(router, deps, logger)
	setupAdminRoutes(router, deps, cfg, logger)
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	setupSwaggerEndpoint(router, logger)

	return router
}

func setupMiddleware(ctx context.Context, router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(traceid.Middleware)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(middleware.Timeout(60 * time.Second))
	router.Use(mw.NewRateLimiterMiddleware(ctx, cfg.Server.RateLimit, logger).Middleware)
	router.Use(mw.MetricsMiddleware())
}

func setupMetricsEndpoint(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	metricsPath := cfg.Metrics.Path
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	logger.Info("Setting up Prometheus metrics endpoint", "path", metricsPath)
	router.Handle(metricsPath, promhttp.Handler())
}

func setupSwaggerEndpoint(router *chi.Mux, logger *slog.Logger) {
	logger.Info("Setting up Swagger UI endpoint", "path", "/swagger/")
	router.Get("/swagger/*", httpSwagger.WrapHandler)
	router.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/index.html", http.StatusMovedPermanently)
	})
}

func setupAuthRoutes(router *chi.Mux, deps Dependencies, logger *slog.Logger) {
	authHandler := handler.NewAuthHandler(deps.Accounts, deps.Tokens, logger)
	router.Route("/auth", func(r chi.Router) {
		r.Use(mw.StructuredLogger(logger))
		r.Post("/token", authHandler.GenerateBearerToken)
	})
}

func setupAdminRoutes(router *chi.Mux, deps Dependencies, cfg *config.Config, logger *slog.Logger) {
	renderer := handler.NewViewRenderer(deps.Customers, deps.Addresses, logger)
	h := handler.NewCustomerHandler(deps.Workflow, renderer, logger)

	router.Group(func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, deps.Tokens, cfg.Admin.DefaultLocaleID, logger))
		r.Use(mw.StructuredLogger(logger))

		r.Get(routes.Pattern(routes.Customers), h.ListCustomers)
		r.Get(routes.Pattern(routes.CustomerUpdateView), h.ViewCustomer)
		r.Post(routes.Pattern(routes.CustomerUpdate), h.UpdateCustomer)
		r.Post(routes.Pattern(routes.CustomerDelete), h.DeleteCustomer)
		r.Post(routes.Pattern(routes.AddressDelete), h.DeleteAddress)
	})
}
