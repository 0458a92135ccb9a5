package main

import (
	_ "backoffice/docs"
	"backoffice/internal/admin"
	"backoffice/internal/api"
	"backoffice/internal/auth"
	"backoffice/internal/batch"
	"backoffice/internal/config"
	"backoffice/internal/domain/audit"
	"backoffice/internal/domain/customer"
	"backoffice/internal/event"
	"backoffice/internal/infrastructure/database/postgres"
	"backoffice/internal/infrastructure/logging"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

const auditResourceCustomer = "customer"

type components struct {
	workflow  *admin.CustomerWorkflow
	customers *postgres.CustomerRepository
	addresses *postgres.AddressRepository
	recorder  *audit.Recorder
	accounts  *auth.AccountDirectory
	tokens    *auth.TokenIssuer
}

// @title Customer Back-office API
// @version 1.0
// @description Back-office workflow to list, view, update and delete customers and their addresses.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, logger := initializeApp()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dbPool := initializeDatabase(ctx, cfg, logger)
	defer closeDatabase(dbPool, logger)

	publisher, amqpConn := initializePublisher(cfg, logger)
	if amqpConn != nil {
		defer closeRabbitMQ(amqpConn, logger)
	}

	app := initializeComponents(dbPool, publisher, cfg, logger)

	pruneJob := batch.NewAuditPruneJob(app.recorder, cfg.Audit.RetentionDays, logger)
	cronScheduler := startBatchJobs(cfg, logger, pruneJob)

	router := api.SetupRouter(ctx, api.Dependencies{
		Workflow:  app.workflow,
		Customers: app.customers,
		Addresses: app.addresses,
		Accounts:  app.accounts,
		Tokens:    app.tokens,
	}, cfg, logger)

	srv, serverErrors, shutdownChan := startServer(cfg, router, logger)
	handleShutdown(srv, cronScheduler, shutdownChan, serverErrors, logger)
}

func initializeApp() (*config.Config, *slog.Logger) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := setupLogger(cfg.Logger)
	slog.SetDefault(logger)
	logger.Info("Application starting...", "config_source", viper.ConfigFileUsed())

	if cfg.Server.Auth.Enabled && cfg.Server.Auth.JWTSecret == "" {
		logger.Error("Authentication is enabled but no JWT secret is configured")
		os.Exit(1)
	}
	if !cfg.Server.Auth.Enabled {
		logger.Warn("Authentication is disabled, every request runs as superuser")
	} else if len(cfg.Server.Auth.Accounts) == 0 {
		logger.Warn("No admin accounts are configured, token requests will be rejected")
	}

	return cfg, logger
}

func initializeDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) *pgxpool.Pool {
	logger.Info("Initializing database connection pool...")
	dbPool, err := postgres.NewConnectionPool(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("Failed to initialize database connection pool", "error", err)
		os.Exit(1)
	}
	return dbPool
}

func closeDatabase(dbPool *pgxpool.Pool, logger *slog.Logger) {
	logger.Info("Closing database connection pool...")
	dbPool.Close()
}

// initializePublisher connects to RabbitMQ when enabled. A broker that cannot
// be reached degrades to a no-op publisher so the back-office keeps working.
func initializePublisher(cfg *config.Config, logger *slog.Logger) (event.Publisher, *amqp.Connection) {
	if !cfg.RabbitMQ.Enabled {
		logger.Info("RabbitMQ publishing disabled")
		return event.NewNopPublisher(logger), nil
	}

	conn, err := setupRabbitMQ(cfg, logger)
	if err != nil {
		logger.Error("RabbitMQ unavailable, customer events will not be published", slog.Any("error", err))
		return event.NewNopPublisher(logger), nil
	}

	publisher, err := event.NewRabbitMQEventPublisher(conn, cfg.RabbitMQ.ExchangeName, logger)
	if err != nil {
		logger.Error("Failed to initialize RabbitMQ publisher", slog.Any("error", err))
		closeRabbitMQ(conn, logger)
		return event.NewNopPublisher(logger), nil
	}
	return publisher, conn
}

func closeRabbitMQ(conn *amqp.Connection, logger *slog.Logger) {
	logger.Info("Closing RabbitMQ connection...")
	if err := conn.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
		logger.Warn("Failed to close RabbitMQ connection", slog.Any("error", err))
	}
}

func initializeComponents(dbPool *pgxpool.Pool, publisher event.Publisher, cfg *config.Config, logger *slog.Logger) components {
	logger.Info("Initializing application components...")
	customerRepo := postgres.NewCustomerRepository(dbPool, logger)
	addressRepo := postgres.NewAddressRepository(dbPool, logger)
	auditRepo := postgres.NewAuditRepository(dbPool, logger)

	dispatcher := event.NewDispatcher(logger)
	customer.NewAccountService(customerRepo, addressRepo, publisher, logger).Register(dispatcher)

	recorder := audit.NewRecorder(auditRepo, auditResourceCustomer, logger)
	authorizer := auth.NewCapabilityAuthorizer(cfg.Admin.DefaultLocaleID, logger)

	workflow := admin.NewCustomerWorkflow(admin.WorkflowDeps{
		Authorizer: authorizer,
		Locales:    authorizer,
		Customers:  customerRepo,
		Addresses:  addressRepo,
		Dispatcher: dispatcher,
		Audit:      recorder,
	}, cfg.Admin.CustomersPerPage, logger)

	return components{
		workflow:  workflow,
		customers: customerRepo,
		addresses: addressRepo,
		recorder:  recorder,
		accounts:  auth.NewAccountDirectory(cfg.Server.Auth.Accounts),
		tokens:    auth.NewTokenIssuer(cfg.Server.Auth.JWTSecret, cfg.Server.Auth.TokenTTL),
	}
}

func startServer(cfg *config.Config, router http.Handler, logger *slog.Logger) (*http.Server, <-chan error, <-chan os.Signal) {
	logger.Info("Setting up HTTP server...", "port", cfg.Server.Port)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("Server listening on port %d", cfg.Server.Port))
		err := srv.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", "error", err)
			serverErrors <- err
		} else {
			logger.Info("Server closed gracefully.")
			serverErrors <- nil
		}
	}()
	return srv, serverErrors, shutdownChan
}

func handleShutdown(srv *http.Server, cronScheduler *cron.Cron, shutdownChan <-chan os.Signal, serverErrors <-chan error, logger *slog.Logger) {
	logger.Info("Shutdown handler started. Waiting for signal or server error...")

	var triggerReason string
	select {
	case sig := <-shutdownChan:
		triggerReason = "signal: " + sig.String()
		logger.Info("Shutdown signal received.", "signal", sig.String())
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server exited unexpectedly before signal", "error", err)
			os.Exit(1)
		}
		triggerReason = "server exited"
		logger.Info("Server goroutine finished before signal.", "error", err)
	}

	logger.Info("Starting graceful shutdown...", "trigger", triggerReason)

	logger.Info("Stopping cron scheduler...")
	cronCtx := cronScheduler.Stop()
	select {
	case <-cronCtx.Done():
		logger.Info("Cron scheduler stopped gracefully.")
	case <-time.After(15 * time.Second):
		logger.Warn("Cron scheduler shutdown timed out.")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	logger.Info("Shutting down HTTP server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server graceful shutdown failed", "error", err)
		if err := srv.Close(); err != nil {
			logger.Error("HTTP server forced close failed", "error", err)
		}
	} else {
		logger.Info("HTTP server gracefully stopped.")
	}

	logger.Info("Waiting for server goroutine to confirm exit...")
	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("Server goroutine exited with unexpected error after shutdown", "error", err)
		} else {
			logger.Info("Server goroutine confirmed exit.")
		}
	case <-time.After(5 * time.Second):
		logger.Warn("Timed out waiting for server goroutine confirmation.")
	}

	logger.Info("Application shutdown process complete.")
}

func startBatchJobs(cfg *config.Config, logger *slog.Logger, pruneJob *batch.AuditPruneJob) *cron.Cron {
	logger.Info("Initializing batch job scheduler...")
	c := cron.New()

	scheduleSpec := cfg.Batch.AuditPruneSchedule
	if scheduleSpec == "" {
		scheduleSpec = "0 3 * * *"
		logger.Warn("Audit prune schedule not configured, using default", "schedule", scheduleSpec)
	}
	jobTimeout := cfg.Batch.AuditPruneTimeout
	if jobTimeout <= 0 {
		jobTimeout = 10 * time.Minute
	}

	jobID, err := c.AddJob(scheduleSpec, cron.FuncJob(func() {
		jobLogger := logger.With("job_name", "AuditPrune")
		jobLogger.Info("Cron triggered: Running audit prune job.")

		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		if runErr := pruneJob.Run(ctx); runErr != nil {
			jobLogger.Error("Audit prune job finished with error", slog.Any("error", runErr))
		} else {
			jobLogger.Info("Audit prune job finished successfully.")
		}
	}))

	if err != nil {
		logger.Error("Failed to schedule audit prune job", "schedule", scheduleSpec, slog.Any("error", err))
	} else {
		logger.Info("Scheduled audit prune job", "schedule", scheduleSpec, "job_id", jobID)
	}

	c.Start()
	logger.Info("Cron scheduler started.")
	return c
}

func setupLogger(cfg config.LoggerConfig) *slog.Logger {
	return logging.NewLogger(cfg)
}

func connectRabbitMQ(uri string, logger *slog.Logger) (*amqp.Connection, error) {
	var conn *amqp.Connection
	var err error
	retryCount := 5
	for i := 1; i <= retryCount; i++ {
		conn, err = amqp.Dial(uri)
		if err == nil {
			logger.Info("Successfully connected to RabbitMQ")

			blockChan := conn.NotifyBlocked(make(chan amqp.Blocking, 1))
			closeChan := conn.NotifyClose(make(chan *amqp.Error, 1))
			go watchRabbitMQ(blockChan, closeChan, logger)

			return conn, nil
		}
		logger.Warn("Failed to connect to RabbitMQ, retrying...",
			slog.Int("attempt", i),
			slog.Int("max_attempts", retryCount),
			slog.Any("error", err),
		)
		time.Sleep(time.Duration(i*2) * time.Second)
	}
	return nil, fmt.Errorf("failed to connect to RabbitMQ after %d attempts: %w", retryCount, err)
}

func rabbitMQURI(cfg config.RabbitMQConfig) (string, error) {
	if cfg.Host == "" {
		return "", fmt.Errorf("RabbitMQ host is not configured")
	}
	port := cfg.Port
	if port == 0 {
		port = 5672
	}

	uri := url.URL{
		Scheme: "amqp",
		Host:   net.JoinHostPort(cfg.Host, strconv.Itoa(port)),
		Path:   "/",
	}
	switch {
	case cfg.Username != "" && cfg.Password != "":
		uri.User = url.UserPassword(cfg.Username, cfg.Password)
	case cfg.Username != "" || cfg.Password != "":
		return "", fmt.Errorf("RabbitMQ username and password must be provided together")
	}
	return uri.String(), nil
}

func setupRabbitMQ(cfg *config.Config, logger *slog.Logger) (*amqp.Connection, error) {
	uri, err := rabbitMQURI(cfg.RabbitMQ)
	if err != nil {
		return nil, err
	}

	conn, err := connectRabbitMQ(uri, logger)
	if err != nil {
		logger.Error("Failed to connect to RabbitMQ", "error", err)
		return nil, err
	}
	return conn, nil
}

// watchRabbitMQ drains the connection notifications until the connection is
// closed. amqp091 blocks its reader while a notification goes unread.
func watchRabbitMQ(blockChan <-chan amqp.Blocking, closeChan <-chan *amqp.Error, logger *slog.Logger) {
	for {
		select {
		case b, ok := <-blockChan:
			if !ok {
				blockChan = nil
				continue
			}
			if b.Active {
				logger.Warn("RabbitMQ Connection Blocked", "reason", b.Reason)
			} else {
				logger.Info("RabbitMQ Connection Unblocked")
			}
		case e, ok := <-closeChan:
			if ok && e != nil {
				logger.Error("RabbitMQ Connection Closed", slog.Any("error", e))
			}
			return
		}
	}
}
