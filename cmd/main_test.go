package main

import (
	"backoffice/internal/batch"
	"backoffice/internal/config"
	"backoffice/internal/infrastructure/logging"
	"context"
	"net/http"
	"os"
	"syscall"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedPruner struct {
	calls int
}

func (f *fixedPruner) Prune(context.Context, int) (int64, error) {
	f.calls++
	return 0, nil
}

func TestInitializeApp(t *testing.T) {
	t.Setenv("SERVER_AUTH_JWTSECRET", "test-secret")

	cfg, log := initializeApp()

	assert.NotNil(t, cfg, "Config should not be nil")
	assert.NotNil(t, log, "Logger should not be nil")
	assert.Equal(t, "test-secret", cfg.Server.Auth.JWTSecret)
}

func TestStartServer(t *testing.T) {
	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:         0,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
			IdleTimeout:  5 * time.Second,
		},
	}
	logger := logging.NewLogger(config.LoggerConfig{})
	router := http.NewServeMux()

	srv, serverErrors, shutdownChan := startServer(cfg, router, logger)
	t.Cleanup(func() { srv.Close() })

	assert.NotNil(t, srv, "Server should not be nil")
	assert.NotNil(t, serverErrors, "Server errors channel should not be nil")
	assert.NotNil(t, shutdownChan, "Shutdown channel should not be nil")
}

func TestHandleShutdown(t *testing.T) {
	logger := logging.NewLogger(config.LoggerConfig{})
	cronScheduler := cron.New()
	srv := &http.Server{}
	shutdownChan := make(chan os.Signal, 1)
	serverErrors := make(chan error, 1)

	go func() {
		shutdownChan <- syscall.SIGINT
	}()

	handleShutdown(srv, cronScheduler, shutdownChan, serverErrors, logger)
}

func TestStartBatchJobs(t *testing.T) {
	logger := logging.NewLogger(config.LoggerConfig{})
	job := batch.NewAuditPruneJob(&fixedPruner{}, 90, logger)

	t.Run("schedules the configured cron expression", func(t *testing.T) {
		cfg := &config.Config{Batch: config.BatchConfig{AuditPruneSchedule: "0 4 * * *", AuditPruneTimeout: time.Minute}}
		c := startBatchJobs(cfg, logger, job)
		defer c.Stop()

		require.Len(t, c.Entries(), 1)
	})

	t.Run("falls back to the default schedule", func(t *testing.T) {
		c := startBatchJobs(&config.Config{}, logger, job)
		defer c.Stop()

		require.Len(t, c.Entries(), 1)
	})

	t.Run("invalid schedule leaves no job", func(t *testing.T) {
		cfg := &config.Config{Batch: config.BatchConfig{AuditPruneSchedule: "not a cron spec"}}
		c := startBatchJobs(cfg, logger, job)
		defer c.Stop()

		assert.Empty(t, c.Entries())
	})
}

func TestRabbitMQURI(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.RabbitMQConfig
		want    string
		wantErr bool
	}{
		{name: "with credentials", cfg: config.RabbitMQConfig{Host: "mq", Port: 5673, Username: "u", Password: "p"}, want: "amqp://u:p@mq:5673/"},
		{name: "default port", cfg: config.RabbitMQConfig{Host: "mq"}, want: "amqp://mq:5672/"},
		{name: "reserved characters are escaped", cfg: config.RabbitMQConfig{Host: "mq", Username: "svc@shop", Password: "p@ss/word:1?"}, want: "amqp://svc%40shop:p%40ss%2Fword%3A1%3F@mq:5672/"},
		{name: "missing host", cfg: config.RabbitMQConfig{}, wantErr: true},
		{name: "username without password", cfg: config.RabbitMQConfig{Host: "mq", Username: "u"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := rabbitMQURI(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRabbitMQURIRoundTripsCredentials(t *testing.T) {
	uri, err := rabbitMQURI(config.RabbitMQConfig{Host: "mq", Port: 5673, Username: "svc@shop", Password: "p@ss/word:1?"})
	require.NoError(t, err)

	parsed, err := amqp.ParseURI(uri)
	require.NoError(t, err)
	assert.Equal(t, "mq", parsed.Host)
	assert.Equal(t, 5673, parsed.Port)
	assert.Equal(t, "svc@shop", parsed.Username)
	assert.Equal(t, "p@ss/word:1?", parsed.Password)
	assert.Equal(t, "/", parsed.Vhost)
}

func TestWatchRabbitMQ(t *testing.T) {
	logger := logging.NewLogger(config.LoggerConfig{})

	t.Run("keeps draining until the connection closes", func(t *testing.T) {
		blockChan := make(chan amqp.Blocking)
		closeChan := make(chan *amqp.Error)
		done := make(chan struct{})
		go func() {
			watchRabbitMQ(blockChan, closeChan, logger)
			close(done)
		}()

		for _, b := range []amqp.Blocking{{Active: true, Reason: "low on memory"}, {Active: false}, {Active: true, Reason: "disk"}} {
			select {
			case blockChan <- b:
			case <-time.After(time.Second):
				t.Fatalf("notification %+v was not drained", b)
			}
		}

		closeChan <- &amqp.Error{Code: amqp.ConnectionForced, Reason: "shutdown"}
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("watcher did not stop after close notification")
		}
	})

	t.Run("stops when the close channel is closed", func(t *testing.T) {
		blockChan := make(chan amqp.Blocking)
		closeChan := make(chan *amqp.Error)
		done := make(chan struct{})
		go func() {
			watchRabbitMQ(blockChan, closeChan, logger)
			close(done)
		}()

		close(blockChan)
		close(closeChan)
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("watcher did not stop after channels closed")
		}
	})
}

func TestInitializePublisherDisabled(t *testing.T) {
	logger := logging.NewLogger(config.LoggerConfig{})

	pub, conn := initializePublisher(&config.Config{}, logger)

	assert.NotNil(t, pub)
	assert.Nil(t, conn)
	assert.NoError(t, pub.Publish(context.Background(), "customer.updated", nil))
}
