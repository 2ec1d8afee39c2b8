package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/energy-oracle/eo-api/internal/stream"
	"github.com/energy-oracle/eo-api/pkg/cache"
	pkgch "github.com/energy-oracle/eo-api/pkg/clickhouse"
	"github.com/energy-oracle/eo-api/pkg/config"
	xhttp "github.com/energy-oracle/eo-api/pkg/http"
	pkgkafka "github.com/energy-oracle/eo-api/pkg/kafka"
	applogger "github.com/energy-oracle/eo-api/pkg/logger"
)

// App encapsulates the application lifecycle: the HTTP server, the tick
// consumer feeding the stream hub, and the backing clients that need an
// orderly shutdown.
type App struct {
	cfg        *config.Config
	l          *applogger.Logger
	handler    xhttp.Handler
	consumer   *pkgkafka.Consumer
	tick       pkgkafka.MessageHandler
	hub        *stream.Hub
	cache      cache.Service
	chClient   *pkgch.Client
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies. consumer may be
// nil when Kafka is not configured; the REST API works without it.
func New(
	cfg *config.Config,
	l *applogger.Logger,
	handler xhttp.Handler,
	consumer *pkgkafka.Consumer,
	tick pkgkafka.MessageHandler,
	hub *stream.Hub,
	cacheSvc cache.Service,
	chClient *pkgch.Client,
) *App {
	return &App{
		cfg:      cfg,
		l:        l,
		handler:  handler,
		consumer: consumer,
		tick:     tick,
		hub:      hub,
		cache:    cacheSvc,
		chClient: chClient,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	opts := []xhttp.ServerOption{
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	}
	if a.cfg.Metrics.Enabled {
		if a.cfg.Metrics.Path != "" {
			opts = append(opts, xhttp.WithMetricsPath(a.cfg.Metrics.Path))
		}
	} else {
		opts = append(opts, xhttp.WithMetricsPath(""))
	}
	a.httpServer = xhttp.NewServer(a.handler, opts...)

	if a.consumer != nil && a.tick != nil {
		a.consumer.RegisterHandler(a.tick)
		go func() {
			if err := a.consumer.Start(); err != nil {
				a.l.Error("kafka consumer error", applogger.Error(err))
			}
		}()
		a.l.Info("kafka consumer started", applogger.String("topic", a.tick.Topic()))
	}

	if err := a.httpServer.Start(); err != nil {
		a.l.Error("http server start error", applogger.Error(err))
		return err
	}
	a.l.Info("http server started", applogger.Int("port", a.cfg.Server.Port))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.l.Info("shutdown signal received")
	return a.shutdown()
}

// shutdown stops services in dependency order: no new requests, then no
// new ticks, then drop stream clients, then close the backing clients.
func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Stop(ctx); err != nil {
		a.l.Error("http shutdown error", applogger.Error(err))
	}

	if a.consumer != nil {
		if err := a.consumer.Stop(ctx); err != nil {
			a.l.Warn("kafka consumer stop error", applogger.Error(err))
		}
	}

	if a.hub != nil {
		a.hub.Close()
	}

	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.l.Warn("cache close error", applogger.Error(err))
		}
	}

	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			a.l.Warn("clickhouse close error", applogger.Error(err))
		}
	}

	a.l.Info("shutdown complete")
	return nil
}
