package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	domrepo "ChartPulse/internal/domain/repository"
	"ChartPulse/pkg/config"
	xhttp "ChartPulse/pkg/http"
	applogger "ChartPulse/pkg/logger"
)

// App encapsulates the application lifecycle: the HTTP server plus the
// closable infrastructure behind it.
type App struct {
	cfg        *config.Config
	log        *applogger.Logger
	handler    xhttp.Handler
	store      domrepo.SymbolStore
	publisher  domrepo.ReportPublisher
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	log *applogger.Logger,
	handler xhttp.Handler,
	store domrepo.SymbolStore,
	publisher domrepo.ReportPublisher,
) *App {
	return &App{
		cfg:       cfg,
		log:       log,
		handler:   handler,
		store:     store,
		publisher: publisher,
	}
}

// Run starts the HTTP server and blocks until interrupted.
func (a *App) Run() error {
	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithMetricsLogger(a.log, time.Second),
	)

	if err := a.httpServer.Start(); err != nil {
		a.log.Error("http server start error", applogger.Error(err))
		return err
	}
	a.log.Info("server started",
		applogger.Int("port", a.cfg.Server.Port),
		applogger.String("environment", a.cfg.Environment),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.log.Info("shutdown signal received")
	return a.shutdown()
}

// shutdown gracefully stops the server and closes infrastructure clients.
func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Stop(ctx); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.log.Warn("symbol store close error", applogger.Error(err))
		}
	}
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.log.Warn("report publisher close error", applogger.Error(err))
		}
	}

	a.log.Info("shutdown complete")
	return nil
}
