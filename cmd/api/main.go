package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"promoservice/internal/app"
	"promoservice/internal/config"
	"promoservice/internal/database"
	"promoservice/internal/pkg/httpserver"
	"promoservice/internal/pkg/metrics"
	"promoservice/internal/pkg/tracing"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	setupLogger(cfg)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Store
	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	store, err := database.Open(dbCtx, cfg.DatabaseURL, cfg.MongoDB)
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Close(ctx); err != nil {
			slog.Error("store close failed", "err", err)
		}
	}()
	if err := app.EnsureSchema(dbCtx, store); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	slog.Info("store ready", "backend", store.Backend)

	metrics.Init()

	if cfg.TracingEnabled {
		shutdown, err := tracing.Init(cfg.OTLPEndpoint, cfg.ServiceName)
		if err != nil {
			slog.Error("trace init failed", "err", err)
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					slog.Error("trace shutdown failed", "err", err)
				}
			}()
		}
	} else {
		slog.Warn("Tracing disabled by config", "TRACING_ENABLED", false)
	}

	router := app.NewRouter(cfg, store, app.NewPeers(cfg))

	publicHandler := http.Handler(router)
	if cfg.TracingEnabled {
		publicHandler = otelhttp.NewHandler(router, "http")
	}
	publicSrv := httpserver.New("public", serverOptions(cfg, cfg.HTTPAddr), publicHandler)
	adminSrv := httpserver.New("admin", serverOptions(cfg, cfg.AdminAddr), app.NewAdminHandler(store))

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errch := make(chan error, 2)
	go func() { errch <- publicSrv.Run(stopCtx) }()
	go func() { errch <- adminSrv.Run(stopCtx) }()

	if err := <-errch; err != nil {
		stop()
		select {
		case <-errch:
		case <-time.After(cfg.ShutdownTimeout + time.Second):
		}
		return err
	}

	stop()
	<-errch
	slog.Info("shutdown complete")
	return nil
}

func serverOptions(cfg *config.Config, addr string) httpserver.Options {
	return httpserver.Options{
		Addr:              addr,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		ShutdownTimeout:   cfg.ShutdownTimeout,
	}
}

func setupLogger(cfg *config.Config) {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}

	var h slog.Handler = slog.NewJSONHandler(os.Stdout, opts)
	if cfg.LogFormat == "text" {
		h = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(h))
}
