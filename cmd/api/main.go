package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/oddsradar/oddsradar/internal/app"
	"github.com/oddsradar/oddsradar/internal/config"
	"github.com/oddsradar/oddsradar/internal/observability"
	"github.com/oddsradar/oddsradar/internal/platform/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel).With(
		logging.String("service", cfg.ServiceName),
		logging.String("env", cfg.AppEnv),
	)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	shutdownUptrace, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", logging.Err(err))
		os.Exit(1)
	}

	stopPyroscope, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		logger.Error("init pyroscope", logging.Err(err))
		os.Exit(1)
	}

	pprofSrv, err := observability.StartPprofServer(cfg, logger)
	if err != nil {
		logger.Error("start pprof server", logging.Err(err))
		os.Exit(1)
	}

	db, err := app.OpenDB(context.Background(), cfg)
	if err != nil {
		logger.Error("open database", logging.Err(err))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	srv, err := app.NewHTTPServer(cfg, db, logger)
	if err != nil {
		logger.Error("build app", logging.Err(err))
		os.Exit(1)
	}

	go func() {
		logger.Info("http server starting", logging.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", logging.Err(err))
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", logging.Err(err))
		os.Exit(1)
	}

	if err := observability.StopPprofServer(pprofSrv, logger, 5*time.Second); err != nil {
		logger.Error("stop pprof server", logging.Err(err))
	}
	if err := stopPyroscope(); err != nil {
		logger.Error("stop pyroscope", logging.Err(err))
	}
	if err := shutdownUptrace(shutdownCtx); err != nil {
		logger.Error("shutdown uptrace", logging.Err(err))
	}

	logger.Info("http server stopped")
}
