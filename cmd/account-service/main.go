// Command account-service serves GET /accounts over a PostgreSQL table.
//
// All configuration comes from the environment, see internal/config.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/deppfellow/account-service/internal/config"
	"github.com/deppfellow/account-service/internal/handler"
	"github.com/deppfellow/account-service/internal/logger"
	"github.com/deppfellow/account-service/internal/repository"
	"github.com/deppfellow/account-service/internal/router"
	"github.com/deppfellow/account-service/internal/server"
	"github.com/deppfellow/account-service/internal/service"
)

func main() {
	os.Exit(run())
}

func run() int {
	bootLog := logger.NewBootstrap()

	cfg, err := config.LoadConfig()
	if err != nil {
		bootLog.Error().Err(err).Msg("failed to load config")
		return 1
	}

	log := logger.New(cfg)

	srv, err := server.New(cfg, &log)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize server")
		return 1
	}

	repos := repository.NewRepositories(srv)
	services := service.NewServices(repos)
	handlers := handler.NewHandlers(srv, services)
	r := router.NewRouter(srv, handlers)

	srv.SetupHTTPServer(r)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	exitCode := 0
	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-errCh:
		log.Error().Err(err).Msg("server stopped unexpectedly")
		exitCode = 1
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		exitCode = 1
	}

	log.Info().Msg("server exited")
	return exitCode
}
