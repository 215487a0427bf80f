package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ryanm101/gameroom/internal/api"
	"github.com/ryanm101/gameroom/internal/logging"
	"github.com/ryanm101/gameroom/internal/scheduler"
)

const shutdownTimeout = 10 * time.Second

func runServe(ctx context.Context) error {
	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	warmer := scheduler.New(cfg.GetWarmSchedule(), func(ctx context.Context) {
		a.service.Catalog(ctx)
	})
	if err := warmer.Start(); err != nil {
		return err
	}
	defer warmer.Stop()

	srv := api.NewServer(cfg.GetPort(), a.service)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	PrintInfo("Gameroom API listening on http://localhost%s\n", srv.Addr())

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logging.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
