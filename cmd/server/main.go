// Command server runs the crafting components catalogue: an embedded SQLite
// database with a local web UI for browsing, editing, importing and
// exporting the component inventory.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"crafting-catalogue/internal/config"
	"crafting-catalogue/internal/core"
	"crafting-catalogue/internal/logging"
	"crafting-catalogue/internal/store"
	"crafting-catalogue/internal/web"
)

func main() {
	// Missing .env is fine; the defaults cover a fresh checkout.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	if err := run(cfg); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	st, err := store.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Ping(); err != nil {
		return err
	}
	slog.Info("database ready", "path", cfg.Database.Path)

	service := core.NewService(st)
	server := web.NewServer(service, cfg)

	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		slog.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return err
	}
	slog.Info("shutdown complete")
	return nil
}
