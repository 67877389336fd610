// Package server boots the vitrine storefront: configuration, Redis,
// storage disks, the toast hub and the HTTP listener.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shashiranjanraj/vitrine/config"
	"github.com/shashiranjanraj/vitrine/internal/kernel"
	"github.com/shashiranjanraj/vitrine/pkg/cache"
	"github.com/shashiranjanraj/vitrine/pkg/logger"
	"github.com/shashiranjanraj/vitrine/pkg/notification"
	"github.com/shashiranjanraj/vitrine/pkg/storage"
	"github.com/shashiranjanraj/vitrine/pkg/ws"
)

// Start boots every subsystem and blocks until SIGINT/SIGTERM.
func Start() error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("server: load config: %w", err)
	}

	// Redis is optional: without it the catalog cache and sessions
	// degrade but the storefront keeps serving.
	if err := cache.Connect(); err != nil {
		logger.Warn("server: redis unavailable, caching and sessions degraded", "error", err)
	}

	storage.Connect()

	if uri := config.MongoLogURI(); uri != "" {
		h, err := logger.EnableAudit(uri, config.MongoLogDatabase(), config.MongoLogCollection())
		if err != nil {
			logger.Warn("server: audit log disabled", "error", err)
		} else {
			defer h.Close()
		}
	}

	toastHub := ws.NewHub()
	go toastHub.Run()
	notification.SetToastHub(toastHub)
	if hook := config.SlackWebhook(); hook != "" {
		notification.SetSlackWebhook(hook)
	}

	k := kernel.NewHTTPKernel(toastHub)

	addr := ":" + config.AppPort()
	srv := &http.Server{
		Addr:              addr,
		Handler:           k.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server: vitrine listening", "addr", addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server: listen: %w", err)
	case sig := <-stop:
		logger.Info("server: shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}
