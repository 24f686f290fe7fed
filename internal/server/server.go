package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"Airduct/internal/config"
	"Airduct/internal/logging"
)

// Run serves until ctx is cancelled, then drains open connections within
// the configured shutdown timeout.
func Run(ctx context.Context, cfg *config.Config) error {
	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           NewRouter(cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info("starting server",
			zap.String("addr", cfg.Server.Addr), zap.Bool("tls", cfg.UseTLS()))
		var err error
		if cfg.UseTLS() {
			err = server.ListenAndServeTLS(cfg.Server.TLSCert, cfg.Server.TLSKey)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logging.Info("shutdown signal received")

	timeout := time.Duration(cfg.Server.ShutdownTimeoutSeconds) * time.Second
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logging.Info("server stopped")
	return nil
}
